// Package zorder re-stacks the selection relative to the rects it overlaps.
//
// Moves are local: the selection only steps past the next rect in the stack
// of rects that overlap the anchor, so unrelated rects elsewhere on the grid
// keep their relative order. After a move every rect is renumbered so that z
// stays a dense 0..n-1 sequence.
package zorder

import (
	"slices"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// Direction selects which way the selection moves in the stack.
type Direction int

const (
	// Forward moves the selection towards the viewer.
	Forward Direction = iota
	// Backward moves the selection away from the viewer.
	Backward
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// BringForward moves the selection one step forward within the anchor's
// stack. It returns nil when there is nothing to do.
func BringForward(rects grid.Rects, selection []string) []grid.Patch {
	return Restack(rects, selection, Forward)
}

// SendBackward moves the selection one step backward within the anchor's
// stack. It returns nil when there is nothing to do.
func SendBackward(rects grid.Rects, selection []string) []grid.Patch {
	return Restack(rects, selection, Backward)
}

// Stack returns every rect that overlaps anchor, anchor included, back to
// front.
func Stack(rects grid.Rects, anchor grid.Rect) []grid.Rect {
	var stack []grid.Rect
	for _, r := range rects {
		if grid.Overlaps(r, anchor) {
			stack = append(stack, r)
		}
	}
	grid.SortByZ(stack)
	return stack
}

// Restack moves the selection one step in dir and returns a patch for every
// rect, carrying its renumbered z.
func Restack(rects grid.Rects, selection []string, dir Direction) []grid.Patch {
	if len(selection) == 0 {
		return nil
	}
	anchor, ok := rects[selection[0]]
	if !ok {
		return nil
	}

	selected := func(id string) bool { return slices.Contains(selection, id) }

	stack := Stack(rects, anchor)
	var inStack []int // indices into stack
	for i, r := range stack {
		if selected(r.ID) {
			inStack = append(inStack, i)
		}
	}
	if len(inStack) == 0 {
		return nil
	}

	var target string
	switch dir {
	case Forward:
		highest := inStack[len(inStack)-1]
		if highest == len(stack)-1 {
			return nil
		}
		target = stack[highest+1].ID
	case Backward:
		lowest := inStack[0]
		if lowest == 0 {
			return nil
		}
		target = stack[lowest-1].ID
	}

	order := rects.Sorted()
	var moving, rest []grid.Rect
	for _, r := range order {
		if selected(r.ID) {
			moving = append(moving, r)
		} else {
			rest = append(rest, r)
		}
	}

	at := slices.IndexFunc(rest, func(r grid.Rect) bool { return r.ID == target })
	if dir == Forward {
		at++
	}
	result := slices.Concat(rest[:at], moving, rest[at:])

	patches := make([]grid.Patch, len(result))
	for z, r := range result {
		r.Z = z
		patches[z] = grid.Patch{ID: r.ID, Rect: r}
	}
	return patches
}
