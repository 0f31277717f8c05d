// Package hit classifies a pointer-down into a gesture and applies the
// immediate selection change that goes with it.
package hit

import (
	"slices"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// Kind identifies the gesture started by a pointer-down.
type Kind int

const (
	// Move drags the selection as a rigid group.
	Move Kind = iota
	// Resize drags one edge or corner of a single rect.
	Resize
	// Marquee draws a rubber-band selection rectangle.
	Marquee
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Resize:
		return "resize"
	case Marquee:
		return "marquee"
	default:
		return "unknown"
	}
}

// Target is a resolved resize handle under the pointer.
type Target struct {
	Direction string // combination of n, s, e, w
	OwnerID   string
}

// Resolver maps a grid-local pointer position to the resize handle under it,
// or nil when the pointer is not over a handle.
type Resolver func(p grid.Point) *Target

// At returns the ids of every rect covering cell (gx, gy), front first.
func At(rects grid.Rects, gx, gy int) []string {
	var hits []grid.Rect
	for _, r := range rects {
		if r.Covers(gx, gy) {
			hits = append(hits, r)
		}
	}
	grid.SortByZ(hits)
	ids := make([]string, len(hits))
	for i, r := range hits {
		ids[len(hits)-1-i] = r.ID
	}
	return ids
}

// Top returns the frontmost rect id covering local point p, or "".
func Top(rects grid.Rects, p grid.Point, cfg grid.Config) string {
	gx, gy := grid.ToGrid(p.X, p.Y, cfg)
	if ids := At(rects, gx, gy); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// Input is everything the classifier needs from a pointer-down.
type Input struct {
	Point     grid.Point // grid-local pixel position
	Rects     grid.Rects
	Selection []string
	Target    *Target
	Modifier  bool
	Config    grid.Config
}

// Result is the classified gesture.
type Result struct {
	Kind      Kind
	PrimaryID string
	Direction string
	// Selection is the selection after the pointer-down has been applied.
	Selection []string
}

// Classify decides the gesture type and primary rect for a pointer-down and
// returns the updated selection.
func Classify(in Input) Result {
	if in.Target != nil {
		if _, ok := in.Rects[in.Target.OwnerID]; ok {
			return Result{
				Kind:      Resize,
				PrimaryID: in.Target.OwnerID,
				Direction: in.Target.Direction,
				Selection: []string{in.Target.OwnerID},
			}
		}
	}

	gx, gy := grid.ToGrid(in.Point.X, in.Point.Y, in.Config)
	hits := At(in.Rects, gx, gy)
	if len(hits) == 0 {
		sel := []string{}
		if in.Modifier {
			sel = slices.Clone(in.Selection)
		}
		return Result{Kind: Marquee, Selection: sel}
	}

	primary := hits[0]
	for _, id := range hits {
		if slices.Contains(in.Selection, id) {
			primary = id
			break
		}
	}

	res := Result{Kind: Move, PrimaryID: primary}
	selected := slices.Contains(in.Selection, primary)
	switch {
	case in.Modifier && selected:
		res.Selection = slices.DeleteFunc(slices.Clone(in.Selection), func(id string) bool {
			return id == primary
		})
	case in.Modifier:
		res.Selection = append(slices.Clone(in.Selection), primary)
	case selected:
		res.Selection = slices.Clone(in.Selection)
	default:
		res.Selection = []string{primary}
	}
	return res
}
