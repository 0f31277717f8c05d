// Package engine turns raw pointer and wheel events into gesture intents and
// host notifications.
//
// Handle is pure: it takes the host's read-only view plus the current
// interaction state and returns the next state together with the
// notifications the host must apply. Controller wraps Handle for hosts that
// keep their layout in a store.Store.
package engine

import (
	"slices"

	"github.com/Gaurav-Gosain/blockgrid/internal/gesture"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/hit"
	"github.com/Gaurav-Gosain/blockgrid/internal/zorder"
)

// View is everything the host exposes to the engine for one event.
type View struct {
	Rects     grid.Rects
	Config    grid.Config
	Container grid.Size
	Selection []string

	// Origin is the grid's position in viewport coordinates.
	Origin grid.Bounds
	Zoom   float64

	// Resolve finds resize handles when an event carries no Target.
	Resolve hit.Resolver
}

// Event is a pointer or wheel event in viewport coordinates.
type Event interface {
	isEvent()
}

// PointerDown starts a gesture.
type PointerDown struct {
	Point    grid.Point
	Modifier bool
	// Target is the resize handle under the pointer, if the host resolved one.
	Target *hit.Target
}

// PointerMove is any pointer motion, with or without a button held.
type PointerMove struct {
	Point grid.Point
}

// PointerUp ends the active gesture.
type PointerUp struct {
	Point grid.Point
}

// Wheel re-stacks the selection. Negative DeltaY (wheel up) brings it forward.
type Wheel struct {
	Point  grid.Point
	DeltaY float64
}

// PointerLeave is sent when the pointer leaves the host surface.
type PointerLeave struct{}

func (PointerDown) isEvent()  {}
func (PointerMove) isEvent()  {}
func (PointerUp) isEvent()    {}
func (Wheel) isEvent()        {}
func (PointerLeave) isEvent() {}

// Notification is a change the host must apply.
type Notification interface {
	isNotification()
}

// SelectionChange replaces the host's selection.
type SelectionChange struct {
	IDs []string
}

// RectUpdate must be committed to the layout store.
type RectUpdate struct {
	Patches []grid.Patch
}

func (SelectionChange) isNotification() {}
func (RectUpdate) isNotification()      {}

// Handle processes one event.
func Handle(v View, s gesture.State, ev Event) (gesture.State, []Notification) {
	editable := v.Config.Editable()

	switch ev := ev.(type) {
	case PointerDown:
		if !editable {
			return s, nil
		}
		return pointerDown(v, s, ev)

	case PointerMove:
		p := grid.ToLocal(ev.Point, v.Origin, v.Zoom)
		if s.Active() {
			if !editable {
				return gesture.Cancel(s), nil
			}
			if up, ok := gesture.Track(s, p, v.Config); ok {
				return gesture.Apply(s, up), nil
			}
			return s, nil
		}
		if id := hit.Top(v.Rects, p, v.Config); id != s.HoveredID {
			return gesture.Apply(s, gesture.Hover{ID: id}), nil
		}
		return s, nil

	case PointerUp:
		if !s.Active() {
			return s, nil
		}
		if !editable {
			return gesture.Cancel(s), nil
		}
		// The final position may differ from the last move.
		if up, ok := gesture.Track(s, grid.ToLocal(ev.Point, v.Origin, v.Zoom), v.Config); ok {
			s = gesture.Apply(s, up)
		}
		out, end := gesture.Finish(s, v.Rects, v.Selection, v.Config)
		return gesture.Apply(s, end), outcomeNotifications(out)

	case Wheel:
		if !editable || len(v.Selection) == 0 || ev.DeltaY == 0 {
			return s, nil
		}
		if !overGrid(grid.ToLocal(ev.Point, v.Origin, v.Zoom), v.Container) {
			return s, nil
		}
		dir := zorder.Forward
		if ev.DeltaY > 0 {
			dir = zorder.Backward
		}
		if patches := zorder.Restack(v.Rects, v.Selection, dir); len(patches) > 0 {
			return s, []Notification{RectUpdate{Patches: patches}}
		}
		return s, nil

	case PointerLeave:
		s = gesture.Cancel(s)
		if s.HoveredID != "" {
			s = gesture.Apply(s, gesture.Hover{})
		}
		return s, nil
	}
	return s, nil
}

// overGrid reports whether a local point lies on the grid container.
func overGrid(p grid.Point, c grid.Size) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.Width && p.Y < c.Height
}

func pointerDown(v View, s gesture.State, ev PointerDown) (gesture.State, []Notification) {
	p := grid.ToLocal(ev.Point, v.Origin, v.Zoom)
	target := ev.Target
	if target == nil && v.Resolve != nil {
		target = v.Resolve(p)
	}

	res := hit.Classify(hit.Input{
		Point:     p,
		Rects:     v.Rects,
		Selection: v.Selection,
		Target:    target,
		Modifier:  ev.Modifier,
		Config:    v.Config,
	})
	s = gesture.Apply(s, gesture.Begin(res, p, v.Rects, v.Selection, ev.Modifier))

	if slices.Equal(res.Selection, v.Selection) {
		return s, nil
	}
	return s, []Notification{SelectionChange{IDs: res.Selection}}
}

func outcomeNotifications(out gesture.Outcome) []Notification {
	var ns []Notification
	if out.SelectionChanged {
		ns = append(ns, SelectionChange{IDs: out.Selection})
	}
	if len(out.Patches) > 0 {
		ns = append(ns, RectUpdate{Patches: out.Patches})
	}
	return ns
}
