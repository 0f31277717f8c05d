// Package gesture implements the drag/resize/marquee lifecycle that runs
// between a pointer-down and the matching pointer-up.
//
// The interaction state is an immutable value. Hosts hold the current State,
// and every transition is expressed as an Intent applied with Apply, so a
// gesture can be replayed and tested without any UI.
package gesture

import (
	"maps"
	"slices"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/hit"
)

// DragThreshold is the pointer travel, in pixels per axis, that turns a click
// into a drag. Marquees smaller than this on either axis are ignored.
const DragThreshold = 2

// Phase represents the current phase of the interaction.
type Phase int

const (
	// PhaseIdle means no gesture is active.
	PhaseIdle Phase = iota
	// PhaseDragging means a move or resize ghost is active.
	PhaseDragging
	// PhaseMarquee means a rubber-band selection is being drawn.
	PhaseMarquee
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseMarquee:
		return "marquee"
	default:
		return "unknown"
	}
}

// Item tracks one rect carried by a ghost.
type Item struct {
	Original grid.Rect
	Current  grid.Rect
}

// Ghost is the in-progress geometry of a move or resize.
type Ghost struct {
	PrimaryID string
	// OriginalSelectedIDs is the selection before this gesture's own
	// pointer-down changed it. Click cycling keys off it.
	OriginalSelectedIDs []string
	Kind                hit.Kind // hit.Move or hit.Resize
	Direction           string
	Start               grid.Point
	Items               map[string]Item
	WasDragged          bool
	Modifier            bool
}

func (g *Ghost) clone() *Ghost {
	if g == nil {
		return nil
	}
	c := *g
	c.OriginalSelectedIDs = slices.Clone(g.OriginalSelectedIDs)
	c.Items = maps.Clone(g.Items)
	return &c
}

// Marquee is a rubber-band rectangle in grid-local pixel space. (X1, Y1) is
// the anchor, (X2, Y2) follows the pointer.
type Marquee struct {
	X1, Y1, X2, Y2 float64
	// Additive unions the result with Base instead of replacing it.
	Additive bool
	Base     []string
}

// Bounds returns the normalized marquee rectangle.
func (m Marquee) Bounds() grid.Bounds {
	return grid.Normalize(m.X1, m.Y1, m.X2, m.Y2)
}

// State is the interaction state owned by the host.
type State struct {
	Ghost     *Ghost
	Marquee   *Marquee
	HoveredID string
}

// Phase reports which phase the state is in.
func (s State) Phase() Phase {
	switch {
	case s.Ghost != nil:
		return PhaseDragging
	case s.Marquee != nil:
		return PhaseMarquee
	default:
		return PhaseIdle
	}
}

// Active reports whether a gesture is in progress.
func (s State) Active() bool {
	return s.Phase() != PhaseIdle
}

// Intent is a tagged state update.
type Intent interface {
	isIntent()
}

// Hover records the rect under an idle pointer.
type Hover struct {
	ID string
}

// DragStart opens a new gesture, replacing whatever was active.
type DragStart struct {
	Ghost   *Ghost
	Marquee *Marquee
}

// DragUpdate replaces the active ghost or marquee.
type DragUpdate struct {
	Ghost   *Ghost
	Marquee *Marquee
}

// DragEnd closes the active gesture.
type DragEnd struct{}

func (Hover) isIntent()      {}
func (DragStart) isIntent()  {}
func (DragUpdate) isIntent() {}
func (DragEnd) isIntent()    {}

// Apply returns the state that results from applying in to s. s is not
// modified.
func Apply(s State, in Intent) State {
	switch in := in.(type) {
	case Hover:
		s.HoveredID = in.ID
	case DragStart:
		s.Ghost = in.Ghost.clone()
		s.Marquee = cloneMarquee(in.Marquee)
	case DragUpdate:
		if !s.Active() {
			return s
		}
		s.Ghost = in.Ghost.clone()
		s.Marquee = cloneMarquee(in.Marquee)
	case DragEnd:
		s.Ghost = nil
		s.Marquee = nil
	}
	return s
}

func cloneMarquee(m *Marquee) *Marquee {
	if m == nil {
		return nil
	}
	c := *m
	c.Base = slices.Clone(m.Base)
	return &c
}
