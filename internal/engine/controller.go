package engine

import (
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/blockgrid/internal/gesture"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/hit"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
)

// Controller owns the host-side state for one grid: the store, the selection
// and the interaction state. It applies every notification Handle emits.
type Controller struct {
	Store     *store.Store
	Selection []string
	State     gesture.State

	Origin grid.Bounds
	Zoom   float64
	// HandleSize enables geometric resize handles when positive.
	HandleSize float64

	// OnNotify, if set, observes every applied notification.
	OnNotify func(Notification)
}

// NewController creates a controller for st with a zoom of 1.
func NewController(st *store.Store) *Controller {
	return &Controller{Store: st, Selection: []string{}, Zoom: 1}
}

// View builds the read-only view for the next event.
func (c *Controller) View() View {
	st := c.Store.State()
	cfg := c.Store.Config()
	v := View{
		Rects:     st.Rects,
		Config:    cfg,
		Container: st.Container,
		Selection: c.Selection,
		Origin:    c.Origin,
		Zoom:      c.Zoom,
	}
	if c.HandleSize > 0 {
		v.Resolve = hit.HandleResolver(st.Rects, c.Selection, cfg, c.HandleSize)
	}
	return v
}

// Dispatch handles ev and applies the resulting notifications. It returns
// the notifications for logging or forwarding.
func (c *Controller) Dispatch(ev Event) []Notification {
	next, ns := Handle(c.View(), c.State, ev)
	c.State = next
	for _, n := range ns {
		c.apply(n)
	}
	return ns
}

func (c *Controller) apply(n Notification) {
	switch n := n.(type) {
	case SelectionChange:
		c.Selection = slices.Clone(n.IDs)
	case RectUpdate:
		c.Store.Commit(n.Patches)
	}
	if c.OnNotify != nil {
		c.OnNotify(n)
	}
}

// Select replaces the selection, dropping ids with no live rect.
func (c *Controller) Select(ids ...string) {
	rects := c.Store.Rects()
	sel := []string{}
	for _, id := range ids {
		if _, ok := rects[id]; ok && !slices.Contains(sel, id) {
			sel = append(sel, id)
		}
	}
	c.apply(SelectionChange{IDs: sel})
}

// SelectAll selects every rect back to front.
func (c *Controller) SelectAll() {
	var ids []string
	for _, r := range c.Store.Rects().Sorted() {
		ids = append(ids, r.ID)
	}
	c.Select(ids...)
}

// Prune drops selected ids whose rects no longer exist.
func (c *Controller) Prune() {
	c.Select(c.Selection...)
}

// Cancel aborts the active gesture.
func (c *Controller) Cancel() {
	c.State = gesture.Cancel(c.State)
}

// Nudge moves the selection by (dx, dy) grid cells as one rigid group,
// clamped the same way a drag is.
func (c *Controller) Nudge(dx, dy int) bool {
	if len(c.Selection) == 0 || c.State.Active() || !c.Store.Config().Editable() {
		return false
	}
	cfg := c.Store.Config()
	rects := c.Store.Rects()
	res := hit.Result{Kind: hit.Move, PrimaryID: c.Selection[0], Selection: c.Selection}
	s := gesture.Apply(gesture.State{}, gesture.Begin(res, grid.Point{}, rects, c.Selection, false))
	px := grid.Point{X: float64(dx) * cfg.StepX, Y: float64(dy) * cfg.StepY}
	up, ok := gesture.Track(s, px, cfg)
	if !ok || up.Ghost == nil {
		return false
	}

	var patches []grid.Patch
	for id, it := range up.Ghost.Items {
		if it.Current != it.Original {
			patches = append(patches, grid.Patch{ID: id, Rect: it.Current})
		}
	}
	if len(patches) == 0 {
		return false
	}
	slices.SortFunc(patches, func(a, b grid.Patch) int { return strings.Compare(a.ID, b.ID) })
	c.apply(RectUpdate{Patches: patches})
	return true
}

// Restack re-stacks the selection as a wheel event at the grid origin would.
func (c *Controller) Restack(forward bool) bool {
	dy := 1.0
	if forward {
		dy = -1
	}
	return len(c.Dispatch(Wheel{DeltaY: dy})) > 0
}
