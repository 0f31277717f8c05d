package gesture

import (
	"math"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/hit"
)

// Begin builds the DragStart intent for a classified pointer-down.
// before is the selection as it was before the pointer-down was applied.
func Begin(res hit.Result, p grid.Point, rects grid.Rects, before []string, modifier bool) DragStart {
	if res.Kind == hit.Marquee {
		return DragStart{Marquee: &Marquee{
			X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y,
			Additive: modifier,
			Base:     slices.Clone(res.Selection),
		}}
	}

	items := make(map[string]Item, len(res.Selection))
	for _, id := range res.Selection {
		if r, ok := rects[id]; ok {
			items[id] = Item{Original: r, Current: r}
		}
	}
	return DragStart{Ghost: &Ghost{
		PrimaryID:           res.PrimaryID,
		OriginalSelectedIDs: slices.Clone(before),
		Kind:                res.Kind,
		Direction:           res.Direction,
		Start:               p,
		Items:               items,
		Modifier:            modifier,
	}}
}

// Track builds the DragUpdate intent for a pointer move. ok is false when no
// gesture is active.
func Track(s State, p grid.Point, cfg grid.Config) (DragUpdate, bool) {
	switch {
	case s.Ghost != nil:
		return DragUpdate{Ghost: dragGhost(s.Ghost, p, cfg)}, true
	case s.Marquee != nil:
		m := *s.Marquee
		m.X2, m.Y2 = p.X, p.Y
		return DragUpdate{Marquee: &m}, true
	default:
		return DragUpdate{}, false
	}
}

// round rounds half up, so a pointer that has travelled exactly half a step
// in either direction lands on the same cell.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// GridDelta converts a pixel delta to whole grid steps.
func GridDelta(d grid.Point, cfg grid.Config) (int, int) {
	return round(d.X / cfg.StepX), round(d.Y / cfg.StepY)
}

func dragGhost(g *Ghost, p grid.Point, cfg grid.Config) *Ghost {
	next := g.clone()
	d := p.Sub(g.Start)
	if math.Abs(d.X) > DragThreshold || math.Abs(d.Y) > DragThreshold {
		next.WasDragged = true
	}

	dx, dy := GridDelta(d, cfg)
	switch g.Kind {
	case hit.Move:
		moveItems(next, dx, dy, cfg.Columns)
	case hit.Resize:
		for id, it := range next.Items {
			it.Current = Resize(it.Original, g.Direction, dx, dy, cfg.Columns)
			next.Items[id] = it
		}
	}
	return next
}

// moveItems applies one clamped delta to every item so the group keeps its
// shape. The group's bounding box stays inside [0, columns] horizontally and
// below row 0 vertically.
func moveItems(g *Ghost, dx, dy, columns int) {
	if len(g.Items) == 0 {
		return
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxRight := math.MinInt
	for _, it := range g.Items {
		minX = min(minX, it.Original.X)
		minY = min(minY, it.Original.Y)
		maxRight = max(maxRight, it.Original.Right())
	}

	dx = min(dx, columns-maxRight)
	dx = max(dx, -minX)
	dy = max(dy, -minY)

	for id, it := range g.Items {
		it.Current = it.Original.Translate(dx, dy)
		g.Items[id] = it
	}
}

// Resize applies a handle drag of (dx, dy) grid steps to r. dir is any
// combination of n, s, e and w. Edges opposite the dragged one stay anchored
// and the result never drops below 1x1.
func Resize(r grid.Rect, dir string, dx, dy, columns int) grid.Rect {
	out := r
	if strings.Contains(dir, "e") {
		out.W = max(r.W+dx, 1)
		out.W = min(out.W, columns-r.X)
	}
	if strings.Contains(dir, "w") {
		dx = min(dx, r.W-1)
		dx = max(dx, -r.X)
		out.X = r.X + dx
		out.W = r.W - dx
	}
	if strings.Contains(dir, "s") {
		out.H = max(r.H+dy, 1)
	}
	if strings.Contains(dir, "n") {
		dy = min(dy, r.H-1)
		dy = max(dy, -r.Y)
		out.Y = r.Y + dy
		out.H = r.H - dy
	}
	return grid.Clamp(out, columns)
}
