package gesture

import (
	"slices"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/hit"
)

// Outcome is what a finished gesture asks the host to do.
type Outcome struct {
	// Selection is only meaningful when SelectionChanged is set.
	Selection        []string
	SelectionChanged bool
	Patches          []grid.Patch
}

// Finish resolves the active gesture. The returned DragEnd must be applied to
// s whether or not the outcome is empty.
func Finish(s State, rects grid.Rects, selection []string, cfg grid.Config) (Outcome, DragEnd) {
	switch {
	case s.Marquee != nil:
		return finishMarquee(*s.Marquee, rects, cfg), DragEnd{}
	case s.Ghost != nil:
		return finishGhost(s.Ghost, rects, selection, cfg), DragEnd{}
	default:
		return Outcome{}, DragEnd{}
	}
}

func finishMarquee(m Marquee, rects grid.Rects, cfg grid.Config) Outcome {
	b := m.Bounds()
	if b.Width() <= DragThreshold || b.Height() <= DragThreshold {
		return Outcome{}
	}

	var picked []string
	for _, r := range rects.Sorted() {
		if grid.PixelBounds(r, cfg).Overlaps(b) {
			picked = append(picked, r.ID)
		}
	}

	sel := []string{}
	if m.Additive {
		sel = append(sel, m.Base...)
	}
	for _, id := range picked {
		if !slices.Contains(sel, id) {
			sel = append(sel, id)
		}
	}
	return Outcome{Selection: sel, SelectionChanged: true}
}

func finishGhost(g *Ghost, rects grid.Rects, selection []string, cfg grid.Config) Outcome {
	if g.WasDragged {
		ids := make([]string, 0, len(g.Items))
		for id := range g.Items {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		patches := make([]grid.Patch, 0, len(ids))
		for _, id := range ids {
			patches = append(patches, grid.Patch{ID: id, Rect: g.Items[id].Current})
		}
		return Outcome{Patches: patches}
	}

	if g.Kind != hit.Move {
		return Outcome{}
	}
	return clickOutcome(g, rects, selection, cfg)
}

// clickOutcome handles a move gesture that never crossed the drag threshold.
// Repeated clicks on an already-selected rect step through the pile under the
// pointer front to back.
func clickOutcome(g *Ghost, rects grid.Rects, selection []string, cfg grid.Config) Outcome {
	gx, gy := grid.ToGrid(g.Start.X, g.Start.Y, cfg)
	hits := hit.At(rects, gx, gy)

	if len(hits) == 0 {
		if g.Modifier {
			return Outcome{}
		}
		return Outcome{Selection: []string{}, SelectionChanged: len(selection) > 0}
	}

	if !slices.Contains(g.OriginalSelectedIDs, g.PrimaryID) {
		return Outcome{}
	}

	idx := slices.Index(hits, g.PrimaryID)
	next := hits[(idx+1)%len(hits)]
	if len(selection) == 1 && selection[0] == next {
		return Outcome{}
	}
	return Outcome{Selection: []string{next}, SelectionChanged: true}
}

// Cancel drops the active gesture without committing anything.
func Cancel(s State) State {
	return Apply(s, DragEnd{})
}
