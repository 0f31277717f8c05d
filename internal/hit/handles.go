package hit

import (
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// HandleResolver resolves resize handles geometrically: a handle is a square
// of side handleSize centred on each corner of a selected rect's pixel box.
// Hosts without a widget tree use this in place of a UI lookup.
func HandleResolver(rects grid.Rects, selection []string, cfg grid.Config, handleSize float64) Resolver {
	half := handleSize / 2
	return func(p grid.Point) *Target {
		// Later selections render on top, so walk front to back.
		for i := len(selection) - 1; i >= 0; i-- {
			r, ok := rects[selection[i]]
			if !ok {
				continue
			}
			b := grid.PixelBounds(r, cfg)
			corners := []struct {
				dir  string
				x, y float64
			}{
				{"nw", b.Left, b.Top},
				{"ne", b.Right, b.Top},
				{"sw", b.Left, b.Bottom},
				{"se", b.Right, b.Bottom},
			}
			for _, c := range corners {
				box := grid.Bounds{Left: c.x - half, Top: c.y - half, Right: c.x + half, Bottom: c.y + half}
				if box.Contains(p) {
					return &Target{Direction: c.dir, OwnerID: r.ID}
				}
			}
		}
		return nil
	}
}
