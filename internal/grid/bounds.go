package grid

// Bounds is an axis-aligned rectangle in pixel space.
type Bounds struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Normalize builds bounds from two arbitrary corners.
func Normalize(x1, y1, x2, y2 float64) Bounds {
	return Bounds{
		Left:   min(x1, x2),
		Top:    min(y1, y2),
		Right:  max(x1, x2),
		Bottom: max(y1, y2),
	}
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Contains reports whether p lies inside b (right and bottom edges excluded).
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom
}

// Overlaps reports strict overlap on all four edges; rectangles that merely
// touch have zero-area intersection and do not overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.Left < o.Right && o.Left < b.Right &&
		b.Top < o.Bottom && o.Top < b.Bottom
}

// PixelBounds returns the pixel box a rect occupies in grid-local space.
func PixelBounds(r Rect, cfg Config) Bounds {
	left := cfg.Padding + float64(r.X)*cfg.StepX
	top := cfg.Padding + float64(r.Y)*cfg.StepY
	return Bounds{
		Left:   left,
		Top:    top,
		Right:  left + float64(r.W)*cfg.StepX,
		Bottom: top + float64(r.H)*cfg.StepY,
	}
}
