// Package grid provides the coordinate model shared by the layout engine:
// grid-aligned rects, pixel/grid conversion, and clamping.
package grid

import (
	"math"
	"slices"
	"strings"
)

// Mode selects whether the grid accepts editing gestures.
type Mode string

const (
	// ModeDesign enables selection, drag, resize and re-stacking.
	ModeDesign Mode = "design"
	// ModePreview renders the layout read-only.
	ModePreview Mode = "preview"
)

// Rect is a block placed on the grid. All coordinates are in grid units.
type Rect struct {
	ID        string `json:"id" toml:"id"`
	X         int    `json:"x" toml:"x"`
	Y         int    `json:"y" toml:"y"`
	W         int    `json:"w" toml:"w"`
	H         int    `json:"h" toml:"h"`
	Z         int    `json:"z" toml:"z"`
	ContentID string `json:"contentId,omitempty" toml:"content_id,omitempty"`
}

// Right returns the exclusive right edge of the rect.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge of the rect.
func (r Rect) Bottom() int { return r.Y + r.H }

// Covers reports whether the grid cell (gx, gy) lies inside r.
func (r Rect) Covers(gx, gy int) bool {
	return gx >= r.X && gx < r.Right() && gy >= r.Y && gy < r.Bottom()
}

// Translate returns r shifted by (dx, dy) grid cells.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Config describes the grid metrics. Pixel quantities are float64 so that a
// host can work in device pixels or terminal cells alike.
type Config struct {
	Columns   int     `json:"columns" toml:"columns"`
	RowHeight float64 `json:"rowHeight" toml:"row_height"`
	Padding   float64 `json:"padding" toml:"padding"`
	StepX     float64 `json:"stepX" toml:"step_x"`
	StepY     float64 `json:"stepY" toml:"step_y"`
	Gutter    float64 `json:"gutter" toml:"gutter"`
	Mode      Mode    `json:"mode" toml:"mode"`
}

// Editable reports whether gestures are accepted in the configured mode.
func (c Config) Editable() bool {
	return c.Mode == ModeDesign
}

// Point is a position in pixel space.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a pixel extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToLocal converts a viewport point into grid-local pixel space by removing
// the grid origin and undoing the zoom factor.
func ToLocal(p Point, origin Bounds, zoom float64) Point {
	if zoom <= 0 {
		zoom = 1
	}
	return Point{
		X: (p.X - origin.Left) / zoom,
		Y: (p.Y - origin.Top) / zoom,
	}
}

// ToGrid maps a local pixel position to the grid cell that contains it.
func ToGrid(x, y float64, cfg Config) (int, int) {
	gx := int(math.Floor((x - cfg.Padding) / cfg.StepX))
	gy := int(math.Floor((y - cfg.Padding) / cfg.StepY))
	return gx, gy
}

// Clamp forces w,h >= 1 and keeps the rect horizontally inside [0, columns],
// shrinking the width when it exceeds the column count and shifting x
// otherwise.
func Clamp(r Rect, columns int) Rect {
	if columns < 1 {
		columns = 1
	}
	r.W = max(r.W, 1)
	r.H = max(r.H, 1)
	r.W = min(r.W, columns)
	r.X = max(r.X, 0)
	if r.Right() > columns {
		r.X = columns - r.W
	}
	return r
}

// Overlaps reports whether a and b share a cell. Rects that only touch along
// an edge do not overlap.
func Overlaps(a, b Rect) bool {
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// ContainerSize returns the pixel size needed to display every rect.
func ContainerSize(rects Rects, cfg Config) Size {
	rows := 1
	for _, r := range rects {
		rows = max(rows, r.Bottom())
	}
	return Size{
		Width:  float64(cfg.Columns)*cfg.StepX + 2*cfg.Padding,
		Height: float64(rows)*cfg.RowHeight + 2*cfg.Padding,
	}
}

// Rects is the live rect dictionary keyed by rect id.
type Rects map[string]Rect

// Clone returns a shallow copy of the dictionary.
func (rs Rects) Clone() Rects {
	out := make(Rects, len(rs))
	for id, r := range rs {
		out[id] = r
	}
	return out
}

// Sorted returns every rect ordered back to front (ascending z). Ties are
// broken by id so the order is deterministic.
func (rs Rects) Sorted() []Rect {
	out := make([]Rect, 0, len(rs))
	for _, r := range rs {
		out = append(out, r)
	}
	slices.SortFunc(out, compareZ)
	return out
}

func compareZ(a, b Rect) int {
	if a.Z != b.Z {
		return a.Z - b.Z
	}
	return strings.Compare(a.ID, b.ID)
}

// SortByZ orders rects back to front in place.
func SortByZ(rects []Rect) {
	slices.SortFunc(rects, compareZ)
}

// Patch replaces the geometry of the rect with the given id.
type Patch struct {
	ID   string `json:"id"`
	Rect Rect   `json:"rect"`
}
