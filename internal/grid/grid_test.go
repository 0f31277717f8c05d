package grid

import (
	"testing"
)

func testConfig() Config {
	return Config{Columns: 12, RowHeight: 15, Padding: 10, StepX: 20, StepY: 15, Mode: ModeDesign}
}

func TestToGrid(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name   string
		x, y   float64
		gx, gy int
	}{
		{name: "origin cell", x: 10, y: 10, gx: 0, gy: 0},
		{name: "inside first cell", x: 29.9, y: 24.9, gx: 0, gy: 0},
		{name: "second column", x: 30, y: 10, gx: 1, gy: 0},
		{name: "inside padding floors to -1", x: 5, y: 5, gx: -1, gy: -1},
		{name: "deep cell", x: 10 + 20*7 + 3, y: 10 + 15*4 + 1, gx: 7, gy: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := ToGrid(tt.x, tt.y, cfg)
			if gx != tt.gx || gy != tt.gy {
				t.Errorf("ToGrid(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, gx, gy, tt.gx, tt.gy)
			}
		})
	}
}

func TestToLocal(t *testing.T) {
	origin := Bounds{Left: 100, Top: 50, Right: 500, Bottom: 450}

	got := ToLocal(Point{X: 140, Y: 90}, origin, 2)
	if got.X != 20 || got.Y != 20 {
		t.Errorf("ToLocal with zoom 2 = %+v, want {20 20}", got)
	}

	got = ToLocal(Point{X: 140, Y: 90}, origin, 0)
	if got.X != 40 || got.Y != 40 {
		t.Errorf("ToLocal with zero zoom = %+v, want {40 40}", got)
	}
}

func TestClampInvariant(t *testing.T) {
	for columns := 1; columns <= 16; columns++ {
		for x := -20; x <= 20; x += 3 {
			for w := -3; w <= 20; w += 2 {
				for _, h := range []int{-2, 0, 1, 5} {
					r := Clamp(Rect{ID: "a", X: x, Y: 3, W: w, H: h}, columns)
					if r.W < 1 || r.H < 1 || r.X < 0 || r.X+r.W > columns {
						t.Fatalf("Clamp({x:%d w:%d h:%d}, %d) = %+v violates bounds", x, w, h, columns, r)
					}
				}
			}
		}
	}
}

func TestClampPreservesValidRect(t *testing.T) {
	in := Rect{ID: "a", X: 2, Y: 4, W: 3, H: 2, Z: 7, ContentID: "c"}
	if got := Clamp(in, 12); got != in {
		t.Errorf("Clamp changed a valid rect: got %+v, want %+v", got, in)
	}
}

func TestClampShiftsBeforeShrinking(t *testing.T) {
	got := Clamp(Rect{X: 10, W: 4, H: 1}, 12)
	if got.X != 8 || got.W != 4 {
		t.Errorf("expected shift to x=8 keeping w=4, got %+v", got)
	}

	got = Clamp(Rect{X: 0, W: 20, H: 1}, 12)
	if got.X != 0 || got.W != 12 {
		t.Errorf("expected shrink to w=12, got %+v", got)
	}
}

func TestOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 2}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{name: "identical", b: a, want: true},
		{name: "partial", b: Rect{X: 3, Y: 1, W: 4, H: 4}, want: true},
		{name: "touching right edge", b: Rect{X: 4, Y: 0, W: 2, H: 2}, want: false},
		{name: "touching bottom edge", b: Rect{X: 0, Y: 2, W: 2, H: 2}, want: false},
		{name: "disjoint", b: Rect{X: 8, Y: 8, W: 1, H: 1}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(a, tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.b, a); got != tt.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundsOverlapsExcludesTouching(t *testing.T) {
	m := Normalize(100, 100, 0, 0)
	if m.Left != 0 || m.Top != 0 || m.Right != 100 || m.Bottom != 100 {
		t.Fatalf("Normalize = %+v", m)
	}
	if m.Overlaps(Bounds{Left: 100, Top: 0, Right: 120, Bottom: 20}) {
		t.Error("edge-touching bounds must not overlap")
	}
	if !m.Overlaps(Bounds{Left: 99, Top: 99, Right: 120, Bottom: 120}) {
		t.Error("corner overlap must count")
	}
}

func TestPixelBounds(t *testing.T) {
	cfg := testConfig()
	b := PixelBounds(Rect{X: 2, Y: 1, W: 3, H: 2}, cfg)
	want := Bounds{Left: 50, Top: 25, Right: 110, Bottom: 55}
	if b != want {
		t.Errorf("PixelBounds = %+v, want %+v", b, want)
	}
}

func TestContainerSize(t *testing.T) {
	cfg := testConfig()

	empty := ContainerSize(Rects{}, cfg)
	if empty.Width != 12*20+20 || empty.Height != 15+20 {
		t.Errorf("empty container = %+v", empty)
	}

	size := ContainerSize(Rects{
		"a": {ID: "a", Y: 0, H: 2},
		"b": {ID: "b", Y: 3, H: 4},
	}, cfg)
	if size.Height != 7*15+20 {
		t.Errorf("container height = %v, want %v", size.Height, 7*15+20)
	}
}

func TestSortedIsDeterministic(t *testing.T) {
	rs := Rects{
		"c": {ID: "c", Z: 1},
		"a": {ID: "a", Z: 1},
		"b": {ID: "b", Z: 0},
	}
	got := rs.Sorted()
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if ids[0] != "b" || ids[1] != "a" || ids[2] != "c" {
		t.Errorf("Sorted ids = %v, want [b a c]", ids)
	}
}
