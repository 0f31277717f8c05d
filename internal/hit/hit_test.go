package hit

import (
	"slices"
	"testing"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

var cfg = grid.Config{Columns: 12, RowHeight: 20, Padding: 10, StepX: 20, StepY: 20, Mode: grid.ModeDesign}

// pile returns three fully overlapping rects, C in front.
func pile() grid.Rects {
	return grid.Rects{
		"A": {ID: "A", X: 0, Y: 0, W: 4, H: 2, Z: 0},
		"B": {ID: "B", X: 0, Y: 0, W: 4, H: 2, Z: 1},
		"C": {ID: "C", X: 0, Y: 0, W: 4, H: 2, Z: 2},
		"D": {ID: "D", X: 6, Y: 0, W: 2, H: 2, Z: 3},
	}
}

// cell returns a point inside grid cell (gx, gy).
func cell(gx, gy int) grid.Point {
	return grid.Point{X: cfg.Padding + float64(gx)*cfg.StepX + 1, Y: cfg.Padding + float64(gy)*cfg.StepY + 1}
}

func TestAtOrdersFrontFirst(t *testing.T) {
	got := At(pile(), 1, 1)
	want := []string{"C", "B", "A"}
	if !slices.Equal(got, want) {
		t.Errorf("At = %v, want %v", got, want)
	}
	if got := At(pile(), 5, 0); len(got) != 0 {
		t.Errorf("At on empty cell = %v, want none", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		point     grid.Point
		selection []string
		target    *Target
		modifier  bool
		kind      Kind
		primary   string
		wantSel   []string
	}{
		{
			name:    "click on pile selects topmost",
			point:   cell(1, 0),
			kind:    Move,
			primary: "C",
			wantSel: []string{"C"},
		},
		{
			name:      "already selected hit wins over topmost",
			point:     cell(1, 0),
			selection: []string{"A"},
			kind:      Move,
			primary:   "A",
			wantSel:   []string{"A"},
		},
		{
			name:      "group selection is kept for group drag",
			point:     cell(6, 0),
			selection: []string{"A", "D"},
			kind:      Move,
			primary:   "D",
			wantSel:   []string{"A", "D"},
		},
		{
			name:      "modifier adds primary",
			point:     cell(6, 1),
			selection: []string{"A"},
			modifier:  true,
			kind:      Move,
			primary:   "D",
			wantSel:   []string{"A", "D"},
		},
		{
			name:      "modifier removes selected primary",
			point:     cell(6, 1),
			selection: []string{"A", "D"},
			modifier:  true,
			kind:      Move,
			primary:   "D",
			wantSel:   []string{"A"},
		},
		{
			name:      "empty cell clears selection",
			point:     cell(10, 5),
			selection: []string{"A"},
			kind:      Marquee,
			wantSel:   []string{},
		},
		{
			name:      "empty cell with modifier keeps selection",
			point:     cell(10, 5),
			selection: []string{"A"},
			modifier:  true,
			kind:      Marquee,
			wantSel:   []string{"A"},
		},
		{
			name:      "resize handle selects owner only",
			point:     cell(1, 0),
			selection: []string{"A", "D"},
			target:    &Target{Direction: "se", OwnerID: "B"},
			kind:      Resize,
			primary:   "B",
			wantSel:   []string{"B"},
		},
		{
			name:    "handle with unknown owner falls through",
			point:   cell(6, 0),
			target:  &Target{Direction: "se", OwnerID: "missing"},
			kind:    Move,
			primary: "D",
			wantSel: []string{"D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(Input{
				Point:     tt.point,
				Rects:     pile(),
				Selection: tt.selection,
				Target:    tt.target,
				Modifier:  tt.modifier,
				Config:    cfg,
			})
			if res.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", res.Kind, tt.kind)
			}
			if res.PrimaryID != tt.primary {
				t.Errorf("primary = %q, want %q", res.PrimaryID, tt.primary)
			}
			if !slices.Equal(res.Selection, tt.wantSel) {
				t.Errorf("selection = %v, want %v", res.Selection, tt.wantSel)
			}
		})
	}
}

func TestClassifyDoesNotMutateSelection(t *testing.T) {
	sel := []string{"A", "D"}
	Classify(Input{Point: cell(6, 0), Rects: pile(), Selection: sel, Modifier: true, Config: cfg})
	if !slices.Equal(sel, []string{"A", "D"}) {
		t.Errorf("input selection mutated: %v", sel)
	}
}

func TestHandleResolver(t *testing.T) {
	rects := pile()
	resolve := HandleResolver(rects, []string{"D"}, cfg, 8)

	// D spans pixels x 130..170, y 10..50.
	if got := resolve(grid.Point{X: 169, Y: 49}); got == nil || got.Direction != "se" || got.OwnerID != "D" {
		t.Errorf("bottom-right corner = %+v, want se handle of D", got)
	}
	if got := resolve(grid.Point{X: 131, Y: 11}); got == nil || got.Direction != "nw" {
		t.Errorf("top-left corner = %+v, want nw handle", got)
	}
	if got := resolve(grid.Point{X: 150, Y: 30}); got != nil {
		t.Errorf("centre of rect resolved to handle %+v", got)
	}
	// A is not selected, so its corners are not handles.
	if got := resolve(grid.Point{X: 10, Y: 10}); got != nil {
		t.Errorf("unselected rect corner resolved to %+v", got)
	}
}

func TestTop(t *testing.T) {
	if got := Top(pile(), cell(2, 1), cfg); got != "C" {
		t.Errorf("Top = %q, want C", got)
	}
	if got := Top(pile(), cell(11, 9), cfg); got != "" {
		t.Errorf("Top over empty space = %q", got)
	}
}
