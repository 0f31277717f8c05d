package zorder

import (
	"slices"
	"testing"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// apply merges patches into a copy of rects.
func apply(rects grid.Rects, patches []grid.Patch) grid.Rects {
	out := rects.Clone()
	for _, p := range patches {
		out[p.ID] = p.Rect
	}
	return out
}

// order returns ids back to front.
func order(rects grid.Rects) []string {
	var ids []string
	for _, r := range rects.Sorted() {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBringForwardTwoRects(t *testing.T) {
	rects := grid.Rects{
		"A": {ID: "A", X: 0, Y: 0, W: 4, H: 4, Z: 0},
		"B": {ID: "B", X: 0, Y: 0, W: 4, H: 4, Z: 1},
	}

	patches := BringForward(rects, []string{"A"})
	if len(patches) != 2 {
		t.Fatalf("got %d patches, want 2", len(patches))
	}
	rects = apply(rects, patches)
	if rects["A"].Z != 1 || rects["B"].Z != 0 {
		t.Errorf("A.z=%d B.z=%d, want A.z=1 B.z=0", rects["A"].Z, rects["B"].Z)
	}

	if again := BringForward(rects, []string{"A"}); again != nil {
		t.Errorf("second bring forward = %+v, want no-op", again)
	}
}

func TestSendBackwardMirrorsForward(t *testing.T) {
	rects := grid.Rects{
		"A": {ID: "A", W: 4, H: 4, Z: 0},
		"B": {ID: "B", W: 4, H: 4, Z: 1},
	}
	rects = apply(rects, SendBackward(rects, []string{"B"}))
	if !slices.Equal(order(rects), []string{"B", "A"}) {
		t.Errorf("order = %v, want [B A]", order(rects))
	}
	if again := SendBackward(rects, []string{"B"}); again != nil {
		t.Errorf("second send backward = %+v, want no-op", again)
	}
}

func TestRestackIsLocalToStack(t *testing.T) {
	// X overlaps nothing and sits between A and B in the global order. A
	// only needs to pass B, but the selection lands directly above B.
	rects := grid.Rects{
		"A": {ID: "A", X: 0, Y: 0, W: 3, H: 3, Z: 0},
		"X": {ID: "X", X: 8, Y: 8, W: 2, H: 2, Z: 1},
		"B": {ID: "B", X: 1, Y: 1, W: 3, H: 3, Z: 2},
		"Y": {ID: "Y", X: 8, Y: 0, W: 2, H: 2, Z: 3},
	}
	rects = apply(rects, BringForward(rects, []string{"A"}))
	if got, want := order(rects), []string{"X", "B", "A", "Y"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	rects = apply(rects, SendBackward(rects, []string{"A"}))
	if got, want := order(rects), []string{"X", "A", "B", "Y"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRestackRenumbersDensely(t *testing.T) {
	rects := grid.Rects{
		"A": {ID: "A", W: 2, H: 2, Z: 10},
		"B": {ID: "B", W: 2, H: 2, Z: 40},
		"C": {ID: "C", X: 6, W: 2, H: 2, Z: 25},
	}
	patches := BringForward(rects, []string{"A"})
	if len(patches) != len(rects) {
		t.Fatalf("got %d patches, want one per rect", len(patches))
	}
	var zs []int
	for _, p := range patches {
		zs = append(zs, p.Rect.Z)
	}
	slices.Sort(zs)
	if !slices.Equal(zs, []int{0, 1, 2}) {
		t.Errorf("z values = %v, want [0 1 2]", zs)
	}
	rects = apply(rects, patches)
	if got, want := order(rects), []string{"C", "B", "A"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRestackMovesWholeSelection(t *testing.T) {
	rects := grid.Rects{
		"A": {ID: "A", W: 4, H: 4, Z: 0},
		"B": {ID: "B", W: 4, H: 4, Z: 1},
		"C": {ID: "C", W: 4, H: 4, Z: 2},
		"D": {ID: "D", W: 4, H: 4, Z: 3},
	}
	// Selection order is C then A; highest selected in stack is C, target D.
	rects = apply(rects, BringForward(rects, []string{"C", "A"}))
	if got, want := order(rects), []string{"B", "D", "A", "C"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	rects = apply(rects, SendBackward(rects, []string{"C", "A"}))
	if got, want := order(rects), []string{"B", "A", "C", "D"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRestackNoops(t *testing.T) {
	rects := grid.Rects{
		"A": {ID: "A", W: 2, H: 2, Z: 0},
		"B": {ID: "B", X: 5, W: 2, H: 2, Z: 1},
	}
	tests := []struct {
		name string
		sel  []string
		dir  Direction
	}{
		{name: "empty selection", sel: nil, dir: Forward},
		{name: "unknown anchor", sel: []string{"missing"}, dir: Forward},
		{name: "alone in its stack forward", sel: []string{"A"}, dir: Forward},
		{name: "alone in its stack backward", sel: []string{"B"}, dir: Backward},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Restack(rects, tt.sel, tt.dir); got != nil {
				t.Errorf("Restack = %+v, want nil", got)
			}
		})
	}
}

func TestStackExcludesEdgeTouching(t *testing.T) {
	rects := grid.Rects{
		"A": {ID: "A", X: 0, Y: 0, W: 2, H: 2, Z: 1},
		"B": {ID: "B", X: 2, Y: 0, W: 2, H: 2, Z: 0},
		"C": {ID: "C", X: 1, Y: 1, W: 2, H: 2, Z: 2},
	}
	var ids []string
	for _, r := range Stack(rects, rects["A"]) {
		ids = append(ids, r.ID)
	}
	if !slices.Equal(ids, []string{"A", "C"}) {
		t.Errorf("stack = %v, want [A C]", ids)
	}
}
