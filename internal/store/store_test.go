package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

var cfg = grid.Config{Columns: 12, RowHeight: 15, Padding: 10, StepX: 20, StepY: 15, Mode: grid.ModeDesign}

func ptr(v int) *int { return &v }

func sample() BlockData {
	return BlockData{Layout: Layout{Positions: []Position{
		{PositionID: "a", X: ptr(0), Y: ptr(0), W: ptr(4), H: ptr(2), Z: ptr(0)},
		{X: ptr(2), Y: ptr(1), W: ptr(3), H: ptr(3)},
		{PositionID: "c", ContentID: "hero"},
	}}}
}

func TestDeriveDefaults(t *testing.T) {
	st := Derive(sample(), cfg, nil)

	want := grid.Rects{
		"a":     {ID: "a", X: 0, Y: 0, W: 4, H: 2, Z: 0},
		"pos-2": {ID: "pos-2", X: 2, Y: 1, W: 3, H: 3, Z: 1},
		"c":     {ID: "c", X: 0, Y: 0, W: 1, H: 1, Z: 2, ContentID: "hero"},
	}
	if !reflect.DeepEqual(st.Rects, want) {
		t.Errorf("Rects = %+v, want %+v", st.Rects, want)
	}

	// columns*stepX + 2*padding; max bottom is 4 rows.
	if st.Container.Width != 260 || st.Container.Height != 80 {
		t.Errorf("Container = %+v, want {260 80}", st.Container)
	}
}

func TestDeriveEmptyKeepsOneRow(t *testing.T) {
	st := Derive(BlockData{}, cfg, nil)
	if len(st.Rects) != 0 {
		t.Errorf("got %d rects, want 0", len(st.Rects))
	}
	if st.Container.Height != 35 {
		t.Errorf("Height = %v, want 35", st.Container.Height)
	}
}

func TestDeriveUsesOverride(t *testing.T) {
	override := grid.Rects{"x": {ID: "x", X: 1, Y: 9, W: 1, H: 1}}
	st := Derive(sample(), cfg, override)
	if !reflect.DeepEqual(st.Rects, override) {
		t.Errorf("Rects = %+v, want override", st.Rects)
	}
}

func TestCommitNilIsIdempotent(t *testing.T) {
	s := New(sample(), cfg)
	before := s.Data()
	s.Commit(nil)
	if !reflect.DeepEqual(s.Data(), before) {
		t.Error("Commit(nil) changed positions")
	}
	if s.Dirty() {
		t.Error("Commit(nil) marked the store dirty")
	}
}

func TestCommitRewritesMatchingPositions(t *testing.T) {
	s := New(sample(), cfg)
	s.Commit([]grid.Patch{
		{ID: "pos-2", Rect: grid.Rect{ID: "pos-2", X: 5, Y: 6, W: 2, H: 2, Z: 1}},
		{ID: "ghost", Rect: grid.Rect{ID: "ghost", X: 1, Y: 1, W: 1, H: 1}},
	})

	ps := s.Data().Layout.Positions
	if len(ps) != 3 {
		t.Fatalf("got %d positions, want 3 (no orphan)", len(ps))
	}
	if *ps[1].X != 5 || *ps[1].Y != 6 || *ps[1].W != 2 {
		t.Errorf("position 2 = %+v, want x=5 y=6 w=2", ps[1])
	}
	if ps[1].PositionID != "" {
		t.Errorf("PositionID = %q, synthesized ids must not be persisted", ps[1].PositionID)
	}
	if _, ok := s.Rects()["ghost"]; ok {
		t.Error("unmatched patch created a rect")
	}
	if got := s.Rects()["pos-2"]; got.X != 5 || got.Y != 6 {
		t.Errorf("rect = %+v, want x=5 y=6", got)
	}
	if s.State().Container.Height != 8*15+20 {
		t.Errorf("Height = %v, want %v", s.State().Container.Height, 8*15+20)
	}
	if !s.Dirty() {
		t.Error("Commit did not mark the store dirty")
	}
}

func TestCommitLeavesInputUntouched(t *testing.T) {
	data := sample()
	s := New(data, cfg)
	s.Commit([]grid.Patch{{ID: "a", Rect: grid.Rect{X: 7, Y: 0, W: 4, H: 2}}})
	if *data.Layout.Positions[0].X != 0 {
		t.Error("Commit mutated the caller's positions")
	}
}

func TestAdd(t *testing.T) {
	s := New(sample(), cfg)
	id := s.Add(grid.Rect{X: 10, Y: 2, W: 5, H: 0, Z: -4})

	r, ok := s.Rects()[id]
	if !ok {
		t.Fatalf("added rect %q missing", id)
	}
	if r.X != 7 || r.W != 5 || r.H != 1 {
		t.Errorf("rect = %+v, want clamped x=7 w=5 h=1", r)
	}
	if r.Z != 3 {
		t.Errorf("z = %d, want 3 (front)", r.Z)
	}
	ps := s.Data().Layout.Positions
	if last := ps[len(ps)-1]; last.PositionID != id {
		t.Errorf("last position id = %q, want %q", last.PositionID, id)
	}
}

func TestRemoveRenumbers(t *testing.T) {
	s := New(sample(), cfg)
	if !s.Remove("a") {
		t.Fatal("Remove(a) = false")
	}
	if s.Remove("a") {
		t.Error("second Remove(a) = true")
	}

	rects := s.Rects()
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rects))
	}
	// The synthesized id survives the index shift.
	if got := rects["pos-2"].Z; got != 0 {
		t.Errorf("pos-2 z = %d, want 0", got)
	}
	if got := rects["c"].Z; got != 1 {
		t.Errorf("c z = %d, want 1", got)
	}

	// Reloading the document yields the same rects.
	if got := Derive(s.Data(), cfg, nil).Rects; !reflect.DeepEqual(got, rects) {
		t.Errorf("re-derived = %+v, want %+v", got, rects)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	data := sample()
	data.Name = "demo"

	for _, name := range []string{"layout.json", "layout.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			if err := Save(path, data); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(Derive(got, cfg, nil).Rects, Derive(data, cfg, nil).Rects) {
				t.Error("loaded layout derives different rects")
			}
			if got.Name != "demo" {
				t.Errorf("Name = %q, want demo", got.Name)
			}
		})
	}

	files, err := LoadLayoutFiles(filepath.Join(dir, "nested"))
	if err != nil {
		t.Fatalf("LoadLayoutFiles: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewBlockData(t *testing.T) {
	data := NewBlockData("grid", 5, 12, 4, 2)
	rects := Derive(data, cfg, nil).Rects
	if len(rects) != 5 {
		t.Fatalf("got %d rects, want 5", len(rects))
	}
	if r := rects["block-4"]; r.X != 0 || r.Y != 2 {
		t.Errorf("block-4 = %+v, want wrapped to x=0 y=2", r)
	}
	for _, r := range rects {
		if r != grid.Clamp(r, cfg.Columns) {
			t.Errorf("%s is outside the grid: %+v", r.ID, r)
		}
	}
}
