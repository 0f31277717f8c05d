package blockgrid

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
)

func resetGlobals(t *testing.T) {
	t.Cleanup(func() {
		config.UseASCIIOnly = false
		config.BorderStyle = "rounded"
		config.ShowGrid = true
		config.Autosave = false
	})
}

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func TestNewMissingFileStartsEmpty(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "new.json")

	m, err := New(WithUserConfig(config.DefaultConfig()), WithLayoutFile(path), WithColumns(24))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(m.Store.Rects()) != 0 || m.Path != path {
		t.Errorf("rects=%d path=%q", len(m.Store.Rects()), m.Path)
	}
	if m.Store.Config().Columns != 24 {
		t.Errorf("columns = %d, want 24", m.Store.Config().Columns)
	}
}

func TestNewLoadsLayout(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "home.toml")
	if err := store.Save(path, store.NewBlockData("home", 4, 12, 3, 2)); err != nil {
		t.Fatal(err)
	}

	m, err := NewForPTY(fakePTY{100, 40},
		WithUserConfig(config.DefaultConfig()),
		WithLayoutFile(path),
		WithPreview(true),
	)
	if err != nil {
		t.Fatalf("NewForPTY: %v", err)
	}
	if len(m.Store.Rects()) != 4 {
		t.Errorf("rects = %d, want 4", len(m.Store.Rects()))
	}
	if m.Width != 100 || m.Height != 40 || m.Mode() != grid.ModePreview {
		t.Errorf("size %dx%d mode %s", m.Width, m.Height, m.Mode())
	}
}

func TestNewRejectsBrokenLayout(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(WithUserConfig(config.DefaultConfig()), WithLayoutFile(path)); err == nil {
		t.Error("expected an error for a malformed layout")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	resetGlobals(t)
	m, err := New(WithUserConfig(config.DefaultConfig()), WithData(store.NewBlockData("", 1, 12, 3, 2)), WithSize(80, 24))
	if err != nil {
		t.Fatal(err)
	}
	m.LastMouseX, m.LastMouseY = 5, 2

	same := tea.MouseMotionMsg{X: 5, Y: 2}
	if FilterMouseMotion(m, same) != nil {
		t.Error("motion within the same cell passed while idle")
	}
	if FilterMouseMotion(m, tea.MouseMotionMsg{X: 6, Y: 2}) == nil {
		t.Error("motion to a new cell was dropped")
	}

	m.Dispatch(engine.PointerDown{Point: m.PointAt(5, 2)})
	if FilterMouseMotion(m, same) == nil {
		t.Error("motion dropped during a gesture")
	}

	key := tea.KeyPressMsg{Code: 'n', Text: "n"}
	if FilterMouseMotion(m, key) == nil {
		t.Error("non-motion message dropped")
	}
}
