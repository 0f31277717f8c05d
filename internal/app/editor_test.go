package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
	"github.com/charmbracelet/x/ansi"
)

func newTestEditor(t *testing.T, blocks int) *Editor {
	t.Helper()
	e := NewEditor(Options{
		Data: store.NewBlockData("demo", blocks, config.DefaultColumns, 3, 2),
		Path: filepath.Join(t.TempDir(), "demo.json"),
	})
	e.Width, e.Height = 120, 30
	return e
}

func TestPointAtAndCellBox(t *testing.T) {
	e := newTestEditor(t, 0)

	if p := e.PointAt(2, 1); p != (grid.Point{X: 20, Y: 24}) {
		t.Errorf("PointAt(2, 1) = %+v", p)
	}

	b := grid.PixelBounds(grid.Rect{W: 3, H: 2}, e.Store.Config())
	x, y, w, h := e.CellBox(b)
	if x != 2 || y != 1 || w != 18 || h != 4 {
		t.Errorf("CellBox = %d,%d %dx%d, want 2,1 18x4", x, y, w, h)
	}
}

func TestNewBlockUnderPointer(t *testing.T) {
	e := newTestEditor(t, 0)
	e.LastMouseX, e.LastMouseY = 8, 3

	id := e.NewBlock()
	r, ok := e.Store.Rects()[id]
	if !ok {
		t.Fatal("new block missing from store")
	}
	if r.X != 1 || r.Y != 1 || r.W != config.DefaultBlockWidth || r.H != config.DefaultBlockHeight {
		t.Errorf("new block = %+v", r)
	}
	if len(e.Controller.Selection) != 1 || e.Controller.Selection[0] != id {
		t.Errorf("selection = %v, want [%s]", e.Controller.Selection, id)
	}
}

func TestNewBlockBelowExisting(t *testing.T) {
	e := newTestEditor(t, 1)

	id := e.NewBlock()
	if r := e.Store.Rects()[id]; r.Y != 2 || r.X != 0 {
		t.Errorf("new block = %+v, want below block-1", r)
	}
}

func TestPreviewBlocksEdits(t *testing.T) {
	e := newTestEditor(t, 1)
	e.Controller.Select("block-1")
	if e.ToggleMode() != grid.ModePreview {
		t.Fatal("ToggleMode did not enter preview")
	}

	if e.NewBlock() != "" {
		t.Error("NewBlock in preview")
	}
	if e.DeleteSelection() != 0 {
		t.Error("DeleteSelection in preview")
	}
	if e.ToggleMode() != grid.ModeDesign {
		t.Error("ToggleMode did not return to design")
	}
}

func TestToggleModeCancelsGesture(t *testing.T) {
	e := newTestEditor(t, 1)
	e.Dispatch(engine.PointerDown{Point: e.PointAt(5, 2)})
	if !e.Controller.State.Active() {
		t.Fatal("pointer down on a block did not start a gesture")
	}

	e.ToggleMode()
	if e.Controller.State.Active() {
		t.Error("gesture survived the switch to preview")
	}
}

func TestDeleteSelection(t *testing.T) {
	e := newTestEditor(t, 3)
	e.Controller.Select("block-1", "block-3")

	if n := e.DeleteSelection(); n != 2 {
		t.Fatalf("DeleteSelection() = %d, want 2", n)
	}
	rects := e.Store.Rects()
	if len(rects) != 1 || rects["block-2"].Z != 0 {
		t.Errorf("rects = %+v", rects)
	}
	if len(e.Controller.Selection) != 0 {
		t.Errorf("selection = %v, want empty", e.Controller.Selection)
	}
}

func TestCycleSelection(t *testing.T) {
	e := newTestEditor(t, 3)

	steps := []struct {
		delta int
		want  string
	}{
		{1, "block-1"},
		{1, "block-2"},
		{1, "block-3"},
		{1, "block-1"},
		{-1, "block-3"},
	}
	for i, s := range steps {
		e.CycleSelection(s.delta)
		if got := e.Controller.Selection; len(got) != 1 || got[0] != s.want {
			t.Errorf("step %d: selection = %v, want %s", i, got, s.want)
		}
	}
}

func TestSave(t *testing.T) {
	e := newTestEditor(t, 2)
	e.NewBlock()
	if !e.Store.Dirty() {
		t.Fatal("store not dirty after NewBlock")
	}

	if err := e.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if e.Store.Dirty() {
		t.Error("store still dirty after Save")
	}
	data, err := store.Load(e.Path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Layout.Positions) != 3 {
		t.Errorf("saved %d positions, want 3", len(data.Layout.Positions))
	}

	e.Path = ""
	if err := e.Save(); !errors.Is(err, ErrNoLayoutPath) {
		t.Errorf("Save without path = %v", err)
	}
}

func TestAutosaveIgnoresStaleTicks(t *testing.T) {
	t.Cleanup(func() { config.Autosave = false })
	config.Autosave = true

	e := newTestEditor(t, 1)
	e.NewBlock()
	if cmd := e.AfterChange(); cmd == nil {
		t.Fatal("AfterChange scheduled nothing")
	}
	e.NewBlock()
	e.AfterChange()

	e.Update(AutosaveMsg{Seq: 1})
	if !e.Store.Dirty() {
		t.Error("stale autosave tick saved the layout")
	}
	e.Update(AutosaveMsg{Seq: 2})
	if e.Store.Dirty() {
		t.Error("latest autosave tick did not save")
	}
}

func TestNotificationsExpire(t *testing.T) {
	e := newTestEditor(t, 0)
	e.ShowNotification("gone", "info", 0)
	e.ShowNotification("kept", "info", time.Hour)
	if e.Init() == nil {
		t.Fatal("Init did not start the ticker")
	}

	e.Update(TickerMsg(time.Now()))
	if len(e.Notifications) != 1 || e.Notifications[0].Message != "kept" {
		t.Errorf("notifications = %+v", e.Notifications)
	}
}

func TestRenderShowsBlocksAndStatus(t *testing.T) {
	e := newTestEditor(t, 2)
	e.Controller.Select("block-2")

	out := ansi.Strip(e.GetCanvas().Render())
	for _, want := range []string{"block-1", "block-2", "DESIGN", "2 blocks", "1 selected"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderHelp(t *testing.T) {
	e := newTestEditor(t, 0)
	e.ShowHelp = true

	out := ansi.Strip(e.GetCanvas().Render())
	if !strings.Contains(out, "Bring forward") {
		t.Error("help overlay missing keybindings")
	}
}
