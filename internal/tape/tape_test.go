package tape

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/blockgrid/internal/app"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
)

func TestParse(t *testing.T) {
	src := `
# comment
click 5 2
Drag 5 2 11 4 mod
UP
Up 3 4
wheel Up
Select A B
Mode preview
`
	cmds, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []struct {
		typ  CommandType
		ints []int
		mod  bool
		line int
	}{
		{CommandTypeClick, []int{5, 2}, false, 3},
		{CommandTypeDrag, []int{5, 2, 11, 4}, true, 4},
		{CommandTypeUp, nil, false, 5},
		{CommandTypeUp, []int{3, 4}, false, 6},
		{CommandTypeWheel, nil, false, 7},
		{CommandTypeSelect, nil, false, 8},
		{CommandTypeMode, nil, false, 9},
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, w := range want {
		c := cmds[i]
		if c.Type != w.typ || !slices.Equal(c.Ints, w.ints) || c.Modifier != w.mod || c.Line != w.line {
			t.Errorf("cmd %d = %+v", i, c)
		}
	}
	if got := cmds[5].Args; !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("select args = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown", "Jump 1 2"},
		{"missing args", "Down 1"},
		{"too many args", "Move 1 2 3"},
		{"not a number", "Click a 2"},
		{"single up coordinate", "Up 3"},
		{"bad wheel", "Wheel left"},
		{"bad mode", "Mode edit"},
		{"modifier not allowed", "Move 1 2 mod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader("\n" + tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "line 2:") {
				t.Errorf("error %q lacks line number", err)
			}
		})
	}

	_, err := Parse(strings.NewReader("Jump"))
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v, want ErrUnknownCommand", err)
	}
}

func intp(v int) *int { return &v }

func newEditor(t *testing.T, rects ...[4]int) *app.Editor {
	t.Helper()
	data := store.BlockData{Name: "tape"}
	for i, r := range rects {
		data.Layout.Positions = append(data.Layout.Positions, store.Position{
			PositionID: string(rune('A' + i)),
			X:          intp(r[0]),
			Y:          intp(r[1]),
			W:          intp(r[2]),
			H:          intp(r[3]),
			Z:          intp(i),
		})
	}
	e := app.NewEditor(app.Options{Data: data, Path: filepath.Join(t.TempDir(), "tape.json")})
	e.Width, e.Height = 120, 30
	return e
}

func run(t *testing.T, e *app.Editor, src string) error {
	t.Helper()
	cmds, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return NewCommandExecutor(EditorExecutor{Editor: e}).Run(cmds)
}

func TestRunDrag(t *testing.T) {
	e := newEditor(t, [4]int{0, 0, 3, 2})

	if err := run(t, e, "Drag 5 2 11 4"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r := e.Store.Rects()["A"]; r.X != 1 || r.Y != 1 {
		t.Errorf("A = %+v, want x=1 y=1", r)
	}
	if e.Controller.State.Active() || e.Pressed {
		t.Error("gesture still active after drag")
	}
}

func TestRunStepwiseGesture(t *testing.T) {
	e := newEditor(t, [4]int{0, 0, 3, 2})

	if err := run(t, e, "Down 5 2\nMove 8 2\nMove 11 4\nUp"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r := e.Store.Rects()["A"]; r.X != 1 || r.Y != 1 {
		t.Errorf("A = %+v, want x=1 y=1", r)
	}
}

func TestRunSelectAndRestack(t *testing.T) {
	e := newEditor(t, [4]int{0, 0, 3, 2}, [4]int{1, 0, 3, 2})

	if err := run(t, e, "Select A\nWheel up"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rects := e.Store.Rects()
	if rects["A"].Z <= rects["B"].Z {
		t.Errorf("A.z=%d B.z=%d, want A in front", rects["A"].Z, rects["B"].Z)
	}

	if err := run(t, e, "Select nope"); err == nil {
		t.Error("unknown id accepted")
	}
}

func TestRunNudgeAndDelete(t *testing.T) {
	e := newEditor(t, [4]int{0, 0, 3, 2}, [4]int{6, 0, 3, 2})

	if err := run(t, e, "Select A\nNudge 2 1\nSelect B\nDelete"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	rects := e.Store.Rects()
	if len(rects) != 1 {
		t.Fatalf("rects = %+v, want only A", rects)
	}
	if r := rects["A"]; r.X != 2 || r.Y != 1 {
		t.Errorf("A = %+v, want x=2 y=1", r)
	}
}

func TestRunPreviewIsReadOnly(t *testing.T) {
	e := newEditor(t, [4]int{0, 0, 3, 2})

	err := run(t, e, "Mode preview\nNew")
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("err = %v, want ErrReadOnly", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q lacks the failing line", err)
	}
	if e.Mode() != grid.ModePreview {
		t.Errorf("mode = %s", e.Mode())
	}

	if err := run(t, e, "Mode design\nNew"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(e.Store.Rects()) != 2 {
		t.Errorf("rects = %d, want 2", len(e.Store.Rects()))
	}
}
