package tape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/blockgrid/internal/app"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// ErrReadOnly is returned for edits attempted in preview mode.
var ErrReadOnly = errors.New("layout is in preview mode")

// Executor is the editing surface a tape drives. Coordinates are terminal
// cells.
type Executor interface {
	PointerDown(x, y int, modifier bool) error
	PointerMove(x, y int) error
	PointerUp(x, y int) error
	PointerLeave() error
	Wheel(x, y int, forward bool) error

	Select(ids ...string) error
	SelectAll() error
	Nudge(dx, dy int) error
	NewBlock() error
	DeleteSelection() error
	SetMode(mode string) error
}

// CommandExecutor runs commands against an Executor, remembering the last
// pointer position for commands that omit it.
type CommandExecutor struct {
	executor Executor
	x, y     int
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Run executes cmds in order and stops at the first error.
func (ce *CommandExecutor) Run(cmds []Command) error {
	for _, cmd := range cmds {
		if err := ce.Execute(cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd, err)
		}
	}
	return nil
}

// Execute executes a command
func (ce *CommandExecutor) Execute(cmd Command) error {
	if ce.executor == nil {
		return nil
	}
	ex := ce.executor

	switch cmd.Type {
	case CommandTypeDown:
		ce.x, ce.y = cmd.Ints[0], cmd.Ints[1]
		return ex.PointerDown(ce.x, ce.y, cmd.Modifier)

	case CommandTypeMove:
		ce.x, ce.y = cmd.Ints[0], cmd.Ints[1]
		return ex.PointerMove(ce.x, ce.y)

	case CommandTypeUp:
		if len(cmd.Ints) == 2 {
			ce.x, ce.y = cmd.Ints[0], cmd.Ints[1]
		}
		return ex.PointerUp(ce.x, ce.y)

	case CommandTypeClick:
		ce.x, ce.y = cmd.Ints[0], cmd.Ints[1]
		if err := ex.PointerDown(ce.x, ce.y, cmd.Modifier); err != nil {
			return err
		}
		return ex.PointerUp(ce.x, ce.y)

	case CommandTypeDrag:
		if err := ex.PointerDown(cmd.Ints[0], cmd.Ints[1], cmd.Modifier); err != nil {
			return err
		}
		ce.x, ce.y = cmd.Ints[2], cmd.Ints[3]
		if err := ex.PointerMove(ce.x, ce.y); err != nil {
			return err
		}
		return ex.PointerUp(ce.x, ce.y)

	case CommandTypeWheel:
		return ex.Wheel(ce.x, ce.y, strings.EqualFold(cmd.Args[0], "up"))

	case CommandTypeLeave:
		return ex.PointerLeave()

	case CommandTypeSelect:
		return ex.Select(cmd.Args...)

	case CommandTypeSelectAll:
		return ex.SelectAll()

	case CommandTypeNudge:
		return ex.Nudge(cmd.Ints[0], cmd.Ints[1])

	case CommandTypeNew:
		return ex.NewBlock()

	case CommandTypeDelete:
		return ex.DeleteSelection()

	case CommandTypeMode:
		return ex.SetMode(strings.ToLower(cmd.Args[0]))
	}

	return nil
}

var _ Executor = EditorExecutor{}

// EditorExecutor drives an app.Editor the way the mouse and keyboard
// handlers do.
type EditorExecutor struct {
	Editor *app.Editor
}

func (x EditorExecutor) PointerDown(cx, cy int, modifier bool) error {
	e := x.Editor
	e.LastMouseX, e.LastMouseY = cx, cy
	e.Pressed = true
	e.Dispatch(engine.PointerDown{Point: e.PointAt(cx, cy), Modifier: modifier})
	return nil
}

func (x EditorExecutor) PointerMove(cx, cy int) error {
	e := x.Editor
	e.LastMouseX, e.LastMouseY = cx, cy
	e.Dispatch(engine.PointerMove{Point: e.PointAt(cx, cy)})
	return nil
}

func (x EditorExecutor) PointerUp(cx, cy int) error {
	e := x.Editor
	e.LastMouseX, e.LastMouseY = cx, cy
	if !e.Pressed {
		return nil
	}
	e.Pressed = false
	e.Dispatch(engine.PointerUp{Point: e.PointAt(cx, cy)})
	return nil
}

func (x EditorExecutor) PointerLeave() error {
	x.Editor.Pressed = false
	x.Editor.Dispatch(engine.PointerLeave{})
	return nil
}

func (x EditorExecutor) Wheel(cx, cy int, forward bool) error {
	dy := 1.0
	if forward {
		dy = -1
	}
	x.Editor.Dispatch(engine.Wheel{Point: x.Editor.PointAt(cx, cy), DeltaY: dy})
	return nil
}

func (x EditorExecutor) Select(ids ...string) error {
	rects := x.Editor.Store.Rects()
	for _, id := range ids {
		if _, ok := rects[id]; !ok {
			return fmt.Errorf("no block with id %q", id)
		}
	}
	x.Editor.Controller.Select(ids...)
	return nil
}

func (x EditorExecutor) SelectAll() error {
	x.Editor.Controller.SelectAll()
	return nil
}

func (x EditorExecutor) Nudge(dx, dy int) error {
	if x.Editor.Mode() == grid.ModePreview {
		return ErrReadOnly
	}
	x.Editor.Controller.Nudge(dx, dy)
	return nil
}

func (x EditorExecutor) NewBlock() error {
	if x.Editor.NewBlock() == "" {
		return ErrReadOnly
	}
	return nil
}

func (x EditorExecutor) DeleteSelection() error {
	if x.Editor.Mode() == grid.ModePreview {
		return ErrReadOnly
	}
	x.Editor.DeleteSelection()
	return nil
}

func (x EditorExecutor) SetMode(mode string) error {
	if string(x.Editor.Mode()) != mode {
		x.Editor.ToggleMode()
	}
	return nil
}
