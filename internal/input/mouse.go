package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/app"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
)

// selectionModifiers toggle and extend the selection instead of replacing it.
const selectionModifiers = tea.ModShift | tea.ModCtrl | tea.ModAlt

func hasModifier(mod tea.KeyMod) bool {
	return mod&selectionModifiers != 0
}

// handleMouseClick starts a gesture on a left click inside the grid area.
func handleMouseClick(msg tea.MouseClickMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	e.LastMouseX, e.LastMouseY = mouse.X, mouse.Y

	if e.ShowHelp {
		e.ShowHelp = false
		return e, nil
	}
	if mouse.Button != tea.MouseLeft || mouse.Y >= e.CanvasHeight() {
		return e, nil
	}

	e.Pressed = true
	e.Dispatch(engine.PointerDown{
		Point:    e.PointAt(mouse.X, mouse.Y),
		Modifier: hasModifier(mouse.Mod),
	})
	return e, e.AfterChange()
}

// handleMouseMotion tracks the active gesture, or the hovered block when idle.
func handleMouseMotion(msg tea.MouseMotionMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	e.LastMouseX, e.LastMouseY = mouse.X, mouse.Y

	// The status bar is outside the grid surface.
	if mouse.Y >= e.CanvasHeight() && !e.Controller.State.Active() {
		e.Dispatch(engine.PointerLeave{})
		return e, nil
	}
	e.Dispatch(engine.PointerMove{Point: e.PointAt(mouse.X, mouse.Y)})
	return e, nil
}

// handleMouseRelease commits the active gesture.
func handleMouseRelease(msg tea.MouseReleaseMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	e.LastMouseX, e.LastMouseY = mouse.X, mouse.Y

	if !e.Pressed {
		return e, nil
	}
	e.Pressed = false
	e.Dispatch(engine.PointerUp{Point: e.PointAt(mouse.X, mouse.Y)})
	return e, e.AfterChange()
}

// handleMouseWheel re-stacks the selection: wheel up brings it forward.
func handleMouseWheel(msg tea.MouseWheelMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Y >= e.CanvasHeight() {
		return e, nil
	}

	var dy float64
	switch mouse.Button {
	case tea.MouseWheelUp:
		dy = -1
	case tea.MouseWheelDown:
		dy = 1
	default:
		return e, nil
	}
	e.Dispatch(engine.Wheel{Point: e.PointAt(mouse.X, mouse.Y), DeltaY: dy})
	return e, e.AfterChange()
}
