// Package input routes bubbletea key and mouse messages to the block editor.
//
// Mouse messages become engine events in virtual pixel coordinates; key
// presses are resolved to actions through the configured keybind registry.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, e *app.Editor) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, e)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, e)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, e)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, e)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, e)
	}
	return e, nil
}
