package input

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/app"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// HandleKeyPress resolves a key press to an editor action.
func HandleKeyPress(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	action := e.KeybindRegistry.GetAction(msg.String())

	if e.ShowHelp {
		switch action {
		case config.ActionQuit:
			return quit(e)
		case config.ActionHelp, config.ActionCancelGesture:
			e.ShowHelp = false
		}
		return e, nil
	}

	if action == "" {
		return e, nil
	}
	e.Logger.Debug("key action", "key", msg.String(), "action", action)

	switch action {
	case config.ActionQuit:
		return quit(e)

	case config.ActionHelp:
		e.ShowHelp = true

	case config.ActionNewBlock:
		if e.NewBlock() == "" {
			notifyPreview(e)
		}

	case config.ActionDeleteBlock:
		if n := e.DeleteSelection(); n > 0 {
			e.ShowNotification(fmt.Sprintf("Deleted %d block(s)", n), "info", config.NotificationDuration)
		}

	case config.ActionSave:
		e.SaveAndNotify()

	case config.ActionToggleMode:
		mode := e.ToggleMode()
		e.ShowNotification("Mode: "+string(mode), "info", config.NotificationDuration)

	case config.ActionBringForward:
		e.Controller.Restack(true)

	case config.ActionSendBackward:
		e.Controller.Restack(false)

	case config.ActionSelectAll:
		e.Controller.SelectAll()

	case config.ActionClearSelect:
		e.Controller.Select()

	case config.ActionNextBlock:
		e.CycleSelection(1)

	case config.ActionPrevBlock:
		e.CycleSelection(-1)

	case config.ActionNudgeLeft:
		e.Controller.Nudge(-1, 0)

	case config.ActionNudgeRight:
		e.Controller.Nudge(1, 0)

	case config.ActionNudgeUp:
		e.Controller.Nudge(0, -1)

	case config.ActionNudgeDown:
		e.Controller.Nudge(0, 1)

	case config.ActionToggleGrid:
		config.ShowGrid = !config.ShowGrid

	case config.ActionCycleBorder:
		e.ShowNotification("Border: "+config.NextBorderStyle(), "info", config.NotificationDuration)

	case config.ActionCancelGesture:
		e.Pressed = false
		e.Controller.Cancel()
	}

	return e, e.AfterChange()
}

func notifyPreview(e *app.Editor) {
	if e.Mode() == grid.ModePreview {
		e.ShowNotification("Preview mode is read-only", "warning", config.NotificationDuration)
	}
}

// quit saves pending changes when autosave is on, then exits.
func quit(e *app.Editor) (*app.Editor, tea.Cmd) {
	if config.Autosave && e.Store.Dirty() {
		if err := e.Save(); err != nil {
			e.Logger.Error("save on quit failed", "err", err)
		}
	}
	return e, tea.Quit
}
