package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
)

// TickerMsg represents a periodic tick while notifications are on screen.
type TickerMsg time.Time

// AutosaveMsg fires once the layout has been quiet for AutosaveDelay.
// Seq identifies the change that scheduled it; stale ticks are ignored.
type AutosaveMsg struct {
	Seq int
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, e *Editor) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the notification ticker if a message is already queued.
func (m *Editor) Init() tea.Cmd {
	return m.scheduleTick()
}

// TickCmd creates a command that generates tick messages at NormalFPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

func (m *Editor) scheduleTick() tea.Cmd {
	if m.ticking || len(m.Notifications) == 0 {
		return nil
	}
	m.ticking = true
	return TickCmd()
}

// AfterChange is called by input handlers once a message has been applied.
// It schedules an autosave when the layout is dirty and keeps the ticker
// alive while notifications are showing.
func (m *Editor) AfterChange() tea.Cmd {
	var cmds []tea.Cmd
	if config.Autosave && m.Path != "" && m.Store.Dirty() && !m.Controller.State.Active() {
		m.changeSeq++
		seq := m.changeSeq
		cmds = append(cmds, tea.Tick(config.AutosaveDelay, func(time.Time) tea.Msg {
			return AutosaveMsg{Seq: seq}
		}))
	}
	if cmd := m.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the editor state.
func (m *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.CleanupNotifications()
		if len(m.Notifications) == 0 {
			m.ticking = false
			return m, nil
		}
		return m, TickCmd()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case AutosaveMsg:
		if msg.Seq != m.changeSeq || !m.Store.Dirty() {
			return m, nil
		}
		if err := m.Save(); err != nil {
			m.ShowNotification("Autosave failed: "+err.Error(), "error", config.NotificationDuration)
		}
		return m, m.scheduleTick()

	case tea.BlurMsg:
		m.Pressed = false
		m.Dispatch(engine.PointerLeave{})
		return m, nil
	}

	if inputHandler != nil {
		return inputHandler(msg, m)
	}
	return m, nil
}
