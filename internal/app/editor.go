// Package app provides the terminal block editor: the bubbletea model that
// owns a layout, draws it and applies engine notifications.
package app

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"
)

// ErrNoLayoutPath is returned by Save when the editor was opened without a file.
var ErrNoLayoutPath = errors.New("no layout file to save to")

// Notification represents a temporary status message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// Options configures a new Editor.
type Options struct {
	// Data is the layout document to edit.
	Data store.BlockData
	// Path is where Save writes the document. Empty disables saving.
	Path string
	// Config supplies grid metrics, cell size and keybindings. Nil means defaults.
	Config *config.UserConfig
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Editor is the block editor model. It is a tea.Model; input is routed to it
// through the handler registered with SetInputHandler.
type Editor struct {
	Store      *store.Store
	Controller *engine.Controller
	Path       string

	Width      int
	Height     int
	CellWidth  int // virtual pixels per terminal column
	CellHeight int // virtual pixels per terminal row

	LastMouseX int
	LastMouseY int
	// Pressed is true between a left click and its release.
	Pressed bool

	ShowHelp        bool
	Notifications   []Notification
	KeybindRegistry *config.KeybindRegistry
	Logger          *log.Logger

	// SSH mode fields
	SSHSession ssh.Session // SSH session reference (nil in local mode)
	IsSSHMode  bool

	ticking   bool
	changeSeq int
}

// NewEditor creates an editor for opts.Data.
func NewEditor(opts Options) *Editor {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	st := store.New(opts.Data, cfg.GridConfig())
	e := &Editor{
		Store:           st,
		Controller:      engine.NewController(st),
		Path:            opts.Path,
		CellWidth:       max(cfg.Appearance.CellWidth, 1),
		CellHeight:      max(cfg.Appearance.CellHeight, 1),
		KeybindRegistry: config.NewKeybindRegistry(cfg.Keybindings),
		Logger:          logger,
		LastMouseX:      -1,
		LastMouseY:      -1,
	}
	// Handles must cover the corner cell on both axes.
	e.Controller.HandleSize = float64(2 * max(e.CellWidth, e.CellHeight))
	e.Controller.OnNotify = e.logNotification
	return e
}

func createID() string {
	return uuid.New().String()
}

func (m *Editor) logNotification(n engine.Notification) {
	switch n := n.(type) {
	case engine.SelectionChange:
		m.Logger.Debug("selection changed", "ids", n.IDs)
	case engine.RectUpdate:
		m.Logger.Debug("rects committed", "patches", len(n.Patches))
	}
}

// ShowNotification displays a temporary status message and logs it.
func (m *Editor) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		m.Logger.Error(message)
	case "warning":
		m.Logger.Warn(message)
	default:
		m.Logger.Info(message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *Editor) CleanupNotifications() {
	now := time.Now()
	m.Notifications = slices.DeleteFunc(m.Notifications, func(n Notification) bool {
		return now.Sub(n.StartTime) >= n.Duration
	})
}

// Mode returns the current grid mode.
func (m *Editor) Mode() grid.Mode {
	return m.Store.Config().Mode
}

// PointAt maps a terminal cell to the virtual pixel at its centre.
func (m *Editor) PointAt(x, y int) grid.Point {
	return grid.Point{
		X: float64(x*m.CellWidth) + float64(m.CellWidth)/2,
		Y: float64(y*m.CellHeight) + float64(m.CellHeight)/2,
	}
}

// CellBox maps pixel bounds to the terminal cells that cover them.
func (m *Editor) CellBox(b grid.Bounds) (x, y, w, h int) {
	cw, ch := float64(m.CellWidth), float64(m.CellHeight)
	x = int(math.Floor(b.Left / cw))
	y = int(math.Floor(b.Top / ch))
	w = int(math.Ceil(b.Right/cw)) - x
	h = int(math.Ceil(b.Bottom/ch)) - y
	return x, y, w, h
}

// CanvasHeight is the number of rows available to the grid.
func (m *Editor) CanvasHeight() int {
	return max(m.Height-config.StatusBarHeight, 0)
}

// Dispatch forwards ev to the controller.
func (m *Editor) Dispatch(ev engine.Event) []engine.Notification {
	return m.Controller.Dispatch(ev)
}

// NewBlock adds a block of the default size under the last pointer position,
// or below every existing block when the pointer is off the grid. The new
// block becomes the selection.
func (m *Editor) NewBlock() string {
	if !m.Store.Config().Editable() {
		return ""
	}
	cfg := m.Store.Config()
	r := grid.Rect{W: config.DefaultBlockWidth, H: config.DefaultBlockHeight}

	placed := false
	if m.LastMouseX >= 0 && m.LastMouseY >= 0 {
		p := m.PointAt(m.LastMouseX, m.LastMouseY)
		gx, gy := grid.ToGrid(p.X, p.Y, cfg)
		if gx >= 0 && gy >= 0 && gx < cfg.Columns {
			r.X, r.Y = gx, gy
			placed = true
		}
	}
	if !placed {
		for _, existing := range m.Store.Rects() {
			r.Y = max(r.Y, existing.Bottom())
		}
	}

	id := m.Store.Add(r)
	m.Controller.Select(id)
	m.Logger.Debug("block added", "id", id)
	return id
}

// DeleteSelection removes every selected block and returns how many went.
func (m *Editor) DeleteSelection() int {
	if !m.Store.Config().Editable() || m.Controller.State.Active() {
		return 0
	}
	n := 0
	for _, id := range m.Controller.Selection {
		if m.Store.Remove(id) {
			n++
		}
	}
	m.Controller.Prune()
	if n > 0 {
		m.Logger.Debug("blocks removed", "count", n)
	}
	return n
}

// ToggleMode switches between design and preview. An active gesture is
// dropped, since preview accepts none.
func (m *Editor) ToggleMode() grid.Mode {
	cfg := m.Store.Config()
	if cfg.Mode == grid.ModeDesign {
		cfg.Mode = grid.ModePreview
	} else {
		cfg.Mode = grid.ModeDesign
	}
	m.Controller.Cancel()
	m.Store.SetConfig(cfg)
	return cfg.Mode
}

// CycleSelection selects the next (delta > 0) or previous block in stacking
// order, wrapping at either end.
func (m *Editor) CycleSelection(delta int) {
	sorted := m.Store.Rects().Sorted()
	if len(sorted) == 0 {
		return
	}
	next := 0
	if delta < 0 {
		next = len(sorted) - 1
	}
	if len(m.Controller.Selection) > 0 {
		cur := slices.IndexFunc(sorted, func(r grid.Rect) bool {
			return r.ID == m.Controller.Selection[0]
		})
		if cur >= 0 {
			next = (cur + delta + len(sorted)) % len(sorted)
		}
	}
	m.Controller.Select(sorted[next].ID)
}

// Save writes the layout to Path.
func (m *Editor) Save() error {
	if m.Path == "" {
		return ErrNoLayoutPath
	}
	if err := store.Save(m.Path, m.Store.Data()); err != nil {
		return err
	}
	m.Store.MarkClean()
	m.Logger.Info("layout saved", "path", m.Path)
	return nil
}

// SaveAndNotify saves and reports the result in the status bar.
func (m *Editor) SaveAndNotify() {
	if err := m.Save(); err != nil {
		m.ShowNotification(fmt.Sprintf("Save failed: %v", err), "error", config.NotificationDuration)
		return
	}
	m.ShowNotification("Saved "+m.Path, "success", config.NotificationDuration)
}
