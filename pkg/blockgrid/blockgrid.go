// Package blockgrid provides a reusable terminal block layout editor that
// can be embedded in other Bubble Tea applications or used as a standalone TUI.
//
// Blocks live on a column grid. They can be selected, dragged, resized from
// their corners, rubber-band selected and re-stacked with the mouse wheel.
//
// # Basic Usage
//
// Edit a layout file with default options:
//
//	model, err := blockgrid.New(blockgrid.WithLayoutFile("home.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tea.NewProgram(model, blockgrid.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model, err := blockgrid.New(
//		blockgrid.WithTheme("dracula"),
//		blockgrid.WithColumns(24),
//		blockgrid.WithPreview(true),
//	)
package blockgrid

import (
	"errors"
	"io/fs"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/app"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/input"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
	"github.com/charmbracelet/log"
)

// Model is the block editor model. It implements tea.Model.
type Model = app.Editor

// BlockData is a layout document.
type BlockData = store.BlockData

// Options configures the editor.
type Options struct {
	// Theme is the color theme name (empty for terminal colors)
	Theme string

	// ASCIIOnly uses ASCII characters instead of Unicode glyphs
	ASCIIOnly bool

	// BorderStyle sets the block border style
	BorderStyle string

	// HideGrid hides the grid dots
	HideGrid bool

	// Columns overrides the grid column count
	Columns int

	// Preview starts in read-only preview mode
	Preview bool

	// Autosave writes the layout after every change
	Autosave bool

	// LayoutFile is the document to open and save. A missing file starts
	// an empty layout that is created on first save.
	LayoutFile string

	// Data is edited instead of LayoutFile's contents when non-nil
	Data *BlockData

	// Width and Height set the initial size (0 waits for a resize message)
	Width  int
	Height int

	// SSHMode marks the editor as serving a remote session
	SSHMode bool

	// UserConfig overrides loading the user's configuration file
	UserConfig *config.UserConfig

	// Logger receives editor logs (nil discards them)
	Logger *log.Logger
}

// Option is a functional option for configuring the editor.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only mode.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the block border style.
// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii".
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithHideGrid hides the grid dots.
func WithHideGrid(hide bool) Option {
	return func(o *Options) {
		o.HideGrid = hide
	}
}

// WithColumns overrides the grid column count.
func WithColumns(n int) Option {
	return func(o *Options) {
		o.Columns = min(max(n, 0), config.MaxColumns)
	}
}

// WithPreview starts the editor in preview mode.
func WithPreview(enabled bool) Option {
	return func(o *Options) {
		o.Preview = enabled
	}
}

// WithAutosave saves the layout after every change.
func WithAutosave(enabled bool) Option {
	return func(o *Options) {
		o.Autosave = enabled
	}
}

// WithLayoutFile sets the document to open and save.
func WithLayoutFile(path string) Option {
	return func(o *Options) {
		o.LayoutFile = path
	}
}

// WithData edits data in memory. Combine with WithLayoutFile to save it.
func WithData(data BlockData) Option {
	return func(o *Options) {
		o.Data = &data
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSSHMode marks the editor as serving an SSH session.
func WithSSHMode(enabled bool) Option {
	return func(o *Options) {
		o.SSHMode = enabled
	}
}

// WithUserConfig uses cfg instead of loading the configuration file.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithLogger sets the editor logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// New creates an editor with the given options.
func New(opts ...Option) (*Model, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY provides the terminal size of a remote session.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates an editor sized for a remote PTY.
func NewForPTY(pty PTY, opts ...Option) (*Model, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) (*Model, error) {
	// Set up input handler
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:   options.ASCIIOnly,
		BorderStyle: options.BorderStyle,
		HideGrid:    options.HideGrid,
		Autosave:    options.Autosave,
		Columns:     options.Columns,
		Preview:     options.Preview,
		ThemeName:   options.Theme,
	}, userConfig)

	var data BlockData
	switch {
	case options.Data != nil:
		data = *options.Data
	case options.LayoutFile != "":
		loaded, err := store.Load(options.LayoutFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		data = loaded
	}

	e := app.NewEditor(app.Options{
		Data:   data,
		Path:   options.LayoutFile,
		Config: userConfig,
		Logger: options.Logger,
	})
	e.Width, e.Height = options.Width, options.Height
	e.IsSSHMode = options.SSHMode
	return e, nil
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the editor:
//
//	p := tea.NewProgram(model, blockgrid.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops motion events
// that stay in the same cell while no gesture is active. Hover only changes
// when the pointer crosses a cell boundary.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}

	e, ok := model.(*Model)
	if !ok {
		return msg
	}

	if e.Pressed || e.Controller.State.Active() {
		return msg
	}

	mouse := motion.Mouse()
	if mouse.X == e.LastMouseX && mouse.Y == e.LastMouseY {
		return nil
	}
	return msg
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
