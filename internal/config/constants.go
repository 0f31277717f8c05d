// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"slices"
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Grid Defaults
// =============================================================================

// Grid metrics are expressed in virtual pixels. The terminal host maps one
// cell to CellWidth x CellHeight of them.
const (
	// DefaultColumns is the number of grid columns
	DefaultColumns = 12

	// DefaultRowHeight is the pixel height of one grid row
	DefaultRowHeight = 32.0

	// DefaultPadding is the pixel inset between the container edge and column 0
	DefaultPadding = 16.0

	// DefaultStepX is the pixel width of one grid column
	DefaultStepX = 48.0

	// DefaultStepY is the pixel height of one grid step
	DefaultStepY = 32.0

	// DefaultGutter is the gap drawn between neighbouring blocks
	DefaultGutter = 0.0

	// DefaultCellWidth is the virtual pixel width of one terminal cell
	DefaultCellWidth = 8

	// DefaultCellHeight is the virtual pixel height of one terminal cell
	DefaultCellHeight = 16

	// MaxColumns bounds the column count accepted from config
	MaxColumns = 240
)

// =============================================================================
// Block Defaults
// =============================================================================

const (
	// DefaultBlockWidth is the width, in columns, of a block created from the keyboard
	DefaultBlockWidth = 3

	// DefaultBlockHeight is the height, in rows, of a block created from the keyboard
	DefaultBlockHeight = 2

	// HandleSize is the side, in virtual pixels, of a resize handle hit box
	HandleSize = 16.0
)

// =============================================================================
// FPS and Timing
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation
	NormalFPS = 60

	// NotificationDuration is how long status messages stay visible
	NotificationDuration = 2 * time.Second

	// AutosaveDelay is the quiet period after a change before autosave writes
	AutosaveDelay = 750 * time.Millisecond
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// StatusBarHeight is the height of the status line at the bottom
	StatusBarHeight = 1

	// HelpWidth is the width of the help overlay
	HelpWidth = 56
)

// =============================================================================
// Z-Index Layers
// =============================================================================

// Blocks are drawn at ZIndexBlocks + rect z; everything the editor draws on
// top of them sits above any plausible stack height.
const (
	ZIndexGrid         = 0
	ZIndexBlocks       = 1
	ZIndexGhost        = 1_000_000
	ZIndexHandles      = ZIndexGhost + 1
	ZIndexMarquee      = ZIndexGhost + 2
	ZIndexStatus       = ZIndexGhost + 3
	ZIndexNotification = ZIndexGhost + 4
	ZIndexHelp         = ZIndexGhost + 5
)

// =============================================================================
// Glyphs
// =============================================================================

const (
	// GridDot marks a column/row intersection when the grid is shown
	GridDot = "·"

	// GridDotASCII is the ASCII fallback for GridDot
	GridDotASCII = "."

	// HandleGlyph marks a resize handle on the selected block
	HandleGlyph = "■"

	// HandleGlyphASCII is the ASCII fallback for HandleGlyph
	HandleGlyphASCII = "#"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters
// Set via --ascii-only command-line flag
var UseASCIIOnly = false

// BorderStyle controls which border style to use for blocks
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// ShowGrid controls whether grid dots are drawn behind the blocks
// Set via --hide-grid flag or appearance.show_grid config
var ShowGrid = true

// Autosave writes the layout after every committed change
// Set via --autosave flag or editor.autosave config
var Autosave = false

// GetGridDot returns the grid marker based on UseASCIIOnly
func GetGridDot() string {
	if UseASCIIOnly {
		return GridDotASCII
	}
	return GridDot
}

// GetHandleGlyph returns the handle marker based on UseASCIIOnly
func GetHandleGlyph() string {
	if UseASCIIOnly {
		return HandleGlyphASCII
	}
	return HandleGlyph
}

// GetBorderForStyle returns the lipgloss border for the configured style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

// NextBorderStyle advances BorderStyle to the next entry in BorderStyles
// and returns it.
func NextBorderStyle() string {
	i := slices.Index(BorderStyles, BorderStyle)
	BorderStyle = BorderStyles[(i+1)%len(BorderStyles)]
	return BorderStyle
}
