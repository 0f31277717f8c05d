// Package theme provides color themes for the block editor and CLI output.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

var fallbackPalette = []color.Color{
	lipgloss.Color("#5c5cff"),
	lipgloss.Color("#00cdcd"),
	lipgloss.Color("#cd00cd"),
	lipgloss.Color("#cdcd00"),
	lipgloss.Color("#00cd00"),
	lipgloss.Color("#cd0000"),
}

// BlockPalette returns the colors blocks cycle through: the theme's own
// palette when it defines one, else its ANSI colors.
func BlockPalette() []color.Color {
	t := Current()
	if t == nil {
		return fallbackPalette
	}
	if p := customPalettes[t.ID]; len(p) > 0 {
		return p
	}
	return []color.Color{t.Blue, t.Cyan, t.Purple, t.Yellow, t.Green, t.Red}
}

// BlockColor picks a stable palette entry for a block. Blocks sharing a
// content id share a color.
func BlockColor(key string) color.Color {
	p := BlockPalette()
	var h uint32 = 2166136261
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= 16777619
	}
	return p[h%uint32(len(p))]
}

// BlockFg returns the label color drawn inside blocks.
func BlockFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// CanvasBg returns the background behind the grid.
func CanvasBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// BorderSelected returns the border color of selected blocks.
func BorderSelected() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// BorderHovered returns the border color of the block under the pointer.
func BorderHovered() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FFFFAF")
	}
	return t.BrightYellow
}

// GhostBorder returns the border color of a block being dragged.
func GhostBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// Handle returns the color of resize handles.
func Handle() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FFFFFF")
	}
	return t.BrightWhite
}

// MarqueeBorder returns the color of the rubber-band rectangle.
func MarqueeBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#FAAAAA")
	}
	return t.BrightPurple
}

// GridDot returns the color of grid markers.
func GridDot() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

// StatusBg returns the status bar background.
func StatusBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1e1e2e")
	}
	return t.Black
}

// StatusFg returns the status bar text color.
func StatusFg() color.Color {
	return BlockFg()
}

// ModeDesign returns the status badge color for design mode.
func ModeDesign() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#4865f2")
	}
	return t.Blue
}

// ModePreview returns the status badge color for preview mode.
func ModePreview() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#4ade80")
	}
	return t.Green
}

// NotificationError returns the color for error messages.
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ef4444")
	}
	return t.Red
}

// NotificationSuccess returns the color for success messages.
func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#4ade80")
	}
	return t.Green
}

// HelpKeyBadge returns the color for key badges in the help overlay.
func HelpKeyBadge() color.Color {
	return lipgloss.Color("11")
}

// HelpGray returns the dimmed help text color.
func HelpGray() color.Color {
	return lipgloss.Color("8")
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the color for CLI table borders.
func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in range 0-65535, convert to 0-255
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
