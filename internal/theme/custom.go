package theme

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the on-disk form of a custom theme:
//
//	display_name = "Paper"
//
//	[colors]
//	fg = "#111111"
//	bg = "#fafafa"
//	bright_cyan = "#0088cc"  # selection border
//
//	[blocks]
//	palette = ["#3355ff", "#ff8800", "#22aa55"]
//
// Color keys are the ANSI names in snake case. Missing colors take xterm
// defaults. An empty palette falls back to the theme's ANSI colors.
type File struct {
	ID          string            `toml:"id"`
	DisplayName string            `toml:"display_name"`
	Colors      map[string]string `toml:"colors"`
	Blocks      struct {
		Palette []string `toml:"palette"`
	} `toml:"blocks"`
}

// CustomTheme is a parsed theme file.
type CustomTheme struct {
	Tint    *tint.Tint
	Palette []color.Color
}

// customPalettes holds the block palettes of registered custom themes by ID.
var customPalettes = map[string][]color.Color{}

// GetThemesDir returns the custom themes directory (~/.config/blockgrid/themes/),
// creating it if needed.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("blockgrid/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes registers every *.toml theme in themesDir and returns the
// loaded IDs. Bad files are logged and skipped.
func LoadCustomThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}

		ct, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			log.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			continue
		}

		tint.Register(ct.Tint)
		if len(ct.Palette) > 0 {
			customPalettes[ct.Tint.ID] = ct.Palette
		} else {
			delete(customPalettes, ct.Tint.ID)
		}
		loaded = append(loaded, ct.Tint.ID)
	}

	return loaded, nil
}

// LoadCustomThemeFile parses a TOML theme. The ID defaults to the lowercased
// file name and the display name to the ID.
func LoadCustomThemeFile(path string) (*CustomTheme, error) {
	// #nosec G304 - themes come from the user's own config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse theme TOML: %w", err)
	}

	t := &tint.Tint{ID: f.ID, DisplayName: f.DisplayName}
	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, errors.New("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	slots := colorSlots(t)
	for key, hex := range f.Colors {
		slot, ok := slots[strings.ToLower(key)]
		if !ok {
			return nil, fmt.Errorf("unknown color %q", key)
		}
		if !validHex(hex) {
			return nil, fmt.Errorf("color %s: invalid hex %q", key, hex)
		}
		*slot = tint.FromHex(hex)
	}
	fillDefaults(t)

	ct := &CustomTheme{Tint: t}
	for i, hex := range f.Blocks.Palette {
		if !validHex(hex) {
			return nil, fmt.Errorf("blocks.palette[%d]: invalid hex %q", i, hex)
		}
		ct.Palette = append(ct.Palette, lipgloss.Color(hex))
	}
	return ct, nil
}

// colorSlots maps theme file keys to the tint fields they set.
func colorSlots(t *tint.Tint) map[string]**tint.Color {
	return map[string]**tint.Color{
		"fg":            &t.Fg,
		"bg":            &t.Bg,
		"cursor":        &t.Cursor,
		"black":         &t.Black,
		"red":           &t.Red,
		"green":         &t.Green,
		"yellow":        &t.Yellow,
		"blue":          &t.Blue,
		"purple":        &t.Purple,
		"cyan":          &t.Cyan,
		"white":         &t.White,
		"bright_black":  &t.BrightBlack,
		"bright_red":    &t.BrightRed,
		"bright_green":  &t.BrightGreen,
		"bright_yellow": &t.BrightYellow,
		"bright_blue":   &t.BrightBlue,
		"bright_purple": &t.BrightPurple,
		"bright_cyan":   &t.BrightCyan,
		"bright_white":  &t.BrightWhite,
	}
}

// validHex accepts #rrggbb.
func validHex(s string) bool {
	h, ok := strings.CutPrefix(s, "#")
	if !ok || len(h) != 6 {
		return false
	}
	_, err := strconv.ParseUint(h, 16, 32)
	return err == nil
}

var xtermDefaults = []struct {
	key string
	hex string
}{
	{"fg", "#e5e5e5"},
	{"bg", "#000000"},
	{"black", "#000000"},
	{"red", "#cd0000"},
	{"green", "#00cd00"},
	{"yellow", "#cdcd00"},
	{"blue", "#0000ee"},
	{"purple", "#cd00cd"},
	{"cyan", "#00cdcd"},
	{"white", "#e5e5e5"},
}

// fillDefaults fills unset colors: base colors from xterm, the cursor from
// the foreground and each bright variant from its normal color.
func fillDefaults(t *tint.Tint) {
	slots := colorSlots(t)
	for _, d := range xtermDefaults {
		if slot := slots[d.key]; *slot == nil {
			*slot = tint.FromHex(d.hex)
		}
	}
	if t.Cursor == nil {
		t.Cursor = copyColor(t.Fg)
	}
	for _, name := range []string{"black", "red", "green", "yellow", "blue", "purple", "cyan", "white"} {
		if bright := slots["bright_"+name]; *bright == nil {
			*bright = copyColor(*slots[name])
		}
	}
}

func copyColor(c *tint.Color) *tint.Color {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
