package config

import (
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/theme"
	"github.com/charmbracelet/log"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Unicode glyphs
	ASCIIOnly bool

	// BorderStyle overrides the block border style
	BorderStyle string

	// HideGrid hides the grid dots
	HideGrid bool

	// Autosave saves after every change
	Autosave bool

	// Columns overrides the grid column count (0 means use config)
	Columns int

	// Preview starts in read-only preview mode
	Preview bool

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Show Grid - the flag can only hide it
	ShowGrid = !overrides.HideGrid
	if ShowGrid && userConfig != nil && userConfig.Appearance.ShowGrid != nil {
		ShowGrid = *userConfig.Appearance.ShowGrid
	}

	// Autosave - OR of CLI flag and user config
	Autosave = overrides.Autosave || (userConfig != nil && userConfig.Editor.Autosave)

	if userConfig != nil {
		if overrides.Columns > 0 {
			userConfig.Grid.Columns = min(overrides.Columns, MaxColumns)
		}
		if overrides.Preview {
			userConfig.Grid.Mode = string(grid.ModePreview)
		}
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil && userConfig.Appearance.Theme != "" {
		themeName = userConfig.Appearance.Theme
	}
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("failed to load theme", "theme", themeName, "err", err)
		}
	}
}
