package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
)

// ValidationError describes one problem in the user config
type ValidationError struct {
	Field   string // Section name, e.g. "grid"
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Field, e.Key, e.Message)
}

// ValidationResult collects errors (fatal) and warnings (reported, then ignored)
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether any fatal problem was found
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any non-fatal problem was found
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// BorderStyles lists the accepted border_style values
var BorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}

// LogLevels lists the accepted log_level values
var LogLevels = []string{"debug", "info", "warn", "error"}

// ValidateConfig checks cfg after defaults have been filled in. Unknown
// appearance values are downgraded to warnings and reset to defaults.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	g := cfg.Grid
	switch {
	case g.Columns <= 0:
		v.addError("grid", "columns", "must be positive, got %d", g.Columns)
	case g.Columns > MaxColumns:
		v.addError("grid", "columns", "must be at most %d, got %d", MaxColumns, g.Columns)
	}
	if g.RowHeight <= 0 {
		v.addError("grid", "row_height", "must be positive, got %g", g.RowHeight)
	}
	if g.StepX <= 0 {
		v.addError("grid", "step_x", "must be positive, got %g", g.StepX)
	}
	if g.StepY <= 0 {
		v.addError("grid", "step_y", "must be positive, got %g", g.StepY)
	}
	if g.Padding < 0 {
		v.addError("grid", "padding", "must not be negative, got %g", g.Padding)
	}
	if g.Gutter < 0 {
		v.addWarning("grid", "gutter", "negative gutter %g treated as 0", g.Gutter)
		cfg.Grid.Gutter = 0
	}
	if m := grid.Mode(g.Mode); m != grid.ModeDesign && m != grid.ModePreview {
		v.addError("grid", "mode", "must be %q or %q, got %q", grid.ModeDesign, grid.ModePreview, g.Mode)
	}

	if !slices.Contains(BorderStyles, cfg.Appearance.BorderStyle) {
		v.addWarning("appearance", "border_style", "unknown style %q, using rounded (options: %s)",
			cfg.Appearance.BorderStyle, strings.Join(BorderStyles, ", "))
		cfg.Appearance.BorderStyle = "rounded"
	}

	if !slices.Contains(LogLevels, strings.ToLower(cfg.Editor.LogLevel)) {
		v.addWarning("editor", "log_level", "unknown level %q, using info", cfg.Editor.LogLevel)
		cfg.Editor.LogLevel = "info"
	}

	for action, keys := range cfg.Keybindings {
		if !slices.Contains(Actions(), action) {
			v.addWarning("keybindings", action, "unknown action, ignored")
			continue
		}
		if len(keys) == 0 {
			v.addWarning("keybindings", action, "no keys bound")
		}
	}
	for key, actions := range conflicts(cfg.Keybindings) {
		v.addWarning("keybindings", key, "bound to several actions: %s", strings.Join(actions, ", "))
	}

	return v
}

// conflicts returns keys that trigger more than one known action.
func conflicts(bindings map[string][]string) map[string][]string {
	byKey := make(map[string][]string)
	for action, keys := range bindings {
		if !slices.Contains(Actions(), action) {
			continue
		}
		for _, k := range keys {
			byKey[k] = append(byKey[k], action)
		}
	}
	out := make(map[string][]string)
	for k, actions := range byKey {
		if len(actions) > 1 {
			slices.Sort(actions)
			out[k] = actions
		}
	}
	return out
}
