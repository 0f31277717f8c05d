package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "blockgrid/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Grid        GridConfig          `toml:"grid"`
	Appearance  AppearanceConfig    `toml:"appearance"`
	Editor      EditorConfig        `toml:"editor"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// GridConfig holds the grid metrics, in virtual pixels
type GridConfig struct {
	Columns   int     `toml:"columns"`    // Number of columns (default: 12)
	RowHeight float64 `toml:"row_height"` // Pixel height of a row (default: 32)
	Padding   float64 `toml:"padding"`    // Pixel inset around the grid (default: 16)
	StepX     float64 `toml:"step_x"`     // Pixel width of a column (default: 48)
	StepY     float64 `toml:"step_y"`     // Pixel height of a grid step (default: 32)
	Gutter    float64 `toml:"gutter"`     // Gap drawn between blocks (default: 0)
	Mode      string  `toml:"mode"`       // Start mode: design, preview (default: design)
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme       string `toml:"theme"`        // Color theme name (e.g., dracula, nord, my-custom-theme)
	BorderStyle string `toml:"border_style"` // Border style: rounded, normal, thick, double, hidden, block, ascii
	ShowGrid    *bool  `toml:"show_grid"`    // Draw grid dots behind blocks (default: true)
	CellWidth   int    `toml:"cell_width"`   // Virtual pixels per terminal column (default: 8)
	CellHeight  int    `toml:"cell_height"`  // Virtual pixels per terminal row (default: 16)
}

// EditorConfig holds editing behaviour
type EditorConfig struct {
	Autosave bool   `toml:"autosave"`  // Save the layout after every change (default: false)
	LogLevel string `toml:"log_level"` // Log level: debug, info, warn, error (default: info)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	showGrid := true
	return &UserConfig{
		Grid: GridConfig{
			Columns:   DefaultColumns,
			RowHeight: DefaultRowHeight,
			Padding:   DefaultPadding,
			StepX:     DefaultStepX,
			StepY:     DefaultStepY,
			Gutter:    DefaultGutter,
			Mode:      string(grid.ModeDesign),
		},
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
			ShowGrid:    &showGrid,
			CellWidth:   DefaultCellWidth,
			CellHeight:  DefaultCellHeight,
		},
		Editor: EditorConfig{
			Autosave: false,
			LogLevel: "info",
		},
		Keybindings: DefaultKeybindings(),
	}
}

// GridConfig converts the [grid] section into the engine's grid metrics.
func (c *UserConfig) GridConfig() grid.Config {
	return grid.Config{
		Columns:   c.Grid.Columns,
		RowHeight: c.Grid.RowHeight,
		Padding:   c.Grid.Padding,
		StepX:     c.Grid.StepX,
		StepY:     c.Grid.StepY,
		Gutter:    c.Grid.Gutter,
		Mode:      grid.Mode(c.Grid.Mode),
	}
}

// LoadUserConfig loads the user configuration from XDG config directory,
// creating a default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath)
}

// LoadUserConfigFile loads, completes and validates the config at path.
func LoadUserConfigFile(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is from XDG search or an explicit flag
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingGrid(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingEditor(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}

	if validation.HasWarnings() {
		for _, warn := range validation.Warnings {
			log.Warn("config", "section", warn.Field, "key", warn.Key, "msg", warn.Message)
		}
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteConfigFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfigFile writes cfg to path with a commented header.
func WriteConfigFile(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# blockgrid configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# Reset to defaults with: blockgrid config reset\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# GRID\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Metrics are virtual pixels; one terminal cell is cell_width x cell_height.\n")
	sb.WriteString("# columns must be positive. step_x, step_y and row_height must be positive.\n")
	sb.WriteString("# mode: design (editable) or preview (read-only)\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("# theme: color theme name (run `blockgrid themes` for the list)\n")
	sb.WriteString("#   Custom themes: ~/.config/blockgrid/themes/*.toml\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# EDITOR\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# autosave: write the layout after every committed change\n")
	sb.WriteString("# log_level: debug, info, warn, error\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingGrid fills zero grid values with defaults. Gutter and padding
// may legitimately be zero, so they are left alone.
func fillMissingGrid(cfg, defaultCfg *UserConfig) {
	if cfg.Grid.Columns == 0 {
		cfg.Grid.Columns = defaultCfg.Grid.Columns
	}
	if cfg.Grid.RowHeight == 0 {
		cfg.Grid.RowHeight = defaultCfg.Grid.RowHeight
	}
	if cfg.Grid.StepX == 0 {
		cfg.Grid.StepX = defaultCfg.Grid.StepX
	}
	if cfg.Grid.StepY == 0 {
		cfg.Grid.StepY = defaultCfg.Grid.StepY
	}
	if cfg.Grid.Mode == "" {
		cfg.Grid.Mode = defaultCfg.Grid.Mode
	}
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	// ShowGrid defaults to true (nil means use default)
	if cfg.Appearance.ShowGrid == nil {
		cfg.Appearance.ShowGrid = defaultCfg.Appearance.ShowGrid
	}
	if cfg.Appearance.CellWidth <= 0 {
		cfg.Appearance.CellWidth = defaultCfg.Appearance.CellWidth
	}
	if cfg.Appearance.CellHeight <= 0 {
		cfg.Appearance.CellHeight = defaultCfg.Appearance.CellHeight
	}
}

// fillMissingEditor fills in any missing editor settings with defaults
func fillMissingEditor(cfg, defaultCfg *UserConfig) {
	if cfg.Editor.LogLevel == "" {
		cfg.Editor.LogLevel = defaultCfg.Editor.LogLevel
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	for k, v := range defaultCfg.Keybindings {
		if _, exists := cfg.Keybindings[k]; !exists {
			cfg.Keybindings[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// ResetConfig overwrites the config file with the defaults and returns its path.
func ResetConfig() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if err := WriteConfigFile(path, DefaultConfig()); err != nil {
		return "", err
	}
	return path, nil
}

// GetHostKeyPath returns where the SSH server keeps its generated host key
func GetHostKeyPath() (string, error) {
	path, err := xdg.DataFile("blockgrid/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("failed to get host key path: %w", err)
	}
	return path, nil
}
