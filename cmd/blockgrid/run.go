package main

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
	"github.com/Gaurav-Gosain/blockgrid/pkg/blockgrid"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting that filters
// messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel resolves the configured level, raised to debug by --debug.
func logLevel(cfg *config.UserConfig) log.Level {
	if debugMode {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(cfg.Editor.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// openFileLogger logs to the state directory so the alt screen stays clean.
func openFileLogger(cfg *config.UserConfig) (*log.Logger, func(), error) {
	path, err := xdg.StateFile("blockgrid/blockgrid.log")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve log file: %w", err)
	}
	// #nosec G304 - path comes from xdg
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newLogger(f, logLevel(cfg)), func() { _ = f.Close() }, nil
}

func loadUserConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		return config.DefaultConfig()
	}
	return userConfig
}

// editorOptions collects the options shared by the local and SSH editors.
func editorOptions(userConfig *config.UserConfig, logger *log.Logger) []blockgrid.Option {
	return []blockgrid.Option{
		blockgrid.WithUserConfig(userConfig),
		blockgrid.WithTheme(themeName),
		blockgrid.WithASCIIOnly(asciiOnly),
		blockgrid.WithBorderStyle(borderStyle),
		blockgrid.WithHideGrid(hideGrid),
		blockgrid.WithColumns(columns),
		blockgrid.WithPreview(preview),
		blockgrid.WithAutosave(autosave),
		blockgrid.WithLogger(logger),
	}
}

func runLocal(layout string) error {
	userConfig := loadUserConfig()

	logger, closeLog, err := openFileLogger(userConfig)
	if err != nil {
		log.Warn("logging disabled", "err", err)
		logger, closeLog = newLogger(io.Discard, log.InfoLevel), func() {}
	}
	defer closeLog()

	var path string
	if layout != "" {
		if path, err = store.ResolvePath(layout); err != nil {
			return err
		}
	}

	opts := append(editorOptions(userConfig, logger), blockgrid.WithLayoutFile(path))
	model, err := blockgrid.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to open layout: %w", err)
	}
	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("starting editor", "config", configPath, "layout", path)
	}

	p := tea.NewProgram(model, blockgrid.ProgramOptions()...)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	if m, ok := finalModel.(*blockgrid.Model); ok && m.Store.Dirty() {
		if m.Path != "" {
			log.Warn("unsaved changes discarded", "layout", m.Path)
		} else {
			log.Warn("layout was never saved; pass a layout file to keep changes")
		}
	}
	return nil
}
