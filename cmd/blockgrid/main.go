// Package main implements blockgrid, a terminal editor for grid block layouts.
// Blocks can be selected, dragged, resized, rubber-band selected and
// re-stacked with the mouse, and layouts are stored as JSON or TOML files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode   bool
	asciiOnly   bool
	themeName   string
	borderStyle string
	hideGrid    bool
	autosave    bool
	columns     int
	preview     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockgrid [layout]",
		Short: "Terminal editor for grid block layouts",
		Long: `blockgrid - grid block layout editor

Edit a layout of blocks on a column grid with the mouse: click to select,
click again to cycle through stacked blocks, drag to move, drag a corner to
resize, drag on empty space to rubber-band select, and scroll to re-stack.

A bare layout name is looked up in the layout directory; anything with an
extension or a path separator is used as a file path.`,
		Example: `  # Edit a layout in the layout directory
  blockgrid home

  # Edit a TOML layout file with 24 columns
  blockgrid ./dashboard.toml --columns 24

  # Open read-only
  blockgrid home --preview

  # Serve the editor over SSH
  blockgrid ssh --port 2222 --layout home`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var layout string
			if len(args) == 1 {
				layout = args[0]
			}
			return runLocal(layout)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Block border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().BoolVar(&hideGrid, "hide-grid", false, "Hide the grid dots")
	rootCmd.PersistentFlags().BoolVar(&autosave, "autosave", false, "Save the layout after every change")
	rootCmd.PersistentFlags().IntVar(&columns, "columns", 0, "Grid column count (default: from config or 12)")
	rootCmd.PersistentFlags().BoolVar(&preview, "preview", false, "Start in read-only preview mode")

	rootCmd.AddCommand(newSSHCmd(), newLayoutCmd(), newConfigCmd(), newThemesCmd())

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
