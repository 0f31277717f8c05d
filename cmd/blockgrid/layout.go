package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/blockgrid/internal/app"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/engine"
	"github.com/Gaurav-Gosain/blockgrid/internal/grid"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
	"github.com/Gaurav-Gosain/blockgrid/internal/tape"
	"github.com/Gaurav-Gosain/blockgrid/internal/theme"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLayoutCmd() *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and edit layout files",
		Long:  `Inspect and edit layout files without starting the editor`,
	}

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show <layout>",
		Short: "Print the rects of a layout",
		Long: `Print every rect of a layout in stacking order, back to front.

Output is a table on a terminal and tab-separated lines otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showLayout(cmd.OutOrStdout(), args[0], showJSON, isTerminal(cmd.OutOrStdout()))
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	var blocks, width, height int
	var force bool
	newCmd := &cobra.Command{
		Use:   "new <layout>",
		Short: "Create a layout with evenly placed blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := newLayout(args[0], blocks, width, height, force)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	newCmd.Flags().IntVar(&blocks, "blocks", 4, "Number of blocks")
	newCmd.Flags().IntVar(&width, "width", config.DefaultBlockWidth, "Block width in columns")
	newCmd.Flags().IntVar(&height, "height", config.DefaultBlockHeight, "Block height in rows")
	newCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	var ids []string
	var backward bool
	restackCmd := &cobra.Command{
		Use:   "restack <layout>",
		Short: "Bring blocks forward or send them backward",
		Long: `Move the given blocks one step up (or down with --backward) within
the stack of blocks they overlap, the same way the mouse wheel does.`,
		Example: `  # Bring a block above its overlapping neighbour
  blockgrid layout restack home --id block-2

  # Send two blocks back together
  blockgrid layout restack home --id block-1 --id block-3 --backward`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := restackLayout(args[0], ids, !backward)
			if err != nil {
				return err
			}
			if !changed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing to restack")
			}
			return nil
		},
	}
	restackCmd.Flags().StringArrayVar(&ids, "id", nil, "Block id to move (repeatable)")
	restackCmd.Flags().BoolVar(&backward, "backward", false, "Send backward instead of forward")
	_ = restackCmd.MarkFlagRequired("id")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List layouts in the layout directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := store.GetLayoutDirectory()
			if err != nil {
				return err
			}
			return listLayouts(cmd.OutOrStdout(), dir, isTerminal(cmd.OutOrStdout()))
		},
	}

	var dryRun bool
	replayCmd := &cobra.Command{
		Use:   "replay <layout> <tape>",
		Short: "Replay a gesture tape against a layout",
		Long: `Run the pointer gestures in a tape file against a layout and save the
result. Coordinates in the tape are terminal cells.`,
		Example: `  # tape: drag the block under cell 5,2 one column right
  #   Drag 5 2 11 2
  blockgrid layout replay home ./move.tape`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := replayLayout(args[0], args[1], dryRun)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Replayed %d command(s)\n", n)
			return nil
		},
	}
	replayCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the tape without saving")

	layoutCmd.AddCommand(showCmd, newCmd, restackCmd, replayCmd, listCmd)
	return layoutCmd
}

// Replay has no terminal; the canvas only needs to hold every tape coordinate.
const replayWidth, replayHeight = 1 << 12, 1 << 12

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// gridConfig returns the grid metrics from the user config and flags.
func gridConfig() grid.Config {
	userConfig := loadUserConfig()
	if columns > 0 {
		userConfig.Grid.Columns = min(columns, config.MaxColumns)
	}
	return userConfig.GridConfig()
}

func openLayout(name string) (string, *store.Store, error) {
	path, err := store.ResolvePath(name)
	if err != nil {
		return "", nil, err
	}
	data, err := store.Load(path)
	if err != nil {
		return "", nil, err
	}
	// Headless edits ignore a configured preview mode.
	cfg := gridConfig()
	cfg.Mode = grid.ModeDesign
	return path, store.New(data, cfg), nil
}

func showLayout(w io.Writer, name string, asJSON, tty bool) error {
	_, st, err := openLayout(name)
	if err != nil {
		return err
	}
	rects := st.Rects().Sorted()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Name      string      `json:"name"`
			Container grid.Size   `json:"container"`
			Rects     []grid.Rect `json:"rects"`
		}{st.Data().Name, st.State().Container, rects})
	}

	rows := make([][]string, 0, len(rects))
	for _, r := range rects {
		rows = append(rows, []string{
			r.ID, r.ContentID,
			strconv.Itoa(r.X), strconv.Itoa(r.Y),
			strconv.Itoa(r.W), strconv.Itoa(r.H),
			strconv.Itoa(r.Z),
		})
	}

	if !tty {
		for _, row := range rows {
			_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("ID", "CONTENT", "X", "Y", "W", "H", "Z").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(theme.CLITableKey())
			case col == 1:
				return cellStyle.Foreground(theme.CLITableDim())
			}
			return cellStyle
		})

	_, _ = lipgloss.Fprintln(w, t.String())
	return nil
}

func newLayout(name string, blocks, width, height int, force bool) (string, error) {
	if blocks < 0 {
		return "", fmt.Errorf("invalid block count %d", blocks)
	}
	path, err := store.ResolvePath(name)
	if err != nil {
		return "", err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to check layout: %w", err)
		}
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	data := store.NewBlockData(title, blocks, gridConfig().Columns, width, height)
	if err := store.Save(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// restackLayout moves ids one step within their stack and saves the file
// when anything changed.
func restackLayout(name string, ids []string, forward bool) (bool, error) {
	path, st, err := openLayout(name)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if _, ok := st.Rects()[id]; !ok {
			return false, fmt.Errorf("no block with id %q in %s", id, path)
		}
	}

	ctrl := engine.NewController(st)
	ctrl.Select(ids...)
	if !ctrl.Restack(forward) {
		return false, nil
	}
	if err := store.Save(path, st.Data()); err != nil {
		return false, err
	}
	return true, nil
}

// replayLayout runs the tape at tapePath against the layout and saves it
// unless dryRun is set. It returns the number of commands run.
func replayLayout(name, tapePath string, dryRun bool) (int, error) {
	path, err := store.ResolvePath(name)
	if err != nil {
		return 0, err
	}
	data, err := store.Load(path)
	if err != nil {
		return 0, err
	}

	// #nosec G304 - path is chosen by the user
	f, err := os.Open(tapePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open tape: %w", err)
	}
	defer func() { _ = f.Close() }()
	cmds, err := tape.Parse(f)
	if err != nil {
		return 0, err
	}

	userConfig := loadUserConfig()
	if columns > 0 {
		userConfig.Grid.Columns = min(columns, config.MaxColumns)
	}
	userConfig.Grid.Mode = string(grid.ModeDesign)

	editor := app.NewEditor(app.Options{Data: data, Path: path, Config: userConfig})
	editor.Width, editor.Height = replayWidth, replayHeight
	if err := tape.NewCommandExecutor(tape.EditorExecutor{Editor: editor}).Run(cmds); err != nil {
		return 0, err
	}

	if dryRun || !editor.Store.Dirty() {
		return len(cmds), nil
	}
	return len(cmds), editor.Save()
}

func listLayouts(w io.Writer, dir string, tty bool) error {
	files, err := store.LoadLayoutFiles(dir)
	if err != nil {
		return err
	}

	if !tty {
		for _, f := range files {
			_, _ = fmt.Fprintln(w, f.Path)
		}
		return nil
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintf(w, "No layouts in %s\n", dir)
		return nil
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Name, f.Modified.Format("2006-01-02 15:04"), fmt.Sprintf("%d B", f.Size)})
	}
	headerStyle := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("NAME", "MODIFIED", "SIZE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, _ = lipgloss.Fprintln(w, t.String())
	return nil
}
