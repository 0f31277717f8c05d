package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/theme"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage blockgrid configuration",
		Long:  `Manage the blockgrid configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the blockgrid configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi and nano in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var yes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the blockgrid configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetConfigToDefaults(cmd.InOrStdin(), cmd.OutOrStdout(), yes)
		},
	}
	configResetCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)
	return configCmd
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

func editConfigFile() error {
	// Creates the file with defaults on first run.
	if _, err := config.LoadUserConfig(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found; set $EDITOR or edit %s directly", path)
	}

	args := append(strings.Fields(editor), path)
	// #nosec G204 - the editor comes from the user's environment
	c := exec.Command(args[0], args[1:]...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	if _, err := config.LoadUserConfigFile(path); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	return nil
}

func resetConfigToDefaults(in io.Reader, out io.Writer, yes bool) error {
	if !yes {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Overwrite %s with defaults? [y/N] ", path)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			_, _ = fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	path, err := config.ResetConfig()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Configuration reset: %s\n", path)
	return nil
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Long: `List every built-in theme plus custom themes from the themes directory.
Pass a name to --theme or set appearance.theme in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := theme.Initialize("default"); err != nil {
				return fmt.Errorf("failed to initialize themes: %w", err)
			}
			for _, id := range tint.TintIDs() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
