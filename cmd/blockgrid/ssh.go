package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/blockgrid/internal/config"
	"github.com/Gaurav-Gosain/blockgrid/internal/store"
	"github.com/Gaurav-Gosain/blockgrid/pkg/blockgrid"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/spf13/cobra"
)

// SSHServerConfig holds the SSH server settings.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	// Layout is loaded into every session. Each session edits its own copy.
	Layout string
	// Writable lets sessions save back to Layout.
	Writable bool
}

func newSSHCmd() *cobra.Command {
	cfg := SSHServerConfig{}

	cmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the editor over SSH",
		Long: `Run blockgrid as an SSH server

Every connection gets an independent editor. With --layout each session
starts from that layout; sessions only save back to it with --writable.`,
		Example: `  # Start SSH server on default port
  blockgrid ssh

  # Serve a layout read-only on a custom port
  blockgrid ssh --port 2222 --layout home --preview

  # Specify custom host key
  blockgrid ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Port, "port", "2222", "SSH server port")
	cmd.Flags().StringVar(&cfg.Host, "host", "localhost", "SSH server host")
	cmd.Flags().StringVar(&cfg.KeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	cmd.Flags().StringVar(&cfg.Layout, "layout", "", "Layout loaded into every session")
	cmd.Flags().BoolVar(&cfg.Writable, "writable", false, "Allow sessions to save the layout")
	return cmd
}

func runSSHServer(cfg SSHServerConfig) error {
	userConfig := loadUserConfig()
	logger := newLogger(os.Stderr, logLevel(userConfig))

	var data store.BlockData
	if cfg.Layout != "" {
		path, err := store.ResolvePath(cfg.Layout)
		if err != nil {
			return err
		}
		if data, err = store.Load(path); err != nil {
			return err
		}
		cfg.Layout = path
	}

	keyPath := cfg.KeyPath
	if keyPath == "" {
		path, err := config.GetHostKeyPath()
		if err != nil {
			return err
		}
		keyPath = path
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(cfg, data, userConfig, logger)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting SSH server", "addr", s.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH shutdown error: %w", err)
	}
	return nil
}

// sessionHandler builds one independent editor per SSH session.
func sessionHandler(cfg SSHServerConfig, data store.BlockData, userConfig *config.UserConfig, logger *log.Logger) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		sessLogger := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		opts := append(editorOptions(userConfig, sessLogger),
			blockgrid.WithData(data),
			blockgrid.WithSize(pty.Window.Width, pty.Window.Height),
			blockgrid.WithSSHMode(true),
		)
		if cfg.Writable {
			opts = append(opts, blockgrid.WithLayoutFile(cfg.Layout))
		}

		model, err := blockgrid.New(opts...)
		if err != nil {
			sessLogger.Error("failed to create editor", "err", err)
			return nil, nil
		}
		model.SSHSession = sess
		return model, blockgrid.ProgramOptions()
	}
}
