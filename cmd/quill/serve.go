package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/dispatcher"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documents on a Unix socket",
		Long: `Serve documents on a Unix socket until interrupted.

Example:
  quill serve
  quill serve --socket /tmp/q.sock --log-level debug
  QUILL_TAB_WIDTH=2 quill serve -c ~/.config/quill/config.toml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("socket", "", "socket path (overrides config)")
	cmd.Flags().String("log-level", "", "debug, info, warn or error (overrides config)")
	cmd.Flags().Bool("metrics", false, "log a dispatch summary on shutdown")
	return cmd
}

// loadConfig reads the --config file and applies the flag overrides the
// command defines.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if f := cmd.Flags().Lookup("socket"); f != nil && f.Changed {
		cfg.Server.SocketPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.Log.Level = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: cmd.ErrOrStderr(),
		Prefix: "quill",
	})
	logging.SetDefault(logger)

	ed := editor.New(
		editor.WithDocumentOptions(cfg.EngineOptions()...),
		editor.WithLogger(logger),
	)

	opts := []dispatcher.Option{dispatcher.WithLogger(logger)}
	if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
		opts = append(opts, dispatcher.WithMetrics())
	}
	if cfg.Server.WatchFiles {
		w, err := server.NewWatcher(logger)
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		defer w.Close()
		opts = append(opts, dispatcher.WithFileWatcher(w))
	}

	srv := server.New(dispatcher.New(ed, opts...), server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("quill %s starting", version)
	err = srv.ListenAndServe(ctx, cfg.Server.SocketPath)
	if errors.Is(err, server.ErrServerClosed) {
		logger.Info("shut down")
		return nil
	}
	return err
}
