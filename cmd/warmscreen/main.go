package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/1broseidon/warmscreen/internal/config"
	"github.com/1broseidon/warmscreen/internal/overlay"
	"github.com/1broseidon/warmscreen/internal/platform"
)

var version = "dev"

type options struct {
	ConfigPath string
	Debug      bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "warmscreen",
		Short: "Tint every display with a warm colour temperature",
		Long: `warmscreen covers each connected display with a fullscreen window painted
in a black-body colour, to cut blue light at night.

Keys:
  + / =     warmer -> cooler (+100K)
  -         cooler -> warmer (-100K)
  F         toggle fullscreen for the focused overlay
  Escape    close the focused overlay
  Super+W   close the focused overlay
  Super+Q   close every overlay and quit`,
		Example: `  # Start at the configured temperature
  warmscreen

  # Use another config file with debug logging
  warmscreen --config ./warmscreen.yaml --debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default ~/.config/warmscreen/config.yaml)")
	rootCmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion(version),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, "Error:", err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	level := cfg.SlogLevel()
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, unix.SIGINT, unix.SIGTERM, unix.SIGHUP)
	defer stop()

	backend, err := platform.Open(cfg.Display)
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer backend.Disconnect()

	ctrl, err := overlay.New(backend, overlay.Options{
		Temperature: cfg.InitialTemperature,
		Title:       cfg.WindowTitle,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if err := overlay.Run(ctx, ctrl, backend.Events()); err != nil {
		logger.Error("event loop aborted", "error", err)
		return err
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// newLogger writes human-readable text to a terminal and JSON otherwise.
func newLogger(w *os.File, level slog.Level) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(w.Fd())) {
		return slog.New(slog.NewTextHandler(w, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(w, handlerOpts))
}
