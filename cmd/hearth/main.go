// Package main provides the entry point for the Hearth terminal app.
//
// Hearth is a terminal front end for collaborative storytelling: a library
// of stories, characters and scenarios with a conversation view. It is built
// on Bubble Tea and follows The Elm Architecture for state management.
//
// Usage:
//
//	hearth [--config path] [--fast]
//	hearth logs export [-o file]
//	hearth settings path|show
//	hearth version
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/riordanpawley/hearth/internal/app"
	"github.com/riordanpawley/hearth/internal/config"
	"github.com/riordanpawley/hearth/internal/loading"
	"github.com/riordanpawley/hearth/internal/logging"
	"github.com/riordanpawley/hearth/internal/notify"
	"github.com/riordanpawley/hearth/internal/store"
	"github.com/riordanpawley/hearth/internal/types"
)

// Version information, set at build time
var (
	Version = "dev"
	Commit  = "none"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	dataDir    string
	fast       bool
	debug      bool
}

// NewRootCommand creates the hearth command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hearth",
		Short: "Hearth - collaborative storytelling in your terminal",
		Long: `Hearth keeps a library of stories, characters and scenarios and lets
you continue a story from the terminal.

Configuration is read from config.yaml in the config directory and can be
overridden with HEARTH_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: config.yaml in the config directory)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory for the database and log file")
	cmd.Flags().BoolVar(&opts.fast, "fast", false, "skip the loading screen's minimum stage durations")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newLogsCommand(opts))
	cmd.AddCommand(newSettingsCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig reads the config file and applies flag overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.Storage.DataDir = config.ExpandPath(o.dataDir)
	}
	if o.fast {
		cfg.UI.FastStart = true
	}
	if o.debug {
		cfg.Logging.Level = "DEBUG"
	}
	return cfg, nil
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("hearth needs an interactive terminal (see 'hearth --help' for scriptable commands)")
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.DatabasePath(), slog.Default())
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer st.Close()

	logger, logs, err := logging.Setup(ctx, cfg.Logging.Options(), st)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if err := logs.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving logs: %v\n", err)
		}
	}()
	slog.SetDefault(logger)
	logger.Info("starting hearth", "version", Version, "config", cfg.Source, "data_dir", cfg.Storage.DataDir)

	settings, settingsErr := config.OpenSettings(cfg.Storage.SettingsFile, logger)

	sender := &app.ProgramSender{}
	seq := loading.New(
		loading.WithSender(sender),
		loading.WithLogger(logger),
		loading.WithFastStart(cfg.UI.FastStart),
	)
	queue := notify.New(
		notify.WithSender(sender),
		notify.WithLogger(logger),
		notify.WithDefaultDuration(cfg.ToastDuration()),
	)
	defer queue.Close()

	if settingsErr != nil {
		queue.Add(notify.Config{
			Message:     fmt.Sprintf("Settings were reset to defaults: %v", settingsErr),
			Type:        types.ToastWarning,
			Dismissible: true,
		})
	}

	model := app.New(app.Options{
		Config:         cfg,
		Store:          st,
		Settings:       settings,
		Logs:           logs,
		Logger:         logger,
		Sequencer:      seq,
		Queue:          queue,
		Version:        Version,
		DarkBackground: lipgloss.HasDarkBackground(),
		Context:        ctx,
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	sender.Attach(p)

	watcher, err := config.NewWatcher(settings, sender, logger)
	if err != nil {
		logger.Warn("settings watcher unavailable", "error", err)
	} else if err := watcher.Start(ctx); err != nil {
		logger.Warn("failed to watch settings", "error", err)
	} else {
		defer watcher.Stop()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("stopped by signal")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("hearth exited")
	return nil
}

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
