package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// SettingsReloadedMsg is sent after settings.toml changed on disk
type SettingsReloadedMsg struct {
	Settings AppSettings
	Err      error // set when the new file could not be parsed
}

// Sender is the subset of *tea.Program used by the watcher
type Sender interface {
	Send(msg tea.Msg)
}

// Watcher reloads the settings file when it is edited outside the app
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	manager  *SettingsManager
	program  Sender
	logger   *slog.Logger
	debounce time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWatcher creates a watcher for manager's settings file
func NewWatcher(manager *SettingsManager, program Sender, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fs:       fw,
		manager:  manager,
		program:  program,
		logger:   logger,
		debounce: 150 * time.Millisecond, // editors often write twice
	}, nil
}

// Start watches the settings directory until ctx is cancelled or Stop is
// called. Editors replace files by rename, so the directory is watched
// rather than the file.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return nil // Already running
	}

	dir := filepath.Dir(w.manager.Path())
	if err := w.fs.Add(dir); err != nil {
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, w.done)

	w.logger.Debug("watching settings", "dir", dir)
	return nil
}

// Stop ends watching and waits for the watch goroutine to return
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if err := w.fs.Close(); err != nil {
		w.logger.Error("error closing settings watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	target := filepath.Clean(w.manager.Path())
	var fire <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("settings watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	changed, err := w.manager.Reload()
	if err != nil {
		w.logger.Warn("failed to reload settings", "error", err)
		w.program.Send(SettingsReloadedMsg{Settings: w.manager.Get(), Err: err})
		return
	}
	if !changed {
		return
	}

	w.logger.Info("settings reloaded", "path", w.manager.Path())
	w.program.Send(SettingsReloadedMsg{Settings: w.manager.Get()})
}
