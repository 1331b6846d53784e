// Package logging sets up Hearth's structured logger: JSON records go to a
// log file while a copy of every record is kept in an in-memory ring buffer
// for the log viewer.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options configures Setup
type Options struct {
	File       string // empty disables file output
	Level      string
	MaxEntries int
	PageSize   int
	Persist    bool
}

// Setup initializes the slog logger with file output and an in-memory
// buffer. When opts.Persist is set and store is non-nil, previously saved
// entries are restored into the buffer.
func Setup(ctx context.Context, opts Options, store Store) (*slog.Logger, *Buffer, error) {
	level := ParseLevel(opts.Level)

	buf := NewBuffer(opts.MaxEntries, opts.PageSize)
	if opts.Persist {
		buf.store = store
	}

	handlers := []slog.Handler{buf.Handler(level)}

	if opts.File != "" {
		logFile, err := openLogFile(opts.File)
		if err != nil {
			return nil, nil, err
		}
		buf.closer = logFile

		// Create JSON handler for structured logging
		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{
			Level: level,
		}))
	}

	logger := slog.New(fanout(handlers))
	if err := buf.Restore(ctx); err != nil {
		logger.Warn("failed to restore persisted logs", "error", err)
	}

	return logger, buf, nil
}

func openLogFile(path string) (*os.File, error) {
	// Expand ~ in path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logFile, nil
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG", "TRACE":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// multiHandler sends each record to every handler that accepts its level
type multiHandler []slog.Handler

func fanout(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return multiHandler(handlers)
}

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}
