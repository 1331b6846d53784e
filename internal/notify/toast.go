// Package notify implements the toast notification queue: an ordered,
// auto-expiring feed with an animated exit phase and manual dismissal.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/riordanpawley/hearth/internal/types"
)

const (
	// DefaultDuration is how long convenience toasts stay before expiring
	DefaultDuration = 5 * time.Second

	// ExitDelay is the length of the exit animation before a toast is removed
	ExitDelay = 250 * time.Millisecond
)

// ID uniquely identifies a toast
type ID = uuid.UUID

// Toast is a single notification record
type Toast struct {
	ID          ID
	Message     string
	Type        types.ToastType
	Duration    time.Duration // 0 means it stays until dismissed
	Dismissible bool
	CreatedAt   time.Time

	// Exiting is filled in on snapshots returned by the queue
	Exiting bool
}

// Persistent reports whether the toast never expires on its own
func (t Toast) Persistent() bool {
	return t.Duration <= 0
}

// Config describes a toast to be added
type Config struct {
	Message     string
	Type        types.ToastType
	Duration    time.Duration
	Dismissible bool
}

// DefaultConfig returns an info toast that expires after DefaultDuration
func DefaultConfig() Config {
	return Config{
		Type:        types.ToastInfo,
		Duration:    DefaultDuration,
		Dismissible: true,
	}
}
