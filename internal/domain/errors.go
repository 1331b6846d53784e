package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound        = errors.New("not found")
	ErrNotConfigured   = errors.New("not configured")
	ErrBackendNotFound = errors.New("backend not found")
)

// StorageError represents a failure in the persistence layer
type StorageError struct {
	Op     string // Operation: "open", "get", "put", "seed", etc.
	Bucket string // Optional: bucket name
	Key    string // Optional: record key
	Err    error  // Underlying error
}

func (e *StorageError) Error() string {
	switch {
	case e.Bucket != "" && e.Key != "":
		return fmt.Sprintf("storage %s [%s/%s]: %v", e.Op, e.Bucket, e.Key, e.Err)
	case e.Bucket != "":
		return fmt.Sprintf("storage %s [%s]: %v", e.Op, e.Bucket, e.Err)
	default:
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SettingsError represents a failure reading or writing user settings
type SettingsError struct {
	Op   string
	Path string
	Err  error
}

func (e *SettingsError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("settings %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("settings %s: %v", e.Op, e.Err)
}

func (e *SettingsError) Unwrap() error {
	return e.Err
}
