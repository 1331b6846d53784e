package store

import (
	"context"

	"github.com/riordanpawley/hearth/internal/logging"
)

// SaveLogs replaces the persisted log history
func (s *Store) SaveLogs(ctx context.Context, entries []logging.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = []logging.Entry{}
	}
	return s.set(bucketLogs, keyLogEntries, entries)
}

// LoadLogs returns the persisted log history, empty when none was saved
func (s *Store) LoadLogs(ctx context.Context) ([]logging.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var entries []logging.Entry
	if err := s.get(bucketLogs, keyLogEntries, &entries); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}
