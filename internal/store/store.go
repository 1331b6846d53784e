// Package store persists the Hearth library (stories, characters, scenarios)
// and the log history in a single bbolt database. An empty path keeps
// everything in memory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/logging"
)

// Bucket names
var (
	bucketStories    = []byte("stories")
	bucketCharacters = []byte("characters")
	bucketScenarios  = []byte("scenarios")
	bucketLogs       = []byte("logs")
	bucketMeta       = []byte("meta")

	allBuckets = [][]byte{bucketStories, bucketCharacters, bucketScenarios, bucketLogs, bucketMeta}
)

const (
	keyLogEntries = "entries"
	keySeededAt   = "seeded_at"
)

// Store implements library and log persistence using BoltDB
type Store struct {
	db     *bolt.DB
	path   string
	logger *slog.Logger

	mu sync.RWMutex // Protects memory cache

	// In-memory cache; the only copy in memory-only mode
	cache map[string][]byte
}

var _ logging.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path. An empty path
// returns a memory-only store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:   path,
		logger: logger.With("component", "store"),
		cache:  make(map[string][]byte),
	}
	if path == "" {
		s.logger.Debug("using memory-only store")
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &domain.StorageError{Op: "open", Err: err}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Err: fmt.Errorf("failed to open bolt db: %w", err)}
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, &domain.StorageError{Op: "open", Err: err}
	}

	s.db = db
	s.logger.Info("opened store", "path", path)
	return s, nil
}

// Path returns the database file, empty in memory-only mode
func (s *Store) Path() string {
	return s.path
}

// Persistent reports whether data survives Close
func (s *Store) Persistent() bool {
	return s.db != nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

func (s *Store) get(bucket []byte, key string, dest any) error {
	ck := cacheKey(bucket, key)

	// Check memory cache first
	s.mu.RLock()
	data, ok := s.cache[ck]
	s.mu.RUnlock()

	if !ok && s.db != nil {
		err := s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return &domain.StorageError{Op: "get", Bucket: string(bucket), Key: key, Err: err}
		}
		if data != nil {
			// Promote to memory cache
			s.mu.Lock()
			s.cache[ck] = data
			s.mu.Unlock()
		}
	}

	if data == nil {
		return &domain.StorageError{Op: "get", Bucket: string(bucket), Key: key, Err: domain.ErrNotFound}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &domain.StorageError{Op: "decode", Bucket: string(bucket), Key: key, Err: err}
	}
	return nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &domain.StorageError{Op: "encode", Bucket: string(bucket), Key: key, Err: err}
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return &domain.StorageError{Op: "put", Bucket: string(bucket), Key: key, Err: err}
		}
	}

	s.mu.Lock()
	s.cache[cacheKey(bucket, key)] = data
	s.mu.Unlock()
	return nil
}

func (s *Store) delete(bucket []byte, key string) error {
	if _, err := s.raw(bucket, key); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, cacheKey(bucket, key))
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
	if err != nil {
		return &domain.StorageError{Op: "delete", Bucket: string(bucket), Key: key, Err: err}
	}
	return nil
}

// raw returns the stored bytes for key, checking existence for delete
func (s *Store) raw(bucket []byte, key string) ([]byte, error) {
	var data json.RawMessage
	if err := s.get(bucket, key, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// values returns every value in bucket ordered by key
func (s *Store) values(bucket []byte) (map[string][]byte, error) {
	out := make(map[string][]byte)

	if s.db == nil {
		prefix := string(bucket) + ":"
		s.mu.RLock()
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				out[strings.TrimPrefix(k, prefix)] = v
			}
		}
		s.mu.RUnlock()
		return out, nil
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out[string(k)] = data
			return nil
		})
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Bucket: string(bucket), Err: err}
	}
	return out, nil
}

// list decodes every value in bucket, ordered by numeric-aware key
func list[T any](s *Store, bucket []byte) ([]T, error) {
	vals, err := s.values(bucket)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		var item T
		if err := json.Unmarshal(vals[k], &item); err != nil {
			return nil, &domain.StorageError{Op: "decode", Bucket: string(bucket), Key: k, Err: err}
		}
		out = append(out, item)
	}
	return out, nil
}

// keyLess orders numeric IDs numerically and everything else lexically
func keyLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// IsNotFound reports whether err means the record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
