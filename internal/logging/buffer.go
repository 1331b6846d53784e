package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is one captured log record
type Entry struct {
	Time    time.Time  `json:"time"`
	Level   slog.Level `json:"level"`
	Message string     `json:"message"`
	Attrs   string     `json:"attrs,omitempty"` // rendered as key=value pairs
}

// String formats the entry for export
func (e Entry) String() string {
	line := fmt.Sprintf("[%s] %-5s %s", e.Time.UTC().Format("2006-01-02 15:04:05 UTC"), e.Level, e.Message)
	if e.Attrs != "" {
		line += " " + e.Attrs
	}
	return line
}

// Store persists buffered entries between runs
type Store interface {
	SaveLogs(ctx context.Context, entries []Entry) error
	LoadLogs(ctx context.Context) ([]Entry, error)
}

// Buffer is a fixed-capacity ring of recent log entries. The oldest entry
// is dropped when the ring is full.
type Buffer struct {
	mu       sync.RWMutex
	entries  []Entry
	start    int // index of the oldest entry
	count    int
	pageSize int

	store  Store
	closer io.Closer
}

// NewBuffer creates a ring holding up to capacity entries
func NewBuffer(capacity, pageSize int) *Buffer {
	if capacity <= 0 {
		capacity = 1000
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Buffer{
		entries:  make([]Entry, capacity),
		pageSize: pageSize,
	}
}

// Add appends an entry, evicting the oldest when full
func (b *Buffer) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addLocked(e)
}

func (b *Buffer) addLocked(e Entry) {
	capacity := len(b.entries)
	if b.count < capacity {
		b.entries[(b.start+b.count)%capacity] = e
		b.count++
		return
	}
	b.entries[b.start] = e
	b.start = (b.start + 1) % capacity
}

// Len returns the number of buffered entries
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Cap returns the ring capacity
func (b *Buffer) Cap() int {
	return len(b.entries)
}

// PageSize returns the number of entries per page
func (b *Buffer) PageSize() int {
	return b.pageSize
}

// Entries returns all entries, oldest first
func (b *Buffer) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, b.count)
	for i := range out {
		out[i] = b.entries[(b.start+i)%len(b.entries)]
	}
	return out
}

// Paginated returns up to limit entries, newest first, skipping the
// offset most recent ones
func (b *Buffer) Paginated(offset, limit int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || limit <= 0 || offset >= b.count {
		return nil
	}
	end := offset + limit
	if end > b.count {
		end = b.count
	}

	out := make([]Entry, 0, end-offset)
	for i := offset; i < end; i++ {
		idx := (b.start + b.count - 1 - i) % len(b.entries)
		out = append(out, b.entries[idx])
	}
	return out
}

// Page returns the zero-based page of entries, newest first
func (b *Buffer) Page(page int) []Entry {
	if page < 0 {
		return nil
	}
	return b.Paginated(page*b.pageSize, b.pageSize)
}

// Pages returns the number of pages needed to show every entry
func (b *Buffer) Pages() int {
	n := b.Len()
	if n == 0 {
		return 1
	}
	return (n + b.pageSize - 1) / b.pageSize
}

// Clear drops every entry and persists the empty buffer
func (b *Buffer) Clear(ctx context.Context) error {
	b.mu.Lock()
	b.start, b.count = 0, 0
	b.mu.Unlock()
	return b.Persist(ctx)
}

// Persist saves the entries to the store, if one is configured
func (b *Buffer) Persist(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	return b.store.SaveLogs(ctx, b.Entries())
}

// Restore loads persisted entries, keeping only the most recent ones that
// fit, ahead of anything logged since startup
func (b *Buffer) Restore(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	saved, err := b.store.LoadLogs(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current := make([]Entry, b.count)
	for i := range current {
		current[i] = b.entries[(b.start+i)%len(b.entries)]
	}
	b.start, b.count = 0, 0
	for _, e := range saved {
		b.addLocked(e)
	}
	for _, e := range current {
		b.addLocked(e)
	}
	return nil
}

// Export writes a plain-text report of every entry to w
func (b *Buffer) Export(w io.Writer, now time.Time) error {
	var sb strings.Builder
	sb.WriteString("# Hearth Application Logs\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.UTC().Format("2006-01-02 15:04:05 UTC"))
	for _, e := range b.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Close persists the entries and closes the log file
func (b *Buffer) Close(ctx context.Context) error {
	err := b.Persist(ctx)
	if b.closer != nil {
		if cerr := b.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Handler returns a slog.Handler that records into the buffer
func (b *Buffer) Handler(level slog.Leveler) slog.Handler {
	return &bufferHandler{buf: b, level: level}
}

type bufferHandler struct {
	buf    *Buffer
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

func (h *bufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *bufferHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	write := func(a slog.Attr) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", a.Key, a.Value.Resolve())
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if !a.Equal(slog.Attr{}) {
			write(h.qualify(a))
		}
		return true
	})

	h.buf.Add(Entry{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   sb.String(),
	})
	return nil
}

// qualify prefixes the attribute key with the open groups
func (h *bufferHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}

func (h *bufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if a.Equal(slog.Attr{}) {
			continue
		}
		out.attrs = append(out.attrs, h.qualify(a))
	}
	return &out
}

func (h *bufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.groups = append(append([]string(nil), h.groups...), name)
	return &out
}
