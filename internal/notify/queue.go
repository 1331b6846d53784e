package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/riordanpawley/hearth/internal/types"
)

// Sender is the subset of *tea.Program used to announce queue changes
type Sender interface {
	Send(msg tea.Msg)
}

// ChangedMsg tells the UI that the toast feed should be re-rendered
type ChangedMsg struct{}

// Option configures a Queue
type Option func(*Queue)

// WithObserver registers fn to be called after every mutation, outside the lock
func WithObserver(fn func()) Option {
	return func(q *Queue) {
		if fn != nil {
			q.observers = append(q.observers, fn)
		}
	}
}

// WithSender forwards every mutation to a Bubble Tea program as a ChangedMsg
func WithSender(p Sender) Option {
	return WithObserver(func() {
		p.Send(ChangedMsg{})
	})
}

// WithLogger sets the queue's logger
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithDefaultDuration sets how long Success, Error, Warning and Info
// toasts stay. Zero or less makes them persistent.
func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		q.defaultDuration = d
	}
}

// record pairs a toast with the cancel func of its pending timer
type record struct {
	toast  Toast
	cancel context.CancelFunc // nil when nothing is scheduled
}

// Queue holds the active toasts and the set of toasts that are exiting.
// All methods are safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	toasts  []*record
	exiting map[ID]struct{}
	closed  bool

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	observers       []func()
	logger          *slog.Logger
	defaultDuration time.Duration
}

// New creates an empty Queue
func New(opts ...Option) *Queue {
	ctx, stop := context.WithCancel(context.Background())
	q := &Queue{
		exiting: make(map[ID]struct{}),
		ctx:     ctx,
		stop:    stop,
		logger:  slog.Default(),

		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add appends a toast built from cfg and returns its ID. When cfg.Duration
// is positive the toast is scheduled to exit after that duration.
func (q *Queue) Add(cfg Config) ID {
	t := Toast{
		ID:          uuid.New(),
		Message:     cfg.Message,
		Type:        cfg.Type,
		Duration:    cfg.Duration,
		Dismissible: cfg.Dismissible,
		CreatedAt:   time.Now(),
	}
	rec := &record{toast: t}

	q.mu.Lock()
	q.toasts = append(q.toasts, rec)
	if !t.Persistent() && !q.closed {
		ctx, cancel := context.WithCancel(q.ctx)
		rec.cancel = cancel
		q.wg.Add(1)
		go q.expire(ctx, t.ID, t.Duration)
	}
	q.mu.Unlock()

	q.logger.Debug("toast added", "id", t.ID, "type", t.Type, "duration", t.Duration)
	q.notify()
	return t.ID
}

// Success adds a dismissible success toast with the default duration
func (q *Queue) Success(msg string) ID {
	return q.addDefault(msg, types.ToastSuccess)
}

// Error adds a dismissible error toast with the default duration
func (q *Queue) Error(msg string) ID {
	return q.addDefault(msg, types.ToastError)
}

// Warning adds a dismissible warning toast with the default duration
func (q *Queue) Warning(msg string) ID {
	return q.addDefault(msg, types.ToastWarning)
}

// Info adds a dismissible info toast with the default duration
func (q *Queue) Info(msg string) ID {
	return q.addDefault(msg, types.ToastInfo)
}

func (q *Queue) addDefault(msg string, typ types.ToastType) ID {
	cfg := DefaultConfig()
	cfg.Message = msg
	cfg.Type = typ
	cfg.Duration = q.defaultDuration
	return q.Add(cfg)
}

// Remove deletes the toast immediately, skipping the exit animation.
// Unknown IDs are ignored.
func (q *Queue) Remove(id ID) {
	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.notify()
	}
}

// Dismiss starts the exit animation for a dismissible toast and removes it
// after ExitDelay. It returns false for unknown or non-dismissible toasts.
func (q *Queue) Dismiss(id ID) bool {
	q.mu.Lock()
	rec := q.findLocked(id)
	if rec == nil || !rec.toast.Dismissible {
		q.mu.Unlock()
		return false
	}
	if _, ok := q.exiting[id]; ok {
		q.mu.Unlock()
		return true
	}

	if rec.cancel != nil {
		rec.cancel()
		rec.cancel = nil
	}
	q.exiting[id] = struct{}{}
	if q.closed {
		q.removeLocked(id)
	} else {
		ctx, cancel := context.WithCancel(q.ctx)
		rec.cancel = cancel
		q.wg.Add(1)
		go q.finishExit(ctx, id)
	}
	q.mu.Unlock()

	q.logger.Debug("toast dismissed", "id", id)
	q.notify()
	return true
}

// IsExiting reports whether the toast is in its exit animation
func (q *Queue) IsExiting(id ID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.exiting[id]
	return ok
}

// ClearAll removes every toast and cancels all pending timers
func (q *Queue) ClearAll() {
	q.mu.Lock()
	n := len(q.toasts)
	q.cancelAllLocked()
	q.toasts = nil
	q.exiting = make(map[ID]struct{})
	q.mu.Unlock()

	if n > 0 {
		q.logger.Debug("toasts cleared", "count", n)
	}
	q.notify()
}

// Toasts returns a copy of all toasts in insertion order
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.toasts))
	for i, rec := range q.toasts {
		out[i] = q.snapshotLocked(rec)
	}
	return out
}

// Visible returns up to max toasts, newest first. A max of zero or less
// returns every toast.
func (q *Queue) Visible(max int) []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.toasts)
	if max > 0 && max < n {
		n = max
	}
	out := make([]Toast, 0, n)
	for i := len(q.toasts) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, q.snapshotLocked(q.toasts[i]))
	}
	return out
}

// Len returns the number of stored toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// ExitingLen returns the number of toasts in their exit animation
func (q *Queue) ExitingLen() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.exiting)
}

// Close cancels every pending timer and waits for the timer goroutines to
// return. Toasts added afterwards are stored but never expire.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cancelAllLocked()
	q.mu.Unlock()

	q.stop()
	q.wg.Wait()
}

// expire waits out the toast's duration, then runs the exit animation
func (q *Queue) expire(ctx context.Context, id ID, d time.Duration) {
	defer q.wg.Done()

	if !sleep(ctx, d) {
		return
	}

	q.mu.Lock()
	if q.findLocked(id) == nil {
		q.mu.Unlock()
		return
	}
	q.exiting[id] = struct{}{}
	q.mu.Unlock()
	q.notify()

	q.exit(ctx, id)
}

// finishExit removes a toast once the exit animation has played
func (q *Queue) finishExit(ctx context.Context, id ID) {
	defer q.wg.Done()
	q.exit(ctx, id)
}

func (q *Queue) exit(ctx context.Context, id ID) {
	if !sleep(ctx, ExitDelay) {
		return
	}

	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.notify()
	}
}

func (q *Queue) findLocked(id ID) *record {
	for _, rec := range q.toasts {
		if rec.toast.ID == id {
			return rec
		}
	}
	return nil
}

// removeLocked deletes id from both collections and cancels its timer
func (q *Queue) removeLocked(id ID) bool {
	_, wasExiting := q.exiting[id]
	delete(q.exiting, id)

	for i, rec := range q.toasts {
		if rec.toast.ID != id {
			continue
		}
		if rec.cancel != nil {
			rec.cancel()
		}
		q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
		return true
	}
	return wasExiting
}

func (q *Queue) cancelAllLocked() {
	for _, rec := range q.toasts {
		if rec.cancel != nil {
			rec.cancel()
			rec.cancel = nil
		}
	}
}

func (q *Queue) snapshotLocked(rec *record) Toast {
	t := rec.toast
	_, t.Exiting = q.exiting[t.ID]
	return t
}

func (q *Queue) notify() {
	for _, fn := range q.observers {
		fn()
	}
}

// sleep waits for d and reports whether it elapsed before ctx was cancelled
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
