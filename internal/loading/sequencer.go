package loading

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the subset of *tea.Program used to deliver state changes
type Sender interface {
	Send(msg tea.Msg)
}

// StateMsg is sent to the Bubble Tea program after every transition
type StateMsg struct {
	State State
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithObserver registers fn to be called with the new state after each change.
// Observers run on the mutating goroutine, outside the lock.
func WithObserver(fn func(State)) Option {
	return func(s *Sequencer) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithSender forwards every state change to a Bubble Tea program as a StateMsg
func WithSender(p Sender) Option {
	return WithObserver(func(st State) {
		p.Send(StateMsg{State: st})
	})
}

// WithLogger sets the logger used for transition and error logging
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFastStart makes Sequence advance immediately and pause FastPause
// between stages instead of honouring each stage's minimum duration.
func WithFastStart(fast bool) Option {
	return func(s *Sequencer) {
		s.fastStart = fast
	}
}

// Sequencer owns the process-wide loading state.
//
// Stage transitions are expected to come from a single bootstrap goroutine.
// The lock makes concurrent reads safe; it does not order competing writers.
type Sequencer struct {
	mu        sync.RWMutex
	state     State
	observers []func(State)
	logger    *slog.Logger
	fastStart bool
}

// New creates a Sequencer in StageInitializing, starting now
func New(opts ...Option) *Sequencer {
	s := &Sequencer{
		state:  NewState(time.Now()),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AdvanceNow moves to next immediately, regardless of dwell time.
// Moving backwards is accepted but logged.
func (s *Sequencer) AdvanceNow(next Stage) {
	s.mu.Lock()
	prev := s.state.Stage
	s.state.Stage = next
	s.state.StageStart = time.Now()
	if next == StageReady {
		s.state.Complete = true
	}
	snapshot := s.state
	s.mu.Unlock()

	if next < prev {
		s.logger.Warn("loading stage moved backwards", "from", prev, "to", next)
	}
	s.logger.Debug("loading stage advanced", "stage", next, "total", snapshot.TotalElapsed())
	s.notify(snapshot)
}

// TryAdvance waits until the current stage's minimum duration has elapsed,
// then advances to next. It returns ctx.Err() without transitioning if the
// context ends first.
func (s *Sequencer) TryAdvance(ctx context.Context, next Stage) error {
	for {
		s.mu.RLock()
		remaining := time.Until(s.state.stageDeadline())
		s.mu.RUnlock()

		if remaining <= 0 {
			s.AdvanceNow(next)
			return nil
		}

		// The stage may have been changed by someone else while we slept,
		// so re-read the deadline after every wake.
		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Complete advances to StageReady once the current dwell time has passed
func (s *Sequencer) Complete(ctx context.Context) error {
	return s.TryAdvance(ctx, StageReady)
}

// SetError records a loading error for display. Only the first error is
// kept; the stage and completion flag are left untouched.
func (s *Sequencer) SetError(msg string) {
	s.mu.Lock()
	if s.state.Error != "" {
		s.mu.Unlock()
		s.logger.Debug("loading error already set, ignoring", "error", msg)
		return
	}
	s.state.Error = msg
	snapshot := s.state
	s.mu.Unlock()

	s.logger.Error("loading error", "error", msg, "stage", snapshot.Stage)
	s.notify(snapshot)
}

// State returns a snapshot of the current loading state
func (s *Sequencer) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Stage returns the current stage
func (s *Sequencer) Stage() Stage {
	return s.State().Stage
}

// IsComplete reports whether the sequence reached StageReady
func (s *Sequencer) IsComplete() bool {
	return s.State().Complete
}

// IsLoading reports whether the loading screen should still be shown
func (s *Sequencer) IsLoading() bool {
	return !s.IsComplete()
}

// Progress returns the static progress fraction for the current stage
func (s *Sequencer) Progress() float64 {
	return s.Stage().Progress()
}

// Message returns the status line for the current stage
func (s *Sequencer) Message() string {
	return s.Stage().Message()
}

// HasError reports whether an error was recorded
func (s *Sequencer) HasError() bool {
	return s.State().Error != ""
}

// ErrorMessage returns the recorded error, if any
func (s *Sequencer) ErrorMessage() (string, bool) {
	st := s.State()
	return st.Error, st.Error != ""
}

func (s *Sequencer) notify(st State) {
	for _, fn := range s.observers {
		fn(st)
	}
}
