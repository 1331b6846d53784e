package loading

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/logging"
)

// mockProgram records messages sent by the sequencer
type mockProgram struct {
	mu       sync.Mutex
	messages []tea.Msg
}

func (m *mockProgram) Send(msg tea.Msg) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockProgram) Messages() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tea.Msg(nil), m.messages...)
}

func newTestSequencer(opts ...Option) *Sequencer {
	return New(append([]Option{WithLogger(logging.NullLogger())}, opts...)...)
}

func TestNew(t *testing.T) {
	seq := newTestSequencer()

	assert.Equal(t, StageInitializing, seq.Stage())
	assert.False(t, seq.IsComplete())
	assert.True(t, seq.IsLoading())
	assert.False(t, seq.HasError())
	assert.InDelta(t, 0.1, seq.Progress(), 1e-9)
	assert.Equal(t, "Starting Hearth...", seq.Message())

	msg, ok := seq.ErrorMessage()
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestSequencer_AdvanceNow(t *testing.T) {
	for _, next := range stages {
		t.Run(next.String(), func(t *testing.T) {
			seq := newTestSequencer()
			before := seq.State().StageStart

			time.Sleep(time.Millisecond)
			seq.AdvanceNow(next)

			st := seq.State()
			assert.Equal(t, next, st.Stage)
			assert.Equal(t, next == StageReady, st.Complete)
			assert.True(t, st.StageStart.After(before), "stage start should reset")
		})
	}
}

func TestSequencer_AdvanceNowIgnoresDwell(t *testing.T) {
	seq := newTestSequencer()

	start := time.Now()
	seq.AdvanceNow(StageReady)

	assert.Less(t, time.Since(start), StageInitializing.MinimumDuration())
	assert.True(t, seq.IsComplete())
	assert.False(t, seq.IsLoading())
	assert.Equal(t, "Ready!", seq.Message())
}

func TestSequencer_LoadingStartNeverResets(t *testing.T) {
	seq := newTestSequencer()
	loadingStart := seq.State().LoadingStart

	seq.AdvanceNow(StageLoadingAssets)
	seq.AdvanceNow(StageLoadingSettings)
	seq.AdvanceNow(StageReady)

	assert.Equal(t, loadingStart, seq.State().LoadingStart)
}

func TestSequencer_CompleteMatchesReady(t *testing.T) {
	seq := newTestSequencer()
	path := []Stage{
		StageLoadingAssets,
		StageInitializing,
		StageLoadingSettings,
		StageReady,
	}

	for _, next := range path {
		seq.AdvanceNow(next)
		st := seq.State()
		assert.Equal(t, st.Stage == StageReady, st.Complete, "stage %s", st.Stage)
	}
}

func TestSequencer_RegressionAccepted(t *testing.T) {
	seq := newTestSequencer()
	seq.AdvanceNow(StageLoadingSettings)
	seq.AdvanceNow(StageLoadingAssets)

	assert.Equal(t, StageLoadingAssets, seq.Stage())
	assert.False(t, seq.IsComplete())
}

func TestSequencer_TryAdvanceHonoursDwell(t *testing.T) {
	seq := newTestSequencer()
	seq.AdvanceNow(StageLoadingAssets)
	start := time.Now()

	err := seq.TryAdvance(context.Background(), StageLoadingSettings)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 190*time.Millisecond)
	assert.Equal(t, StageLoadingSettings, seq.Stage())
}

func TestSequencer_TryAdvanceAfterDwell(t *testing.T) {
	seq := newTestSequencer()
	time.Sleep(StageInitializing.MinimumDuration())

	start := time.Now()
	err := seq.TryAdvance(context.Background(), StageLoadingAssets)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Equal(t, StageLoadingAssets, seq.Stage())
}

func TestSequencer_TryAdvanceCancelled(t *testing.T) {
	seq := newTestSequencer()
	seq.AdvanceNow(StageLoadingAssets)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := seq.TryAdvance(ctx, StageLoadingSettings)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, StageLoadingAssets, seq.Stage(), "cancelled wait must not transition")
}

func TestSequencer_Complete(t *testing.T) {
	seq := newTestSequencer()
	seq.AdvanceNow(StageLoadingSettings)

	start := time.Now()
	require.NoError(t, seq.Complete(context.Background()))

	assert.GreaterOrEqual(t, time.Since(start), 140*time.Millisecond)
	assert.True(t, seq.IsComplete())
	assert.InDelta(t, 1.0, seq.Progress(), 1e-9)
}

func TestSequencer_SetError(t *testing.T) {
	seq := newTestSequencer()
	seq.AdvanceNow(StageLoadingAssets)

	seq.SetError("Failed to load settings")
	seq.SetError("second error")

	msg, ok := seq.ErrorMessage()
	assert.True(t, ok)
	assert.Equal(t, "Failed to load settings", msg)
	assert.True(t, seq.HasError())
	assert.Equal(t, StageLoadingAssets, seq.Stage(), "error must not change stage")
	assert.False(t, seq.IsComplete())
}

func TestSequencer_ErrorSurvivesCompletion(t *testing.T) {
	seq := newTestSequencer()
	seq.SetError("boom")
	seq.AdvanceNow(StageReady)

	assert.True(t, seq.IsComplete())
	assert.True(t, seq.HasError())
}

func TestSequencer_Observers(t *testing.T) {
	var got []State
	seq := newTestSequencer(WithObserver(func(st State) {
		got = append(got, st)
	}))

	seq.AdvanceNow(StageLoadingAssets)
	seq.SetError("oops")
	seq.SetError("ignored")
	seq.AdvanceNow(StageReady)

	require.Len(t, got, 3)
	assert.Equal(t, StageLoadingAssets, got[0].Stage)
	assert.Equal(t, "oops", got[1].Error)
	assert.True(t, got[2].Complete)
}

func TestSequencer_WithSender(t *testing.T) {
	program := &mockProgram{}
	seq := newTestSequencer(WithSender(program))

	seq.AdvanceNow(StageReady)

	msgs := program.Messages()
	require.Len(t, msgs, 1)
	msg, ok := msgs[0].(StateMsg)
	require.True(t, ok)
	assert.Equal(t, StageReady, msg.State.Stage)
}

func TestSequencer_ConcurrentReads(t *testing.T) {
	seq := newTestSequencer()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				st := seq.State()
				assert.Equal(t, st.Stage == StageReady, st.Complete)
				_ = seq.Progress()
				_ = seq.Message()
			}
		}()
	}

	for _, stage := range stages {
		seq.AdvanceNow(stage)
	}
	wg.Wait()

	assert.True(t, seq.IsComplete())
}
