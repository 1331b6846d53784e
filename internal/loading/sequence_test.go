package loading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_RunsStepsInOrder(t *testing.T) {
	seq := newTestSequencer()
	var order []Stage

	step := func(stage Stage) Step {
		return Step{
			Stage: stage,
			Name:  stage.String(),
			Run: func(ctx context.Context) error {
				order = append(order, seq.Stage())
				return nil
			},
		}
	}

	start := time.Now()
	err := Sequence(context.Background(), seq,
		step(StageLoadingAssets),
		step(StageLoadingSettings),
	)
	require.NoError(t, err)

	assert.Equal(t, []Stage{StageLoadingAssets, StageLoadingSettings}, order)
	assert.True(t, seq.IsComplete())
	assert.False(t, seq.HasError())

	// 100ms + 200ms + 150ms of dwell
	assert.GreaterOrEqual(t, time.Since(start), 430*time.Millisecond)
}

func TestSequence_FailedStepIsAdvisory(t *testing.T) {
	seq := newTestSequencer(WithFastStart(true))
	ran := false

	err := Sequence(context.Background(), seq,
		Step{
			Stage: StageLoadingAssets,
			Name:  "load assets",
			Run: func(ctx context.Context) error {
				return errors.New("disk on fire")
			},
		},
		Step{
			Stage: StageLoadingSettings,
			Name:  "load settings",
			Run: func(ctx context.Context) error {
				ran = true
				return nil
			},
		},
	)
	require.NoError(t, err)

	assert.True(t, ran, "later steps still run after a failure")
	assert.True(t, seq.IsComplete())
	msg, ok := seq.ErrorMessage()
	assert.True(t, ok)
	assert.Equal(t, "load assets: disk on fire", msg)
}

func TestSequence_FastStart(t *testing.T) {
	seq := newTestSequencer(WithFastStart(true))

	start := time.Now()
	err := Sequence(context.Background(), seq,
		Step{Stage: StageLoadingAssets, Name: "assets"},
		Step{Stage: StageLoadingSettings, Name: "settings"},
	)
	require.NoError(t, err)

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 2*FastPause-10*time.Millisecond)
	assert.True(t, seq.IsComplete())
}

func TestSequence_Cancelled(t *testing.T) {
	seq := newTestSequencer()
	ctx, cancel := context.WithCancel(context.Background())

	err := Sequence(ctx, seq, Step{
		Stage: StageLoadingAssets,
		Name:  "assets",
		Run: func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, seq.IsComplete())
	assert.False(t, seq.HasError(), "cancellation is not a loading error")
}
