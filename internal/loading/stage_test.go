package loading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStage_StaticData(t *testing.T) {
	tests := []struct {
		stage    Stage
		name     string
		message  string
		progress float64
		dwell    time.Duration
		showApp  bool
	}{
		{StageInitializing, "initializing", "Starting Hearth...", 0.1, 100 * time.Millisecond, false},
		{StageLoadingAssets, "loading_assets", "Loading interface...", 0.4, 200 * time.Millisecond, false},
		{StageLoadingSettings, "loading_settings", "Loading your settings...", 0.8, 150 * time.Millisecond, false},
		{StageReady, "ready", "Ready!", 1.0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.stage.String())
			assert.Equal(t, tt.message, tt.stage.Message())
			assert.InDelta(t, tt.progress, tt.stage.Progress(), 1e-9)
			assert.Equal(t, tt.dwell, tt.stage.MinimumDuration())
			assert.Equal(t, tt.showApp, tt.stage.ShouldShowApp())
		})
	}
}

func TestStage_ProgressNonDecreasing(t *testing.T) {
	for i := 1; i < len(stages); i++ {
		assert.GreaterOrEqual(t, stages[i].Progress(), stages[i-1].Progress(),
			"progress of %s should not be below %s", stages[i], stages[i-1])
	}
}

func TestStage_Unknown(t *testing.T) {
	s := Stage(42)
	assert.Equal(t, "unknown", s.String())
	assert.Empty(t, s.Message())
	assert.Zero(t, s.Progress())
	assert.Zero(t, s.MinimumDuration())
	assert.False(t, s.ShouldShowApp())
}

func TestNewState(t *testing.T) {
	now := time.Now()
	st := NewState(now)

	assert.Equal(t, StageInitializing, st.Stage)
	assert.Equal(t, now, st.StageStart)
	assert.Equal(t, now, st.LoadingStart)
	assert.Empty(t, st.Error)
	assert.False(t, st.Complete)
}

func TestState_StageMinimumElapsed(t *testing.T) {
	fresh := NewState(time.Now())
	assert.False(t, fresh.StageMinimumElapsed())

	old := NewState(time.Now().Add(-time.Second))
	assert.True(t, old.StageMinimumElapsed())
	assert.GreaterOrEqual(t, old.TotalElapsed(), time.Second)
}
