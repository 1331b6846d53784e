// Package loading tracks application startup through a fixed, ordered set of
// stages and gates the main UI behind a minimum dwell time per stage.
//
// Stages only move forward by convention: Initializing -> LoadingAssets ->
// LoadingSettings -> Ready. The dwell times exist purely to keep the loading
// screen from flickering when startup work finishes quickly.
package loading

import "time"

// Stage is one step of the startup sequence
type Stage int

const (
	StageInitializing Stage = iota
	StageLoadingAssets
	StageLoadingSettings
	StageReady
)

// stages lists every stage in progression order
var stages = []Stage{
	StageInitializing,
	StageLoadingAssets,
	StageLoadingSettings,
	StageReady,
}

// String returns the stage name used in logs
func (s Stage) String() string {
	switch s {
	case StageInitializing:
		return "initializing"
	case StageLoadingAssets:
		return "loading_assets"
	case StageLoadingSettings:
		return "loading_settings"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Message returns the user-facing status line for the stage
func (s Stage) Message() string {
	switch s {
	case StageInitializing:
		return "Starting Hearth..."
	case StageLoadingAssets:
		return "Loading interface..."
	case StageLoadingSettings:
		return "Loading your settings..."
	case StageReady:
		return "Ready!"
	default:
		return ""
	}
}

// Progress returns the fraction of startup completed, in [0, 1]
func (s Stage) Progress() float64 {
	switch s {
	case StageInitializing:
		return 0.1
	case StageLoadingAssets:
		return 0.4
	case StageLoadingSettings:
		return 0.8
	case StageReady:
		return 1.0
	default:
		return 0
	}
}

// MinimumDuration is how long the stage must stay visible before advancing
func (s Stage) MinimumDuration() time.Duration {
	switch s {
	case StageInitializing:
		return 100 * time.Millisecond
	case StageLoadingAssets:
		return 200 * time.Millisecond
	case StageLoadingSettings:
		return 150 * time.Millisecond
	default:
		return 0
	}
}

// ShouldShowApp reports whether the main UI replaces the loading screen
func (s Stage) ShouldShowApp() bool {
	return s == StageReady
}

// State is a point-in-time snapshot of the startup sequence
type State struct {
	Stage        Stage
	StageStart   time.Time // reset on every transition
	LoadingStart time.Time // never reset
	Error        string    // empty when no error was reported
	Complete     bool      // true exactly when Stage == StageReady
}

// NewState returns the initial state, starting at now
func NewState(now time.Time) State {
	return State{
		Stage:        StageInitializing,
		StageStart:   now,
		LoadingStart: now,
	}
}

// StageElapsed returns time spent in the current stage
func (s State) StageElapsed() time.Duration {
	return time.Since(s.StageStart)
}

// TotalElapsed returns time since the sequence started
func (s State) TotalElapsed() time.Duration {
	return time.Since(s.LoadingStart)
}

// StageMinimumElapsed reports whether the current stage may be left
func (s State) StageMinimumElapsed() bool {
	return s.StageElapsed() >= s.Stage.MinimumDuration()
}

// stageDeadline is the earliest instant the current stage may be left
func (s State) stageDeadline() time.Time {
	return s.StageStart.Add(s.Stage.MinimumDuration())
}
