package loading

import (
	"context"
	"fmt"
	"time"
)

// FastPause is the fixed pause between stages when dwell times are skipped
const FastPause = 100 * time.Millisecond

// Step is a unit of startup work performed while its stage is displayed
type Step struct {
	Stage Stage
	Name  string
	Run   func(ctx context.Context) error
}

// Sequence drives seq through steps in order and finishes at StageReady.
//
// A failing step is reported through SetError and does not stop the
// sequence. Only context cancellation aborts it.
func Sequence(ctx context.Context, seq *Sequencer, steps ...Step) error {
	for _, step := range steps {
		if err := enter(ctx, seq, step.Stage); err != nil {
			return err
		}
		if step.Run == nil {
			continue
		}

		started := time.Now()
		if err := step.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			seq.SetError(fmt.Sprintf("%s: %v", step.Name, err))
			continue
		}
		seq.logger.Debug("loading step finished", "step", step.Name, "elapsed", time.Since(started))
	}

	return enter(ctx, seq, StageReady)
}

func enter(ctx context.Context, seq *Sequencer, stage Stage) error {
	if !seq.fastStart {
		return seq.TryAdvance(ctx, stage)
	}

	seq.AdvanceNow(stage)
	if stage == StageReady {
		return nil
	}
	return sleep(ctx, FastPause)
}

// sleep pauses for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
