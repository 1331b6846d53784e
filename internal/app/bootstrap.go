package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/riordanpawley/hearth/internal/config"
	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/loading"
	"github.com/riordanpawley/hearth/internal/store"
)

// bootstrapDoneMsg carries everything loaded during startup
type bootstrapDoneMsg struct {
	library  domain.Library
	settings config.AppSettings
	err      error // set only when the sequence was cancelled
}

// bootstrap loads the library and the user's settings while seq walks the
// loading stages. Step failures are reported through seq and leave the
// corresponding result empty.
func bootstrap(ctx context.Context, seq *loading.Sequencer, st *store.Store, settings *config.SettingsManager, now time.Time, logger *slog.Logger) bootstrapDoneMsg {
	var done bootstrapDoneMsg

	done.err = loading.Sequence(ctx, seq,
		loading.Step{
			Stage: loading.StageLoadingAssets,
			Name:  "library",
			Run: func(ctx context.Context) error {
				lib, err := loadLibrary(ctx, st, now, logger)
				if err != nil {
					return err
				}
				done.library = lib
				return nil
			},
		},
		loading.Step{
			Stage: loading.StageLoadingSettings,
			Name:  "settings",
			Run: func(ctx context.Context) error {
				if err := settings.Load(); err != nil {
					return err
				}
				done.settings = settings.Get()
				return nil
			},
		},
	)
	if done.settings.Version == 0 {
		done.settings = settings.Get()
	}
	return done
}

// loadLibrary seeds sample content on first run, then reads the three
// collections concurrently
func loadLibrary(ctx context.Context, st *store.Store, now time.Time, logger *slog.Logger) (domain.Library, error) {
	seeded, err := st.Seed(ctx, domain.SampleLibrary(now))
	if err != nil {
		return domain.Library{}, fmt.Errorf("failed to seed library: %w", err)
	}
	if seeded {
		logger.Info("seeded sample library")
	}

	var lib domain.Library
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stories, err := st.Stories(gctx)
		lib.Stories = stories
		return err
	})
	g.Go(func() error {
		chars, err := st.Characters(gctx)
		lib.Characters = chars
		return err
	})
	g.Go(func() error {
		scenarios, err := st.Scenarios(gctx)
		lib.Scenarios = scenarios
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Library{}, fmt.Errorf("failed to load library: %w", err)
	}

	logger.Debug("library loaded",
		"stories", len(lib.Stories),
		"characters", len(lib.Characters),
		"scenarios", len(lib.Scenarios))
	return lib, nil
}

// bootstrapCmd runs bootstrap off the event loop
func (m Model) bootstrapCmd() tea.Cmd {
	seq, st, settings, now, logger := m.seq, m.store, m.settings, m.now(), m.logger
	ctx := m.ctx
	return func() tea.Msg {
		return bootstrap(ctx, seq, st, settings, now, logger)
	}
}
