package app

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/loading"
	"github.com/riordanpawley/hearth/internal/logging"
)

func TestBootstrap_SeedsOnce(t *testing.T) {
	env := newTestEnv(t)
	logger := logging.NullLogger()

	done := bootstrap(t.Context(), env.seq, env.store, env.settings, testNow, logger)
	require.NoError(t, done.err)
	assert.True(t, env.seq.State().Complete)
	assert.Equal(t, loading.StageReady, env.seq.Stage())
	assert.Len(t, done.library.Stories, len(domain.SampleStories(testNow)))
	assert.Equal(t, env.settings.Get(), done.settings)

	// a second run reads what the first one stored
	_, err := env.store.ToggleCharacterFavorite(t.Context(), done.library.Characters[0].ID)
	require.NoError(t, err)
	again, err := loadLibrary(t.Context(), env.store, testNow, logger)
	require.NoError(t, err)
	assert.NotEqual(t, done.library.Characters[0].IsFavorite, again.Characters[0].IsFavorite)
}

func TestBootstrap_StepFailureIsReported(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.settings.Path(), []byte("theme = [broken"), 0o600))

	done := bootstrap(t.Context(), env.seq, env.store, env.settings, testNow, logging.NullLogger())
	require.NoError(t, done.err)

	msg, failed := env.seq.ErrorMessage()
	require.True(t, failed)
	assert.Contains(t, msg, "settings:")
	assert.True(t, env.seq.State().Complete, "loading still finishes")
	assert.NotZero(t, done.settings.Version, "falls back to the current settings")
	assert.NotEmpty(t, done.library.Stories)
}

func TestBootstrap_Cancelled(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	done := bootstrap(ctx, env.seq, env.store, env.settings, testNow, logging.NullLogger())
	assert.ErrorIs(t, done.err, context.Canceled)
	assert.False(t, env.seq.State().Complete)

	m := env.model()
	_, cmd := update(m, done)
	assert.True(t, isQuit(cmd))
}
