package store

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/logging"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// openStores returns a memory-only store and a bbolt-backed one
func openStores(t *testing.T) map[string]*Store {
	t.Helper()

	mem, err := Open("", logging.NullLogger())
	require.NoError(t, err)

	disk, err := Open(filepath.Join(t.TempDir(), "data", "hearth.db"), logging.NullLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		mem.Close()
		disk.Close()
	})
	return map[string]*Store{"memory": mem, "bolt": disk}
}

func TestOpen_Modes(t *testing.T) {
	stores := openStores(t)
	assert.False(t, stores["memory"].Persistent())
	assert.Empty(t, stores["memory"].Path())
	assert.True(t, stores["bolt"].Persistent())
	assert.NotEmpty(t, stores["bolt"].Path())
}

func TestSeed_FirstRunOnly(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			lib := domain.SampleLibrary(testNow)

			assert.False(t, s.Seeded())
			wrote, err := s.Seed(ctx, lib)
			require.NoError(t, err)
			assert.True(t, wrote)
			assert.True(t, s.Seeded())

			wrote, err = s.Seed(ctx, lib)
			require.NoError(t, err)
			assert.False(t, wrote)

			got, err := s.Library(ctx)
			require.NoError(t, err)
			assert.Len(t, got.Stories, len(lib.Stories))
			assert.Len(t, got.Characters, len(lib.Characters))
			assert.Len(t, got.Scenarios, len(lib.Scenarios))

			// numeric IDs keep their natural order
			assert.Equal(t, "1", got.Characters[0].ID)
			assert.Equal(t, "10", got.Characters[9].ID)
		})
	}
}

func TestStory_RoundTripAndNotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			story := domain.Story{ID: "42", Title: "Harbor Lights", CreatedAt: testNow}
			require.NoError(t, s.SaveStory(ctx, story))

			got, err := s.Story(ctx, "42")
			require.NoError(t, err)
			assert.Equal(t, "Harbor Lights", got.Title)
			assert.True(t, got.CreatedAt.Equal(testNow))

			_, err = s.Story(ctx, "missing")
			require.Error(t, err)
			assert.True(t, IsNotFound(err))
			var se *domain.StorageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "stories", se.Bucket)
			assert.Equal(t, "missing", se.Key)
		})
	}
}

func TestSaveStory_RequiresID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.SaveStory(context.Background(), domain.Story{Title: "nameless"})
			assert.ErrorIs(t, err, ErrEmptyID)
		})
	}
}

func TestDeleteStory(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveStory(ctx, domain.Story{ID: "1"}))
			require.NoError(t, s.DeleteStory(ctx, "1"))

			_, err := s.Story(ctx, "1")
			assert.True(t, IsNotFound(err))
			assert.True(t, IsNotFound(s.DeleteStory(ctx, "1")))

			stories, err := s.Stories(ctx)
			require.NoError(t, err)
			assert.Empty(t, stories)
		})
	}
}

func TestAppendMessage(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveStory(ctx, domain.Story{ID: "1", MessageCount: 2}))

			story, err := s.AppendMessage(ctx, "1", domain.Message{
				Role:    domain.RoleUser,
				Speaker: "Theron",
				Content: "I open the door.",
				SentAt:  testNow,
			})
			require.NoError(t, err)
			assert.Equal(t, 3, story.MessageCount)
			assert.Equal(t, "I open the door.", story.LastMessage)
			require.Len(t, story.Messages, 1)
			assert.NotEmpty(t, story.Messages[0].ID)

			reloaded, err := s.Story(ctx, "1")
			require.NoError(t, err)
			assert.Equal(t, story.MessageCount, reloaded.MessageCount)

			_, err = s.AppendMessage(ctx, "nope", domain.Message{Content: "x"})
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestToggleFavorites(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveStory(ctx, domain.Story{ID: "1"}))
			require.NoError(t, s.SaveCharacter(ctx, domain.Character{Card: domain.Card{ID: "7", Name: "Knox"}}))

			fav, err := s.ToggleStoryFavorite(ctx, "1")
			require.NoError(t, err)
			assert.True(t, fav)

			fav, err = s.ToggleCharacterFavorite(ctx, "7")
			require.NoError(t, err)
			assert.True(t, fav)
			fav, err = s.ToggleCharacterFavorite(ctx, "7")
			require.NoError(t, err)
			assert.False(t, fav)

			_, err = s.ToggleCharacterFavorite(ctx, "missing")
			assert.True(t, IsNotFound(err))

			require.NoError(t, s.SaveScenario(ctx, domain.Scenario{Card: domain.Card{ID: "9", Name: "Harbor"}}))
			fav, err = s.ToggleScenarioFavorite(ctx, "9")
			require.NoError(t, err)
			assert.True(t, fav)
		})
	}
}

func TestLogs_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			entries, err := s.LoadLogs(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			saved := []logging.Entry{
				{Time: testNow, Level: slog.LevelWarn, Message: "slow", Attrs: "ms=90"},
				{Time: testNow.Add(time.Second), Level: slog.LevelInfo, Message: "ready"},
			}
			require.NoError(t, s.SaveLogs(ctx, saved))

			entries, err = s.LoadLogs(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, slog.LevelWarn, entries[0].Level)
			assert.Equal(t, "ms=90", entries[0].Attrs)

			require.NoError(t, s.SaveLogs(ctx, nil))
			entries, err = s.LoadLogs(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hearth.db")

	s, err := Open(path, logging.NullLogger())
	require.NoError(t, err)
	_, err = s.Seed(ctx, domain.SampleLibrary(testNow))
	require.NoError(t, err)
	require.NoError(t, s.SaveLogs(ctx, []logging.Entry{{Message: "bye"}}))
	require.NoError(t, s.Close())

	s, err = Open(path, logging.NullLogger())
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.Seeded())
	stories, err := s.Stories(ctx)
	require.NoError(t, err)
	assert.Len(t, stories, len(domain.SampleStories(testNow)))

	entries, err := s.LoadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bye", entries[0].Message)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := openStores(t)["memory"]
	_, err := s.Stories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.SaveLogs(ctx, nil), context.Canceled)
}

func TestKeyLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2", "10", true},
		{"10", "2", false},
		{"9", "abc", true},
		{"abc", "9", false},
		{"abc", "abd", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, keyLess(tt.a, tt.b))
		})
	}
}
