package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/search"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func storyResults(n int) []search.Result[domain.Story] {
	out := make([]search.Result[domain.Story], n)
	for i := range out {
		out[i].Item = domain.Story{
			ID:           fmt.Sprintf("s%d", i),
			Title:        fmt.Sprintf("Story %d", i),
			Characters:   []domain.Participant{{ID: "c1", Name: "Alice"}},
			LastMessage:  "hello\nthere",
			LastSpeaker:  "Alice",
			UpdatedAt:    now.Add(-time.Duration(i) * time.Hour),
			MessageCount: i,
		}
	}
	return out
}

func TestStoriesView_Empty(t *testing.T) {
	v := NewStoriesView(styles.New())

	_, ok := v.Current()
	assert.False(t, ok)
	assert.Contains(t, v.Render(80, 20, now, false), "No stories yet")
	assert.Contains(t, v.Render(80, 20, now, true), "No stories match")
}

func TestStoriesView_Render(t *testing.T) {
	v := NewStoriesView(styles.New())
	results := storyResults(2)
	results[0].Item.IsFavorite = true
	results[1].Item.Characters = append(results[1].Item.Characters, domain.Participant{ID: "c2", Name: "Marcus"})
	results[1].Item.ScenarioName = "Tavern"
	v.SetResults(results)

	out := ansi.Strip(v.Render(100, 20, now, false))
	assert.Contains(t, out, "▶ ★")
	assert.Contains(t, out, "Story 0")
	assert.Contains(t, out, "Alice, Marcus (2)")
	assert.Contains(t, out, "Just now")
	assert.Contains(t, out, "1 hour ago")
	assert.Contains(t, out, "Alice: hello there", "previews collapse whitespace")
	assert.Contains(t, out, "[Tavern] Alice:")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 100)
	}
}

func TestStoriesView_ScrollsAndReportsMore(t *testing.T) {
	v := NewStoriesView(styles.New())
	v.SetResults(storyResults(20))

	// 2 header lines, 2 lines per story
	out := v.Render(80, 12, now, false)
	assert.Equal(t, 5, v.Visible())
	assert.Contains(t, out, "15 more")

	v.Cursor().Move(7)
	out = ansi.Strip(v.Render(80, 12, now, false))
	assert.Contains(t, out, "Story 7")
	assert.NotContains(t, out, "Story 2 ")
	cur, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, "s7", cur.ID)
}

func TestStoriesView_SetResultsKeepsSelection(t *testing.T) {
	v := NewStoriesView(styles.New())
	results := storyResults(5)
	v.SetResults(results)
	v.Cursor().Set(3)

	reversed := make([]search.Result[domain.Story], len(results))
	for i, r := range results {
		reversed[len(results)-1-i] = r
	}
	v.SetResults(reversed)

	cur, _ := v.Current()
	assert.Equal(t, "s3", cur.ID)
	assert.Equal(t, 1, v.Cursor().Index())

	v.SetResults(results[:2])
	cur, _ = v.Current()
	assert.Equal(t, "s1", cur.ID, "falls back to a clamped position")
}

func TestStoriesView_JumpLabels(t *testing.T) {
	v := NewStoriesView(styles.New())
	v.SetResults(storyResults(20))
	v.Render(80, 12, now, false)
	v.Cursor().Move(10)
	v.Render(80, 12, now, false)

	v.SetJumpLabels([]string{"a", "s", "d", "f", "g"})
	out := ansi.Strip(v.Render(80, 12, now, false))
	assert.Contains(t, out, " s ")

	v.SelectVisible(1)
	cur, _ := v.Current()
	assert.Equal(t, "s7", cur.ID)
}
