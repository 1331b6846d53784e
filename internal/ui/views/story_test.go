package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

func newStoryView(t *testing.T, story domain.Story, opts StoryOptions) *StoryView {
	t.Helper()
	v := NewStoryView(styles.New(), "notty")
	v.SetCursorMode(cursor.CursorStatic)
	v.SetOptions(opts)
	v.SetSize(80, 30)
	v.SetStory(story)
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tavernStory(messages int) domain.Story {
	s := domain.Story{
		ID:           "story-1",
		Title:        "The Tavern",
		Characters:   []domain.Participant{{ID: "c1", Name: "Marcus Vale"}},
		ScenarioName: "Rainy Night",
	}
	for i := 0; i < messages; i++ {
		role, speaker := domain.RoleCharacter, "Marcus Vale"
		if i%2 == 1 {
			role, speaker = domain.RoleUser, "Wren"
		}
		s.Messages = append(s.Messages, domain.Message{
			ID:      fmt.Sprintf("m%d", i),
			Role:    role,
			Speaker: speaker,
			Content: fmt.Sprintf("Line **%d** of the tale", i),
			SentAt:  now.Add(time.Duration(i) * time.Minute),
		})
	}
	return s
}

func TestStoryView_Empty(t *testing.T) {
	v := newStoryView(t, domain.Story{ID: "s", Title: "Blank"}, StoryOptions{})
	out := ansi.Strip(v.View())
	assert.Contains(t, out, "Blank")
	assert.Contains(t, out, "0 messages")
	assert.Contains(t, out, "No messages yet")
	assert.Contains(t, out, "Press i to write")
}

func TestStoryView_Transcript(t *testing.T) {
	v := newStoryView(t, tavernStory(2), StoryOptions{Timestamps: true, WordCount: true})
	out := ansi.Strip(v.View())

	assert.Contains(t, out, "The Tavern")
	assert.Contains(t, out, "MV")
	assert.Contains(t, out, "in Rainy Night")
	assert.Contains(t, out, "2 messages")
	assert.Contains(t, out, "Marcus Vale · 12:00 · 5 words")
	assert.Contains(t, out, "Wren · 12:01")
	assert.Contains(t, out, "of the tale")
}

func TestStoryView_Grouping(t *testing.T) {
	story := tavernStory(1)
	story.Messages = append(story.Messages, domain.Message{
		ID: "m9", Role: domain.RoleCharacter, Speaker: "Marcus Vale", Content: "And another thing",
	})

	grouped := ansi.Strip(newStoryView(t, story, StoryOptions{Grouping: true}).renderTranscript())
	ungrouped := ansi.Strip(newStoryView(t, story, StoryOptions{}).renderTranscript())

	assert.Equal(t, 1, strings.Count(grouped, "Marcus Vale"))
	assert.Equal(t, 2, strings.Count(ungrouped, "Marcus Vale"))
}

func TestStoryView_NarratorAndUserFallback(t *testing.T) {
	story := domain.Story{ID: "s", Messages: []domain.Message{
		{ID: "a", Role: domain.RoleUser, Content: "I open the door"},
		{ID: "b", Role: domain.RoleNarrator, Content: domain.NarratorReply},
	}}
	out := ansi.Strip(newStoryView(t, story, StoryOptions{}).renderTranscript())
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Narrator")
	assert.Contains(t, out, "The story continues")
}

func TestStoryView_Composer(t *testing.T) {
	v := newStoryView(t, tavernStory(1), StoryOptions{})
	assert.False(t, v.Composing())

	v.Update(key("i"))
	require.True(t, v.Composing())

	assert.Nil(t, v.Update(key("enter")), "blank input is not sent")
	assert.True(t, v.Composing())

	for _, r := range "Hello there" {
		v.Update(key(string(r)))
	}
	assert.Contains(t, ansi.Strip(v.View()), "Hello there")

	cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, SendMessageMsg{StoryID: "story-1", Content: "Hello there"}, cmd())
	assert.True(t, v.Composing(), "the composer stays open for the next line")
	assert.NotContains(t, ansi.Strip(v.View()), "Hello there")

	v.Update(key("esc"))
	assert.False(t, v.Composing())
}

func TestStoryView_Scrolling(t *testing.T) {
	v := newStoryView(t, tavernStory(40), StoryOptions{})
	assert.True(t, v.AtBottom(), "opening a story shows the newest message")

	v.Update(key("g"))
	assert.False(t, v.AtBottom())

	story := v.Story()
	story.Append(domain.Message{ID: "new", Role: domain.RoleNarrator, Content: "more"})
	v.SetStory(story)
	assert.False(t, v.AtBottom(), "without auto-scroll the reader keeps their place")

	v.SetOptions(StoryOptions{AutoScroll: true})
	story.Append(domain.Message{ID: "newer", Role: domain.RoleNarrator, Content: "even more"})
	v.SetStory(story)
	assert.True(t, v.AtBottom())

	v.Update(key("g"))
	v.Update(key("G"))
	assert.True(t, v.AtBottom())
}

func TestGlamourStyle(t *testing.T) {
	assert.Equal(t, "light", GlamourStyle(styles.Latte))
	assert.Equal(t, "dark", GlamourStyle(styles.Macchiato))
}
