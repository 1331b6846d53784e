package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/search"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// linesPerStory is the height of one story entry: title row and preview row
const linesPerStory = 2

// StoriesView is the story list: a two-line table sorted and filtered by
// the active search query
type StoriesView struct {
	results []search.Result[domain.Story]
	cursor  Cursor
	labels  []string
	styles  *styles.Styles
}

// NewStoriesView creates an empty story list
func NewStoriesView(s *styles.Styles) *StoriesView {
	return &StoriesView{styles: s}
}

// SetStyles swaps the styles after a theme change
func (v *StoriesView) SetStyles(s *styles.Styles) {
	v.styles = s
}

// SetResults replaces the listed stories, keeping the selection when the
// selected story is still present
func (v *StoriesView) SetResults(results []search.Result[domain.Story]) {
	selected, ok := v.Current()
	v.results = results
	v.cursor.SetCount(len(results))
	if !ok {
		return
	}
	for i, r := range results {
		if r.Item.ID == selected.ID {
			v.cursor.Set(i)
			return
		}
	}
}

// Len returns the number of listed stories
func (v *StoriesView) Len() int {
	return len(v.results)
}

// Current returns the selected story
func (v *StoriesView) Current() (domain.Story, bool) {
	if len(v.results) == 0 {
		return domain.Story{}, false
	}
	return v.results[v.cursor.Index()].Item, true
}

// Cursor exposes the selection for navigation keys
func (v *StoriesView) Cursor() *Cursor {
	return &v.cursor
}

// Visible returns how many stories are on screen
func (v *StoriesView) Visible() int {
	start, end := v.cursor.Window()
	return end - start
}

// SelectVisible selects the i-th story on screen
func (v *StoriesView) SelectVisible(i int) {
	start, _ := v.cursor.Window()
	v.cursor.Set(start + i)
}

// SetJumpLabels shows labels beside the visible stories; nil hides them
func (v *StoriesView) SetJumpLabels(labels []string) {
	v.labels = labels
}

// Render draws the list into a width x height area
func (v *StoriesView) Render(width, height int, now time.Time, filtered bool) string {
	v.cursor.SetVisible((height - 2) / linesPerStory)

	if len(v.results) == 0 {
		msg := "No stories yet"
		if filtered {
			msg = "No stories match your search\n\nPress 'x' to clear filters"
		}
		return lipgloss.Place(width, max(1, height/2), lipgloss.Center, lipgloss.Center, v.styles.Subtle.Render(msg))
	}

	var b strings.Builder
	b.WriteString(v.renderHeader(width))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtle.Render(strings.Repeat("─", width)))

	start, end := v.cursor.Window()
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(v.renderStory(i, i-start, width, now))
	}

	if end < len(v.results) {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtle.Render(fmt.Sprintf(" ↓ %d more ↓ ", len(v.results)-end)))
	}
	return b.String()
}

type storyColumns struct {
	marker, title, characters, updated, count int
}

func storyWidths(width int) storyColumns {
	c := storyColumns{marker: 6, characters: 22, updated: 14, count: 6}
	c.title = max(10, width-c.marker-c.characters-c.updated-c.count)
	return c
}

func (v *StoriesView) renderHeader(width int) string {
	w := storyWidths(width)
	h := v.styles.Subtle.Bold(true)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		h.Width(w.marker).Render(""),
		h.Width(w.title).Render("Title"),
		h.Width(w.characters).Render("Characters"),
		h.Width(w.updated).Render("Last active"),
		h.Width(w.count).Align(lipgloss.Right).Render("Msgs"),
	)
}

func (v *StoriesView) renderStory(index, row, width int, now time.Time) string {
	r := v.results[index]
	s := r.Item
	w := storyWidths(width)
	active := index == v.cursor.Index()

	rowStyle := v.styles.Row
	if active {
		rowStyle = v.styles.RowActive
	}

	marker := "  "
	if active {
		marker = "▶ "
	}
	if row < len(v.labels) {
		marker = v.styles.StatusMode.Render(v.labels[row]) + " "
	}
	if s.IsFavorite {
		marker += v.styles.CardFavorite.Render("★")
	}

	title := v.styles.Highlight(s.Title, r.MatchedIndexes, rowStyle)
	chars := s.CharacterNames()
	if s.IsGroup() {
		chars = fmt.Sprintf("%s (%d)", chars, len(s.Characters))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(w.marker).Render(truncate(marker, w.marker)),
		lipgloss.NewStyle().Width(w.title).Render(truncate(title, w.title-1)),
		rowStyle.Width(w.characters).Render(truncate(chars, w.characters-1)),
		v.styles.Timestamp.Width(w.updated).Render(domain.RelativeTime(s.UpdatedAt, now)),
		v.styles.Subtle.Width(w.count).Align(lipgloss.Right).Render(fmt.Sprintf("%d", s.MessageCount)),
	)

	preview := s.LastMessage
	if s.LastSpeaker != "" {
		preview = s.LastSpeaker + ": " + preview
	}
	if s.ScenarioName != "" {
		preview = "[" + s.ScenarioName + "] " + preview
	}
	preview = strings.Join(strings.Fields(preview), " ")
	bottom := strings.Repeat(" ", w.marker) + v.styles.Subtle.Render(truncate(preview, max(0, width-w.marker)))

	return top + "\n" + bottom
}
