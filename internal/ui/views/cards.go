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

const (
	cardWidth  = 30 // outer width including border
	cardHeight = 8  // outer height including border
	maxCardTag = 3
)

// CardsView lays out characters or scenarios as a grid of cards or as a
// one-line-per-item list
type CardsView[T domain.CardItem] struct {
	noun    string
	results []search.Result[T]
	mode    domain.ViewMode
	index   int
	offset  int // first visible row (grid) or item (list)
	columns int
	labels  []string
	styles  *styles.Styles
}

// NewCardsView creates an empty card view; noun names the items in empty
// states, e.g. "characters"
func NewCardsView[T domain.CardItem](noun string, s *styles.Styles) *CardsView[T] {
	return &CardsView[T]{noun: noun, columns: 1, styles: s}
}

// SetStyles swaps the styles after a theme change
func (v *CardsView[T]) SetStyles(s *styles.Styles) {
	v.styles = s
}

// Mode returns the layout
func (v *CardsView[T]) Mode() domain.ViewMode {
	return v.mode
}

// ToggleMode switches between grid and list
func (v *CardsView[T]) ToggleMode() {
	v.mode = v.mode.Toggle()
	v.offset = 0
}

// SetResults replaces the items, keeping the selection when possible
func (v *CardsView[T]) SetResults(results []search.Result[T]) {
	selected, ok := v.Current()
	v.results = results
	v.index = max(0, min(v.index, len(results)-1))
	if !ok {
		return
	}
	for i, r := range results {
		if r.Item.CardData().ID == selected.CardData().ID {
			v.index = i
			return
		}
	}
}

// Len returns the number of items
func (v *CardsView[T]) Len() int {
	return len(v.results)
}

// Current returns the selected item
func (v *CardsView[T]) Current() (T, bool) {
	if len(v.results) == 0 {
		var zero T
		return zero, false
	}
	return v.results[v.index].Item, true
}

// Index returns the selected position
func (v *CardsView[T]) Index() int {
	return v.index
}

func (v *CardsView[T]) set(i int) {
	v.index = max(0, min(i, len(v.results)-1))
}

// MoveVertical moves a row: one card row in the grid, one item in the list
func (v *CardsView[T]) MoveVertical(delta int) {
	if v.mode == domain.ViewGrid {
		delta *= v.columns
	}
	v.set(v.index + delta)
}

// MoveHorizontal moves within a grid row; lists ignore it
func (v *CardsView[T]) MoveHorizontal(delta int) {
	if v.mode == domain.ViewList {
		return
	}
	col := v.index % v.columns
	next := col + delta
	if next < 0 || next >= v.columns {
		return
	}
	v.set(v.index + delta)
}

// Top selects the first item
func (v *CardsView[T]) Top() {
	v.set(0)
}

// Bottom selects the last item
func (v *CardsView[T]) Bottom() {
	v.set(len(v.results) - 1)
}

// visibleRange returns the item range on screen for the last render
func (v *CardsView[T]) visibleRange(height int) (start, end int) {
	if v.mode == domain.ViewList {
		rows := max(1, height-1) // last line reports more items
		v.offset = scrollTo(v.index, v.offset, rows, len(v.results))
		return v.offset, min(v.offset+rows, len(v.results))
	}

	rows := max(1, height/cardHeight)
	totalRows := (len(v.results) + v.columns - 1) / v.columns
	v.offset = scrollTo(v.index/v.columns, v.offset, rows, totalRows)
	return v.offset * v.columns, min((v.offset+rows)*v.columns, len(v.results))
}

// scrollTo returns the offset that keeps pos on screen
func scrollTo(pos, offset, visible, count int) int {
	if pos < offset {
		offset = pos
	}
	if pos >= offset+visible {
		offset = pos - visible + 1
	}
	return max(0, min(offset, count-visible))
}

// Visible returns how many items were on screen at the last render
func (v *CardsView[T]) Visible(height int) int {
	start, end := v.visibleRange(height)
	return end - start
}

// SelectVisible selects the i-th item on screen
func (v *CardsView[T]) SelectVisible(i, height int) {
	start, _ := v.visibleRange(height)
	v.set(start + i)
}

// SetJumpLabels shows labels on the visible items; nil hides them
func (v *CardsView[T]) SetJumpLabels(labels []string) {
	v.labels = labels
}

// Render draws the items into a width x height area
func (v *CardsView[T]) Render(width, height int, now time.Time, filtered bool) string {
	v.columns = max(1, width/cardWidth)

	if len(v.results) == 0 {
		msg := "No " + v.noun + " yet"
		if filtered {
			msg = "No " + v.noun + " match your search\n\nPress 'x' to clear filters"
		}
		return lipgloss.Place(width, max(1, height/2), lipgloss.Center, lipgloss.Center, v.styles.Subtle.Render(msg))
	}

	if v.mode == domain.ViewList {
		return v.renderList(width, height, now)
	}
	return v.renderGrid(height, now)
}

func (v *CardsView[T]) label(i, start int) string {
	if n := i - start; n < len(v.labels) {
		return v.styles.StatusMode.Render(v.labels[n]) + " "
	}
	return ""
}

func (v *CardsView[T]) renderGrid(height int, now time.Time) string {
	start, end := v.visibleRange(height)

	var rows []string
	for rowStart := start; rowStart < end; rowStart += v.columns {
		var cells []string
		for i := rowStart; i < min(rowStart+v.columns, end); i++ {
			cells = append(cells, v.renderCard(i, start, now))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if end < len(v.results) {
		out += "\n" + v.styles.Subtle.Render(fmt.Sprintf(" ↓ %d more ↓ ", len(v.results)-end))
	}
	return out
}

func (v *CardsView[T]) renderCard(i, start int, now time.Time) string {
	r := v.results[i]
	c := r.Item.CardData()
	active := i == v.index
	inner := cardWidth - 4 // border and padding

	style := v.styles.Card
	if active {
		style = v.styles.CardActive
	}

	title := v.label(i, start) + v.styles.Avatar(c.Name, initials(c.Name)) + " " +
		v.styles.Highlight(c.Name, r.MatchedIndexes, v.styles.CardTitle)
	if c.IsFavorite {
		title += " " + v.styles.CardFavorite.Render("★")
	}

	desc := lipgloss.NewStyle().Width(inner).Render(c.Description)
	descLines := strings.Split(desc, "\n")
	if len(descLines) > 2 {
		descLines = descLines[:2]
		descLines[1] = truncate(strings.TrimRight(descLines[1], " ")+"…", inner)
	}
	for len(descLines) < 2 {
		descLines = append(descLines, "")
	}

	lines := []string{
		truncate(title, inner),
		v.styles.Subtle.Render(descLines[0]),
		v.styles.Subtle.Render(descLines[1]),
		truncate(v.renderTags(c.Tags), inner),
		v.styles.Timestamp.Render(truncate(usage(c, now), inner)),
	}
	return style.Width(cardWidth - 2).Height(cardHeight - 2).Render(strings.Join(lines, "\n"))
}

func (v *CardsView[T]) renderTags(tags []string) string {
	var chips []string
	for i, t := range tags {
		if i == maxCardTag {
			chips = append(chips, v.styles.Subtle.Render(fmt.Sprintf("+%d", len(tags)-maxCardTag)))
			break
		}
		chips = append(chips, v.styles.Tag.Render(t))
	}
	return strings.Join(chips, " ")
}

func (v *CardsView[T]) renderList(width, height int, now time.Time) string {
	start, end := v.visibleRange(height)

	var b strings.Builder
	for i := start; i < end; i++ {
		r := v.results[i]
		c := r.Item.CardData()
		active := i == v.index

		rowStyle := v.styles.Row
		marker := "  "
		if active {
			rowStyle = v.styles.RowActive
			marker = "▶ "
		}
		if l := v.label(i, start); l != "" {
			marker = l
		}
		fav := " "
		if c.IsFavorite {
			fav = v.styles.CardFavorite.Render("★")
		}

		line := marker + fav + " " +
			v.styles.Avatar(c.Name, initials(c.Name)) + " " +
			v.styles.Highlight(c.Name, r.MatchedIndexes, rowStyle) + "  " +
			v.styles.Subtle.Render(c.Description)
		meta := v.styles.Timestamp.Render(usage(c, now))

		gap := width - lipgloss.Width(meta) - 1
		b.WriteString(lipgloss.NewStyle().Width(gap).Render(truncate(line, gap-1)))
		b.WriteString(" ")
		b.WriteString(meta)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(v.results) {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtle.Render(fmt.Sprintf(" ↓ %d more ↓ ", len(v.results)-end)))
	}
	return b.String()
}

func usage(c domain.Card, now time.Time) string {
	used := "never used"
	if c.LastUsed != nil {
		used = "used " + strings.ToLower(domain.RelativeTime(*c.LastUsed, now))
	}
	stories := "1 story"
	if c.StoryCount != 1 {
		stories = fmt.Sprintf("%d stories", c.StoryCount)
	}
	return stories + " • " + used
}

func initials(name string) string {
	return domain.Participant{Name: name}.Initials()
}
