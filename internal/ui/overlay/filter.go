package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/search"
)

// FilterScope selects which toggles the filter menu offers
type FilterScope int

const (
	// FilterStories offers the multiple-characters toggle
	FilterStories FilterScope = iota
	// FilterCards offers the untagged toggle and the tag list
	FilterCards
)

// FilterChangedMsg is sent after the menu mutates the filter
type FilterChangedMsg struct{}

const maxTagRows = 8

// FilterMenu edits a domain.Filter in place
type FilterMenu struct {
	filter *domain.Filter
	scope  FilterScope
	tags   []domain.Tag
	styles *Styles

	cursor int
	typing bool
	input  textinput.Model
}

// NewFilterMenu creates a filter menu over filter. tags lists the tags the
// current screen's items carry, most used first.
func NewFilterMenu(filter *domain.Filter, scope FilterScope, tags []domain.Tag, s *Styles) *FilterMenu {
	ti := textinput.New()
	ti.Prompt = "tag: "
	ti.Placeholder = "type to find a tag"
	ti.CharLimit = 40
	ti.Width = 30

	if scope == FilterStories {
		tags = nil
	}
	return &FilterMenu{
		filter: filter,
		scope:  scope,
		tags:   tags,
		styles: orDefault(s),
		input:  ti,
	}
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.typing {
		return m.handleTyping(key)
	}
	return m.handleNormal(key)
}

func (m *FilterMenu) handleNormal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc", "q":
		return m, closeCmd

	case "f":
		m.filter.FavoritesOnly = !m.filter.FavoritesOnly
		return m, changed

	case "u":
		m.filter.PreviouslyUsedOnly = !m.filter.PreviouslyUsedOnly
		return m, changed

	case "m":
		if m.scope != FilterStories {
			return m, nil
		}
		m.filter.MultipleCharactersOnly = !m.filter.MultipleCharactersOnly
		return m, changed

	case "n":
		if m.scope != FilterCards {
			return m, nil
		}
		m.filter.UntaggedOnly = !m.filter.UntaggedOnly
		return m, changed

	case "c":
		m.filter.Clear()
		return m, changed

	case "j", "down":
		if m.cursor < len(m.tags)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case " ", "enter":
		if len(m.tags) == 0 {
			return m, nil
		}
		m.filter.CycleTag(m.tags[m.cursor].Name)
		return m, changed

	case "/":
		if len(m.tags) == 0 {
			return m, nil
		}
		m.typing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *FilterMenu) handleTyping(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.stopTyping()
		return m, nil

	case tea.KeyEnter:
		name, ok := search.ResolveTag(m.input.Value(), m.tags)
		m.stopTyping()
		if !ok {
			return m, nil
		}
		m.filter.CycleTag(name)
		for i, t := range m.tags {
			if t.Name == name {
				m.cursor = i
			}
		}
		return m, changed
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *FilterMenu) stopTyping() {
	m.typing = false
	m.input.Blur()
}

func changed() tea.Msg {
	return FilterChangedMsg{}
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	b.WriteString(m.toggle("f", "Favorites only", m.filter.FavoritesOnly))
	b.WriteString(m.toggle("u", "Previously used", m.filter.PreviouslyUsedOnly))
	if m.scope == FilterStories {
		b.WriteString(m.toggle("m", "Multiple characters", m.filter.MultipleCharactersOnly))
	} else {
		b.WriteString(m.toggle("n", "Untagged only", m.filter.UntaggedOnly))
	}

	if m.scope == FilterCards {
		b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 40)))
		b.WriteString("\n")
		b.WriteString(m.renderTags())
	}

	b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(m.styles.MenuKey.Render("[c]") + " " + m.styles.MenuItem.Render("Clear all filters"))
	b.WriteString("\n")

	hint := "Space: cycle tag • /: find tag • Esc: close"
	if m.typing {
		hint = "Enter: cycle match • Esc: back"
	} else if m.scope == FilterStories {
		hint = "Esc: close"
	}
	b.WriteString(m.styles.Footer.Render(hint))
	return b.String()
}

func (m *FilterMenu) toggle(key, label string, on bool) string {
	box := "[ ]"
	style := m.styles.MenuItem
	if on {
		box = "[●]"
		style = m.styles.MenuItemActive
	}
	return m.styles.MenuKey.Render("["+key+"]") + " " + style.Render(box+" "+label) + "\n"
}

func (m *FilterMenu) renderTags() string {
	var b strings.Builder

	header := "Tags"
	if n := len(m.filter.Tags); n > 0 {
		header += " " + m.styles.MenuCount.Render(fmt.Sprintf("(%d active)", n))
	}
	b.WriteString(m.styles.MenuHeader.Render(header))
	b.WriteString("\n")

	if len(m.tags) == 0 {
		b.WriteString(m.styles.MenuItemDisabled.Render("  no tags"))
		b.WriteString("\n")
		return b.String()
	}

	if m.typing {
		b.WriteString(m.styles.SearchBar.Render(m.input.View()))
		b.WriteString("\n")
		for i, t := range search.SuggestTags(m.input.Value(), m.tags) {
			if i == maxTagRows {
				break
			}
			b.WriteString("  " + m.chip(t) + "\n")
		}
		return b.String()
	}

	start := max(0, min(m.cursor-maxTagRows/2, len(m.tags)-maxTagRows))
	end := min(start+maxTagRows, len(m.tags))
	for i := start; i < end; i++ {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.MenuItemActive.Render("▸ ")
		}
		b.WriteString(marker + m.chip(m.tags[i]) + "\n")
	}
	return b.String()
}

func (m *FilterMenu) chip(t domain.Tag) string {
	state := m.filter.Tags[t.Name]
	prefix := ""
	switch state {
	case domain.TagPositive:
		prefix = "+"
	case domain.TagNegative:
		prefix = "−"
	}
	return m.styles.tags.TagState(state).Render(prefix + t.DisplayWithCount())
}

// Title returns the overlay title
func (m *FilterMenu) Title() string {
	if m.scope == FilterStories {
		return "Filter Stories"
	}
	return "Filter Library"
}

// Size returns the overlay dimensions
func (m *FilterMenu) Size() (width, height int) {
	if m.scope == FilterStories {
		return 48, 10
	}
	return 48, 14 + min(len(m.tags), maxTagRows)
}
