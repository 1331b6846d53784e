package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/hearth/internal/domain"
)

// SortKey is the SelectionMsg key the sort menu answers with. The value is
// the updated domain.Sort.
const SortKey = "sort"

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Field       domain.SortField
	Description string
}

var sortOptions = []SortOption{
	{Key: "r", Field: domain.SortByRecent, Description: "Last activity"},
	{Key: "c", Field: domain.SortByCreated, Description: "Creation date"},
	{Key: "a", Field: domain.SortByName, Description: "Alphabetical"},
	{Key: "u", Field: domain.SortByUsage, Description: "Messages or stories"},
}

// SortMenu is a menu overlay for sorting configuration
type SortMenu struct {
	sort   domain.Sort
	styles *Styles
}

// NewSortMenu creates a sort menu starting from current
func NewSortMenu(current domain.Sort, s *Styles) *SortMenu {
	return &SortMenu{
		sort:   current,
		styles: orDefault(s),
	}
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if k := key.String(); k == "esc" || k == "q" {
		return m, closeCmd
	}
	for _, opt := range sortOptions {
		if opt.Key == key.String() {
			m.sort.Toggle(opt.Field)
			return m, selection(SortKey, m.sort)
		}
	}
	return m, nil
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	for _, opt := range sortOptions {
		active := m.sort.Field == opt.Field

		keyStyle, labelStyle := m.styles.MenuItem, m.styles.MenuItem
		if active {
			keyStyle, labelStyle = m.styles.MenuKey, m.styles.MenuItemActive
		}
		b.WriteString(keyStyle.Render("[" + opt.Key + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(string(opt.Field)))
		b.WriteString(" ")
		b.WriteString(m.styles.MenuItemDisabled.Render("(" + opt.Description + ")"))
		if active {
			b.WriteString(" ")
			b.WriteString(m.styles.MenuItemActive.Render("● " + m.sort.Arrow()))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("Press same key to toggle direction • Esc to close"))
	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 56, len(sortOptions) + 5
}
