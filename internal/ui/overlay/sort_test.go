package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/domain"
)

func sortResult(t *testing.T, cmd tea.Cmd) domain.Sort {
	t.Helper()
	require.NotNil(t, cmd)
	sel, ok := cmd().(SelectionMsg)
	require.True(t, ok)
	assert.Equal(t, SortKey, sel.Key)
	s, ok := sel.Value.(domain.Sort)
	require.True(t, ok)
	return s
}

func TestSortMenu_Keys(t *testing.T) {
	tests := []struct {
		key  string
		want domain.Sort
	}{
		{"r", domain.Sort{Field: domain.SortByRecent, Order: domain.SortAsc}},
		{"c", domain.Sort{Field: domain.SortByCreated, Order: domain.SortAsc}},
		{"a", domain.Sort{Field: domain.SortByName, Order: domain.SortAsc}},
		{"u", domain.Sort{Field: domain.SortByUsage, Order: domain.SortAsc}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			menu := NewSortMenu(domain.DefaultSort(), nil)
			_, cmd := menu.Update(runes(tt.key))
			assert.Equal(t, tt.want, sortResult(t, cmd))
		})
	}
}

func TestSortMenu_SameKeyFlipsDirection(t *testing.T) {
	menu := NewSortMenu(domain.Sort{Field: domain.SortByName, Order: domain.SortAsc}, nil)

	_, cmd := menu.Update(runes("a"))
	assert.Equal(t, domain.SortDesc, sortResult(t, cmd).Order)
}

func TestSortMenu_LeavesCallerSortUntouched(t *testing.T) {
	current := domain.DefaultSort()
	menu := NewSortMenu(current, nil)
	menu.Update(runes("a"))
	assert.Equal(t, domain.DefaultSort(), current)
}

func TestSortMenu_Close(t *testing.T) {
	menu := NewSortMenu(domain.DefaultSort(), nil)

	_, cmd := menu.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseOverlayMsg{}, cmd())

	_, cmd = menu.Update(runes("z"))
	assert.Nil(t, cmd)
}

func TestSortMenu_View(t *testing.T) {
	view := NewSortMenu(domain.DefaultSort(), New()).View()
	for _, want := range []string{"[r]", "Recent", "Created", "A-Z", "Usage", "● ↓"} {
		assert.Contains(t, view, want)
	}
	assert.Equal(t, "Sort", NewSortMenu(domain.DefaultSort(), nil).Title())
}
