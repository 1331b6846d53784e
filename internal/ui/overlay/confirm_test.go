package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func answerOf(t *testing.T, cmd tea.Cmd) ConfirmResult {
	t.Helper()
	require.NotNil(t, cmd)
	sel, ok := cmd().(SelectionMsg)
	require.True(t, ok)
	assert.Equal(t, ConfirmKey, sel.Key)
	res, ok := sel.Value.(ConfirmResult)
	require.True(t, ok)
	return res
}

func TestConfirmDialog_TitleAndSize(t *testing.T) {
	dialog := NewConfirmDialog("Delete story", "Delete \"Tavern Tales\"?\nThis cannot be undone.", "delete-story", nil)

	assert.Equal(t, "Delete story", dialog.Title())
	w, h := dialog.Size()
	assert.Equal(t, 56, w)
	assert.Equal(t, 7, h)
}

func TestConfirmDialog_Keys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y confirms", []tea.KeyMsg{runes("y")}, true},
		{"Y confirms", []tea.KeyMsg{runes("Y")}, true},
		{"n cancels", []tea.KeyMsg{runes("n")}, false},
		{"esc cancels", []tea.KeyMsg{{Type: tea.KeyEsc}}, false},
		{"enter defaults to no", []tea.KeyMsg{{Type: tea.KeyEnter}}, false},
		{"left then enter", []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyEnter}}, true},
		{"tab twice then enter", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyTab}, {Type: tea.KeyEnter}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := NewConfirmDialog("Clear logs", "Remove every log entry?", "clear-logs", New())

			var cmd tea.Cmd
			for _, k := range tt.keys {
				_, cmd = dialog.Update(k)
			}

			res := answerOf(t, cmd)
			assert.Equal(t, "clear-logs", res.Action)
			assert.Equal(t, tt.want, res.Confirmed)
		})
	}
}

func TestConfirmDialog_IgnoresOtherMessages(t *testing.T) {
	dialog := NewConfirmDialog("t", "m", "a", nil)
	_, cmd := dialog.Update(tea.WindowSizeMsg{Width: 10})
	assert.Nil(t, cmd)
	_, cmd = dialog.Update(runes("x"))
	assert.Nil(t, cmd)
}

func TestConfirmDialog_View(t *testing.T) {
	dialog := NewConfirmDialog("t", "Remove backend \"home\"?", "a", nil)
	view := dialog.View()
	assert.Contains(t, view, "Remove backend \"home\"?")
	assert.Contains(t, view, "[Y] Yes")
	assert.Contains(t, view, "[N] No")
}
