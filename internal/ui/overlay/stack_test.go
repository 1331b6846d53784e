package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// mockOverlay is a simple overlay implementation for testing
type mockOverlay struct {
	title  string
	width  int
	height int
	value  string
}

func (m mockOverlay) Init() tea.Cmd {
	return nil
}

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, selection("test", m.value)
		case "esc":
			return m, closeCmd
		case "u":
			m.value = strings.ToUpper(m.value)
		}
	}
	return m, nil
}

func (m mockOverlay) View() string {
	return "body:" + m.value
}

func (m mockOverlay) Title() string {
	return m.title
}

func (m mockOverlay) Size() (width, height int) {
	return m.width, m.height
}

func TestStack_PushPopCurrent(t *testing.T) {
	stack := NewStack()
	assert.True(t, stack.IsEmpty())
	assert.Nil(t, stack.Current())
	assert.Nil(t, stack.Pop())

	assert.Nil(t, stack.Push(mockOverlay{title: "Overlay 1", width: 40, height: 10}))
	stack.Push(mockOverlay{title: "Overlay 2", width: 50, height: 15})
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "Overlay 2", stack.Current().Title())

	popped := stack.Pop()
	require.NotNil(t, popped)
	assert.Equal(t, "Overlay 2", popped.Title())
	assert.Equal(t, "Overlay 1", stack.Current().Title())

	stack.Clear()
	assert.True(t, stack.IsEmpty())
}

func TestStack_UpdateReplacesTop(t *testing.T) {
	stack := NewStack()
	assert.Nil(t, stack.Update(tea.KeyMsg{Type: tea.KeyEnter}), "empty stack ignores messages")

	stack.Push(mockOverlay{title: "Test", width: 40, height: 10, value: "story"})
	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	assert.Nil(t, cmd)
	assert.Equal(t, "body:STORY", stack.Current().View(), "value receivers must be written back")

	cmd = stack.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	sel, ok := cmd().(SelectionMsg)
	require.True(t, ok)
	assert.Equal(t, "test", sel.Key)
	assert.Equal(t, "STORY", sel.Value)
}

func TestStack_UpdateWithCloseMsg(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "Overlay 1", width: 40, height: 10})
	stack.Push(mockOverlay{title: "Overlay 2", width: 50, height: 15})

	assert.Nil(t, stack.Update(CloseOverlayMsg{}))
	assert.Equal(t, "Overlay 1", stack.Current().Title())

	stack.Update(CloseOverlayMsg{})
	assert.True(t, stack.IsEmpty())
}

func TestStack_ModalAndDocked(t *testing.T) {
	st := styles.New()
	stack := NewStack()

	_, ok := stack.Modal(st, 80, 24)
	assert.False(t, ok)
	assert.Empty(t, stack.Docked())

	stack.Push(mockOverlay{title: "Confirm", width: 30, height: 4, value: "x"})
	modal, ok := stack.Modal(st, 80, 24)
	require.True(t, ok)
	assert.Contains(t, modal, "Confirm")
	assert.Contains(t, modal, "body:x")
	assert.Len(t, strings.Split(modal, "\n"), 24)
	assert.Empty(t, stack.Docked())

	stack.Push(mockOverlay{value: "bar"})
	_, ok = stack.Modal(st, 80, 24)
	assert.False(t, ok, "docked overlays are not modals")
	assert.Equal(t, "body:bar", stack.Docked())
}
