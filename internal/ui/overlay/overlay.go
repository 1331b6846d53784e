// Package overlay provides the modal dialogs layered over Hearth's screens:
// confirmations, help, search, filter and sort menus, settings and the
// backend form.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// Overlay represents a modal overlay component.
// A zero width from Size means a full-width bar docked under the screen.
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when an overlay produces a result. Key names the
// choice and Value carries its payload.
type SelectionMsg struct {
	Key   string
	Value any
}

// IsDocked reports whether o renders as a full-width bar
func IsDocked(o Overlay) bool {
	w, _ := o.Size()
	return w == 0
}

// Frame renders a modal with its border and title
func Frame(o Overlay, s *styles.Styles) string {
	content := o.View()
	if title := o.Title(); title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, s.OverlayTitle.Render(title), content)
	}
	w, h := o.Size()
	return s.Overlay.Width(w).Height(h).Render(content)
}

// Center places a framed modal in the middle of a width x height area
func Center(frame string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, frame)
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}

func selection(key string, value any) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: value}
	}
}
