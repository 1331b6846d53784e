// Package toast renders the notification queue as a stack of toasts
// anchored to one side of the screen.
package toast

import (
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/notify"
	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// maxWidth caps the toast width on wide terminals
const maxWidth = 40

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles   *styles.Styles
	position types.ToastPosition
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles, position types.ToastPosition) *ToastRenderer {
	return &ToastRenderer{
		styles:   styles,
		position: position,
	}
}

// Position returns the anchor the renderer aligns to
func (r *ToastRenderer) Position() types.ToastPosition {
	return r.position
}

// Render renders toasts, given newest first as notify.Queue.Visible returns
// them, into a block the full width of the screen. The newest toast sits
// nearest the anchored edge. Returns empty string if no toasts to display.
func (r *ToastRenderer) Render(toasts []notify.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	toastWidth := width / 3
	if toastWidth > maxWidth {
		toastWidth = maxWidth
	}
	if toastWidth < 10 {
		toastWidth = min(width, 10)
	}

	ordered := toasts
	if r.position.IsBottom() {
		ordered = slices.Clone(toasts)
		slices.Reverse(ordered)
	}

	rendered := make([]string, 0, len(ordered))
	for _, t := range ordered {
		rendered = append(rendered, r.renderOne(t, toastWidth))
	}

	// Stack toasts vertically, aligned to the anchor
	align := r.align()
	stack := lipgloss.JoinVertical(align, rendered...)
	return lipgloss.PlaceHorizontal(width, align, stack)
}

func (r *ToastRenderer) renderOne(t notify.Toast, width int) string {
	text := t.Type.Icon() + " " + t.Message
	if t.Dismissible && !t.Exiting {
		text += "  ×"
	}
	style := r.styles.Toast(t.Type, t.Exiting)
	return style.Width(width).Render(text)
}

func (r *ToastRenderer) align() lipgloss.Position {
	switch r.position {
	case types.ToastTopLeft, types.ToastBottomLeft:
		return lipgloss.Left
	case types.ToastTopCenter, types.ToastBottomCenter:
		return lipgloss.Center
	default:
		return lipgloss.Right
	}
}
