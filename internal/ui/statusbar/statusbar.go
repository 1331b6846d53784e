// Package statusbar renders the bottom line of the shell: the current
// screen, its key hints and a right-aligned info section.
package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	route  types.Route
	width  int
	hints  string
	info   string
	styles *styles.Styles
}

// New creates a StatusBar for route with the route's default hints
func New(route types.Route, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		route:  route,
		width:  width,
		hints:  GetHints(route),
		styles: styles,
	}
}

// WithHints replaces the hints, e.g. while an overlay has focus
func (sb StatusBar) WithHints(hints string) StatusBar {
	sb.hints = hints
	return sb
}

// WithInfo sets the right-aligned info text
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	badge := sb.styles.StatusMode.Render(" " + strings.ToUpper(sb.route.Label()) + " ")

	var info string
	if sb.info != "" {
		info = sb.styles.StatusInfo.Render(sb.info + " ")
	}

	inner := sb.width - sb.styles.StatusBar.GetHorizontalFrameSize()
	content := badge
	if sb.hints != "" {
		withHints := lipgloss.JoinHorizontal(lipgloss.Left,
			badge,
			sb.styles.StatusHint.Render(" │ "),
			sb.styles.StatusHint.Render(sb.hints),
		)
		// hints go first when space runs out
		if sb.width <= 0 || lipgloss.Width(withHints)+lipgloss.Width(info) <= inner {
			content = withHints
		}
	}

	if info != "" {
		gap := max(1, inner-lipgloss.Width(content)-lipgloss.Width(info))
		content = content + sb.styles.StatusHint.Render(strings.Repeat(" ", gap)) + info
	}

	return sb.styles.StatusBar.Width(sb.width).MaxWidth(sb.width).Render(content)
}
