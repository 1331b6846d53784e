package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/statusbar"
)

// chromeHeight is the nav header plus the status bar
const chromeHeight = 2

// View renders the current state as a string
func (m Model) View() string {
	if !m.ready {
		return m.splash.View()
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	docked := m.overlays.Docked()
	bodyHeight := m.bodyHeight()

	body, isModal := m.overlays.Modal(m.styles, m.width, bodyHeight)
	if !isModal {
		body = m.renderBody(bodyHeight)
	}
	body = fitLines(body, m.width, bodyHeight)
	body = m.compositeToasts(body)

	parts := []string{m.renderNav(), body}
	if docked != "" {
		parts = append(parts, docked)
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// bodyHeight is the space left for the current screen
func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if docked := m.overlays.Docked(); docked != "" {
		h -= lipgloss.Height(docked)
	}
	return max(1, h)
}

// resize passes the body size to the screens that keep their own viewport
func (m *Model) resize() {
	h := max(1, m.height-chromeHeight)
	m.story.SetSize(m.width, h)
	m.logView.SetSize(m.width, h)
}

func (m Model) renderBody(height int) string {
	now := m.now()
	filtered := m.query.IsActive()

	switch m.route.Kind {
	case types.RouteStories:
		return m.stories.Render(m.width, height, now, filtered)
	case types.RouteCharacters:
		return m.characters.Render(m.width, height, now, filtered || m.charFilter != domain.FilterAll)
	case types.RouteScenarios:
		return m.scenarios.Render(m.width, height, now, filtered)
	case types.RouteStory:
		return m.story.View()
	case types.RouteSettings:
		return m.settingsUI.Render(m.width, height, now)
	case types.RouteLogs:
		return m.logView.View()
	}
	return ""
}

// renderNav draws the app name and one tab per navigable screen. A
// collapsed sidebar shows icons only.
func (m Model) renderNav() string {
	active := m.route
	if active.Kind == types.RouteStory {
		active = types.DefaultRoute()
	}

	tabs := []string{m.styles.Header.Render("🔥 Hearth")}
	for _, r := range types.NavRoutes {
		label := r.Icon() + " " + r.Label()
		if m.prefs.UI.SidebarCollapsed {
			label = r.Icon()
		}
		style := m.styles.NavTab
		if r == active {
			style = m.styles.NavTabActive
		}
		tabs = append(tabs, style.Render(label))
	}
	if m.route.Kind == types.RouteStory {
		tabs = append(tabs, m.styles.Subtle.Render(" › "+m.story.Story().Title))
	}

	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width, "…")
}

func (m Model) renderStatusBar() string {
	sb := statusbar.New(m.route, m.width, m.styles)
	switch {
	case !m.overlays.IsEmpty():
		sb = sb.WithHints("esc: close")
	case m.prefs.UI.CompactMode:
		sb = sb.WithHints("")
	case m.route.Kind == types.RouteStory && m.story.Composing():
		sb = sb.WithHints("enter: send  esc: stop writing")
	}
	return sb.WithInfo(m.statusInfo()).Render()
}

// statusInfo is the right-hand side of the status bar
func (m Model) statusInfo() string {
	switch m.route.Kind {
	case types.RouteStories, types.RouteScenarios:
		return fmt.Sprintf("%s · %s", plural(m.resultCount(), "result"), m.query.Summary())
	case types.RouteCharacters:
		info := fmt.Sprintf("%s · %s", plural(m.resultCount(), "result"), m.query.Summary())
		if m.charFilter != domain.FilterAll {
			info = m.charFilter.String() + " · " + info
		}
		return info
	case types.RouteStory:
		if m.sending && m.prefs.UI.TypingIndicators {
			return "Narrator is writing…"
		}
		return m.prefs.ActiveBackendName()
	case types.RouteSettings:
		return "Backend: " + m.prefs.ActiveBackendName()
	case types.RouteLogs:
		return m.logView.Status()
	}
	return ""
}

// compositeToasts draws the visible toasts over the body, anchored to the
// top or bottom edge. Body cells outside a toast stay visible.
func (m Model) compositeToasts(body string) string {
	block := m.toaster.Render(m.queue.Visible(m.cfg.UI.MaxToasts), m.width)
	if block == "" {
		return body
	}

	bodyLines := strings.Split(body, "\n")
	toastLines := strings.Split(block, "\n")
	if len(toastLines) > len(bodyLines) {
		toastLines = toastLines[:len(bodyLines)]
	}

	offset := 0
	if m.toaster.Position().IsBottom() {
		offset = len(bodyLines) - len(toastLines)
	}
	for i, line := range toastLines {
		bodyLines[offset+i] = overlayLine(bodyLines[offset+i], line)
	}
	return strings.Join(bodyLines, "\n")
}

// overlayLine replaces the cells of base covered by the non-blank part of
// top. top is a full-width line padded with spaces on either side.
func overlayLine(base, top string) string {
	plain := ansi.Strip(top)
	trimmed := strings.TrimLeft(plain, " ")
	lead := ansi.StringWidth(plain) - ansi.StringWidth(trimmed)
	width := ansi.StringWidth(strings.TrimRight(trimmed, " "))
	if width == 0 {
		return base
	}

	content := ansi.Truncate(ansi.TruncateLeft(top, lead, ""), width, "")
	left := ansi.Truncate(base, lead, "")
	if w := ansi.StringWidth(left); w < lead {
		left += strings.Repeat(" ", lead-w)
	}
	right := ansi.TruncateLeft(base, lead+width, "")
	return left + content + right
}

// fitLines clips or pads s to exactly height lines no wider than width
func fitLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		w := ansi.StringWidth(l)
		switch {
		case w > width:
			lines[i] = ansi.Truncate(l, width, "")
		case w < width:
			lines[i] = l + strings.Repeat(" ", width-w)
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
