package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/config"
	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// settingsFixedLines counts the rows above and below the backend list
const settingsFixedLines = 19

// BackendSelectedMsg asks the app to switch to a backend ("" = local)
type BackendSelectedMsg struct {
	ID string
}

// RemoveBackendMsg asks the app to confirm removing a remote backend
type RemoveBackendMsg struct {
	ID   string
	Name string
}

// SettingsView is a read-only summary of the user's settings with a
// selectable backend list. Preferences are edited in the settings overlay.
type SettingsView struct {
	settings config.AppSettings
	path     string
	cursor   Cursor
	styles   *styles.Styles
}

// NewSettingsView creates a settings view
func NewSettingsView(s *styles.Styles) *SettingsView {
	v := &SettingsView{styles: s, settings: config.DefaultSettings()}
	v.cursor.SetCount(1)
	return v
}

// SetStyles swaps the styles after a theme change
func (v *SettingsView) SetStyles(s *styles.Styles) {
	v.styles = s
}

// SetSettings shows a new settings snapshot loaded from path
func (v *SettingsView) SetSettings(s config.AppSettings, path string) {
	v.settings = s
	v.path = path
	v.cursor.SetCount(1 + len(s.RemoteBackends))
}

// Current returns the backend under the cursor; the local backend has an
// empty ID
func (v *SettingsView) Current() (id, name string) {
	i := v.cursor.Index()
	if i == 0 || i > len(v.settings.RemoteBackends) {
		return "", "Local"
	}
	b := v.settings.RemoteBackends[i-1]
	return b.ID, b.Name
}

// Cursor exposes the backend selection
func (v *SettingsView) Cursor() *Cursor {
	return &v.cursor
}

// Update handles backend list keys
func (v *SettingsView) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "j", "down":
		v.cursor.Move(1)
	case "k", "up":
		v.cursor.Move(-1)
	case "g", "home":
		v.cursor.Top()
	case "G", "end":
		v.cursor.Bottom()
	case "enter", " ":
		id, _ := v.Current()
		return func() tea.Msg { return BackendSelectedMsg{ID: id} }
	case "d", "delete":
		id, name := v.Current()
		if id == "" {
			return nil
		}
		return func() tea.Msg { return RemoveBackendMsg{ID: id, Name: name} }
	}
	return nil
}

// Render draws the settings page into a width x height area
func (v *SettingsView) Render(width, height int, now time.Time) string {
	v.cursor.SetVisible(height - settingsFixedLines)

	s := v.settings
	var b strings.Builder

	section := func(title string) {
		b.WriteString(v.styles.OverlayTitle.Render(title))
		b.WriteString("\n")
	}

	section("Appearance")
	b.WriteString(v.row("Theme", s.Theme.Label()))
	b.WriteString("\n\n")

	section("Interface")
	b.WriteString(v.toggle("Message timestamps", s.UI.MessageTimestamps))
	b.WriteString(v.toggle("Typing indicators", s.UI.TypingIndicators))
	b.WriteString(v.toggle("Compact mode", s.UI.CompactMode))
	b.WriteString(v.toggle("Collapse sidebar", s.UI.SidebarCollapsed))
	b.WriteString("\n")

	section("Chat")
	b.WriteString(v.toggle("Auto-scroll to new messages", s.Chat.AutoScroll))
	b.WriteString(v.toggle("Sound notifications", s.Chat.SoundNotifications))
	b.WriteString(v.toggle("Group consecutive messages", s.Chat.MessageGrouping))
	b.WriteString(v.toggle("Show word count", s.Chat.ShowWordCount))
	b.WriteString("\n")

	section("Backends")
	b.WriteString(v.renderBackends(width, now))
	b.WriteString("\n")

	footer := "e: edit preferences  a: add backend"
	if v.path != "" {
		footer = v.path + "  •  " + footer
	}
	b.WriteString(v.styles.Subtle.Render(truncate(footer, width)))

	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func (v *SettingsView) row(label, value string) string {
	return v.styles.Subtle.Width(30).Render("  "+label) + v.styles.Row.Render(value)
}

func (v *SettingsView) toggle(label string, on bool) string {
	mark := v.styles.Subtle.Render("✗")
	if on {
		mark = v.styles.LogInfo.Render("✓")
	}
	return "  " + mark + " " + v.styles.Row.Render(label) + "\n"
}

func (v *SettingsView) renderBackends(width int, now time.Time) string {
	s := v.settings
	start, end := v.cursor.Window()

	var lines []string
	for i := start; i < end; i++ {
		var id, name, detail string
		if i == 0 {
			name = "Local"
			detail = "no provider configured"
			if p, err := s.SelectedProvider(); err == nil {
				detail = fmt.Sprintf("%s · %s", p.Name, p.Config.Model)
			}
		} else {
			rb := s.RemoteBackends[i-1]
			id, name = rb.ID, rb.Name
			detail = rb.URL + " · " + lastConnected(rb.LastConnected, now)
		}

		active := i == v.cursor.Index()
		style := v.styles.Row
		marker := "  "
		if active {
			style = v.styles.RowActive
			marker = "▶ "
		}
		dot := "○"
		if id == s.SelectedBackend {
			dot = "●"
		}

		line := marker + dot + " " + style.Render(name) + "  " + v.styles.Subtle.Render(detail)
		lines = append(lines, truncate(line, width))
	}
	if end < v.cursor.count {
		lines = append(lines, v.styles.Subtle.Render(fmt.Sprintf("  ↓ %d more ↓", v.cursor.count-end)))
	}
	return strings.Join(lines, "\n") + "\n"
}

func lastConnected(t *time.Time, now time.Time) string {
	if t == nil {
		return "never connected"
	}
	return "connected " + strings.ToLower(domain.RelativeTime(*t, now))
}
