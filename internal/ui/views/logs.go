package views

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/logging"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

const logsChromeHeight = 3

// logLevels are the toggleable levels, bound to keys 1-4
var logLevels = [...]slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

// LogSource is the paged log store the viewer reads from
type LogSource interface {
	Len() int
	PageSize() int
	Paginated(offset, limit int) []logging.Entry
}

// LogsView is the in-app log viewer. Entries are loaded a page at a time,
// newest first, and filtered by level and text.
type LogsView struct {
	source   LogSource
	loaded   []logging.Entry
	limit    int
	hidden   [len(logLevels)]bool
	filter   textinput.Model
	viewport viewport.Model
	styles   *styles.Styles
	width    int
}

// NewLogsView creates a viewer over source showing the first page
func NewLogsView(source LogSource, s *styles.Styles) *LogsView {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter messages"
	ti.CharLimit = 120

	v := &LogsView{
		source:   source,
		limit:    source.PageSize(),
		filter:   ti,
		viewport: viewport.New(0, 0),
		styles:   s,
	}
	v.Reload()
	return v
}

// SetStyles swaps the styles after a theme change
func (v *LogsView) SetStyles(s *styles.Styles) {
	v.styles = s
	v.refresh()
}

// SetCursorMode sets the filter cursor mode
func (v *LogsView) SetCursorMode(mode cursor.Mode) {
	v.filter.Cursor.SetMode(mode)
}

// SetSize resizes the viewer
func (v *LogsView) SetSize(width, height int) {
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = max(1, height-logsChromeHeight)
	v.filter.Width = max(10, width-4)
	v.refresh()
}

// Reload re-reads the loaded window from the source
func (v *LogsView) Reload() {
	v.loaded = v.source.Paginated(0, v.limit)
	v.refresh()
}

// LoadMore extends the loaded window by one page. It reports false when
// everything is already loaded.
func (v *LogsView) LoadMore() bool {
	if len(v.loaded) >= v.source.Len() {
		return false
	}
	v.limit += v.source.PageSize()
	v.Reload()
	return true
}

// ResetWindow shrinks the loaded window back to the first page
func (v *LogsView) ResetWindow() {
	v.limit = v.source.PageSize()
	v.Reload()
}

// ToggleLevel shows or hides the i-th level (0 = debug ... 3 = error)
func (v *LogsView) ToggleLevel(i int) {
	if i < 0 || i >= len(logLevels) {
		return
	}
	v.hidden[i] = !v.hidden[i]
	v.refresh()
}

// LevelShown reports whether entries at level are listed
func (v *LogsView) LevelShown(level slog.Level) bool {
	return !v.hidden[levelIndex(level)]
}

// Filtering reports whether keys go to the text filter
func (v *LogsView) Filtering() bool {
	return v.filter.Focused()
}

// Filtered returns the loaded entries that pass the level and text filters
func (v *LogsView) Filtered() []logging.Entry {
	text := strings.ToLower(strings.TrimSpace(v.filter.Value()))
	var out []logging.Entry
	for _, e := range v.loaded {
		if v.hidden[levelIndex(e.Level)] {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Message), text) &&
			!strings.Contains(strings.ToLower(e.Attrs), text) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Status summarises what is on screen
func (v *LogsView) Status() string {
	shown := 0
	for _, h := range v.hidden {
		if !h {
			shown++
		}
	}
	return fmt.Sprintf("Showing %d of %d loaded (%d total) • %d/%d levels",
		len(v.Filtered()), len(v.loaded), v.source.Len(), shown, len(logLevels))
}

// Update handles viewer keys. The app owns export and clear.
func (v *LogsView) Update(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)

	if v.Filtering() {
		if isKey {
			switch key.String() {
			case "esc":
				v.filter.Blur()
				v.filter.Reset()
				v.refresh()
				return nil
			case "enter":
				v.filter.Blur()
				return nil
			}
		}
		var cmd tea.Cmd
		v.filter, cmd = v.filter.Update(msg)
		v.refresh()
		return cmd
	}

	if isKey {
		switch s := key.String(); s {
		case "/":
			return v.filter.Focus()
		case "1", "2", "3", "4":
			v.ToggleLevel(int(s[0] - '1'))
			return nil
		case "n":
			v.LoadMore()
			return nil
		case "p":
			v.ResetWindow()
			return nil
		case "r":
			v.Reload()
			return nil
		case "g", "home":
			v.viewport.GotoTop()
			return nil
		case "G", "end":
			v.viewport.GotoBottom()
			return nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// View renders the status line, filter and entries
func (v *LogsView) View() string {
	var b strings.Builder
	b.WriteString(v.renderLevels())
	b.WriteString("  ")
	b.WriteString(v.styles.Subtle.Render(v.Status()))
	b.WriteString("\n")
	if v.Filtering() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
	} else {
		b.WriteString(v.styles.Subtle.Render("/ filter  1-4 levels  n load more  p first page"))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Subtle.Render(strings.Repeat("─", max(0, v.width))))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	return b.String()
}

func (v *LogsView) renderLevels() string {
	parts := make([]string, len(logLevels))
	for i, l := range logLevels {
		label := fmt.Sprintf("%d:%s", i+1, l)
		if v.hidden[i] {
			parts[i] = v.styles.Subtle.Strikethrough(true).Render(label)
		} else {
			parts[i] = v.levelStyle(l).Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func (v *LogsView) refresh() {
	if v.width <= 0 {
		return
	}
	entries := v.Filtered()
	if len(entries) == 0 {
		msg := "No log entries"
		if len(v.loaded) > 0 {
			msg = "No entries match the current filters"
		}
		v.viewport.SetContent(lipgloss.Place(v.width, v.viewport.Height, lipgloss.Center, lipgloss.Center,
			v.styles.Subtle.Render(msg)))
		return
	}

	lines := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		lines = append(lines, v.renderEntry(e))
	}
	if len(v.loaded) < v.source.Len() {
		lines = append(lines, v.styles.Subtle.Render(
			fmt.Sprintf("── %d older entries, press n to load more ──", v.source.Len()-len(v.loaded))))
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

func (v *LogsView) renderEntry(e logging.Entry) string {
	line := v.styles.Timestamp.Render(e.Time.Format("15:04:05")) + " " +
		v.levelStyle(e.Level).Width(6).Render(e.Level.String()) +
		e.Message
	if e.Attrs != "" {
		line += " " + v.styles.Subtle.Render(e.Attrs)
	}
	return truncate(line, v.width)
}

func (v *LogsView) levelStyle(l slog.Level) lipgloss.Style {
	switch levelIndex(l) {
	case 0:
		return v.styles.LogDebug
	case 1:
		return v.styles.LogInfo
	case 2:
		return v.styles.LogWarn
	default:
		return v.styles.LogError
	}
}

// levelIndex buckets any slog level onto the four toggles
func levelIndex(l slog.Level) int {
	switch {
	case l < slog.LevelInfo:
		return 0
	case l < slog.LevelWarn:
		return 1
	case l < slog.LevelError:
		return 2
	default:
		return 3
	}
}
