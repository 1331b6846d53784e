package overlay

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/hearth/internal/config"
)

// SettingType represents the type of a setting
type SettingType int

const (
	// SettingToggle is a boolean on/off setting (Space/Enter to toggle)
	SettingToggle SettingType = iota
	// SettingChoice is a multiple-choice setting (Left/Right to cycle)
	SettingChoice
	// SettingAction is an action that triggers something (Enter to activate)
	SettingAction
	// SettingSeparator is a visual separator (not selectable)
	SettingSeparator
)

// Selection keys the settings overlay answers with
const (
	SettingsErrorKey = "settings-error"
	AddBackendKey    = "add-backend"
	EditorClosedKey  = "editor-closed"
	EditorErrorKey   = "editor-error"
)

// SettingsChangedMsg is sent after a setting was saved
type SettingsChangedMsg struct {
	Key string
}

// SettingItem represents a single setting in the settings menu
type SettingItem struct {
	Key      string
	Label    string
	Type     SettingType
	Value    any
	Choices  []string
	OnChange func(any) error
	OnAction func() tea.Cmd
}

// SettingsOverlay is a settings menu overlay
type SettingsOverlay struct {
	items  []SettingItem
	cursor int
	styles *Styles
}

// NewSettingsOverlay creates a new settings overlay with the given items
func NewSettingsOverlay(items []SettingItem, s *Styles) *SettingsOverlay {
	menu := &SettingsOverlay{
		items:  items,
		styles: orDefault(s),
	}
	menu.moveCursorToNextSelectable()
	return menu
}

// SettingsEditor is the part of config.SettingsManager the overlay edits
type SettingsEditor interface {
	Get() config.AppSettings
	Path() string
	SetTheme(config.Theme) error
	SetUIPreferences(config.UIPreferences) error
	SetChatPreferences(config.ChatPreferences) error
}

// NewAppSettingsOverlay builds the settings menu over mgr. Every change is
// saved immediately.
func NewAppSettingsOverlay(mgr SettingsEditor, s *Styles) *SettingsOverlay {
	current := mgr.Get()

	themes := make([]string, len(config.Themes))
	for i, t := range config.Themes {
		themes[i] = string(t)
	}

	items := []SettingItem{
		{
			Key:     "theme",
			Label:   "Theme",
			Type:    SettingChoice,
			Value:   string(current.Theme),
			Choices: themes,
			OnChange: func(v any) error {
				return mgr.SetTheme(config.Theme(v.(string)))
			},
		},
		{Label: "── Interface ──", Type: SettingSeparator},
		uiToggle(mgr, "timestamps", "Message timestamps", current.UI.MessageTimestamps,
			func(p *config.UIPreferences) *bool { return &p.MessageTimestamps }),
		uiToggle(mgr, "typing", "Typing indicators", current.UI.TypingIndicators,
			func(p *config.UIPreferences) *bool { return &p.TypingIndicators }),
		uiToggle(mgr, "compact", "Compact mode", current.UI.CompactMode,
			func(p *config.UIPreferences) *bool { return &p.CompactMode }),
		uiToggle(mgr, "sidebar", "Collapse sidebar", current.UI.SidebarCollapsed,
			func(p *config.UIPreferences) *bool { return &p.SidebarCollapsed }),
		{Label: "── Chat ──", Type: SettingSeparator},
		chatToggle(mgr, "autoscroll", "Auto-scroll", current.Chat.AutoScroll,
			func(p *config.ChatPreferences) *bool { return &p.AutoScroll }),
		chatToggle(mgr, "sound", "Sound notifications", current.Chat.SoundNotifications,
			func(p *config.ChatPreferences) *bool { return &p.SoundNotifications }),
		chatToggle(mgr, "grouping", "Group messages", current.Chat.MessageGrouping,
			func(p *config.ChatPreferences) *bool { return &p.MessageGrouping }),
		chatToggle(mgr, "wordcount", "Show word count", current.Chat.ShowWordCount,
			func(p *config.ChatPreferences) *bool { return &p.ShowWordCount }),
		{Label: "───────────────────", Type: SettingSeparator},
		{
			Key:      "backend",
			Label:    "Add remote backend",
			Type:     SettingAction,
			OnAction: func() tea.Cmd { return selection(AddBackendKey, nil) },
		},
		{
			Key:      "editor",
			Label:    "Open settings.toml in $EDITOR",
			Type:     SettingAction,
			OnAction: func() tea.Cmd { return openInEditor(mgr.Path()) },
		},
	}

	return NewSettingsOverlay(items, s)
}

func uiToggle(mgr SettingsEditor, key, label string, on bool, field func(*config.UIPreferences) *bool) SettingItem {
	return SettingItem{
		Key: key, Label: label, Type: SettingToggle, Value: on,
		OnChange: func(v any) error {
			prefs := mgr.Get().UI
			*field(&prefs) = v.(bool)
			return mgr.SetUIPreferences(prefs)
		},
	}
}

func chatToggle(mgr SettingsEditor, key, label string, on bool, field func(*config.ChatPreferences) *bool) SettingItem {
	return SettingItem{
		Key: key, Label: label, Type: SettingToggle, Value: on,
		OnChange: func(v any) error {
			prefs := mgr.Get().Chat
			*field(&prefs) = v.(bool)
			return mgr.SetChatPreferences(prefs)
		},
	}
}

// Init initializes the overlay
func (m *SettingsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SettingsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q":
		return m, closeCmd
	case "j", "down":
		m.moveCursorDown()
	case "k", "up":
		m.moveCursorUp()
	case "h", "left":
		return m, m.cycleChoice(-1)
	case "l", "right":
		return m, m.cycleChoice(1)
	case " ", "enter":
		return m, m.activateCurrent()
	}
	return m, nil
}

// View renders the settings menu
func (m *SettingsOverlay) View() string {
	var b strings.Builder

	for i, item := range m.items {
		if item.Type == SettingSeparator {
			b.WriteString(m.styles.Separator.Render(item.Label))
			b.WriteString("\n")
			continue
		}

		style, keyStyle := m.styles.MenuItem, m.styles.MenuKey
		if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		var line string
		switch item.Type {
		case SettingToggle:
			valueStr := "off"
			if v, ok := item.Value.(bool); ok && v {
				valueStr = "on"
			}
			line = fmt.Sprintf("%s %s [%s]", keyStyle.Render("["+item.Key+"]"), style.Render(item.Label), style.Render(valueStr))
		case SettingChoice:
			valueStr, _ := item.Value.(string)
			line = fmt.Sprintf("%s %s <%s>", keyStyle.Render("["+item.Key+"]"), style.Render(item.Label), style.Render(valueStr))
		case SettingAction:
			line = fmt.Sprintf("%s %s", keyStyle.Render("["+item.Key+"]"), style.Render(item.Label))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: navigate • h/l: change • space/enter: toggle • esc: close"))
	return b.String()
}

// Title returns the overlay title
func (m *SettingsOverlay) Title() string {
	return "Settings"
}

// Size returns the overlay dimensions
func (m *SettingsOverlay) Size() (width, height int) {
	return 64, len(m.items) + 5
}

func (m *SettingsOverlay) moveCursorDown() {
	for i := 1; i <= len(m.items); i++ {
		next := (m.cursor + i) % len(m.items)
		if m.items[next].Type != SettingSeparator {
			m.cursor = next
			return
		}
	}
}

func (m *SettingsOverlay) moveCursorUp() {
	for i := 1; i <= len(m.items); i++ {
		prev := (m.cursor - i + len(m.items)) % len(m.items)
		if m.items[prev].Type != SettingSeparator {
			m.cursor = prev
			return
		}
	}
}

func (m *SettingsOverlay) moveCursorToNextSelectable() {
	for i, item := range m.items {
		if item.Type != SettingSeparator {
			m.cursor = i
			return
		}
	}
}

func (m *SettingsOverlay) current() *SettingItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

// activateCurrent toggles a toggle, advances a choice, or runs an action
func (m *SettingsOverlay) activateCurrent() tea.Cmd {
	item := m.current()
	if item == nil {
		return nil
	}

	switch item.Type {
	case SettingToggle:
		v, ok := item.Value.(bool)
		if !ok {
			return nil
		}
		return m.set(item, !v)
	case SettingChoice:
		return m.cycleChoice(1)
	case SettingAction:
		if item.OnAction != nil {
			return item.OnAction()
		}
	}
	return nil
}

// cycleChoice moves a choice setting by delta, wrapping around
func (m *SettingsOverlay) cycleChoice(delta int) tea.Cmd {
	item := m.current()
	if item == nil || item.Type != SettingChoice || len(item.Choices) == 0 {
		return nil
	}

	idx := 0
	if v, ok := item.Value.(string); ok {
		for i, choice := range item.Choices {
			if choice == v {
				idx = i
				break
			}
		}
	}
	n := len(item.Choices)
	return m.set(item, item.Choices[((idx+delta)%n+n)%n])
}

// set saves value through OnChange and keeps the old value on failure
func (m *SettingsOverlay) set(item *SettingItem, value any) tea.Cmd {
	if item.OnChange != nil {
		if err := item.OnChange(value); err != nil {
			return selection(SettingsErrorKey, fmt.Errorf("%s: %w", item.Label, err))
		}
	}
	item.Value = value
	key := item.Key
	return func() tea.Msg { return SettingsChangedMsg{Key: key} }
}

// editorCommand picks $VISUAL, then $EDITOR, then vi
func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	return "vi"
}

// openInEditor suspends the program while the user edits path
func openInEditor(path string) tea.Cmd {
	fields := strings.Fields(editorCommand())
	c := exec.Command(fields[0], append(fields[1:], path)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return SelectionMsg{Key: EditorErrorKey, Value: fmt.Errorf("failed to open editor: %w", err)}
		}
		return SelectionMsg{Key: EditorClosedKey}
	})
}
