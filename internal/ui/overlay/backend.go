package overlay

import (
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/riordanpawley/hearth/internal/config"
)

// BackendSubmittedMsg carries a validated remote backend from the form
type BackendSubmittedMsg struct {
	Backend config.RemoteBackendConfig
}

const (
	backendFocusName = iota
	backendFocusURL
	backendFocusToken
	backendFocusSubmit
	backendFields
)

// BackendForm collects a remote backend's name, URL and optional token
type BackendForm struct {
	inputs [backendFocusSubmit]textinput.Model
	focus  int
	err    error
	styles *Styles
}

// NewBackendForm creates an empty remote backend form
func NewBackendForm(s *Styles) *BackendForm {
	name := textinput.New()
	name.Placeholder = "Home server"
	name.CharLimit = 60
	name.Width = 40
	name.Focus()

	addr := textinput.New()
	addr.Placeholder = "https://hearth.example.com"
	addr.CharLimit = 200
	addr.Width = 40

	token := textinput.New()
	token.Placeholder = "optional"
	token.EchoMode = textinput.EchoPassword
	token.CharLimit = 200
	token.Width = 40

	return &BackendForm{
		inputs: [backendFocusSubmit]textinput.Model{name, addr, token},
		styles: orDefault(s),
	}
}

// Init initializes the overlay
func (f *BackendForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *BackendForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, closeCmd
		case "ctrl+s":
			return f, f.submit()
		case "tab", "down":
			return f, f.setFocus((f.focus + 1) % backendFields)
		case "shift+tab", "up":
			return f, f.setFocus((f.focus - 1 + backendFields) % backendFields)
		case "enter":
			if f.focus == backendFocusSubmit {
				return f, f.submit()
			}
			return f, f.setFocus(f.focus + 1)
		}
	}

	if f.focus == backendFocusSubmit {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *BackendForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Backend validates the form and returns the backend it describes
func (f *BackendForm) Backend() (config.RemoteBackendConfig, error) {
	name := strings.TrimSpace(f.inputs[backendFocusName].Value())
	if name == "" {
		return config.RemoteBackendConfig{}, errors.New("name is required")
	}

	raw := strings.TrimSpace(f.inputs[backendFocusURL].Value())
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return config.RemoteBackendConfig{}, errors.New("URL must look like https://host[:port]")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return config.RemoteBackendConfig{}, errors.New("URL scheme must be http, https, ws or wss")
	}

	return config.RemoteBackendConfig{
		ID:        uuid.NewString(),
		Name:      name,
		URL:       strings.TrimSuffix(u.String(), "/"),
		AuthToken: strings.TrimSpace(f.inputs[backendFocusToken].Value()),
	}, nil
}

func (f *BackendForm) submit() tea.Cmd {
	b, err := f.Backend()
	f.err = err
	if err != nil {
		return nil
	}
	return tea.Batch(
		func() tea.Msg { return BackendSubmittedMsg{Backend: b} },
		closeCmd,
	)
}

// View renders the form
func (f *BackendForm) View() string {
	var b strings.Builder

	labels := [backendFocusSubmit]string{"Name:", "URL:", "Auth token:"}
	for i, label := range labels {
		style := f.styles.MenuItem
		if f.focus == i {
			style = f.styles.MenuItemActive
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	if f.err != nil {
		b.WriteString(f.styles.Error.Render("✗ " + f.err.Error()))
		b.WriteString("\n")
	}

	submitStyle := f.styles.MenuItem
	if f.focus == backendFocusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	b.WriteString(submitStyle.Render("[ Save Backend ]"))
	b.WriteString("\n")

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " " + f.styles.Footer.Render("Switch fields"),
		f.styles.MenuKey.Render("Ctrl+S") + " " + f.styles.Footer.Render("Save"),
		f.styles.MenuKey.Render("Esc") + " " + f.styles.Footer.Render("Cancel"),
	}
	b.WriteString(f.styles.Footer.Render(strings.Join(hints, " • ")))
	return b.String()
}

// Title returns the overlay title
func (f *BackendForm) Title() string {
	return "Add Remote Backend"
}

// Size returns the overlay dimensions
func (f *BackendForm) Size() (width, height int) {
	return 56, 14
}
