// Package splash renders the loading screen shown while the app boots.
package splash

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/loading"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

const logo = `╻ ╻┏━╸┏━┓┏━┓╺┳╸╻ ╻
┣━┫┣╸ ┣━┫┣┳┛ ┃ ┣━┫
╹ ╹┗━╸╹ ╹╹┗╸ ╹ ╹ ╹`

// barWidth is the progress bar width on wide terminals
const barWidth = 40

// Model is the loading screen. It mirrors sequencer state pushed to it
// through loading.StateMsg.
type Model struct {
	state    loading.State
	progress progress.Model
	spinner  spinner.Model
	styles   *styles.Styles
	version  string
	width    int
	height   int
}

// New creates the loading screen
func New(s *styles.Styles, initial loading.State, version string) Model {
	p := progress.New(
		progress.WithGradient(string(s.Palette.Peach), string(s.Palette.Yellow)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Palette.Peach)

	return Model{
		state:    initial,
		progress: p,
		spinner:  sp,
		styles:   s,
		version:  version,
	}
}

// Init starts the spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles sequencer snapshots, window sizes and spinner ticks
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loading.StateMsg:
		m.state = msg.State
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(barWidth, max(10, msg.Width-10))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// State returns the last snapshot received
func (m Model) State() loading.State {
	return m.state
}

// View renders the logo, progress bar, stage message and version footer
func (m Model) View() string {
	lines := []string{
		m.styles.Logo.Render(logo),
		"",
		m.progress.ViewAs(m.state.Stage.Progress()),
		"",
		m.spinner.View() + " " + m.styles.LoadingText.Render(m.state.Stage.Message()),
	}
	if m.state.Error != "" {
		lines = append(lines, "", m.styles.LoadingError.Render("⚠ "+m.state.Error))
	}
	if m.version != "" {
		lines = append(lines, "", m.styles.Subtle.Render("v"+strings.TrimPrefix(m.version, "v")))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
