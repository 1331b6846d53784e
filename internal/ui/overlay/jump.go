package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// homeRow defines the home row keys for jump labels
var homeRow = []rune{'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';'}

var alphabet = []rune("abcdefghijklmnopqrstuvwxyz")

// GenerateLabels generates jump labels for count items. Up to ten items get
// single home row keys; larger lists get two-letter labels so no label is a
// prefix of another.
func GenerateLabels(count int) []string {
	if count <= 0 {
		return []string{}
	}

	labels := make([]string, 0, count)
	if count <= len(homeRow) {
		for _, r := range homeRow[:count] {
			labels = append(labels, string(r))
		}
		return labels
	}

	for _, first := range alphabet {
		for _, second := range alphabet {
			if len(labels) == count {
				return labels
			}
			labels = append(labels, string(first)+string(second))
		}
	}
	return labels
}

// JumpSelectedMsg is sent when a jump target is selected
type JumpSelectedMsg struct {
	Index int
}

// JumpMode is a docked bar that reads a label and jumps to its item.
// The screen draws the labels returned by Labels next to its items.
type JumpMode struct {
	labels []string
	index  map[string]int
	input  string
	styles *Styles
}

// NewJumpMode creates jump labels for count visible items
func NewJumpMode(count int, s *Styles) *JumpMode {
	labels := GenerateLabels(count)
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return &JumpMode{
		labels: labels,
		index:  index,
		styles: orDefault(s),
	}
}

// Labels returns the label of each item in order
func (j *JumpMode) Labels() []string {
	return j.labels
}

// Input returns the keys typed so far
func (j *JumpMode) Input() string {
	return j.input
}

// Init initializes the jump mode
func (j *JumpMode) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (j *JumpMode) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	switch key.String() {
	case "esc":
		return j, closeCmd
	case "backspace":
		if len(j.input) > 0 {
			j.input = j.input[:len(j.input)-1]
		}
		return j, nil
	}

	k := key.String()
	if len(k) != 1 || !isJumpKey(rune(k[0])) {
		return j, nil
	}
	j.input += k

	if i, ok := j.index[j.input]; ok {
		return j, func() tea.Msg { return JumpSelectedMsg{Index: i} }
	}
	if !j.hasPrefix(j.input) {
		j.input = ""
	}
	return j, nil
}

func (j *JumpMode) hasPrefix(p string) bool {
	for _, l := range j.labels {
		if strings.HasPrefix(l, p) {
			return true
		}
	}
	return false
}

func isJumpKey(r rune) bool {
	return r == ';' || (r >= 'a' && r <= 'z')
}

// View renders the jump bar
func (j *JumpMode) View() string {
	if len(j.labels) == 0 {
		return j.styles.SearchBar.Render("jump: nothing to jump to • Esc: cancel")
	}
	input := j.styles.MenuKey.Render(j.input)
	if j.input == "" {
		input = j.styles.MenuItemDisabled.Render("type a label")
	}
	return j.styles.SearchBar.Render("jump: " + input + " • Backspace: delete • Esc: cancel")
}

// Title returns the overlay title
func (j *JumpMode) Title() string {
	return ""
}

// Size returns the overlay dimensions; the jump bar docks full width
func (j *JumpMode) Size() (width, height int) {
	return 0, 1
}
