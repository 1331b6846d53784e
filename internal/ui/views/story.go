package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

const (
	storyHeaderHeight   = 3
	storyComposerHeight = 3
	composerLimit       = 2000
)

// SendMessageMsg is emitted when the user submits the composer
type SendMessageMsg struct {
	StoryID string
	Content string
}

// StoryOptions are the chat preferences that affect the transcript
type StoryOptions struct {
	Timestamps bool
	WordCount  bool
	AutoScroll bool
	Grouping   bool
}

// StoryView shows one story's transcript with a composer underneath
type StoryView struct {
	story    domain.Story
	opts     StoryOptions
	viewport viewport.Model
	composer textinput.Model
	styles   *styles.Styles

	glamourStyle  string
	renderer      *glamour.TermRenderer
	rendererWidth int
	rendered      map[string]string

	width  int
	height int
}

// GlamourStyle picks the markdown style matching a palette
func GlamourStyle(p styles.Palette) string {
	if p.Name == styles.Latte.Name {
		return "light"
	}
	return "dark"
}

// NewStoryView creates a story view rendering markdown with the named
// glamour style ("dark", "light", "notty", ...)
func NewStoryView(s *styles.Styles, glamourStyle string) *StoryView {
	ti := textinput.New()
	ti.Placeholder = "What happens next?"
	ti.Prompt = "› "
	ti.CharLimit = composerLimit

	return &StoryView{
		viewport:     viewport.New(0, 0),
		composer:     ti,
		styles:       s,
		glamourStyle: glamourStyle,
		rendered:     make(map[string]string),
	}
}

// SetStyles swaps styles and the markdown style after a theme change
func (v *StoryView) SetStyles(s *styles.Styles, glamourStyle string) {
	v.styles = s
	if glamourStyle != v.glamourStyle {
		v.glamourStyle = glamourStyle
		v.renderer = nil
		clear(v.rendered)
	}
	v.refresh(false)
}

// SetOptions applies chat preferences
func (v *StoryView) SetOptions(opts StoryOptions) {
	v.opts = opts
	v.refresh(false)
}

// SetCursorMode sets the composer cursor mode
func (v *StoryView) SetCursorMode(mode cursor.Mode) {
	v.composer.Cursor.SetMode(mode)
}

// SetSize resizes the transcript and composer
func (v *StoryView) SetSize(width, height int) {
	if width != v.width {
		clear(v.rendered)
	}
	v.width, v.height = width, height
	v.viewport.Width = width
	v.viewport.Height = max(1, height-storyHeaderHeight-storyComposerHeight)
	v.composer.Width = max(10, width-v.styles.Composer.GetHorizontalFrameSize()-len(v.composer.Prompt)-1)
	v.refresh(false)
}

// SetStory shows story. Opening a different story starts at the newest
// message; updates to the same story scroll only with auto-scroll enabled.
func (v *StoryView) SetStory(story domain.Story) {
	same := story.ID == v.story.ID
	if !same {
		clear(v.rendered)
		v.composer.Reset()
	}
	v.story = story
	v.refresh(!same || v.opts.AutoScroll)
}

// Story returns the story on screen
func (v *StoryView) Story() domain.Story {
	return v.story
}

// Composing reports whether keys go to the composer
func (v *StoryView) Composing() bool {
	return v.composer.Focused()
}

// AtBottom reports whether the newest message is in view
func (v *StoryView) AtBottom() bool {
	return v.viewport.AtBottom()
}

// StartComposing focuses the composer
func (v *StoryView) StartComposing() tea.Cmd {
	return v.composer.Focus()
}

// StopComposing blurs the composer, keeping its text
func (v *StoryView) StopComposing() {
	v.composer.Blur()
}

// Update handles keys and composer messages
func (v *StoryView) Update(msg tea.Msg) tea.Cmd {
	key, isKey := msg.(tea.KeyMsg)

	if v.Composing() {
		if isKey {
			switch key.String() {
			case "esc":
				v.StopComposing()
				return nil
			case "enter":
				return v.submit()
			}
		}
		var cmd tea.Cmd
		v.composer, cmd = v.composer.Update(msg)
		return cmd
	}

	if isKey {
		switch key.String() {
		case "i", "enter":
			return v.StartComposing()
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

func (v *StoryView) submit() tea.Cmd {
	content := strings.TrimSpace(v.composer.Value())
	if content == "" {
		return nil
	}
	v.composer.Reset()
	id := v.story.ID
	return func() tea.Msg {
		return SendMessageMsg{StoryID: id, Content: content}
	}
}

// View renders the header, transcript and composer
func (v *StoryView) View() string {
	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")

	box := v.styles.Composer.Width(max(0, v.width-v.styles.Composer.GetHorizontalBorderSize()))
	if v.Composing() {
		b.WriteString(box.BorderForeground(v.styles.Palette.Lavender).Render(v.composer.View()))
	} else {
		b.WriteString(box.Render(v.styles.Subtle.Render("Press i to write your next move")))
	}
	return b.String()
}

func (v *StoryView) renderHeader() string {
	title := v.styles.CardTitle.Render(truncate(v.story.Title, max(1, v.width-4)))
	if v.story.IsFavorite {
		title += " " + v.styles.CardFavorite.Render("★")
	}

	var meta []string
	for _, c := range v.story.Characters {
		meta = append(meta, v.styles.Avatar(c.Name, c.Initials())+" "+c.Name)
	}
	if v.story.ScenarioName != "" {
		meta = append(meta, v.styles.Subtle.Render("in "+v.story.ScenarioName))
	}
	meta = append(meta, v.styles.Subtle.Render(messageCount(len(v.story.Messages))))

	line := truncate(strings.Join(meta, "  "), max(1, v.width))
	return title + "\n" + line + "\n" + v.styles.Subtle.Render(strings.Repeat("─", max(0, v.width)))
}

func messageCount(n int) string {
	if n == 1 {
		return "1 message"
	}
	return fmt.Sprintf("%d messages", n)
}

// refresh re-renders the transcript into the viewport
func (v *StoryView) refresh(toBottom bool) {
	if v.width <= 0 {
		return
	}
	wasBottom := v.viewport.AtBottom()
	v.viewport.SetContent(v.renderTranscript())
	if toBottom || (v.opts.AutoScroll && wasBottom) {
		v.viewport.GotoBottom()
	}
}

func (v *StoryView) renderTranscript() string {
	if len(v.story.Messages) == 0 {
		return lipgloss.Place(v.width, v.viewport.Height, lipgloss.Center, lipgloss.Center,
			v.styles.Subtle.Render("No messages yet. Press i to begin the story."))
	}

	var blocks []string
	var prev *domain.Message
	for i := range v.story.Messages {
		m := &v.story.Messages[i]
		grouped := v.opts.Grouping && prev != nil && prev.Role == m.Role && prev.Speaker == m.Speaker
		var block strings.Builder
		if !grouped {
			block.WriteString(v.messageHeader(*m))
			block.WriteString("\n")
		}
		block.WriteString(v.renderContent(*m))
		blocks = append(blocks, block.String())
		prev = m
	}

	sep := "\n\n"
	if v.opts.Grouping {
		sep = "\n"
	}
	return strings.Join(blocks, sep)
}

func (v *StoryView) messageHeader(m domain.Message) string {
	var name string
	switch m.Role {
	case domain.RoleNarrator:
		name = v.styles.Narrator.Render("Narrator")
	case domain.RoleUser:
		speaker := m.Speaker
		if speaker == "" {
			speaker = "You"
		}
		name = v.styles.UserSpeaker.Render(speaker)
	default:
		name = v.styles.Speaker.Render(m.Speaker)
	}

	parts := []string{name}
	if v.opts.Timestamps && !m.SentAt.IsZero() {
		parts = append(parts, v.styles.Timestamp.Render(m.SentAt.Format("15:04")))
	}
	if v.opts.WordCount {
		parts = append(parts, v.styles.Timestamp.Render(wordCount(m.Content)))
	}
	return strings.Join(parts, v.styles.Timestamp.Render(" · "))
}

func wordCount(s string) string {
	n := len(strings.Fields(s))
	if n == 1 {
		return "1 word"
	}
	return fmt.Sprintf("%d words", n)
}

// renderContent renders a message as markdown, caching by message ID.
// Content that fails to render falls back to the raw text.
func (v *StoryView) renderContent(m domain.Message) string {
	if out, ok := v.rendered[m.ID]; ok && m.ID != "" {
		return out
	}

	out := m.Content
	if r := v.markdown(); r != nil {
		if md, err := r.Render(m.Content); err == nil {
			out = strings.Trim(md, "\n")
		}
	}
	if m.Role == domain.RoleNarrator {
		out = v.styles.Narrator.Render(out)
	}
	if m.ID != "" {
		v.rendered[m.ID] = out
	}
	return out
}

func (v *StoryView) markdown() *glamour.TermRenderer {
	if v.renderer != nil && v.rendererWidth == v.width {
		return v.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(v.glamourStyle),
		glamour.WithWordWrap(max(20, v.width-4)),
	)
	if err != nil {
		return nil
	}
	clear(v.rendered)
	v.renderer = r
	v.rendererWidth = v.width
	return r
}
