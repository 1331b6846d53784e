package styles

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/types"
)

// Styles holds all the UI styles
type Styles struct {
	Palette Palette

	// Navigation
	Header       lipgloss.Style
	NavTab       lipgloss.Style
	NavTabActive lipgloss.Style
	PageTitle    lipgloss.Style
	Subtle       lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardTitle    lipgloss.Style
	CardFavorite lipgloss.Style
	Tag          lipgloss.Style
	TagWanted    lipgloss.Style
	TagUnwanted  lipgloss.Style
	Match        lipgloss.Style

	// Lists
	Row       lipgloss.Style
	RowActive lipgloss.Style

	// Story transcript
	Narrator    lipgloss.Style
	Speaker     lipgloss.Style
	UserSpeaker lipgloss.Style
	Timestamp   lipgloss.Style
	Composer    lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
	ToastExiting lipgloss.Style

	// Loading screen
	Logo         lipgloss.Style
	LoadingText  lipgloss.Style
	LoadingError lipgloss.Style

	// Log levels
	LogDebug lipgloss.Style
	LogInfo  lipgloss.Style
	LogWarn  lipgloss.Style
	LogError lipgloss.Style
}

// New creates a new Styles instance with the Catppuccin Macchiato theme
func New() *Styles {
	return NewWithPalette(Macchiato)
}

// NewWithPalette builds every style from p
func NewWithPalette(p Palette) *Styles {
	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}

	return &Styles{
		Palette: p,

		Header: lipgloss.NewStyle().
			Foreground(p.Mauve).
			Bold(true).
			Padding(0, 1),

		NavTab: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			Padding(0, 1),

		NavTabActive: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Blue).
			Bold(true).
			Padding(0, 1),

		PageTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		Subtle: lipgloss.NewStyle().
			Foreground(p.Overlay1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface1).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Lavender).
			Padding(0, 1),

		CardTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),

		CardFavorite: lipgloss.NewStyle().
			Foreground(p.Yellow),

		Tag: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			Background(p.Surface0).
			Padding(0, 1),

		TagWanted: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Green).
			Padding(0, 1),

		TagUnwanted: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Red).
			Padding(0, 1),

		Match: lipgloss.NewStyle().
			Foreground(p.Peach).
			Underline(true),

		Row: lipgloss.NewStyle().
			Foreground(p.Text),

		RowActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Background(p.Surface0).
			Bold(true),

		Narrator: lipgloss.NewStyle().
			Foreground(p.Subtext1).
			Italic(true),

		Speaker: lipgloss.NewStyle().
			Foreground(p.Mauve).
			Bold(true),

		UserSpeaker: lipgloss.NewStyle().
			Foreground(p.Teal).
			Bold(true),

		Timestamp: lipgloss.NewStyle().
			Foreground(p.Overlay0),

		Composer: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Background(p.Surface0).
			Foreground(p.Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(p.Blue).
			Foreground(p.Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(p.Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Background(p.Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		ToastInfo:    toast(p.Blue),
		ToastSuccess: toast(p.Green),
		ToastWarning: toast(p.Yellow),
		ToastError:   toast(p.Red),
		ToastExiting: toast(p.Surface2).Foreground(p.Overlay0).Faint(true),

		Logo: lipgloss.NewStyle().
			Foreground(p.Peach).
			Bold(true),

		LoadingText: lipgloss.NewStyle().
			Foreground(p.Subtext1),

		LoadingError: lipgloss.NewStyle().
			Foreground(p.Red),

		LogDebug: lipgloss.NewStyle().Foreground(p.Overlay1),
		LogInfo:  lipgloss.NewStyle().Foreground(p.Blue),
		LogWarn:  lipgloss.NewStyle().Foreground(p.Yellow),
		LogError: lipgloss.NewStyle().Foreground(p.Red).Bold(true),
	}
}

// Toast returns the style for a toast type, dimmed while it exits
func (s *Styles) Toast(t types.ToastType, exiting bool) lipgloss.Style {
	if exiting {
		return s.ToastExiting
	}
	switch t {
	case types.ToastSuccess:
		return s.ToastSuccess
	case types.ToastWarning:
		return s.ToastWarning
	case types.ToastError:
		return s.ToastError
	default:
		return s.ToastInfo
	}
}

// TagState returns the chip style for a tag's filter state
func (s *Styles) TagState(state domain.TagState) lipgloss.Style {
	switch state {
	case domain.TagPositive:
		return s.TagWanted
	case domain.TagNegative:
		return s.TagUnwanted
	default:
		return s.Tag
	}
}

// Avatar renders initials on a color derived from the name
func (s *Styles) Avatar(name, initials string) string {
	colors := s.Palette.AvatarColors()
	h := fnv.New32a()
	h.Write([]byte(name))
	c := colors[h.Sum32()%uint32(len(colors))]
	return lipgloss.NewStyle().
		Foreground(s.Palette.Base).
		Background(c).
		Bold(true).
		Padding(0, 1).
		Render(initials)
}

// Highlight renders text with the characters at the matched byte offsets
// emphasised
func (s *Styles) Highlight(text string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(text)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	var seg strings.Builder
	segHit := false
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if segHit {
			b.WriteString(s.Match.Inherit(base).Render(seg.String()))
		} else {
			b.WriteString(base.Render(seg.String()))
		}
		seg.Reset()
	}
	for i, r := range text {
		if hit[i] != segHit {
			flush()
			segHit = hit[i]
		}
		seg.WriteRune(r)
	}
	flush()
	return b.String()
}
