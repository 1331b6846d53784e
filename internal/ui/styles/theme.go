package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Macchiato palette
var (
	// Base colors
	Base     = lipgloss.Color("#24273a")
	Mantle   = lipgloss.Color("#1e2030")
	Crust    = lipgloss.Color("#181926")
	Surface0 = lipgloss.Color("#363a4f")
	Surface1 = lipgloss.Color("#494d64")
	Surface2 = lipgloss.Color("#5b6078")
	Overlay0 = lipgloss.Color("#6e738d")
	Overlay1 = lipgloss.Color("#8087a2")
	Overlay2 = lipgloss.Color("#939ab7")
	Subtext0 = lipgloss.Color("#a5adcb")
	Subtext1 = lipgloss.Color("#b8c0e0")
	Text     = lipgloss.Color("#cad3f5")

	// Accent colors
	Rosewater = lipgloss.Color("#f4dbd6")
	Flamingo  = lipgloss.Color("#f0c6c6")
	Pink      = lipgloss.Color("#f5bde6")
	Mauve     = lipgloss.Color("#c6a0f6")
	Red       = lipgloss.Color("#ed8796")
	Maroon    = lipgloss.Color("#ee99a0")
	Peach     = lipgloss.Color("#f5a97f")
	Yellow    = lipgloss.Color("#eed49f")
	Green     = lipgloss.Color("#a6da95")
	Teal      = lipgloss.Color("#8bd5ca")
	Sky       = lipgloss.Color("#91d7e3")
	Sapphire  = lipgloss.Color("#7dc4e4")
	Blue      = lipgloss.Color("#8aadf4")
	Lavender  = lipgloss.Color("#b7bdf8")
)

// Palette is the set of colors a theme renders with
type Palette struct {
	Name string

	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Surface2 lipgloss.Color
	Overlay0 lipgloss.Color
	Overlay1 lipgloss.Color
	Subtext0 lipgloss.Color
	Subtext1 lipgloss.Color
	Text     lipgloss.Color

	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Teal     lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color
	Mauve    lipgloss.Color
	Pink     lipgloss.Color
}

// Macchiato is the dark theme
var Macchiato = Palette{
	Name:     "macchiato",
	Base:     Base,
	Mantle:   Mantle,
	Surface0: Surface0,
	Surface1: Surface1,
	Surface2: Surface2,
	Overlay0: Overlay0,
	Overlay1: Overlay1,
	Subtext0: Subtext0,
	Subtext1: Subtext1,
	Text:     Text,
	Red:      Red,
	Peach:    Peach,
	Yellow:   Yellow,
	Green:    Green,
	Teal:     Teal,
	Blue:     Blue,
	Lavender: Lavender,
	Mauve:    Mauve,
	Pink:     Pink,
}

// Latte is the light theme
var Latte = Palette{
	Name:     "latte",
	Base:     lipgloss.Color("#eff1f5"),
	Mantle:   lipgloss.Color("#e6e9ef"),
	Surface0: lipgloss.Color("#ccd0da"),
	Surface1: lipgloss.Color("#bcc0cc"),
	Surface2: lipgloss.Color("#acb0be"),
	Overlay0: lipgloss.Color("#9ca0b0"),
	Overlay1: lipgloss.Color("#8c8fa1"),
	Subtext0: lipgloss.Color("#6c6f85"),
	Subtext1: lipgloss.Color("#5c5f77"),
	Text:     lipgloss.Color("#4c4f69"),
	Red:      lipgloss.Color("#d20f39"),
	Peach:    lipgloss.Color("#fe640b"),
	Yellow:   lipgloss.Color("#df8e1d"),
	Green:    lipgloss.Color("#40a02b"),
	Teal:     lipgloss.Color("#179299"),
	Blue:     lipgloss.Color("#1e66f5"),
	Lavender: lipgloss.Color("#7287fd"),
	Mauve:    lipgloss.Color("#8839ef"),
	Pink:     lipgloss.Color("#ea76cb"),
}

// PaletteFor picks the palette for a theme name ("light", "dark" or
// "auto"). Auto follows darkBackground.
func PaletteFor(theme string, darkBackground bool) Palette {
	switch theme {
	case "light":
		return Latte
	case "dark":
		return Macchiato
	default:
		if darkBackground {
			return Macchiato
		}
		return Latte
	}
}

// AvatarColors cycles through accents for initials badges
func (p Palette) AvatarColors() []lipgloss.Color {
	return []lipgloss.Color{p.Blue, p.Mauve, p.Green, p.Peach, p.Pink, p.Teal, p.Yellow, p.Lavender}
}
