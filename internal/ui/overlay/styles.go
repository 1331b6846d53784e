package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/hearth/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuItemDisabled is the disabled menu item style
	MenuItemDisabled lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// MenuHeader is the style for menu section headers
	MenuHeader lipgloss.Style
	// MenuCount is the style for count indicators
	MenuCount lipgloss.Style
	// Error is the style for validation messages
	Error lipgloss.Style
	// SearchBar is the full-width search line
	SearchBar lipgloss.Style

	tags *styles.Styles
}

// New creates overlay styles using the Catppuccin Macchiato theme
func New() *Styles {
	return NewWithPalette(styles.Macchiato)
}

// NewWithPalette creates overlay styles for palette p
func NewWithPalette(p styles.Palette) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(p.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(p.Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(p.Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(p.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			MarginTop(1),

		MenuHeader: lipgloss.NewStyle().
			Foreground(p.Subtext1).
			Bold(true),

		MenuCount: lipgloss.NewStyle().
			Foreground(p.Green),

		Error: lipgloss.NewStyle().
			Foreground(p.Red),

		SearchBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface0),

		tags: styles.NewWithPalette(p),
	}
}

// orDefault returns s, or the default styles when s is nil
func orDefault(s *Styles) *Styles {
	if s == nil {
		return New()
	}
	return s
}
