// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette.
type Theme struct {
	// Accents.
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text.
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Outcomes.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Border lipgloss.Color

	// Greys maps the card's named grey scale, grey1 (brightest text) to
	// grey6 (darkest surface), to terminal colours.
	Greys map[string]lipgloss.Color
}

// DefaultTheme returns a dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Greys: map[string]lipgloss.Color{
			"grey1": lipgloss.Color("#F5F5F7"),
			"grey2": lipgloss.Color("#BAC2DE"),
			"grey3": lipgloss.Color("#9399B2"),
			"grey4": lipgloss.Color("#6C7086"),
			"grey5": lipgloss.Color("#45475A"),
			"grey6": lipgloss.Color("#313244"),
		},
	}
}

// Grey resolves a named grey. Unknown names fall back to Muted.
func (t *Theme) Grey(name string) lipgloss.Color {
	if c, ok := t.Greys[name]; ok {
		return c
	}
	return t.Muted
}

// Styles are the lipgloss styles shared by views and components.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Card frames a preview. CardHighlight replaces it while a new result
	// animates in.
	Card          lipgloss.Style
	CardHighlight lipgloss.Style

	// Image draws the placeholder box reserved for a preview image.
	Image lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	rule := func(border lipgloss.Border, c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(border).
			BorderTop(true).
			BorderBottom(true).
			BorderForeground(c)
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Foreground).Background(theme.Primary),
		Help:     lipgloss.NewStyle().Foreground(theme.Muted),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Grey("grey6")).
			Padding(0, 1),

		Card:          rule(lipgloss.NormalBorder(), theme.Grey("grey5")),
		CardHighlight: rule(lipgloss.ThickBorder(), theme.Primary),

		Image: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Grey("grey4")).
			Foreground(theme.Grey("grey3")).
			Align(lipgloss.Center, lipgloss.Center),
	}
}

// DefaultStyles returns styles built from DefaultTheme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
