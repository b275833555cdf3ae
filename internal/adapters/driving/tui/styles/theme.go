// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#B45309"), // Amber
		Secondary:  lipgloss.Color("#0E7490"), // Teal
		Foreground: lipgloss.Color("#E7E5E4"), // Stone
		Muted:      lipgloss.Color("#78716C"), // Warm gray
		Success:    lipgloss.Color("#84CC16"), // Lime
		Warning:    lipgloss.Color("#FACC15"), // Yellow
		Error:      lipgloss.Color("#EF4444"), // Red
		Border:     lipgloss.Color("#57534E"),
		Bar:        lipgloss.Color("#1C1917"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// ActiveTab and Tab render the section switcher.
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style

	// Card frames one term or clip.
	Card lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tab := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(theme.Muted)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:  lipgloss.NewStyle().Foreground(theme.Muted),

		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(theme.Muted),

		Tab: tab,
		ActiveTab: tab.
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1).
			MarginBottom(1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
