// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the chat TUI.
type Theme struct {
	// Name identifies the theme ("dark" or "light").
	Name string

	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution, including filtered queries.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DarkTheme returns the default dark colour theme.
func DarkTheme() *Theme {
	return &Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#6C63FF"), // Violet
		Secondary:  lipgloss.Color("#2EC4B6"), // Teal
		Foreground: lipgloss.Color("#EAEAEA"),
		Muted:      lipgloss.Color("#8A8F98"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#3A3D45"),
	}
}

// LightTheme returns the light colour theme.
func LightTheme() *Theme {
	return &Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#6C63FF"),
		Secondary:  lipgloss.Color("#2EC4B6"),
		Foreground: lipgloss.Color("#24262B"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#16A34A"),
		Warning:    lipgloss.Color("#B45309"),
		Error:      lipgloss.Color("#DC2626"),
		Border:     lipgloss.Color("#C9CCD4"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// UserMsg style for the user's side of the transcript.
	UserMsg lipgloss.Style

	// AssistantMsg style for composed answers.
	AssistantMsg lipgloss.Style

	// Badge style for the recommended-book marker.
	Badge lipgloss.Style

	// ScoreBar style for candidate relevance bars.
	ScoreBar lipgloss.Style

	// Chip style for suggestion chips.
	Chip lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Warning style for filter notices.
	Warning lipgloss.Style

	// InputField style for the prompt area.
	InputField lipgloss.Style

	// Help style for keybinding hints.
	Help lipgloss.Style

	// Card style for bordered candidate cards.
	Card lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DarkTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		UserMsg: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		AssistantMsg: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Primary).
			Padding(0, 1),

		ScoreBar: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Chip: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the dark theme.
func DefaultStyles() *Styles {
	return NewStyles(DarkTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Toggle returns styles for the opposite theme.
func (s *Styles) Toggle() *Styles {
	if s.theme.Name == "dark" {
		return NewStyles(LightTheme())
	}
	return NewStyles(DarkTheme())
}
