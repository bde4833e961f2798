package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors used by the popup.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	Accent lipgloss.Color
	Red    lipgloss.Color
	Peach  lipgloss.Color
	Yellow lipgloss.Color
	Green  lipgloss.Color
	Blue   lipgloss.Color

	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// LevelColor returns the badge color for an error-correction level name.
// Higher recovery gets a "safer" color.
func (t Theme) LevelColor(level string) lipgloss.Color {
	switch level {
	case "L":
		return t.Peach
	case "M":
		return t.Yellow
	case "Q":
		return t.Blue
	case "H":
		return t.Green
	default:
		return t.Text
	}
}
