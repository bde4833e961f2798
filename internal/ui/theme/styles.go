package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	Title      lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Key        lipgloss.Style
	Hint       lipgloss.Style
	StatusText lipgloss.Style
	StatusBar  lipgloss.Style

	Selected lipgloss.Style
	Cursor   lipgloss.Style

	// QR canvas. Block glyphs paint light modules, so the foreground is the
	// light color and the background the dark one.
	Symbol lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Normal:  lipgloss.NewStyle().Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Bold:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(t.Red),
		Success: lipgloss.NewStyle().Foreground(t.Green),
		Warning: lipgloss.NewStyle().Foreground(t.Yellow),
		Key:     lipgloss.NewStyle().Foreground(t.Accent),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		StatusText: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		Cursor: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text),

		Symbol: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#000000")),
	}
}

// WithSymbolColors returns a copy of s whose QR canvas uses the given colors.
func (s Styles) WithSymbolColors(dark, light string) Styles {
	s.Symbol = lipgloss.NewStyle().
		Foreground(lipgloss.Color(light)).
		Background(lipgloss.Color(dark))
	return s
}

// LevelBadge renders a level name as a colored badge.
func LevelBadge(t Theme, level string) string {
	return lipgloss.NewStyle().
		Foreground(t.Base).
		Background(t.LevelColor(level)).
		Bold(true).
		Padding(0, 1).
		Render(level)
}
