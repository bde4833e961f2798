package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level keybindings. Panel keys live in the
// panels themselves.
type KeyMap struct {
	Quit           key.Binding
	QuitNormal     key.Binding
	CommandPalette key.Binding
	Help           key.Binding
	Download       key.Binding
	NextTheme      key.Binding

	CycleFocus    key.Binding
	CycleFocusRev key.Binding
	FocusInput    key.Binding
	FocusHistory  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitNormal: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		CommandPalette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Download: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "download PNG"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "next theme"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		CycleFocusRev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "generator"),
		),
		FocusHistory: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "history"),
		),
	}
}
