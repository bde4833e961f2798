package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

type paletteCommand struct {
	Name     string
	Shortcut string
	Msg      tea.Msg
}

// quitMsg is resolved by the palette into tea.Quit.
type quitMsg struct{}

var defaultCommands = []paletteCommand{
	{Name: "Download PNG", Shortcut: "d", Msg: msgs.DownloadMsg{}},
	{Name: "Copy Text", Shortcut: "y", Msg: msgs.CopyTextMsg{}},
	{Name: "Error Correction: Low (L)", Msg: msgs.SetLevelMsg{Level: "L"}},
	{Name: "Error Correction: Medium (M)", Msg: msgs.SetLevelMsg{Level: "M"}},
	{Name: "Error Correction: Quartile (Q)", Msg: msgs.SetLevelMsg{Level: "Q"}},
	{Name: "Error Correction: High (H)", Msg: msgs.SetLevelMsg{Level: "H"}},
	{Name: "Regenerate from History", Msg: openHistoryPickerMsg{}},
	{Name: "Clear History", Shortcut: "X", Msg: msgs.ConfirmClearHistoryMsg{}},
	{Name: "Switch Theme", Msg: openThemePickerMsg{}},
	{Name: "Help", Shortcut: "?", Msg: msgs.ShowHelpMsg{}},
	{Name: "Quit", Shortcut: "Ctrl+C", Msg: quitMsg{}},
}

// openThemePickerMsg and openHistoryPickerMsg switch the palette into a
// sub-list. The app answers them by calling OpenThemePicker/OpenHistoryPicker.
type openThemePickerMsg struct{}
type openHistoryPickerMsg struct{}

// IsThemePicker reports whether msg asks for the theme picker.
func IsThemePicker(msg tea.Msg) bool {
	_, ok := msg.(openThemePickerMsg)
	return ok
}

// IsHistoryPicker reports whether msg asks for the history picker.
func IsHistoryPicker(msg tea.Msg) bool {
	_, ok := msg.(openHistoryPickerMsg)
	return ok
}

// CommandPalette is a fuzzy command palette overlay.
type CommandPalette struct {
	Visible  bool
	input    textinput.Model
	commands []paletteCommand
	filtered []paletteCommand
	cursor   int
	theme    theme.Theme
}

// NewCommandPalette creates a new command palette.
func NewCommandPalette(t theme.Theme, _ theme.Styles) CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 64
	ti.Width = 44

	return CommandPalette{
		input:    ti,
		commands: defaultCommands,
		filtered: defaultCommands,
		theme:    t,
	}
}

// Open shows the command palette.
func (m *CommandPalette) Open() {
	m.open(defaultCommands, "Type a command...")
}

// Close hides the command palette.
func (m *CommandPalette) Close() {
	m.Visible = false
	m.input.Blur()
	m.commands = defaultCommands
	m.filtered = defaultCommands
	m.input.Placeholder = "Type a command..."
}

// OpenThemePicker opens the palette in theme selection mode.
func (m *CommandPalette) OpenThemePicker(themeNames []string) {
	cmds := make([]paletteCommand, len(themeNames))
	for i, name := range themeNames {
		cmds[i] = paletteCommand{Name: name, Msg: msgs.SwitchThemeMsg{Name: name}}
	}
	m.open(cmds, "Select theme...")
}

// OpenHistoryPicker opens the palette over the stored history texts,
// most recent first. Selecting one regenerates it.
func (m *CommandPalette) OpenHistoryPicker(texts []string) {
	cmds := make([]paletteCommand, len(texts))
	for i, text := range texts {
		cmds[i] = paletteCommand{Name: text, Msg: msgs.RegenerateMsg{Index: i}}
	}
	m.open(cmds, "Select history entry...")
}

func (m *CommandPalette) open(cmds []paletteCommand, placeholder string) {
	m.Visible = true
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.commands = cmds
	m.filtered = cmds
	m.cursor = 0
}

// Init implements tea.Model.
func (m CommandPalette) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CommandPalette) Update(msg tea.Msg) (CommandPalette, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, backToNormal
		case "enter":
			if m.cursor < len(m.filtered) {
				selected := m.filtered[m.cursor].Msg
				m.Close()
				if _, quit := selected.(quitMsg); quit {
					return m, tea.Quit
				}
				return m, tea.Batch(backToNormal, func() tea.Msg { return selected })
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter(m.input.Value())
	return m, cmd
}

func (m *CommandPalette) filter(query string) {
	if query == "" {
		m.filtered = m.commands
	} else {
		names := make([]string, len(m.commands))
		for i, c := range m.commands {
			names[i] = c.Name
		}
		matches := fuzzy.Find(query, names)
		m.filtered = make([]paletteCommand, len(matches))
		for i, match := range matches {
			m.filtered[i] = m.commands[match.Index]
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the command palette overlay.
func (m CommandPalette) View() string {
	if !m.Visible {
		return ""
	}

	const boxWidth = 50
	const lineWidth = boxWidth - 6

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render("Command Palette")

	maxItems := min(len(m.filtered), 12)

	var items []string
	for i := 0; i < maxItems; i++ {
		c := m.filtered[i]
		name := truncate(c.Name, lineWidth-lipgloss.Width(c.Shortcut)-1)
		gap := max(lineWidth-lipgloss.Width(name)-lipgloss.Width(c.Shortcut), 1)

		if i == m.cursor {
			items = append(items, lipgloss.NewStyle().
				Background(m.theme.Overlay).
				Foreground(m.theme.Text).
				Width(boxWidth-4).
				Render(name+strings.Repeat(" ", gap)+c.Shortcut))
			continue
		}
		items = append(items,
			lipgloss.NewStyle().Foreground(m.theme.Text).Render(name)+
				strings.Repeat(" ", gap)+
				lipgloss.NewStyle().Foreground(m.theme.Muted).Render(c.Shortcut))
	}

	content := title + "\n\n" + m.input.View() + "\n\n" + strings.Join(items, "\n")

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}

// truncate shortens s to at most w cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
