// Package generator is the input panel: text field, level selector, and the
// rendered QR code.
package generator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

// maxInput is the binary-mode capacity of a version 40 symbol at level L.
const maxInput = 2953

// Model is the generator panel.
type Model struct {
	input         textinput.Model
	level         LevelSelector
	code          *qr.Code
	exportEnabled bool

	focused bool
	width   int
	height  int
	theme   theme.Theme
	styles  theme.Styles
}

// New creates a new generator panel.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter text or URL..."
	ti.Prompt = "› "
	ti.CharLimit = maxInput
	ti.Width = 40

	return Model{
		input:  ti,
		level:  NewLevelSelector(t),
		theme:  t,
		styles: s,
		width:  60,
		height: 20,
	}
}

// SetFocused sets whether the panel is focused.
func (m *Model) SetFocused(f bool) {
	m.focused = f
	if !f {
		m.input.Blur()
	}
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(w-6, 10)
}

// SetStyles swaps theme and styles, keeping state.
func (m *Model) SetStyles(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
	m.level.th = t
}

// Value returns the raw input text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the input text.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// Focus starts editing the input.
func (m *Model) Focus() tea.Cmd {
	m.input.CursorEnd()
	return m.input.Focus()
}

// Editing reports whether the text input has focus.
func (m Model) Editing() bool {
	return m.input.Focused()
}

// Level returns the selected level.
func (m Model) Level() qr.Level {
	return m.level.Current()
}

// SetLevel selects a level.
func (m *Model) SetLevel(l qr.Level) {
	m.level.Set(l)
}

// SetCode sets the code to display. Nil clears it.
func (m *Model) SetCode(c *qr.Code) {
	m.code = c
}

// SetExportEnabled toggles the download affordance.
func (m *Model) SetExportEnabled(v bool) {
	m.exportEnabled = v
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.input.Focused() {
		switch key.String() {
		case "enter":
			text := m.input.Value()
			return m, func() tea.Msg { return msgs.GenerateMsg{Text: text} }
		case "esc":
			m.input.Blur()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "i", "a":
		cmd := m.Focus()
		return m, tea.Batch(cmd, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeInsert} })
	case "enter":
		text := m.input.Value()
		return m, func() tea.Msg { return msgs.GenerateMsg{Text: text} }
	case ">", "l", "right":
		return m, func() tea.Msg { return msgs.CycleLevelMsg{} }
	case "<", "h", "left":
		return m, func() tea.Msg { return msgs.CycleLevelMsg{Reverse: true} }
	case "d":
		if m.exportEnabled {
			return m, func() tea.Msg { return msgs.DownloadMsg{} }
		}
	case "y":
		return m, func() tea.Msg { return msgs.CopyTextMsg{} }
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	innerW := max(m.width-2, 10)
	innerH := max(m.height-2, 3)

	lines := []string{
		m.styles.Title.Render("QR Code Generator"),
		m.input.View(),
		m.level.View(),
		"",
	}

	symbolH := innerH - len(lines) - 2
	lines = append(lines, m.symbolView(innerW, symbolH))
	lines = append(lines, "", m.footer(innerW))

	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	return border.
		Width(innerW).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

func (m Model) symbolView(w, h int) string {
	if m.code == nil {
		return lipgloss.Place(w, max(h, 1), lipgloss.Center, lipgloss.Center,
			m.styles.Hint.Render("Nothing rendered yet. Press i, type, then Enter."))
	}

	n := m.code.Modules()
	if n > w || (n+1)/2 > h {
		return lipgloss.Place(w, max(h, 1), lipgloss.Center, lipgloss.Center,
			m.styles.Warning.Render(fmt.Sprintf("%dx%d symbol does not fit; enlarge the terminal or press d to save it", n, n)))
	}

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
		m.styles.Symbol.Render(m.code.Terminal()))
}

func (m Model) footer(w int) string {
	var parts []string
	if m.exportEnabled {
		parts = append(parts, m.styles.Key.Render("d")+m.styles.Normal.Render(" download PNG"))
	} else {
		parts = append(parts, m.styles.Muted.Render("d download PNG"))
	}
	parts = append(parts,
		m.styles.Key.Render("y")+m.styles.Normal.Render(" copy text"),
		m.styles.Key.Render("</>")+m.styles.Normal.Render(" level"),
	)
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(strings.Join(parts, "   "))
}
