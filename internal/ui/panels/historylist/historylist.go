// Package historylist is the panel listing recent generations.
package historylist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/ui/msgs"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

// Model is the history panel.
type Model struct {
	entries history.List
	cursor  int

	width   int
	height  int
	focused bool
	now     func() time.Time

	theme  theme.Theme
	styles theme.Styles
}

// New creates a new history panel.
func New(t theme.Theme, s theme.Styles) Model {
	return Model{
		theme:  t,
		styles: s,
		now:    time.Now,
	}
}

// SetEntries replaces the displayed entries and clamps the cursor.
func (m *Model) SetEntries(list history.List) {
	m.entries = list
	if m.cursor >= len(list) {
		m.cursor = max(0, len(list)-1)
	}
}

// Entries returns the displayed entries.
func (m Model) Entries() history.List {
	return m.entries
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (history.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return history.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// SetStyles swaps theme and styles, keeping state.
func (m *Model) SetStyles(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// SetClock overrides the reference time used for relative timestamps.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.entries) == 0 {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.entries) - 1
	case "enter", "r":
		idx := m.cursor
		return m, func() tea.Msg { return msgs.RegenerateMsg{Index: idx} }
	case "X":
		return m, func() tea.Msg { return msgs.ConfirmClearHistoryMsg{} }
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	lines := []string{
		m.styles.Title.Render("History") + m.styles.Muted.Render(fmt.Sprintf(" (%d)", len(m.entries))),
		"",
	}
	if len(m.entries) == 0 {
		lines = append(lines, m.styles.Muted.Render("  No history yet"))
	}
	for i, e := range m.entries {
		lines = append(lines, m.renderEntry(i, e, innerW)...)
	}

	return border.
		Width(innerW).
		Height(innerH).
		Render(fitHeight(strings.Join(lines, "\n"), innerH))
}

// renderEntry draws an entry as two lines: the text and its age.
func (m Model) renderEntry(i int, e history.Entry, w int) []string {
	prefix := fmt.Sprintf("%d. ", i+1)
	text := singleLine(e.Text)
	text = clip(text, w-lipgloss.Width(prefix))
	age := "  " + humanize.RelTime(e.Timestamp, m.now(), "ago", "from now")

	if i == m.cursor && m.focused {
		return []string{
			m.styles.Cursor.Width(w).Render(prefix + text),
			m.styles.Cursor.Width(w).Render(clip(age, w)),
		}
	}
	return []string{
		m.styles.Key.Render(prefix) + m.styles.Normal.Render(text),
		m.styles.Hint.Render(clip(age, w)),
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clip truncates s to w cells.
func clip(s string, w int) string {
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

// fitHeight truncates or pads content to h lines.
func fitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
