package generator

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/qrpop/internal/core/qr"
	"github.com/sadopc/qrpop/internal/ui/theme"
)

// LevelSelector is a cycling widget for the error-correction level.
type LevelSelector struct {
	level qr.Level
	th    theme.Theme
}

// NewLevelSelector creates a selector starting at Medium.
func NewLevelSelector(t theme.Theme) LevelSelector {
	return LevelSelector{level: qr.Medium, th: t}
}

// Current returns the selected level.
func (p LevelSelector) Current() qr.Level {
	return p.level
}

// CycleNext selects the next level, wrapping around.
func (p *LevelSelector) CycleNext() {
	p.level = p.level.Next()
}

// CyclePrev selects the previous level, wrapping around.
func (p *LevelSelector) CyclePrev() {
	p.level = p.level.Prev()
}

// Set selects l.
func (p *LevelSelector) Set(l qr.Level) {
	p.level = l
}

// View renders all levels with the current one highlighted.
func (p LevelSelector) View() string {
	parts := make([]string, 0, len(qr.Levels))
	for _, l := range qr.Levels {
		if l == p.level {
			parts = append(parts, theme.LevelBadge(p.th, l.String()))
			continue
		}
		parts = append(parts, lipgloss.NewStyle().
			Foreground(p.th.Muted).
			Padding(0, 1).
			Render(l.String()))
	}
	label := lipgloss.NewStyle().Foreground(p.th.Subtext).Render("Error correction ")
	name := lipgloss.NewStyle().Foreground(p.th.LevelColor(p.level.String())).Render(" " + p.level.Name())
	return label + strings.Join(parts, "") + name
}
