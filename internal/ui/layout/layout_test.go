package layout

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCalculate_WideScreen(t *testing.T) {
	l := Calculate(160, 40)

	if l.SinglePanel {
		t.Error("should not be single panel at 160 cols")
	}
	if l.HistoryWidth < minHistoryWidth || l.HistoryWidth > maxHistoryWidth {
		t.Errorf("history width out of range: %d", l.HistoryWidth)
	}
	if total := l.GeneratorWidth + l.HistoryWidth; total != 160 {
		t.Errorf("panel widths should sum to 160, got %d", total)
	}
	if l.ContentHeight != 38 {
		t.Errorf("content height = %d, want 38", l.ContentHeight)
	}
}

func TestCalculate_MediumScreenClampsHistory(t *testing.T) {
	l := Calculate(80, 30)

	if l.SinglePanel {
		t.Error("should not be single panel at 80 cols")
	}
	if l.HistoryWidth != minHistoryWidth {
		t.Errorf("history width = %d, want %d", l.HistoryWidth, minHistoryWidth)
	}
}

func TestCalculate_NarrowScreen(t *testing.T) {
	l := Calculate(50, 20)

	if !l.SinglePanel {
		t.Error("should be single panel at 50 cols")
	}
	if l.GeneratorWidth != 50 {
		t.Errorf("generator should take full width, got %d", l.GeneratorWidth)
	}
}

func TestCalculate_TinyHeight(t *testing.T) {
	if l := Calculate(100, 1); l.ContentHeight != 1 {
		t.Errorf("content height should floor at 1, got %d", l.ContentHeight)
	}
}

func TestHandleResize(t *testing.T) {
	l := HandleResize(tea.WindowSizeMsg{Width: 120, Height: 40})
	if l.Width != 120 || l.Height != 40 {
		t.Fatalf("unexpected layout %+v", l)
	}
}
