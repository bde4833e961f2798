package layout

// PanelLayout holds calculated dimensions for the generator and history panels.
type PanelLayout struct {
	Width  int
	Height int

	GeneratorWidth int
	HistoryWidth   int

	ContentHeight int // height minus title and status bar

	// SinglePanel shows only the focused panel.
	SinglePanel bool
}

const (
	titleHeight     = 1
	statusBarHeight = 1
	minHistoryWidth = 24
	maxHistoryWidth = 48
)

// Calculate computes the panel layout from terminal dimensions.
func Calculate(width, height int) PanelLayout {
	l := PanelLayout{
		Width:         width,
		Height:        height,
		ContentHeight: max(height-titleHeight-statusBarHeight, 1),
	}

	if width < 72 {
		l.SinglePanel = true
		l.GeneratorWidth = width
		l.HistoryWidth = width
		return l
	}

	l.HistoryWidth = clamp(width/3, minHistoryWidth, maxHistoryWidth)
	l.GeneratorWidth = width - l.HistoryWidth
	return l
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
