package layout

// Layout holds the computed cell dimensions for every panel.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Left column: search box and result groups.
	SearchWidth  int
	SearchHeight int

	// Right column: merged operational log.
	LogWidth  int
	LogHeight int

	StatusBarWidth int
}

const (
	MinWidth  = 60
	MinHeight = 12

	LeftColWeight = 0.45
)

// Calculate splits the terminal into two columns above a one-row status
// bar. TooSmall is set below the minimum size and nothing else is filled.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}
	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1
	left := int(float64(termWidth) * LeftColWeight)

	l.SearchWidth = left
	l.SearchHeight = usableHeight
	l.LogWidth = termWidth - left
	l.LogHeight = usableHeight
	l.StatusBarWidth = termWidth
	return l
}
