package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// CopyMode picks a range of lines in a viewport for yanking. Line
// indices are positions in the rendered content, top first.
type CopyMode struct {
	active bool
	anchor int
	cursor int
	gTap   DoubleTap
}

func NewCopyMode(gTapID int) CopyMode {
	return CopyMode{gTap: NewDoubleTap(gTapID)}
}

func (c CopyMode) Active() bool { return c.active }

// Enter starts a range at the middle of the visible lines. It does
// nothing when there are no lines.
func (c *CopyMode) Enter(lineCount, yOffset, height int) {
	if lineCount == 0 {
		return
	}
	center := yOffset + height/2
	if center >= lineCount {
		center = lineCount - 1
	}
	if center < 0 {
		center = 0
	}
	c.active = true
	c.anchor = center
	c.cursor = center
}

func (c *CopyMode) Exit() {
	c.active = false
	c.gTap.Cancel()
}

// Shift moves the range down by n lines after n lines were put on top.
func (c *CopyMode) Shift(n int) {
	c.anchor += n
	c.cursor += n
}

// Update handles a key while active. yank is non-empty when the range
// was taken, which also leaves copy mode.
func (c *CopyMode) Update(msg tea.KeyMsg, lines []string, vp *viewport.Model) (yank string, cmd tea.Cmd) {
	switch msg.String() {
	case "esc", "v":
		c.Exit()
	case "y":
		yank = c.Yank(lines)
		c.Exit()
	case "j", "down":
		if c.cursor < len(lines)-1 {
			c.cursor++
			if c.cursor >= vp.YOffset+vp.Height {
				vp.SetYOffset(c.cursor - vp.Height + 1)
			}
		}
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
			if c.cursor < vp.YOffset {
				vp.SetYOffset(c.cursor)
			}
		}
	case "G":
		c.gTap.Cancel()
		c.cursor = len(lines) - 1
		vp.GotoBottom()
	case "g":
		fired, tick := c.gTap.Check()
		if fired {
			c.cursor = 0
			vp.GotoTop()
		}
		cmd = tick
	}
	return yank, cmd
}

// HandleExpiry forwards a double-tap timeout.
func (c *CopyMode) HandleExpiry(msg GTimerExpiredMsg) bool {
	return c.gTap.HandleExpiry(msg)
}

// Range returns the selected line indices with start <= end.
func (c CopyMode) Range() (start, end int) {
	start, end = c.anchor, c.cursor
	if start > end {
		start, end = end, start
	}
	return start, end
}

// Contains reports whether line i is inside an active range.
func (c CopyMode) Contains(i int) bool {
	if !c.active {
		return false
	}
	start, end := c.Range()
	return i >= start && i <= end
}

// Yank joins the selected lines, clamped to what exists.
func (c CopyMode) Yank(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	start, end := c.Range()
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start:end+1], "\n")
}
