package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg closes a "gg" window. ID names the panel that opened it.
type GTimerExpiredMsg struct{ ID int }

const (
	gTapIDResults = 1
	gTapIDLog     = 2
	gTapIDLogCopy = 3
)

// DoubleTap tracks the first "g" of a "gg" jump.
type DoubleTap struct {
	Pending bool
	id      int
}

func NewDoubleTap(id int) DoubleTap {
	return DoubleTap{id: id}
}

// Check handles a "g" press. The second press within gTimeout fires;
// the first returns the timer that closes the window.
func (dt *DoubleTap) Check() (fired bool, cmd tea.Cmd) {
	if dt.Pending {
		dt.Pending = false
		return true, nil
	}
	dt.Pending = true
	id := dt.id
	return false, tea.Tick(gTimeout, func(time.Time) tea.Msg {
		return GTimerExpiredMsg{ID: id}
	})
}

// Cancel drops a pending first tap, as any other key does.
func (dt *DoubleTap) Cancel() {
	dt.Pending = false
}

// HandleExpiry reports whether msg belonged to this panel.
func (dt *DoubleTap) HandleExpiry(msg GTimerExpiredMsg) bool {
	if msg.ID != dt.id {
		return false
	}
	dt.Pending = false
	return true
}
