package panels

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcpan/ddltop/internal/api"
	"github.com/wcpan/ddltop/internal/logs"
	"github.com/wcpan/ddltop/internal/logstream"
)

func newTestLogPanel(w, h int) (LogPanel, *logs.View) {
	v := &logs.View{}
	l := NewLogPanel(v)
	l.SetSize(w, h)
	l.SetFocused(true)
	return l, v
}

func history(n int) []api.LogRecord {
	recs := make([]api.LogRecord, n)
	for i := range recs {
		recs[i] = api.LogRecord{Level: 20, Message: fmt.Sprintf("rec-%02d", i)}
	}
	return recs
}

func TestLogPanelNewestFirst(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.PushLive(api.LogRecord{Message: "M1"})
	v.AppendHistory([]api.LogRecord{{Message: "A"}, {Message: "B"}})
	l.Refresh(1)

	view := l.View()
	m1, b, a := strings.Index(view, "M1"), strings.Index(view, " B"), strings.Index(view, " A")
	if m1 < 0 || b < 0 || a < 0 {
		t.Fatalf("missing records in view:\n%s", view)
	}
	if !(m1 < b && b < a) {
		t.Errorf("expected M1, B, A top to bottom; got positions %d %d %d", m1, b, a)
	}
}

func TestLogPanelPlaceholders(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	if !strings.Contains(l.View(), "Loading log…") {
		t.Error("expected loading placeholder before history")
	}
	v.AppendHistory(nil)
	l.Refresh(0)
	if !strings.Contains(l.View(), "No log records") {
		t.Error("expected empty placeholder after empty history")
	}
}

func TestLogPanelFormat(t *testing.T) {
	l, v := newTestLogPanel(80, 10)
	v.PushLive(api.LogRecord{Level: 40, Message: "disk\nfull"})
	l.Refresh(1)

	view := l.View()
	if !strings.Contains(view, "ERROR") {
		t.Error("expected level tag")
	}
	if !strings.Contains(view, "disk ↵ full") {
		t.Error("expected multi-line message folded onto one row")
	}
	if !strings.Contains(view, "--:--:--") {
		t.Error("expected blank clock for record without timestamp")
	}

	l.SetTimestamps(false)
	if strings.Contains(l.View(), "--:--:--") {
		t.Error("expected no clock with timestamps off")
	}
}

func TestLogPanelStreamBadge(t *testing.T) {
	l, _ := newTestLogPanel(60, 10)
	if !strings.Contains(l.View(), "● connecting") {
		t.Error("expected connecting badge by default")
	}
	l.SetStreamState(logstream.StateErrored)
	if !strings.Contains(l.View(), "● errored") {
		t.Error("expected errored badge")
	}
	if l.StreamState() != logstream.StateErrored {
		t.Error("StreamState getter mismatch")
	}
}

func TestLogPanelPinnedFollowsNewRecords(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.AppendHistory(history(30))
	l.Refresh(0)

	v.PushLive(api.LogRecord{Message: "fresh"})
	l.Refresh(1)

	if !l.Pinned() || l.YOffset() != 0 {
		t.Errorf("expected pinned at top, got pinned=%v offset=%d", l.Pinned(), l.YOffset())
	}
	if !strings.Contains(l.View(), "fresh") {
		t.Error("expected newest record visible")
	}
}

func TestLogPanelScrolledKeepsPosition(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	l.SetScrollSpeed(3)
	v.AppendHistory(history(30))
	l.Refresh(0)

	l, _ = l.Update(runeKey("j"))
	if l.Pinned() || l.YOffset() != 3 {
		t.Fatalf("expected offset 3 unpinned, got pinned=%v offset=%d", l.Pinned(), l.YOffset())
	}

	v.PushLive(api.LogRecord{Message: "fresh"})
	v.PushLive(api.LogRecord{Message: "fresher"})
	l.Refresh(2)
	if l.YOffset() != 5 {
		t.Errorf("expected offset shifted to 5, got %d", l.YOffset())
	}

	l, _ = l.Update(runeKey("k"))
	l, _ = l.Update(runeKey("k"))
	if !l.Pinned() || l.YOffset() != 0 {
		t.Errorf("scrolling back to the top should pin, got pinned=%v offset=%d", l.Pinned(), l.YOffset())
	}
}

func TestLogPanelTopAndBottom(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.AppendHistory(history(30))
	l.Refresh(0)

	l, _ = l.Update(runeKey("G"))
	if l.Pinned() || l.YOffset() == 0 {
		t.Errorf("G should scroll to the oldest record, offset=%d", l.YOffset())
	}
	l, _ = l.Update(runeKey("g"))
	l, _ = l.Update(runeKey("g"))
	if !l.Pinned() || l.YOffset() != 0 {
		t.Errorf("gg should return to the newest record, offset=%d", l.YOffset())
	}
}

func TestLogPanelYankTopVisible(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.AppendHistory(history(30))
	l.Refresh(0)
	l, _ = l.Update(runeKey("j"))

	_, cmd := l.Update(runeKey("y"))
	if cmd == nil {
		t.Fatal("expected yank command")
	}
	msg := cmd().(YankMsg)
	// history is reversed, so row 3 holds rec-26
	if msg.Text != "rec-26" {
		t.Errorf("yanked %q, want rec-26", msg.Text)
	}
}

func TestLogPanelYankEmpty(t *testing.T) {
	l, _ := newTestLogPanel(60, 10)
	if _, cmd := l.Update(runeKey("y")); cmd != nil {
		t.Error("yank on empty log should do nothing")
	}
}

func TestLogPanelCopyModeYanksRange(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.AppendHistory(history(20))
	l.Refresh(0)

	l, _ = l.Update(runeKey("v"))
	if l.Pinned() {
		t.Error("copy mode should unpin the panel")
	}
	if !strings.Contains(l.View(), "ank 1 line") {
		t.Error("footer should show the copy keybinds")
	}
	l, _ = l.Update(runeKey("j"))
	l, _ = l.Update(runeKey("j"))
	l, cmd := l.Update(runeKey("y"))
	if cmd == nil {
		t.Fatal("expected yank command")
	}
	msg, ok := cmd().(YankMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	if msg.Text != "rec-15\nrec-14\nrec-13" {
		t.Errorf("yanked %q", msg.Text)
	}
	if msg.What != "3 log lines" {
		t.Errorf("what = %q", msg.What)
	}
}

func TestLogPanelCopyModeEsc(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.AppendHistory(history(5))
	l.Refresh(0)

	l, _ = l.Update(runeKey("v"))
	l, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc should not yank")
	}
	if strings.Contains(l.View(), "cancel") {
		t.Error("copy keybinds should be gone after esc")
	}
}

func TestLogPanelCopyModeNoRecords(t *testing.T) {
	l, _ := newTestLogPanel(60, 10)
	l, _ = l.Update(runeKey("v"))
	if !l.Pinned() {
		t.Error("v without records should do nothing")
	}
}

func TestLogPanelCopyModeFollowsPrepend(t *testing.T) {
	l, v := newTestLogPanel(60, 10)
	v.AppendHistory(history(3))
	l.Refresh(0)

	// three lines: rec-02, rec-01, rec-00; the range starts on rec-00
	l, _ = l.Update(runeKey("v"))
	v.PushLive(api.LogRecord{Message: "newer"})
	l.Refresh(1)

	_, cmd := l.Update(runeKey("y"))
	msg := cmd().(YankMsg)
	if msg.Text != "rec-00" {
		t.Errorf("yanked %q, want the originally picked line", msg.Text)
	}
}
