package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/wcpan/ddltop/internal/logs"
	"github.com/wcpan/ddltop/internal/logstream"
	"github.com/wcpan/ddltop/internal/ui/border"
	"github.com/wcpan/ddltop/internal/ui/styles"
	"github.com/wcpan/ddltop/internal/ui/text"
)

// LogPanel renders the merged log newest first. While pinned to the top
// it follows new records; scrolled away, prepended records push the
// content down without moving what is on screen.
type LogPanel struct {
	viewport    viewport.Model
	view        *logs.View
	state       logstream.State
	width       int
	height      int
	focused     bool
	pinned      bool
	gTap        DoubleTap
	copy        CopyMode
	scrollSpeed int
	timestamps  bool
}

func NewLogPanel(view *logs.View) LogPanel {
	return LogPanel{
		viewport:    viewport.New(0, 0),
		view:        view,
		pinned:      true,
		gTap:        NewDoubleTap(gTapIDLog),
		copy:        NewCopyMode(gTapIDLogCopy),
		scrollSpeed: 3,
		timestamps:  true,
	}
}

func (l LogPanel) Update(msg tea.Msg) (LogPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		if !l.gTap.HandleExpiry(msg) {
			l.copy.HandleExpiry(msg)
		}
		return l, nil
	case tea.KeyMsg:
		if l.copy.Active() {
			return l.updateCopy(msg)
		}
		switch msg.String() {
		case "v":
			l.copy.Enter(l.view.Len(), l.viewport.YOffset, l.viewport.Height)
			if l.copy.Active() {
				l.pinned = false
				l.rerender()
			}
			return l, nil
		case "j", "down":
			l.pinned = false
			l.viewport.SetYOffset(l.viewport.YOffset + l.step())
			return l, nil
		case "k", "up":
			offset := l.viewport.YOffset - l.step()
			if offset <= 0 {
				offset = 0
				l.pinned = true
			}
			l.viewport.SetYOffset(offset)
			return l, nil
		case "G":
			l.gTap.Cancel()
			l.pinned = false
			l.viewport.GotoBottom()
			return l, nil
		case "g":
			fired, cmd := l.gTap.Check()
			if fired {
				l.pinned = true
				l.viewport.GotoTop()
			}
			return l, cmd
		case "y":
			entries := l.view.Entries()
			if i := l.viewport.YOffset; i < len(entries) {
				msg := entries[i].Record.Message
				return l, func() tea.Msg { return YankMsg{Text: msg, What: "log line"} }
			}
			return l, nil
		}
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	l.pinned = l.viewport.AtTop()
	return l, cmd
}

func (l LogPanel) updateCopy(msg tea.KeyMsg) (LogPanel, tea.Cmd) {
	start, end := l.copy.Range()
	yank, cmd := l.copy.Update(msg, l.view.Messages(), &l.viewport)
	l.pinned = !l.copy.Active() && l.viewport.AtTop()
	l.rerender()
	if yank != "" {
		what := text.Count(end-start+1, "log line")
		return l, func() tea.Msg { return YankMsg{Text: yank, What: what} }
	}
	return l, cmd
}

func (l LogPanel) step() int {
	if l.scrollSpeed <= 0 {
		return 1
	}
	return l.scrollSpeed
}

// Refresh re-renders after the log view changed. prepended is the number
// of records that were put on top since the last refresh.
func (l *LogPanel) Refresh(prepended int) {
	offset := l.viewport.YOffset
	if l.copy.Active() {
		l.copy.Shift(prepended)
	}
	l.viewport.SetContent(l.renderContent())
	if l.pinned {
		l.viewport.GotoTop()
		return
	}
	l.viewport.SetYOffset(offset + prepended)
}

// rerender repaints the content in place, keeping the scroll position.
func (l *LogPanel) rerender() {
	offset := l.viewport.YOffset
	l.viewport.SetContent(l.renderContent())
	l.viewport.SetYOffset(offset)
}

func (l LogPanel) renderContent() string {
	entries := l.view.Entries()
	if len(entries) == 0 {
		if l.view.HistoryLoaded() {
			return styles.TextDimStyle.Render("No log records")
		}
		return styles.TextDimStyle.Render("Loading log…")
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		line := text.Truncate(formatRecord(e, l.timestamps), l.viewport.Width)
		if l.copy.Contains(i) {
			line = styles.CursorRowStyle.Render(text.PadRight(ansi.Strip(line), l.viewport.Width))
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func formatRecord(e logs.Entry, timestamps bool) string {
	rec := e.Record
	var b strings.Builder
	if timestamps {
		b.WriteString(styles.TextDimStyle.Render(text.Clock(rec.Time())))
		b.WriteString(" ")
	}
	b.WriteString(styles.LevelStyle(rec.Level).Render(fmt.Sprintf("%-5s", rec.LevelName())))
	b.WriteString(" ")
	msgStyle := styles.TextPrimaryStyle
	if e.Segment == logs.SegmentHistory {
		msgStyle = styles.TextSecondaryStyle
	}
	b.WriteString(msgStyle.Render(text.OneLine(rec.Message)))
	return b.String()
}

func (l LogPanel) View() string {
	badge := lipgloss.NewStyle().Foreground(styles.StreamStateColor(l.state)).Render("● " + l.state.String())

	var keybinds []border.Keybind
	switch {
	case l.focused && l.copy.Active():
		start, end := l.copy.Range()
		keybinds = []border.Keybind{
			{Key: "y", Label: "ank " + text.Count(end-start+1, "line")},
			{Key: "esc", Label: " cancel"},
		}
	case l.focused:
		keybinds = []border.Keybind{
			{Key: "y", Label: "ank"},
			{Key: "g", Label: "g newest"},
			{Key: "G", Label: " oldest"},
			{Key: "v", Label: " select"},
		}
		if !l.pinned {
			keybinds = append(keybinds, border.Keybind{Key: "↑", Label: " new records"})
		}
	}

	return border.Frame{
		Title:    "Log",
		Badge:    badge,
		Keybinds: keybinds,
		Width:    l.width,
		Height:   l.height,
		Focused:  l.focused,
	}.Render(l.viewport.View())
}

func (l *LogPanel) SetSize(w, h int) {
	l.width = w
	l.height = h
	innerW, innerH := w-2, h-2
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	l.viewport.Width = innerW
	l.viewport.Height = innerH
	l.Refresh(0)
}

func (l *LogPanel) SetFocused(focused bool) {
	l.focused = focused
}

func (l *LogPanel) SetScrollSpeed(speed int) {
	if speed > 0 {
		l.scrollSpeed = speed
	}
}

func (l *LogPanel) SetTimestamps(on bool) {
	l.timestamps = on
	l.Refresh(0)
}

func (l *LogPanel) SetStreamState(state logstream.State) {
	l.state = state
}

func (l LogPanel) StreamState() logstream.State {
	return l.state
}

// Pinned reports whether the panel follows the newest record.
func (l LogPanel) Pinned() bool {
	return l.pinned
}

func (l LogPanel) YOffset() int {
	return l.viewport.YOffset
}
