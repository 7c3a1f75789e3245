package panels

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

func wrapResults(r *Results) tea.Model {
	return panelAdapter{
		view: func() string { return r.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := r.Update(msg)
			*r = next
			return cmd
		},
	}
}

func wrapLogPanel(l *LogPanel) tea.Model {
	return panelAdapter{
		view: func() string { return l.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := l.Update(msg)
			*l = next
			return cmd
		},
	}
}

func wrapConfirm(c *Confirm) tea.Model {
	return panelAdapter{
		view: func() string { return c.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			next, cmd := c.Update(msg)
			*c = next
			return cmd
		},
	}
}

// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

func quit(tb testing.TB, tm *teatest.TestModel) {
	tb.Helper()
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(tb, teatest.WithFinalTimeout(waitDuration))
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
