package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wcpan/ddltop/internal/logstream"
	"github.com/wcpan/ddltop/internal/ui/styles"
	"github.com/wcpan/ddltop/internal/ui/text"
)

const flashDurationVal = 4 * time.Second

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashSuccess
	FlashWarning
	FlashError
)

type StatusBar struct {
	width      int
	server     string
	stream     logstream.State
	selected   int
	inflight   int
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
}

func NewStatusBar(server string) StatusBar {
	return StatusBar{server: server}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	parts := []string{
		styles.TextSecondaryStyle.Render("ddltop " + Version),
		styles.TextSecondaryStyle.Render(s.server),
		lipgloss.NewStyle().Foreground(styles.StreamStateColor(s.stream)).Render("stream " + s.stream.String()),
	}
	if s.selected > 0 {
		parts = append(parts, styles.MarkedStyle.Render(text.Count(s.selected, "node")+" selected"))
	}
	if s.inflight > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.StatusActive).Render(text.Count(s.inflight, "request")+" in flight"))
	}
	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default:
			icon, color = "●", styles.StatusActive
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" "+s.flash))
	}

	left := " " + strings.Join(parts, sep)
	right := styles.TextSecondaryStyle.Render("?:help") + " "

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int)                        { s.width = w }
func (s *StatusBar) SetStreamState(state logstream.State) { s.stream = state }
func (s *StatusBar) SetSelected(n int)                    { s.selected = n }
func (s *StatusBar) SetInflight(n int)                    { s.inflight = n }
