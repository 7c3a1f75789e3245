package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wcpan/ddltop/internal/logstream"
)

// Semantic colors, AdaptiveColor{Light, Dark}.
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusActive  = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	CursorRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}
	Marked      = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	GroupHeader = lipgloss.AdaptiveColor{Light: "#8250df", Dark: "#bb9af7"}
)

// LevelColor maps a ddld log level to a display color.
func LevelColor(level int) lipgloss.AdaptiveColor {
	switch {
	case level >= 40:
		return StatusError
	case level >= 30:
		return StatusWarning
	case level >= 20:
		return StatusActive
	case level > 0:
		return TextSecondary
	default:
		return TextPrimary
	}
}

// StreamStateColor maps the live log connection state to a display color.
func StreamStateColor(state logstream.State) lipgloss.AdaptiveColor {
	switch state {
	case logstream.StateOpen:
		return StatusSuccess
	case logstream.StateConnecting:
		return StatusPending
	case logstream.StateErrored:
		return StatusError
	case logstream.StateClosed:
		return StatusWarning
	default:
		return TextDim
	}
}
