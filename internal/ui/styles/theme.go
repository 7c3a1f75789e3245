package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	CursorRowStyle     = lipgloss.NewStyle().Background(CursorRowBg)

	MarkedStyle      = lipgloss.NewStyle().Foreground(Marked).Bold(true)
	GroupHeaderStyle = lipgloss.NewStyle().Foreground(GroupHeader).Bold(true)
	EmptyGroupStyle  = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	KeyStyle   = lipgloss.NewStyle().Foreground(KeybindKey).Bold(true)
	LabelStyle = lipgloss.NewStyle().Foreground(KeybindLabel)
)

// LevelStyle renders a level tag in its level color.
func LevelStyle(level int) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(LevelColor(level))
	if level >= 40 {
		s = s.Bold(true)
	}
	return s
}
