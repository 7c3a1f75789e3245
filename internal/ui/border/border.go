package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wcpan/ddltop/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

func edgeStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	}
	return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
}

// RenderTop renders ╭─ Title ───── badge ─╮. The title is left aligned and
// bold when focused; badge is right aligned and pre-styled by the caller.
// Either may be empty. When both do not fit, the badge is dropped first.
func RenderTop(title, badge string, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	es := edgeStyle(focused)
	inner := width - 2

	left := ""
	if title != "" {
		ts := styles.TextSecondaryStyle.Bold(true)
		if focused {
			ts = styles.TitleStyle
		}
		left = horizBar + " " + ts.Render(title) + " "
	}
	right := ""
	if badge != "" {
		right = " " + badge + " " + horizBar
	}

	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if lw+rw > inner {
		right, rw = "", 0
	}
	if lw > inner {
		left = lipgloss.NewStyle().MaxWidth(inner).Render(left)
		lw = lipgloss.Width(left)
	}
	fill := strings.Repeat(horizBar, inner-lw-rw)

	return es.Render(cornerTL) + styleEdges(es, left) + es.Render(fill) + styleEdges(es, right) + es.Render(cornerTR)
}

// styleEdges paints the bar characters of a title segment without
// touching the already styled label in between.
func styleEdges(es lipgloss.Style, seg string) string {
	if seg == "" {
		return ""
	}
	if strings.HasPrefix(seg, horizBar) {
		return es.Render(horizBar) + seg[len(horizBar):]
	}
	if strings.HasSuffix(seg, horizBar) {
		return seg[:len(seg)-len(horizBar)] + es.Render(horizBar)
	}
	return seg
}

// RenderBottom renders ╰─ [a]cquire  [d]elete ──╯ when focused, a plain
// edge otherwise. Keybinds that do not fit are dropped from the end.
func RenderBottom(keybinds []Keybind, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	es := edgeStyle(focused)
	inner := width - 2

	if !focused || len(keybinds) == 0 {
		return es.Render(cornerBL + strings.Repeat(horizBar, inner) + cornerBR)
	}

	budget := inner - 3 // "─ " prefix and " " pad
	if budget < 0 {
		budget = 0
	}
	hints := FitKeybinds(keybinds, budget)
	fill := budget - lipgloss.Width(hints)
	if fill < 0 {
		fill = 0
	}

	return es.Render(cornerBL+horizBar+" ") + hints + es.Render(" "+strings.Repeat(horizBar, fill)+cornerBR)
}

// RenderSides frames every content line with │, padding or cropping each
// line to width-2 columns.
func RenderSides(content string, width int, focused bool) string {
	if width < 2 {
		return content
	}
	es := edgeStyle(focused)
	inner := width - 2
	crop := lipgloss.NewStyle().MaxWidth(inner)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w > inner {
			line = crop.Render(line)
			w = lipgloss.Width(line)
		}
		if w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		lines[i] = es.Render(vertBar) + line + es.Render(vertBar)
	}
	return strings.Join(lines, "\n")
}
