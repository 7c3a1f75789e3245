package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wcpan/ddltop/internal/ui/styles"
)

// Keybind is one hint in a panel footer, rendered as [Key]Label.
type Keybind struct {
	Key   string
	Label string
}

func RenderKeybind(kb Keybind) string {
	return styles.KeyStyle.Render("["+kb.Key+"]") + styles.LabelStyle.Render(kb.Label)
}

// KeybindWidth is the display width of a rendered keybind.
func KeybindWidth(kb Keybind) int {
	return lipgloss.Width("[" + kb.Key + "]" + kb.Label)
}

// FitKeybinds joins as many keybinds as fit within maxWidth columns.
func FitKeybinds(keybinds []Keybind, maxWidth int) string {
	var parts []string
	used := 0
	for _, kb := range keybinds {
		w := KeybindWidth(kb)
		if len(parts) > 0 {
			w += 2
		}
		if used+w > maxWidth {
			break
		}
		parts = append(parts, RenderKeybind(kb))
		used += w
	}
	return strings.Join(parts, "  ")
}
