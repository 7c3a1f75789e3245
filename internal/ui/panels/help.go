package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcpan/ddltop/internal/ui/border"
	"github.com/wcpan/ddltop/internal/ui/styles"
	"github.com/wcpan/ddltop/internal/ui/text"
)

// HelpSection is a titled group of bindings in the help overlay.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

type HelpOverlay struct {
	sections []HelpSection
	width    int
	height   int
}

func NewHelpOverlay(sections []HelpSection) *HelpOverlay {
	h := &HelpOverlay{sections: sections, width: 46}
	lines := 0
	for _, s := range sections {
		lines += 2 + len(s.Bindings)
	}
	h.height = lines + 2
	return h
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	var blocks []string
	for _, s := range h.sections {
		var b strings.Builder
		b.WriteString(styles.TitleStyle.Render(s.Title))
		for _, kb := range s.Bindings {
			help := kb.Help()
			if help.Key == "" {
				continue
			}
			b.WriteString("\n  " + styles.KeyStyle.Render(text.PadRight(help.Key, 7)) + " " + styles.TextPrimaryStyle.Render(help.Desc))
		}
		blocks = append(blocks, b.String())
	}

	bottom := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", strings.Join(blocks, "\n\n"), bottom, h.width, h.height, true)
}
