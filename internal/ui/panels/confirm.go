package panels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcpan/ddltop/internal/batch"
	"github.com/wcpan/ddltop/internal/ui/border"
	"github.com/wcpan/ddltop/internal/ui/styles"
	"github.com/wcpan/ddltop/internal/ui/text"
)

// Confirm is a yes/no modal guarding a destructive batch action. It
// shows how many nodes are selected when opened; the selection itself
// is only gathered after the answer.
type Confirm struct {
	action batch.Action
	count  int
	width  int
	height int
}

func NewConfirm(action batch.Action, count int) *Confirm {
	return &Confirm{action: action, count: count, width: 44, height: 7}
}

func (c Confirm) Action() batch.Action {
	return c.action
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			return c, c.answer(true)
		case "n", "N", "esc", "q":
			return c, c.answer(false)
		}
	}
	return c, nil
}

func (c Confirm) answer(yes bool) tea.Cmd {
	action := c.action
	return func() tea.Msg { return ConfirmResultMsg{Action: action, Confirmed: yes} }
}

func (c Confirm) View() string {
	var question string
	switch c.action {
	case batch.ActionTrash:
		question = fmt.Sprintf("Move %s to trash?", text.Count(c.count, "selected node"))
	default:
		question = fmt.Sprintf("Run %s on %s?", c.action, text.Count(c.count, "selected node"))
	}
	body := "\n " + styles.TextPrimaryStyle.Render(question)
	if c.count == 0 {
		body += "\n " + styles.TextDimStyle.Render("Nothing will be sent.")
	}

	kbs := []border.Keybind{{Key: "y", Label: "es"}, {Key: "n", Label: "o"}}
	return border.RenderPanel("Confirm", body, kbs, c.width, c.height, true)
}
