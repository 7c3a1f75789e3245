package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcpan/ddltop/internal/api"
	"github.com/wcpan/ddltop/internal/search"
	"github.com/wcpan/ddltop/internal/selection"
	"github.com/wcpan/ddltop/internal/ui/border"
	"github.com/wcpan/ddltop/internal/ui/styles"
	"github.com/wcpan/ddltop/internal/ui/text"
)

// Results shows the search box above the stacked result groups. Each node
// row renders its membership in the selection set; toggling a row flips
// that id in the set and nothing else.
type Results struct {
	input   textinput.Model
	editing bool
	results *search.Results
	sel     *selection.Set
	rows    []search.Row
	cursor  int
	offset  int
	pending int
	width   int
	height  int
	focused bool
	gTap    DoubleTap
}

func NewResults(results *search.Results, sel *selection.Set) Results {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "pattern, Enter to search"
	ti.CharLimit = 512
	r := Results{input: ti, results: results, sel: sel, gTap: NewDoubleTap(gTapIDResults)}
	r.Refresh()
	return r
}

func (r Results) Update(msg tea.Msg) (Results, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		r.gTap.HandleExpiry(msg)
		return r, nil
	case tea.KeyMsg:
		if r.editing {
			return r.updateInput(msg)
		}
		return r.updateList(msg)
	}
	if r.editing {
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r Results) updateInput(msg tea.KeyMsg) (Results, tea.Cmd) {
	switch msg.String() {
	case "enter":
		pattern := r.input.Value()
		r.StopEditing()
		return r, func() tea.Msg { return SearchSubmitMsg{Pattern: pattern} }
	case "esc":
		r.StopEditing()
		return r, nil
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r Results) updateList(msg tea.KeyMsg) (Results, tea.Cmd) {
	switch msg.String() {
	case "/", "i":
		return r, r.StartEditing()
	case "j", "down":
		r.move(1)
	case "k", "up":
		r.move(-1)
	case "G":
		r.gTap.Cancel()
		r.cursor = r.lastNode()
	case "g":
		fired, cmd := r.gTap.Check()
		if !fired {
			return r, cmd
		}
		r.cursor = r.firstNode()
	case " ", "enter":
		if n, ok := r.CurrentNode(); ok {
			r.sel.Toggle(n.ID)
		}
	case "y":
		if n, ok := r.CurrentNode(); ok {
			id := n.ID
			return r, func() tea.Msg { return YankMsg{Text: id, What: "node id"} }
		}
	}
	r.ensureVisible()
	return r, nil
}

// StartEditing focuses the search box.
func (r *Results) StartEditing() tea.Cmd {
	r.editing = true
	return r.input.Focus()
}

func (r *Results) StopEditing() {
	r.editing = false
	r.input.Blur()
}

// Editing reports whether key presses go to the search box.
func (r Results) Editing() bool {
	return r.editing
}

// Refresh rebuilds the rows after a group was prepended. Scrolled to the
// top, the new group comes into view with the cursor on its first node;
// scrolled down, the cursor and viewport stay on the rows they showed.
func (r *Results) Refresh() {
	before := len(r.rows)
	r.rows = r.results.Rows()
	if added := len(r.rows) - before; added > 0 {
		if r.offset == 0 {
			r.cursor = r.firstNode()
		} else {
			r.cursor += added
			r.offset += added
		}
	}
	if r.cursor >= len(r.rows) || !r.isNode(r.cursor) {
		r.cursor = r.firstNode()
	}
	r.ensureVisible()
}

func (r *Results) SetPending(n int) {
	r.pending = n
}

// CurrentNode returns the node under the cursor.
func (r Results) CurrentNode() (api.Node, bool) {
	if !r.isNode(r.cursor) {
		return api.Node{}, false
	}
	return r.rows[r.cursor].Node, true
}

func (r Results) isNode(i int) bool {
	return i >= 0 && i < len(r.rows) && r.rows[i].Kind == search.RowNode
}

func (r Results) firstNode() int {
	for i := range r.rows {
		if r.isNode(i) {
			return i
		}
	}
	return 0
}

func (r Results) lastNode() int {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.isNode(i) {
			return i
		}
	}
	return 0
}

func (r *Results) move(delta int) {
	for i := r.cursor + delta; i >= 0 && i < len(r.rows); i += delta {
		if r.isNode(i) {
			r.cursor = i
			return
		}
	}
}

func (r Results) listHeight() int {
	h := r.height - 3 // borders and search box
	if h < 0 {
		return 0
	}
	return h
}

func (r *Results) ensureVisible() {
	h := r.listHeight()
	if h == 0 {
		return
	}
	if r.cursor < r.offset {
		r.offset = r.cursor
		// keep the group header of the first visible node on screen
		if r.offset > 0 && r.rows[r.offset-1].Kind == search.RowHeader {
			r.offset--
		}
	}
	if r.cursor >= r.offset+h {
		r.offset = r.cursor - h + 1
	}
	if limit := len(r.rows) - h; r.offset > limit {
		r.offset = limit
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func (r Results) View() string {
	inner := r.width - 2
	var b strings.Builder
	b.WriteString(r.input.View())

	groups := r.results.Groups()
	if len(r.rows) == 0 {
		b.WriteString("\n" + styles.TextDimStyle.Render("  No searches yet"))
	}
	end := r.offset + r.listHeight()
	if end > len(r.rows) {
		end = len(r.rows)
	}
	for i := r.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(r.renderRow(i, groups, inner))
	}

	var badge []string
	if n := r.sel.Len(); n > 0 {
		badge = append(badge, styles.MarkedStyle.Render(fmt.Sprintf("%d selected", n)))
	}
	if r.pending > 0 {
		badge = append(badge, styles.TextSecondaryStyle.Render("searching…"))
	}

	var keybinds []border.Keybind
	if r.editing {
		keybinds = []border.Keybind{{Key: "Enter", Label: " search"}, {Key: "Esc", Label: " done"}}
	} else {
		keybinds = []border.Keybind{
			{Key: "/", Label: " search"},
			{Key: "Space", Label: " toggle"},
			{Key: "a", Label: "cquire"},
			{Key: "d", Label: "elete"},
			{Key: "y", Label: "ank"},
		}
	}

	return border.Frame{
		Title:    "Nodes",
		Badge:    strings.Join(badge, " "),
		Keybinds: keybinds,
		Width:    r.width,
		Height:   r.height,
		Focused:  r.focused,
	}.Render(b.String())
}

func (r Results) renderRow(i int, groups []search.Group, width int) string {
	row := r.rows[i]
	switch row.Kind {
	case search.RowHeader:
		g := groups[row.Group]
		label := fmt.Sprintf("#%d %q", g.Seq, g.Pattern)
		count := styles.TextSecondaryStyle.Render(" " + text.Count(len(g.Items), "node"))
		return text.Truncate(styles.GroupHeaderStyle.Render(label)+count, width)
	case search.RowEmpty:
		return styles.EmptyGroupStyle.Render("    (no results)")
	}

	mark := styles.TextDimStyle.Render("[ ]")
	if r.sel.Has(row.Node.ID) {
		mark = styles.MarkedStyle.Render("[x]")
	}
	name := row.Node.Name
	if name == "" {
		name = row.Node.ID
	}
	line := "  " + mark + " " + styles.TextPrimaryStyle.Render(text.OneLine(name))
	line = text.Truncate(line, width)
	if r.focused && !r.editing && i == r.cursor {
		line = styles.CursorRowStyle.Render(text.PadRight(line, width))
	}
	return line
}

func (r *Results) SetSize(w, h int) {
	r.width = w
	r.height = h
	if w > 6 {
		r.input.Width = w - 6
	}
	r.ensureVisible()
}

func (r *Results) SetFocused(focused bool) {
	r.focused = focused
	if !focused && r.editing {
		r.StopEditing()
	}
}
