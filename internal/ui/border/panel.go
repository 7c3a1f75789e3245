package border

import "strings"

// Frame describes a bordered panel. Content is padded or cropped to fill
// exactly Height-2 rows of Width-2 columns.
type Frame struct {
	Title    string
	Badge    string
	Keybinds []Keybind
	Width    int
	Height   int
	Focused  bool
}

func (f Frame) Render(content string) string {
	if f.Height < 2 || f.Width < 2 {
		return ""
	}
	innerH := f.Height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	top := RenderTop(f.Title, f.Badge, f.Width, f.Focused)
	bottom := RenderBottom(f.Keybinds, f.Width, f.Focused)
	if innerH == 0 {
		return top + "\n" + bottom
	}
	return top + "\n" + RenderSides(strings.Join(lines, "\n"), f.Width, f.Focused) + "\n" + bottom
}

// RenderPanel is Frame.Render without a badge.
func RenderPanel(title, content string, keybinds []Keybind, width, height int, focused bool) string {
	return Frame{Title: title, Keybinds: keybinds, Width: width, Height: height, Focused: focused}.Render(content)
}
