package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/wcpan/ddltop/internal/ui/panels"
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	FocusNext key.Binding
	Search    key.Binding
	Toggle    key.Binding
	Acquire   key.Binding
	Trash     key.Binding
	Scan      key.Binding
	Sync      key.Binding
	Yank      key.Binding
	CopyMode  key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithHelp("gg", "top / newest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom / oldest"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "switch panel"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search nodes"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("Space", "toggle selection"),
		),
		Acquire: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "acquire selected"),
		),
		Trash: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d/x", "trash selected"),
		),
		Scan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scan cache paths"),
		),
		Sync: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sync cache"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id / log line"),
		),
		CopyMode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select log lines"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// HelpSections groups the bindings for the help overlay.
func (k KeyMap) HelpSections() []panels.HelpSection {
	return []panels.HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.FocusNext}},
		{Title: "Nodes", Bindings: []key.Binding{k.Search, k.Toggle, k.Acquire, k.Trash, k.Yank}},
		{Title: "Cache", Bindings: []key.Binding{k.Scan, k.Sync}},
		{Title: "Log", Bindings: []key.Binding{k.CopyMode}},
		{Title: "Global", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}
