package workbench

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Filter  key.Binding
	New     key.Binding
	Status  key.Binding
	Delete  key.Binding
	Copy    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Accept  key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		Status:  key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "change status")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy as markdown")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Accept:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Filter, k.New, k.Status, k.Delete, k.Help, k.Quit}
}

// FullHelp feeds the help dialog.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Next, k.Prev},
		{k.Filter, k.New, k.Status, k.Delete, k.Copy, k.Refresh},
		{k.Help, k.Quit},
	}
}
