package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Like                  key.Binding
	NewToy                key.Binding
	Refresh               key.Binding
	Quit                  key.Binding

	// form
	NextField, PrevField key.Binding
	Submit               key.Binding
	Cancel               key.Binding

	Dismiss key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Like:    key.NewBinding(key.WithKeys("enter", " ", "L"), key.WithHelp("enter", "like")),
		NewToy:  key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add a toy")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create toy")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close form")),

		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
	}
}

// boardKeys is what the help line shows while browsing cards.
type boardKeys keyMap

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Like, k.NewToy, k.Refresh, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {k.Like, k.NewToy, k.Refresh, k.Quit}}
}

type formKeys keyMap

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
