package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Roll      key.Binding
	Hold      key.Binding
	WagerDown key.Binding
	WagerUp   key.Binding
	BigDown   key.Binding
	BigUp     key.Binding
	OneRoll   key.Binding
	AllRed    key.Binding
	Legend    key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Roll: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "roll / roll again / new round"),
		),
		Hold: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "hold die"),
		),
		WagerDown: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "wager down"),
		),
		WagerUp: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "wager up"),
		),
		BigDown: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "wager down more"),
		),
		BigUp: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "wager up more"),
		),
		OneRoll: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "one roll bet"),
		),
		AllRed: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all red bet"),
		),
		Legend: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "key legend"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Roll, k.Hold, k.Legend, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Roll, k.Hold},
		{k.WagerDown, k.WagerUp, k.BigDown, k.BigUp},
		{k.OneRoll, k.AllRed},
		{k.Legend, k.Quit},
	}
}
