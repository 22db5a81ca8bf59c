package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Receive  key.Binding
	Transmit key.Binding
	Filter   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Clear    key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev")),
		Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Receive:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "rx port")),
		Transmit: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^t", "tx port")),
		Filter:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("^f", "filter")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll")),
		Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^l", "clear")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "copy")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp feeds the footer hint row.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Receive, k.Transmit, k.Filter, k.Clear, k.Copy, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Prev, k.Next},
		{k.Receive, k.Transmit, k.Filter},
		{k.PageUp, k.PageDown, k.Clear, k.Copy, k.Quit},
	}
}
