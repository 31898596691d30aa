package tui

import "github.com/charmbracelet/bubbles/key"

type menuKeyMap struct {
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type boardKeyMap struct {
	Point   key.Binding
	Restart key.Binding
	Next    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Point, k.Restart, k.Next, k.Back, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var menuKeys = menuKeyMap{
	Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back: key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var boardKeys = boardKeyMap{
	Point:   key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "A", "B"), key.WithHelp("0-9 a b", "pick point")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
