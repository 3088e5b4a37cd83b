package player

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the player.
type keyMap struct {
	next    key.Binding
	prev    key.Binding
	enter   key.Binding
	back    key.Binding
	delete  key.Binding
	yes     key.Binding
	no      key.Binding
	retry   key.Binding
	toggle  key.Binding
	newDeck key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:    key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→", "next slide")),
		prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev slide")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "quick/long")),
		newDeck: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create new")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.enter},
		{k.back, k.delete, k.retry},
		{k.toggle, k.newDeck, k.quit},
	}
}
