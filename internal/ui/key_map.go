package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	toggle   key.Binding
	next     key.Binding
	previous key.Binding
	mute     key.Binding
	volUp    key.Binding
	volDown  key.Binding
	seekBack key.Binding
	seekFwd  key.Binding
	tab      key.Binding
	join     key.Binding
	leave    key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		previous: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		mute:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		volUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		volDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		seekBack: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "seek back")),
		seekFwd:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "seek forward")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		join:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "join")),
		leave:    key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "leave")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.tab, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.toggle, k.next, k.previous},
		{k.mute, k.volUp, k.volDown},
		{k.seekBack, k.seekFwd},
		{k.tab, k.quit},
	}
}
