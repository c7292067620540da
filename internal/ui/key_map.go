package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	add       key.Binding
	submit    key.Binding
	cancel    key.Binding
	remove    key.Binding
	voteLeft  key.Binding
	voteRight key.Binding
	refresh   key.Binding
	dismiss   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add song")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		voteLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "left wins")),
		voteRight: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "right wins")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh leaderboard")),
		dismiss:   key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.voteLeft, k.voteRight, k.add, k.remove, k.refresh, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.remove},
		{k.voteLeft, k.voteRight, k.refresh},
		{k.add, k.submit, k.cancel, k.quit},
	}
}
