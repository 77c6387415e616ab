package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/deskboard/internal/config"
)

// keyMap holds the board bindings. Arrow keys always work next to the
// configured letters.
type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	PickUp  key.Binding
	Drop    key.Binding
	Cancel  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp("←/"+km.PrevColumn, "left")),
		Right:   key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp("→/"+km.NextColumn, "right")),
		Up:      key.NewBinding(key.WithKeys(km.PrevTicket, "up"), key.WithHelp("↑/"+km.PrevTicket, "up")),
		Down:    key.NewBinding(key.WithKeys(km.NextTicket, "down"), key.WithHelp("↓/"+km.NextTicket, "down")),
		PickUp:  key.NewBinding(key.WithKeys(km.PickUp), key.WithHelp(keyName(km.PickUp), "pick up")),
		Drop:    key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(keyName(km.Drop), "drop")),
		Cancel:  key.NewBinding(key.WithKeys(km.Cancel), key.WithHelp(keyName(km.Cancel), "cancel drag")),
		Refresh: key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "reload / retry")),
		Help:    key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:    key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.Cancel, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PickUp, k.Drop, k.Cancel},
		{k.Refresh, k.Help, k.Quit},
	}
}
