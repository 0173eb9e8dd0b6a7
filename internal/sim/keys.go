package sim

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the simulator key bindings.
type keyMap struct {
	Digit     key.Binding
	Submit    key.Binding
	Backspace key.Binding
	Link      key.Binding
	Lock      key.Binding
	ShortLock key.Binding
	Quit      key.Binding

	offline bool
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	if k.offline {
		return []key.Binding{k.Digit, k.Submit, k.Backspace, k.Link, k.Lock, k.ShortLock, k.Quit}
	}
	return []key.Binding{k.Digit, k.Submit, k.Backspace, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newKeyMap(offline bool) keyMap {
	return keyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("#", "enter"),
			key.WithHelp("#/enter", "submit"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("*", "backspace"),
			key.WithHelp("*/⌫", "delete"),
		),
		Link: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle link"),
			key.WithDisabled(),
		),
		Lock: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lock"),
			key.WithDisabled(),
		),
		ShortLock: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "lock 5s"),
			key.WithDisabled(),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		offline: offline,
	}
}

// enableOffline turns on the local link and lock controls.
func (k *keyMap) enableOffline() {
	k.Link.SetEnabled(true)
	k.Lock.SetEnabled(true)
	k.ShortLock.SetEnabled(true)
	k.offline = true
}
