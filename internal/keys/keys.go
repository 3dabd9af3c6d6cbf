// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	FocusCmd  key.Binding
	ClearView key.Binding

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		FocusCmd: key.NewBinding(
			key.WithKeys(":", "/"),
			key.WithHelp(":", "command line"),
		),
		ClearView: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset lists"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// VimKeyMap layers home-row navigation over the defaults: j/k move the
// cursor and h/l cycle panes, with the arrow and tab keys kept as aliases.
func VimKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Up = key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	)
	km.Down = key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	)
	km.NextPane = key.NewBinding(
		key.WithKeys("l", "tab"),
		key.WithHelp("l/tab", "next pane"),
	)
	km.PrevPane = key.NewBinding(
		key.WithKeys("h", "shift+tab"),
		key.WithHelp("h/shift+tab", "previous pane"),
	)
	return km
}
