// ABOUTME: Key bindings for the interactive map and the marker form
// ABOUTME: Built on bubbles/key so help text stays next to the binding

package common

import "github.com/charmbracelet/bubbles/key"

// MapKeyMap defines key bindings for the map screen.
type MapKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Grab    key.Binding
	Center  key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultMapKeyMap returns key bindings for the map screen.
func DefaultMapKeyMap() MapKeyMap {
	return MapKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "drop/edit"),
		),
		Grab: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move pin"),
		),
		Center: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "center"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel move"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns a short help text for the map screen.
func (k MapKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Grab, k.Center, k.ZoomIn, k.ZoomOut, k.Quit}
}

// FullHelp returns full help for the map screen.
func (k MapKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Grab, k.Back},
		{k.Center, k.ZoomIn, k.ZoomOut, k.Quit},
	}
}

// FormKeyMap defines key bindings for the marker form.
type FormKeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Save     key.Binding
	Delete   key.Binding
	Pick     key.Binding
	Share    key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

// DefaultFormKeyMap returns key bindings for the marker form.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		Pick: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "attach photo"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "share"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// PermissionKeyMap defines key bindings for the permission error screen.
type PermissionKeyMap struct {
	Retry key.Binding
	Quit  key.Binding
}

// DefaultPermissionKeyMap returns key bindings for the permission error screen.
func DefaultPermissionKeyMap() PermissionKeyMap {
	return PermissionKeyMap{
		Retry: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "retry"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
