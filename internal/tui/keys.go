package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding used by the application. Each screen shows
// the subset that applies to it.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Login   key.Binding
	Cancel  key.Binding
	Fetch   key.Binding
	Logout  key.Binding
	Add     key.Binding
	Rename  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "right", "l"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "left", "h"),
			key.WithHelp("esc", "back"),
		),
		Login: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "login"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "refetch"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add detail"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// helpKeys adapts a list of bindings to help.KeyMap
type helpKeys []key.Binding

// ShortHelp returns keybindings to be shown in the mini help view
func (h helpKeys) ShortHelp() []key.Binding {
	return h
}

// FullHelp returns keybindings for the expanded help view
func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}

func (k keyMap) loginHelp() helpKeys {
	return helpKeys{k.Login, k.Quit}
}

func (k keyMap) loadingHelp() helpKeys {
	return helpKeys{k.Cancel, k.Quit}
}

func (k keyMap) recordsHelp() helpKeys {
	return helpKeys{k.Up, k.Down, k.Open, k.Fetch, k.Logout, k.Quit}
}

func (k keyMap) recordHelp() helpKeys {
	return helpKeys{k.Up, k.Down, k.Open, k.Add, k.Rename, k.Back, k.Quit}
}

func (k keyMap) renameHelp() helpKeys {
	return helpKeys{k.Confirm, k.Cancel}
}

func (k keyMap) detailHelp() helpKeys {
	return helpKeys{k.Up, k.Down, k.Back, k.Quit}
}
