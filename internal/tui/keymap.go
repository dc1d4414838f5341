package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Form
	NextField key.Binding
	PrevField key.Binding
	Cycle     key.Binding
	Submit    key.Binding
	Reset     key.Binding
	Example   key.Binding

	// Dashboard
	Refresh key.Binding

	// Application
	SwitchView key.Binding
	Dismiss    key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("down", "enter"),
			key.WithHelp("↓/Enter", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑/Shift+Tab", "previous field"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right", " "),
			key.WithHelp("←/→", "change option"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "score profile"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "reset form"),
		),
		Example: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("Ctrl+E", "load example"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh status"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch view"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x/Esc", "dismiss message"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.SwitchView, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Cycle},
		{k.Submit, k.Reset, k.Example},
		{k.SwitchView, k.Refresh, k.Dismiss},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
