package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Tab         key.Binding
	Escape      key.Binding
	Diagnostics key.Binding

	// Lists
	Refresh key.Binding
	Confirm key.Binding

	// Transport
	Pause    key.Binding
	Resume   key.Binding
	Stop     key.Binding
	Next     key.Binding
	Previous key.Binding
	Restart  key.Binding
	Shuffle  key.Binding

	// Volume
	VolumeUp   key.Binding
	VolumeDown key.Binding

	// Streaming
	Stream key.Binding

	// Diagnostics
	FailuresOnly key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics log"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh devices"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select device / play song"),
		),

		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "Pause"),
		),
		Resume: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Resume"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stop"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Previous"),
		),
		Restart: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Restart track"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Shuffle"),
		),

		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Volume down"),
		),

		Stream: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Stream a link"),
		),

		FailuresOnly: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Only warnings/errors"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Refresh, k.Pause, k.Stream, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Confirm, k.Refresh, k.Escape},
		{k.Pause, k.Resume, k.Stop, k.Next, k.Previous, k.Restart, k.Shuffle},
		{k.VolumeUp, k.VolumeDown, k.Stream},
		{k.Diagnostics, k.FailuresOnly, k.CycleTheme, k.Help, k.Quit},
	}
}
