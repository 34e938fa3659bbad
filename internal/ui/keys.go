package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. Plain printable
// keys always belong to the search input, so every command uses a modifier
// or a non-printing key.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ToggleInfo key.Binding

	// Playback
	Activate    key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding

	// Navigation
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Reset    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h", "f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		ToggleInfo: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Toggle info pane"),
		),

		// Playback
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Play selection"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "Seek back 5s"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "Seek forward 5s"),
		),

		// Navigation
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next result"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous result"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "Move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Scroll down"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Clear search, follow playback"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Next, k.Reset, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Activate, k.SeekBack, k.SeekForward},
		{k.Next, k.Prev, k.Up, k.Down, k.PageUp, k.PageDown, k.Reset},
		{k.CycleTheme, k.ToggleInfo, k.Help, k.Quit},
	}
}
