package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the palette keybindings shown in the help footer.
// The four palette keys are fixed; the rest are host conveniences.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Close    key.Binding
	Reset    key.Binding
	CopyPath key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the bindings used by the terminal host.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "hide"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear query"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy path"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Close},
		{k.Reset, k.CopyPath, k.Quit},
	}
}
