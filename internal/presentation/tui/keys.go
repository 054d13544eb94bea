package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the simulator screen.
type KeyMap struct {
	FirstBit    key.Binding
	SecondBit   key.Binding
	GateCutting key.Binding
	Start       key.Binding
	Tutorial    key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FirstBit: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "first bit"),
		),
		SecondBit: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "second bit"),
		),
		GateCutting: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gate cutting"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter", "start"),
		),
		Tutorial: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tutorial"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FirstBit, k.SecondBit, k.GateCutting, k.Start, k.Tutorial, k.Quit}
}
