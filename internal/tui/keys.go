package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Mode     key.Binding
	Tier     key.Binding
	Accuracy key.Binding
	Reset    key.Binding
	Skip     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Mode:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
		Tier:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "length")),
		Accuracy: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "target")),
		Reset:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Skip:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "skip")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Tier, k.Accuracy, k.Reset, k.Skip, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Mode, k.Tier, k.Accuracy}, {k.Reset, k.Skip, k.Quit}}
}
