package play

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func newKeyMap(mode string) keyMap {
	submitHelp := "submit"
	if mode == ModeLive {
		submitHelp = "check"
	}
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", submitHelp)),
		Skip:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
