package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap de la terminal. Los atajos de orden usan ctrl para no pisar el tipeo.
type keyMap struct {
	SortName     key.Binding
	SortWeight   key.Binding
	SortLifeSpan key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SortName: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "sort by name"),
		),
		SortWeight: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "sort by weight"),
		),
		SortLifeSpan: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "sort by life span"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortName, k.SortWeight, k.SortLifeSpan, k.PageDown, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortName, k.SortWeight, k.SortLifeSpan},
		{k.PageUp, k.PageDown, k.Quit},
	}
}
