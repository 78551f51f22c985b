package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Right key.Binding
	Up, Down    key.Binding
	Pluck       key.Binding
	Play        key.Binding
	Reset       key.Binding
	Harmonic    key.Binding
	Pickup      key.Binding
	Theme       key.Binding
	DampLess    key.Binding
	DampMore    key.Binding
	FewerModes  key.Binding
	MoreModes   key.Binding
	Slacken     key.Binding
	Tighten     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←", "pluck point")),
		Right:      key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→", "pluck point")),
		Up:         key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑", "height")),
		Down:       key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓", "height")),
		Pluck:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pluck")),
		Play:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Harmonic:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "harmonic")),
		Pickup:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "move pickup")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		DampLess:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "less damping")),
		DampMore:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more damping")),
		FewerModes: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer modes")),
		MoreModes:  key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("+", "more modes")),
		Slacken:    key.NewBinding(key.WithKeys(","), key.WithHelp(",", "slacken")),
		Tighten:    key.NewBinding(key.WithKeys("."), key.WithHelp(".", "tighten")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pluck, k.Play, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Pluck, k.Harmonic, k.Play, k.Reset},
		{k.DampLess, k.DampMore, k.FewerModes, k.MoreModes},
		{k.Slacken, k.Tighten, k.Pickup, k.Theme},
		{k.Help, k.Quit},
	}
}
