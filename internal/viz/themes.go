package viz

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name   string
	String lipgloss.Color
	Pickup lipgloss.Color
	Cursor lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color

	// gradient endpoints for the energy and pickup bars
	BarFrom, BarTo string
}

var Themes = []Theme{
	{
		Name:    "cyberpunk",
		String:  lipgloss.Color("#00ffff"),
		Pickup:  lipgloss.Color("#ff00ff"),
		Cursor:  lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		BarFrom: "#ff00ff",
		BarTo:   "#00ffff",
	},
	{
		Name:    "retro",
		String:  lipgloss.Color("#00ff00"),
		Pickup:  lipgloss.Color("#88ff88"),
		Cursor:  lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		BarFrom: "#005500",
		BarTo:   "#00ff00",
	},
	{
		Name:    "ocean",
		String:  lipgloss.Color("#00a8cc"),
		Pickup:  lipgloss.Color("#ffd700"),
		Cursor:  lipgloss.Color("#00ff88"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		BarFrom: "#0077be",
		BarTo:   "#00ff88",
	},
	{
		Name:    "sunset",
		String:  lipgloss.Color("#feca57"),
		Pickup:  lipgloss.Color("#ff9ff3"),
		Cursor:  lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		BarFrom: "#ff6b6b",
		BarTo:   "#feca57",
	},
}

// ThemeIndex returns the position of the named theme, or 0.
func ThemeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
