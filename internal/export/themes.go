package export

import "github.com/charmbracelet/lipgloss"

// Theme colors the terminal backend.
type Theme struct {
	Name  string
	Title lipgloss.Color
	Frame lipgloss.Color
	Text  lipgloss.Color
	Muted lipgloss.Color
	// Ink replaces every line color when set, for single-color terminals.
	Ink lipgloss.Color
}

// Available themes
var (
	ThemePaper = Theme{
		Name:  "paper",
		Title: lipgloss.Color("#e0e0e0"),
		Frame: lipgloss.Color("#808080"),
		Text:  lipgloss.Color("#cccccc"),
		Muted: lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:  "retro",
		Title: lipgloss.Color("#88ff88"),
		Frame: lipgloss.Color("#005500"),
		Text:  lipgloss.Color("#00ff00"),
		Muted: lipgloss.Color("#005500"),
		Ink:   lipgloss.Color("#00ff00"), // Green phosphor
	}

	ThemeMinimal = Theme{
		Name:  "minimal",
		Title: lipgloss.Color("#ffffff"),
		Frame: lipgloss.Color("#888888"),
		Text:  lipgloss.Color("#ffffff"),
		Muted: lipgloss.Color("#888888"),
		Ink:   lipgloss.Color("#ffffff"),
	}

	ThemeOcean = Theme{
		Name:  "ocean",
		Title: lipgloss.Color("#ffd700"),
		Frame: lipgloss.Color("#4488aa"),
		Text:  lipgloss.Color("#e0f0ff"),
		Muted: lipgloss.Color("#4488aa"),
	}

	// All available themes
	Themes = []Theme{
		ThemePaper,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to paper.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePaper
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
