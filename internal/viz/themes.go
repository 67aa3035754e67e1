package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeSolar = Theme{
		Name:       "solar",
		Primary:    lipgloss.Color("#ffb000"), // Corona orange
		Secondary:  lipgloss.Color("#ffd866"),
		Accent:     lipgloss.Color("#ff6a00"),
		Background: lipgloss.Color("#0b0b14"),
		Text:       lipgloss.Color("#f4efe6"),
		Muted:      lipgloss.Color("#5a5a70"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeMidnight = Theme{
		Name:       "midnight",
		Primary:    lipgloss.Color("#00cccc"),
		Secondary:  lipgloss.Color("#88aaff"),
		Accent:     lipgloss.Color("#ff88ff"),
		Background: lipgloss.Color("#000814"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#445566"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4757"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#1f3a93"),
		Secondary:  lipgloss.Color("#555555"),
		Accent:     lipgloss.Color("#c0392b"),
		Background: lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#111111"),
		Muted:      lipgloss.Color("#aaaaaa"),
		Warning:    lipgloss.Color("#d35400"),
		Error:      lipgloss.Color("#c0392b"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeSolar,
		ThemeMidnight,
		ThemePaper,
		ThemeRetro,
	}
)

// GetTheme returns a theme by name, falling back to solar.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeSolar, false
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
