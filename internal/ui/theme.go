package ui

import (
	"github.com/charmbracelet/lipgloss"

	domain "github.com/oshokin/fliptime/internal/domain/clock"
)

// Theme is the color scheme of one theme tag.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Card       lipgloss.Color
	Digit      lipgloss.Color
	Hinge      lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

// themes holds the built-in schemes by tag.
//
//nolint:gochecknoglobals // Fixed lookup table.
var themes = map[string]Theme{
	domain.DefaultTheme: {
		Name:       domain.DefaultTheme,
		Background: lipgloss.Color("#1b1b1b"),
		Card:       lipgloss.Color("#2b2b2b"),
		Digit:      lipgloss.Color("#f0f0f0"),
		Hinge:      lipgloss.Color("#111111"),
		Accent:     lipgloss.Color("#e53935"),
		Muted:      lipgloss.Color("#8a8a8a"),
	},
	"dark": {
		Name:       "dark",
		Background: lipgloss.Color("#000000"),
		Card:       lipgloss.Color("#141d2b"),
		Digit:      lipgloss.Color("#8bc34a"),
		Hinge:      lipgloss.Color("#0a0f17"),
		Accent:     lipgloss.Color("#2196f3"),
		Muted:      lipgloss.Color("#2a3850"),
	},
	"light": {
		Name:       "light",
		Background: lipgloss.Color("#f4f5f6"),
		Card:       lipgloss.Color("#ffffff"),
		Digit:      lipgloss.Color("#101f38"),
		Hinge:      lipgloss.Color("#dce0e5"),
		Accent:     lipgloss.Color("#ffc107"),
		Muted:      lipgloss.Color("#6b7280"),
	},
	"retro": {
		Name:       "retro",
		Background: lipgloss.Color("#2d1b0e"),
		Card:       lipgloss.Color("#4a2f1a"),
		Digit:      lipgloss.Color("#ffb000"),
		Hinge:      lipgloss.Color("#1a0f07"),
		Accent:     lipgloss.Color("#ff5f1f"),
		Muted:      lipgloss.Color("#a47551"),
	},
}

// ThemeFor returns the scheme of tag, falling back to classic for unknown tags.
func ThemeFor(tag string) Theme {
	if theme, ok := themes[tag]; ok {
		return theme
	}

	return themes[domain.DefaultTheme]
}
