package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Aptitude category colors, keyed by category id.
var categoryColors = map[string]color.Color{
	"creative":   lipgloss.Color("#EC4899"), // Pink
	"analytical": lipgloss.Color("#3B82F6"), // Blue
	"technical":  lipgloss.Color("#14B8A6"), // Teal
	"social":     lipgloss.Color("#22C55E"), // Green
	"leadership": lipgloss.Color("#F97316"), // Orange
}

// CategoryColor returns the accent color for an aptitude category.
func CategoryColor(category string) color.Color {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return Primary
}

// Reward rarity colors, keyed by rarity id.
var rarityColors = map[string]color.Color{
	"common":    Text,
	"uncommon":  Secondary,
	"rare":      Primary,
	"legendary": ArcadeYellow,
}

// RarityColor returns the display color for a reward rarity.
func RarityColor(rarity string) color.Color {
	if c, ok := rarityColors[rarity]; ok {
		return c
	}
	return Text
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Marked = lipgloss.NewStyle().
		Foreground(ArcadeYellow).
		Bold(true)

	TrendUp = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	TrendDown = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)
