package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, parchment and ink
var (
	Primary   = lipgloss.Color("#B45309") // Amber
	Secondary = lipgloss.Color("#0E7490") // Deep Teal
	Accent    = lipgloss.Color("#CA8A04") // Gold
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#DC2626") // Red
	Text      = lipgloss.Color("#F5F5F4") // Stone
	TextDim   = lipgloss.Color("#A8A29E") // Warm Grey
	TextInk   = lipgloss.Color("#292524") // Ink
	Border    = lipgloss.Color("#57534E") // Dark Stone
)

// Sparks are the colors cycled through by the completion burst.
var Sparks = []color.Color{
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#EF4444"),
	lipgloss.Color("#22C55E"),
	lipgloss.Color("#3B82F6"),
	lipgloss.Color("#A855F7"),
	lipgloss.Color("#EC4899"),
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Active = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Body returns the body text style for the dark or light preference.
func Body(dark bool) lipgloss.Style {
	if dark {
		return lipgloss.NewStyle().Foreground(Text)
	}
	return lipgloss.NewStyle().Foreground(TextInk)
}
