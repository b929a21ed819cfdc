package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/bibletrack/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar followed by a caption.
type ProgressBar struct {
	Label   string
	Read    int
	Total   int
	Caption string
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, read, total int, caption string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Read:    read,
		Total:   total,
		Caption: caption,
		Width:   width,
	}
}

// Filled returns how many of width cells are filled.
func (p ProgressBar) Filled(width int) int {
	if p.Total <= 0 || p.Read <= 0 {
		return 0
	}
	filled := width * p.Read / p.Total
	if filled > width {
		filled = width
	}
	return filled
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Subtitle.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	captionWidth := 0
	if p.Caption != "" {
		captionWidth = lipgloss.Width(p.Caption) + 2
	}

	barWidth := p.Width - labelWidth - captionWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := p.Filled(barWidth)
	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.Caption != "" {
		result += "  " + theme.Hint.Render(p.Caption)
	}

	return result
}
