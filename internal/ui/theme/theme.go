package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/stats"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#FACC15") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// RatingColor maps a rating to its display color. Unrated values are dim.
func RatingColor(r stats.Rating) color.Color {
	switch r {
	case stats.RatingExcellent:
		return Secondary
	case stats.RatingGood:
		return Success
	case stats.RatingAverage:
		return Warning
	case stats.RatingBad:
		return Error
	default:
		return TextDim
	}
}

// Rating renders s in the color of r.
func Rating(r stats.Rating, s string) string {
	return lipgloss.NewStyle().Foreground(RatingColor(r)).Render(s)
}
