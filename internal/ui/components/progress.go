package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/ui/theme"
)

const (
	trackCell    = "■"
	trackCurrent = "□"
	trackPending = "·"
)

// AnswerTrack shows a quiz's progress one cell per question: green for a
// right answer, red for a wrong one, an outline for the question on screen
// and a dot for those still to come.
type AnswerTrack struct {
	Results []bool // correctness of the answered questions, in order
	Total   int
	Width   int
}

// NewAnswerTrack creates a track for total questions.
func NewAnswerTrack(results []bool, total, width int) AnswerTrack {
	return AnswerTrack{Results: results, Total: total, Width: width}
}

// View renders the track. When the cells do not fit in Width, consecutive
// questions share a cell, which turns red if any of them was missed.
func (t AnswerTrack) View() string {
	if t.Total <= 0 {
		return ""
	}

	// Cells are separated by a space.
	cells := min(t.Total, max((t.Width+1)/2, 1))

	right := lipgloss.NewStyle().Foreground(theme.Success)
	wrong := lipgloss.NewStyle().Foreground(theme.Error)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, cells)
	for c := range cells {
		from := c * t.Total / cells
		to := (c + 1) * t.Total / cells

		switch {
		case to <= len(t.Results):
			if allCorrect(t.Results[from:to]) {
				parts = append(parts, right.Render(trackCell))
			} else {
				parts = append(parts, wrong.Render(trackCell))
			}
		case from <= len(t.Results):
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Primary).Render(trackCurrent))
		default:
			parts = append(parts, dim.Render(trackPending))
		}
	}
	return strings.Join(parts, " ")
}

func allCorrect(results []bool) bool {
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}
