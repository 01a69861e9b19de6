package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/ui/components"
	"github.com/abhisek/tablez/internal/ui/theme"
)

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	q, ok := s.state.Current()
	if !ok {
		return renderLoading(width, height)
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Tables: %s", scopeLabel(s.state.Setup().Scope)))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d of %d", s.state.Index()+1, s.state.Len()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	answers := s.state.Answers()
	results := make([]bool, len(answers))
	for i, a := range answers {
		results[i] = a.Correct
	}
	bar := components.NewAnswerTrack(results, s.state.Len(), min(width-8, 50)).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(fmt.Sprintf("%d × %d =", q.Table, q.Multiplicand)))
	b.WriteString("\n\n")

	answerLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(s.input.View())
	b.WriteString(answerLine)
	b.WriteString("\n\n")

	if s.last != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(renderLastAnswer(*s.last)))
	}

	return b.String()
}

// renderLastAnswer shows a one-line verdict on the previous question.
func renderLastAnswer(a sess.Answer) string {
	took := lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + stats.FormatSeconds(a.ElapsedMs))
	if a.Correct {
		return theme.Correct.Render(fmt.Sprintf("✓ %d × %d = %d", a.Fact.Table, a.Fact.Multiplicand, a.Value)) + took
	}
	return theme.Incorrect.Render(fmt.Sprintf("✗ %d × %d = %d, not %d", a.Fact.Table, a.Fact.Multiplicand, a.Fact.Answer(), a.Value)) + took
}

// renderCommitFailed tells the learner the answers are still in memory.
func (s *SessionScreen) renderCommitFailed(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Could not save your answers"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.commitErr))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render(fmt.Sprintf("%d of %d saved. Press R to try again.", s.state.Saved(), s.state.Len())))

	return b.String()
}

// renderQuitConfirm renders the leave-quiz confirmation.
func (s *SessionScreen) renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answers are only saved when the quiz is finished."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Picking your questions...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

// scopeLabel joins tables as "3, 4, 7".
func scopeLabel(scope []int) string {
	parts := make([]string, len(scope))
	for i, t := range scope {
		parts[i] = fmt.Sprint(t)
	}
	return strings.Join(parts, ", ")
}
