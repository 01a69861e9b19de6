package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/router"
	"github.com/abhisek/tablez/internal/screen"
	"github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/ui/components"
	"github.com/abhisek/tablez/internal/ui/layout"
	"github.com/abhisek/tablez/internal/ui/theme"
)

// TryAgainMsg asks the dashboard to preselect the setup of the quiz that
// just finished.
type TryAgainMsg struct {
	Setup session.Setup
}

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	summary session.Summary
	menu    components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.Summary) *SummaryScreen {
	s := &SummaryScreen{summary: summary}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Try again", Key: "t", Action: s.tryAgain},
		{Label: "Back to tables", Key: "b", Action: back},
	})
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Tables"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "esc" {
			return s, back()
		}
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// tryAgain returns to the dashboard with the same tables and count.
func (s *SummaryScreen) tryAgain() tea.Cmd {
	setup := s.summary.Setup
	return tea.Sequence(
		back(),
		func() tea.Msg { return TryAgainMsg{Setup: setup} },
	)
}

func back() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Quiz complete!"))
	b.WriteString("\n\n")

	accuracy := theme.Rating(stats.RateAccuracy(sum.Accuracy), fmt.Sprintf("%d%%", sum.Accuracy))
	average := theme.Rating(stats.RateTime(sum.AverageMs), stats.FormatSeconds(sum.AverageMs))
	statsLine := fmt.Sprintf("Correct: %d/%d        Accuracy: %s        Average: %s",
		sum.Correct, sum.Total, accuracy, average)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("By table")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rowWidth := max(min(width-8, 60), 20)
	for _, group := range sum.ByTable {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			renderGroup(group, rowWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return b.String()
}

// renderGroup renders one table's answers, wrapped to width.
func renderGroup(group session.TableResults, width int) string {
	correct := 0
	items := make([]string, 0, len(group.Answers))
	for _, a := range group.Answers {
		style := theme.Incorrect
		if a.Correct {
			correct++
			style = theme.Correct
		}
		items = append(items,
			style.Render(fmt.Sprintf("%d×%d=%d", a.Fact.Table, a.Fact.Multiplicand, a.Value))+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+stats.FormatSeconds(a.ElapsedMs)))
	}

	head := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("×%d  %d/%d", group.Table, correct, len(group.Answers)))

	body := lipgloss.NewStyle().Width(width).Render(strings.Join(items, "   "))
	return lipgloss.JoinVertical(lipgloss.Left, head, body)
}
