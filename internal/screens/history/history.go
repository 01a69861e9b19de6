package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/facts"
	"github.com/abhisek/tablez/internal/router"
	"github.com/abhisek/tablez/internal/sampler"
	"github.com/abhisek/tablez/internal/screen"
	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/store"
	"github.com/abhisek/tablez/internal/ui/layout"
	"github.com/abhisek/tablez/internal/ui/theme"
)

const (
	// expandedAttempts is how many attempts an expanded fact lists.
	expandedAttempts = 8

	// lastFive is how many newest results each row marks.
	lastFive = 5

	// minRowsWithTips is the least room the fact list keeps before the tips
	// are dropped on short terminals.
	minRowsWithTips = 8
)

// Source reads the stored attempts of one fact. *store.Store satisfies it.
type Source interface {
	ByFact(ctx context.Context, f facts.Fact) ([]store.Attempt, error)
}

// Weigher reports the draw weight of each fact. *sampler.Sampler satisfies it.
type Weigher interface {
	Candidates(ctx context.Context, scope []int) ([]sampler.Candidate, error)
}

// PracticeMsg asks the dashboard to preselect a single table.
type PracticeMsg struct {
	Table int
}

// factRow is one line of the breakdown.
type factRow struct {
	Fact     facts.Fact
	Weight   int
	Attempts []store.Attempt // newest first
}

type historyLoadedMsg struct {
	Rows []factRow
	Err  error
}

// HistoryScreen breaks one table down by fact: how often each was answered,
// how well, and how likely it is to be drawn next.
type HistoryScreen struct {
	source   Source
	weigher  Weigher
	table    int
	rows     []factRow
	selected int
	expanded int // row showing its attempts, or -1
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for table.
func New(source Source, weigher Weigher, table int) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		weigher:  weigher,
		table:    table,
		expanded: -1,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	source, weigher, table := s.source, s.weigher, s.table
	return func() tea.Msg {
		ctx := context.Background()

		candidates, err := weigher.Candidates(ctx, []int{table})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		rows := make([]factRow, 0, len(candidates))
		for _, c := range candidates {
			attempts, err := source.ByFact(ctx, c.Fact)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			rows = append(rows, factRow{
				Fact:     c.Fact,
				Weight:   c.Weight,
				Attempts: stats.Recent(attempts, len(attempts)),
			})
		}
		return historyLoadedMsg{Rows: rows}
	}
}

func (s *HistoryScreen) Title() string {
	return fmt.Sprintf("×%d History", s.table)
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "P", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Rows
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, back()
		case "p":
			return s, s.practice()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.expanded == s.selected {
				s.expanded = -1
			} else {
				s.expanded = s.selected
			}
			return s, nil
		}
	}
	return s, nil
}

// practice returns to the dashboard with only this table selected.
func (s *HistoryScreen) practice() tea.Cmd {
	table := s.table
	return tea.Sequence(
		back(),
		func() tea.Msg { return PracticeMsg{Table: table} },
	)
}

func back() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	center := func(line string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}

	top := []string{""}
	tips := s.renderTips()
	if height-len(tips)-2 >= minRowsWithTips {
		for _, line := range tips {
			top = append(top, center(line))
		}
	}
	header := fmt.Sprintf("  %-9s %6s %6s %8s %7s  %-9s", "Fact", "Tries", "Acc", "Median", "Weight", "Last 5")
	top = append(top, center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))

	var body []string
	selectedLine := 0
	for i, row := range s.rows {
		if i == s.selected {
			selectedLine = len(body)
		}
		body = append(body, center(s.renderRow(i, row)))
		if i == s.expanded {
			for _, line := range renderAttempts(row.Attempts) {
				body = append(body, center(line))
			}
		}
	}

	body = clip(body, selectedLine, height-len(top))
	return strings.Join(append(top, body...), "\n")
}

// renderTips returns the tips block, one string per line.
func (s *HistoryScreen) renderTips() []string {
	lines := []string{theme.Title.Render(fmt.Sprintf("Tips for ×%d", s.table))}
	tip := lipgloss.NewStyle().Foreground(theme.Text)
	for _, t := range Tips(s.table) {
		lines = append(lines, tip.Render("• "+t))
	}
	return append(lines, "")
}

func (s *HistoryScreen) renderRow(i int, row factRow) string {
	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	label := fmt.Sprintf("%d × %d", row.Fact.Table, row.Fact.Multiplicand)
	var line string
	if len(row.Attempts) == 0 {
		line = fmt.Sprintf("%s%-9s %6d %6s %8s %7d  ", prefix, label, 0, "-", "-", row.Weight)
	} else {
		recent := stats.Recent(row.Attempts, stats.RecentWindow)
		line = fmt.Sprintf("%s%-9s %6d %5d%% %8s %7d  ", prefix, label, len(row.Attempts),
			stats.Accuracy(recent), stats.FormatSeconds(stats.MedianLatency(recent)), row.Weight)
	}

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = theme.Selected
	}
	return style.Render(line) + renderLastFive(row.Attempts)
}

// renderLastFive marks the newest results of a fact, newest first: a tick
// for right, a cross for wrong and a dot where there is no attempt yet.
func renderLastFive(attempts []store.Attempt) string {
	marks := make([]string, lastFive)
	for i := range marks {
		switch {
		case i >= len(attempts):
			marks[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("·")
		case attempts[i].Correct:
			marks[i] = theme.Correct.Render("✓")
		default:
			marks[i] = theme.Incorrect.Render("✗")
		}
	}
	return strings.Join(marks, " ")
}

// renderAttempts lists the newest attempts of an expanded fact.
func renderAttempts(attempts []store.Attempt) []string {
	if len(attempts) == 0 {
		return []string{lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("    Not answered yet")}
	}

	lines := make([]string, 0, expandedAttempts)
	for _, a := range attempts[:min(expandedAttempts, len(attempts))] {
		mark, style := "✗", theme.Incorrect
		if a.Correct {
			mark, style = "✓", theme.Correct
		}
		line := fmt.Sprintf("    %s  %s  %s", style.Render(mark),
			a.Time().Local().Format("Jan 02 15:04"), stats.FormatSeconds(a.ElapsedMs))
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
	}
	return lines
}

// clip keeps at most room lines, windowed so that line focus stays visible
// along with what follows it.
func clip(lines []string, focus, room int) []string {
	if room <= 0 {
		return nil
	}
	if len(lines) <= room {
		return lines
	}
	start := max(0, min(focus-room/3, len(lines)-room))
	return lines[start : start+room]
}
