package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/facts"
	sess "github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/ui/theme"
)

const arcadeTitleFull = `╔╦╗╔═╗╔╗ ╦  ╔═╗╔═╗
 ║ ╠═╣╠╩╗║  ║╣ ╔═╝
 ╩ ╩ ╩╚═╝╩═╝╚═╝╚═╝`

const arcadeTitleCompact = "T · A · B · L · E · Z"

// cardInnerWidth fits "100% 12.3s" with a space to spare.
const cardInnerWidth = 11

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderGrid lays the twelve table cards out in rows of gridColumns.
func renderGrid(rows []stats.TableStats, setup sess.Setup, cursor, cw int) string {
	byTable := make(map[int]stats.TableStats, len(rows))
	for _, ts := range rows {
		byTable[ts.Table] = ts
	}

	var lines []string
	var row []string
	for i, table := range facts.AllTables() {
		ts, ok := byTable[table]
		if !ok {
			ts = stats.TableStats{Table: table}
		}
		row = append(row, renderTableCard(ts, setup.Has(table), i == cursor))
		if len(row) == gridColumns {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderTableCard renders one table with its accuracy and average time,
// each colored by its rating.
func renderTableCard(ts stats.TableStats, selected, focused bool) string {
	border := theme.Border
	switch {
	case focused:
		border = theme.Primary
	case selected:
		border = theme.Secondary
	}

	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("×%d", ts.Table))
	mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("·")
	if selected {
		mark = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("✓")
	}
	gap := max(cardInnerWidth-lipgloss.Width(name)-lipgloss.Width(mark), 1)
	head := name + strings.Repeat(" ", gap) + mark

	var figures string
	if !ts.HasData() {
		figures = lipgloss.NewStyle().Foreground(theme.TextDim).Render("new")
	} else {
		figures = theme.Rating(ts.AccuracyRating(), fmt.Sprintf("%d%%", ts.Accuracy)) + " " +
			theme.Rating(ts.TimeRating(), stats.FormatSeconds(ts.AverageMs))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cardInnerWidth + 2).
		Render(head + "\n" + figures)
}

// renderSetupBar shows the question count and a start hint or notice.
func renderSetupBar(setup sess.Setup, notice string, cw int) string {
	count := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%d questions", setup.Count))

	var hint string
	switch {
	case notice != "":
		hint = lipgloss.NewStyle().Foreground(theme.Error).Render(notice)
	case setup.CanStart():
		hint = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("from %d table(s), Enter to start", len(setup.Scope)))
	default:
		hint = lipgloss.NewStyle().Foreground(theme.TextDim).Render("select tables with Space")
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(count + "  " + hint)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

func renderLoading(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Loading your stats...")
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("Could not load stats: " + msg + "\nPress R to retry.")
}

// renderCabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
