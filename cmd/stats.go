package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy and speed for every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		rows, err := d.stats.Dashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		lipgloss.Fprintln(cmd.OutOrStdout(), renderStatsTable(rows))
		lipgloss.Fprintln(cmd.OutOrStdout(), theme.Hint.
			Render(fmt.Sprintf("Accuracy and times cover the last %d attempts per table.", d.stats.Window())))
		return nil
	},
}

// renderStatsTable lays the dashboard out as a bordered table.
func renderStatsTable(rows []stats.TableStats) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Table", "Attempts", "Accuracy", "Average", "Median", "Rating")

	for _, ts := range rows {
		if !ts.HasData() {
			t.Row(fmt.Sprintf("×%d", ts.Table), "0", "-", "-", "-", "new")
			continue
		}
		t.Row(
			fmt.Sprintf("×%d", ts.Table),
			strconv.Itoa(ts.Attempts),
			theme.Rating(ts.AccuracyRating(), fmt.Sprintf("%d%%", ts.Accuracy)),
			theme.Rating(ts.TimeRating(), stats.FormatSeconds(ts.AverageMs)),
			stats.FormatSeconds(ts.MedianMs),
			fmt.Sprintf("%s / %s", ts.AccuracyRating(), ts.TimeRating()),
		)
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return style.Foreground(theme.Primary).Bold(true)
		}
		if col > 0 {
			style = style.Align(lipgloss.Right)
		}
		return style
	})
}
