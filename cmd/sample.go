package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/ui/theme"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print an adaptive draw of questions without starting a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		setup := d.setup(cmd)
		if !setup.CanStart() {
			return fmt.Errorf("no tables selected: pass --tables or set default_scope: %w", session.ErrInvalidScope)
		}

		out := cmd.OutOrStdout()
		if weights, _ := cmd.Flags().GetBool("weights"); weights {
			candidates, err := d.sampler.Candidates(cmd.Context(), setup.Scope)
			if err != nil {
				return fmt.Errorf("weigh facts: %w", err)
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
				Headers("Fact", "Attempts", "Weight")
			for _, c := range candidates {
				t.Row(fmt.Sprintf("%d × %d", c.Fact.Table, c.Fact.Multiplicand), strconv.Itoa(c.Seen), strconv.Itoa(c.Weight))
			}
			lipgloss.Fprintln(out, t)
			return nil
		}

		questions, err := d.sampler.Sample(cmd.Context(), setup.Scope, setup.Count)
		if err != nil {
			return fmt.Errorf("draw questions: %w", err)
		}
		for i, q := range questions {
			fmt.Fprintf(out, "%3d. %d × %d\n", i+1, q.Table, q.Multiplicand)
		}
		return nil
	},
}

func init() {
	addSetupFlags(sampleCmd)
	sampleCmd.Flags().Bool("weights", false, "Print every fact's current weight instead of drawing")
}
