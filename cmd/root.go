package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tablez",
	Short: "Adaptive times-tables practice",
	Long: "tablez drills the 1 to 12 times tables in the terminal. Questions are\n" +
		"drawn by weight, so facts you miss or have never seen come up more often.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides TABLEZ_DB env var)")
	flags.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/tablez/config.yaml)")
	flags.Bool("debug", false, "Enable debug logging")

	addSetupFlags(rootCmd)
	addTUIFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(versionCmd)
}

// addSetupFlags registers the quiz selection flags shared by play and sample.
func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().IntSlice("tables", nil, "Tables to practise, e.g. 3,4,7 (default from config)")
	cmd.Flags().Int("count", 0, "Number of questions (default from config)")
	cmd.Flags().Bool("allow-repeats", false, "Repeat facts when --count exceeds the selected facts")
}

// addTUIFlags registers the flags that only affect the interactive app.
func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("skip-splash", false, "Start on the dashboard without the intro")
}
