package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablez/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Dashboard: d.stats,
		Starter:   d.runner,
		History:   d.store,
		Weigher:   d.sampler,
		Setup:     d.setup(cmd),
		Status:    filepath.Base(d.dbPath),
		Splash:    !d.cfg.SkipSplash,
	})
}
