package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/tablez/internal/config"
	"github.com/abhisek/tablez/internal/logging"
	"github.com/abhisek/tablez/internal/sampler"
	"github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/store"
)

// deps is everything a command needs, wired from the config.
type deps struct {
	cfg     *config.Config
	dbPath  string
	logger  *log.Logger
	store   *store.Store
	stats   *stats.Engine
	sampler *sampler.Sampler
	runner  *session.Runner
	closers []io.Closer
}

// openDeps loads the config, opens the store and builds the services on top
// of it. With tui set, debug logs go to a file next to the database so they
// do not corrupt the alt-screen.
func openDeps(cmd *cobra.Command, tui bool) (*deps, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: cfgFile, Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	d := &deps{cfg: cfg}

	d.dbPath, err = resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	d.logger = logging.New(cmd.ErrOrStderr(), cfg.Debug)
	if tui && cfg.Debug {
		f, err := logging.OpenFile(filepath.Dir(d.dbPath))
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, f)
		d.logger = logging.New(f, true)
	}

	d.store, err = store.Open(d.dbPath,
		store.WithLogger(d.logger),
		store.WithMaxHistory(cfg.MaxHistoryPerFact),
	)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.closers = append([]io.Closer{d.store}, d.closers...)

	d.stats = stats.NewEngine(d.store, cfg.RecentWindow)
	d.sampler = sampler.New(d.store, sampler.Options{
		Logger:              d.logger,
		PenaltyWindow:       cfg.RecentPenaltyWindow,
		FillWithReplacement: cfg.AllowRepeats,
	})
	d.runner = session.NewRunner(d.sampler, d.store, session.WithLogger(d.logger))
	return d, nil
}

// Close releases the store and the log file, in that order.
func (d *deps) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			d.logger.Warn("close", "err", err)
		}
	}
	d.closers = nil
}

// setup builds the quiz selection from --tables and the config.
func (d *deps) setup(cmd *cobra.Command) session.Setup {
	scope := d.cfg.DefaultScope
	if cmd.Flags().Changed("tables") {
		scope, _ = cmd.Flags().GetIntSlice("tables")
	}
	return session.Setup{Scope: scope, Count: d.cfg.QuestionCount}.Normalized()
}

// resolveDBPath returns the database path using --db / db config (highest
// priority), then TABLEZ_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
