package stats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tablez/internal/facts"
	"github.com/abhisek/tablez/internal/store"
)

// Source is the read side of the attempt store the engine needs.
type Source interface {
	RecentByTable(ctx context.Context, table, n int) ([]store.Attempt, error)
	CountTable(ctx context.Context, table int) (int, error)
}

// Engine computes per-table figures from stored history.
type Engine struct {
	src    Source
	window int
}

// NewEngine returns an Engine over src using the standard RecentWindow.
// A window of 0 or less also selects RecentWindow.
func NewEngine(src Source, window int) *Engine {
	if window <= 0 {
		window = RecentWindow
	}
	return &Engine{src: src, window: window}
}

// Window returns the number of recent attempts figures are computed over.
func (e *Engine) Window() int {
	return e.window
}

func (e *Engine) recent(ctx context.Context, table int) ([]store.Attempt, error) {
	return e.src.RecentByTable(ctx, table, e.window)
}

// AccuracyForTable returns the accuracy percentage over the table's recent
// window; 0 when there is no history.
func (e *Engine) AccuracyForTable(ctx context.Context, table int) (int, error) {
	attempts, err := e.recent(ctx, table)
	if err != nil {
		return 0, err
	}
	return Accuracy(attempts), nil
}

// AverageLatencyForTable returns the mean correct-answer latency in ms over
// the table's recent window; 0 when there is none.
func (e *Engine) AverageLatencyForTable(ctx context.Context, table int) (int64, error) {
	attempts, err := e.recent(ctx, table)
	if err != nil {
		return 0, err
	}
	return AverageLatency(attempts), nil
}

// MedianLatencyForTable returns the median correct-answer latency in ms over
// the table's recent window; 0 when there is none.
func (e *Engine) MedianLatencyForTable(ctx context.Context, table int) (int64, error) {
	attempts, err := e.recent(ctx, table)
	if err != nil {
		return 0, err
	}
	return MedianLatency(attempts), nil
}

// AttemptCountForTable returns every stored attempt for the table, not just
// the recent window.
func (e *Engine) AttemptCountForTable(ctx context.Context, table int) (int, error) {
	return e.src.CountTable(ctx, table)
}

// TableStats is one dashboard row.
type TableStats struct {
	Table     int
	Attempts  int
	Accuracy  int
	AverageMs int64
	MedianMs  int64
}

// HasData reports whether anything was ever recorded for the table.
func (ts TableStats) HasData() bool {
	return ts.Attempts > 0
}

// AccuracyRating grades the accuracy, or RatingNone without data.
func (ts TableStats) AccuracyRating() Rating {
	if !ts.HasData() {
		return RatingNone
	}
	return RateAccuracy(ts.Accuracy)
}

// TimeRating grades the average latency, or RatingNone without data.
func (ts TableStats) TimeRating() Rating {
	return RateTime(ts.AverageMs)
}

// ForTable gathers every figure for one table.
func (e *Engine) ForTable(ctx context.Context, table int) (TableStats, error) {
	count, err := e.src.CountTable(ctx, table)
	if err != nil {
		return TableStats{}, fmt.Errorf("table %d: %w", table, err)
	}
	ts := TableStats{Table: table, Attempts: count}
	if count == 0 {
		return ts, nil
	}

	attempts, err := e.recent(ctx, table)
	if err != nil {
		return TableStats{}, fmt.Errorf("table %d: %w", table, err)
	}
	ts.Accuracy = Accuracy(attempts)
	ts.AverageMs = AverageLatency(attempts)
	ts.MedianMs = MedianLatency(attempts)
	return ts, nil
}

// Dashboard returns stats for every table, in table order. Tables are read
// concurrently.
func (e *Engine) Dashboard(ctx context.Context) ([]TableStats, error) {
	tables := facts.AllTables()
	rows := make([]TableStats, len(tables))

	g, ctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		g.Go(func() error {
			ts, err := e.ForTable(ctx, table)
			if err != nil {
				return err
			}
			rows[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
