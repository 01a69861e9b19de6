// Package sampler picks quiz questions, favouring facts that were never
// seen, recently missed or often missed, and holding back facts that were
// just asked.
package sampler

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tablez/internal/clock"
	"github.com/abhisek/tablez/internal/facts"
	"github.com/abhisek/tablez/internal/logging"
	"github.com/abhisek/tablez/internal/store"
)

// ErrInvalidScope is returned when no table in the requested scope is in
// range.
var ErrInvalidScope = errors.New("scope has no valid tables")

// Rand is the source of uniform randomness. Float64 returns a value in
// [0, 1).
type Rand interface {
	Float64() float64
}

// History is the read side of the attempt store the sampler needs.
type History interface {
	ByTable(ctx context.Context, table int) ([]store.Attempt, error)
}

// Options configures a Sampler. Zero values select the defaults.
type Options struct {
	Clock  clock.Clock
	Rand   Rand
	Logger *log.Logger

	// PenaltyWindow overrides DefaultPenaltyWindow when positive.
	PenaltyWindow time.Duration

	// FillWithReplacement tops up requests larger than the fact pool with
	// uniformly drawn repeats instead of returning a short list.
	FillWithReplacement bool
}

// Sampler draws weighted questions from stored history.
type Sampler struct {
	history History
	clock   clock.Clock
	rand    Rand
	logger  *log.Logger
	penalty time.Duration
	fill    bool
}

// New returns a Sampler reading history from h.
func New(h History, opts Options) *Sampler {
	s := &Sampler{
		history: h,
		clock:   opts.Clock,
		rand:    opts.Rand,
		logger:  opts.Logger,
		penalty: opts.PenaltyWindow,
		fill:    opts.FillWithReplacement,
	}
	if s.clock == nil {
		s.clock = clock.System()
	}
	if s.rand == nil {
		seed := uint64(time.Now().UnixNano())
		s.rand = rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.penalty <= 0 {
		s.penalty = DefaultPenaltyWindow
	}
	return s
}

// Candidate is one fact of the pool with its current weight.
type Candidate struct {
	Fact   facts.Fact
	Weight int
	Seen   int // stored attempts for the fact
}

// Candidates returns the weighted pool for scope: every multiplicand of every
// valid table, table-major.
func (s *Sampler) Candidates(ctx context.Context, scope []int) ([]Candidate, error) {
	tables := facts.NormalizeScope(scope)
	if len(tables) == 0 {
		return nil, ErrInvalidScope
	}

	perTable := make([][]store.Attempt, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		g.Go(func() error {
			attempts, err := s.history.ByTable(gctx, table)
			if err != nil {
				return err
			}
			perTable[i] = attempts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	pool := make([]Candidate, 0, len(tables)*facts.PerTable)
	for i, table := range tables {
		byMultiplicand := make(map[int][]store.Attempt, facts.PerTable)
		for _, a := range perTable[i] {
			byMultiplicand[a.Multiplicand] = append(byMultiplicand[a.Multiplicand], a)
		}
		for m := facts.MinTable; m <= facts.MaxTable; m++ {
			history := byMultiplicand[m]
			pool = append(pool, Candidate{
				Fact:   facts.New(table, m),
				Weight: Weight(history, now, s.penalty),
				Seen:   len(history),
			})
		}
	}
	return pool, nil
}

// Sample draws count questions from scope. Without FillWithReplacement at
// most one question per fact is returned.
func (s *Sampler) Sample(ctx context.Context, scope []int, count int) ([]facts.Fact, error) {
	pool, err := s.Candidates(ctx, scope)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []facts.Fact{}, nil
	}

	out := Draw(pool, count, s.rand)
	if s.fill && len(out) < count {
		out = fill(out, pool, count, s.rand)
	}
	s.logger.Debug("sampled questions", "scope", facts.NormalizeScope(scope), "requested", count, "drawn", len(out))
	return out, nil
}

// Draw picks min(count, len(pool)) facts by weight without replacement.
// Each pick walks the remaining pool subtracting weights from u*total until
// the remainder reaches zero, then swap-removes the chosen candidate. If
// every remaining weight is zero the candidates are equally likely. pool is
// not modified.
func Draw(pool []Candidate, count int, r Rand) []facts.Fact {
	remaining := make([]Candidate, len(pool))
	copy(remaining, pool)

	n := min(count, len(remaining))
	out := make([]facts.Fact, 0, max(n, 0))
	for len(out) < n {
		total := 0
		for _, c := range remaining {
			total += max(c.Weight, 0)
		}
		uniform := total == 0
		if uniform {
			total = len(remaining)
		}

		threshold := r.Float64() * float64(total)
		idx := 0
		for ; idx < len(remaining); idx++ {
			w := max(remaining[idx].Weight, 0)
			if uniform {
				w = 1
			}
			threshold -= float64(w)
			if threshold <= 0 {
				break
			}
		}
		idx = min(idx, len(remaining)-1)

		out = append(out, remaining[idx].Fact)
		last := len(remaining) - 1
		remaining[idx] = remaining[last]
		remaining = remaining[:last]
	}
	return out
}

// fill tops out up to count with uniform draws from the whole pool.
func fill(out []facts.Fact, pool []Candidate, count int, r Rand) []facts.Fact {
	if len(pool) == 0 {
		return out
	}
	for len(out) < count {
		idx := min(int(r.Float64()*float64(len(pool))), len(pool)-1)
		out = append(out, pool[idx].Fact)
	}
	return out
}
