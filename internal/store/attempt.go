package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/tablez/internal/facts"
)

// Attempt is one stored answer to a multiplication fact.
type Attempt struct {
	ID           int64
	Table        int
	Multiplicand int
	Correct      bool
	ElapsedMs    int64
	Timestamp    int64 // epoch milliseconds
}

// Fact returns the fact the attempt answered.
func (a Attempt) Fact() facts.Fact {
	return facts.New(a.Table, a.Multiplicand)
}

// Time returns the attempt timestamp as a time.Time.
func (a Attempt) Time() time.Time {
	return time.UnixMilli(a.Timestamp)
}

// Record appends an attempt stamped with the store clock and trims the
// fact's history to the retention bound in the same transaction.
func (s *Store) Record(ctx context.Context, table, multiplicand int, correct bool, elapsedMs int64) (Attempt, error) {
	f := facts.New(table, multiplicand)
	if err := f.Validate(); err != nil {
		return Attempt{}, fmt.Errorf("record: %w", err)
	}
	if elapsedMs < 0 {
		return Attempt{}, fmt.Errorf("record: elapsed %dms: %w", elapsedMs, facts.ErrOutOfRange)
	}

	a := Attempt{
		Table:        table,
		Multiplicand: multiplicand,
		Correct:      correct,
		ElapsedMs:    elapsedMs,
		Timestamp:    s.clock.Now().UnixMilli(),
	}

	var removed int
	err := s.withTx(ctx, func(tx dialect.Tx) error {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(attemptsTable).
			Columns(columnTable, columnMultiplicand, columnCorrect, columnElapsedMs, columnTimestamp).
			Values(a.Table, a.Multiplicand, a.Correct, a.ElapsedMs, a.Timestamp).
			Query()
		var res entsql.Result
		if err := tx.Exec(ctx, query, args, &res); err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert attempt id: %w", err)
		}
		a.ID = id

		removed, err = s.prune(ctx, tx, f)
		return err
	})
	if err != nil {
		return Attempt{}, storageErr("record", err)
	}
	if removed > 0 {
		s.logger.Debug("pruned attempts", "fact", f, "removed", removed)
	}
	return a, nil
}

// ByTable returns every stored attempt for table, oldest first.
func (s *Store) ByTable(ctx context.Context, table int) ([]Attempt, error) {
	sel := selectAttempts().
		Where(entsql.EQ(columnTable, table)).
		OrderBy(entsql.Asc(columnTimestamp), entsql.Asc(columnID))
	attempts, err := s.queryAttempts(ctx, s.drv, sel)
	return attempts, storageErr("by table", err)
}

// ByTables returns every stored attempt whose table is any of tables,
// oldest first.
func (s *Store) ByTables(ctx context.Context, tables []int) ([]Attempt, error) {
	if len(tables) == 0 {
		return []Attempt{}, nil
	}
	args := make([]any, len(tables))
	for i, t := range tables {
		args[i] = t
	}
	sel := selectAttempts().
		Where(entsql.In(columnTable, args...)).
		OrderBy(entsql.Asc(columnTimestamp), entsql.Asc(columnID))
	attempts, err := s.queryAttempts(ctx, s.drv, sel)
	return attempts, storageErr("by tables", err)
}

// ByFact returns every stored attempt for one fact, oldest first.
func (s *Store) ByFact(ctx context.Context, f facts.Fact) ([]Attempt, error) {
	sel := selectAttempts().
		Where(factPredicate(f)).
		OrderBy(entsql.Asc(columnTimestamp), entsql.Asc(columnID))
	attempts, err := s.queryAttempts(ctx, s.drv, sel)
	return attempts, storageErr("by fact", err)
}

// RecentByTable returns at most n attempts for table, newest first.
func (s *Store) RecentByTable(ctx context.Context, table, n int) ([]Attempt, error) {
	if n <= 0 {
		return []Attempt{}, nil
	}
	sel := selectAttempts().
		Where(entsql.EQ(columnTable, table)).
		OrderBy(entsql.Desc(columnTimestamp), entsql.Desc(columnID)).
		Limit(n)
	attempts, err := s.queryAttempts(ctx, s.drv, sel)
	return attempts, storageErr("recent by table", err)
}

// CountTable returns how many attempts are stored for table.
func (s *Store) CountTable(ctx context.Context, table int) (int, error) {
	n, err := s.count(ctx, s.drv, entsql.EQ(columnTable, table))
	return n, storageErr("count table", err)
}

// CountFact returns how many attempts are stored for one fact.
func (s *Store) CountFact(ctx context.Context, f facts.Fact) (int, error) {
	n, err := s.count(ctx, s.drv, factPredicate(f))
	return n, storageErr("count fact", err)
}

// Prune deletes the oldest attempts of f beyond the retention bound and
// reports how many were removed. Record already prunes; this is exposed for
// maintenance.
func (s *Store) Prune(ctx context.Context, f facts.Fact) (int, error) {
	var removed int
	err := s.withTx(ctx, func(tx dialect.Tx) error {
		var err error
		removed, err = s.prune(ctx, tx, f)
		return err
	})
	if err != nil {
		return 0, storageErr("prune", err)
	}
	return removed, nil
}

// Reset deletes every stored attempt and reports how many were removed.
func (s *Store) Reset(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).Delete(attemptsTable).Query()
	var res entsql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, storageErr("reset", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("reset", err)
	}
	s.logger.Info("attempt history reset", "removed", n)
	return int(n), nil
}

func (s *Store) prune(ctx context.Context, ex dialect.ExecQuerier, f facts.Fact) (int, error) {
	total, err := s.count(ctx, ex, factPredicate(f))
	if err != nil {
		return 0, fmt.Errorf("count fact: %w", err)
	}
	excess := total - s.maxHistory
	if excess <= 0 {
		return 0, nil
	}

	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select(columnID).
		From(d.Table(attemptsTable)).
		Where(factPredicate(f)).
		OrderBy(entsql.Asc(columnTimestamp), entsql.Asc(columnID)).
		Limit(excess).
		Query()
	rows := &entsql.Rows{}
	if err := ex.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("select oldest: %w", err)
	}
	var ids []any
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("iterate ids: %w", err)
	}
	rows.Close()
	if len(ids) == 0 {
		return 0, nil
	}

	query, args = d.Delete(attemptsTable).Where(entsql.In(columnID, ids...)).Query()
	if err := ex.Exec(ctx, query, args, nil); err != nil {
		return 0, fmt.Errorf("delete oldest: %w", err)
	}
	return len(ids), nil
}

func (s *Store) count(ctx context.Context, ex dialect.ExecQuerier, where *entsql.Predicate) (int, error) {
	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select(entsql.Count("*")).
		From(d.Table(attemptsTable)).
		Where(where).
		Query()
	rows := &entsql.Rows{}
	if err := ex.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	return entsql.ScanInt(rows)
}

func (s *Store) queryAttempts(ctx context.Context, ex dialect.ExecQuerier, sel *entsql.Selector) ([]Attempt, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := ex.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []Attempt{}
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Table, &a.Multiplicand, &a.Correct, &a.ElapsedMs, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// withTx runs fn in a transaction, committing on success.
func (s *Store) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if v := recover(); v != nil {
			tx.Rollback()
			panic(v)
		}
	}()
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func selectAttempts() *entsql.Selector {
	d := entsql.Dialect(dialect.SQLite)
	return d.Select(attemptColumns...).From(d.Table(attemptsTable))
}

func factPredicate(f facts.Fact) *entsql.Predicate {
	return entsql.And(
		entsql.EQ(columnTable, f.Table),
		entsql.EQ(columnMultiplicand, f.Multiplicand),
	)
}
