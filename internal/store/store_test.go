package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tablez/internal/clock"
	"github.com/abhisek/tablez/internal/facts"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// testDSN names an in-memory database private to one test.
func testDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared"
}

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(testDSN(), opts...)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustRecord(t *testing.T, s *Store, table, multiplicand int, correct bool, elapsed int64) Attempt {
	t.Helper()
	a, err := s.Record(context.Background(), table, multiplicand, correct, elapsed)
	if err != nil {
		t.Fatalf("record %dx%d: %v", table, multiplicand, err)
	}
	return a
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.MaxHistory() != DefaultMaxHistory {
		t.Errorf("MaxHistory() = %d, want %d", s.MaxHistory(), DefaultMaxHistory)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALOnFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablez.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	var name string
	err := db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='attempts'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "attempts" {
		t.Errorf("table name = %q, want 'attempts'", name)
	}

	var indexes int
	err = db.QueryRow(
		"SELECT count(*) FROM sqlite_master WHERE type='index' AND tbl_name='attempts' AND name LIKE 'attempt_%'",
	).Scan(&indexes)
	if err != nil {
		t.Fatalf("query indexes: %v", err)
	}
	if indexes != 3 {
		t.Errorf("indexes = %d, want 3", indexes)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablez.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	mustRecord(t, s, 4, 4, true, 900)
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	n, err := s.CountTable(context.Background(), 4)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count after reopen = %d, want 1", n)
	}
}

func TestRecordStampsClockAndID(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := openTestStore(t, WithClock(clk))

	first := mustRecord(t, s, 3, 4, true, 1200)
	clk.Advance(time.Second)
	second := mustRecord(t, s, 3, 4, false, 800)

	if first.Timestamp != epoch.UnixMilli() {
		t.Errorf("first timestamp = %d, want %d", first.Timestamp, epoch.UnixMilli())
	}
	if second.Timestamp-first.Timestamp != 1000 {
		t.Errorf("timestamp delta = %d, want 1000", second.Timestamp-first.Timestamp)
	}
	if second.ID <= first.ID {
		t.Errorf("ids not increasing: %d then %d", first.ID, second.ID)
	}
	if !first.Time().Equal(epoch) {
		t.Errorf("Time() = %v, want %v", first.Time(), epoch)
	}

	got, err := s.ByFact(context.Background(), facts.New(3, 4))
	if err != nil {
		t.Fatalf("by fact: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != first || got[1] != second {
		t.Errorf("stored attempts = %+v, want %+v and %+v", got, first, second)
	}
}

func TestRecordValidation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		table, mult int
		elapsed     int64
	}{
		{"table zero", 0, 3, 10},
		{"table thirteen", 13, 3, 10},
		{"multiplicand zero", 3, 0, 10},
		{"multiplicand thirteen", 3, 13, 10},
		{"negative elapsed", 3, 3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Record(ctx, tt.table, tt.mult, true, tt.elapsed)
			if !errors.Is(err, facts.ErrOutOfRange) {
				t.Errorf("err = %v, want ErrOutOfRange", err)
			}
			var se *StorageError
			if errors.As(err, &se) {
				t.Errorf("validation error reported as storage error: %v", err)
			}
		})
	}

	var total int
	if err := s.DB().QueryRow("SELECT count(*) FROM attempts").Scan(&total); err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 0 {
		t.Errorf("rows written = %d, want 0", total)
	}
}

func TestRetentionBound(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := openTestStore(t, WithClock(clk))
	ctx := context.Background()
	f := facts.New(7, 8)

	var first Attempt
	for i := 0; i < DefaultMaxHistory+1; i++ {
		a := mustRecord(t, s, f.Table, f.Multiplicand, i%2 == 0, int64(1000+i))
		if i == 0 {
			first = a
		}
		clk.Advance(time.Millisecond)
	}

	n, err := s.CountFact(ctx, f)
	if err != nil {
		t.Fatalf("count fact: %v", err)
	}
	if n != DefaultMaxHistory {
		t.Errorf("count = %d, want %d", n, DefaultMaxHistory)
	}

	got, err := s.ByFact(ctx, f)
	if err != nil {
		t.Fatalf("by fact: %v", err)
	}
	for _, a := range got {
		if a.ID == first.ID {
			t.Fatalf("oldest attempt %d survived pruning", first.ID)
		}
	}
	if got[0].ElapsedMs != 1001 {
		t.Errorf("oldest remaining elapsed = %d, want 1001", got[0].ElapsedMs)
	}
}

func TestRetentionTiesBrokenByID(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := openTestStore(t, WithClock(clk), WithMaxHistory(3))

	var ids []int64
	for i := 0; i < 4; i++ {
		ids = append(ids, mustRecord(t, s, 2, 2, true, 100).ID)
	}

	got, err := s.ByFact(context.Background(), facts.New(2, 2))
	if err != nil {
		t.Fatalf("by fact: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, a := range got {
		if a.ID != ids[i+1] {
			t.Errorf("got[%d].ID = %d, want %d", i, a.ID, ids[i+1])
		}
	}
}

func TestRetentionIsPerFact(t *testing.T) {
	s := openTestStore(t, WithMaxHistory(2))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustRecord(t, s, 5, 1, true, 100)
		mustRecord(t, s, 5, 2, true, 100)
	}

	n, err := s.CountTable(ctx, 5)
	if err != nil {
		t.Fatalf("count table: %v", err)
	}
	if n != 4 {
		t.Errorf("count = %d, want 4", n)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t, WithMaxHistory(3))
	ctx := context.Background()

	// Rows written behind the store's back, as an older build with a larger
	// bound would have left them.
	for i := 0; i < 5; i++ {
		_, err := s.DB().Exec(
			"INSERT INTO attempts (times_table, multiplicand, correct, elapsed_ms, timestamp) VALUES (?, ?, ?, ?, ?)",
			9, 9, true, 100, epoch.UnixMilli()+int64(i),
		)
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	removed, err := s.Prune(ctx, facts.New(9, 9))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	got, err := s.ByFact(ctx, facts.New(9, 9))
	if err != nil {
		t.Fatalf("by fact: %v", err)
	}
	if len(got) != 3 || got[0].Timestamp != epoch.UnixMilli()+2 {
		t.Errorf("remaining = %+v, want the 3 newest", got)
	}

	removed, err = s.Prune(ctx, facts.New(9, 9))
	if err != nil {
		t.Fatalf("prune again: %v", err)
	}
	if removed != 0 {
		t.Errorf("second prune removed = %d, want 0", removed)
	}
}

func TestQueries(t *testing.T) {
	clk := clock.NewManual(epoch)
	s := openTestStore(t, WithClock(clk))
	ctx := context.Background()

	record := func(table, mult int) Attempt {
		a := mustRecord(t, s, table, mult, true, 500)
		clk.Advance(time.Second)
		return a
	}
	a1 := record(3, 1)
	record(4, 1)
	a3 := record(3, 2)
	record(5, 5)
	a5 := record(3, 1)

	t.Run("by table oldest first", func(t *testing.T) {
		got, err := s.ByTable(ctx, 3)
		if err != nil {
			t.Fatalf("by table: %v", err)
		}
		if len(got) != 3 || got[0].ID != a1.ID || got[1].ID != a3.ID || got[2].ID != a5.ID {
			t.Errorf("ByTable(3) = %+v", got)
		}
	})

	t.Run("by tables any of", func(t *testing.T) {
		got, err := s.ByTables(ctx, []int{3, 5})
		if err != nil {
			t.Fatalf("by tables: %v", err)
		}
		if len(got) != 4 {
			t.Errorf("len = %d, want 4", len(got))
		}
		for _, a := range got {
			if a.Table == 4 {
				t.Errorf("unexpected table 4 attempt %+v", a)
			}
		}
	})

	t.Run("by tables empty", func(t *testing.T) {
		got, err := s.ByTables(ctx, nil)
		if err != nil {
			t.Fatalf("by tables: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("by fact", func(t *testing.T) {
		got, err := s.ByFact(ctx, facts.New(3, 1))
		if err != nil {
			t.Fatalf("by fact: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("recent newest first", func(t *testing.T) {
		got, err := s.RecentByTable(ctx, 3, 2)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		if len(got) != 2 || got[0].ID != a5.ID || got[1].ID != a3.ID {
			t.Errorf("RecentByTable(3, 2) = %+v", got)
		}
	})

	t.Run("counts", func(t *testing.T) {
		n, err := s.CountTable(ctx, 3)
		if err != nil || n != 3 {
			t.Errorf("CountTable(3) = %d, %v; want 3", n, err)
		}
		n, err = s.CountFact(ctx, facts.New(3, 1))
		if err != nil || n != 2 {
			t.Errorf("CountFact(3x1) = %d, %v; want 2", n, err)
		}
		n, err = s.CountTable(ctx, 12)
		if err != nil || n != 0 {
			t.Errorf("CountTable(12) = %d, %v; want 0", n, err)
		}
	})
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	mustRecord(t, s, 1, 1, true, 10)
	mustRecord(t, s, 2, 2, false, 10)

	removed, err := s.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	n, err := s.CountTable(ctx, 1)
	if err != nil || n != 0 {
		t.Errorf("count after reset = %d, %v; want 0", n, err)
	}
}

func TestStorageErrorAfterClose(t *testing.T) {
	s, err := Open(testDSN())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Close()

	ctx := context.Background()
	checks := map[string]func() error{
		"record":   func() error { _, err := s.Record(ctx, 3, 3, true, 10); return err },
		"by table": func() error { _, err := s.ByTable(ctx, 3); return err },
		"count":    func() error { _, err := s.CountTable(ctx, 3); return err },
		"prune":    func() error { _, err := s.Prune(ctx, facts.New(3, 3)); return err },
	}
	for name, fn := range checks {
		err := fn()
		var se *StorageError
		if !errors.As(err, &se) {
			t.Errorf("%s: err = %v, want *StorageError", name, err)
			continue
		}
		if se.Unwrap() == nil {
			t.Errorf("%s: storage error has no cause", name)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "sub", "custom.db")
		t.Setenv("TABLEZ_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("TABLEZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if want := filepath.Join(dir, "tablez", "tablez.db"); got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
