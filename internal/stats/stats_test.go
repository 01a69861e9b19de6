package stats

import (
	"testing"

	"github.com/abhisek/tablez/internal/store"
)

// attempts builds a newest-first history from (correct, elapsed) pairs.
func attempts(results ...any) []store.Attempt {
	var out []store.Attempt
	for i := 0; i+1 < len(results); i += 2 {
		n := int64(len(results)/2 - i/2)
		out = append(out, store.Attempt{
			ID:        n,
			Table:     3,
			Correct:   results[i].(bool),
			ElapsedMs: int64(results[i+1].(int)),
			Timestamp: 1000 * n,
		})
	}
	return out
}

func repeat(n int, correct bool, elapsed int) []store.Attempt {
	var out []store.Attempt
	for i := 0; i < n; i++ {
		out = append(out, store.Attempt{ID: int64(i + 1), Correct: correct, ElapsedMs: int64(elapsed), Timestamp: int64(i)})
	}
	return out
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name string
		in   []store.Attempt
		want int
	}{
		{"no attempts", nil, 0},
		{"seven of ten", append(repeat(7, true, 100), repeat(3, false, 100)...), 70},
		{"all wrong", repeat(4, false, 100), 0},
		{"all right", repeat(4, true, 100), 100},
		{"two of three rounds", append(repeat(2, true, 100), repeat(1, false, 100)...), 67},
		{"one of eight rounds half up", append(repeat(1, true, 100), repeat(7, false, 100)...), 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accuracy(tt.in); got != tt.want {
				t.Errorf("Accuracy() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAverageLatency(t *testing.T) {
	tests := []struct {
		name string
		in   []store.Attempt
		want int64
	}{
		{"no attempts", nil, 0},
		{"only incorrect", attempts(false, 500, false, 900), 0},
		{"ignores incorrect", attempts(true, 1000, false, 50, true, 2000), 1500},
		{"rounds", attempts(true, 1, true, 2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageLatency(tt.in); got != tt.want {
				t.Errorf("AverageLatency() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMedianLatency(t *testing.T) {
	tests := []struct {
		name string
		in   []store.Attempt
		want int64
	}{
		{"no attempts", nil, 0},
		{"only incorrect", attempts(false, 500), 0},
		{"even sample", attempts(true, 300, true, 100, true, 400, true, 200), 250},
		{"odd sample", attempts(true, 300, true, 100, true, 200), 200},
		{"even rounds", attempts(true, 100, true, 101), 101},
		{"ignores incorrect", attempts(true, 300, false, 1, true, 100, true, 200), 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MedianLatency(tt.in); got != tt.want {
				t.Errorf("MedianLatency() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecent(t *testing.T) {
	in := []store.Attempt{
		{ID: 1, Timestamp: 10},
		{ID: 3, Timestamp: 30},
		{ID: 2, Timestamp: 30},
		{ID: 4, Timestamp: 20},
	}

	got := Recent(in, 3)
	wantIDs := []int64{3, 2, 4}
	if len(got) != len(wantIDs) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
	if in[0].ID != 1 {
		t.Error("input was reordered")
	}

	if got := Recent(in, 10); len(got) != 4 {
		t.Errorf("Recent(in, 10) len = %d, want 4", len(got))
	}
	if got := Recent(in, 0); len(got) != 0 {
		t.Errorf("Recent(in, 0) len = %d, want 0", len(got))
	}
}

func TestRateAccuracy(t *testing.T) {
	tests := []struct {
		pct  int
		want Rating
	}{
		{100, RatingExcellent},
		{95, RatingExcellent},
		{94, RatingGood},
		{85, RatingGood},
		{84, RatingAverage},
		{70, RatingAverage},
		{69, RatingBad},
		{0, RatingBad},
	}
	for _, tt := range tests {
		if got := RateAccuracy(tt.pct); got != tt.want {
			t.Errorf("RateAccuracy(%d) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestRateTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want Rating
	}{
		{0, RatingNone},
		{1, RatingExcellent},
		{1499, RatingExcellent},
		{1500, RatingGood},
		{2999, RatingGood},
		{3000, RatingAverage},
		{5999, RatingAverage},
		{6000, RatingBad},
	}
	for _, tt := range tests {
		if got := RateTime(tt.ms); got != tt.want {
			t.Errorf("RateTime(%d) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestRatingString(t *testing.T) {
	if RatingExcellent.String() != "excellent" || RatingNone.String() != "none" {
		t.Errorf("unexpected names %q %q", RatingExcellent, RatingNone)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0.0s"},
		{1500, "1.5s"},
		{999, "1.0s"},
		{12340, "12.3s"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.ms); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
