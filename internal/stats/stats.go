// Package stats computes accuracy and latency figures over the most recent
// attempts of a times table.
//
// Only correct attempts contribute to latency: a fast wrong guess is not a
// fast answer. A latency of 0 means there is no data, never an instant
// answer.
package stats

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/abhisek/tablez/internal/store"
)

// RecentWindow is the number of most recent attempts per table that the
// figures are computed over.
const RecentWindow = 30

// Recent returns at most n attempts ordered newest first (timestamp, then
// id, descending). The input is not modified.
func Recent(attempts []store.Attempt, n int) []store.Attempt {
	sorted := slices.Clone(attempts)
	slices.SortFunc(sorted, func(a, b store.Attempt) int {
		if c := cmp.Compare(b.Timestamp, a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Accuracy returns round(100 * correct / len(attempts)), or 0 when there are
// no attempts.
func Accuracy(attempts []store.Attempt) int {
	if len(attempts) == 0 {
		return 0
	}
	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(attempts))))
}

// AverageLatency returns the rounded mean elapsed time of the correct
// attempts, or 0 when none were correct.
func AverageLatency(attempts []store.Attempt) int64 {
	times := correctTimes(attempts)
	if len(times) == 0 {
		return 0
	}
	var sum int64
	for _, ms := range times {
		sum += ms
	}
	return int64(math.Round(float64(sum) / float64(len(times))))
}

// MedianLatency returns the median elapsed time of the correct attempts. An
// even sample averages the two middle values, rounded. 0 when none were
// correct.
func MedianLatency(attempts []store.Attempt) int64 {
	times := correctTimes(attempts)
	if len(times) == 0 {
		return 0
	}
	slices.Sort(times)
	mid := len(times) / 2
	if len(times)%2 == 1 {
		return times[mid]
	}
	return int64(math.Round(float64(times[mid-1]+times[mid]) / 2))
}

func correctTimes(attempts []store.Attempt) []int64 {
	var times []int64
	for _, a := range attempts {
		if a.Correct {
			times = append(times, a.ElapsedMs)
		}
	}
	return times
}

// FormatSeconds renders a millisecond latency as seconds with one decimal,
// e.g. 1500 as "1.5s".
func FormatSeconds(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
