package sampler

import (
	"math"
	"time"

	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/store"
)

const (
	// UnseenWeight is the weight of a fact that was never answered.
	UnseenWeight = 100

	// ShortWindow is how many of a fact's newest attempts count towards the
	// "recently missed" boost.
	ShortWindow = 5

	// LongWindow is how many of a fact's newest attempts the error rate is
	// computed over.
	LongWindow = 30

	// DefaultPenaltyWindow is how long after an attempt its fact is
	// de-prioritised.
	DefaultPenaltyWindow = 60 * time.Second

	missWeight    = 10
	errorRateSpan = 10
	recentPenalty = 2
)

// Weight scores one fact from its attempt history, in any order. Higher
// weights are drawn more often:
//
//	unseen                          100
//	otherwise                       1 + 10*wrong(newest 5) + round(10*errorRate(newest 30))
//	newest attempt within penalty   max(1, weight-2)
func Weight(history []store.Attempt, now time.Time, penalty time.Duration) int {
	if len(history) == 0 {
		return UnseenWeight
	}

	recent := stats.Recent(history, LongWindow)
	short := recent[:min(ShortWindow, len(recent))]

	w := 1 + missWeight*countWrong(short)
	rate := float64(countWrong(recent)) / float64(len(recent))
	w += int(math.Round(rate * errorRateSpan))

	if now.UnixMilli()-recent[0].Timestamp < penalty.Milliseconds() {
		w = max(1, w-recentPenalty)
	}
	return w
}

func countWrong(attempts []store.Attempt) int {
	n := 0
	for _, a := range attempts {
		if !a.Correct {
			n++
		}
	}
	return n
}
