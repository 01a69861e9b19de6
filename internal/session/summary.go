package session

import (
	"math"
	"slices"
)

// TableResults groups the answers of one table, in answer order.
type TableResults struct {
	Table   int
	Answers []Answer
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Total     int
	Correct   int
	AverageMs int64 // mean over every answer, right or wrong
	Accuracy  int   // rounded percent
	ByTable   []TableResults
	Setup     Setup
}

// BuildSummary derives a Summary from a finished quiz. Groups are ordered by
// ascending table.
func BuildSummary(setup Setup, answers []Answer) Summary {
	sum := Summary{
		Total: len(answers),
		Setup: Setup{Scope: slices.Clone(setup.Scope), Count: setup.Count},
	}

	var totalMs int64
	groups := make(map[int]*TableResults)
	for _, a := range answers {
		if a.Correct {
			sum.Correct++
		}
		totalMs += a.ElapsedMs

		g, ok := groups[a.Fact.Table]
		if !ok {
			g = &TableResults{Table: a.Fact.Table}
			groups[a.Fact.Table] = g
		}
		g.Answers = append(g.Answers, a)
	}

	if sum.Total > 0 {
		sum.AverageMs = int64(math.Round(float64(totalMs) / float64(sum.Total)))
		sum.Accuracy = int(math.Round(100 * float64(sum.Correct) / float64(sum.Total)))
	}

	sum.ByTable = make([]TableResults, 0, len(groups))
	for _, g := range groups {
		sum.ByTable = append(sum.ByTable, *g)
	}
	slices.SortFunc(sum.ByTable, func(a, b TableResults) int {
		return a.Table - b.Table
	})
	return sum
}
