package session

import (
	"slices"

	"github.com/abhisek/tablez/internal/facts"
)

// Phase represents the current phase of a quiz.
type Phase int

const (
	PhaseSelecting    Phase = iota // Choosing tables and question count
	PhaseRunning                   // Serving questions
	PhaseFinished                  // All answers saved, summary available
	PhaseCommitFailed              // Last answer given but saving failed
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	case PhaseCommitFailed:
		return "commit failed"
	default:
		return "unknown"
	}
}

// Setup is what the learner picks before a quiz starts.
type Setup struct {
	Scope []int
	Count int
}

// Normalized returns a copy with the scope filtered, deduplicated and
// sorted.
func (s Setup) Normalized() Setup {
	return Setup{Scope: facts.NormalizeScope(s.Scope), Count: s.Count}
}

// CanStart reports whether at least one valid table is selected and the
// count is positive.
func (s Setup) CanStart() bool {
	return len(facts.NormalizeScope(s.Scope)) > 0 && s.Count > 0
}

// Toggle adds table to the scope, or removes it if present.
func (s Setup) Toggle(table int) Setup {
	scope := slices.Clone(s.Scope)
	if i := slices.Index(scope, table); i >= 0 {
		scope = slices.Delete(scope, i, i+1)
	} else if facts.InRange(table) {
		scope = append(scope, table)
	}
	return Setup{Scope: facts.NormalizeScope(scope), Count: s.Count}
}

// Has reports whether table is selected.
func (s Setup) Has(table int) bool {
	return slices.Contains(s.Scope, table)
}

// Answer is one submitted answer.
type Answer struct {
	Fact      facts.Fact
	Value     int
	Correct   bool
	ElapsedMs int64
}
