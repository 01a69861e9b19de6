package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/tablez/internal/sampler"
)

var (
	// ErrInvalidScope is returned when no selected table is in range.
	ErrInvalidScope = sampler.ErrInvalidScope

	// ErrInvalidCount is returned when the question count is not positive.
	ErrInvalidCount = errors.New("question count must be positive")

	// ErrNotRunning is returned when answering a quiz that is not running.
	ErrNotRunning = errors.New("session is not running")
)

// CommitError reports that a finished quiz could not be saved in full.
// Answers before Saved are stored; the rest are retried by Session.Commit.
type CommitError struct {
	Saved int
	Total int
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("save answers: %d of %d saved: %v", e.Saved, e.Total, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
