// Package session runs a fixed-length times-tables quiz. Answers are kept in
// memory and written to the attempt store only once the last question is
// answered, so an abandoned quiz leaves no trace.
package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/tablez/internal/clock"
	"github.com/abhisek/tablez/internal/facts"
	"github.com/abhisek/tablez/internal/logging"
	"github.com/abhisek/tablez/internal/store"
)

// QuestionSource draws the questions of a quiz.
type QuestionSource interface {
	Sample(ctx context.Context, scope []int, count int) ([]facts.Fact, error)
}

// Recorder persists one answer.
type Recorder interface {
	Record(ctx context.Context, table, multiplicand int, correct bool, elapsedMs int64) (store.Attempt, error)
}

// Runner starts quizzes.
type Runner struct {
	questions QuestionSource
	recorder  Recorder
	clock     clock.Clock
	logger    *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the clock used to time answers.
func WithClock(c clock.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner returns a Runner drawing from q and saving through rec.
func NewRunner(q QuestionSource, rec Recorder, opts ...Option) *Runner {
	r := &Runner{
		questions: q,
		recorder:  rec,
		clock:     clock.System(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start draws the questions for setup and begins timing the first one.
func (r *Runner) Start(ctx context.Context, setup Setup) (*Session, error) {
	setup = setup.Normalized()
	if len(setup.Scope) == 0 {
		return nil, ErrInvalidScope
	}
	if setup.Count <= 0 {
		return nil, ErrInvalidCount
	}

	questions, err := r.questions.Sample(ctx, setup.Scope, setup.Count)
	if err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrInvalidScope
	}

	s := &Session{
		id:        uuid.NewString(),
		runner:    r,
		setup:     setup,
		questions: questions,
		answers:   make([]Answer, 0, len(questions)),
		phase:     PhaseRunning,
		startedAt: r.clock.Now(),
	}
	s.shownAt = s.startedAt
	r.logger.Info("session started", "id", s.id, "scope", setup.Scope, "questions", len(questions))
	return s, nil
}

// Session is one quiz. It is not safe for concurrent use.
type Session struct {
	id        string
	runner    *Runner
	setup     Setup
	questions []facts.Fact
	answers   []Answer
	saved     int
	phase     Phase
	startedAt time.Time
	shownAt   time.Time
	summary   *Summary
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Setup returns the normalised setup the quiz was started with.
func (s *Session) Setup() Setup { return s.setup }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based position of the current question. It equals
// Len once every question is answered.
func (s *Session) Index() int { return len(s.answers) }

// Questions returns a copy of the drawn questions.
func (s *Session) Questions() []facts.Fact { return slices.Clone(s.questions) }

// Answers returns a copy of the answers given so far.
func (s *Session) Answers() []Answer { return slices.Clone(s.answers) }

// Current returns the question awaiting an answer.
func (s *Session) Current() (facts.Fact, bool) {
	if s.phase != PhaseRunning || len(s.answers) >= len(s.questions) {
		return facts.Fact{}, false
	}
	return s.questions[len(s.answers)], true
}

// Present marks the current question as displayed now. Timing of the answer
// starts from the latest call.
func (s *Session) Present() {
	s.shownAt = s.runner.clock.Now()
}

// Submit answers the current question, timing it from when it was
// presented.
func (s *Session) Submit(ctx context.Context, value int) (Answer, error) {
	return s.SubmitElapsed(ctx, value, s.runner.clock.Now().Sub(s.shownAt))
}

// SubmitElapsed answers the current question with a caller-measured
// duration. Negative durations count as zero. Answering the last question
// saves every answer; on failure the answer is kept, the phase becomes
// PhaseCommitFailed and a *CommitError is returned.
func (s *Session) SubmitElapsed(ctx context.Context, value int, elapsed time.Duration) (Answer, error) {
	q, ok := s.Current()
	if !ok {
		return Answer{}, ErrNotRunning
	}

	a := Answer{
		Fact:      q,
		Value:     value,
		Correct:   q.Check(value),
		ElapsedMs: max(elapsed.Milliseconds(), 0),
	}
	s.answers = append(s.answers, a)
	s.runner.logger.Debug("answer", "id", s.id, "fact", q, "value", value, "correct", a.Correct, "elapsed_ms", a.ElapsedMs)

	if len(s.answers) < len(s.questions) {
		s.Present()
		return a, nil
	}
	return a, s.commit(ctx)
}

// Commit retries saving after a failed commit, starting from the first
// unsaved answer. It is a no-op once the quiz is finished.
func (s *Session) Commit(ctx context.Context) error {
	switch s.phase {
	case PhaseFinished:
		return nil
	case PhaseCommitFailed:
		return s.commit(ctx)
	default:
		return ErrNotRunning
	}
}

func (s *Session) commit(ctx context.Context) error {
	for s.saved < len(s.answers) {
		a := s.answers[s.saved]
		if _, err := s.runner.recorder.Record(ctx, a.Fact.Table, a.Fact.Multiplicand, a.Correct, a.ElapsedMs); err != nil {
			s.phase = PhaseCommitFailed
			s.runner.logger.Error("saving answers failed", "id", s.id, "saved", s.saved, "total", len(s.answers), "err", err)
			return &CommitError{Saved: s.saved, Total: len(s.answers), Err: err}
		}
		s.saved++
	}

	sum := BuildSummary(s.setup, s.answers)
	s.summary = &sum
	s.phase = PhaseFinished
	s.runner.logger.Info("session finished",
		"id", s.id,
		"correct", sum.Correct,
		"total", sum.Total,
		"duration", s.runner.clock.Now().Sub(s.startedAt).Round(time.Second),
	)
	return nil
}

// Saved returns how many answers have been written to the store.
func (s *Session) Saved() int { return s.saved }

// Summary returns the quiz summary once every answer is saved.
func (s *Session) Summary() (Summary, bool) {
	if s.summary == nil {
		return Summary{}, false
	}
	return *s.summary, true
}

// TryAgain returns the setup for another quiz with the same tables and
// question count.
func (s *Session) TryAgain() Setup {
	return Setup{Scope: slices.Clone(s.setup.Scope), Count: s.setup.Count}
}
