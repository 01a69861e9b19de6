package session

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablez/internal/router"
	"github.com/abhisek/tablez/internal/screen"
	"github.com/abhisek/tablez/internal/screens/summary"
	sess "github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/ui/components"
	"github.com/abhisek/tablez/internal/ui/layout"
)

// Starter begins a quiz. *sess.Runner satisfies it.
type Starter interface {
	Start(ctx context.Context, setup sess.Setup) (*sess.Session, error)
}

// SessionScreen implements screen.Screen for a running quiz.
type SessionScreen struct {
	starter            Starter
	setup              sess.Setup
	state              *sess.Session
	input              components.TextInput
	last               *sess.Answer
	showingQuitConfirm bool
	errMsg             string
	commitErr          string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a SessionScreen that starts a quiz for setup on Init.
func New(starter Starter, setup sess.Setup) *SessionScreen {
	return &SessionScreen{
		starter: starter,
		setup:   setup,
		input:   newAnswerInput(),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("?", true, 4)
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.initSession(),
		s.input.Init(),
	)
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

// HandlesBack keeps Esc inside the screen so leaving a quiz is confirmed.
func (s *SessionScreen) HandlesBack() bool {
	return s.state != nil && s.errMsg == ""
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Phase() == sess.PhaseCommitFailed {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry save"},
			{Key: "Esc", Description: "Discard"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-9", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.state == nil {
		return renderLoading(width, height)
	}
	if s.showingQuitConfirm {
		return s.renderQuitConfirm(width, height)
	}
	if s.state.Phase() == sess.PhaseCommitFailed {
		return s.renderCommitFailed(width, height)
	}
	return s.renderQuestionView(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward to input while a question is up.
	if s.answering() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// initSession draws the questions off the UI goroutine.
func (s *SessionScreen) initSession() tea.Cmd {
	starter, setup := s.starter, s.setup
	return func() tea.Msg {
		state, err := starter.Start(context.Background(), setup)
		return sessionInitMsg{Session: state, Err: err}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.Session
	s.state.Present()
	return s, s.input.Init()
}

func (s *SessionScreen) answering() bool {
	return s.state != nil && s.errMsg == "" && !s.showingQuitConfirm && s.state.Phase() == sess.PhaseRunning
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, popScreen
	}

	if s.state == nil {
		return s, nil
	}

	// Quit confirmation dialog.
	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, popScreen
		case "n", "N", "esc":
			s.showingQuitConfirm = false
			if s.state.Phase() == sess.PhaseRunning {
				s.state.Present()
			}
			return s, nil
		}
		return s, nil
	}

	if s.state.Phase() == sess.PhaseCommitFailed {
		switch key {
		case "r", "R":
			return s.finish(s.state.Commit(context.Background()))
		case "esc":
			s.showingQuitConfirm = true
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer grades the typed value. Blank input is ignored.
func (s *SessionScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	if s.input.Value() == "" {
		return s, nil
	}
	value, err := s.input.NumericValue()
	if err != nil {
		s.input.Reset()
		return s, nil
	}

	a, err := s.state.Submit(context.Background(), value)
	if errors.Is(err, sess.ErrNotRunning) {
		return s, nil
	}
	s.last = &a
	s.input.Reset()
	if s.state.Phase() == sess.PhaseRunning {
		return s, nil
	}
	return s.finish(err)
}

// finish moves to the summary once every answer is saved.
func (s *SessionScreen) finish(err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		s.commitErr = err.Error()
		return s, nil
	}
	s.commitErr = ""

	sum, ok := s.state.Summary()
	if !ok {
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}
