package summary

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablez/internal/facts"
	"github.com/abhisek/tablez/internal/router"
	"github.com/abhisek/tablez/internal/session"
)

func testSummary() session.Summary {
	return session.BuildSummary(session.Setup{Scope: []int{3, 7}, Count: 3}, []session.Answer{
		{Fact: facts.New(3, 4), Value: 12, Correct: true, ElapsedMs: 1000},
		{Fact: facts.New(7, 7), Value: 48, Correct: false, ElapsedMs: 2000},
		{Fact: facts.New(3, 9), Value: 27, Correct: true, ElapsedMs: 1500},
	})
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Quiz Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Quiz complete!", "2/3", "67%", "1.5s", "3×4=12", "7×7=48", "Try again"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (try again)")
	}
}

func TestSummaryScreen_MenuBack(t *testing.T) {
	s := New(testSummary())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected \"Back to tables\" to pop the summary")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

// runSequence executes a tea.Sequence command and returns the messages of
// its steps, in order.
func runSequence(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		t.Fatalf("expected a sequence, got %T", msg)
	}
	var out []tea.Msg
	for i := range v.Len() {
		step, ok := v.Index(i).Interface().(tea.Cmd)
		if !ok {
			t.Fatalf("step %d is %T, not a tea.Cmd", i, v.Index(i).Interface())
		}
		out = append(out, step())
	}
	return out
}

func TestSummaryScreen_TryAgainShortcut(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	if cmd == nil {
		t.Fatal("expected a command on T")
	}

	msgs := runSequence(t, cmd)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if _, ok := msgs[0].(router.PopScreenMsg); !ok {
		t.Errorf("first message = %T, want PopScreenMsg", msgs[0])
	}
	again, ok := msgs[1].(TryAgainMsg)
	if !ok {
		t.Fatalf("second message = %T, want TryAgainMsg", msgs[1])
	}
	if !slices.Equal(again.Setup.Scope, []int{3, 7}) || again.Setup.Count != 3 {
		t.Errorf("setup = %+v, want tables [3 7] and 3 questions", again.Setup)
	}
}

func TestSummaryScreen_BackShortcut(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if cmd == nil {
		t.Fatal("expected a command on B")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected B to pop the summary")
	}
}
