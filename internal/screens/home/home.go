package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablez/internal/facts"
	"github.com/abhisek/tablez/internal/router"
	"github.com/abhisek/tablez/internal/screen"
	"github.com/abhisek/tablez/internal/screens/history"
	sessionscreen "github.com/abhisek/tablez/internal/screens/session"
	"github.com/abhisek/tablez/internal/screens/summary"
	sess "github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/stats"
	"github.com/abhisek/tablez/internal/ui/layout"
)

const (
	gridColumns = 4
	maxCount    = 99
)

// Dashboarder supplies per-table stats. *stats.Engine satisfies it.
type Dashboarder interface {
	Dashboard(ctx context.Context) ([]stats.TableStats, error)
}

// Deps holds what the home screen and the screens it opens need.
type Deps struct {
	Dashboard Dashboarder
	Starter   sessionscreen.Starter
	History   history.Source
	Weigher   history.Weigher
}

// dashboardMsg carries freshly loaded stats.
type dashboardMsg struct {
	Rows []stats.TableStats
	Err  error
}

// HomeScreen shows every table's stats and lets the learner pick the tables
// and question count for the next quiz.
type HomeScreen struct {
	deps    Deps
	setup   sess.Setup
	rows    []stats.TableStats
	cursor  int
	loading bool
	errMsg  string
	notice  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen preselecting setup.
func New(deps Deps, setup sess.Setup) *HomeScreen {
	if setup.Count <= 0 {
		setup.Count = 1
	}
	return &HomeScreen{
		deps:    deps,
		setup:   setup.Normalized(),
		loading: true,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDashboard()
}

// Resume reloads stats after a quiz screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadDashboard()
}

func (h *HomeScreen) Title() string {
	return "Times Tables"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "+/-", Description: "Count"},
		{Key: "D", Description: "Details"},
		{Key: "Enter", Description: "Start"},
		{Key: "Q", Description: "Quit"},
	}
}

// Setup returns the current selection.
func (h *HomeScreen) Setup() sess.Setup {
	return h.setup
}

func (h *HomeScreen) loadDashboard() tea.Cmd {
	dash := h.deps.Dashboard
	return func() tea.Msg {
		rows, err := dash.Dashboard(context.Background())
		return dashboardMsg{Rows: rows, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		h.loading = false
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.rows = msg.Rows
		return h, nil

	case summary.TryAgainMsg:
		h.setup = msg.Setup.Normalized()
		h.notice = ""
		return h, nil

	case history.PracticeMsg:
		h.setup = sess.Setup{Scope: []int{msg.Table}, Count: h.setup.Count}.Normalized()
		if facts.InRange(msg.Table) {
			h.cursor = msg.Table - facts.MinTable
		}
		h.notice = ""
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	tables := len(facts.AllTables())

	switch msg.String() {
	case "left", "h":
		if h.cursor%gridColumns > 0 {
			h.cursor--
		}
	case "right", "l":
		if h.cursor%gridColumns < gridColumns-1 && h.cursor+1 < tables {
			h.cursor++
		}
	case "up", "k":
		if h.cursor-gridColumns >= 0 {
			h.cursor -= gridColumns
		}
	case "down", "j":
		if h.cursor+gridColumns < tables {
			h.cursor += gridColumns
		}
	case "space", " ", "x":
		h.setup = h.setup.Toggle(h.cursor + facts.MinTable)
		h.notice = ""
	case "a":
		if len(h.setup.Scope) == tables {
			h.setup.Scope = nil
		} else {
			h.setup.Scope = facts.AllTables()
		}
		h.notice = ""
	case "+", "=":
		h.setup.Count = min(h.setup.Count+1, maxCount)
	case "-", "_":
		h.setup.Count = max(h.setup.Count-1, 1)
	case "d":
		if h.deps.History == nil || h.deps.Weigher == nil {
			return h, nil
		}
		details := history.New(h.deps.History, h.deps.Weigher, h.cursor+facts.MinTable)
		return h, func() tea.Msg {
			return router.PushScreenMsg{Screen: details}
		}
	case "r":
		h.loading = true
		return h, h.loadDashboard()
	case "q":
		return h, tea.Quit
	case "enter":
		return h.start()
	}
	return h, nil
}

// start pushes a quiz for the current selection, if one can start.
func (h *HomeScreen) start() (screen.Screen, tea.Cmd) {
	if !h.setup.CanStart() {
		h.notice = "Pick at least one table first."
		return h, nil
	}
	h.notice = ""
	quiz := sessionscreen.New(h.deps.Starter, h.setup)
	return h, func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz}
	}
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || height < 28
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.rows), cw))
	}

	switch {
	case h.errMsg != "":
		sections = append(sections, renderError(h.errMsg, cw))
	case h.loading && h.rows == nil:
		sections = append(sections, renderLoading(cw))
	default:
		sections = append(sections, renderGrid(h.rows, h.setup, h.cursor, cw))
	}

	sections = append(sections, renderSetupBar(h.setup, h.notice, cw))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	content := strings.Join(sections, sep)
	if compact {
		return content
	}
	return renderCabinetFrame(content, width, height)
}

// mascotFor picks the mascot mood from the dashboard.
func mascotFor(rows []stats.TableStats) MascotVariant {
	practised, strong := 0, 0
	for _, ts := range rows {
		if !ts.HasData() {
			continue
		}
		practised++
		switch ts.AccuracyRating() {
		case stats.RatingBad:
			return MascotAlert
		case stats.RatingGood, stats.RatingExcellent:
			strong++
		}
	}
	if practised > 0 && strong == len(facts.AllTables()) {
		return MascotCelebrating
	}
	return MascotIdle
}
