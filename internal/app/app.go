package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablez/internal/router"
	"github.com/abhisek/tablez/internal/screen"
	"github.com/abhisek/tablez/internal/screens/history"
	"github.com/abhisek/tablez/internal/screens/home"
	sessionscreen "github.com/abhisek/tablez/internal/screens/session"
	"github.com/abhisek/tablez/internal/screens/welcome"
	sess "github.com/abhisek/tablez/internal/session"
	"github.com/abhisek/tablez/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	// Dashboard supplies the per-table stats on the home screen.
	Dashboard home.Dashboarder

	// Starter starts quizzes.
	Starter sessionscreen.Starter

	// History and Weigher back the per-table details screen. Both are
	// optional.
	History history.Source
	Weigher history.Weigher

	// Setup is preselected on the home screen.
	Setup sess.Setup

	// Status is shown on the right of the header, e.g. the database name.
	Status string

	// Splash plays the intro before the dashboard.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Dashboard: opts.Dashboard,
		Starter:   opts.Starter,
		History:   opts.History,
		Weigher:   opts.Weigher,
	}, opts.Setup)
	var first screen.Screen = homeScreen
	if opts.Splash {
		first = welcome.New(func() screen.Screen { return homeScreen })
	}
	return AppModel{
		router: router.New(first),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.BackHandler); ok && h.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok && len(hp.KeyHints()) > 0 {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
