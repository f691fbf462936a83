// Package tui provides the Bubble Tea lecture editor.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lectern/internal/alert"
	"github.com/verte-zerg/lectern/internal/lecture"
	"github.com/verte-zerg/lectern/internal/model"
	"github.com/verte-zerg/lectern/internal/nav"
)

const alertRefreshInterval = time.Second

// Backend is the server API used by the screens.
type Backend interface {
	lecture.LectureService
	FindCourseLectures(ctx context.Context, courseID int64) ([]model.Lecture, error)
	SplitInfo(ctx context.Context, lectureID int64, file model.SelectedFile) (*model.LectureUnitInformation, error)
}

// Options configure the App.
type Options struct {
	Backend Backend
	Journal lecture.Journal
	Alerts  *alert.Service
	// Course is the resolved course of the start route; screens for other
	// courses only know the id.
	Course *model.Course
	Start  nav.Route
	// Wizard is the default for new lectures opened from the lectures list.
	Wizard       bool
	ProcessUnits bool
	Now          func() time.Time
}

// screen is one page of the app. Screens mutate themselves in place.
type screen interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(width, height int) string
	help() string
}

type alertTickMsg struct{}

// App implements tea.Model. It owns the router and swaps screens whenever the
// current route changes.
type App struct {
	backend Backend
	journal lecture.Journal
	alerts  *alert.Service
	router  *nav.Router
	course  *model.Course
	opts    Options

	screen       screen
	routeChanged bool
	spinner      spinner.Model

	width  int
	height int
	size   tea.WindowSizeMsg
}

// New constructs the app positioned at opts.Start.
func New(opts Options) *App {
	if opts.Alerts == nil {
		opts.Alerts = alert.NewService()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &App{
		backend: opts.Backend,
		journal: opts.Journal,
		alerts:  opts.Alerts,
		course:  opts.Course,
		opts:    opts,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle)),
	}
	a.router = nav.NewRouter(opts.Start, func(nav.Route) {
		a.routeChanged = true
	})
	a.screen = a.buildScreen(a.router.Current())
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.screen.init(), a.spinner.Tick, alertTick())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.size = msg
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if msg.Type == tea.KeyCtrlX {
			a.dismissLatestAlert()
			return a, nil
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case alertTickMsg:
		a.alerts.Active()
		return a, alertTick()
	}
	cmd := a.screen.update(msg)
	return a, tea.Batch(cmd, a.syncScreen())
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}
	alerts := a.renderAlerts()
	alertHeight := 0
	if alerts != "" {
		alertHeight = strings.Count(alerts, "\n") + 1
	}
	footerHeight := 1
	bodyHeight := maxInt(1, a.height-alertHeight-footerHeight)
	parts := make([]string, 0, 3)
	if alerts != "" {
		parts = append(parts, fitLines(alerts, a.width, alertHeight))
	}
	parts = append(parts, fitLines(a.screen.view(a.width, bodyHeight), a.width, bodyHeight))
	help := a.screen.help()
	if alerts != "" {
		help += "  Dismiss alert: ctrl+x"
	}
	parts = append(parts, fitLines(mutedStyle.Render(truncateLine(help, a.width)), a.width, footerHeight))
	return strings.Join(parts, "\n")
}

// Router exposes the navigation state, mainly for tests.
func (a *App) Router() *nav.Router { return a.router }

// syncScreen replaces the screen after a navigation.
func (a *App) syncScreen() tea.Cmd {
	if !a.routeChanged {
		return nil
	}
	a.routeChanged = false
	a.screen = a.buildScreen(a.router.Current())
	cmd := a.screen.init()
	if a.size.Width > 0 {
		sizeCmd := a.screen.update(a.size)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return cmd
}

func (a *App) buildScreen(route nav.Route) screen {
	kind, courseID, lectureID := route.Match()
	switch kind {
	case nav.KindLectures:
		return newLecturesScreen(a, courseID)
	case nav.KindLectureNew:
		params, _ := route.State.(lecture.QueryParams)
		return newFormScreen(a, courseID, 0, params)
	case nav.KindLectureEdit:
		params, _ := route.State.(lecture.QueryParams)
		return newFormScreen(a, courseID, lectureID, params)
	case nav.KindLectureDetail:
		return newDetailScreen(a, courseID, lectureID)
	case nav.KindUnitProcessing:
		state, _ := route.State.(nav.UnitProcessingState)
		return newProcessingScreen(a, courseID, lectureID, state)
	}
	return &notFoundScreen{path: route.Path()}
}

// courseFor returns the resolved course when ids match, otherwise a course
// carrying only the id.
func (a *App) courseFor(courseID int64) *model.Course {
	if a.course != nil && a.course.ID != nil && *a.course.ID == courseID {
		c := *a.course
		return &c
	}
	return &model.Course{ID: model.Int64(courseID)}
}

// navigate reports navigation failures as alerts.
func (a *App) navigate(route nav.Route) {
	if err := a.router.Navigate(route); err != nil {
		a.alerts.Error(err.Error())
	}
}

// back returns to the previous page or navigates to fallback.
func (a *App) back(fallback nav.Route) {
	if a.router.Back() {
		return
	}
	a.navigate(fallback)
}

// dismissLatestAlert removes the most recent visible alert.
func (a *App) dismissLatestAlert() {
	active := a.alerts.Active()
	if len(active) == 0 {
		return
	}
	a.alerts.Dismiss(active[len(active)-1].ID)
}

func (a *App) renderAlerts() string {
	active := a.alerts.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, al := range active {
		text := truncateLine(al.Message, maxInt(1, a.width-2))
		switch al.Type {
		case alert.TypeSuccess:
			lines = append(lines, successStyle.Render("✓ "+text))
		default:
			lines = append(lines, errorStyle.Render("✗ "+text))
		}
	}
	return strings.Join(lines, "\n")
}

func alertTick() tea.Cmd {
	return tea.Tick(alertRefreshInterval, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

type notFoundScreen struct {
	path string
}

func (s *notFoundScreen) init() tea.Cmd { return nil }

func (s *notFoundScreen) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
		return tea.Quit
	}
	return nil
}

func (s *notFoundScreen) view(int, int) string {
	return errorStyle.Render("No page at " + s.path)
}

func (s *notFoundScreen) help() string { return "Quit: q" }
