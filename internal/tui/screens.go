package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lectern/internal/lecture"
	"github.com/verte-zerg/lectern/internal/model"
	"github.com/verte-zerg/lectern/internal/nav"
)

type lecturesLoadedMsg struct {
	owner    *lecturesScreen
	lectures []model.Lecture
	err      error
}

type detailLoadedMsg struct {
	owner   *detailScreen
	lecture *model.Lecture
	err     error
}

type unitsLoadedMsg struct {
	owner *processingScreen
	info  *model.LectureUnitInformation
	err   error
}

// lecturesScreen lists the lectures of a course.
type lecturesScreen struct {
	app      *App
	courseID int64

	loading  bool
	errMsg   string
	lectures []model.Lecture
	table    table.Model
}

func newLecturesScreen(a *App, courseID int64) *lecturesScreen {
	return &lecturesScreen{
		app:      a,
		courseID: courseID,
		loading:  true,
		table:    buildLecturesTable(nil),
	}
}

func (s *lecturesScreen) init() tea.Cmd {
	backend, courseID := s.app.backend, s.courseID
	return func() tea.Msg {
		lectures, err := backend.FindCourseLectures(context.Background(), courseID)
		return lecturesLoadedMsg{owner: s, lectures: lectures, err: err}
	}
}

func (s *lecturesScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case lecturesLoadedMsg:
		if msg.owner != s {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.app.alerts.OnError(msg.err)
			return nil
		}
		s.errMsg = ""
		s.lectures = msg.lectures
		s.table.SetRows(lectureRows(msg.lectures))
		return nil
	case tea.WindowSizeMsg:
		s.table.SetWidth(msg.Width)
		s.table.SetHeight(maxInt(3, msg.Height-6))
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "n":
			route := nav.LectureNew(s.courseID)
			route.State = lecture.QueryParams{ShouldBeInWizardMode: s.app.opts.Wizard}
			s.app.navigate(route)
			return nil
		case "enter":
			if id, ok := s.selectedID(); ok {
				s.app.navigate(nav.LectureDetail(s.courseID, id))
			}
			return nil
		case "e":
			if id, ok := s.selectedID(); ok {
				s.app.navigate(nav.LectureEdit(s.courseID, id))
			}
			return nil
		case "r":
			s.loading = true
			return s.init()
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

func (s *lecturesScreen) selectedID() (int64, bool) {
	idx := s.table.Cursor()
	if idx < 0 || idx >= len(s.lectures) || s.lectures[idx].ID == nil {
		return 0, false
	}
	return *s.lectures[idx].ID, true
}

func (s *lecturesScreen) view(width, _ int) string {
	title := "Lectures"
	if c := s.app.courseFor(s.courseID); c.Title != "" {
		title += " · " + c.Title
	}
	lines := []string{titleStyle.Render(truncateLine(title, width)), ""}
	switch {
	case s.loading:
		lines = append(lines, s.app.spinner.View()+" Loading lectures...")
	case s.errMsg != "":
		lines = append(lines, errorStyle.Render("Failed to load lectures: "+s.errMsg))
	case len(s.lectures) == 0:
		lines = append(lines, mutedStyle.Render("No lectures yet. Press n to create one."))
	default:
		lines = append(lines, s.table.View())
	}
	return strings.Join(lines, "\n")
}

func (s *lecturesScreen) help() string {
	return "New: n  Open: enter  Edit: e  Reload: r  Quit: q"
}

func buildLecturesTable(lectures []model.Lecture) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 32},
		{Title: "Start", Width: 16},
		{Title: "End", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(lectureRows(lectures)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return t
}

func lectureRows(lectures []model.Lecture) []table.Row {
	rows := make([]table.Row, 0, len(lectures))
	for _, l := range lectures {
		id := ""
		if l.ID != nil {
			id = strconv.FormatInt(*l.ID, 10)
		}
		rows = append(rows, table.Row{id, l.Title, formatDate(l.StartDate), formatDate(l.EndDate)})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// detailScreen shows a saved lecture.
type detailScreen struct {
	app       *App
	courseID  int64
	lectureID int64

	loading bool
	errMsg  string
	lecture *model.Lecture
}

func newDetailScreen(a *App, courseID, lectureID int64) *detailScreen {
	return &detailScreen{app: a, courseID: courseID, lectureID: lectureID, loading: true}
}

func (s *detailScreen) init() tea.Cmd {
	backend, id := s.app.backend, s.lectureID
	return func() tea.Msg {
		lec, err := backend.FindWithDetails(context.Background(), id)
		return detailLoadedMsg{owner: s, lecture: lec, err: err}
	}
}

func (s *detailScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.owner != s {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.app.alerts.OnError(msg.err)
			return nil
		}
		s.errMsg = ""
		s.lecture = msg.lecture
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "e":
			s.app.navigate(nav.LectureEdit(s.courseID, s.lectureID))
		case "esc", "backspace":
			s.app.back(nav.Lectures(s.courseID))
		case "l":
			s.app.navigate(nav.Lectures(s.courseID))
		case "r":
			s.loading = true
			return s.init()
		}
	}
	return nil
}

func (s *detailScreen) view(width, _ int) string {
	if s.loading {
		return s.app.spinner.View() + " Loading lecture..."
	}
	if s.errMsg != "" {
		return errorStyle.Render("Failed to load lecture: " + s.errMsg)
	}
	lec := s.lecture
	if lec == nil {
		return mutedStyle.Render("Lecture not found.")
	}
	course := ""
	if lec.Course != nil {
		course = lec.Course.Title
	}
	fields := []struct{ label, value string }{
		{"Course", course},
		{"Visible from", formatDate(lec.VisibleDate)},
		{"Start", formatDate(lec.StartDate)},
		{"End", formatDate(lec.EndDate)},
	}
	lines := []string{titleStyle.Render(truncateLine(lec.Title, width)), ""}
	for _, f := range fields {
		value := f.value
		if value == "" {
			value = mutedStyle.Render("-")
		} else {
			value = valueStyle.Render(value)
		}
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-14s", f.label))+"  "+value)
	}
	if lec.Description != "" {
		inner := maxInt(10, width-4)
		lines = append(lines, "", cardStyle.Render(wrapText(lec.Description, inner)))
	}
	return strings.Join(lines, "\n")
}

func (s *detailScreen) help() string {
	return "Edit: e  Lectures: l  Reload: r  Back: esc  Quit: q"
}

// processingScreen uploads the selected file and shows the proposed units.
type processingScreen struct {
	app       *App
	courseID  int64
	lectureID int64
	state     nav.UnitProcessingState

	loading bool
	errMsg  string
	info    *model.LectureUnitInformation
	table   table.Model
}

func newProcessingScreen(a *App, courseID, lectureID int64, state nav.UnitProcessingState) *processingScreen {
	return &processingScreen{
		app:       a,
		courseID:  courseID,
		lectureID: lectureID,
		state:     state,
		loading:   state.File != nil,
		table:     buildUnitsTable(nil),
	}
}

func (s *processingScreen) init() tea.Cmd {
	if s.state.File == nil {
		return nil
	}
	backend, id, file := s.app.backend, s.lectureID, *s.state.File
	return func() tea.Msg {
		info, err := backend.SplitInfo(context.Background(), id, file)
		return unitsLoadedMsg{owner: s, info: info, err: err}
	}
}

func (s *processingScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case unitsLoadedMsg:
		if msg.owner != s {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.app.alerts.OnError(msg.err)
			return nil
		}
		s.errMsg = ""
		s.info = msg.info
		if msg.info != nil {
			s.table.SetRows(unitRows(msg.info.Units))
		}
		return nil
	case tea.WindowSizeMsg:
		s.table.SetWidth(msg.Width)
		s.table.SetHeight(maxInt(3, msg.Height-8))
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "esc":
			s.app.navigate(nav.LectureDetail(s.courseID, s.lectureID))
			return nil
		case "r":
			if s.state.File == nil {
				return nil
			}
			s.loading = true
			return s.init()
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

func (s *processingScreen) view(width, _ int) string {
	title := "Process units"
	if s.state.FileName != "" {
		title += " · " + s.state.FileName
	}
	lines := []string{titleStyle.Render(truncateLine(title, width)), ""}
	switch {
	case s.state.File == nil:
		lines = append(lines, mutedStyle.Render("No file selected. Enable process units in the lecture form and pick a file."))
	case s.loading:
		lines = append(lines, s.app.spinner.View()+" Splitting file...")
	case s.errMsg != "":
		lines = append(lines, errorStyle.Render("Failed to split file: "+s.errMsg))
	case s.info == nil || len(s.info.Units) == 0:
		lines = append(lines, mutedStyle.Render("No units proposed."))
	default:
		breaks := "kept"
		if s.info.RemoveBreakSlides {
			breaks = "removed"
		}
		summary := fmt.Sprintf("%d units  %d pages  break slides %s", len(s.info.Units), s.info.NumberOfPages, breaks)
		lines = append(lines, labelStyle.Render(summary), "", s.table.View())
	}
	return strings.Join(lines, "\n")
}

func (s *processingScreen) help() string {
	return "Scroll: up/down  Retry: r  Lecture: esc  Quit: q"
}

func buildUnitsTable(units []model.LectureUnitSplit) table.Model {
	columns := []table.Column{
		{Title: "Unit", Width: 32},
		{Title: "Pages", Width: 9},
		{Title: "Release", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(unitRows(units)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())
	return t
}

func unitRows(units []model.LectureUnitSplit) []table.Row {
	rows := make([]table.Row, 0, len(units))
	for _, u := range units {
		rows = append(rows, table.Row{
			u.UnitName,
			fmt.Sprintf("%d-%d", u.StartPage, u.EndPage),
			formatDate(u.ReleaseDate),
		})
	}
	return rows
}
