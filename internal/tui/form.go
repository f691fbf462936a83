package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lectern/internal/fileext"
	"github.com/verte-zerg/lectern/internal/lecture"
	"github.com/verte-zerg/lectern/internal/model"
	"github.com/verte-zerg/lectern/internal/nav"
)

const (
	dateLayout = "2006-01-02 15:04"
	dateHint   = "YYYY-MM-DD HH:MM"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldVisible
	fieldStart
	fieldEnd
	fieldFile
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldVisible:     "Visible from",
	fieldStart:       "Start",
	fieldEnd:         "End",
	fieldFile:        "File",
}

type wizardStep int

const (
	stepTitle wizardStep = iota
	stepPeriod
	stepDescription
	stepUnits
)

var stepNames = []string{"Title", "Period", "Description", "Units"}

type formLoadedMsg struct {
	owner   *formScreen
	lecture *model.Lecture
	err     error
}

type saveDoneMsg struct {
	owner  *formScreen
	result lecture.SaveResult
}

// formScreen is the create/edit page. It renders the editor state and feeds
// user input back into it.
type formScreen struct {
	app       *App
	editor    *lecture.Editor
	courseID  int64
	lectureID int64
	params    lecture.QueryParams

	loading bool
	loadErr string

	inputs   []textinput.Model
	focus    int
	inputErr string
	filePath string

	picking bool
	picker  filepicker.Model

	step wizardStep
}

func newFormScreen(a *App, courseID, lectureID int64, params lecture.QueryParams) *formScreen {
	s := &formScreen{
		app:       a,
		courseID:  courseID,
		lectureID: lectureID,
		params:    params,
		inputs:    newFormInputs(),
	}
	s.editor = lecture.NewEditor(lecture.Deps{
		Lectures: a.backend,
		Alerts:   a.alerts,
		Router:   a.router,
		Wizard:   s,
		Journal:  a.journal,
		Now:      a.opts.Now,
	})
	if lectureID == 0 {
		s.setup(nil)
	} else {
		s.loading = true
	}
	return s
}

func newFormInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 0
		input.Cursor.SetMode(cursor.CursorBlink)
		inputs[i] = input
	}
	inputs[fieldTitle].CharLimit = 255
	for _, i := range []int{fieldVisible, fieldStart, fieldEnd} {
		inputs[i].Placeholder = dateHint
	}
	inputs[fieldFile].Placeholder = "path/to/slides.pdf (ctrl+o to browse)"
	return inputs
}

// OnLectureCreationSucceeded moves the wizard to the units step.
func (s *formScreen) OnLectureCreationSucceeded() {
	if id := s.editor.Lecture().ID; id != nil {
		s.lectureID = *id
	}
	s.fillInputs()
	s.step = stepUnits
	s.focus = 0
	s.focusCurrent()
}

func (s *formScreen) setup(lec *model.Lecture) {
	s.editor.Init(lecture.RouteData{Lecture: lec, Course: s.app.courseFor(s.courseID)}, s.params)
	if s.app.opts.ProcessUnits {
		s.editor.OnSelectProcessUnit()
	}
	s.step = stepTitle
	s.focus = 0
	s.fillInputs()
	s.focusCurrent()
}

func (s *formScreen) init() tea.Cmd {
	if !s.loading {
		return textinput.Blink
	}
	backend, id := s.app.backend, s.lectureID
	return tea.Batch(textinput.Blink, func() tea.Msg {
		lec, err := backend.FindWithDetails(context.Background(), id)
		return formLoadedMsg{owner: s, lecture: lec, err: err}
	})
}

func (s *formScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case formLoadedMsg:
		if msg.owner != s {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			s.loadErr = msg.err.Error()
			s.app.alerts.OnError(msg.err)
			return nil
		}
		s.setup(msg.lecture)
		return nil
	case saveDoneMsg:
		if msg.owner != s {
			return nil
		}
		if err := s.editor.HandleSaveResult(msg.result); err != nil {
			s.app.alerts.Error(err.Error())
		}
		return nil
	case tea.WindowSizeMsg:
		s.resize(msg.Width)
		if s.picking {
			var cmd tea.Cmd
			s.picker, cmd = s.picker.Update(msg)
			return cmd
		}
		return nil
	}

	if s.picking {
		return s.updatePicker(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.updateFocused(msg)
	}
	if s.loading || s.loadErr != "" {
		if key.String() == "esc" {
			s.app.back(nav.Lectures(s.courseID))
		}
		return nil
	}
	switch key.String() {
	case "esc":
		if err := s.editor.PreviousState(); err != nil {
			s.app.alerts.Error(err.Error())
		}
		return nil
	case "ctrl+s":
		return s.save()
	case "ctrl+w":
		s.commitFocused()
		s.editor.ToggleWizardMode()
		s.step = stepTitle
		s.focus = 0
		return s.focusCurrent()
	case "ctrl+p":
		s.editor.OnSelectProcessUnit()
		s.clampFocus()
		return s.focusCurrent()
	case "ctrl+o":
		if s.fieldVisible(fieldFile) {
			return s.openPicker()
		}
		return nil
	case "tab", "down":
		return s.moveFocus(1)
	case "shift+tab", "up":
		return s.moveFocus(-1)
	case "enter":
		return s.submit()
	}
	return s.updateFocused(msg)
}

func (s *formScreen) updateFocused(msg tea.Msg) tea.Cmd {
	fields := s.visibleFields()
	if len(fields) == 0 {
		return nil
	}
	idx := fields[s.focus]
	var cmd tea.Cmd
	s.inputs[idx], cmd = s.inputs[idx].Update(msg)
	return cmd
}

func (s *formScreen) resize(width int) {
	labelWidth := 16
	for i := range s.inputs {
		s.inputs[i].Width = maxInt(10, width-labelWidth-4)
	}
}

func (s *formScreen) submit() tea.Cmd {
	if !s.editor.IsShowingWizardMode() {
		if s.focus == len(s.visibleFields())-1 {
			return s.save()
		}
		return s.moveFocus(1)
	}
	switch s.step {
	case stepTitle:
		if err := s.commit(fieldTitle); err != nil {
			s.inputErr = err.Error()
			return nil
		}
		if strings.TrimSpace(s.editor.Lecture().Title) == "" {
			s.inputErr = "Title is required."
			return nil
		}
		return s.setStep(stepPeriod)
	case stepPeriod:
		if s.focus < len(s.visibleFields())-1 {
			return s.moveFocus(1)
		}
		if err := s.commitAll(); err != nil {
			s.inputErr = err.Error()
			return nil
		}
		return s.setStep(stepDescription)
	case stepDescription:
		return s.save()
	default:
		return s.proceedToUnitSplit()
	}
}

func (s *formScreen) setStep(step wizardStep) tea.Cmd {
	s.inputErr = ""
	s.step = step
	s.focus = 0
	return s.focusCurrent()
}

func (s *formScreen) save() tea.Cmd {
	if s.editor.IsSaving() {
		return nil
	}
	if err := s.validate(); err != nil {
		s.inputErr = err.Error()
		return nil
	}
	s.inputErr = ""
	return s.runSave(s.editor.Save())
}

func (s *formScreen) proceedToUnitSplit() tea.Cmd {
	if s.editor.IsSaving() {
		return nil
	}
	if !s.editor.ProcessUnitMode() {
		s.editor.OnSelectProcessUnit()
	}
	if err := s.validate(); err != nil {
		s.inputErr = err.Error()
		return nil
	}
	s.inputErr = ""
	return s.runSave(s.editor.ProceedToUnitSplit())
}

func (s *formScreen) validate() error {
	if err := s.commitAll(); err != nil {
		return err
	}
	if strings.TrimSpace(s.editor.Lecture().Title) == "" {
		return errors.New("Title is required.")
	}
	if !s.editor.ProcessUnitMode() {
		return nil
	}
	if s.editor.File() == nil || s.editor.FileName() == "" {
		return errors.New("Select a file to process into units.")
	}
	if !fileext.Allowed(s.editor.FileName()) {
		return fmt.Errorf("Unsupported file type. Allowed: %s", s.editor.AllowedFileExtensions())
	}
	return nil
}

func (s *formScreen) runSave(call lecture.SaveCall) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{owner: s, result: call(context.Background())}
	}
}

func (s *formScreen) visibleFields() []int {
	if s.editor.IsShowingWizardMode() {
		switch s.step {
		case stepTitle:
			return []int{fieldTitle}
		case stepPeriod:
			return []int{fieldVisible, fieldStart, fieldEnd}
		case stepDescription:
			return []int{fieldDescription}
		default:
			return []int{fieldFile}
		}
	}
	fields := []int{fieldTitle, fieldDescription, fieldVisible, fieldStart, fieldEnd}
	if s.editor.ProcessUnitMode() {
		fields = append(fields, fieldFile)
	}
	return fields
}

func (s *formScreen) fieldVisible(field int) bool {
	for _, f := range s.visibleFields() {
		if f == field {
			return true
		}
	}
	return false
}

func (s *formScreen) clampFocus() {
	count := len(s.visibleFields())
	if s.focus >= count {
		s.focus = count - 1
	}
	if s.focus < 0 {
		s.focus = 0
	}
}

func (s *formScreen) moveFocus(delta int) tea.Cmd {
	if err := s.commitFocused(); err != nil {
		s.inputErr = err.Error()
		return nil
	}
	s.inputErr = ""
	count := len(s.visibleFields())
	if count == 0 {
		return nil
	}
	next := s.focus + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	s.focus = next
	return s.focusCurrent()
}

func (s *formScreen) focusCurrent() tea.Cmd {
	s.clampFocus()
	fields := s.visibleFields()
	var cmd tea.Cmd
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	if len(fields) > 0 {
		cmd = s.inputs[fields[s.focus]].Focus()
	}
	return cmd
}

func (s *formScreen) commitFocused() error {
	fields := s.visibleFields()
	if len(fields) == 0 {
		return nil
	}
	return s.commit(fields[s.focus])
}

func (s *formScreen) commitAll() error {
	for _, field := range s.visibleFields() {
		if err := s.commit(field); err != nil {
			return err
		}
	}
	return nil
}

// commit writes one input back into the edited lecture.
func (s *formScreen) commit(field int) error {
	lec := s.editor.Lecture()
	value := strings.TrimSpace(s.inputs[field].Value())
	switch field {
	case fieldTitle:
		lec.Title = value
	case fieldDescription:
		lec.Description = value
	case fieldVisible:
		parsed, err := parseDate(value)
		if err != nil {
			return fmt.Errorf("%s: expected %s", fieldLabels[field], dateHint)
		}
		lec.VisibleDate = parsed
	case fieldStart, fieldEnd:
		return s.commitPeriod()
	case fieldFile:
		s.editor.MarkFileInputTouched()
		if value == "" {
			if s.filePath != "" {
				s.filePath = ""
				s.editor.OnFileChange(nil)
			}
			return nil
		}
		if value == s.filePath {
			return nil
		}
		data, err := os.ReadFile(value)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", value, err)
		}
		s.filePath = value
		s.editor.OnFileChange([]model.SelectedFile{{Name: filepath.Base(value), Data: data}})
	}
	return nil
}

// commitPeriod reads Start and End together, then clamps End to Start.
// The End input is rewritten only when the clamp moved it.
func (s *formScreen) commitPeriod() error {
	lec := s.editor.Lecture()
	start, err := parseDate(strings.TrimSpace(s.inputs[fieldStart].Value()))
	if err != nil {
		return fmt.Errorf("%s: expected %s", fieldLabels[fieldStart], dateHint)
	}
	end, err := parseDate(strings.TrimSpace(s.inputs[fieldEnd].Value()))
	if err != nil {
		return fmt.Errorf("%s: expected %s", fieldLabels[fieldEnd], dateHint)
	}
	lec.StartDate = start
	lec.EndDate = end
	s.editor.OnDatesValuesChanged()
	if lec.EndDate != end {
		s.inputs[fieldEnd].SetValue(formatDate(lec.EndDate))
	}
	return nil
}

func (s *formScreen) fillInputs() {
	lec := s.editor.Lecture()
	s.inputs[fieldTitle].SetValue(lec.Title)
	s.inputs[fieldDescription].SetValue(lec.Description)
	s.inputs[fieldVisible].SetValue(formatDate(lec.VisibleDate))
	s.inputs[fieldStart].SetValue(formatDate(lec.StartDate))
	s.inputs[fieldEnd].SetValue(formatDate(lec.EndDate))
	s.inputs[fieldFile].SetValue(s.filePath)
}

func (s *formScreen) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = fileext.Dotted()
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	s.picker = fp
	s.picking = true
	cmd := s.picker.Init()
	if s.app.size.Width > 0 {
		var sizeCmd tea.Cmd
		s.picker, sizeCmd = s.picker.Update(s.app.size)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return cmd
}

func (s *formScreen) updatePicker(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		s.picking = false
		return nil
	}
	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)
	if ok, path := s.picker.DidSelectFile(msg); ok {
		s.picking = false
		s.inputs[fieldFile].SetValue(path)
		if err := s.commit(fieldFile); err != nil {
			s.inputErr = err.Error()
		} else {
			s.inputErr = ""
		}
		return nil
	}
	if ok, path := s.picker.DidSelectDisabledFile(msg); ok {
		s.inputErr = fmt.Sprintf("%s is not supported. Allowed: %s", filepath.Base(path), s.editor.AllowedFileExtensions())
	}
	return cmd
}

func (s *formScreen) view(width, _ int) string {
	if s.loading {
		return s.app.spinner.View() + " Loading lecture..."
	}
	if s.loadErr != "" {
		return errorStyle.Render("Failed to load lecture: " + s.loadErr)
	}
	if s.picking {
		title := titleStyle.Render("Choose a file") + " " + mutedStyle.Render(s.editor.AcceptedFileExtensions())
		return title + "\n\n" + s.picker.View()
	}

	lines := []string{s.renderTitle(width), s.renderModes(), ""}
	if s.editor.IsShowingWizardMode() {
		lines = append(lines, accentStyle.Render(fmt.Sprintf("Step %d/%d: %s", int(s.step)+1, len(stepNames), stepNames[s.step])), "")
	}
	fields := s.visibleFields()
	for i, field := range fields {
		label := labelStyle.Render(fmt.Sprintf("%-14s", fieldLabels[field]))
		if i == s.focus {
			label = focusedStyle.Render(fmt.Sprintf("%-14s", fieldLabels[field]))
		}
		lines = append(lines, label+"  "+s.inputs[field].View())
	}
	if s.fieldVisible(fieldFile) {
		lines = append(lines, "", s.renderFileStatus())
	}
	if s.inputErr != "" {
		lines = append(lines, "", errorStyle.Render(s.inputErr))
	}
	if s.editor.IsSaving() {
		lines = append(lines, "", s.app.spinner.View()+" Saving...")
	}
	return strings.Join(lines, "\n")
}

func (s *formScreen) renderTitle(width int) string {
	lec := s.editor.Lecture()
	title := "New lecture"
	if !lec.IsNew() {
		title = "Edit lecture " + lec.Title
	}
	if lec.Course != nil && lec.Course.Title != "" {
		title += " · " + lec.Course.Title
	}
	return titleStyle.Render(truncateLine(title, width))
}

func (s *formScreen) renderModes() string {
	wizard := modeOffStyle.Render("Wizard: off")
	if s.editor.IsShowingWizardMode() {
		wizard = modeOnStyle.Render("Wizard: on")
	}
	units := modeOffStyle.Render("Process units: off")
	if s.editor.ProcessUnitMode() {
		units = modeOnStyle.Render("Process units: on")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, wizard, " ", units)
}

func (s *formScreen) renderFileStatus() string {
	allowed := mutedStyle.Render("Allowed: " + s.editor.AllowedFileExtensions())
	name := s.editor.FileName()
	switch {
	case name != "" && !fileext.Allowed(name):
		return errorStyle.Render("Unsupported file "+name) + "\n" + allowed
	case name != "":
		return valueStyle.Render("Selected "+name) + "\n" + allowed
	case s.editor.FileInputTouched():
		return errorStyle.Render("No file selected") + "\n" + allowed
	}
	return allowed
}

func (s *formScreen) help() string {
	if s.loading || s.loadErr != "" {
		return "Back: esc  Quit: ctrl+c"
	}
	if s.picking {
		return "Move: up/down  Open: enter  Parent: h  Cancel: esc"
	}
	if s.editor.IsShowingWizardMode() {
		return "Next: enter  Field: tab  Standard form: ctrl+w  Units: ctrl+p  File: ctrl+o  Back: esc"
	}
	return "Save: ctrl+s  Field: tab  Wizard: ctrl+w  Units: ctrl+p  File: ctrl+o  Back: esc"
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(dateLayout)
}
