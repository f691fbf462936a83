// Package lecture implements the controller behind the lecture create/edit form.
package lecture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/verte-zerg/lectern/internal/fileext"
	"github.com/verte-zerg/lectern/internal/model"
	"github.com/verte-zerg/lectern/internal/nav"
)

//go:generate mockgen -source=editor.go -destination=../mocks/lecture/mock_editor.go -package=mock_lecture

// ErrMissingIdentifier is returned when a navigation target lacks a course or lecture id.
var ErrMissingIdentifier = errors.New("lecture or course id missing")

// LectureService persists lectures.
type LectureService interface {
	Create(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error)
	Update(ctx context.Context, lecture *model.Lecture) (*model.Lecture, error)
	FindWithDetails(ctx context.Context, lectureID int64) (*model.Lecture, error)
}

// Alerts shows notifications to the user.
type Alerts interface {
	Success(message string)
	OnError(err error)
}

// Router navigates to a route.
type Router interface {
	Navigate(route nav.Route) error
	NavigateBackWithOptional(fallback nav.Route, optional string) error
}

// Wizard is told when a lecture was created in guided mode.
type Wizard interface {
	OnLectureCreationSucceeded()
}

// Journal records save outcomes. Failures are logged and otherwise ignored.
type Journal interface {
	RecordSave(ctx context.Context, record model.SaveRecord) error
}

// Deps are the collaborators of an Editor. Wizard and Journal are optional.
type Deps struct {
	Lectures LectureService
	Alerts   Alerts
	Router   Router
	Wizard   Wizard
	Journal  Journal
	Now      func() time.Time
}

// RouteData is the data resolved for the editor route.
type RouteData struct {
	Lecture *model.Lecture
	Course  *model.Course
}

// QueryParams are the query parameters of the editor route.
type QueryParams struct {
	ShouldBeInWizardMode bool
}

// Editor holds the state of the lecture form.
// All methods must be called from the UI loop; only the function returned
// by Save may run elsewhere.
type Editor struct {
	deps Deps

	lecture *model.Lecture

	isSaving            bool
	isProcessing        bool
	processUnitMode     bool
	isShowingWizardMode bool
	fileInputTouched    bool

	file     *model.SelectedFile
	fileName string
}

// NewEditor creates an editor. Call Init before use.
func NewEditor(deps Deps) *Editor {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Editor{deps: deps, lecture: &model.Lecture{}}
}

// Init resets all flags and loads the route data and query parameters.
func (e *Editor) Init(data RouteData, params QueryParams) {
	e.isSaving = false
	e.processUnitMode = false
	e.isProcessing = false
	e.isShowingWizardMode = false
	e.fileInputTouched = false
	e.file = nil
	e.fileName = ""

	e.lecture = data.Lecture
	if e.lecture == nil {
		e.lecture = &model.Lecture{}
	}
	if data.Course != nil {
		e.lecture.Course = data.Course
	}

	if params.ShouldBeInWizardMode {
		e.isShowingWizardMode = true
	}
}

// Lecture returns the lecture bound to the form. Edits go through this pointer.
func (e *Editor) Lecture() *model.Lecture { return e.lecture }

// IsSaving reports whether a save is in flight.
func (e *Editor) IsSaving() bool { return e.isSaving }

// IsProcessing reports whether a save started and its processing is not finished.
func (e *Editor) IsProcessing() bool { return e.isProcessing }

// ProcessUnitMode reports whether the saved file is split into units after save.
func (e *Editor) ProcessUnitMode() bool { return e.processUnitMode }

// IsShowingWizardMode reports whether the guided form is shown.
func (e *Editor) IsShowingWizardMode() bool { return e.isShowingWizardMode }

// FileInputTouched reports whether the user interacted with the file input.
func (e *Editor) FileInputTouched() bool { return e.fileInputTouched }

// File returns the selected file, or nil.
func (e *Editor) File() *model.SelectedFile { return e.file }

// FileName returns the name of the selected file.
func (e *Editor) FileName() string { return e.fileName }

// AllowedFileExtensions is the human-readable list shown next to the file input.
func (e *Editor) AllowedFileExtensions() string { return fileext.AllowedFileExtensions() }

// AcceptedFileExtensions is the filter list for the file chooser.
func (e *Editor) AcceptedFileExtensions() string { return fileext.AcceptedFileExtensions() }

// PreviousState goes back in history. Without history it falls back to the
// lecture overview of the course, or the lecture's detail page when editing.
func (e *Editor) PreviousState() error {
	courseID, ok := e.lecture.CourseID()
	if !ok {
		return fmt.Errorf("previous state: %w", ErrMissingIdentifier)
	}
	optional := ""
	if e.lecture.ID != nil {
		optional = strconv.FormatInt(*e.lecture.ID, 10)
	}
	return e.deps.Router.NavigateBackWithOptional(nav.Lectures(courseID), optional)
}

// ToggleWizardMode switches between the guided and the standard form.
func (e *Editor) ToggleWizardMode() {
	e.isShowingWizardMode = !e.isShowingWizardMode
}

// OnSelectProcessUnit switches automatic unit processing after save.
func (e *Editor) OnSelectProcessUnit() {
	e.processUnitMode = !e.processUnitMode
}

// MarkFileInputTouched records that the user interacted with the file input.
func (e *Editor) MarkFileInputTouched() {
	e.fileInputTouched = true
}

// OnFileChange keeps the first selected file. An empty selection clears the
// stored name but keeps the previous file reference.
func (e *Editor) OnFileChange(files []model.SelectedFile) {
	if len(files) == 0 {
		e.fileName = ""
		return
	}
	f := files[0]
	e.file = &f
	e.fileName = f.Name
}

// OnDatesValuesChanged moves the end date to the start date when it lies before it.
func (e *Editor) OnDatesValuesChanged() {
	start, end := e.lecture.StartDate, e.lecture.EndDate
	if start == nil || end == nil {
		return
	}
	if !start.After(*end) {
		return
	}
	clamped := *start
	e.lecture.EndDate = &clamped
}

// SaveCall performs the network part of a save. It may run on any goroutine.
type SaveCall func(ctx context.Context) SaveResult

// SaveResult is the outcome of a SaveCall, applied with HandleSaveResult.
type SaveResult struct {
	mode saveMode

	Saved     *model.Lecture
	Detailed  *model.Lecture
	Err       error
	DetailErr error
}

// saveMode is the editor state captured when the save was triggered.
type saveMode struct {
	wizard      bool
	processUnit bool
	wasNew      bool
	file        *model.SelectedFile
	fileName    string
	lecture     *model.Lecture
}

// Save marks the editor busy and returns the call that creates or updates the
// lecture. Modes are captured now, so toggling them while the call is in
// flight does not change how the result is handled.
func (e *Editor) Save() SaveCall {
	e.isSaving = true
	e.isProcessing = true

	mode := saveMode{
		wizard:      e.isShowingWizardMode,
		processUnit: e.processUnitMode,
		wasNew:      e.lecture.IsNew(),
		file:        e.file,
		fileName:    e.fileName,
		lecture:     e.lecture,
	}
	payload := *e.lecture
	service := e.deps.Lectures

	return func(ctx context.Context) SaveResult {
		result := SaveResult{mode: mode}
		if mode.wasNew {
			result.Saved, result.Err = service.Create(ctx, &payload)
		} else {
			result.Saved, result.Err = service.Update(ctx, &payload)
		}
		if result.Err != nil || !mode.wizard || !mode.wasNew {
			return result
		}
		result.Detailed, result.DetailErr = service.FindWithDetails(ctx, *result.Saved.ID)
		return result
	}
}

// ProceedToUnitSplit saves the lecture; used by the wizard once the lecture exists.
func (e *Editor) ProceedToUnitSplit() SaveCall {
	return e.Save()
}

// SaveAndWait runs Save synchronously and applies its result.
func (e *Editor) SaveAndWait(ctx context.Context) error {
	return e.HandleSaveResult(e.Save()(ctx))
}

// HandleSaveResult applies the outcome of a save: alerts, state updates and navigation.
func (e *Editor) HandleSaveResult(result SaveResult) error {
	mode := result.mode
	if result.Err != nil {
		e.isSaving = false
		e.deps.Alerts.OnError(result.Err)
		e.record(mode, nil, result.Err)
		return nil
	}
	saved := result.Saved
	e.record(mode, saved, nil)

	switch {
	case mode.wizard && mode.wasNew:
		e.isSaving = false
		if result.DetailErr != nil {
			// The lecture exists on the server now; keep its id so the next save updates it.
			adopted := *saved
			if adopted.Course == nil {
				adopted.Course = mode.lecture.Course
			}
			e.lecture = &adopted
			e.deps.Alerts.OnError(result.DetailErr)
			return nil
		}
		e.lecture = result.Detailed
		e.deps.Alerts.Success(fmt.Sprintf("Lecture with title %s was successfully created.", saved.Title))
		if e.deps.Wizard != nil {
			e.deps.Wizard.OnLectureCreationSucceeded()
		}
		return nil
	case mode.processUnit:
		e.isSaving = false
		e.isProcessing = false
		e.deps.Alerts.Success(fmt.Sprintf("Lecture with title %s was successfully %s.", saved.Title, action(mode.wasNew)))
		courseID, lectureID, err := routeIDs(saved, mode.lecture)
		if err != nil {
			return err
		}
		return e.deps.Router.Navigate(nav.UnitProcessing(courseID, lectureID, nav.UnitProcessingState{
			File:     mode.file,
			FileName: mode.fileName,
		}))
	default:
		e.isSaving = false
		courseID, lectureID, err := routeIDs(saved, mode.lecture)
		if err != nil {
			return err
		}
		return e.deps.Router.Navigate(nav.LectureDetail(courseID, lectureID))
	}
}

func (e *Editor) record(mode saveMode, saved *model.Lecture, saveErr error) {
	if e.deps.Journal == nil {
		return
	}
	source := mode.lecture
	if saved != nil {
		source = saved
	}
	rec := model.SaveRecord{
		SavedAt: e.deps.Now(),
		Action:  action(mode.wasNew),
		Title:   source.Title,
	}
	if courseID, ok := source.CourseID(); ok {
		rec.CourseID = courseID
	} else if courseID, ok := mode.lecture.CourseID(); ok {
		rec.CourseID = courseID
	}
	if source.ID != nil {
		rec.LectureID = *source.ID
	}
	if saveErr != nil {
		rec.Error = saveErr.Error()
	}
	if err := e.deps.Journal.RecordSave(context.Background(), rec); err != nil {
		slog.Default().Warn("failed to record save", "error", err)
	}
}

func action(wasNew bool) model.SaveAction {
	if wasNew {
		return model.SaveActionCreated
	}
	return model.SaveActionUpdated
}

// routeIDs takes the ids from the saved lecture, falling back to the course
// of the edited lecture when the server omits it.
func routeIDs(saved, edited *model.Lecture) (courseID, lectureID int64, err error) {
	if saved == nil || saved.ID == nil {
		return 0, 0, fmt.Errorf("navigate after save: %w", ErrMissingIdentifier)
	}
	courseID, ok := saved.CourseID()
	if !ok {
		courseID, ok = edited.CourseID()
	}
	if !ok {
		return 0, 0, fmt.Errorf("navigate after save: %w", ErrMissingIdentifier)
	}
	return courseID, *saved.ID, nil
}
