package lecture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_lecture "github.com/verte-zerg/lectern/internal/mocks/lecture"
	"github.com/verte-zerg/lectern/internal/model"
	"github.com/verte-zerg/lectern/internal/nav"
)

type editorMocks struct {
	lectures *mock_lecture.MockLectureService
	alerts   *mock_lecture.MockAlerts
	router   *mock_lecture.MockRouter
	wizard   *mock_lecture.MockWizard
}

func newTestEditor(t *testing.T) (*Editor, editorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := editorMocks{
		lectures: mock_lecture.NewMockLectureService(ctrl),
		alerts:   mock_lecture.NewMockAlerts(ctrl),
		router:   mock_lecture.NewMockRouter(ctrl),
		wizard:   mock_lecture.NewMockWizard(ctrl),
	}
	e := NewEditor(Deps{
		Lectures: m.lectures,
		Alerts:   m.alerts,
		Router:   m.router,
		Wizard:   m.wizard,
	})
	return e, m
}

func course(id int64) *model.Course {
	return &model.Course{ID: model.Int64(id), Title: "Course"}
}

func day(d int) *time.Time {
	return model.Time(time.Date(2024, 5, d, 10, 0, 0, 0, time.UTC))
}

func TestEditor_Init(t *testing.T) {
	tests := []struct {
		name       string
		data       RouteData
		params     QueryParams
		wantNew    bool
		wantCourse *model.Course
		wantWizard bool
	}{
		{
			name:    "no lecture creates a blank one",
			data:    RouteData{},
			wantNew: true,
		},
		{
			name:       "course is attached to the resolved lecture",
			data:       RouteData{Lecture: &model.Lecture{ID: model.Int64(4), Title: "Existing"}, Course: course(1)},
			wantCourse: course(1),
		},
		{
			name:       "wizard query parameter enables wizard mode",
			data:       RouteData{Course: course(1)},
			params:     QueryParams{ShouldBeInWizardMode: true},
			wantNew:    true,
			wantCourse: course(1),
			wantWizard: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t)
			e.ToggleWizardMode()
			e.OnSelectProcessUnit()
			e.Init(tt.data, tt.params)

			require.NotNil(t, e.Lecture())
			assert.Equal(t, tt.wantNew, e.Lecture().ID == nil)
			assert.Equal(t, tt.wantCourse, e.Lecture().Course)
			assert.Equal(t, tt.wantWizard, e.IsShowingWizardMode())
			assert.False(t, e.IsSaving())
			assert.False(t, e.IsProcessing())
			assert.False(t, e.ProcessUnitMode())
			assert.False(t, e.FileInputTouched())
		})
	}
}

func TestEditor_SaveDispatchesCreateOrUpdate(t *testing.T) {
	t.Run("create without id", func(t *testing.T) {
		e, m := newTestEditor(t)
		e.Init(RouteData{Course: course(3)}, QueryParams{})
		e.Lecture().Title = "Intro"

		m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *model.Lecture) (*model.Lecture, error) {
				assert.Equal(t, "Intro", l.Title)
				return &model.Lecture{ID: model.Int64(10), Title: l.Title, Course: l.Course}, nil
			})
		m.router.EXPECT().Navigate(nav.LectureDetail(3, 10)).Return(nil)

		call := e.Save()
		assert.True(t, e.IsSaving())
		assert.True(t, e.IsProcessing())
		require.NoError(t, e.HandleSaveResult(call(context.Background())))
		assert.False(t, e.IsSaving())
	})

	t.Run("update with id", func(t *testing.T) {
		e, m := newTestEditor(t)
		e.Init(RouteData{Lecture: &model.Lecture{ID: model.Int64(10), Title: "Intro"}, Course: course(3)}, QueryParams{})

		m.lectures.EXPECT().Update(gomock.Any(), gomock.Any()).
			Return(&model.Lecture{ID: model.Int64(10), Title: "Intro", Course: course(3)}, nil)
		m.router.EXPECT().Navigate(nav.LectureDetail(3, 10)).Return(nil)

		require.NoError(t, e.SaveAndWait(context.Background()))
	})
}

func TestEditor_SaveInProcessUnitModeNavigatesWithFile(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Course: course(3)}, QueryParams{})
	e.Lecture().Title = "Slides"
	e.OnSelectProcessUnit()
	e.OnFileChange([]model.SelectedFile{{Name: "slides.pdf", Data: []byte("%PDF")}})
	selected := e.File()

	m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&model.Lecture{ID: model.Int64(11), Title: "Slides", Course: course(3)}, nil)
	m.alerts.EXPECT().Success("Lecture with title Slides was successfully created.")
	var got nav.Route
	m.router.EXPECT().Navigate(gomock.Any()).DoAndReturn(func(r nav.Route) error {
		got = r
		return nil
	})

	require.NoError(t, e.SaveAndWait(context.Background()))
	assert.Equal(t, "course-management/3/lectures/11/unit-management/attachment-units/process", got.Path())
	state, ok := got.State.(nav.UnitProcessingState)
	require.True(t, ok)
	assert.Same(t, selected, state.File)
	assert.Equal(t, "slides.pdf", state.FileName)
	assert.False(t, e.IsSaving())
	assert.False(t, e.IsProcessing())
}

func TestEditor_ProcessUnitModeUpdateMessage(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Lecture: &model.Lecture{ID: model.Int64(11), Title: "Slides"}, Course: course(3)}, QueryParams{})
	e.OnSelectProcessUnit()

	m.lectures.EXPECT().Update(gomock.Any(), gomock.Any()).
		Return(&model.Lecture{ID: model.Int64(11), Title: "Slides", Course: course(3)}, nil)
	m.alerts.EXPECT().Success("Lecture with title Slides was successfully updated.")
	m.router.EXPECT().Navigate(gomock.Any()).Return(nil)

	require.NoError(t, e.SaveAndWait(context.Background()))
}

func TestEditor_WizardCreationFetchesDetails(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Course: course(3)}, QueryParams{ShouldBeInWizardMode: true})
	e.Lecture().Title = "Guided"

	detailed := &model.Lecture{ID: model.Int64(12), Title: "Guided", Course: course(3), Description: "full"}
	gomock.InOrder(
		m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&model.Lecture{ID: model.Int64(12), Title: "Guided"}, nil),
		m.lectures.EXPECT().FindWithDetails(gomock.Any(), int64(12)).Return(detailed, nil),
	)
	m.alerts.EXPECT().Success("Lecture with title Guided was successfully created.")
	m.wizard.EXPECT().OnLectureCreationSucceeded()

	require.NoError(t, e.SaveAndWait(context.Background()))
	assert.Same(t, detailed, e.Lecture())
	assert.False(t, e.IsSaving())
}

func TestEditor_WizardDetailFailureIsSurfaced(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Course: course(3)}, QueryParams{ShouldBeInWizardMode: true})
	detailErr := errors.New("details unavailable")

	m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&model.Lecture{ID: model.Int64(12), Title: "Guided"}, nil)
	m.lectures.EXPECT().FindWithDetails(gomock.Any(), int64(12)).Return(nil, detailErr)
	m.alerts.EXPECT().OnError(detailErr)

	require.NoError(t, e.SaveAndWait(context.Background()))
	assert.False(t, e.IsSaving())
	require.NotNil(t, e.Lecture().ID)
	assert.Equal(t, int64(12), *e.Lecture().ID)
	courseID, ok := e.Lecture().CourseID()
	require.True(t, ok)
	assert.Equal(t, int64(3), courseID)

	// A second save updates the created lecture instead of creating another one.
	m.lectures.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *model.Lecture) (*model.Lecture, error) {
			assert.Equal(t, int64(12), *l.ID)
			return l, nil
		})
	m.router.EXPECT().Navigate(nav.LectureDetail(3, 12)).Return(nil)

	require.NoError(t, e.SaveAndWait(context.Background()))
}

func TestEditor_WizardModeOnExistingLectureNavigates(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Lecture: &model.Lecture{ID: model.Int64(5)}, Course: course(3)}, QueryParams{ShouldBeInWizardMode: true})

	m.lectures.EXPECT().Update(gomock.Any(), gomock.Any()).
		Return(&model.Lecture{ID: model.Int64(5), Course: course(3)}, nil)
	m.router.EXPECT().Navigate(nav.LectureDetail(3, 5)).Return(nil)

	require.NoError(t, e.SaveAndWait(context.Background()))
}

func TestEditor_ModesAreCapturedWhenSaveStarts(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Course: course(3)}, QueryParams{})

	m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&model.Lecture{ID: model.Int64(13), Course: course(3)}, nil)
	m.router.EXPECT().Navigate(nav.LectureDetail(3, 13)).Return(nil)

	call := e.Save()
	e.ToggleWizardMode()
	e.OnSelectProcessUnit()
	require.NoError(t, e.HandleSaveResult(call(context.Background())))
	assert.True(t, e.IsShowingWizardMode())
	assert.True(t, e.ProcessUnitMode())
}

func TestEditor_SaveErrorUsesAlerts(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{Course: course(3)}, QueryParams{})
	saveErr := errors.New("response error 500")

	m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, saveErr)
	m.alerts.EXPECT().OnError(saveErr)

	require.NoError(t, e.SaveAndWait(context.Background()))
	assert.False(t, e.IsSaving())
	assert.True(t, e.IsProcessing())
}

func TestEditor_SaveWithoutCourseFailsNavigation(t *testing.T) {
	e, m := newTestEditor(t)
	e.Init(RouteData{}, QueryParams{})

	m.lectures.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.Lecture{ID: model.Int64(1)}, nil)

	err := e.SaveAndWait(context.Background())
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestEditor_SaveIsRecordedInJournal(t *testing.T) {
	ctrl := gomock.NewController(t)
	lectures := mock_lecture.NewMockLectureService(ctrl)
	router := mock_lecture.NewMockRouter(ctrl)
	journal := mock_lecture.NewMockJournal(ctrl)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	e := NewEditor(Deps{
		Lectures: lectures,
		Alerts:   mock_lecture.NewMockAlerts(ctrl),
		Router:   router,
		Journal:  journal,
		Now:      func() time.Time { return now },
	})
	e.Init(RouteData{Course: course(3)}, QueryParams{})
	e.Lecture().Title = "Journaled"

	lectures.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&model.Lecture{ID: model.Int64(21), Title: "Journaled", Course: course(3)}, nil)
	router.EXPECT().Navigate(gomock.Any()).Return(nil)
	journal.EXPECT().RecordSave(gomock.Any(), model.SaveRecord{
		SavedAt:   now,
		Action:    model.SaveActionCreated,
		CourseID:  3,
		LectureID: 21,
		Title:     "Journaled",
	}).Return(errors.New("disk full"))

	require.NoError(t, e.SaveAndWait(context.Background()))
}

func TestEditor_OnDatesValuesChanged(t *testing.T) {
	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantEnd *time.Time
	}{
		{"start after end clamps", day(2), day(1), day(2)},
		{"start before end keeps", day(1), day(2), day(2)},
		{"equal dates keep", day(1), day(1), day(1)},
		{"missing start keeps", nil, day(1), day(1)},
		{"missing end keeps", day(1), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t)
			e.Init(RouteData{Lecture: &model.Lecture{StartDate: tt.start, EndDate: tt.end}}, QueryParams{})
			e.OnDatesValuesChanged()
			assert.Equal(t, tt.wantEnd, e.Lecture().EndDate)
		})
	}
}

func TestEditor_OnFileChange(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Init(RouteData{}, QueryParams{})

	e.OnFileChange([]model.SelectedFile{{Name: "a.pdf", Data: []byte("a")}, {Name: "b.pdf"}})
	require.NotNil(t, e.File())
	assert.Equal(t, "a.pdf", e.File().Name)
	assert.Equal(t, "a.pdf", e.FileName())

	e.OnFileChange(nil)
	assert.Equal(t, "", e.FileName())
	assert.NotNil(t, e.File())
}

func TestEditor_Toggles(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Init(RouteData{}, QueryParams{})
	e.ToggleWizardMode()
	assert.True(t, e.IsShowingWizardMode())
	e.ToggleWizardMode()
	assert.False(t, e.IsShowingWizardMode())
	e.OnSelectProcessUnit()
	assert.True(t, e.ProcessUnitMode())
	e.MarkFileInputTouched()
	assert.True(t, e.FileInputTouched())
	assert.Contains(t, e.AllowedFileExtensions(), "pdf")
	assert.Contains(t, e.AcceptedFileExtensions(), ".pdf")
}

func TestEditor_PreviousState(t *testing.T) {
	t.Run("existing lecture passes its id", func(t *testing.T) {
		e, m := newTestEditor(t)
		e.Init(RouteData{Lecture: &model.Lecture{ID: model.Int64(8)}, Course: course(3)}, QueryParams{})
		m.router.EXPECT().NavigateBackWithOptional(nav.Lectures(3), "8").Return(nil)
		require.NoError(t, e.PreviousState())
	})
	t.Run("new lecture has no optional segment", func(t *testing.T) {
		e, m := newTestEditor(t)
		e.Init(RouteData{Course: course(3)}, QueryParams{})
		m.router.EXPECT().NavigateBackWithOptional(nav.Lectures(3), "").Return(nil)
		require.NoError(t, e.PreviousState())
	})
	t.Run("missing course", func(t *testing.T) {
		e, _ := newTestEditor(t)
		e.Init(RouteData{}, QueryParams{})
		assert.ErrorIs(t, e.PreviousState(), ErrMissingIdentifier)
	})
}
