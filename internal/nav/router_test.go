package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lectern/internal/model"
)

func TestRoutePaths(t *testing.T) {
	assert.Equal(t, "course-management/3/lectures", Lectures(3).Path())
	assert.Equal(t, "course-management/3/lectures/7", LectureDetail(3, 7).Path())
	assert.Equal(t, "course-management/3/lectures/7/edit", LectureEdit(3, 7).Path())
	assert.Equal(t, "course-management/3/lectures/new", LectureNew(3).Path())

	file := &model.SelectedFile{Name: "slides.pdf", Data: []byte("%PDF")}
	r := UnitProcessing(3, 7, UnitProcessingState{File: file, FileName: "slides.pdf"})
	assert.Equal(t, "course-management/3/lectures/7/unit-management/attachment-units/process", r.Path())
	state, ok := r.State.(UnitProcessingState)
	require.True(t, ok)
	assert.Same(t, file, state.File)
}

func TestRouteMatch(t *testing.T) {
	tests := []struct {
		route     Route
		kind      Kind
		courseID  int64
		lectureID int64
	}{
		{Lectures(1), KindLectures, 1, 0},
		{LectureNew(1), KindLectureNew, 1, 0},
		{LectureEdit(1, 2), KindLectureEdit, 1, 2},
		{LectureDetail(1, 2), KindLectureDetail, 1, 2},
		{UnitProcessing(1, 2, UnitProcessingState{}), KindUnitProcessing, 1, 2},
		{Route{Segments: []string{"course-management", "x", "lectures"}}, KindUnknown, 0, 0},
		{Route{Segments: []string{"admin"}}, KindUnknown, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.route.Path(), func(t *testing.T) {
			kind, courseID, lectureID := tt.route.Match()
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.courseID, courseID)
			assert.Equal(t, tt.lectureID, lectureID)
		})
	}
}

func TestRouterNavigateAndBack(t *testing.T) {
	var seen []string
	r := NewRouter(Lectures(1), func(route Route) {
		seen = append(seen, route.Path())
	})
	assert.False(t, r.CanGoBack())

	require.NoError(t, r.Navigate(LectureNew(1)))
	assert.True(t, r.CanGoBack())
	assert.True(t, r.Back())
	assert.False(t, r.Back())
	assert.Equal(t, []string{"course-management/1/lectures/new", "course-management/1/lectures"}, seen)

	assert.Error(t, r.Navigate(Route{}))
}

func TestNavigateBackWithOptional(t *testing.T) {
	t.Run("goes back when history exists", func(t *testing.T) {
		r := NewRouter(LectureDetail(1, 5), nil)
		require.NoError(t, r.Navigate(LectureEdit(1, 5)))
		require.NoError(t, r.NavigateBackWithOptional(Lectures(1), "5"))
		assert.Equal(t, "course-management/1/lectures/5", r.Current().Path())
	})
	t.Run("uses fallback with optional on first page", func(t *testing.T) {
		r := NewRouter(LectureEdit(1, 5), nil)
		require.NoError(t, r.NavigateBackWithOptional(Lectures(1), "5"))
		assert.Equal(t, "course-management/1/lectures/5", r.Current().Path())
	})
	t.Run("uses bare fallback without optional", func(t *testing.T) {
		r := NewRouter(LectureNew(1), nil)
		require.NoError(t, r.NavigateBackWithOptional(Lectures(1), ""))
		assert.Equal(t, "course-management/1/lectures", r.Current().Path())
	})
}
