// Package nav provides path-based navigation with a history stack.
package nav

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/lectern/internal/model"
)

// Kind identifies the screen a route points to.
type Kind int

const (
	KindUnknown Kind = iota
	KindLectures
	KindLectureNew
	KindLectureEdit
	KindLectureDetail
	KindUnitProcessing
)

// Route is a navigation target: literal path segments plus an optional state payload.
type Route struct {
	Segments []string
	State    any
}

// UnitProcessingState is handed to the unit processing screen.
type UnitProcessingState struct {
	File     *model.SelectedFile
	FileName string
}

// Path joins the segments with slashes.
func (r Route) Path() string {
	return strings.Join(r.Segments, "/")
}

// Append returns a copy of r with extra segments. State is dropped.
func (r Route) Append(segments ...string) Route {
	out := make([]string, 0, len(r.Segments)+len(segments))
	out = append(out, r.Segments...)
	out = append(out, segments...)
	return Route{Segments: out}
}

// Lectures is course-management/{courseId}/lectures.
func Lectures(courseID int64) Route {
	return Route{Segments: []string{"course-management", id(courseID), "lectures"}}
}

// LectureNew is course-management/{courseId}/lectures/new.
func LectureNew(courseID int64) Route {
	return Lectures(courseID).Append("new")
}

// LectureEdit is course-management/{courseId}/lectures/{lectureId}/edit.
func LectureEdit(courseID, lectureID int64) Route {
	return LectureDetail(courseID, lectureID).Append("edit")
}

// LectureDetail is course-management/{courseId}/lectures/{lectureId}.
func LectureDetail(courseID, lectureID int64) Route {
	return Lectures(courseID).Append(id(lectureID))
}

// UnitProcessing is the attachment unit processing screen of a lecture.
func UnitProcessing(courseID, lectureID int64, state UnitProcessingState) Route {
	r := LectureDetail(courseID, lectureID).Append("unit-management", "attachment-units", "process")
	r.State = state
	return r
}

// Match classifies the route and extracts the ids it carries.
func (r Route) Match() (kind Kind, courseID, lectureID int64) {
	s := r.Segments
	if len(s) < 3 || s[0] != "course-management" || s[2] != "lectures" {
		return KindUnknown, 0, 0
	}
	courseID, err := strconv.ParseInt(s[1], 10, 64)
	if err != nil {
		return KindUnknown, 0, 0
	}
	if len(s) == 3 {
		return KindLectures, courseID, 0
	}
	if len(s) == 4 && s[3] == "new" {
		return KindLectureNew, courseID, 0
	}
	lectureID, err = strconv.ParseInt(s[3], 10, 64)
	if err != nil {
		return KindUnknown, 0, 0
	}
	switch {
	case len(s) == 4:
		return KindLectureDetail, courseID, lectureID
	case len(s) == 5 && s[4] == "edit":
		return KindLectureEdit, courseID, lectureID
	case len(s) == 7 && s[4] == "unit-management" && s[5] == "attachment-units" && s[6] == "process":
		return KindUnitProcessing, courseID, lectureID
	}
	return KindUnknown, 0, 0
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
