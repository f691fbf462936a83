// Package model defines shared data structures.
package model

import "time"

// Course is the course a lecture belongs to. Only ID is needed for navigation.
type Course struct {
	ID        *int64 `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	ShortName string `json:"shortName,omitempty"`
}

// Lecture is the entity created or edited by the editor.
// A nil ID marks a lecture that has not been persisted yet.
type Lecture struct {
	ID          *int64     `json:"id,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	VisibleDate *time.Time `json:"visibleDate,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Course      *Course    `json:"course,omitempty"`
}

// IsNew reports whether the lecture has no identifier yet.
func (l *Lecture) IsNew() bool {
	return l == nil || l.ID == nil
}

// CourseID returns the id of the associated course, if any.
func (l *Lecture) CourseID() (int64, bool) {
	if l == nil || l.Course == nil || l.Course.ID == nil {
		return 0, false
	}
	return *l.Course.ID, true
}

// SelectedFile is a file picked in the editor, held in memory only.
type SelectedFile struct {
	Name string
	Data []byte
}

// LectureUnitSplit describes one proposed attachment unit of a slide file.
type LectureUnitSplit struct {
	UnitName    string     `json:"unitName"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	StartPage   int        `json:"startPage"`
	EndPage     int        `json:"endPage"`
}

// LectureUnitInformation is the server's proposal for splitting a file into units.
type LectureUnitInformation struct {
	Units             []LectureUnitSplit `json:"units"`
	NumberOfPages     int                `json:"numberOfPages"`
	RemoveBreakSlides bool               `json:"removeBreakSlides"`
}

// SaveAction tells whether a save created or updated a lecture.
type SaveAction string

const (
	SaveActionCreated SaveAction = "created"
	SaveActionUpdated SaveAction = "updated"
)

// SaveRecord is one entry of the local save journal.
type SaveRecord struct {
	ID        int64
	SavedAt   time.Time
	Action    SaveAction
	CourseID  int64
	LectureID int64
	Title     string
	Error     string
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}
