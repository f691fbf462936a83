package history

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lectern/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Title", "Course", "Lecture"}
	rows := [][]string{
		{"Intro", "1", "12"},
		{"Vorlesung über Graphen", "22", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true, 2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Title                   Course  Lecture" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Intro                        1       12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Vorlesung über Graphen      22        3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, 80); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No saves recorded yet.\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderRecords(t *testing.T) {
	records := []model.SaveRecord{
		{SavedAt: time.Now(), Action: model.SaveActionUpdated, CourseID: 1, LectureID: 10, Title: "Intro"},
		{SavedAt: time.Now(), Action: model.SaveActionCreated, CourseID: 2, Title: "Broken", Error: "response error 400"},
	}
	var buf bytes.Buffer
	if err := Render(&buf, records, 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d: %q", len(lines), out)
	}
	for _, want := range []string{"updated", "ok", "failed: response error 400", " - "} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %s", want, out)
		}
	}

	buf.Reset()
	if err := Render(&buf, records, 20); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if w := len([]rune(line)); w > 20 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}
