package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/lectern/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "lectern.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestListSavesNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []model.SaveRecord{
		{SavedAt: base, Action: model.SaveActionCreated, CourseID: 1, LectureID: 10, Title: "Intro"},
		{SavedAt: base.Add(time.Minute), Action: model.SaveActionUpdated, CourseID: 1, LectureID: 10, Title: "Intro v2"},
		{SavedAt: base.Add(2 * time.Minute), Action: model.SaveActionCreated, CourseID: 2, Title: "Broken", Error: "response error 400"},
	}
	for _, rec := range records {
		if err := st.RecordSave(ctx, rec); err != nil {
			t.Fatalf("record save: %v", err)
		}
	}

	all, err := st.ListSaves(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list saves: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 saves, got %d", len(all))
	}
	if all[0].Title != "Broken" || all[0].Error == "" {
		t.Fatalf("expected newest failed save first, got %+v", all[0])
	}
	if !all[2].SavedAt.Equal(base) {
		t.Fatalf("unexpected saved_at round trip: %v", all[2].SavedAt)
	}

	course1, err := st.ListSaves(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list saves for course: %v", err)
	}
	if len(course1) != 1 {
		t.Fatalf("expected 1 save, got %d", len(course1))
	}
	if course1[0].Action != model.SaveActionUpdated || course1[0].Title != "Intro v2" {
		t.Fatalf("unexpected latest course save: %+v", course1[0])
	}
}

func TestInsertSaveReturnsID(t *testing.T) {
	st := openTestStore(t)
	id, err := st.InsertSave(context.Background(), model.SaveRecord{SavedAt: time.Now(), Action: model.SaveActionCreated})
	if err != nil {
		t.Fatalf("insert save: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}
}
