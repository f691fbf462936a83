// Package store handles SQLite persistence of the local save journal.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/lectern/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the save journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY,
			saved_at TEXT NOT NULL,
			action TEXT NOT NULL,
			course_id INTEGER NOT NULL,
			lecture_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			error TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_course_id ON saves(course_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordSave stores one save outcome.
func (s *Store) RecordSave(ctx context.Context, record model.SaveRecord) error {
	_, err := s.InsertSave(ctx, record)
	return err
}

// InsertSave stores one save outcome and returns its row id.
func (s *Store) InsertSave(ctx context.Context, record model.SaveRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (saved_at, action, course_id, lecture_id, title, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.SavedAt.Format(time.RFC3339Nano),
		string(record.Action),
		record.CourseID,
		record.LectureID,
		record.Title,
		record.Error,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSaves returns the most recent saves, newest first. courseID 0 means all
// courses, limit <= 0 means no limit.
func (s *Store) ListSaves(ctx context.Context, courseID int64, limit int) ([]model.SaveRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, saved_at, action, course_id, lecture_id, title, error
		 FROM saves
		 WHERE (? = 0 OR course_id = ?)
		 ORDER BY saved_at DESC, id DESC
		 LIMIT ?`,
		courseID, courseID, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SaveRecord
	for rows.Next() {
		var rec model.SaveRecord
		var savedAt, action string
		if err := rows.Scan(&rec.ID, &savedAt, &action, &rec.CourseID, &rec.LectureID, &rec.Title, &rec.Error); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, err
		}
		rec.SavedAt = parsed
		rec.Action = model.SaveAction(action)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
