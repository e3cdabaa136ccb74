package store

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// RecentFile is a file the editor has opened.
type RecentFile struct {
	Path   string
	Col    int
	Row    int
	Opened time.Time
}

// RecordFile upserts path with the focused cell and bumps its opened time.
// No-op on nil receiver.
func (s *Store) RecordFile(path string, col, row int) {
	if s == nil || path == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO files (path, focus_col, focus_row, opened) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			focus_col = excluded.focus_col,
			focus_row = excluded.focus_row,
			opened    = excluded.opened`,
		absPath(path), col, row, time.Now().UnixNano(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to record file")
	}
}

// LastFocus returns the cell that was focused when path was last recorded.
// Safe to call on a nil receiver (returns miss).
func (s *Store) LastFocus(path string) (col, row int, ok bool) {
	if s == nil || path == "" {
		return 0, 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.QueryRow(
		"SELECT focus_col, focus_row FROM files WHERE path = ?", absPath(path),
	).Scan(&col, &row)
	if err != nil {
		return 0, 0, false
	}
	return col, row, true
}

// RecentFiles returns up to limit files, most recently opened first.
func (s *Store) RecentFiles(limit int) ([]RecentFile, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT path, focus_col, focus_row, opened
		 FROM files ORDER BY opened DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RecentFile
	for rows.Next() {
		var f RecentFile
		var opened int64
		if err := rows.Scan(&f.Path, &f.Col, &f.Row, &opened); err != nil {
			continue
		}
		f.Opened = time.Unix(0, opened)
		files = append(files, f)
	}
	return files, rows.Err()
}

// ForgetFile removes path from the recent list.
func (s *Store) ForgetFile(path string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM files WHERE path = ?", absPath(path))
	return err
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
