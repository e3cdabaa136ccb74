// Package store provides a SQLite-backed record of recently opened files and
// the cell that was focused in each.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path      TEXT PRIMARY KEY,
	focus_col INTEGER NOT NULL DEFAULT 1,
	focus_row INTEGER NOT NULL DEFAULT 1,
	opened    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_opened ON files(opened);
`

// maxRecentFiles is how many files survive pruning at open.
const maxRecentFiles = 50

// Store is a SQLite-backed editor state database.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a state database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	s.Prune(maxRecentFiles)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Prune keeps only the keep most recently opened files.
func (s *Store) Prune(keep int) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`DELETE FROM files WHERE path NOT IN (
			SELECT path FROM files ORDER BY opened DESC LIMIT ?
		)`, keep,
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to prune recent files")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("pruned recent files")
	}
}
