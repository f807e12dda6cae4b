package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandwatch/sandwatch/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS mount_checks (
    id TEXT PRIMARY KEY,
    mounted INTEGER NOT NULL,
    error TEXT,
    detail TEXT,
    duration_ms INTEGER,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS gateway_lookups (
    id TEXT PRIMARY KEY,
    found INTEGER NOT NULL,
    handle_id TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_mount_checks_created ON mount_checks(created_at);
`

// Store keeps an append-only record of checks for the debug API. It is
// never read by the detectors themselves: every check recomputes its
// verdict from the backend's live state.
type Store struct {
	db *sql.DB
}

// MountCheckEntry is one recorded mount check.
type MountCheckEntry struct {
	ID         string `json:"id"`
	Mounted    bool   `json:"mounted"`
	Error      string `json:"error,omitempty"`
	Detail     string `json:"detail,omitempty"`
	DurationMS int    `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// Open opens (or creates) the check-history database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "checks.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordMountCheck appends one mount check outcome.
func (s *Store) RecordMountCheck(status types.MountStatus, durationMS int) error {
	mounted := 0
	if status.Mounted {
		mounted = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO mount_checks (id, mounted, error, detail, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), mounted, status.Error, status.Detail, durationMS)
	if err != nil {
		return fmt.Errorf("failed to record mount check: %w", err)
	}
	return nil
}

// RecordGatewayLookup appends one gateway locator outcome.
func (s *Store) RecordGatewayLookup(handleID string) error {
	found := 0
	if handleID != "" {
		found = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO gateway_lookups (id, found, handle_id) VALUES (?, ?, ?)`,
		uuid.NewString(), found, handleID)
	if err != nil {
		return fmt.Errorf("failed to record gateway lookup: %w", err)
	}
	return nil
}

// RecentMountChecks returns the most recent mount checks, newest first.
func (s *Store) RecentMountChecks(limit int) ([]MountCheckEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, mounted, error, detail, duration_ms, created_at
		 FROM mount_checks ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mount checks: %w", err)
	}
	defer rows.Close()

	var entries []MountCheckEntry
	for rows.Next() {
		var e MountCheckEntry
		var mounted int
		if err := rows.Scan(&e.ID, &mounted, &e.Error, &e.Detail, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mount check row: %w", err)
		}
		e.Mounted = mounted == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
