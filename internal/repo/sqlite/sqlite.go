package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"tournotify/internal/repo"
)

var _ repo.StateStore = (*Store)(nil)

// Store persists the last-notified timestamp in a single-row sqlite table,
// so a redeploy mid-cooldown does not re-fire the alert.
type Store struct {
	db *sql.DB
}

func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; the driver is not safe for concurrent writes
	// on a single file without it.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS notify_state (
    id               INTEGER PRIMARY KEY CHECK (id = 1),
    last_notified_at TEXT NOT NULL
)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create notify_state: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LastNotified(ctx context.Context) (*time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT last_notified_at FROM notify_state WHERE id = 1`,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select notify_state: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("parse last_notified_at %q: %w", raw, err)
	}
	return &t, nil
}

func (s *Store) SetLastNotified(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO notify_state (id, last_notified_at) VALUES (1, ?)
ON CONFLICT (id) DO UPDATE SET last_notified_at = excluded.last_notified_at`,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert notify_state: %w", err)
	}
	return nil
}
