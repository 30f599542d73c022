// Package sqlite provides SQLite-backed persistence for generation
// attempt records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/fateforge/internal/forge/storage"
	"github.com/louisbranch/fateforge/internal/forge/storage/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/fateforge/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed persistence for attempt records.
type Store struct {
	sqlDB *sql.DB
}

// DB returns the underlying sql.DB instance.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}

// RecordAttempt implements storage.Recorder.
func (s *Store) RecordAttempt(ctx context.Context, rec storage.AttemptRecord) error {
	gatePassed := 0
	if rec.GatePassed {
		gatePassed = 1
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO generation_attempts (id, operation, mode, attempt, gate_passed, problems, latency_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Operation,
		rec.Mode,
		rec.Attempt,
		gatePassed,
		rec.Problems,
		rec.Latency.Milliseconds(),
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("insert attempt record: %w", err)
	}
	return nil
}

// RecentAttempts returns the newest attempt records, most recent first.
func (s *Store) RecentAttempts(ctx context.Context, limit int) ([]storage.AttemptRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, operation, mode, attempt, gate_passed, problems, latency_ms, created_at
FROM generation_attempts
ORDER BY created_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempt records: %w", err)
	}
	defer rows.Close()

	var out []storage.AttemptRecord
	for rows.Next() {
		var (
			rec        storage.AttemptRecord
			gatePassed int
			latencyMS  int64
			createdAt  int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Operation,
			&rec.Mode,
			&rec.Attempt,
			&gatePassed,
			&rec.Problems,
			&latencyMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt record: %w", err)
		}
		rec.GatePassed = gatePassed != 0
		rec.Latency = time.Duration(latencyMS) * time.Millisecond
		rec.CreatedAt = fromMillis(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt records: %w", err)
	}
	return out, nil
}

var _ storage.Recorder = (*Store)(nil)
