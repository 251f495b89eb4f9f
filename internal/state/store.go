// Package state persists the execution history of statement batches in a
// local SQLite file, with schema managed by embedded migrations.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
)

// BatchStatus is the recorded outcome of a batch.
type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

// BatchRecord is one history entry.
type BatchRecord struct {
	ID         string
	Dialect    dialect.Dialect
	Statements int
	Status     BatchStatus
	Error      string
	Duration   time.Duration
	CreatedAt  time.Time
}

// HistoryStore records executed batches in a SQLite database.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the history database at path and runs
// pending migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	s := &HistoryStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordBatch inserts one history entry.
func (s *HistoryStore) RecordBatch(ctx context.Context, rec BatchRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batches (id, dialect, statements, status, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Dialect), rec.Statements, string(rec.Status),
		rec.Error, rec.Duration.Milliseconds(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record batch %s: %w", rec.ID, err)
	}
	return nil
}

// ListBatches returns up to limit history entries, most recent first.
func (s *HistoryStore) ListBatches(ctx context.Context, limit int) ([]BatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dialect, statements, status, error, duration_ms, created_at
		 FROM batches ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []BatchRecord
	for rows.Next() {
		var rec BatchRecord
		var d string
		var status string
		var durationMS int64
		if err := rows.Scan(&rec.ID, &d, &rec.Statements, &status,
			&rec.Error, &durationMS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		rec.Dialect = dialect.Dialect(d)
		rec.Status = BatchStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}
