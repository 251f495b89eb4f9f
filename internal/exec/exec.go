// Package exec runs split statement batches against a database, all
// statements in one transaction with rollback on first failure.
package exec

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/sqlsplit/pkg/dialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Statement is one executable statement with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Batch is an ordered group of statements executed atomically.
type Batch struct {
	ID         string
	Dialect    dialect.Dialect
	Statements []Statement
}

// NewBatch wraps split statement text into a batch with a fresh ID.
func NewBatch(d dialect.Dialect, stmts []string) Batch {
	b := Batch{ID: uuid.NewString(), Dialect: d, Statements: make([]Statement, len(stmts))}
	for i, s := range stmts {
		b.Statements[i] = Statement{SQL: s}
	}
	return b
}

// Result summarizes a completed batch.
type Result struct {
	BatchID  string
	Executed int
	Duration time.Duration
}

// Open opens a database handle for the dialect. Only dialects with a bundled
// driver can be opened.
func Open(d dialect.Dialect, dsn string) (*sql.DB, error) {
	driver := d.Config().Driver
	if driver == "" {
		return nil, fmt.Errorf("no driver configured for dialect %s", d)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d, err)
	}
	return db, nil
}

// Runner executes batches against one database handle.
type Runner struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRunner returns a Runner over db. A nil logger defaults to slog.Default.
func NewRunner(db *sql.DB, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{db: db, logger: logger}
}

// Run executes the batch's statements sequentially in one transaction. On
// the first failure the transaction is rolled back and the error names the
// failing statement's position.
func (r *Runner) Run(ctx context.Context, batch Batch) (*Result, error) {
	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	for i, stmt := range batch.Statements {
		r.logger.Debug("executing statement",
			"batch", batch.ID, "index", i+1, "total", len(batch.Statements))
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("rollback failed", "batch", batch.ID, "error", rbErr)
			}
			return nil, fmt.Errorf("statement %d of %d: %w", i+1, len(batch.Statements), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	res := &Result{
		BatchID:  batch.ID,
		Executed: len(batch.Statements),
		Duration: time.Since(start),
	}
	r.logger.Info("batch executed",
		"batch", res.BatchID, "statements", res.Executed, "duration", res.Duration)
	return res, nil
}
