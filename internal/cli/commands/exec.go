package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlsplit/internal/cli/config"
	"github.com/leapstack-labs/sqlsplit/internal/exec"
	"github.com/leapstack-labs/sqlsplit/internal/state"
	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
	"github.com/leapstack-labs/sqlsplit/pkg/splitter"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [file]",
		Short: "Split a SQL script and execute it in one transaction",
		Long: `Exec splits the input like the split command, then executes the
statements sequentially inside a single transaction against the database
named by --dsn. The first failing statement rolls everything back. Each
batch outcome is recorded in the execution history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetCurrentConfig()
			d, err := dialect.Parse(cfg.Dialect)
			if err != nil {
				return err
			}
			if cfg.DSN == "" {
				return fmt.Errorf("exec requires --dsn (or the dsn config key)")
			}

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			stmts, report := splitter.SplitWithReport(text, d)
			for _, open := range report.Unterminated {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unterminated %s at byte %d\n", open.Kind, open.Offset)
			}
			if len(stmts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to execute")
				return nil
			}

			db, err := exec.Open(d, cfg.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			logger := config.GetLogger(cmd.Context())
			batch := exec.NewBatch(d, stmts)
			res, runErr := exec.NewRunner(db, logger).Run(cmd.Context(), batch)

			recordHistory(cmd.Context(), cfg, batch, res, runErr)

			if runErr != nil {
				return runErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Executed %d statements in %s (batch %s)\n",
				res.Executed, res.Duration.Round(rounding), res.BatchID)
			return nil
		},
	}
	return cmd
}

// recordHistory stores the batch outcome; history failures are logged but do
// not fail the command.
func recordHistory(ctx context.Context, cfg *config.Config, batch exec.Batch, res *exec.Result, runErr error) {
	logger := config.GetLogger(ctx)

	store, err := openHistory(cfg)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	rec := state.BatchRecord{
		ID:         batch.ID,
		Dialect:    batch.Dialect,
		Statements: len(batch.Statements),
		Status:     state.StatusSuccess,
	}
	if runErr != nil {
		rec.Status = state.StatusFailed
		rec.Error = runErr.Error()
	}
	if res != nil {
		rec.Duration = res.Duration
	}

	if err := store.RecordBatch(ctx, rec); err != nil {
		logger.Warn("failed to record batch history", "batch", batch.ID, "error", err)
	}
}
