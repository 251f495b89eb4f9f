package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlsplit/internal/cli/config"
	"github.com/leapstack-labs/sqlsplit/internal/state"
)

// rounding is the display precision for durations.
const rounding = time.Millisecond

// openHistory opens the history store at the configured path, creating the
// parent directory if needed.
func openHistory(cfg *config.Config) (*state.HistoryStore, error) {
	dir := filepath.Dir(cfg.HistoryPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	return state.Open(cfg.HistoryPath)
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently executed batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetCurrentConfig()

			store, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			recs, err := store.ListBatches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No batches recorded")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Batch", "Dialect", "Stmts", "Status", "Duration", "When", "Error"})
			for _, rec := range recs {
				t.AppendRow(table.Row{
					shortID(rec.ID),
					rec.Dialect,
					rec.Statements,
					rec.Status,
					rec.Duration.Round(rounding),
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					truncate(rec.Error, 60),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of batches to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
