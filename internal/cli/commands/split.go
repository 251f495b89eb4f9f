// Package commands implements the sqlsplit subcommands.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlsplit/internal/cli/config"
	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
	"github.com/leapstack-labs/sqlsplit/pkg/splitter"
)

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	var (
		withKinds bool
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split a SQL script into individual statements",
		Long: `Split reads SQL from a file (or stdin when no file is given) and prints
the individual statements. Semicolons inside strings, quoted identifiers,
and comments are never treated as separators.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetCurrentConfig()
			d, err := dialect.Parse(cfg.Dialect)
			if err != nil {
				return err
			}

			if watch {
				if len(args) == 0 {
					return fmt.Errorf("--watch requires a file argument")
				}
				return watchAndSplit(cmd, args[0], d, cfg.OutputFormat, withKinds)
			}

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return splitAndRender(cmd, text, d, cfg.OutputFormat, withKinds)
		},
	}

	cmd.Flags().BoolVar(&withKinds, "kinds", false, "Include a statement kind column")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-split the file whenever it changes")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

func splitAndRender(cmd *cobra.Command, text string, d dialect.Dialect, format string, withKinds bool) error {
	stmts, report := splitter.SplitWithReport(text, d)

	for _, open := range report.Unterminated {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unterminated %s at byte %d\n", open.Kind, open.Offset)
	}

	return renderStatements(cmd.OutOrStdout(), stmts, format, withKinds)
}

// watchAndSplit re-splits the file on every write until interrupted. Editors
// often replace files via rename, so the parent directory is watched and
// events are filtered by name.
func watchAndSplit(cmd *cobra.Command, path string, d dialect.Dialect, format string, withKinds bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	logger := config.GetLogger(cmd.Context())

	split := func() {
		data, err := os.ReadFile(abs)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		if err := splitAndRender(cmd, string(data), d, format, withKinds); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	split()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", path)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "file", path, "op", event.Op.String())
			split()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Watch error: %v\n", err)
		}
	}
}
