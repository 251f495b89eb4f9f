package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlsplit/internal/cli/config"
	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
	"github.com/leapstack-labs/sqlsplit/pkg/splitter"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively split SQL as you type",
		Long: `REPL reads SQL interactively and echoes the split statements once the
input forms a complete statement. Input keeps accumulating across lines
while a string, comment, or dollar quote is still open, or the last
statement has no terminating semicolon.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetCurrentConfig()
			d, err := dialect.Parse(cfg.Dialect)
			if err != nil {
				return err
			}
			return runREPL(cmd, d, cfg.OutputFormat)
		},
	}
}

func runREPL(cmd *cobra.Command, d dialect.Dialect, format string) error {
	historyDir := filepath.Dir(config.GetCurrentConfig().HistoryPath)
	_ = os.MkdirAll(historyDir, 0750)
	historyFile := filepath.Join(historyDir, "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(d),
		HistoryFile:     historyFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "sqlsplit REPL (dialect: %s)\n", d)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(prompt(d))
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		trimmed := strings.TrimSpace(line)
		if buffer.Len() == 0 && trimmed == "" {
			continue
		}

		// Dot-commands only apply outside an accumulating statement.
		if buffer.Len() == 0 && strings.HasPrefix(trimmed, ".") {
			quit, newDialect := handleDotCommand(cmd, trimmed, d)
			if quit {
				break
			}
			if newDialect != "" {
				d = newDialect
				rl.SetPrompt(prompt(d))
			}
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")

		// The scanner, not a suffix check, decides completeness: a trailing
		// semicolon inside a string or comment does not end the input.
		stmts, report := splitter.SplitWithReport(buffer.String(), d)
		if report.Incomplete || len(report.Unterminated) > 0 {
			rl.SetPrompt("   ...> ")
			continue
		}
		buffer.Reset()
		rl.SetPrompt(prompt(d))

		if len(stmts) == 0 {
			continue
		}
		if err := renderStatements(out, stmts, format, true); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

func prompt(d dialect.Dialect) string {
	return fmt.Sprintf("%s> ", d)
}

// handleDotCommand executes a dot-command. It reports whether the REPL
// should exit and, for .dialect, the dialect to switch to.
func handleDotCommand(cmd *cobra.Command, line string, current dialect.Dialect) (quit bool, newDialect dialect.Dialect) {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true, ""

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".dialect":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current dialect: %s\n", current)
			return false, ""
		}
		d, err := dialect.Parse(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false, ""
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dialect set to %s\n", d)
		return false, d

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false, ""
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .dialect [name]   Show or switch the SQL dialect
  .clear            Clear the screen
  .quit / .exit     Exit the REPL

Tips:
  - Input accumulates until every statement is terminated and no
    string, comment, or dollar quote is left open
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func replCompleter() *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0, len(dialect.All()))
	for _, d := range dialect.All() {
		dialects = append(dialects, readline.PcItem(string(d)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
