package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/leapstack-labs/sqlsplit/pkg/classify"
)

// statementRow is one split statement with its render metadata.
type statementRow struct {
	Index int           `json:"index"`
	Kind  classify.Kind `json:"-"`
	SQL   string        `json:"sql"`
}

// MarshalJSON includes the kind as its string name.
func (r statementRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int    `json:"index"`
		Kind  string `json:"kind"`
		SQL   string `json:"sql"`
	}{r.Index, r.Kind.String(), r.SQL})
}

func buildRows(stmts []string, withKinds bool) []statementRow {
	rows := make([]statementRow, len(stmts))
	for i, s := range stmts {
		rows[i] = statementRow{Index: i + 1, SQL: s}
		if withKinds {
			rows[i].Kind = classify.Resolve(s)
		}
	}
	return rows
}

// resolveFormat maps the "auto" output mode to table on a TTY and plain
// otherwise.
func resolveFormat(format string) string {
	if format != "auto" && format != "" {
		return format
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "table"
	}
	return "plain"
}

func renderStatements(w io.Writer, stmts []string, format string, withKinds bool) error {
	switch resolveFormat(format) {
	case "json":
		// JSON output always includes the kind field.
		return renderJSON(w, buildRows(stmts, true))
	case "table":
		renderTable(w, buildRows(stmts, withKinds), withKinds)
		return nil
	case "plain":
		renderPlain(w, buildRows(stmts, false))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (supported: auto, table, plain, json)", format)
	}
}

func renderJSON(w io.Writer, rows []statementRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderTable(w io.Writer, rows []statementRow, withKinds bool) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 statements)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	if withKinds {
		t.AppendHeader(table.Row{"#", "Kind", "Statement"})
		for _, r := range rows {
			t.AppendRow(table.Row{r.Index, r.Kind.String(), r.SQL})
		}
	} else {
		t.AppendHeader(table.Row{"#", "Statement"})
		for _, r := range rows {
			t.AppendRow(table.Row{r.Index, r.SQL})
		}
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d statements)\n", len(rows))
}

// renderPlain prints each statement terminated by a semicolon, separated by
// blank lines, so the output is itself a valid script.
func renderPlain(w io.Writer, rows []statementRow) {
	for i, r := range rows {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		sql := r.SQL
		if !strings.HasSuffix(sql, ";") {
			sql += ";"
		}
		_, _ = fmt.Fprintln(w, sql)
	}
}
