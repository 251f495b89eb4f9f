// Package ddl builds multi-statement DDL scripts from table definitions,
// quoting identifiers per dialect. Its output is plain SQL text with
// semicolon-terminated statements, suitable as splitter input.
package ddl

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
)

// Column describes one table column.
type Column struct {
	Name    string
	Type    string
	NotNull bool
	Default string
	Comment string
}

// Index describes a secondary index on the table.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Table describes a table to generate DDL for.
type Table struct {
	Name    string
	Comment string
	Columns []Column
	Indexes []Index
}

// Builder renders DDL scripts for one dialect.
type Builder struct {
	cfg *dialect.Config
}

// NewBuilder returns a Builder for the dialect.
func NewBuilder(d dialect.Dialect) *Builder {
	return &Builder{cfg: d.Config()}
}

// QuoteIdent quotes an identifier with the dialect's quote characters,
// doubling embedded closers.
func (b *Builder) QuoteIdent(name string) string {
	id := b.cfg.Identifiers
	escaped := strings.ReplaceAll(name, id.QuoteEnd, id.Escape)
	return id.Quote + escaped + id.QuoteEnd
}

// CreateTableScript renders the CREATE TABLE statement plus any comment and
// index statements as one script, statements separated by blank lines.
func (b *Builder) CreateTableScript(t Table) (string, error) {
	if t.Name == "" {
		return "", fmt.Errorf("table name is required")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("table %s has no columns", t.Name)
	}

	var stmts []string
	stmts = append(stmts, b.createTable(t))
	stmts = append(stmts, b.commentStatements(t)...)
	for _, idx := range t.Indexes {
		stmts = append(stmts, b.createIndex(t, idx))
	}
	return strings.Join(stmts, "\n\n"), nil
}

func (b *Builder) createTable(t Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(b.QuoteIdent(t.Name))
	sb.WriteString(" (\n")
	for i, col := range t.Columns {
		sb.WriteString("    ")
		sb.WriteString(b.columnDef(col))
		if i < len(t.Columns)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(");")
	return sb.String()
}

func (b *Builder) columnDef(col Column) string {
	var sb strings.Builder
	sb.WriteString(b.QuoteIdent(col.Name))
	sb.WriteString(" ")
	sb.WriteString(col.Type)
	if col.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if col.Default != "" {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(col.Default)
	}
	// MySQL carries column comments inline; other dialects attach them
	// with separate statements or not at all.
	if col.Comment != "" && b.cfg.Name == dialect.MySQL {
		sb.WriteString(" COMMENT ")
		sb.WriteString(quoteLiteral(col.Comment))
	}
	return sb.String()
}

// commentStatements renders COMMENT ON statements for dialects that support
// them. MySQL comments are inline and SQLite has no comment syntax.
func (b *Builder) commentStatements(t Table) []string {
	if b.cfg.Name != dialect.Postgres {
		return nil
	}
	var stmts []string
	if t.Comment != "" {
		stmts = append(stmts, fmt.Sprintf("COMMENT ON TABLE %s IS %s;",
			b.QuoteIdent(t.Name), quoteLiteral(t.Comment)))
	}
	for _, col := range t.Columns {
		if col.Comment == "" {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s;",
			b.QuoteIdent(t.Name), b.QuoteIdent(col.Name), quoteLiteral(col.Comment)))
	}
	return stmts
}

func (b *Builder) createIndex(t Table, idx Index) string {
	name := idx.Name
	if name == "" {
		name = fmt.Sprintf("idx_%s_%s", t.Name, strings.Join(idx.Columns, "_"))
	}
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = b.QuoteIdent(c)
	}
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s);",
		unique, b.QuoteIdent(name), b.QuoteIdent(t.Name), strings.Join(cols, ", "))
}

// quoteLiteral renders a single-quoted SQL string literal, doubling embedded
// quotes.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
