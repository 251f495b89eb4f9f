package ddl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
	"github.com/leapstack-labs/sqlsplit/pkg/splitter"
)

func usersTable() Table {
	return Table{
		Name:    "users",
		Comment: "registered users; includes inactive",
		Columns: []Column{
			{Name: "id", Type: "BIGINT", NotNull: true},
			{Name: "name", Type: "TEXT", NotNull: true, Comment: "display name"},
			{Name: "created_at", Type: "TIMESTAMP", Default: "CURRENT_TIMESTAMP"},
		},
		Indexes: []Index{
			{Name: "idx_users_name", Columns: []string{"name"}, Unique: true},
			{Columns: []string{"created_at"}},
		},
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		dialect dialect.Dialect
		name    string
		want    string
	}{
		{dialect.Postgres, "users", `"users"`},
		{dialect.Postgres, `we"ird`, `"we""ird"`},
		{dialect.MySQL, "users", "`users`"},
		{dialect.MySQL, "we`ird", "`we``ird`"},
		{dialect.MSSQL, "users", "[users]"},
		{dialect.MSSQL, "we]ird", "[we]]ird]"},
		{dialect.SQLite, "users", `"users"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect)+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBuilder(tt.dialect).QuoteIdent(tt.name))
		})
	}
}

func TestCreateTableScript_Postgres(t *testing.T) {
	script, err := NewBuilder(dialect.Postgres).CreateTableScript(usersTable())
	require.NoError(t, err)

	assert.Contains(t, script, `CREATE TABLE "users"`)
	assert.Contains(t, script, `"id" BIGINT NOT NULL`)
	assert.Contains(t, script, `"created_at" TIMESTAMP DEFAULT CURRENT_TIMESTAMP`)
	assert.Contains(t, script, `COMMENT ON TABLE "users" IS 'registered users; includes inactive';`)
	assert.Contains(t, script, `COMMENT ON COLUMN "users"."name" IS 'display name';`)
	assert.Contains(t, script, `CREATE UNIQUE INDEX "idx_users_name" ON "users" ("name");`)
	assert.Contains(t, script, `CREATE INDEX "idx_users_created_at" ON "users" ("created_at");`)

	// The script's semicolons inside the comment literal must not fool the
	// splitter: one table + two comments + two indexes.
	stmts := splitter.Split(script, dialect.Postgres)
	assert.Len(t, stmts, 5)
}

func TestCreateTableScript_MySQLInlineComments(t *testing.T) {
	script, err := NewBuilder(dialect.MySQL).CreateTableScript(usersTable())
	require.NoError(t, err)

	assert.Contains(t, script, "`name` TEXT NOT NULL COMMENT 'display name'")
	assert.NotContains(t, script, "COMMENT ON")

	stmts := splitter.Split(script, dialect.MySQL)
	assert.Len(t, stmts, 3) // table + two indexes
}

func TestCreateTableScript_SQLiteOmitsComments(t *testing.T) {
	script, err := NewBuilder(dialect.SQLite).CreateTableScript(usersTable())
	require.NoError(t, err)

	assert.NotContains(t, script, "COMMENT")
	stmts := splitter.Split(script, dialect.SQLite)
	assert.Len(t, stmts, 3)
}

func TestCreateTableScript_Validation(t *testing.T) {
	b := NewBuilder(dialect.Postgres)

	_, err := b.CreateTableScript(Table{Columns: []Column{{Name: "id", Type: "INT"}}})
	assert.Error(t, err)

	_, err = b.CreateTableScript(Table{Name: "empty"})
	assert.Error(t, err)
}

func TestQuoteLiteral_EscapesQuotes(t *testing.T) {
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
}
