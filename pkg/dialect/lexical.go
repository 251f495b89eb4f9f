// Package dialect defines the closed set of SQL dialects the splitter
// understands and the per-dialect lexical configuration that parameterizes
// statement scanning. This package is pure data with no database driver
// dependencies.
package dialect

import "fmt"

// Dialect identifies a SQL database product's lexical conventions.
type Dialect string

// The supported dialects. The set is closed: every exported API in this
// module takes one of these values, and the configuration table below is
// total over them.
const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	MSSQL    Dialect = "mssql"
	SQLite   Dialect = "sqlite"
)

// All returns the supported dialects in stable order.
func All() []Dialect {
	return []Dialect{Postgres, MySQL, MSSQL, SQLite}
}

// Parse resolves a dialect name (including common aliases) to a Dialect.
func Parse(name string) (Dialect, error) {
	switch name {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unknown dialect %q (supported: postgres, mysql, mssql, sqlite)", name)
}

// String returns the dialect identifier.
func (d Dialect) String() string { return string(d) }

// LexicalConfig holds the lexical feature flags for one dialect. Each flag
// gates a region form the scanner may enter; a wrong flag makes the scanner
// mis-detect a region boundary for that dialect's real-world SQL.
type LexicalConfig struct {
	// DollarQuotes enables $tag$ ... $tag$ string literals.
	DollarQuotes bool

	// NestedBlockComments makes /* */ comments nest with a depth counter.
	NestedBlockComments bool

	// BacktickIdentifiers enables `identifier` quoting.
	BacktickIdentifiers bool

	// BackslashEscape makes \' a non-terminating quote inside string literals.
	BackslashEscape bool

	// HashLineComment enables # line comments.
	HashLineComment bool

	// BracketIdentifiers enables [identifier] quoting.
	BracketIdentifiers bool
}

// lexical is the per-dialect feature table. Exactly one entry exists per
// Dialect value; totality is asserted at init so a missing entry fails fast
// when a new dialect is added.
var lexical = map[Dialect]LexicalConfig{
	Postgres: {
		DollarQuotes:        true,
		NestedBlockComments: true,
	},
	MySQL: {
		BacktickIdentifiers: true,
		BackslashEscape:     true,
		HashLineComment:     true,
	},
	MSSQL: {
		BracketIdentifiers: true,
	},
	SQLite: {
		BacktickIdentifiers: true,
		BracketIdentifiers:  true,
	},
}

func init() {
	for _, d := range All() {
		if _, ok := lexical[d]; !ok {
			panic(fmt.Sprintf("dialect: no lexical config for %s", d))
		}
	}
}

// Lexical returns the lexical configuration for the dialect. The mapping is
// total over the closed dialect set; an out-of-set value is a programming
// error and panics rather than silently falling back.
func (d Dialect) Lexical() LexicalConfig {
	cfg, ok := lexical[d]
	if !ok {
		panic(fmt.Sprintf("dialect: unknown dialect %q", string(d)))
	}
	return cfg
}
