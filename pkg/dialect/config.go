package dialect

import "fmt"

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL).
	PlaceholderDollar
	// PlaceholderAt uses @p1, @p2, etc. (MSSQL).
	PlaceholderAt
)

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // opening quote character: " or [
	QuoteEnd string // closing quote character (] for [, otherwise same as Quote)
	Escape   string // doubled-closer escape sequence: "" or ]]
}

// Config is the full static configuration for one dialect: the lexical
// feature flags consumed by the scanner plus the identifier quoting and
// parameter placeholder metadata consumed by the DDL builders and executor.
type Config struct {
	Name        Dialect
	Lexical     LexicalConfig
	Identifiers IdentifierConfig
	Placeholder PlaceholderStyle

	// Driver is the database/sql driver name used by the executor, empty
	// when no driver is bundled for the dialect.
	Driver string
}

var configs = map[Dialect]*Config{
	Postgres: {
		Name:        Postgres,
		Lexical:     lexical[Postgres],
		Identifiers: IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
		Placeholder: PlaceholderDollar,
		Driver:      "pgx",
	},
	MySQL: {
		Name:        MySQL,
		Lexical:     lexical[MySQL],
		Identifiers: IdentifierConfig{Quote: "`", QuoteEnd: "`", Escape: "``"},
		Placeholder: PlaceholderQuestion,
	},
	MSSQL: {
		Name:        MSSQL,
		Lexical:     lexical[MSSQL],
		Identifiers: IdentifierConfig{Quote: "[", QuoteEnd: "]", Escape: "]]"},
		Placeholder: PlaceholderAt,
	},
	SQLite: {
		Name:        SQLite,
		Lexical:     lexical[SQLite],
		Identifiers: IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
		Placeholder: PlaceholderQuestion,
		Driver:      "sqlite",
	},
}

func init() {
	for _, d := range All() {
		if _, ok := configs[d]; !ok {
			panic(fmt.Sprintf("dialect: no config for %s", d))
		}
	}
}

// Config returns the full static configuration for the dialect. Like
// Lexical, the mapping is total over the closed dialect set.
func (d Dialect) Config() *Config {
	cfg, ok := configs[d]
	if !ok {
		panic(fmt.Sprintf("dialect: unknown dialect %q", string(d)))
	}
	return cfg
}
