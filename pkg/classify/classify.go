// Package classify resolves a SQL statement to a coarse statement kind by
// its first keyword. The splitter retains comments in statement text, so
// classification skips leading comments before reading the keyword.
package classify

import "strings"

// Kind is a coarse statement category used for display and for deciding
// whether a statement returns rows.
type Kind int

const (
	// KindOther is the fallback for unrecognized first keywords.
	KindOther Kind = iota
	// KindQuery covers row-returning statements (SELECT, WITH, VALUES).
	KindQuery
	// KindDDL covers schema changes (CREATE, ALTER, DROP, ...).
	KindDDL
	// KindDML covers data changes (INSERT, UPDATE, DELETE, ...).
	KindDML
	// KindTransaction covers transaction control (BEGIN, COMMIT, ...).
	KindTransaction
	// KindUtility covers session and introspection statements (SET, SHOW,
	// EXPLAIN, PRAGMA, ...).
	KindUtility
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindDDL:
		return "ddl"
	case KindDML:
		return "dml"
	case KindTransaction:
		return "transaction"
	case KindUtility:
		return "utility"
	default:
		return "other"
	}
}

// keywords maps an uppercased first keyword to its kind. Lookup misses fall
// back to KindOther rather than erroring.
var keywords = map[string]Kind{
	"SELECT": KindQuery,
	"WITH":   KindQuery,
	"VALUES": KindQuery,
	"TABLE":  KindQuery,

	"CREATE":   KindDDL,
	"ALTER":    KindDDL,
	"DROP":     KindDDL,
	"TRUNCATE": KindDDL,
	"RENAME":   KindDDL,
	"COMMENT":  KindDDL,
	"GRANT":    KindDDL,
	"REVOKE":   KindDDL,

	"INSERT":  KindDML,
	"UPDATE":  KindDML,
	"DELETE":  KindDML,
	"REPLACE": KindDML,
	"MERGE":   KindDML,
	"COPY":    KindDML,

	"BEGIN":     KindTransaction,
	"START":     KindTransaction,
	"COMMIT":    KindTransaction,
	"ROLLBACK":  KindTransaction,
	"SAVEPOINT": KindTransaction,
	"RELEASE":   KindTransaction,

	"SET":      KindUtility,
	"SHOW":     KindUtility,
	"DESCRIBE": KindUtility,
	"DESC":     KindUtility,
	"EXPLAIN":  KindUtility,
	"ANALYZE":  KindUtility,
	"USE":      KindUtility,
	"PRAGMA":   KindUtility,
	"VACUUM":   KindUtility,
	"REINDEX":  KindUtility,
	"ATTACH":   KindUtility,
	"DETACH":   KindUtility,
	"DO":       KindUtility,
}

// Resolve returns the kind of stmt by its first keyword after any leading
// comments. It never fails; text without a recognizable keyword is KindOther.
func Resolve(stmt string) Kind {
	word := firstKeyword(stmt)
	if word == "" {
		return KindOther
	}
	if k, ok := keywords[strings.ToUpper(word)]; ok {
		return k
	}
	return KindOther
}

// ExpectsRows reports whether statements of kind k normally produce a result
// set rather than an affected-row count.
func ExpectsRows(k Kind) bool {
	return k == KindQuery || k == KindUtility
}

// firstKeyword returns the first identifier-like token of stmt, skipping
// whitespace, -- and # line comments, and /* */ block comments.
func firstKeyword(stmt string) string {
	s := stmt
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		switch {
		case strings.HasPrefix(s, "--"), strings.HasPrefix(s, "#"):
			nl := strings.IndexByte(s, '\n')
			if nl < 0 {
				return ""
			}
			s = s[nl+1:]
		case strings.HasPrefix(s, "/*"):
			end := strings.Index(s[2:], "*/")
			if end < 0 {
				return ""
			}
			s = s[2+end+2:]
		default:
			i := 0
			for i < len(s) && isWordByte(s[i]) {
				i++
			}
			return s[:i]
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
