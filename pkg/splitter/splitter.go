// Package splitter implements the multi-dialect SQL statement boundary
// scanner: it splits a text blob into individual statements on semicolons,
// ignoring separators that occur inside string literals, quoted identifiers,
// and comments, under the dialect's lexical rules.
//
// The scanner is a total function: malformed or unterminated constructs are
// absorbed to end-of-text rather than raising an error, because the input
// may be an in-progress edit buffer rather than valid SQL.
package splitter

import (
	"strings"

	"github.com/leapstack-labs/sqlsplit/pkg/dialect"
)

// Split scans text and returns the ordered list of statements, trimmed of
// surrounding whitespace, with empty segments dropped and separators removed.
func Split(text string, d dialect.Dialect) []string {
	s := newScanner(text, d.Lexical())
	s.run()
	return s.out
}

// SplitWithReport is Split plus a non-fatal report about the scan: regions
// left open at end of input and whether the input ended mid-statement.
// Interactive callers use it to warn about probably-unbalanced quoting or to
// decide whether a buffer is complete; the statements returned are identical
// to Split's.
func SplitWithReport(text string, d dialect.Dialect) ([]string, Report) {
	s := newScanner(text, d.Lexical())
	s.run()
	return s.out, s.report
}

// Splitter binds a dialect so callers can split repeatedly without carrying
// the dialect around. It holds no per-call state and is safe for concurrent
// use.
type Splitter struct {
	cfg dialect.LexicalConfig
}

// New returns a Splitter bound to the dialect.
func New(d dialect.Dialect) *Splitter {
	return &Splitter{cfg: d.Lexical()}
}

// Split scans text with the bound dialect.
func (sp *Splitter) Split(text string) []string {
	s := newScanner(text, sp.cfg)
	s.run()
	return s.out
}

// RegionKind identifies the kind of lexical region an advisory refers to.
type RegionKind int

const (
	RegionString RegionKind = iota
	RegionIdentifier
	RegionDollarQuote
	RegionBlockComment
)

// String returns a human-readable region name.
func (k RegionKind) String() string {
	switch k {
	case RegionString:
		return "string literal"
	case RegionIdentifier:
		return "quoted identifier"
	case RegionDollarQuote:
		return "dollar-quoted string"
	case RegionBlockComment:
		return "block comment"
	default:
		return "unknown"
	}
}

// Unterminated flags a region that was still open when input ended. Offset
// is the byte offset of the region's opening delimiter.
type Unterminated struct {
	Kind   RegionKind
	Offset int
}

// Report carries non-fatal scan diagnostics.
type Report struct {
	// Unterminated lists regions absorbed to end-of-text without a closing
	// delimiter, in input order.
	Unterminated []Unterminated

	// Incomplete is true when the input ended with statement text after the
	// last top-level separator, i.e. the final statement was emitted without
	// an explicit terminating semicolon.
	Incomplete bool
}

// scanner is the ephemeral per-call scan state: one forward cursor, the
// statement buffer under construction, and the completed statements.
type scanner struct {
	src    string
	pos    int
	cfg    dialect.LexicalConfig
	buf    strings.Builder
	out    []string
	report Report
}

func newScanner(src string, cfg dialect.LexicalConfig) *scanner {
	return &scanner{src: src, cfg: cfg, out: []string{}}
}

// run performs the single left-to-right pass. At each position exactly one
// handler applies; delimiter characters are disjoint except for $, which
// only opens a region when a valid tag follows.
func (s *scanner) run() {
	for !s.eof() {
		switch c := s.cur(); {
		case c == '\'':
			s.quoted('\'', s.cfg.BackslashEscape, RegionString)
		case c == '"':
			s.quoted('"', false, RegionIdentifier)
		case c == '`' && s.cfg.BacktickIdentifiers:
			s.quoted('`', false, RegionIdentifier)
		case c == '[' && s.cfg.BracketIdentifiers:
			s.bracketed()
		case c == '$' && s.cfg.DollarQuotes && s.dollarQuoted():
			// consumed by dollarQuoted; a $ with no valid tag falls
			// through to the default case below on the next match.
		case c == '#' && s.cfg.HashLineComment:
			s.lineComment()
		case c == '-' && s.peekIs(1, '-'):
			s.lineComment()
		case c == '/' && s.peekIs(1, '*'):
			s.blockComment()
		case c == ';':
			s.flush(true)
			s.pos++
		default:
			s.take()
		}
	}
	s.flush(false)
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) cur() byte { return s.src[s.pos] }

// peekIs reports whether the byte n positions ahead exists and equals c.
func (s *scanner) peekIs(n int, c byte) bool {
	return s.pos+n < len(s.src) && s.src[s.pos+n] == c
}

// take appends the current byte to the statement buffer and advances.
func (s *scanner) take() {
	s.buf.WriteByte(s.src[s.pos])
	s.pos++
}

// takeN appends the next n bytes and advances past them.
func (s *scanner) takeN(n int) {
	s.buf.WriteString(s.src[s.pos : s.pos+n])
	s.pos += n
}

// flush emits the buffered statement if it is non-empty after trimming.
// atSeparator distinguishes a semicolon flush from the end-of-input flush,
// which emits a trailing statement without an explicit terminator.
func (s *scanner) flush(atSeparator bool) {
	stmt := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if stmt == "" {
		return
	}
	s.out = append(s.out, stmt)
	if !atSeparator {
		s.report.Incomplete = true
	}
}

// quoted consumes a region delimited by q, starting at the opening quote.
// A doubled q is a literal and does not close the region; with backslash
// escaping enabled, \q (and any other backslashed byte) is also literal.
func (s *scanner) quoted(q byte, backslash bool, kind RegionKind) {
	start := s.pos
	s.take() // opening quote
	for !s.eof() {
		c := s.cur()
		if backslash && c == '\\' {
			s.take()
			if !s.eof() {
				s.take()
			}
			continue
		}
		if c == q {
			if s.peekIs(1, q) {
				s.takeN(2)
				continue
			}
			s.take()
			return
		}
		s.take()
	}
	s.markOpen(kind, start)
}

// bracketed consumes a [identifier] region. A doubled ]] is a literal ];
// opening brackets do not nest.
func (s *scanner) bracketed() {
	start := s.pos
	s.take() // '['
	for !s.eof() {
		if s.cur() == ']' {
			if s.peekIs(1, ']') {
				s.takeN(2)
				continue
			}
			s.take()
			return
		}
		s.take()
	}
	s.markOpen(RegionIdentifier, start)
}

// dollarQuoted attempts to open a $tag$ region at the current $. It returns
// false without consuming anything when no valid tag follows, in which case
// the $ is an ordinary character. Once a tag is recognized the region closes
// only on an exact repeat of the same tag, found by forward substring
// search; with no match the region absorbs the remaining input.
func (s *scanner) dollarQuoted() bool {
	j := s.pos + 1
	for j < len(s.src) && isTagChar(s.src[j]) {
		j++
	}
	if j >= len(s.src) || s.src[j] != '$' {
		return false
	}
	start := s.pos
	tag := s.src[s.pos : j+1]
	s.takeN(len(tag))

	idx := strings.Index(s.src[s.pos:], tag)
	if idx < 0 {
		s.buf.WriteString(s.src[s.pos:])
		s.pos = len(s.src)
		s.markOpen(RegionDollarQuote, start)
		return true
	}
	s.takeN(idx + len(tag))
	return true
}

// lineComment consumes through the next newline or to end of input. The
// comment text is retained; only separator recognition is suppressed.
func (s *scanner) lineComment() {
	for !s.eof() {
		c := s.cur()
		s.take()
		if c == '\n' {
			return
		}
	}
}

// blockComment consumes a /* */ region. With nesting enabled a depth
// counter tracks inner /* */ pairs; without it the first */ closes
// regardless of intervening openers.
func (s *scanner) blockComment() {
	start := s.pos
	s.takeN(2) // "/*"
	depth := 1
	for !s.eof() {
		if s.cur() == '*' && s.peekIs(1, '/') {
			s.takeN(2)
			depth--
			if !s.cfg.NestedBlockComments || depth == 0 {
				return
			}
			continue
		}
		if s.cfg.NestedBlockComments && s.cur() == '/' && s.peekIs(1, '*') {
			s.takeN(2)
			depth++
			continue
		}
		s.take()
	}
	s.markOpen(RegionBlockComment, start)
}

func (s *scanner) markOpen(kind RegionKind, offset int) {
	s.report.Unterminated = append(s.report.Unterminated, Unterminated{Kind: kind, Offset: offset})
}

// isTagChar reports whether b may appear in a dollar-quote tag body.
func isTagChar(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b == '_'
}
