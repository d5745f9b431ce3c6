// Package lexer splits text into raw segments using an ordered list of
// dialect-supplied rules.
//
// At each offset the rules are tried in declaration order and the first
// one that matches a non-empty prefix wins, regardless of match length.
// A character no rule matches becomes a one-character "unlexable" segment
// and lexing carries on, so lexing never fails.
package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Matcher reports how many bytes at the start of s it accepts.
// Zero means no match.
type Matcher interface {
	Match(s string) int
}

// Rule pairs a matcher with the segment type it produces.
type Rule struct {
	Name    string // unique within a dialect, used when patching rule lists
	Type    string // segment type of produced tokens
	Matcher Matcher
}

// String matches a literal string.
type String string

// Match implements Matcher.
func (m String) Match(s string) int {
	if strings.HasPrefix(s, string(m)) {
		return len(m)
	}
	return 0
}

// Regex matches a regular expression anchored at the cursor.
type Regex struct {
	re *regexp.Regexp
}

// NewRegex compiles pattern anchored at the start of input.
// It panics on an invalid pattern; rules are declared at init time.
func NewRegex(pattern string) *Regex {
	return &Regex{re: regexp.MustCompile(`\A(?:` + pattern + `)`)}
}

// Match implements Matcher.
func (m *Regex) Match(s string) int {
	loc := m.re.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1]
}

// Func adapts a function to the Matcher interface. Used for tokens a
// regular expression cannot describe.
type Func func(s string) int

// Match implements Matcher.
func (f Func) Match(s string) int { return f(s) }

// StringRule builds a rule matching a literal.
func StringRule(name, lit, typ string) Rule {
	return Rule{Name: name, Type: typ, Matcher: String(lit)}
}

// RegexRule builds a rule matching a regular expression.
func RegexRule(name, pattern, typ string) Rule {
	return Rule{Name: name, Type: typ, Matcher: NewRegex(pattern)}
}

// FuncRule builds a rule matching with a function.
func FuncRule(name string, fn func(string) int, typ string) Rule {
	return Rule{Name: name, Type: typ, Matcher: Func(fn)}
}

// Lexer tokenizes text with a fixed rule list. A Lexer is immutable and
// safe for concurrent use.
type Lexer struct {
	rules []Rule
}

// New creates a lexer from an ordered rule list.
func New(rules []Rule) *Lexer {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	return &Lexer{rules: rs}
}

// Rules returns a copy of the rule list.
func (l *Lexer) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Result is the output of Lex.
type Result struct {
	Segments  []*segment.Segment
	Unlexable []token.Range
}

// Lex splits text into raw segments. Concatenating the Raw text of the
// returned segments always reproduces text exactly.
func (l *Lexer) Lex(text string) Result {
	var res Result
	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		n, typ := l.match(rest)
		if n == 0 {
			_, size := utf8.DecodeRuneInString(rest)
			n, typ = size, segment.TypeUnlexable
			res.Unlexable = append(res.Unlexable, token.Range{Start: pos, End: pos + n})
		}
		res.Segments = append(res.Segments,
			segment.NewRaw(typ, text[pos:pos+n], token.Range{Start: pos, End: pos + n}))
		pos += n
	}
	return res
}

func (l *Lexer) match(s string) (int, string) {
	for _, r := range l.rules {
		if n := r.Matcher.Match(s); n > 0 {
			return min(n, len(s)), r.Type
		}
	}
	return 0, ""
}
