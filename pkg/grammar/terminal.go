package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// single matches exactly one code token at pos and retypes it.
func single(ctx *Context, pos int, newType string, accept func(tok *segment.Segment) bool) Result {
	if !ctx.IsCode(pos) {
		return noMatch()
	}
	tok := ctx.Token(pos)
	if !accept(tok) {
		return noMatch()
	}
	if newType != "" && newType != tok.Type() {
		tok = tok.WithType(newType)
	}
	return Result{ok: true, end: pos + 1, segments: []*segment.Segment{tok}, clean: true}
}

type keyword struct {
	word string
}

// Keyword matches a word token equal to word, ignoring case, and types it
// as a keyword. Reserved status is irrelevant here: unreserved keywords
// still match where the grammar asks for them.
func Keyword(word string) Matcher {
	return &keyword{word: strings.ToUpper(word)}
}

func (k *keyword) Match(ctx *Context, pos int) Result {
	return single(ctx, pos, segment.TypeKeyword, func(tok *segment.Segment) bool {
		return tok.Type() == segment.TypeWord && strings.EqualFold(tok.Raw(), k.word)
	})
}

func (k *keyword) String() string { return k.word }

// Keywords matches a sequence of keywords, e.g. Keywords("GROUP", "BY").
func Keywords(words ...string) Matcher {
	elems := make([]Matcher, len(words))
	for i, w := range words {
		elems[i] = Keyword(w)
	}
	return Sequence(elems...)
}

type symbol struct {
	raw string
	typ string
}

// Symbol matches a token whose text is exactly raw and types it as typ.
func Symbol(raw, typ string) Matcher {
	return &symbol{raw: raw, typ: typ}
}

func (s *symbol) Match(ctx *Context, pos int) Result {
	return single(ctx, pos, s.typ, func(tok *segment.Segment) bool {
		return tok.Raw() == s.raw
	})
}

func (s *symbol) String() string { return fmt.Sprintf("%q", s.raw) }

type typed struct {
	lexType string
	newType string
}

// Typed matches a token produced by the lexer rule type lexType and
// retypes it as newType. An empty newType keeps the lexer type.
func Typed(lexType, newType string) Matcher {
	return &typed{lexType: lexType, newType: newType}
}

func (t *typed) Match(ctx *Context, pos int) Result {
	return single(ctx, pos, t.newType, func(tok *segment.Segment) bool {
		return tok.Type() == t.lexType
	})
}

func (t *typed) String() string { return "<" + t.lexType + ">" }

type word struct {
	newType string
	pattern *regexp.Regexp
	exclude map[string]bool
}

// Word matches a word token that is not a reserved keyword of the dialect
// and types it as newType. Used for naked identifiers.
func Word(newType string) Matcher {
	return &word{newType: newType}
}

// RegexWord matches a non-reserved word token whose text matches pattern
// (case-insensitive), excluding the listed words.
func RegexWord(pattern, newType string, exclude ...string) Matcher {
	ex := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		ex[strings.ToUpper(e)] = true
	}
	return &word{
		newType: newType,
		pattern: regexp.MustCompile(`(?i)\A(?:` + pattern + `)\z`),
		exclude: ex,
	}
}

func (w *word) Match(ctx *Context, pos int) Result {
	return single(ctx, pos, w.newType, func(tok *segment.Segment) bool {
		if tok.Type() != segment.TypeWord {
			return false
		}
		upper := strings.ToUpper(tok.Raw())
		if ctx.source.IsReserved(upper) || w.exclude[upper] {
			return false
		}
		return w.pattern == nil || w.pattern.MatchString(tok.Raw())
	})
}

func (w *word) String() string {
	if w.pattern != nil {
		return "/" + w.pattern.String() + "/"
	}
	return "<" + w.newType + ">"
}

type nothing struct{}

// Nothing never matches. Dialects use it for hooks that only some
// children fill in.
func Nothing() Matcher { return &nothing{} }

func (*nothing) Match(*Context, int) Result { return noMatch() }
func (*nothing) String() string             { return "<nothing>" }
