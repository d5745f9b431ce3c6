// Package grammar implements the recursive-descent matching engine that
// turns a lexed token stream into a segment tree.
//
// Grammars are built from a small set of combinators (Sequence, OneOf,
// AnyNumberOf, Optional, Bracketed, Delimited, Ref) over terminal matchers
// (Keyword, Symbol, Typed, Word). Named productions live in a RuleSource,
// usually a resolved dialect, and are looked up lazily by Ref so dialects
// can override a rule without touching the rules that reference it.
//
// Matching never fails outright. Text that no alternative accepts is
// wrapped in an "unparsable" segment and matching resumes at the next
// plausible boundary, so every input produces a tree whose leaves
// concatenate back to the input.
package grammar

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// DefaultMaxDepth bounds nested rule references within one parse.
const DefaultMaxDepth = 2048

// ErrUndefinedRule is returned when a grammar references a rule the
// RuleSource does not define.
var ErrUndefinedRule = errors.New("undefined grammar rule")

// RuleSource supplies named productions and dialect facts to the engine.
type RuleSource interface {
	// Rule returns the matcher for a named production.
	Rule(name string) (Matcher, bool)
	// IsReserved reports whether an upper-cased word is a reserved keyword.
	IsReserved(word string) bool
	// BracketPairs returns the bracket kinds known to the dialect.
	BracketPairs() []BracketPair
}

// BracketPair describes one kind of bracket, e.g. round: ( ).
type BracketPair struct {
	Kind  string
	Open  string
	Close string
}

// Matcher is a grammar element. Match attempts to match tokens starting at
// index pos and reports the outcome; it must not consume tokens at or past
// the context's current limit.
type Matcher interface {
	Match(ctx *Context, pos int) Result
	String() string
}

// parent is implemented by matchers that wrap other matchers.
type parent interface {
	subs() []Matcher
}

// Result is the outcome of a match attempt. The zero value is "no match".
type Result struct {
	ok       bool
	end      int
	segments []*segment.Segment
	clean    bool
}

// Matched reports whether the attempt succeeded, possibly consuming nothing.
func (r Result) Matched() bool { return r.ok }

// End returns the index of the first token after the match.
func (r Result) End() int { return r.end }

// Segments returns the matched segments in order.
func (r Result) Segments() []*segment.Segment { return r.segments }

// Clean reports whether the match contains no recovered (unparsable) region.
func (r Result) Clean() bool { return r.ok && r.clean }

func noMatch() Result { return Result{} }

func emptyMatch(pos int) Result {
	return Result{ok: true, end: pos, clean: true}
}

type memoKey struct {
	rule  string
	pos   int
	limit int
}

type memoEntry struct {
	res        Result
	inProgress bool
}

// Context holds the state of one parse call. It is not safe for
// concurrent use and must not outlive the call.
type Context struct {
	tokens   []*segment.Segment
	code     []bool
	source   RuleSource
	limit    int
	memo     map[memoKey]memoEntry
	depth    int
	maxDepth int
	closers  map[int]int
	err      error
}

// NewContext prepares a context over a token stream.
func NewContext(tokens []*segment.Segment, source RuleSource) *Context {
	code := make([]bool, len(tokens))
	for i, t := range tokens {
		code[i] = t.IsCode()
	}
	return &Context{
		tokens:   tokens,
		code:     code,
		source:   source,
		limit:    len(tokens),
		memo:     make(map[memoKey]memoEntry),
		maxDepth: DefaultMaxDepth,
		closers:  make(map[int]int),
	}
}

// SetMaxDepth changes the nesting bound. Values below one are ignored.
func (ctx *Context) SetMaxDepth(n int) {
	if n > 0 {
		ctx.maxDepth = n
	}
}

// Source returns the rule source the context resolves references against.
func (ctx *Context) Source() RuleSource { return ctx.source }

// Limit returns the index matching must stop before.
func (ctx *Context) Limit() int { return ctx.limit }

// Token returns the token at index i, or nil past the limit.
func (ctx *Context) Token(i int) *segment.Segment {
	if i < 0 || i >= ctx.limit {
		return nil
	}
	return ctx.tokens[i]
}

// IsCode reports whether the token at index i carries code.
func (ctx *Context) IsCode(i int) bool {
	return i >= 0 && i < ctx.limit && ctx.code[i]
}

// SkipNonCode returns the first index at or after pos holding code, or the
// limit when only whitespace and comments remain.
func (ctx *Context) SkipNonCode(pos int) int {
	for pos < ctx.limit && !ctx.code[pos] {
		pos++
	}
	return pos
}

// lastCodeBefore returns the index of the last code token in [from, to),
// or from-1 when there is none.
func (ctx *Context) lastCodeBefore(from, to int) int {
	for i := to - 1; i >= from; i-- {
		if ctx.code[i] {
			return i
		}
	}
	return from - 1
}

// slice shares the token array; never append to the result.
func (ctx *Context) slice(from, to int) []*segment.Segment {
	if from >= to {
		return nil
	}
	return ctx.tokens[from:to]
}

// withLimit runs fn with matching bounded to tokens before limit.
func (ctx *Context) withLimit(limit int, fn func() Result) Result {
	saved := ctx.limit
	ctx.limit = limit
	defer func() { ctx.limit = saved }()
	return fn()
}

// unparsable wraps tokens[from:to] in an unparsable segment.
func (ctx *Context) unparsable(from, to int) *segment.Segment {
	return segment.NewComposite(segment.TypeUnparsable, ctx.slice(from, to))
}

func (ctx *Context) fail(err error) {
	if ctx.err == nil {
		ctx.err = err
	}
}

// matchingClose returns the index of the bracket closing the opener at
// pos, counting only brackets of the same kind, or -1 if the opener is
// never closed. The scan ignores the current limit.
func (ctx *Context) matchingClose(pos int, pair BracketPair) int {
	if idx, ok := ctx.closers[pos]; ok {
		return idx
	}
	depth := 0
	idx := -1
	for i := pos; i < len(ctx.tokens); i++ {
		if !ctx.code[i] {
			continue
		}
		switch ctx.tokens[i].Raw() {
		case pair.Open:
			depth++
		case pair.Close:
			depth--
		}
		if depth == 0 {
			idx = i
			break
		}
	}
	ctx.closers[pos] = idx
	return idx
}

// Parse matches the named root rule against tokens. Tokens the root rule
// leaves unconsumed are appended to the root, code as unparsable. The
// returned tree always serializes back to the concatenated tokens.
func Parse(tokens []*segment.Segment, source RuleSource, root string) (*segment.Segment, error) {
	return NewContext(tokens, source).Parse(root)
}

// Parse matches the named root rule using this context.
func (ctx *Context) Parse(root string) (*segment.Segment, error) {
	res := Ref(root).Match(ctx, 0)
	if ctx.err != nil {
		return nil, ctx.err
	}

	var segs []*segment.Segment
	end := 0
	if res.ok {
		segs = res.segments
		end = res.end
	}
	var tail []*segment.Segment
	if end < len(ctx.tokens) {
		tail = ctx.trailing(end)
	}

	if len(segs) == 1 && !segs[0].IsRaw() && segs[0].Type() == segment.TypeFile {
		if len(tail) == 0 {
			return segs[0], nil
		}
		return segs[0].WithChildren(append(segs[0].Children(), tail...)), nil
	}
	return segment.NewComposite(segment.TypeFile, append(segs, tail...)), nil
}

// trailing wraps tokens from pos to the end: code as one unparsable
// segment, surrounding whitespace and comments as-is.
func (ctx *Context) trailing(pos int) []*segment.Segment {
	first := ctx.SkipNonCode(pos)
	out := append([]*segment.Segment(nil), ctx.slice(pos, first)...)
	if first >= len(ctx.tokens) {
		return out
	}
	last := ctx.lastCodeBefore(first, len(ctx.tokens))
	out = append(out, ctx.unparsable(first, last+1))
	return append(out, ctx.slice(last+1, len(ctx.tokens))...)
}

// Refs returns the names of every rule m references, directly or through
// nested combinators, without resolving them.
func Refs(m Matcher) []string {
	var names []string
	seen := make(map[Matcher]bool)
	var visit func(Matcher)
	visit = func(m Matcher) {
		if m == nil || seen[m] {
			return
		}
		seen[m] = true
		if r, ok := m.(*ref); ok {
			names = append(names, r.name)
		}
		if p, ok := m.(parent); ok {
			for _, s := range p.subs() {
				visit(s)
			}
		}
	}
	visit(m)
	return names
}

func undefined(name string) error {
	return fmt.Errorf("%w: %s", ErrUndefinedRule, name)
}
