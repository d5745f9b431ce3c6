// Package parser turns SQL text into a segment tree for a named dialect.
//
// # Usage
//
//	res, err := parser.Parse("SELECT a, b FROM t", "duckdb")
//	if err != nil {
//	    // unknown or invalid dialect
//	}
//	for _, e := range res.ParseErrors {
//	    // unparsable spans, already present in res.Tree
//	}
//
// Parsing never fails because of the input text. Characters the dialect
// cannot lex and code the grammar cannot match end up in the tree as
// unlexable and unparsable segments, and are also listed in the result.
// Errors are reserved for configuration problems: unknown dialects and
// dialects whose grammar is inconsistent.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Parser parses text with one resolved dialect. It holds no per-call
// state and is safe for concurrent use.
type Parser struct {
	dialect  *dialect.Resolved
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth overrides the grammar recursion limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// New creates a parser for a dialect in the default registry.
func New(dialectName string, opts ...Option) (*Parser, error) {
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(d, opts...), nil
}

// NewWithDialect creates a parser for an already resolved dialect.
func NewWithDialect(d *dialect.Resolved, opts ...Option) *Parser {
	p := &Parser{dialect: d, maxDepth: grammar.DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Resolved {
	return p.dialect
}

// Parse parses text with a dialect from the default registry.
func Parse(text, dialectName string) (*Result, error) {
	p, err := New(dialectName)
	if err != nil {
		return nil, err
	}
	return p.Parse(text)
}

// Parse lexes and parses text. The memo table lives only for this call.
func (p *Parser) Parse(text string) (*Result, error) {
	lexed := p.dialect.Lexer().Lex(text)

	ctx := grammar.NewContext(lexed.Segments, p.dialect)
	ctx.SetMaxDepth(p.maxDepth)
	tree, err := ctx.Parse(p.dialect.RootRule())
	if err != nil {
		return nil, fmt.Errorf("dialect %s: %w", p.dialect.Name(), err)
	}

	res := &Result{
		Tree:  tree,
		Lines: token.NewLineIndex(text),
	}
	for _, r := range lexed.Unlexable {
		res.LexErrors = append(res.LexErrors, &LexError{
			Range:   r,
			Pos:     res.Lines.Position(r.Start),
			Text:    text[r.Start:r.End],
			Message: "unable to lex character",
		})
	}
	for _, v := range segment.FindAll(tree, segment.TypeUnparsable) {
		r := v.Range()
		res.ParseErrors = append(res.ParseErrors, &ParseError{
			Range:   r,
			Pos:     res.Lines.Position(r.Start),
			Text:    v.Segment.Raw(),
			Message: "unable to parse",
		})
	}
	return res, nil
}

// Result is the outcome of a parse.
type Result struct {
	Tree        *segment.Segment
	Lines       *token.LineIndex
	ParseErrors []*ParseError
	LexErrors   []*LexError
}

// Unparsable returns the byte ranges of all unparsable segments.
func (r *Result) Unparsable() []token.Range {
	out := make([]token.Range, len(r.ParseErrors))
	for i, e := range r.ParseErrors {
		out[i] = e.Range
	}
	return out
}

// Clean reports whether the text lexed and parsed without anomalies.
func (r *Result) Clean() bool {
	return len(r.ParseErrors) == 0 && len(r.LexErrors) == 0
}
