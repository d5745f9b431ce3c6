// Package dialect provides SQL dialect definitions and the registry that
// resolves dialect inheritance.
//
// A Dialect is a partial definition: it names an optional parent and lists
// what it adds or changes (grammar rules, lexer rules, keywords, bracket
// pairs). The registry flattens the inheritance chain into a Resolved view
// once per dialect, with the child's definitions winning over the
// parent's. Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
)

// DefaultRootRule is the grammar rule parsing starts from.
const DefaultRootRule = "FileSegment"

// Configuration errors. All are fatal and reported before any parsing.
var (
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrCycle          = errors.New("dialect inheritance cycle")
	ErrInvalidDialect = errors.New("invalid dialect definition")
)

// patch modifies a resolution in progress. Patches run in the order the
// builder recorded them, after the parent's state has been copied.
type patch func(r *Resolved) error

// Dialect is a registered, immutable dialect definition.
type Dialect struct {
	Name   string
	Parent string // empty for a root dialect

	grammar map[string]grammar.Matcher
	patches []patch
	root    string
}

// Overrides returns the names of grammar rules this dialect defines
// itself, whether new or replacing a parent's.
func (d *Dialect) Overrides() []string {
	names := make([]string, 0, len(d.grammar))
	for n := range d.grammar {
		names = append(names, n)
	}
	return names
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	d *Dialect
}

// NewDialect starts a new root dialect definition.
func NewDialect(name string) *Builder {
	return &Builder{d: &Dialect{
		Name:    strings.ToLower(name),
		grammar: make(map[string]grammar.Matcher),
	}}
}

// Extends sets the parent dialect.
func (b *Builder) Extends(parent string) *Builder {
	b.d.Parent = strings.ToLower(parent)
	return b
}

// Root sets the grammar rule parsing starts from.
func (b *Builder) Root(rule string) *Builder {
	b.d.root = rule
	return b
}

// Grammar defines or overrides a named grammar rule.
func (b *Builder) Grammar(name string, m grammar.Matcher) *Builder {
	b.d.grammar[name] = m
	return b
}

// Grammars defines or overrides several grammar rules at once.
func (b *Builder) Grammars(rules map[string]grammar.Matcher) *Builder {
	for name, m := range rules {
		b.d.grammar[name] = m
	}
	return b
}

// Lexer replaces the whole lexer rule list.
func (b *Builder) Lexer(rules ...lexer.Rule) *Builder {
	rs := append([]lexer.Rule(nil), rules...)
	return b.patch(func(r *Resolved) error {
		r.lexRules = append([]lexer.Rule(nil), rs...)
		return nil
	})
}

// ReplaceLexer swaps inherited lexer rules for rules with the same name,
// keeping their position in the list.
func (b *Builder) ReplaceLexer(rules ...lexer.Rule) *Builder {
	rs := append([]lexer.Rule(nil), rules...)
	return b.patch(func(r *Resolved) error {
		for _, rule := range rs {
			i := r.lexerIndex(rule.Name)
			if i < 0 {
				return fmt.Errorf("%w: %s: no lexer rule %q to replace", ErrInvalidDialect, r.name, rule.Name)
			}
			r.lexRules[i] = rule
		}
		return nil
	})
}

// InsertLexerBefore inserts rules ahead of the named inherited rule, so
// they take precedence over it.
func (b *Builder) InsertLexerBefore(before string, rules ...lexer.Rule) *Builder {
	rs := append([]lexer.Rule(nil), rules...)
	return b.patch(func(r *Resolved) error {
		i := r.lexerIndex(before)
		if i < 0 {
			return fmt.Errorf("%w: %s: no lexer rule %q to insert before", ErrInvalidDialect, r.name, before)
		}
		out := make([]lexer.Rule, 0, len(r.lexRules)+len(rs))
		out = append(out, r.lexRules[:i]...)
		out = append(out, rs...)
		out = append(out, r.lexRules[i:]...)
		r.lexRules = out
		return nil
	})
}

// Reserved marks words as reserved keywords. Reserved words are never
// accepted as naked identifiers.
func (b *Builder) Reserved(words ...string) *Builder {
	ws := upper(words)
	return b.patch(func(r *Resolved) error {
		for _, w := range ws {
			r.reserved[w] = true
			delete(r.unreserved, w)
		}
		return nil
	})
}

// Unreserved marks words as unreserved keywords, demoting inherited
// reserved ones.
func (b *Builder) Unreserved(words ...string) *Builder {
	ws := upper(words)
	return b.patch(func(r *Resolved) error {
		for _, w := range ws {
			r.unreserved[w] = true
			delete(r.reserved, w)
		}
		return nil
	})
}

// RemoveKeywords forgets inherited keywords entirely.
func (b *Builder) RemoveKeywords(words ...string) *Builder {
	ws := upper(words)
	return b.patch(func(r *Resolved) error {
		for _, w := range ws {
			delete(r.reserved, w)
			delete(r.unreserved, w)
		}
		return nil
	})
}

// Brackets adds bracket pairs, replacing inherited pairs of the same kind.
func (b *Builder) Brackets(pairs ...grammar.BracketPair) *Builder {
	ps := append([]grammar.BracketPair(nil), pairs...)
	return b.patch(func(r *Resolved) error {
	next:
		for _, p := range ps {
			for i, have := range r.brackets {
				if have.Kind == p.Kind {
					r.brackets[i] = p
					continue next
				}
			}
			r.brackets = append(r.brackets, p)
		}
		return nil
	})
}

func (b *Builder) patch(p patch) *Builder {
	b.d.patches = append(b.d.patches, p)
	return b
}

// Build returns the dialect. The builder must not be used afterwards.
func (b *Builder) Build() *Dialect {
	return b.d
}

func upper(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return out
}
