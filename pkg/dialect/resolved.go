package dialect

import (
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
)

// Resolved is the flattened view of a dialect and all its ancestors. It is
// immutable and safe for concurrent use; it implements grammar.RuleSource.
type Resolved struct {
	name       string
	chain      []string
	root       string
	rules      map[string]grammar.Matcher
	lexRules   []lexer.Rule
	lexer      *lexer.Lexer
	reserved   map[string]bool
	unreserved map[string]bool
	brackets   []grammar.BracketPair
}

func newResolved(name string) *Resolved {
	return &Resolved{
		name:       name,
		root:       DefaultRootRule,
		rules:      make(map[string]grammar.Matcher),
		reserved:   make(map[string]bool),
		unreserved: make(map[string]bool),
	}
}

// inherit copies the parent's state into a fresh resolution for name.
func (p *Resolved) inherit(name string) *Resolved {
	return &Resolved{
		name:       name,
		chain:      append([]string{name}, p.chain...),
		root:       p.root,
		rules:      maps.Clone(p.rules),
		lexRules:   append([]lexer.Rule(nil), p.lexRules...),
		reserved:   maps.Clone(p.reserved),
		unreserved: maps.Clone(p.unreserved),
		brackets:   append([]grammar.BracketPair(nil), p.brackets...),
	}
}

func (r *Resolved) lexerIndex(name string) int {
	for i, rule := range r.lexRules {
		if rule.Name == name {
			return i
		}
	}
	return -1
}

// Name returns the dialect name.
func (r *Resolved) Name() string { return r.name }

// Chain returns the inheritance chain, starting with this dialect and
// ending with the root dialect.
func (r *Resolved) Chain() []string { return slices.Clone(r.chain) }

// RootRule returns the grammar rule parsing starts from.
func (r *Resolved) RootRule() string { return r.root }

// Lexer returns the dialect's lexer.
func (r *Resolved) Lexer() *lexer.Lexer { return r.lexer }

// Rule implements grammar.RuleSource.
func (r *Resolved) Rule(name string) (grammar.Matcher, bool) {
	m, ok := r.rules[name]
	return m, ok
}

// RuleNames returns the sorted names of all grammar rules.
func (r *Resolved) RuleNames() []string {
	return slices.Sorted(maps.Keys(r.rules))
}

// IsReserved implements grammar.RuleSource.
func (r *Resolved) IsReserved(word string) bool {
	return r.reserved[strings.ToUpper(word)]
}

// IsKeyword reports whether word is a reserved or unreserved keyword.
func (r *Resolved) IsKeyword(word string) bool {
	w := strings.ToUpper(word)
	return r.reserved[w] || r.unreserved[w]
}

// Keywords returns all keywords, sorted.
func (r *Resolved) Keywords() []string {
	all := maps.Clone(r.reserved)
	maps.Copy(all, r.unreserved)
	return slices.Sorted(maps.Keys(all))
}

// BracketPairs implements grammar.RuleSource.
func (r *Resolved) BracketPairs() []grammar.BracketPair { return r.brackets }
