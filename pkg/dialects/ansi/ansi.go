// Package ansi provides the ANSI SQL dialect, the root every other
// built-in dialect extends.
//
// Besides the standard grammar it declares hook rules that match nothing
// (QualifyClauseSegment, ReturningClauseSegment, ShorthandCastSegment,
// WildcardModifierGrammar) so children can add syntax by overriding a
// single rule.
package ansi

import (
	"maps"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/grammar"
)

// Name is the registered dialect name.
const Name = "ansi"

// Dialect is the ANSI SQL dialect definition.
var Dialect = dialect.NewDialect(Name).
	Lexer(LexerRules...).
	Reserved(ReservedWords...).
	Unreserved(UnreservedWords...).
	Brackets(
		grammar.BracketPair{Kind: "round", Open: "(", Close: ")"},
		grammar.BracketPair{Kind: "square", Open: "[", Close: "]"},
		grammar.BracketPair{Kind: "curly", Open: "{", Close: "}"},
	).
	Grammars(rules()).
	Build()

func rules() map[string]grammar.Matcher {
	all := maps.Clone(statementGrammar)
	maps.Copy(all, expressionGrammar)
	return all
}

func init() {
	dialect.MustRegister(Dialect)
}
