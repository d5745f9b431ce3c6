// Package snowflake provides the Snowflake dialect: ANSI plus QUALIFY,
// ILIKE/RLIKE, :: casts and $$ strings.
package snowflake

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
)

func init() {
	dialect.MustRegister(Snowflake)
}

// Name is the registered dialect name.
const Name = "snowflake"

// Snowflake only supports untagged dollar quotes.
func dollarString(s string) int {
	if !strings.HasPrefix(s, "$$") {
		return 0
	}
	return lexer.DollarQuoted(s)
}

// Snowflake is the Snowflake dialect.
var Snowflake = dialect.NewDialect(Name).
	Extends(ansi.Name).
	InsertLexerBefore(ansi.LexColon,
		lexer.StringRule("casting_operator", "::", "casting_operator")).
	InsertLexerBefore(ansi.LexWord,
		lexer.FuncRule("dollar_quote", dollarString, "dollar_quote")).
	Reserved("QUALIFY", "ILIKE", "RLIKE", "REGEXP", "SAMPLE", "LATERAL").
	Grammars(map[string]g.Matcher{
		"QualifyClauseSegment": g.Node("qualify_clause", g.Sequence(
			g.Keyword("QUALIFY"),
			g.Ref("ExpressionSegment"),
		)),
		"ShorthandCastSegment": g.Node("cast_expression", g.Sequence(
			g.Symbol("::", "casting_operator"),
			g.Ref("DatatypeSegment"),
		)),
		"LikeGrammar": g.OneOf(
			g.Keyword("LIKE"),
			g.Keyword("ILIKE"),
			g.Keyword("RLIKE"),
			g.Keyword("REGEXP"),
		),
		"QuotedLiteralSegment": g.OneOf(
			g.Typed("single_quote", "quoted_literal"),
			g.Typed("dollar_quote", "quoted_literal"),
		),
	}).
	Build()
