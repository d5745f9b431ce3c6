// Package databricks provides the Databricks SQL dialect. Identifiers are
// quoted with backticks and double quotes delimit strings; QUALIFY, ILIKE
// and :: casts are supported.
package databricks

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
)

func init() {
	dialect.MustRegister(Databricks)
}

// Name is the registered dialect name.
const Name = "databricks"

// Databricks is the Databricks SQL dialect.
var Databricks = dialect.NewDialect(Name).
	Extends(ansi.Name).
	InsertLexerBefore(ansi.LexDoubleQuote,
		lexer.RegexRule("back_quote", "`(?:[^`]|``)*`", "back_quote")).
	InsertLexerBefore(ansi.LexColon,
		lexer.StringRule("casting_operator", "::", "casting_operator")).
	Reserved("QUALIFY", "ILIKE", "RLIKE", "LATERAL").
	Grammars(map[string]g.Matcher{
		"QuotedIdentifierSegment": g.Typed("back_quote", "quoted_identifier"),
		"QuotedLiteralSegment": g.OneOf(
			g.Typed("single_quote", "quoted_literal"),
			g.Typed("double_quote", "quoted_literal"),
		),
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
		),
	}).
	Build()
