// Package postgres provides the PostgreSQL dialect, an extension of ANSI
// with :: casts, ILIKE, dollar-quoted strings and RETURNING.
package postgres

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/ansi"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/lexer"
)

func init() {
	dialect.MustRegister(Postgres)
}

// Name is the registered dialect name.
const Name = "postgres"

// postgresReservedWords are the keywords PostgreSQL reserves outright,
// plus those it reserves but allows as function or type names. Words it
// treats as unreserved, such as INDEX or NAME, stay valid identifiers.
var postgresReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "current_catalog", "current_date", "current_role",
	"current_time", "current_timestamp", "current_user", "default",
	"deferrable", "desc", "distinct", "do", "else", "end", "except", "false",
	"fetch", "for", "foreign", "from", "grant", "group", "having", "in",
	"initially", "intersect", "into", "lateral", "leading", "limit",
	"localtime", "localtimestamp", "not", "null", "offset", "on", "only", "or",
	"order", "placing", "primary", "references", "returning", "select",
	"session_user", "some", "symmetric", "system_user", "table", "then", "to",
	"trailing", "true", "union", "unique", "user", "using", "variadic", "when",
	"where", "window", "with",

	// reserved, but allowed as function or type names
	"authorization", "binary", "collation", "concurrently", "cross",
	"current_schema", "freeze", "full", "ilike", "inner", "is", "isnull",
	"join", "left", "like", "natural", "notnull", "outer", "overlaps", "right",
	"similar", "tablesample", "verbose",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.NewDialect(Name).
	Extends(ansi.Name).
	InsertLexerBefore(ansi.LexColon,
		lexer.StringRule("casting_operator", "::", "casting_operator")).
	InsertLexerBefore(ansi.LexWord,
		lexer.FuncRule("dollar_quote", lexer.DollarQuoted, "dollar_quote")).
	Reserved(postgresReservedWords...).
	Grammars(map[string]g.Matcher{
		"ShorthandCastSegment": g.Node("cast_expression", g.Sequence(
			g.Symbol("::", "casting_operator"),
			g.Ref("DatatypeSegment"),
		)),
		"LikeGrammar": g.OneOf(
			g.Keyword("LIKE"),
			g.Keyword("ILIKE"),
			g.Keywords("SIMILAR", "TO"),
		),
		"QuotedLiteralSegment": g.OneOf(
			g.Typed("single_quote", "quoted_literal"),
			g.Typed("dollar_quote", "quoted_literal"),
		),
		// USER and SYSTEM_USER are reserved, but read as the role functions.
		"BareFunctionSegment": g.Node("bare_function", g.OneOf(
			g.Keyword("CURRENT_DATE"),
			g.Keyword("CURRENT_TIME"),
			g.Keyword("CURRENT_TIMESTAMP"),
			g.Keyword("CURRENT_USER"),
			g.Keyword("CURRENT_ROLE"),
			g.Keyword("CURRENT_SCHEMA"),
			g.Keyword("CURRENT_CATALOG"),
			g.Keyword("SESSION_USER"),
			g.Keyword("SYSTEM_USER"),
			g.Keyword("USER"),
			g.Keyword("LOCALTIME"),
			g.Keyword("LOCALTIMESTAMP"),
		)),
		"ReturningClauseSegment": g.Node("returning_clause", g.Sequence(
			g.Keyword("RETURNING"),
			g.Delimited(g.Ref("SelectClauseElementSegment"), g.Ref("CommaSegment")),
		)),
	}).
	Build()
