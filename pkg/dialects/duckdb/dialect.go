// Package duckdb provides the DuckDB dialect. It extends PostgreSQL with
// QUALIFY, star modifiers (EXCLUDE/REPLACE) and GROUP BY ALL.
package duckdb

import (
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/dialects/postgres"
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
)

func init() {
	dialect.MustRegister(DuckDB)
}

// Name is the registered dialect name.
const Name = "duckdb"

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.NewDialect(Name).
	Extends(postgres.Name).
	Reserved("QUALIFY").
	Unreserved("EXCLUDE", "REPLACE").
	Grammars(map[string]g.Matcher{
		"QualifyClauseSegment": g.Node("qualify_clause", g.Sequence(
			g.Keyword("QUALIFY"),
			g.Ref("ExpressionSegment"),
		)),
		"WildcardModifierGrammar": g.OneOf(
			g.Node("wildcard_exclude", g.Sequence(
				g.Keyword("EXCLUDE"),
				g.OneOf(
					g.RoundBracketed(g.Delimited(g.Ref("ColumnReferenceSegment"), g.Ref("CommaSegment"))),
					g.Ref("ColumnReferenceSegment"),
				),
			)),
			g.Node("wildcard_replace", g.Sequence(
				g.Keyword("REPLACE"),
				g.RoundBracketed(g.Delimited(
					g.Sequence(g.Ref("ExpressionSegment"), g.Keyword("AS"), g.Ref("SingleIdentifierGrammar")),
					g.Ref("CommaSegment"),
				)),
			)),
		),
		"GroupByClauseSegment": g.Node("groupby_clause", g.Sequence(
			g.Keywords("GROUP", "BY"),
			g.OneOf(
				g.Keyword("ALL"),
				g.Delimited(g.Ref("ExpressionSegment"), g.Ref("CommaSegment")),
			),
		)),
	}).
	Build()
