package ansi

import (
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// statementGrammar holds file, statement and clause level rules.
var statementGrammar = map[string]g.Matcher{
	"FileSegment": g.Node(segment.TypeFile,
		g.Recovering(g.Ref("StatementSegment"), g.Ref("DelimiterGrammar"))),
	"DelimiterGrammar": g.Symbol(";", "statement_terminator"),

	"StatementSegment": g.Node(segment.TypeStatement, g.Ref("StatementGrammar")),
	"StatementGrammar": g.OneOf(
		g.Ref("SelectableGrammar"),
		g.Ref("InsertStatementSegment"),
		g.Ref("UpdateStatementSegment"),
		g.Ref("DeleteStatementSegment"),
		g.Ref("CreateTableStatementSegment"),
		g.Ref("CreateViewStatementSegment"),
		g.Ref("DropStatementSegment"),
	),

	// Queries

	"SelectableGrammar": g.OneOf(
		g.Ref("WithCompoundStatementSegment"),
		g.Ref("SetExpressionSegment"),
		g.Ref("NonSetSelectableGrammar"),
	),
	"NonSetSelectableGrammar": g.OneOf(
		g.Ref("SelectStatementSegment"),
		g.RoundBracketed(g.Ref("SelectableGrammar")),
	),
	"WithCompoundStatementSegment": g.Node("with_compound_statement", g.Sequence(
		g.Keyword("WITH"),
		g.Optional(g.Keyword("RECURSIVE")),
		g.Delimited(g.Ref("CTEDefinitionSegment"), g.Ref("CommaSegment")),
		g.OneOf(
			g.Ref("SetExpressionSegment"),
			g.Ref("NonSetSelectableGrammar"),
			g.Ref("InsertStatementSegment"),
		),
	)),
	"CTEDefinitionSegment": g.Node("common_table_expression", g.Sequence(
		g.Ref("SingleIdentifierGrammar"),
		g.Optional(g.Ref("BracketedColumnReferenceListGrammar")),
		g.Keyword("AS"),
		g.RoundBracketed(g.Ref("SelectableGrammar")),
	)),
	"SetOperatorSegment": g.Node("set_operator", g.Sequence(
		g.OneOf(g.Keyword("UNION"), g.Keyword("INTERSECT"), g.Keyword("EXCEPT")),
		g.Optional(g.OneOf(g.Keyword("ALL"), g.Keyword("DISTINCT"))),
	)),
	"SetExpressionSegment": g.Node("set_expression", g.Sequence(
		g.Ref("NonSetSelectableGrammar"),
		g.AtLeastOne(g.Sequence(g.Ref("SetOperatorSegment"), g.Ref("NonSetSelectableGrammar"))),
		g.Optional(g.Ref("OrderByClauseSegment")),
		g.Optional(g.Ref("LimitClauseSegment")),
	)),
	"SelectStatementSegment": g.Node("select_statement", g.Sequence(
		g.Ref("SelectClauseSegment"),
		g.Optional(g.Ref("FromClauseSegment")),
		g.Optional(g.Ref("WhereClauseSegment")),
		g.Optional(g.Ref("GroupByClauseSegment")),
		g.Optional(g.Ref("HavingClauseSegment")),
		g.Optional(g.Ref("QualifyClauseSegment")),
		g.Optional(g.Ref("OrderByClauseSegment")),
		g.Optional(g.Ref("LimitClauseSegment")),
		g.Optional(g.Ref("OffsetClauseSegment")),
	)),

	// SELECT clause

	"SelectClauseSegment": g.Node("select_clause", g.Sequence(
		g.Keyword("SELECT"),
		g.Optional(g.Ref("SelectClauseModifierSegment")),
		g.Delimited(g.Ref("SelectClauseElementSegment"), g.Ref("CommaSegment")),
	)),
	"SelectClauseModifierSegment": g.Node("select_clause_modifier",
		g.OneOf(g.Keyword("DISTINCT"), g.Keyword("ALL"))),
	"SelectClauseElementSegment": g.Node("select_clause_element", g.OneOf(
		g.Ref("WildcardExpressionSegment"),
		g.Sequence(g.Ref("ExpressionSegment"), g.Optional(g.Ref("AliasExpressionSegment"))),
	)),
	"WildcardExpressionSegment": g.Node("wildcard_expression", g.Sequence(
		g.AnyNumberOf(g.Sequence(g.Ref("SingleIdentifierGrammar"), g.Ref("DotSegment")).NoGaps()),
		g.Ref("StarSegment"),
		g.Optional(g.Ref("WildcardModifierGrammar")),
	)),
	// Filled in by dialects with EXCLUDE/REPLACE style modifiers.
	"WildcardModifierGrammar": g.Nothing(),
	"AliasExpressionSegment": g.Node("alias_expression", g.Sequence(
		g.Optional(g.Keyword("AS")),
		g.Ref("SingleIdentifierGrammar"),
	)),

	// FROM clause and joins

	"FromClauseSegment": g.Node("from_clause", g.Sequence(
		g.Keyword("FROM"),
		g.Delimited(g.Ref("FromExpressionSegment"), g.Ref("CommaSegment")),
	)),
	"FromExpressionSegment": g.Node("from_expression", g.Sequence(
		g.Ref("FromExpressionElementSegment"),
		g.AnyNumberOf(g.Ref("JoinClauseSegment")),
	)),
	"FromExpressionElementSegment": g.Node("from_expression_element", g.Sequence(
		g.Ref("TableExpressionSegment"),
		g.Optional(g.Ref("AliasExpressionSegment")),
	)),
	"TableExpressionSegment": g.Node("table_expression", g.OneOf(
		g.Ref("FunctionSegment"),
		g.Ref("TableReferenceSegment"),
		g.RoundBracketed(g.Ref("SelectableGrammar")),
	)),
	"JoinClauseSegment": g.Node("join_clause", g.Sequence(
		g.Optional(g.Ref("JoinTypeKeywordsGrammar")),
		g.Keyword("JOIN"),
		g.Ref("FromExpressionElementSegment"),
		g.Optional(g.OneOf(
			g.Ref("JoinOnConditionSegment"),
			g.Sequence(g.Keyword("USING"), g.RoundBracketed(
				g.Delimited(g.Ref("SingleIdentifierGrammar"), g.Ref("CommaSegment")))),
		)),
	)),
	"JoinTypeKeywordsGrammar": g.Sequence(
		g.Optional(g.Keyword("NATURAL")),
		g.OneOf(
			g.Keyword("INNER"),
			g.Keyword("CROSS"),
			g.Sequence(
				g.OneOf(g.Keyword("LEFT"), g.Keyword("RIGHT"), g.Keyword("FULL")),
				g.Optional(g.Keyword("OUTER")),
			),
		),
	),
	"JoinOnConditionSegment": g.Node("join_on_condition", g.Sequence(
		g.Keyword("ON"),
		g.Ref("ExpressionSegment"),
	)),

	// Remaining clauses

	"WhereClauseSegment": g.Node("where_clause", g.Sequence(
		g.Keyword("WHERE"),
		g.Ref("ExpressionSegment"),
	)),
	"GroupByClauseSegment": g.Node("groupby_clause", g.Sequence(
		g.Keywords("GROUP", "BY"),
		g.Delimited(g.Ref("ExpressionSegment"), g.Ref("CommaSegment")),
	)),
	"HavingClauseSegment": g.Node("having_clause", g.Sequence(
		g.Keyword("HAVING"),
		g.Ref("ExpressionSegment"),
	)),
	// Filled in by dialects that support QUALIFY.
	"QualifyClauseSegment": g.Nothing(),
	"OrderByClauseSegment": g.Node("orderby_clause", g.Sequence(
		g.Keywords("ORDER", "BY"),
		g.Delimited(g.Sequence(
			g.Ref("ExpressionSegment"),
			g.Optional(g.OneOf(g.Keyword("ASC"), g.Keyword("DESC"))),
			g.Optional(g.Sequence(g.Keyword("NULLS"), g.OneOf(g.Keyword("FIRST"), g.Keyword("LAST")))),
		), g.Ref("CommaSegment")),
	)),
	"LimitClauseSegment": g.Node("limit_clause", g.Sequence(
		g.Keyword("LIMIT"),
		g.OneOf(g.Keyword("ALL"), g.Ref("ExpressionSegment")),
	)),
	"OffsetClauseSegment": g.Node("offset_clause", g.Sequence(
		g.Keyword("OFFSET"),
		g.Ref("ExpressionSegment"),
		g.Optional(g.OneOf(g.Keyword("ROW"), g.Keyword("ROWS"))),
	)),

	// DML

	"InsertStatementSegment": g.Node("insert_statement", g.Sequence(
		g.Keywords("INSERT", "INTO"),
		g.Ref("TableReferenceSegment"),
		g.Optional(g.Ref("BracketedColumnReferenceListGrammar")),
		g.OneOf(
			g.Ref("ValuesClauseSegment"),
			g.Keywords("DEFAULT", "VALUES"),
			g.Ref("SelectableGrammar"),
		),
		g.Optional(g.Ref("ReturningClauseSegment")),
	)),
	"ValuesClauseSegment": g.Node("values_clause", g.Sequence(
		g.OneOf(g.Keyword("VALUES"), g.Keyword("VALUE")),
		g.Delimited(g.RoundBracketed(g.Delimited(
			g.OneOf(g.Keyword("DEFAULT"), g.Ref("ExpressionSegment")),
			g.Ref("CommaSegment"),
		)), g.Ref("CommaSegment")),
	)),
	"UpdateStatementSegment": g.Node("update_statement", g.Sequence(
		g.Keyword("UPDATE"),
		g.Ref("TableReferenceSegment"),
		g.Optional(g.Ref("AliasExpressionSegment")),
		g.Ref("SetClauseListSegment"),
		g.Optional(g.Ref("FromClauseSegment")),
		g.Optional(g.Ref("WhereClauseSegment")),
		g.Optional(g.Ref("ReturningClauseSegment")),
	)),
	"SetClauseListSegment": g.Node("set_clause_list", g.Sequence(
		g.Keyword("SET"),
		g.Delimited(g.Ref("SetClauseSegment"), g.Ref("CommaSegment")),
	)),
	"SetClauseSegment": g.Node("set_clause", g.Sequence(
		g.Ref("ColumnReferenceSegment"),
		g.Symbol("=", "comparison_operator"),
		g.OneOf(g.Keyword("DEFAULT"), g.Ref("ExpressionSegment")),
	)),
	"DeleteStatementSegment": g.Node("delete_statement", g.Sequence(
		g.Keywords("DELETE", "FROM"),
		g.Ref("TableReferenceSegment"),
		g.Optional(g.Ref("AliasExpressionSegment")),
		g.Optional(g.Ref("WhereClauseSegment")),
		g.Optional(g.Ref("ReturningClauseSegment")),
	)),
	// Filled in by dialects that support RETURNING.
	"ReturningClauseSegment": g.Nothing(),

	// DDL

	"CreateTableStatementSegment": g.Node("create_table_statement", g.Sequence(
		g.Keyword("CREATE"),
		g.Optional(g.Keywords("OR", "REPLACE")),
		g.Optional(g.OneOf(g.Keyword("TEMPORARY"), g.Keyword("TEMP"))),
		g.Keyword("TABLE"),
		g.Optional(g.Ref("IfNotExistsGrammar")),
		g.Ref("TableReferenceSegment"),
		g.OneOf(
			g.RoundBracketed(g.Delimited(
				g.OneOf(g.Ref("TableConstraintSegment"), g.Ref("ColumnDefinitionSegment")),
				g.Ref("CommaSegment"),
			)),
			g.Sequence(g.Keyword("AS"), g.Ref("SelectableGrammar")),
		),
	)),
	"ColumnDefinitionSegment": g.Node("column_definition", g.Sequence(
		g.Ref("SingleIdentifierGrammar"),
		g.Ref("DatatypeSegment"),
		g.AnyNumberOf(g.Ref("ColumnConstraintSegment")),
	)),
	"ColumnConstraintSegment": g.Node("column_constraint_segment", g.OneOf(
		g.Keywords("NOT", "NULL"),
		g.Keyword("NULL"),
		g.Keywords("PRIMARY", "KEY"),
		g.Keyword("UNIQUE"),
		g.Sequence(g.Keyword("DEFAULT"), g.Ref("ExpressionSegment")),
		g.Sequence(g.Keyword("CHECK"), g.RoundBracketed(g.Ref("ExpressionSegment"))),
		g.Ref("ReferencesGrammar"),
	)),
	"TableConstraintSegment": g.Node("table_constraint", g.Sequence(
		g.Optional(g.Sequence(g.Keyword("CONSTRAINT"), g.Ref("SingleIdentifierGrammar"))),
		g.OneOf(
			g.Sequence(g.Keywords("PRIMARY", "KEY"), g.Ref("BracketedColumnReferenceListGrammar")),
			g.Sequence(g.Keyword("UNIQUE"), g.Ref("BracketedColumnReferenceListGrammar")),
			g.Sequence(g.Keyword("CHECK"), g.RoundBracketed(g.Ref("ExpressionSegment"))),
			g.Sequence(
				g.Keywords("FOREIGN", "KEY"),
				g.Ref("BracketedColumnReferenceListGrammar"),
				g.Ref("ReferencesGrammar"),
			),
		),
	)),
	"ReferencesGrammar": g.Sequence(
		g.Keyword("REFERENCES"),
		g.Ref("TableReferenceSegment"),
		g.Optional(g.Ref("BracketedColumnReferenceListGrammar")),
	),
	"CreateViewStatementSegment": g.Node("create_view_statement", g.Sequence(
		g.Keyword("CREATE"),
		g.Optional(g.Keywords("OR", "REPLACE")),
		g.Keyword("VIEW"),
		g.Optional(g.Ref("IfNotExistsGrammar")),
		g.Ref("TableReferenceSegment"),
		g.Optional(g.Ref("BracketedColumnReferenceListGrammar")),
		g.Keyword("AS"),
		g.Ref("SelectableGrammar"),
	)),
	"DropStatementSegment": g.Node("drop_statement", g.Sequence(
		g.Keyword("DROP"),
		g.OneOf(g.Keyword("TABLE"), g.Keyword("VIEW")),
		g.Optional(g.Keywords("IF", "EXISTS")),
		g.Delimited(g.Ref("TableReferenceSegment"), g.Ref("CommaSegment")),
		g.Optional(g.OneOf(g.Keyword("CASCADE"), g.Keyword("RESTRICT"))),
	)),
	"IfNotExistsGrammar": g.Keywords("IF", "NOT", "EXISTS"),
}
