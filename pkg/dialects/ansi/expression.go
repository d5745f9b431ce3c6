package ansi

import (
	g "github.com/leapstack-labs/leaplint/pkg/grammar"
)

// expressionGrammar holds expressions, references, literals and types.
//
// Expressions are parsed flat: an operand followed by any number of
// operator/operand pairs or predicate suffixes. Precedence is not
// reconstructed since nothing downstream needs it.
var expressionGrammar = map[string]g.Matcher{
	"ExpressionSegment": g.Node("expression", g.Sequence(
		g.Ref("UnaryExpressionGrammar"),
		g.AnyNumberOf(g.OneOf(
			g.Sequence(g.Ref("BinaryOperatorGrammar"), g.Ref("UnaryExpressionGrammar")),
			g.Ref("InPredicateGrammar"),
			g.Ref("BetweenPredicateGrammar"),
			g.Ref("LikePredicateGrammar"),
			g.Ref("IsPredicateGrammar"),
		)),
	)),
	"UnaryExpressionGrammar": g.Sequence(
		g.AnyNumberOf(g.Ref("UnaryOperatorGrammar")),
		g.Ref("PrimaryExpressionGrammar"),
		g.AnyNumberOf(g.Ref("PostfixGrammar")),
	),
	"PrimaryExpressionGrammar": g.OneOf(
		g.Ref("LiteralGrammar"),
		g.Ref("CaseExpressionSegment"),
		g.Ref("CastExpressionSegment"),
		g.Sequence(g.Keyword("EXISTS"), g.RoundBracketed(g.Ref("SelectableGrammar"))),
		g.Ref("FunctionSegment"),
		g.Ref("BareFunctionSegment"),
		g.RoundBracketed(g.OneOf(
			g.Ref("SelectableGrammar"),
			g.Delimited(g.Ref("ExpressionSegment"), g.Ref("CommaSegment")),
		)),
		g.Ref("ColumnReferenceSegment"),
	),
	"PostfixGrammar": g.OneOf(
		g.Ref("ArrayAccessorSegment"),
		g.Ref("ShorthandCastSegment"),
	),
	"ArrayAccessorSegment": g.Node("array_accessor",
		g.Bracketed("square", g.Ref("ExpressionSegment"))),
	// Filled in by dialects with a postfix cast operator.
	"ShorthandCastSegment": g.Nothing(),

	// Operators

	"UnaryOperatorGrammar": g.OneOf(
		g.Keyword("NOT"),
		g.Symbol("-", "sign_indicator"),
		g.Symbol("+", "sign_indicator"),
		g.Symbol("~", "tilde"),
	),
	"BinaryOperatorGrammar": g.OneOf(
		g.Ref("ArithmeticOperatorGrammar"),
		g.Ref("ComparisonOperatorGrammar"),
		g.Keyword("AND"),
		g.Keyword("OR"),
	),
	"ArithmeticOperatorGrammar": g.OneOf(
		g.Symbol("+", "binary_operator"),
		g.Symbol("-", "binary_operator"),
		g.Symbol("*", "binary_operator"),
		g.Symbol("/", "binary_operator"),
		g.Symbol("%", "binary_operator"),
		g.Typed("binary_operator", "binary_operator"),
	),
	"ComparisonOperatorGrammar": g.OneOf(
		g.Typed("raw_comparison_operator", "comparison_operator"),
		g.Typed("comparison_operator", "comparison_operator"),
	),

	// Predicates

	"InPredicateGrammar": g.Sequence(
		g.Optional(g.Keyword("NOT")),
		g.Keyword("IN"),
		g.RoundBracketed(g.OneOf(
			g.Ref("SelectableGrammar"),
			g.Delimited(g.Ref("ExpressionSegment"), g.Ref("CommaSegment")),
		)),
	),
	"BetweenPredicateGrammar": g.Sequence(
		g.Optional(g.Keyword("NOT")),
		g.Keyword("BETWEEN"),
		g.Ref("UnaryExpressionGrammar"),
		g.Keyword("AND"),
		g.Ref("UnaryExpressionGrammar"),
	),
	"LikePredicateGrammar": g.Sequence(
		g.Optional(g.Keyword("NOT")),
		g.Ref("LikeGrammar"),
		g.Ref("UnaryExpressionGrammar"),
		g.Optional(g.Sequence(g.Keyword("ESCAPE"), g.Ref("UnaryExpressionGrammar"))),
	),
	"LikeGrammar": g.Keyword("LIKE"),
	"IsPredicateGrammar": g.Sequence(
		g.Keyword("IS"),
		g.Optional(g.Keyword("NOT")),
		g.OneOf(
			g.Keyword("NULL"),
			g.Keyword("TRUE"),
			g.Keyword("FALSE"),
			g.Sequence(g.Keywords("DISTINCT", "FROM"), g.Ref("UnaryExpressionGrammar")),
		),
	),

	// Compound expressions

	"CaseExpressionSegment": g.Node("case_expression", g.Sequence(
		g.Keyword("CASE"),
		g.Optional(g.Ref("ExpressionSegment")),
		g.AtLeastOne(g.Ref("WhenClauseSegment")),
		g.Optional(g.Ref("ElseClauseSegment")),
		g.Keyword("END"),
	)),
	"WhenClauseSegment": g.Node("when_clause", g.Sequence(
		g.Keyword("WHEN"),
		g.Ref("ExpressionSegment"),
		g.Keyword("THEN"),
		g.Ref("ExpressionSegment"),
	)),
	"ElseClauseSegment": g.Node("else_clause", g.Sequence(
		g.Keyword("ELSE"),
		g.Ref("ExpressionSegment"),
	)),
	"CastExpressionSegment": g.Node("cast_expression", g.Sequence(
		g.Keyword("CAST"),
		g.RoundBracketed(g.Sequence(
			g.Ref("ExpressionSegment"),
			g.Keyword("AS"),
			g.Ref("DatatypeSegment"),
		)),
	)),

	// Functions and windows

	"FunctionSegment": g.Node("function", g.Sequence(
		g.Ref("FunctionNameSegment"),
		g.RoundBracketed(g.Optional(g.Ref("FunctionContentsGrammar"))),
		g.Optional(g.Ref("OverClauseSegment")),
	)),
	// Functions called without brackets. Several of these are reserved
	// words in some dialects, so they cannot be column references.
	"BareFunctionSegment": g.Node("bare_function", g.OneOf(
		g.Keyword("CURRENT_DATE"),
		g.Keyword("CURRENT_TIME"),
		g.Keyword("CURRENT_TIMESTAMP"),
		g.Keyword("CURRENT_USER"),
		g.Keyword("CURRENT_ROLE"),
		g.Keyword("CURRENT_SCHEMA"),
		g.Keyword("CURRENT_CATALOG"),
		g.Keyword("SESSION_USER"),
		g.Keyword("LOCALTIME"),
		g.Keyword("LOCALTIMESTAMP"),
	)),
	"FunctionNameSegment": g.Node("function_name", g.Sequence(
		g.AnyNumberOf(g.Sequence(g.Ref("SingleIdentifierGrammar"), g.Ref("DotSegment")).NoGaps()),
		g.Word("function_name_identifier"),
	).NoGaps()),
	"FunctionContentsGrammar": g.OneOf(
		g.Ref("StarSegment"),
		g.Sequence(
			g.Optional(g.Keyword("DISTINCT")),
			g.Delimited(g.Ref("ExpressionSegment"), g.Ref("CommaSegment")),
			g.Optional(g.Ref("OrderByClauseSegment")),
		),
	),
	"OverClauseSegment": g.Node("over_clause", g.Sequence(
		g.Keyword("OVER"),
		g.OneOf(
			g.Ref("SingleIdentifierGrammar"),
			g.RoundBracketed(g.Ref("WindowSpecificationSegment")),
		),
	)),
	"WindowSpecificationSegment": g.Node("window_specification", g.Sequence(
		g.Optional(g.Ref("PartitionClauseSegment")),
		g.Optional(g.Ref("OrderByClauseSegment")),
		g.Optional(g.Ref("FrameClauseSegment")),
	)),
	"PartitionClauseSegment": g.Node("partitionby_clause", g.Sequence(
		g.Keywords("PARTITION", "BY"),
		g.Delimited(g.Ref("ExpressionSegment"), g.Ref("CommaSegment")),
	)),
	"FrameClauseSegment": g.Node("frame_clause", g.Sequence(
		g.OneOf(g.Keyword("ROWS"), g.Keyword("RANGE"), g.Keyword("GROUPS")),
		g.OneOf(
			g.Sequence(g.Keyword("BETWEEN"), g.Ref("FrameBoundGrammar"), g.Keyword("AND"), g.Ref("FrameBoundGrammar")),
			g.Ref("FrameBoundGrammar"),
		),
	)),
	"FrameBoundGrammar": g.OneOf(
		g.Sequence(g.Keyword("UNBOUNDED"), g.OneOf(g.Keyword("PRECEDING"), g.Keyword("FOLLOWING"))),
		g.Keywords("CURRENT", "ROW"),
		g.Sequence(g.Ref("ExpressionSegment"), g.OneOf(g.Keyword("PRECEDING"), g.Keyword("FOLLOWING"))),
	),

	// References and identifiers

	"ColumnReferenceSegment": g.Node("column_reference",
		g.Delimited(g.Ref("SingleIdentifierGrammar"), g.Ref("DotSegment")).NoGaps()),
	"TableReferenceSegment": g.Node("table_reference",
		g.Delimited(g.Ref("SingleIdentifierGrammar"), g.Ref("DotSegment")).NoGaps()),
	"BracketedColumnReferenceListGrammar": g.RoundBracketed(
		g.Delimited(g.Ref("ColumnReferenceSegment"), g.Ref("CommaSegment"))),
	"SingleIdentifierGrammar": g.OneOf(
		g.Ref("NakedIdentifierSegment"),
		g.Ref("QuotedIdentifierSegment"),
	),
	"NakedIdentifierSegment":  g.Word("naked_identifier"),
	"QuotedIdentifierSegment": g.Typed("double_quote", "quoted_identifier"),

	// Literals

	"LiteralGrammar": g.OneOf(
		g.Ref("QuotedLiteralSegment"),
		g.Ref("NumericLiteralSegment"),
		g.Keyword("NULL"),
		g.Keyword("TRUE"),
		g.Keyword("FALSE"),
	),
	"QuotedLiteralSegment":  g.Typed("single_quote", "quoted_literal"),
	"NumericLiteralSegment": g.Typed("numeric_literal", "numeric_literal"),

	// Data types

	"DatatypeSegment": g.Node("data_type", g.Sequence(
		g.OneOf(
			g.Keywords("DOUBLE", "PRECISION"),
			g.Keywords("CHARACTER", "VARYING"),
			g.Word("data_type_identifier"),
		),
		g.Optional(g.RoundBracketed(
			g.Delimited(g.Ref("NumericLiteralSegment"), g.Ref("CommaSegment")))),
		g.Optional(g.Sequence(
			g.OneOf(g.Keyword("WITH"), g.Keyword("WITHOUT")),
			g.Keywords("TIME", "ZONE"),
		)),
	)),

	// Symbols

	"CommaSegment": g.Symbol(",", "comma"),
	"DotSegment":   g.Symbol(".", "dot"),
	"StarSegment":  g.Symbol("*", "star"),
}
