package ansi

import (
	"github.com/leapstack-labs/leaplint/pkg/lexer"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// Lexer rule names referenced by child dialects when patching.
const (
	LexWhitespace    = "whitespace"
	LexSingleQuote   = "single_quote"
	LexDoubleQuote   = "double_quote"
	LexNumeric       = "numeric_literal"
	LexColon         = "colon"
	LexWord          = "word"
	LexDivide        = "divide"
	LexInlineComment = "inline_comment"
)

// LexerRules is the ANSI lexer. Order matters: the first rule that
// matches wins, so multi-character operators precede their prefixes.
var LexerRules = []lexer.Rule{
	lexer.RegexRule(LexWhitespace, `[^\S\r\n]+`, segment.TypeWhitespace),
	lexer.RegexRule(LexInlineComment, `--[^\n\r]*`, segment.TypeInlineComment),
	lexer.RegexRule("block_comment", `/\*(?s:.*?)\*/`, segment.TypeBlockComment),
	lexer.RegexRule(LexSingleQuote, `'(?:[^'\\]|\\.|'')*'`, "single_quote"),
	lexer.RegexRule(LexDoubleQuote, `"(?:[^"]|"")*"`, "double_quote"),
	lexer.RegexRule(LexNumeric, `(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`, "numeric_literal"),
	lexer.RegexRule("newline", `\r\n|\n|\r`, segment.TypeNewline),

	lexer.StringRule("greater_than_or_equal", ">=", "comparison_operator"),
	lexer.StringRule("less_than_or_equal", "<=", "comparison_operator"),
	lexer.StringRule("not_equal", "!=", "comparison_operator"),
	lexer.StringRule("not_equal_ansi", "<>", "comparison_operator"),
	lexer.StringRule("concat", "||", "binary_operator"),

	lexer.StringRule("equals", "=", "raw_comparison_operator"),
	lexer.StringRule("greater_than", ">", "raw_comparison_operator"),
	lexer.StringRule("less_than", "<", "raw_comparison_operator"),
	lexer.StringRule("start_bracket", "(", "start_bracket"),
	lexer.StringRule("end_bracket", ")", "end_bracket"),
	lexer.StringRule("start_square_bracket", "[", "start_square_bracket"),
	lexer.StringRule("end_square_bracket", "]", "end_square_bracket"),
	lexer.StringRule("start_curly_bracket", "{", "start_curly_bracket"),
	lexer.StringRule("end_curly_bracket", "}", "end_curly_bracket"),
	lexer.StringRule("comma", ",", "comma"),
	lexer.StringRule("dot", ".", "dot"),
	lexer.StringRule("semicolon", ";", "semicolon"),
	lexer.StringRule(LexColon, ":", "colon"),
	lexer.StringRule("star", "*", "star"),
	lexer.StringRule("plus", "+", "plus"),
	lexer.StringRule("minus", "-", "minus"),
	lexer.StringRule(LexDivide, "/", "divide"),
	lexer.StringRule("percent", "%", "percent"),
	lexer.StringRule("ampersand", "&", "ampersand"),
	lexer.StringRule("vertical_bar", "|", "vertical_bar"),
	lexer.StringRule("caret", "^", "caret"),
	lexer.StringRule("tilde", "~", "tilde"),
	lexer.StringRule("question", "?", "question"),

	lexer.RegexRule(LexWord, `[\p{L}_][\p{L}\p{N}_$]*`, segment.TypeWord),
}
