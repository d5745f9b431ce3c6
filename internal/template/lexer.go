package template

import (
	"strings"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// TokenType identifies the type of token.
type TokenType int

// TokenType constants for template token types.
const (
	TokenText TokenType = iota // Literal text (SQL)
	TokenExpr                  // {{ expr }}, Value holds the expression
	TokenStmt                  // {* stmt *}, Value holds the statement
	TokenEOF                   // End of input
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "TEXT"
	case TokenExpr:
		return "EXPR"
	case TokenStmt:
		return "STMT"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Template delimiters.
const (
	exprOpen  = "{{"
	exprClose = "}}"
	stmtOpen  = "{*"
	stmtClose = "*}"
)

// Token is a lexical token. Pos.Offset and End delimit the token in the
// input, delimiters included, so consecutive tokens cover the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
	End   int
}

// Lexer splits a template into text, expression and statement tokens.
type Lexer struct {
	input string
	file  string
	lines *token.LineIndex
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input, file string) *Lexer {
	return &Lexer{input: input, file: file, lines: token.NewLineIndex(input)}
}

// Tokenize converts the input into tokens, ending with a TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for l.pos < len(l.input) {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return append(tokens, Token{Type: TokenEOF, Pos: l.position(l.pos), End: l.pos}), nil
}

func (l *Lexer) next() (Token, error) {
	rest := l.input[l.pos:]
	switch {
	case strings.HasPrefix(rest, exprOpen):
		return l.delimited(TokenExpr, exprClose, true)
	case strings.HasPrefix(rest, stmtOpen):
		return l.delimited(TokenStmt, stmtClose, false)
	}

	end := len(l.input)
	for _, open := range []string{exprOpen, stmtOpen} {
		if i := strings.Index(rest, open); i >= 0 && l.pos+i < end {
			end = l.pos + i
		}
	}
	return l.emit(TokenText, l.input[l.pos:end], end), nil
}

// delimited scans a tag opened at the cursor up to its closer. Expression
// tags may contain balanced braces, e.g. dict literals.
func (l *Lexer) delimited(typ TokenType, closer string, nested bool) (Token, error) {
	start := l.pos + 2
	depth := 0
	for i := start; i < len(l.input); i++ {
		if depth == 0 && strings.HasPrefix(l.input[i:], closer) {
			return l.emit(typ, strings.TrimSpace(l.input[start:i]), i+len(closer)), nil
		}
		if !nested {
			continue
		}
		switch l.input[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	if typ == TokenExpr {
		return Token{}, syntaxErrorf(l.position(l.pos), "unclosed expression: missing '%s'", closer)
	}
	return Token{}, syntaxErrorf(l.position(l.pos), "unclosed statement: missing '%s'", closer)
}

func (l *Lexer) emit(typ TokenType, value string, end int) Token {
	tok := Token{Type: typ, Value: value, Pos: l.position(l.pos), End: end}
	l.pos = end
	return tok
}

func (l *Lexer) position(offset int) Position {
	p := l.lines.Position(offset)
	return Position{File: l.file, Line: p.Line, Column: p.Column, Offset: offset}
}
