package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	typ TokenType
	val string
}

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := NewLexer(input, "q.sql").Tokenize()
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	require.Equal(t, TokenEOF, tokens[len(tokens)-1].Type, "last token is EOF")
	return tokens
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{"empty", "", nil},
		{"plain sql", "select 1 from t", []tok{{TokenText, "select 1 from t"}}},
		{"expression", "select {{ col }} from t", []tok{
			{TokenText, "select "}, {TokenExpr, "col"}, {TokenText, " from t"},
		}},
		{"adjacent tags", "{{ a }}{* if b *}", []tok{
			{TokenExpr, "a"}, {TokenStmt, "if b"},
		}},
		{"trims tag whitespace", "{{   x + y\t}}", []tok{{TokenExpr, "x + y"}}},
		{"empty expression", "{{}}", []tok{{TokenExpr, ""}}},
		{"dict literal", `{{ {"k": {"n": 1}} }}`, []tok{{TokenExpr, `{"k": {"n": 1}}`}}},
		{"statement braces are not nested", "{* x = {1: 2} *}", []tok{{TokenStmt, "x = {1: 2}"}}},
		{"lone brace is text", "select '{' || '}'", []tok{{TokenText, "select '{' || '}'"}}},
		{"loop", "select\n{* for c in cols *}{{ c }},{* endfor *}\n1", []tok{
			{TokenText, "select\n"},
			{TokenStmt, "for c in cols"},
			{TokenExpr, "c"},
			{TokenText, ","},
			{TokenStmt, "endfor"},
			{TokenText, "\n1"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			var got []tok
			for _, tk := range tokens[:len(tokens)-1] {
				got = append(got, tok{tk.Type, tk.Value})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexer_OffsetsCoverInput(t *testing.T) {
	input := "SELECT {{ a }} ü {* if b *}x{* endif *}"
	tokens := tokenize(t, input)

	off := 0
	for _, tk := range tokens {
		assert.Equal(t, off, tk.Pos.Offset, "token %s starts where the previous one ended", tk.Type)
		off = tk.End
	}
	assert.Equal(t, len(input), off)
}

func TestLexer_Positions(t *testing.T) {
	input := "a\nbb\n  {{ expr }}"
	tokens := tokenize(t, input)
	require.Len(t, tokens, 3)

	expr := tokens[1]
	assert.Equal(t, TokenExpr, expr.Type)
	assert.Equal(t, Position{File: "q.sql", Line: 3, Column: 3, Offset: 7}, expr.Pos)
	assert.Equal(t, len(input), expr.End, "end includes the closing delimiter")

	eof := tokens[2]
	assert.Equal(t, len(input), eof.Pos.Offset)
	assert.Equal(t, eof.Pos.Offset, eof.End)
}

func TestLexer_Unclosed(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		line  int
		col   int
	}{
		{"SELECT {{ column FROM users", "unclosed expression", 1, 8},
		{"select 1\n{* for x in y", "unclosed statement", 2, 1},
		{"{{ {1: 2} ", "unclosed expression", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := NewLexer(tt.input, "q.sql").Tokenize()
			require.ErrorIs(t, err, ErrSyntax)

			var tmplErr *Error
			require.ErrorAs(t, err, &tmplErr)
			assert.Contains(t, tmplErr.Msg, tt.msg)
			assert.Equal(t, tt.line, tmplErr.Position().Line)
			assert.Equal(t, tt.col, tmplErr.Position().Column)
			assert.Equal(t, StmtUnknown, tmplErr.Block)
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "TEXT", TokenText.String())
	assert.Equal(t, "EXPR", TokenExpr.String())
	assert.Equal(t, "STMT", TokenStmt.String())
	assert.Equal(t, "EOF", TokenEOF.String())
	assert.Equal(t, "UNKNOWN", TokenType(42).String())
}
