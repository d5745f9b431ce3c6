package lexer

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() []Rule {
	return []Rule{
		RegexRule("whitespace", `[^\S\r\n]+`, segment.TypeWhitespace),
		RegexRule("newline", `\r\n|\n`, segment.TypeNewline),
		RegexRule("inline_comment", `--[^\n]*`, segment.TypeInlineComment),
		StringRule("not_equal", "<>", "comparison_operator"),
		StringRule("less_than", "<", "comparison_operator"),
		RegexRule("numeric_literal", `[0-9]+`, "numeric_literal"),
		RegexRule("word", `[a-zA-Z_][a-zA-Z0-9_]*`, segment.TypeWord),
		StringRule("comma", ",", "comma"),
	}
}

func types(segs []*segment.Segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Type()
	}
	return out
}

func joined(segs []*segment.Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Raw())
	}
	return sb.String()
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []string
	}{
		{
			name:  "simple select",
			input: "SELECT a, 1",
			types: []string{"word", "whitespace", "word", "comma", "whitespace", "numeric_literal"},
		},
		{
			name:  "comment and newline",
			input: "a -- note\nb",
			types: []string{"word", "whitespace", "inline_comment", "newline", "word"},
		},
		{
			name:  "declaration order wins over length",
			input: "<>",
			types: []string{"comparison_operator"},
		},
		{
			name:  "empty input",
			input: "",
			types: []string{},
		},
	}

	lx := New(testRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := lx.Lex(tt.input)
			assert.Equal(t, tt.types, types(res.Segments))
			assert.Equal(t, tt.input, joined(res.Segments))
			assert.Empty(t, res.Unlexable)
		})
	}
}

func TestLex_FirstMatchNotLongest(t *testing.T) {
	lx := New([]Rule{
		StringRule("lt", "<", "lt"),
		StringRule("ne", "<>", "ne"),
	})
	res := lx.Lex("<>")
	// "ne" never gets a chance; ">" is unknown to this rule list
	assert.Equal(t, []string{"lt", segment.TypeUnlexable}, types(res.Segments))
}

func TestLex_Unlexable(t *testing.T) {
	lx := New(testRules())
	res := lx.Lex("a ¤ b")

	require.Len(t, res.Segments, 5)
	assert.Equal(t, segment.TypeUnlexable, res.Segments[2].Type())
	assert.Equal(t, "¤", res.Segments[2].Raw())
	assert.Equal(t, []token.Range{{Start: 2, End: 4}}, res.Unlexable)
	assert.Equal(t, "a ¤ b", joined(res.Segments))
}

func TestLex_Origins(t *testing.T) {
	lx := New(testRules())
	res := lx.Lex("ab  12")

	require.Len(t, res.Segments, 3)
	assert.Equal(t, token.Range{Start: 0, End: 2}, res.Segments[0].Origin())
	assert.Equal(t, token.Range{Start: 2, End: 4}, res.Segments[1].Origin())
	assert.Equal(t, token.Range{Start: 4, End: 6}, res.Segments[2].Origin())
}

func TestFuncRule(t *testing.T) {
	dollar := FuncRule("dollar", func(s string) int {
		if strings.HasPrefix(s, "$$") {
			if end := strings.Index(s[2:], "$$"); end >= 0 {
				return end + 4
			}
		}
		return 0
	}, "dollar_quote")

	lx := New(append([]Rule{dollar}, testRules()...))
	res := lx.Lex("$$ x $$ a")
	assert.Equal(t, []string{"dollar_quote", "whitespace", "word"}, types(res.Segments))
}

func TestRules_ReturnsCopy(t *testing.T) {
	lx := New(testRules())
	rs := lx.Rules()
	rs[0] = Rule{}
	assert.Equal(t, "whitespace", lx.Rules()[0].Name)
}

func TestDollarQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"$$ body $$ rest", 10},
		{"$fn$ a $$ b $fn$;", 16},
		{"$$", 0},
		{"$$ unterminated", 0},
		{"$1 + $2", 0},
		{"$a-b$ x $a-b$", 0},
		{"plain", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DollarQuoted(tt.in))
		})
	}
}
