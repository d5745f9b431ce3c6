package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Select(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name string
		refs []string
		want []string
	}{
		{"by id", []string{"TS02", "TS01"}, []string{"TS02", "TS01"}},
		{"case insensitive id", []string{"ts04"}, []string{"TS04"}},
		{"by name", []string{"test.upper"}, []string{"TS02"}},
		{"by group", []string{"test"}, []string{"TS01", "TS02"}},
		{"all", []string{"all"}, []string{"TS01", "TS02", "TS03", "TS04", "TS05", "TS06"}},
		{"duplicates keep first position", []string{"TS02", "test"}, []string{"TS02", "TS01"}},
		{"blank entries", []string{"", " TS01 "}, []string{"TS01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := reg.Select(tt.refs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ruleIDs(violationsFor(rules)))
		})
	}

	_, err := reg.Select([]string{"TS99"})
	assert.ErrorIs(t, err, ErrUnknownRule)
}

func violationsFor(rules []RuleDef) []Violation {
	vs := make([]Violation, len(rules))
	for i, r := range rules {
		vs[i].RuleID = r.ID
	}
	return vs
}

func TestRuleDef_AppliesTo(t *testing.T) {
	assert.True(t, RuleDef{}.AppliesTo("ansi"))
	r := RuleDef{Dialects: []string{"postgres"}}
	assert.True(t, r.AppliesTo("postgres"))
	assert.False(t, r.AppliesTo("ansi"))
}

func TestRuleDef_Info(t *testing.T) {
	info := spacingRule.Info()
	assert.Equal(t, "TS01", info.ID)
	assert.Equal(t, "test.spacing", info.Name)
	assert.True(t, info.Fixable)
}

func TestParseRuleList(t *testing.T) {
	assert.Equal(t, []string{"LT01", "CP01"}, ParseRuleList(" LT01,,CP01 "))
	assert.Nil(t, ParseRuleList(""))
}

func TestDecodeOptions_WeakValues(t *testing.T) {
	var opts struct {
		N   int      `mapstructure:"n"`
		F   int      `mapstructure:"f"`
		NS  int      `mapstructure:"ns"`
		B   bool     `mapstructure:"b"`
		BS  bool     `mapstructure:"bs"`
		L   []string `mapstructure:"l"`
		One []string `mapstructure:"one"`
	}
	err := DecodeOptions(map[string]any{
		"n": uint64(3), "f": 2.0, "ns": "4", "b": true, "bs": "true",
		"l": []any{"a", 1, "b"}, "one": "solo",
	}, &opts)
	require.NoError(t, err)

	assert.Equal(t, 3, opts.N)
	assert.Equal(t, 2, opts.F)
	assert.Equal(t, 4, opts.NS, "numeric strings from the environment")
	assert.True(t, opts.B)
	assert.True(t, opts.BS)
	assert.Equal(t, []string{"a", "1", "b"}, opts.L)
	assert.Equal(t, []string{"solo"}, opts.One, "a scalar becomes a one-element list")
}

func TestRegistry_ForDialect(t *testing.T) {
	reg := NewRegistry()
	reg.Register(RuleDef{ID: "A01", Name: "any"})
	reg.Register(RuleDef{ID: "P01", Name: "pg", Dialects: []string{"postgres"}})

	ids := func(rs []RuleDef) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"A01", "P01"}, ids(reg.ForDialect("postgres")))
	assert.Equal(t, []string{"A01"}, ids(reg.ForDialect("duckdb")))
}

func TestDecodeOptions(t *testing.T) {
	var opts struct {
		Policy string   `mapstructure:"capitalisation_policy"`
		Max    int      `mapstructure:"max"`
		Ignore []string `mapstructure:"ignore"`
	}
	opts.Policy = "consistent"

	err := DecodeOptions(map[string]any{"max": "80", "ignore": []any{"a"}, "other": 1}, &opts)
	require.NoError(t, err)
	assert.Equal(t, "consistent", opts.Policy, "absent keys keep their value")
	assert.Equal(t, 80, opts.Max)
	assert.Equal(t, []string{"a"}, opts.Ignore)

	require.NoError(t, DecodeOptions(nil, &opts))
	assert.Error(t, DecodeOptions(map[string]any{"max": "wide"}, &opts))
}
