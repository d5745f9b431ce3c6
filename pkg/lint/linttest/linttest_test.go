package linttest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
rule: LT01

test_fail:
  fail_str: "SELECT   1"
  fix_str: "SELECT 1"
  violations: 1

test_pass:
  pass_str: "SELECT 1"
  dialect: postgres
  options:
    width: 4
`))
	require.NoError(t, err)
	assert.Equal(t, "LT01", f.Rule)
	require.Len(t, f.Cases, 2)

	assert.Equal(t, "test_fail", f.Cases[0].Name)
	assert.Equal(t, "SELECT   1", *f.Cases[0].FailStr)
	assert.Equal(t, "SELECT 1", *f.Cases[0].FixStr)
	assert.Equal(t, 1, f.Cases[0].Violations)

	assert.Equal(t, "test_pass", f.Cases[1].Name)
	assert.Nil(t, f.Cases[1].FailStr)
	assert.Equal(t, "postgres", f.Cases[1].Dialect)
	assert.Equal(t, map[string]any{"width": 4}, f.Cases[1].Options)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"not a mapping": "- a\n- b\n",
		"missing rule":  "test_a:\n  pass_str: x\n",
		"both strings":  "rule: LT01\ntest_a:\n  pass_str: x\n  fail_str: y\n",
		"no strings":    "rule: LT01\ntest_a:\n  dialect: ansi\n",
		"bad yaml":      "rule: [\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.ErrorIs(t, err, ErrInvalidCaseFile)
		})
	}
}
