// Package linttest runs rule test cases described in YAML files.
//
// A case file names one rule and any number of cases:
//
//	rule: LT01
//
//	test_fail_multiple_spaces:
//	  fail_str: "SELECT   1"
//	  fix_str: "SELECT 1"
//
//	test_pass_single_space:
//	  pass_str: "SELECT 1"
//
// A pass case must produce no violation of the rule. A fail case must
// produce at least one (exactly violations when set); when fix_str is set,
// fixing must converge to it and the fixed text must lint clean.
package linttest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/all" // register dialects
	"github.com/leapstack-labs/leaplint/pkg/lint"
	"github.com/leapstack-labs/leaplint/pkg/segment"
)

// DefaultDialect is used by cases that do not name one.
const DefaultDialect = "ansi"

// ErrInvalidCaseFile is returned for malformed case files.
var ErrInvalidCaseFile = errors.New("invalid rule case file")

// Case is one rule test case.
type Case struct {
	Name       string         `yaml:"-"`
	PassStr    *string        `yaml:"pass_str"`
	FailStr    *string        `yaml:"fail_str"`
	FixStr     *string        `yaml:"fix_str"`
	Dialect    string         `yaml:"dialect"`
	Options    map[string]any `yaml:"options"`
	Violations int            `yaml:"violations"`
}

// File is a parsed case file.
type File struct {
	Rule  string
	Cases []Case
}

// Load reads a case file. Cases keep their order in the file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses the contents of a case file.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCaseFile, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping", ErrInvalidCaseFile)
	}

	f := &File{}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Value == "rule" {
			f.Rule = val.Value
			continue
		}
		var c Case
		if err := val.Decode(&c); err != nil {
			return nil, fmt.Errorf("%w: case %s: %w", ErrInvalidCaseFile, key.Value, err)
		}
		if (c.PassStr == nil) == (c.FailStr == nil) {
			return nil, fmt.Errorf("%w: case %s: exactly one of pass_str and fail_str is required",
				ErrInvalidCaseFile, key.Value)
		}
		c.Name = key.Value
		f.Cases = append(f.Cases, c)
	}
	if f.Rule == "" {
		return nil, fmt.Errorf("%w: missing rule", ErrInvalidCaseFile)
	}
	return f, nil
}

// Run loads a case file and runs every case as a subtest.
func Run(t *testing.T, path string) {
	t.Helper()
	f, err := Load(path)
	require.NoError(t, err)
	for _, c := range f.Cases {
		t.Run(c.Name, func(t *testing.T) {
			runCase(t, f.Rule, c)
		})
	}
}

func runCase(t *testing.T, rule string, c Case) {
	t.Helper()
	d := c.Dialect
	if d == "" {
		d = DefaultDialect
	}
	cfg := lint.NewConfig(d)
	cfg.Rules = []string{rule}
	if c.Options != nil {
		cfg.RuleOptions = map[string]map[string]any{rule: c.Options}
	}
	e, err := lint.NewEngine(cfg, lint.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	if c.PassStr != nil {
		assert.Empty(t, violations(t, e, *c.PassStr, rule))
		return
	}

	vs := violations(t, e, *c.FailStr, rule)
	require.NotEmpty(t, vs, "expected %s to fail", rule)
	if c.Violations > 0 {
		assert.Len(t, vs, c.Violations)
	}
	if c.FixStr == nil {
		return
	}

	res, err := e.Fix(context.Background(), parse(t, e, *c.FailStr), nil)
	require.NoError(t, err)
	assert.True(t, res.Converged, "fix did not converge")
	fixed := segment.Serialize(res.Tree)
	assert.Equal(t, *c.FixStr, fixed)
	assert.Empty(t, violations(t, e, fixed, rule), "fixed text still fails")
}

func parse(t *testing.T, e *lint.Engine, sql string) *segment.Segment {
	t.Helper()
	res, err := e.Parser().Parse(sql)
	require.NoError(t, err)
	return res.Tree
}

func violations(t *testing.T, e *lint.Engine, sql, rule string) []lint.Violation {
	t.Helper()
	var out []lint.Violation
	for _, v := range e.Lint(parse(t, e, sql), nil).Violations {
		if v.RuleID == rule {
			out = append(out, v)
		}
	}
	return out
}
