package linter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/testutil"
	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
)

func newLinter(t *testing.T, cfg Config, opts ...Option) *Linter {
	t.Helper()
	if cfg.Lint == nil {
		cfg.Lint = lint.NewConfig("ansi")
	}
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	l, err := New(cfg, opts...)
	require.NoError(t, err)
	return l
}

func ids(vs []lint.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.RuleID
	}
	return out
}

func TestLintSource(t *testing.T) {
	l := newLinter(t, Config{})
	res, err := l.LintSource(context.Background(), "q.sql", "SELECT   1\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"LT01"}, ids(res.Violations))
	assert.Equal(t, fix.StatusFixable, res.Violations[0].FixStatus)
	assert.False(t, res.Changed())
	assert.True(t, res.Converged)
}

func TestLintSource_FixTemplated(t *testing.T) {
	l := newLinter(t, Config{
		Templater: "starlark",
		Vars:      map[string]any{"col": "a", "filtered": true},
		Fix:       true,
	})

	src := "select {{ col }}   from t{* if filtered *} where x = 1{* endif *}\n"
	res, err := l.LintSource(context.Background(), "q.sql", src)
	require.NoError(t, err)
	require.NoError(t, res.TemplateErr)
	assert.Equal(t, "select a   from t where x = 1\n", res.Templated.Rendered)
	assert.True(t, res.Converged)
	assert.True(t, res.Changed())
	assert.Equal(t, "select {{ col }} from t{* if filtered *} where x = 1{* endif *}\n", res.FixedSource)
	assert.Empty(t, res.Remaining())
}

func TestLintSource_TemplateError(t *testing.T) {
	l := newLinter(t, Config{Templater: "starlark"})
	res, err := l.LintSource(context.Background(), "q.sql", "SELECT {{ missing }}\n")
	require.NoError(t, err)
	assert.Error(t, res.TemplateErr)
	assert.Empty(t, res.Violations)
}

func TestLintSource_Cached(t *testing.T) {
	l := newLinter(t, Config{})
	first, err := l.LintSource(context.Background(), "q.sql", "SELECT 1\n")
	require.NoError(t, err)
	second, err := l.LintSource(context.Background(), "q.sql", "SELECT 1\n")
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := l.LintSource(context.Background(), "q.sql", "SELECT 2\n")
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	uncached := newLinter(t, Config{}, WithCacheSize(0))
	a, err := uncached.LintSource(context.Background(), "q.sql", "SELECT 1\n")
	require.NoError(t, err)
	b, err := uncached.LintSource(context.Background(), "q.sql", "SELECT 1\n")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestCacheKey_TracksSettings(t *testing.T) {
	withLint := func(dialect string, rules ...string) *lint.Config {
		cfg := lint.NewConfig(dialect)
		cfg.Rules = rules
		return cfg
	}
	severity := lint.NewConfig("ansi")
	severity.Severity = map[string]core.Severity{"LT01": core.SeverityError}
	options := lint.NewConfig("ansi")
	options.RuleOptions = map[string]map[string]any{"CP01": {"capitalisation_policy": "lower"}}

	base := newLinter(t, Config{Lint: withLint("ansi")})
	same := newLinter(t, Config{Lint: withLint("ansi")})
	assert.Equal(t, base.cacheKey("q.sql", "SELECT 1"), same.cacheKey("q.sql", "SELECT 1"))

	variants := map[string]*Linter{
		"dialect":   newLinter(t, Config{Lint: withLint("postgres")}),
		"rules":     newLinter(t, Config{Lint: withLint("ansi", "LT01")}),
		"severity":  newLinter(t, Config{Lint: severity}),
		"options":   newLinter(t, Config{Lint: options}),
		"fix":       newLinter(t, Config{Lint: withLint("ansi"), Fix: true}),
		"templater": newLinter(t, Config{Lint: withLint("ansi"), Templater: "starlark"}),
		"vars":      newLinter(t, Config{Lint: withLint("ansi"), Vars: map[string]any{"schema": "a"}}),
	}
	for name, l := range variants {
		assert.NotEqual(t, base.cacheKey("q.sql", "SELECT 1"), l.cacheKey("q.sql", "SELECT 1"), name)
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, lint.ErrInvalidConfig)

	_, err = New(Config{Lint: lint.NewConfig("ansi"), Templater: "jinja"})
	assert.ErrorIs(t, err, ErrUnknownTemplater)

	_, err = New(Config{Lint: &lint.Config{Dialect: "ansi", Rules: []string{"ZZ99"}}})
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	return testutil.WriteTree(t, t.TempDir(), files)
}

func TestLintFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.sql":        "SELECT   1\n",
		"b.sql":        "SELECT 1\n",
		"nested/c.sql": "select a FROM t\n",
	})
	paths, err := ExpandPaths([]string{dir}, nil)
	require.NoError(t, err)

	l := newLinter(t, Config{Processes: 2})
	results, err := l.LintFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "a.sql"), results[0].Path)
	assert.Equal(t, []string{"LT01"}, ids(results[0].Violations))
	assert.Empty(t, results[1].Violations)
	assert.Equal(t, []string{"CP01"}, ids(results[2].Violations))

	_, err = l.LintFiles(context.Background(), []string{filepath.Join(dir, "missing.sql")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLintFiles_Cancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.sql": "SELECT 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := newLinter(t, Config{})
	_, err := l.LintFiles(ctx, []string{filepath.Join(dir, "a.sql")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFixes(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.sql": "SELECT   1\n",
		"b.sql": "SELECT 1\n",
	})
	paths, err := ExpandPaths([]string{dir}, nil)
	require.NoError(t, err)

	l := newLinter(t, Config{Fix: true})
	results, err := l.LintFiles(context.Background(), paths)
	require.NoError(t, err)

	n, err := WriteFixes(results)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(dir, "a.sql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1\n", string(data))
}

func TestExpandPaths(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.sql":           "",
		"a.SQL":           "",
		"notes.txt":       "",
		".hidden/x.sql":   "",
		"models/m.sql":    "",
		"models/m.sql.j2": "",
	})
	paths, err := ExpandPaths([]string{dir, filepath.Join(dir, "notes.txt"), filepath.Join(dir, "b.sql")}, nil)
	require.NoError(t, err)

	var rel []string
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.SQL", "b.sql", "models/m.sql", "notes.txt"}, rel)

	_, err = ExpandPaths([]string{filepath.Join(dir, "nope")}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
