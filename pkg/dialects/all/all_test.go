package all_test

import (
	"testing"

	"github.com/leapstack-labs/leaplint/pkg/dialect"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/all"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var builtins = []string{"ansi", "databricks", "duckdb", "postgres", "snowflake"}

func TestRegistered(t *testing.T) {
	assert.Subset(t, dialect.List(), builtins)
	for _, name := range builtins {
		_, err := dialect.Resolve(name)
		assert.NoError(t, err, name)
	}
}

func TestChains(t *testing.T) {
	tests := map[string][]string{
		"ansi":       {"ansi"},
		"postgres":   {"postgres", "ansi"},
		"duckdb":     {"duckdb", "postgres", "ansi"},
		"snowflake":  {"snowflake", "ansi"},
		"databricks": {"databricks", "ansi"},
	}
	for name, want := range tests {
		r, err := dialect.Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, want, r.Chain())
	}
}

// Serializing the tree must give back the input for any text in any
// dialect, including text that does not lex or parse.
func TestRoundTrip_AllDialects(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"SELECT 1",
		"select a , b from t where x = 'y' ;\n",
		"SELECT a::int, $$x$$, `q`, \"d\" FROM t",
		"WITH x AS (SELECT 1) SELECT * FROM x QUALIFY 1 = 1",
		"SELECT 1 FROM (",
		"SELECT ) ( ;; ] [",
		"/* unterminated comment",
		"SELECT 'ü' AS ä\r\nFROM t -- comment",
		"INSERT INTO t VALUES (1, 2) RETURNING *",
		"@@@ ### ¤",
	}
	for _, name := range builtins {
		for _, in := range inputs {
			t.Run(name+"/"+in, func(t *testing.T) {
				res, err := parser.Parse(in, name)
				require.NoError(t, err)
				assert.Equal(t, in, segment.Serialize(res.Tree))
				assert.NoError(t, segment.Validate(res.Tree))
			})
		}
	}
}

func TestDialectFeatures(t *testing.T) {
	tests := []struct {
		name     string
		dialect  string
		sql      string
		want     string // segment type that must appear
		parentOK bool   // whether the parent dialect parses it cleanly too
		parent   string
	}{
		{
			name: "postgres cast", dialect: "postgres", parent: "ansi",
			sql:  "SELECT a::int, b ILIKE 'x%' FROM t",
			want: "cast_expression",
		},
		{
			name: "postgres dollar quote", dialect: "postgres", parent: "ansi",
			sql:  "SELECT $fn$ body $fn$ AS src",
			want: "quoted_literal",
		},
		{
			name: "postgres returning", dialect: "postgres", parent: "ansi",
			sql:  "DELETE FROM t WHERE id = 1 RETURNING id, name",
			want: "returning_clause",
		},
		{
			name: "duckdb qualify and exclude", dialect: "duckdb", parent: "postgres",
			sql:  "SELECT * EXCLUDE (a) FROM t QUALIFY row_number() OVER (PARTITION BY b ORDER BY c) = 1",
			want: "qualify_clause",
		},
		{
			name: "duckdb group by all", dialect: "duckdb", parent: "postgres",
			sql:  "SELECT a, count(*) FROM t GROUP BY ALL",
			want: "groupby_clause",
		},
		{
			name: "duckdb inherits casts", dialect: "duckdb", parent: "postgres", parentOK: true,
			sql:  "SELECT a::int FROM t",
			want: "cast_expression",
		},
		{
			name: "snowflake qualify", dialect: "snowflake", parent: "ansi",
			sql:  "SELECT a::varchar FROM t QUALIFY x = 1",
			want: "qualify_clause",
		},
		{
			name: "snowflake rlike", dialect: "snowflake", parent: "ansi",
			sql:  "SELECT a FROM t WHERE b RLIKE 'x'",
			want: "where_clause",
		},
		{
			name: "databricks backticks", dialect: "databricks", parent: "ansi",
			sql:  "SELECT `my col` FROM `db`.`t` WHERE c = \"x\"",
			want: "quoted_identifier",
		},
		{
			name: "postgres user is a role function", dialect: "postgres", parent: "ansi", parentOK: true,
			sql:  "SELECT user, session_user FROM t",
			want: "bare_function",
		},
		{
			name: "bare functions", dialect: "postgres", parent: "ansi", parentOK: true,
			sql:  "SELECT current_date, localtimestamp",
			want: "bare_function",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parser.Parse(tt.sql, tt.dialect)
			require.NoError(t, err)
			assert.True(t, res.Clean(), "parse errors: %v %v", res.ParseErrors, res.LexErrors)
			assert.Positive(t, segment.Count(res.Tree, tt.want))

			// the feature comes from the child's override, not the parent
			parent, err := parser.Parse(tt.sql, tt.parent)
			require.NoError(t, err)
			assert.Equal(t, tt.parentOK, parent.Clean())
		})
	}
}

func TestUnreservedKeywordsAreIdentifiers(t *testing.T) {
	for _, d := range []string{"ansi", "postgres", "duckdb"} {
		for _, sql := range []string{
			"SELECT index FROM t",
			"SELECT name, type, value, key FROM t",
			"SELECT t.index FROM t WHERE index > 1",
		} {
			t.Run(d+"/"+sql, func(t *testing.T) {
				res, err := parser.Parse(sql, d)
				require.NoError(t, err)
				assert.True(t, res.Clean(), "parse errors: %v %v", res.ParseErrors, res.LexErrors)
				assert.Zero(t, segment.Count(res.Tree, segment.TypeUnparsable))
			})
		}
	}

	r, err := dialect.Resolve("postgres")
	require.NoError(t, err)
	assert.True(t, r.IsReserved("user"))
	assert.True(t, r.IsReserved("returning"))
	assert.False(t, r.IsReserved("index"))
}

func TestParse_UnknownDialect(t *testing.T) {
	_, err := parser.Parse("SELECT 1", "oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}
