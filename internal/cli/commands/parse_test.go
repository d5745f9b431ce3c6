package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSQL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand_Text(t *testing.T) {
	path := writeSQL(t, "SELECT 1\n")

	res := execute(t, NewParseCommand(), "", path)
	require.NoError(t, res.err)

	assert.True(t, strings.HasPrefix(res.out, "[L:  1, P:  1] | file:"))
	assert.Contains(t, res.out, "select_statement:")
	assert.Contains(t, res.out, "keyword: 'SELECT'")
	assert.Contains(t, res.out, "numeric_literal: '1'")
}

func TestParseCommand_YAML(t *testing.T) {
	res := execute(t, NewParseCommand(), "SELECT 1\n", "--format", "yaml", "-")
	require.NoError(t, res.err)

	assert.Contains(t, res.out, "file:")
	assert.Contains(t, res.out, "keyword: 'SELECT'")
	assert.Contains(t, res.out, `newline: "\n"`)
	assert.Contains(t, res.out, "whitespace: ' '")
}

func TestParseCommand_JSON(t *testing.T) {
	res := execute(t, NewParseCommand(), "SELECT 1\n", "--format", "json", "-")
	require.NoError(t, res.err)

	var tree segmentJSON
	require.NoError(t, json.Unmarshal([]byte(res.out), &tree))
	assert.Equal(t, "file", tree.Type)

	var raws []string
	var collect func(s *segmentJSON)
	collect = func(s *segmentJSON) {
		if len(s.Children) == 0 {
			raws = append(raws, s.Raw)
		}
		for _, c := range s.Children {
			collect(c)
		}
	}
	collect(&tree)
	assert.Equal(t, "SELECT 1\n", strings.Join(raws, ""))
}

func TestParseCommand_CodeOnly(t *testing.T) {
	tests := []struct {
		format string
		absent string
	}{
		{"text", "whitespace"},
		{"yaml", "whitespace"},
		{"json", `"whitespace"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res := execute(t, NewParseCommand(), "SELECT 1 -- one\n", "--format", tt.format, "--code-only", "-")
			require.NoError(t, res.err)
			assert.NotContains(t, res.out, tt.absent)
			assert.NotContains(t, res.out, "newline")
			assert.NotContains(t, res.out, "comment")
			assert.Contains(t, res.out, "SELECT")
		})
	}
}

func TestParseCommand_CodeOnlyKeepsPositions(t *testing.T) {
	res := execute(t, NewParseCommand(), "SELECT\n  1\n", "--code-only", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, `[L:  2, P:  3] |`)
}

func TestParseCommand_Unparsable(t *testing.T) {
	res := execute(t, NewParseCommand(), "SELECT 1 FROM (\n", "-")
	require.ErrorIs(t, res.err, ErrIssuesFound)
	assert.Contains(t, res.out, "unparsable")
	assert.Contains(t, res.errOut, "unable to parse")
}

func TestParseCommand_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		res := execute(t, NewParseCommand(), "", filepath.Join(t.TempDir(), "nope.sql"))
		require.ErrorIs(t, res.err, os.ErrNotExist)
	})

	t.Run("bad format", func(t *testing.T) {
		res := execute(t, NewParseCommand(), "SELECT 1", "--format", "xml", "-")
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), `unknown format "xml"`)
	})

	t.Run("no path", func(t *testing.T) {
		res := execute(t, NewParseCommand(), "")
		require.Error(t, res.err)
	})
}
