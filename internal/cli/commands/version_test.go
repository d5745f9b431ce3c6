package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/leaplint/pkg/dialects/all"
)

func runVersion(t *testing.T, build BuildInfo, args ...string) string {
	t.Helper()
	cmd := NewVersionCommand(build)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestVersionCommand(t *testing.T) {
	out := runVersion(t, BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-02"})

	assert.Contains(t, out, "leaplint v1.2.3")
	assert.Contains(t, out, "commit:   abc1234")
	assert.Contains(t, out, "built:    2026-01-02")
	assert.Contains(t, out, "go:       go")
	assert.Contains(t, out, "duckdb")
}

func TestVersionCommand_Short(t *testing.T) {
	assert.Equal(t, "0.1.0\n", runVersion(t, BuildInfo{Version: "0.1.0"}, "--short"))
}

func TestVersionCommand_MissingBuildMetadata(t *testing.T) {
	out := runVersion(t, BuildInfo{Version: "dev"})
	assert.Contains(t, out, "leaplint vdev")
	assert.Contains(t, out, "built:    unknown")
}
