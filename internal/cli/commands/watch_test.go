package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/output"
)

func TestWatchPath(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"models/staging", ".git/objects"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0o755))
	}
	file := filepath.Join(dir, "models", "a.sql")
	require.NoError(t, os.WriteFile(file, []byte("select 1\n"), 0o644))

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	require.NoError(t, watchPath(w, dir))
	assert.ElementsMatch(t, []string{
		dir,
		filepath.Join(dir, "models"),
		filepath.Join(dir, "models", "staging"),
	}, w.WatchList())

	t.Run("file watches its directory", func(t *testing.T) {
		fw, err := fsnotify.NewWatcher()
		require.NoError(t, err)
		defer func() { _ = fw.Close() }()

		require.NoError(t, watchPath(fw, file))
		assert.Equal(t, []string{filepath.Join(dir, "models")}, fw.WatchList())
	})

	t.Run("missing path", func(t *testing.T) {
		assert.ErrorIs(t, watchPath(w, filepath.Join(dir, "nope")), os.ErrNotExist)
	})
}

func testCommandContext() (*CommandContext, *bytes.Buffer) {
	var out bytes.Buffer
	return &CommandContext{
		Logger:   slog.New(slog.DiscardHandler),
		Renderer: output.NewRendererWithTTY(&out, &out, false, output.ModeText),
	}, &out
}

func TestWatchAndRun_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	run := func(context.Context) error {
		runs.Add(1)
		return ErrIssuesFound
	}

	cmdCtx, _ := testCommandContext()
	done := make(chan error, 1)
	go func() {
		done <- watchAndRun(ctx, cmdCtx, []string{dir}, []string{".sql"}, run)
	}()

	// the watcher may not be registered yet, so keep touching the file
	// until a run happens
	sqlFile := filepath.Join(dir, "a.sql")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(sqlFile, []byte("select 1\n"), 0o644)
		return runs.Load() > 0
	}, 5*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchAndRun_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var runs atomic.Int32
	run := func(context.Context) error {
		runs.Add(1)
		return nil
	}

	cmdCtx, _ := testCommandContext()
	done := make(chan error, 1)
	go func() {
		done <- watchAndRun(ctx, cmdCtx, []string{dir}, []string{".sql"}, run)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	require.NoError(t, <-done)
	assert.Zero(t, runs.Load())
}

func TestWatchAndRun_RejectsStdin(t *testing.T) {
	cmdCtx, _ := testCommandContext()
	err := watchAndRun(context.Background(), cmdCtx, []string{StdinPath}, []string{".sql"},
		func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}
