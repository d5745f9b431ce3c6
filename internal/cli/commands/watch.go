package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses bursts of file events into one run.
const watchDebounce = 100 * time.Millisecond

// watchAndRun calls run whenever a watched file changes, until ctx is
// done. Directories under paths are watched recursively; for file paths
// their directory is watched.
func watchAndRun(ctx context.Context, cmdCtx *CommandContext, paths, exts []string, run func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range paths {
		if p == StdinPath {
			return errors.New("cannot watch stdin")
		}
		if err := watchPath(watcher, p); err != nil {
			return err
		}
	}

	logger := cmdCtx.Logger
	r := cmdCtx.Renderer
	r.Muted("Watching for changes. Press Ctrl+C to stop.")

	rerun := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchPath(watcher, event.Name); err != nil {
						logger.Error("failed to watch directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !slices.Contains(exts, strings.ToLower(filepath.Ext(event.Name))) {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				logger.Debug("file changed, re-linting", "file", name)
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			r.Println("")
			if err := run(ctx); err != nil && !errors.Is(err, ErrIssuesFound) {
				r.Error(err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchPath adds a directory and all subdirectories to the watcher, or
// the directory of a file.
func watchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(p)
		}
		return nil
	})
}
