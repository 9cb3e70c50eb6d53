// Package watch re-runs the checker when model or schema files change.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces bursts of file system events (editors often
// emit several writes per save) into one check run.
const debounceWindow = 200 * time.Millisecond

// relevantExts are the file extensions that trigger a re-check.
var relevantExts = map[string]bool{
	".sql":  true,
	".yml":  true,
	".yaml": true,
}

// Watcher watches a directory tree and invokes a callback after changes
// settle.
type Watcher struct {
	root   string
	logger *slog.Logger
	onRun  func(ctx context.Context) error
}

// New creates a watcher over root. onRun is invoked once at start and
// again after each debounced batch of changes.
func New(root string, logger *slog.Logger, onRun func(ctx context.Context) error) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{root: root, logger: logger, onRun: onRun}
}

// Run blocks until ctx is cancelled, re-running the callback whenever a
// relevant file changes. Callback errors are logged, not fatal: a check
// that finds violations must not stop the watch loop.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := w.watchTree(watcher, w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	if err := w.onRun(ctx); err != nil {
		w.logger.Warn("initial check failed", "error", err)
	}

	var debounce *time.Timer
	runs := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watchTree(watcher, event.Name)
				}
			}

			if !relevantExts[filepath.Ext(event.Name)] {
				continue
			}

			w.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})

		case <-runs:
			if err := w.onRun(ctx); err != nil {
				w.logger.Warn("check failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchTree recursively adds directories under dir, skipping hidden
// directories.
func (w *Watcher) watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if name := entry.Name(); len(name) > 1 && name[0] == '.' {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
