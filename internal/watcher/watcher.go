// Package watcher reloads the library when the documents directory
// changes out-of-band (files dropped in or removed outside an ingest).
package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/calypso-labs/contexta/internal/logger"
)

// debounceWindow coalesces bursts of filesystem events (a copy of a
// large file fires many writes) into a single reload.
const debounceWindow = 2 * time.Second

// ReloadFunc is invoked after the debounce window closes.
type ReloadFunc func(ctx context.Context) error

// Watcher observes one directory and triggers reloads.
type Watcher struct {
	dir    string
	reload ReloadFunc
}

// New creates a watcher for dir that calls reload on changes.
func New(dir string, reload ReloadFunc) *Watcher {
	return &Watcher{dir: dir, reload: reload}
}

// Run watches until the context is cancelled. Only create, write,
// remove, and rename events count; chmod-only events are ignored.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	logger.Info("Watching %s for changes", w.dir)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Filesystem event: %s", event)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.reload(ctx); err != nil {
				logger.Warn("Reload after filesystem change failed: %v", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
