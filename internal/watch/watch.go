// Package watch re-runs a build action whenever a source tree changes.
//
// It watches a directory recursively and coalesces bursts of file system
// events into a single rebuild after a quiet period.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Options configures the watcher behavior.
type Options struct {
	Dir      string               // Directory tree to watch
	Debounce time.Duration        // Quiet period before OnChange fires
	OnChange func() error         // Called after each settled burst of changes
	OnEvent  func(fsnotify.Event) // Optional hook called for each raw event
}

// Watcher re-runs an action when files under a directory change.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts}
}

// Run starts watching. It blocks until the context is cancelled or an
// error occurs. An error from OnChange stops the watch and is returned.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher
	defer watcher.Close()

	if err := w.addTree(w.opts.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Dir, err)
	}

	return w.watch(ctx)
}

// addTree registers dir and every directory below it. fsnotify watches
// are not recursive, so each level needs its own registration.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// watch monitors the tree and fires OnChange once per settled burst.
func (w *Watcher) watch(ctx context.Context) error {
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if event.Op == fsnotify.Chmod {
				// Ignore chmod events
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				// A new directory needs its own watch before anything
				// written inside it can be seen.
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						return fmt.Errorf("failed to watch new dir %s: %w", event.Name, err)
					}
				}
			}
			if w.opts.OnEvent != nil {
				w.opts.OnEvent(event)
			}
			pending = time.After(w.opts.Debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)

		case <-pending:
			pending = nil
			if err := w.opts.OnChange(); err != nil {
				return err
			}
		}
	}
}
