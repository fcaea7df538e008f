// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a function when a source file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last event before it
// runs the callback. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// Watcher runs OnChange after the watched file is written, created or
// renamed into place.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func() error
	Logger   *slog.Logger
}

// Run watches the file's directory, so that files replaced by rename are
// still seen, until ctx is cancelled. Callback errors are logged and do not
// stop the watch.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}
	logger.Info("watching for changes", "path", target)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			logger.Info("change detected", "path", target)
			if err := w.OnChange(); err != nil {
				logger.Error("update failed", "path", target, "error", err)
			}
		}
	}
}
