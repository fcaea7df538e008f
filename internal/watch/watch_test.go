// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, fn func() error) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		Path:     path,
		Debounce: 20 * time.Millisecond,
		OnChange: fn,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Give fsnotify time to set up the watcher.
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_RunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fellowship.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func() error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	assert.True(t, waitFor(func() bool { return calls.Load() > 0 }), "callback was not invoked after write")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fellowship.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func() error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_KeepsRunningAfterCallbackError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fellowship.txt")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func() error {
		calls.Add(1)
		return errors.New("bad input")
	})

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	require.True(t, waitFor(func() bool { return calls.Load() >= 1 }))
	time.Sleep(100 * time.Millisecond)
	seen := calls.Load()

	require.NoError(t, os.WriteFile(path, []byte("three"), 0o644))
	assert.True(t, waitFor(func() bool { return calls.Load() > seen }), "watch should survive callback errors")
}
