// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/mattn/go-sqlite3"
)

// Write attempts made while another connection holds the database lock.
const (
	busyAttempts = 5
	busyDelay    = 50 * time.Millisecond
)

// isBusy reports whether err is SQLite refusing a statement because another
// connection holds the lock.
func isBusy(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}

// withBusyRetry runs fn, retrying with backoff while SQLite reports the
// database busy. Other errors are returned as they are.
func withBusyRetry(ctx context.Context, fn func() error) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.RetryIf(isBusy),
		retry.Attempts(busyAttempts),
		retry.Delay(busyDelay),
		retry.LastErrorOnly(true),
	)
}
