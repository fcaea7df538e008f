// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestIsBusy(t *testing.T) {
	assert.True(t, isBusy(fmt.Errorf("upserting book: %w", sqlite3.Error{Code: sqlite3.ErrBusy})))
	assert.True(t, isBusy(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.False(t, isBusy(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.False(t, isBusy(errors.New("disk full")))
	assert.False(t, isBusy(nil))
}

func TestWithBusyRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries while busy", func(t *testing.T) {
		calls := 0
		err := withBusyRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return sqlite3.Error{Code: sqlite3.ErrBusy}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		calls := 0
		err := withBusyRetry(ctx, func() error {
			calls++
			return sqlite3.Error{Code: sqlite3.ErrBusy}
		})
		assert.True(t, isBusy(err))
		assert.Equal(t, busyAttempts, calls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		err := withBusyRetry(ctx, func() error {
			calls++
			return fmt.Errorf("%w: missing", ErrBookNotFound)
		})
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Equal(t, 1, calls)
	})
}
