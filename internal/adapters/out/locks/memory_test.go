package locks_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"workshop/internal/adapters/out/locks"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("should make a second caller wait for the first", func(t *testing.T) {
		l := locks.NewMemoryLocker()
		id := kernel.NewUUID()

		unlock, err := l.Lock(ctx, id)
		require.NoError(t, err)

		acquired := make(chan struct{})
		go func() {
			second, err := l.Lock(ctx, id)
			if err == nil {
				close(acquired)
				_ = second(ctx)
			}
		}()

		select {
		case <-acquired:
			t.Fatal("second caller got the lock while it was held")
		case <-time.After(50 * time.Millisecond):
		}

		require.NoError(t, unlock(ctx))

		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("second caller never got the lock")
		}
	})

	t.Run("should fail with ErrOrderIsBusy when the context ends first", func(t *testing.T) {
		l := locks.NewMemoryLocker()
		id := kernel.NewUUID()

		unlock, err := l.Lock(ctx, id)
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err = l.Lock(waitCtx, id)
		assert.ErrorIs(t, err, errs.ErrOrderIsBusy)
	})

	t.Run("should not block different orders", func(t *testing.T) {
		l := locks.NewMemoryLocker()

		first, err := l.Lock(ctx, kernel.NewUUID())
		require.NoError(t, err)
		defer func() { _ = first(ctx) }()

		waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()

		second, err := l.Lock(waitCtx, kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, second(ctx))
	})

	t.Run("should serialise concurrent callers and forget released orders", func(t *testing.T) {
		l := locks.NewMemoryLocker()
		id := kernel.NewUUID()

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			inside  int
			overlap bool
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(ctx, id)
				if err != nil {
					return
				}
				mu.Lock()
				inside++
				if inside > 1 {
					overlap = true
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				_ = unlock(ctx)
			}()
		}
		wg.Wait()

		assert.False(t, overlap)
		assert.Zero(t, l.Len())
	})

	t.Run("should tolerate a double unlock", func(t *testing.T) {
		l := locks.NewMemoryLocker()
		id := kernel.NewUUID()

		unlock, err := l.Lock(ctx, id)
		require.NoError(t, err)
		require.NoError(t, unlock(ctx))
		require.NoError(t, unlock(ctx))
		assert.Zero(t, l.Len())
	})
}
