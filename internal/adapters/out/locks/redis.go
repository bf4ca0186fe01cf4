package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultLockTTL caps how long a crashed holder can block an order.
	DefaultLockTTL = 30 * time.Second

	retryInterval = 50 * time.Millisecond
)

var _ ports.OrderLocker = (*RedisLocker)(nil)

// RedisLocker serialises transitions across processes sharing one Redis.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

func Key(id kernel.UUID) string {
	return "lock:order:" + id.String()
}

// Lock retries until ctx is done. Without a deadline on ctx, it gives up
// after the lock TTL.
func (l *RedisLocker) Lock(ctx context.Context, id kernel.UUID) (ports.Unlock, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.ttl)
		defer cancel()
	}

	lock, err := l.client.Obtain(ctx, Key(id), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: order %s", errs.ErrOrderIsBusy, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock for order %s: %w", id.String(), err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock for order %s: %w", id.String(), err)
		}
		return nil
	}, nil
}
