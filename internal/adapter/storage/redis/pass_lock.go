package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
)

// PassLock serializes reconciliation passes across replicas with a Redis lock.
type PassLock struct {
	locker *redislock.Client
	key    string
}

// NewPassLock creates a PassLock on the given key.
func NewPassLock(client goredis.UniversalClient, key string) *PassLock {
	return &PassLock{
		locker: redislock.New(client),
		key:    key,
	}
}

// TryAcquire obtains the lock without waiting. ok is false when another
// replica holds it. The returned release func must be called when the pass ends.
func (l *PassLock) TryAcquire(ctx context.Context, ttl time.Duration) (release func(context.Context) error, ok bool, err error) {
	lock, err := l.locker.Obtain(ctx, l.key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("obtain %s: %w", l.key, err)
	}

	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// TTL elapsed before the pass finished.
			return nil
		}
		return err
	}, true, nil
}
