package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "printshop:lock:"

// JobLock lets one replica at a time run a scheduled job.
type JobLock struct {
	locker *redislock.Client
}

func NewJobLock(client redis.UniversalClient) *JobLock {
	return &JobLock{locker: redislock.New(client)}
}

// Acquire takes the lock for ttl without waiting. acquired is false when another
// holder has it; the returned release is then nil.
func (l *JobLock) Acquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	lock, err := l.locker.Obtain(ctx, lockPrefix+name, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, true, nil
}
