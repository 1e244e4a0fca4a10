package adapter

import (
	"context"
	"fmt"
	"time"

	"quiz-arena/internal/cache"
	"quiz-arena/internal/domain"
	"quiz-arena/internal/logger"
	"quiz-arena/internal/util"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockRetryInterval = 50 * time.Millisecond
	// maxLockCallTimeout caps a single Redis round trip.
	maxLockCallTimeout = 500 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisSubmissionLocker implements domain.SubmissionLocker with SET NX PX.
// It narrows the window for concurrent submits; the database transaction
// remains the authority on the attempt quota.
type RedisSubmissionLocker struct {
	client        redis.Cmdable
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	newToken      func() string
}

func NewRedisSubmissionLocker(client redis.Cmdable, ttl, wait time.Duration) *RedisSubmissionLocker {
	return &RedisSubmissionLocker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultLockRetryInterval,
		newToken:      util.NewULID,
	}
}

// Acquire polls until the lock is taken or the wait period runs out.
// A timeout yields domain.ErrLockNotAcquired; Redis failures are returned as-is.
func (l *RedisSubmissionLocker) Acquire(ctx context.Context, userID, testID string) (domain.Unlock, error) {
	key := cache.SubmissionLockKey(userID, testID)
	token := l.newToken()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.setNX(ctx, key, token)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire submission lock %s: %w", key, err)
		}
		if ok {
			return l.unlockFunc(key, token), nil
		}
		if !time.Now().Before(deadline) {
			return nil, domain.ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *RedisSubmissionLocker) callTimeout() time.Duration {
	if l.wait > 0 && l.wait < maxLockCallTimeout {
		return l.wait
	}
	return maxLockCallTimeout
}

func (l *RedisSubmissionLocker) setNX(ctx context.Context, key, token string) (bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, l.callTimeout())
	defer cancel()
	return l.client.SetNX(callCtx, key, token, l.ttl).Result()
}

func (l *RedisSubmissionLocker) unlockFunc(key, token string) domain.Unlock {
	return func(ctx context.Context) error {
		n, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Int64()
		if err != nil {
			return fmt.Errorf("failed to release submission lock %s: %w", key, err)
		}
		if n == 0 {
			logger.Get().Warn("Submission lock expired before release", zap.String("key", key))
		}
		return nil
	}
}

// NoopSubmissionLocker is used when no Redis is configured.
type NoopSubmissionLocker struct{}

func (NoopSubmissionLocker) Acquire(ctx context.Context, userID, testID string) (domain.Unlock, error) {
	return func(context.Context) error { return nil }, nil
}
