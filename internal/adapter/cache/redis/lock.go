package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockKeyPrefix = "lock:"

// releaseScript deletes the lock only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lock's expiry only while it still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker is a SET NX based mutex shared by every API instance. A held lock
// is renewed every ttl/3 so a slow holder does not lose it to another
// instance; the ttl only bounds how long a crashed holder blocks others.
type Locker struct {
	client    *redis.Client
	ttl       time.Duration
	retryWait time.Duration
	logger    *zap.Logger
}

func NewLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Locker {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &Locker{
		client:    client,
		ttl:       ttl,
		retryWait: 50 * time.Millisecond,
		logger:    logger.Named("RedisLocker"),
	}
}

// Lock blocks until key is acquired or ctx is done. The returned func
// releases the lock; calling it more than once is harmless.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("Locker.Lock: %s: %w", redisKey, errors.Join(ErrLockTimeout, ctx.Err()))
			}
			return nil, fmt.Errorf("Locker.Lock: failed to acquire %s: %w", redisKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("Locker.Lock: %s: %w", redisKey, errors.Join(ErrLockTimeout, ctx.Err()))
		case <-time.After(l.retryWait):
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(redisKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Warn("Failed to release lock, it will expire on its own",
					zap.String("key", redisKey), zap.Duration("ttl", l.ttl), zap.Error(err))
			}
		})
	}, nil
}

func (l *Locker) keepAlive(redisKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		ctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
		renewed, err := renewScript.Run(ctx, l.client, []string{redisKey}, token, l.ttl.Milliseconds()).Int()
		cancel()
		switch {
		case err != nil:
			l.logger.Warn("Failed to renew lock", zap.String("key", redisKey), zap.Error(err))
		case renewed == 0:
			l.logger.Error("Lock was lost before release", zap.String("key", redisKey))
			return
		}
	}
}
