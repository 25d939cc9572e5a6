package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// unlockScript deletes the key only when the caller still owns it, so a
// holder whose TTL lapsed cannot release a lock re-acquired by someone else.
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`

// extendScript refreshes the TTL only for the current owner.
const extendScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
else
	return 0
end`

// Mutex is a single-holder distributed lock backed by SET NX with an owner
// token.
type Mutex struct {
	client *Client
	logger logging.Logger
	key    string
	token  string
	ttl    time.Duration
}

// NewMutex builds a mutex for the named resource. The lock key lives under
// the client's key prefix.
func NewMutex(client *Client, name string, ttl time.Duration, log logging.Logger) *Mutex {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Mutex{
		client: client,
		logger: log,
		key:    client.KeyPrefix() + "lock:" + name,
		token:  uuid.NewString(),
		ttl:    ttl,
	}
}

// TryLock attempts a single non-blocking acquisition.
func (m *Mutex) TryLock(ctx context.Context) (bool, error) {
	ok, err := m.client.SetNX(ctx, m.key, m.token, m.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to acquire lock")
	}
	return ok, nil
}

// Unlock releases the lock if this mutex still owns it.
func (m *Mutex) Unlock(ctx context.Context) error {
	res, err := m.client.Eval(ctx, unlockScript, []string{m.key}, m.token).Result()
	if err != nil && err != redis.Nil {
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to release lock")
	}
	if n, ok := res.(int64); ok && n == 0 {
		m.logger.Warn("lock already released or taken over", logging.String("key", m.key))
	}
	return nil
}

// Extend refreshes the TTL while the holder is still working.
func (m *Mutex) Extend(ctx context.Context, ttl time.Duration) (bool, error) {
	res, err := m.client.Eval(ctx, extendScript, []string{m.key}, m.token, ttl.Milliseconds()).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to extend lock")
	}
	n, ok := res.(int64)
	return ok && n == 1, nil
}

// RebuildLocker adapts redis mutexes to the rebuild coordinator's locking
// contract: at most one replica rebuilds the variation index at a time.
type RebuildLocker struct {
	client *Client
	logger logging.Logger
}

func NewRebuildLocker(client *Client, log logging.Logger) *RebuildLocker {
	return &RebuildLocker{client: client, logger: log}
}

// TryAcquire takes the named lock without blocking. When another replica
// holds it, acquired is false and err is nil. The returned release func is
// safe to call exactly once; release failures are logged, not returned, since
// the TTL bounds the damage.
func (l *RebuildLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	m := NewMutex(l.client, key, ttl, l.logger)
	ok, err := m.TryLock(ctx)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.Unlock(releaseCtx); err != nil {
			l.logger.Warn("failed to release rebuild lock", logging.String("key", key), logging.Err(err))
		}
	}
	return release, true, nil
}

//Personal.AI order the ending
