package locks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	id "appealboard/pkg/domain"
)

const (
	leaseKeyPrefix   = "appealboard:stage:lock:"
	defaultLeaseTTL  = 10 * time.Second
	acquireRetryWait = 50 * time.Millisecond
)

// releaseScript deletes the lease only if the caller still holds it, so a
// lease that expired and was re-acquired elsewhere is never released by the
// old holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LeaseLocker serializes transitions across instances with a per-case redis
// lease (SET NX PX). The TTL bounds how long a crashed holder can block a
// case.
type LeaseLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewLease(client *redis.Client, logger *slog.Logger) *LeaseLocker {
	return &LeaseLocker{client: client, ttl: defaultLeaseTTL, logger: logger}
}

func (l *LeaseLocker) Acquire(ctx context.Context, caseID id.CaseID) (func(), error) {
	key := leaseKeyPrefix + caseID.String()
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire case lease: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(acquireRetryWait):
		}
	}

	release := func() {
		// Release with a fresh context: the request context may already be
		// cancelled by the time deferred cleanup runs.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Error("failed to release case lease", "key", key, "error", err)
		}
	}
	return release, nil
}
