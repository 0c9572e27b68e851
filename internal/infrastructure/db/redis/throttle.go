package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	maxFailedLogins = 5
	attemptWindow   = 10 * time.Minute // key TTL, set on first failure
)

// LoginThrottle counts failed login attempts per account in Redis.
// Key format: login_attempts:<email>
//
// The throttle fails open: when Redis is unreachable, attempts are allowed
// and the error is logged, so authentication never depends on the cache.
type LoginThrottle struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, log zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, log: log}
}

// TooManyAttempts reports whether the account has exhausted its attempt budget.
func (t *LoginThrottle) TooManyAttempts(ctx context.Context, email string) bool {
	n, err := t.client.Get(ctx, t.key(email)).Int()
	if err != nil {
		if err != redis.Nil {
			t.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		}
		return false
	}
	return n >= maxFailedLogins
}

// RecordFailure increments the failure counter, starting the window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	key := t.key(email)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, attemptWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		t.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		t.log.Warn().Err(err).Msg("login throttle reset failed")
	}
}

func (t *LoginThrottle) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}
