package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginLimiter counts login attempts per username over a fixed window using
// Redis INCR+EXPIRE. Redis failures fail open so an unavailable cache never
// locks users out.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client disables limiting.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow reports whether another login attempt for username is permitted.
func (l *LoginLimiter) Allow(ctx context.Context, username string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}

	key := fmt.Sprintf("login_attempts:%s", username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}
