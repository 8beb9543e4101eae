package limiter

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed login attempts per email+IP in a fixed
// redis window. It fails open: if redis is unreachable, logins are not
// blocked.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, max: max, window: window}
}

func (l *LoginLimiter) key(email, ip string) string {
	return "login_fail:" + strings.ToLower(email) + ":" + ip
}

// Blocked reports whether this email+IP pair has exhausted its failure
// budget for the current window.
func (l *LoginLimiter) Blocked(ctx context.Context, email, ip string) bool {
	if l == nil || l.rdb == nil {
		return false
	}
	count, err := l.rdb.Get(ctx, l.key(email, ip)).Int()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: login limiter read failed: %v", err)
		}
		return false
	}
	return count >= l.max
}

// RecordFailure increments the failure counter, starting the window on
// the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email, ip string) {
	if l == nil || l.rdb == nil {
		return
	}
	key := l.key(email, ip)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("WARN: login limiter increment failed: %v", err)
		return
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			log.Printf("WARN: login limiter expire failed: %v", err)
		}
	}
}

// Clear drops the counter after a successful login.
func (l *LoginLimiter) Clear(ctx context.Context, email, ip string) {
	if l == nil || l.rdb == nil {
		return
	}
	if err := l.rdb.Del(ctx, l.key(email, ip)).Err(); err != nil {
		log.Printf("WARN: login limiter clear failed: %v", err)
	}
}
