package middleware

import (
	"sync"
	"time"

	"quiz-arena/internal/domain"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SubmitRateLimiter keeps one token bucket per caller. Buckets idle longer
// than limiterIdleTTL are evicted lazily.
type SubmitRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*userLimiter
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewSubmitRateLimiter returns nil when perMinute is not positive, which
// disables limiting.
func NewSubmitRateLimiter(perMinute, burst int) *SubmitRateLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &SubmitRateLimiter{
		limiters: make(map[string]*userLimiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow consumes one token for key.
func (l *SubmitRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, ul := range l.limiters {
			if now.Sub(ul.lastSeen) > limiterIdleTTL {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	ul, ok := l.limiters[key]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = ul
	}
	ul.lastSeen = now
	return ul.limiter.AllowN(now, 1)
}

// Handler must be mounted after Protected. Anonymous callers are keyed by IP.
func (l *SubmitRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l == nil {
			return c.Next()
		}
		key := RequesterFrom(c).UserID
		if key == "" {
			key = "ip:" + c.IP()
		}
		if !l.Allow(key) {
			return domain.NewError(domain.CodeRateLimited, "Too many submissions, please slow down", nil)
		}
		return c.Next()
	}
}
