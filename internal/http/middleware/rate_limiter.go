package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRetryAfter         = "Retry-After"

	msgRateLimitExceeded = "rate limit exceeded"

	// Buckets idle this long are dropped. A dropped bucket comes back full,
	// which it would have been anyway once idle for burst/rate.
	defaultIdleTTL = 3 * time.Minute
	sweepInterval  = time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter implements token bucket rate limiting per client key. Idle
// buckets are swept at most once per sweepInterval from the request path.
type RateLimiter struct {
	buckets   sync.Map // key -> *bucket
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

// NewRateLimiter creates a new rate limiter
// requestsPerSecond: number of requests allowed per second
// burst: maximum burst size
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:    rate.Limit(requestsPerSecond),
		burst:   burst,
		idleTTL: defaultIdleTTL,
		now:     time.Now,
	}
	rl.lastSweep.Store(rl.now().UnixNano())
	return rl
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := rl.now()
	rl.maybeSweep(now)

	b, ok := rl.buckets.Load(key)
	if !ok {
		b, _ = rl.buckets.LoadOrStore(key, &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)})
	}
	bk := b.(*bucket)
	bk.lastSeen.Store(now.UnixNano())
	return bk.limiter
}

func (rl *RateLimiter) maybeSweep(now time.Time) {
	last := rl.lastSweep.Load()
	if now.UnixNano()-last < int64(sweepInterval) {
		return
	}
	if rl.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		rl.Prune(now)
	}
}

// Prune drops buckets idle for longer than the idle TTL and returns how
// many were removed
func (rl *RateLimiter) Prune(now time.Time) int {
	cutoff := now.Add(-rl.idleTTL).UnixNano()
	removed := 0
	rl.buckets.Range(func(key, value any) bool {
		if value.(*bucket).lastSeen.Load() < cutoff {
			rl.buckets.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware returns an Echo middleware function for rate limiting.
// It runs ahead of authentication, so buckets are keyed by client IP.
// Rejections go to the error handler as a 429.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.getLimiter("ip:" + c.RealIP())
			header := c.Response().Header()

			header.Set(headerRateLimitLimit, strconv.Itoa(rl.burst))

			if !limiter.Allow() {
				header.Set(headerRateLimitRemaining, "0")
				header.Set(headerRetryAfter, "1")
				return echo.NewHTTPError(http.StatusTooManyRequests, msgRateLimitExceeded)
			}

			header.Set(headerRateLimitRemaining, strconv.Itoa(int(limiter.Tokens())))

			return next(c)
		}
	}
}
