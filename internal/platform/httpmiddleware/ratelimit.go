package httpmiddleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// RateLimitConfig configures a per-client token bucket.
type RateLimitConfig struct {
	// Rate is the sustained number of requests per second.
	Rate float64
	// Burst is the bucket size. Defaults to the ceiling of Rate.
	Burst int
	// Idle evicts buckets unused for this long. Defaults to 10 minutes.
	Idle time.Duration
	// KeyFunc picks the bucket. Defaults to gin's ClientIP.
	KeyFunc func(*gin.Context) string
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	cfg     RateLimitConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = int(math.Max(1, math.Ceil(cfg.Rate)))
	}
	if cfg.Idle <= 0 {
		cfg.Idle = 10 * time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	return &RateLimiter{cfg: cfg, buckets: map[string]*bucket{}, now: time.Now}
}

func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(rl.cfg.Rate), rl.cfg.Burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) evictIdle() {
	cutoff := rl.now().Add(-rl.cfg.Idle)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanup evicts idle buckets until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(rl.cfg.Idle)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.evictIdle()
			}
		}
	}()
}

// Middleware answers 429 problem+json with Retry-After once a client's bucket is empty.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := rl.allow(rl.cfg.KeyFunc(c))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			apierrors.Respond(c, apierrors.ErrRateLimited.WithDetail("Too many requests, please try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
