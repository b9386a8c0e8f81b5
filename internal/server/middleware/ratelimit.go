// file: internal/server/middleware/ratelimit.go
// version: 1.1.0
// guid: e7f8a9b0-c1d2-3e4f-5a6b-c7d8e9f0a1b2

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TenantRateLimiter is a token bucket limiter keyed by tenant so one busy
// branch cannot starve the others. Requests without a tenant header fall
// back to a per-IP bucket.
type TenantRateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*limiterEntry
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
}

func NewTenantRateLimiter(requestsPerMinute, burst int) *TenantRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &TenantRateLimiter{
		entries:        make(map[string]*limiterEntry),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        15 * time.Minute,
	}
}

func (t *TenantRateLimiter) limiterFor(key string) *rate.Limiter {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, entry := range t.entries {
		if now.Sub(entry.lastSeen) > t.idleTTL {
			delete(t.entries, k)
		}
	}

	entry, ok := t.entries[key]
	if !ok {
		perSecond := float64(t.requestsPerMin) / 60.0
		entry = &limiterEntry{
			limiter:  rate.NewLimiter(rate.Limit(perSecond), t.burst),
			lastSeen: now,
		}
		t.entries[key] = entry
		return entry.limiter
	}

	entry.lastSeen = now
	return entry.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (t *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Tenant-ID")
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !t.limiterFor(key).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
