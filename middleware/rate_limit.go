package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/blogfolio/blogfolio/config"
	"github.com/blogfolio/blogfolio/utils"
)

const limiterIdleTTL = 5 * time.Minute

// ipLimiters hands out one token bucket per client IP and drops buckets
// that have been idle past their TTL.
type ipLimiters struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tb       *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(perMinute int) *ipLimiters {
	perMinute = max(perMinute, 1)
	return &ipLimiters{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   max(perMinute/2, 1),
		buckets: map[string]*bucket{},
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > limiterIdleTTL {
			delete(l.buckets, key)
		}
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{tb: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.tb.Allow()
}

// RateLimitMiddleware applies a per-IP token bucket to the wrapped routes.
func RateLimitMiddleware() gin.HandlerFunc {
	limiters := newIPLimiters(config.Get().RateLimitPerMinute)

	return func(ctx *gin.Context) {
		if !limiters.allow(ctx.ClientIP()) {
			utils.Message(ctx, http.StatusTooManyRequests, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
