package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/reservation-scheduler/internal/httperr"
)

// WindowLimiter is a shared fixed-window counter, usually Redis.
type WindowLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

const visitorTTL = 10 * time.Minute

type localLimiter struct {
	mu       sync.Mutex
	every    rate.Limit
	burst    int
	visitors map[string]*visitor
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	return &localLimiter{
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		visitors: make(map[string]*visitor),
	}
}

func (l *localLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > visitorTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(l.visitors, k)
			}
		}
		l.lastGC = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimit allows limit requests per window per client IP and route. The shared
// store is preferred; when it is nil or failing, an in-process limiter takes over.
func RateLimit(store WindowLimiter, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	local := newLocalLimiter(limit, window)

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), c.ClientIP())

		var allowed bool
		if store != nil {
			ok, err := store.Allow(c.Request.Context(), key, limit, window)
			if err == nil {
				allowed = ok
			} else {
				if log != nil {
					log.Warn("rate limit store unavailable", zap.Error(err))
				}
				allowed = local.allow(key, time.Now())
			}
		} else {
			allowed = local.allow(key, time.Now())
		}

		if !allowed {
			httperr.Write(c, httperr.StatusFor(httperr.CodeRateLimited), httperr.CodeRateLimited, "too many requests, try again later")
			return
		}

		c.Next()
	}
}
