// README: Token bucket limiter per client for the provider-backed routes.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/AntoineKoerber/whereshouldweeat/internal/config"
	"github.com/AntoineKoerber/whereshouldweeat/internal/modules/session"
)

// idleLimiterTTL is how long an unused client bucket is kept.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	clients map[string]*clientLimiter
	swept   time.Time
}

func (s *limiterSet) allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.swept) > idleLimiterTTL {
		for k, cl := range s.clients {
			if now.Sub(cl.lastSeen) > idleLimiterTTL {
				delete(s.clients, k)
			}
		}
		s.swept = now
	}

	cl, ok := s.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(s.every, s.burst)}
		s.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// RateLimit allows cfg.Requests per cfg.Interval per client, keyed by session
// id when present and client IP otherwise. A zero config disables it.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	set := &limiterSet{
		every:   rate.Every(perRequest),
		burst:   cfg.Requests,
		clients: map[string]*clientLimiter{},
		swept:   time.Now(),
	}

	return func(c *gin.Context) {
		key := c.GetHeader(session.HeaderName)
		if key == "" {
			key = c.ClientIP()
		}
		if !set.allow(key, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
