package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
	"golang.org/x/time/rate"
)

// ipRateLimiter отдельный token bucket на каждый IP клиента.
// Число клиентов ограничено: самые давние вытесняются, bucket живет не дольше ttl
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(perMinute int, burst int, clients int, ttl time.Duration) *ipRateLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst <= 0 {
		burst = 1
	}
	if clients <= 0 {
		clients = 1
	}

	return &ipRateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](clients, nil, ttl),
		limit:    limit,
		burst:    burst,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters.Get(ip)
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(ip, limiter)
	}
	return limiter
}

func (l *ipRateLimiter) clients() int {
	return l.limiters.Len()
}

func (c *SlotPickerController) rateLimit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		if !c.rateLimiter.get(ip).Allow() {
			c.logger.Warn("http.rate_limit.exceeded", out.LogFields{
				"ip": ip,
			})
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		ctx.Next()
	}
}
