package handler

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"weatherlookup/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// RequestID propagates or generates an X-Request-ID and stores it in the
// request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.WithContext(c.Request.Context()).HTTPRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			float64(time.Since(start).Milliseconds()),
			c.ClientIP(),
		)
	}
}

// limiterIdleTTL is how long a client's limiter is kept after its last request.
const limiterIdleTTL = 10 * time.Minute

// IPRateLimiter manages per-IP rate limiters. Limiters idle for longer than
// limiterIdleTTL are evicted.
type IPRateLimiter struct {
	limiters  sync.Map // ip -> *ipLimiter
	rate      rate.Limit
	burst     int
	log       *logger.Logger
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep atomic.Int64
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	i := &IPRateLimiter{
		rate:    r,
		burst:   burst,
		log:     log,
		idleTTL: limiterIdleTTL,
		now:     time.Now,
	}
	i.lastSweep.Store(i.now().UnixNano())
	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := i.now().UnixNano()
	i.sweep(now)

	v, _ := i.limiters.LoadOrStore(ip, &ipLimiter{limiter: rate.NewLimiter(i.rate, i.burst)})
	entry := v.(*ipLimiter)
	entry.lastSeen.Store(now)
	return entry.limiter
}

// sweep drops idle limiters, at most once per idleTTL.
func (i *IPRateLimiter) sweep(now int64) {
	last := i.lastSweep.Load()
	if now-last < int64(i.idleTTL) || !i.lastSweep.CompareAndSwap(last, now) {
		return
	}
	cutoff := now - int64(i.idleTTL)
	i.limiters.Range(func(key, value any) bool {
		if value.(*ipLimiter).lastSeen.Load() < cutoff {
			i.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit returns a middleware that rate limits by IP.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !i.getLimiter(ip).Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
