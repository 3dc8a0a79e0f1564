package http

import (
	"net/http"
	"sync"
	"time"

	"printshop/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// maxLimiters bounds the per-actor limiter map; past it the map starts over.
const maxLimiters = 10000

// RateLimiter throttles mutating requests per actor, falling back to the client IP for
// requests that carry no actor.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter returns nil when requestsPerSecond is not positive; a nil limiter
// lets every request through.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Middleware must run after requireActor.
func (rl *RateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	if rl == nil {
		return next
	}
	return func(c echo.Context) error {
		key := actorOf(c).ID()
		if key == "" {
			key = c.RealIP()
		}
		if !rl.limiter(key).Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

// requestLogger logs each request with logrus and records its status and latency.
func requestLogger(logger *logrus.Entry, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			elapsed := time.Since(start)
			status := c.Response().Status
			path := c.Path()
			m.ObserveHTTP(c.Request().Method, path, status, elapsed)

			logger.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"path":    path,
				"status":  status,
				"latency": elapsed.String(),
				"actor":   actorOf(c).ID(),
			}).Info("request")
			return nil
		}
	}
}
