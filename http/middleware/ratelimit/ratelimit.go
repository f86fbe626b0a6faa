// Package ratelimit is an echo middleware that limits the request rate per
// client IP with a token bucket.
package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/livingaura/aura/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"
)

type Config struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper

	// Rate is the number of requests per second per client. A rate of 0
	// disables the limiter.
	Rate float64

	// Burst is the number of requests a client can send at once.
	Burst int

	// MaxClients is the number of clients that are tracked before idle
	// clients are forgotten. Default 10000.
	MaxClients int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

var DefaultConfig = Config{
	Skipper:    middleware.DefaultSkipper,
	Rate:       0,
	Burst:      1,
	MaxClients: 10000,
	Now:        time.Now,
}

func New() echo.MiddlewareFunc {
	return NewWithConfig(DefaultConfig)
}

// NewWithConfig returns a middleware that responds with 429 if a client
// exceeds its rate.
func NewWithConfig(config Config) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultConfig.Skipper
	}

	if config.Burst < 1 {
		config.Burst = DefaultConfig.Burst
	}

	if config.MaxClients <= 0 {
		config.MaxClients = DefaultConfig.MaxClients
	}

	if config.Now == nil {
		config.Now = DefaultConfig.Now
	}

	if config.Rate <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	l := &limiters{
		clients: xsync.NewMapOf[string, *rate.Limiter](),
		limit:   rate.Limit(config.Rate),
		burst:   config.Burst,
		max:     config.MaxClients,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			now := config.Now()
			ip := c.RealIP()

			r := l.get(ip, now).ReserveN(now, 1)
			if delay := r.DelayFrom(now); delay > 0 {
				r.CancelAt(now)

				seconds := int(math.Ceil(delay.Seconds()))
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))

				return api.Err(http.StatusTooManyRequests, "", "rate limit exceeded for %s, retry in %ds", ip, seconds)
			}

			return next(c)
		}
	}
}

type limiters struct {
	clients *xsync.MapOf[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	max     int
}

func (l *limiters) get(ip string, now time.Time) *rate.Limiter {
	if limiter, ok := l.clients.Load(ip); ok {
		return limiter
	}

	if l.clients.Size() >= l.max {
		l.forget(now)
	}

	limiter, _ := l.clients.LoadOrCompute(ip, func() *rate.Limiter {
		return rate.NewLimiter(l.limit, l.burst)
	})

	return limiter
}

// forget removes all clients whose bucket is full again. They are
// indistinguishable from new clients.
func (l *limiters) forget(now time.Time) {
	l.clients.Range(func(ip string, limiter *rate.Limiter) bool {
		if limiter.TokensAt(now) >= float64(l.burst) {
			l.clients.Delete(ip)
		}

		return true
	})
}
