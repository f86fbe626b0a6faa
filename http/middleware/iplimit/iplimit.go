// Package iplimit is an echo middleware that rejects requests from clients
// that are not allowed by an IP limiter.
package iplimit

import (
	"net/http"

	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/net"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Config struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper
	Limiter net.IPLimiter
}

var DefaultConfig = Config{
	Skipper: middleware.DefaultSkipper,
	Limiter: net.NewNullIPLimiter(),
}

func New() echo.MiddlewareFunc {
	return NewWithConfig(DefaultConfig)
}

// NewWithConfig returns a middleware that responds with 403 if the real IP
// of the client is not allowed by the limiter.
func NewWithConfig(config Config) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultConfig.Skipper
	}

	if config.Limiter == nil {
		config.Limiter = DefaultConfig.Limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			ip := c.RealIP()

			if !config.Limiter.IsAllowed(ip) {
				return api.Err(http.StatusForbidden, "", "access from %s is not allowed", ip)
			}

			return next(c)
		}
	}
}
