// Package cors is an echo middleware that adds CORS headers for a list of
// allowed origins.
package cors

import (
	"fmt"
	"time"

	"github.com/livingaura/aura/http/cors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Config struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper
	Origins []string
}

var DefaultConfig = Config{
	Skipper: middleware.DefaultSkipper,
	Origins: []string{"*"},
}

func New() echo.MiddlewareFunc {
	mw, _ := NewWithConfig(DefaultConfig)

	return mw
}

// NewWithConfig returns a CORS middleware for the configured origins. It
// returns an error if one of the origins is invalid.
func NewWithConfig(config Config) (echo.MiddlewareFunc, error) {
	if config.Skipper == nil {
		config.Skipper = DefaultConfig.Skipper
	}

	if len(config.Origins) == 0 {
		config.Origins = DefaultConfig.Origins
	}

	if err := cors.Validate(config.Origins); err != nil {
		return nil, fmt.Errorf("CORS config is invalid: %w", err)
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:          config.Skipper,
		AllowOrigins:     config.Origins,
		AllowMethods:     []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", echo.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           int((24 * time.Hour).Seconds()),
	}), nil
}
