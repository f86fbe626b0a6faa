package iplimit

import (
	"net/http"
	"testing"

	"github.com/livingaura/aura/encoding/json"
	"github.com/livingaura/aura/http/api"
	"github.com/livingaura/aura/http/mock"
	"github.com/livingaura/aura/net"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newRouter(limiter net.IPLimiter) *echo.Echo {
	router := mock.DummyEcho()
	router.Use(NewWithConfig(Config{Limiter: limiter}))
	router.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return router
}

func TestIPLimitBlock(t *testing.T) {
	limiter, err := net.NewIPLimiter([]string{"192.0.2.0/24"}, nil)
	require.NoError(t, err)

	router := newRouter(limiter)

	response := mock.RequestFrom(t, http.StatusForbidden, router, "GET", "/", "192.0.2.7:4711")

	apierr := api.Error{}
	err = json.Unmarshal(response.Raw, &apierr)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, apierr.Code)
	require.Equal(t, []string{"access from 192.0.2.7 is not allowed"}, apierr.Details)

	response = mock.RequestFrom(t, http.StatusOK, router, "GET", "/", "198.51.100.1:4711")
	require.Equal(t, []byte("ok"), response.Data)
}

func TestIPLimitAllow(t *testing.T) {
	limiter, err := net.NewIPLimiter(nil, []string{"127.0.0.1"})
	require.NoError(t, err)

	router := newRouter(limiter)

	mock.RequestFrom(t, http.StatusOK, router, "GET", "/", "127.0.0.1:4711")
	mock.RequestFrom(t, http.StatusForbidden, router, "GET", "/", "127.0.0.2:4711")
}

func TestIPLimitDefault(t *testing.T) {
	router := mock.DummyEcho()
	router.Use(New())
	router.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	mock.RequestFrom(t, http.StatusOK, router, "GET", "/", "192.0.2.7:4711")
}
