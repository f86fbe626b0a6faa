package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func request(router *echo.Echo, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/metrics", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	if method == http.MethodOptions {
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCORSAny(t *testing.T) {
	mw, err := NewWithConfig(Config{})
	require.NoError(t, err)

	router := echo.New()
	router.Use(mw)
	router.GET("/metrics", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := request(router, http.MethodGet, "https://example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = request(router, http.MethodOptions, "https://example.com")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "GET,HEAD,POST,OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
}

func TestCORSOrigins(t *testing.T) {
	mw, err := NewWithConfig(Config{Origins: []string{"https://aura.example.com"}})
	require.NoError(t, err)

	router := echo.New()
	router.Use(mw)
	router.GET("/metrics", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := request(router, http.MethodGet, "https://aura.example.com")
	require.Equal(t, "https://aura.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = request(router, http.MethodGet, "https://example.com")
	require.Equal(t, "", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSInvalid(t *testing.T) {
	_, err := NewWithConfig(Config{Origins: []string{"example.com"}})
	require.Error(t, err)
}
