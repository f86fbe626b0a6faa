package handler

import (
	"net/http"
	"testing"

	"github.com/livingaura/aura/http/mock"

	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	router := mock.DummyEcho()

	handler := NewPrometheus(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("aura_active_callers 0\n"))
	}))

	router.Add("GET", "/prometheus", handler.Metrics)

	response := mock.Request(t, http.StatusOK, router, "GET", "/prometheus", nil)

	require.Equal(t, "aura_active_callers 0\n", string(response.Data.([]byte)))
}

func TestProfiling(t *testing.T) {
	router := mock.DummyEcho()

	NewProfiling().Register(router.Group("/profiling"))

	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	require.True(t, routes["GET /profiling/"])
	require.True(t, routes["POST /profiling/symbol"])
	require.True(t, routes["GET /profiling/heap"])

	response := mock.Request(t, http.StatusOK, router, "GET", "/profiling/cmdline", nil)
	require.NotEqual(t, 0, len(response.Raw))

}
