package handler

import (
	"net/http"
	"net/http/pprof"

	"github.com/labstack/echo/v4"
)

// The ProfilingHandler type provides a function to register the profiling endpoints
type ProfilingHandler struct{}

// NewProfiling returns a new Profiling type
func NewProfiling() *ProfilingHandler {
	return &ProfilingHandler{}
}

var profiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// Register registers the different golang profiling endpoints with a router
// @Summary Retrieve profiling data from the application
// @Description Retrieve profiling data from the application
// @ID profiling
// @Produce text/html
// @Success 200 {string} string
// @Failure 404 {string} string
// @Router /profiling [get]
func (p *ProfilingHandler) Register(r *echo.Group) {
	r.GET("/", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	r.GET("/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	r.GET("/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	r.Match([]string{http.MethodGet, http.MethodPost}, "/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	r.GET("/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	for _, name := range profiles {
		r.GET("/"+name, echo.WrapHandler(pprof.Handler(name)))
	}
}
