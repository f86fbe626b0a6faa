// @title Living Aura API
// @version 1.0
// @description Simulated server metrics, active callers and a status page.

// @BasePath /

package http

import (
	gonet "net"
	"net/http"
	"strings"
	"time"

	"github.com/livingaura/aura/aura"
	cfgstore "github.com/livingaura/aura/config/store"
	"github.com/livingaura/aura/http/errorhandler"
	"github.com/livingaura/aura/http/handler"
	api "github.com/livingaura/aura/http/handler/api"
	httplog "github.com/livingaura/aura/http/log"
	"github.com/livingaura/aura/http/validator"
	"github.com/livingaura/aura/log"
	"github.com/livingaura/aura/math/rand"
	"github.com/livingaura/aura/net"
	"github.com/livingaura/aura/prometheus"

	mwbodysize "github.com/livingaura/aura/http/middleware/bodysize"
	mwcompress "github.com/livingaura/aura/http/middleware/compress"
	mwcors "github.com/livingaura/aura/http/middleware/cors"
	mwiplimit "github.com/livingaura/aura/http/middleware/iplimit"
	mwlog "github.com/livingaura/aura/http/middleware/log"
	mwratelimit "github.com/livingaura/aura/http/middleware/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v4"
)

type Config struct {
	Logger     log.Logger
	LogBuffer  log.BufferWriter
	Generator  aura.Generator
	Tracker    aura.Tracker
	Source     rand.Source
	Prometheus prometheus.Reader
	IPLimiter  net.IPLimiter

	// TrustedProxies are the ranges of proxies whose X-Forwarded-For header
	// is used for the client IP. If empty, the remote address is used.
	TrustedProxies []*gonet.IPNet

	Connect     ConnectConfig
	Page        string
	Cors        CorsConfig
	Compression []string
	Profiling   bool
	Config      cfgstore.Store
	About       AboutConfig
}

type ConnectConfig struct {
	Rate  float64
	Burst int
}

type CorsConfig struct {
	Origins []string
}

type AboutConfig struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Server interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

type server struct {
	logger log.Logger

	handler struct {
		page       *handler.PageHandler
		ping       *handler.PingHandler
		prometheus *handler.PrometheusHandler
		profiling  *handler.ProfilingHandler
		about      *api.AboutHandler
	}

	v1handler struct {
		aura   *api.AuraHandler
		log    *api.LogHandler
		config *api.ConfigHandler
	}

	middleware struct {
		iplimit   echo.MiddlewareFunc
		ratelimit echo.MiddlewareFunc
		log       echo.MiddlewareFunc
		cors      echo.MiddlewareFunc
		compress  echo.MiddlewareFunc
	}

	router *echo.Echo
}

// compressTypes are the content types that are compressed.
var compressTypes = []string{
	"text/plain",
	"text/html",
	"application/json",
}

// NewServer returns the HTTP server for the config. The generator and the
// tracker are required.
func NewServer(config Config) (Server, error) {
	s := &server{
		logger: config.Logger,
	}

	if s.logger == nil {
		s.logger = log.New("HTTP")
	}

	if config.Tracker == nil {
		config.Tracker = aura.NewTracker()
	}

	if config.Generator == nil {
		generator, err := aura.NewGenerator(aura.GeneratorConfig{
			BaseLoad:    aura.DefaultBaseLoad,
			Fluctuation: aura.DefaultFluctuation,
		})
		if err != nil {
			return nil, err
		}

		config.Generator = generator
	}

	if config.LogBuffer == nil {
		config.LogBuffer = log.NewBufferWriter(log.Lsilent, 0)
	}

	s.handler.page = handler.NewPage(config.Page, s.logger.WithComponent("Page"))
	s.handler.ping = handler.NewPing()
	s.handler.about = api.NewAbout(config.About.ID, config.About.Name, config.About.CreatedAt)

	s.v1handler.aura = api.NewAura(
		config.Generator,
		config.Tracker,
		config.Source,
		s.logger.WithComponent("Aura"),
	)

	s.v1handler.log = api.NewLog(config.LogBuffer)

	if config.Config != nil {
		s.v1handler.config = api.NewConfig(config.Config)
	}

	if config.Prometheus != nil {
		s.handler.prometheus = handler.NewPrometheus(config.Prometheus.HTTPHandler())
	}

	if config.Profiling {
		s.handler.profiling = handler.NewProfiling()
	}

	if config.IPLimiter != nil {
		s.middleware.iplimit = mwiplimit.NewWithConfig(mwiplimit.Config{
			Limiter: config.IPLimiter,
		})
	}

	s.middleware.ratelimit = mwratelimit.NewWithConfig(mwratelimit.Config{
		Rate:  config.Connect.Rate,
		Burst: config.Connect.Burst,
	})

	s.middleware.log = mwlog.NewWithConfig(mwlog.Config{
		Logger: s.logger,
	})

	if middleware, err := mwcors.NewWithConfig(mwcors.Config{
		Origins: config.Cors.Origins,
	}); err != nil {
		return nil, err
	} else {
		s.middleware.cors = middleware
	}

	s.middleware.compress = mwcompress.NewWithConfig(mwcompress.Config{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			// The prometheus handler compresses on its own.
			return strings.HasPrefix(path, "/prometheus") || strings.HasPrefix(path, "/profiling")
		},
		Level:        mwcompress.BestSpeed,
		MinLength:    1000,
		Schemes:      config.Compression,
		ContentTypes: compressTypes,
	})

	s.router = echo.New()
	s.router.HTTPErrorHandler = errorhandler.HTTPErrorHandler
	s.router.Validator = validator.New()
	s.router.HideBanner = true
	s.router.HidePort = true
	s.router.Logger.SetOutput(httplog.NewWrapper(s.logger.WithComponent("Echo")))

	if len(config.TrustedProxies) != 0 {
		options := []echo.TrustOption{
			echo.TrustLoopback(false),
			echo.TrustLinkLocal(false),
			echo.TrustPrivateNet(false),
		}

		for _, ipnet := range config.TrustedProxies {
			options = append(options, echo.TrustIPRange(ipnet))
		}

		s.router.IPExtractor = echo.ExtractIPFromXFFHeader(options...)
	} else {
		s.router.IPExtractor = echo.ExtractIPDirect()
	}

	s.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: shortuuid.New,
	}))
	s.router.Use(s.middleware.log)
	s.router.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			rows := strings.Split(string(stack), "\n")
			s.logger.Error().WithError(err).WithField("stack", rows).Log("recovered from a panic")
			return err
		},
	}))

	if s.middleware.iplimit != nil {
		s.router.Use(s.middleware.iplimit)
	}

	s.router.Use(s.middleware.cors)
	s.router.Use(mwbodysize.New())
	s.router.Use(s.middleware.compress)

	s.setRoutes()

	return s, nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *server) setRoutes() {
	// Status page
	s.router.GET("/", s.handler.page.Page)
	s.router.HEAD("/", s.handler.page.Page)

	// Simulated metrics
	s.router.GET("/metrics", s.v1handler.aura.Metrics)
	s.router.POST("/connect", s.v1handler.aura.Connect, s.middleware.ratelimit)

	// Health check
	s.router.GET("/ping", s.handler.ping.Ping)

	// Prometheus metrics
	if s.handler.prometheus != nil {
		s.router.GET("/prometheus", s.handler.prometheus.Metrics)
	}

	// Profiling routes
	if s.handler.profiling != nil {
		prof := s.router.Group("/profiling")
		s.handler.profiling.Register(prof)
	}

	// API router group
	api := s.router.Group("/api")

	api.GET("", s.handler.about.About)

	v1 := api.Group("/v1")

	s.setRoutesV1(v1)
}

func (s *server) setRoutesV1(v1 *echo.Group) {
	// v1 Aura
	v1.GET("/aura", s.v1handler.aura.Snapshots)
	v1.GET("/callers", s.v1handler.aura.Callers)

	// v1 Config
	if s.v1handler.config != nil {
		v1.GET("/config", s.v1handler.config.Get)
		v1.GET("/config/reload", s.v1handler.config.Reload)
	}

	// v1 Log
	v1.GET("/log", s.v1handler.log.Log)
}
