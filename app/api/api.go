package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	golog "log"
	gohttp "net/http"
	"strings"
	"sync"
	"time"

	"github.com/livingaura/aura/app"
	"github.com/livingaura/aura/aura"
	"github.com/livingaura/aura/config"
	configstore "github.com/livingaura/aura/config/store"
	configvars "github.com/livingaura/aura/config/vars"
	"github.com/livingaura/aura/http"
	"github.com/livingaura/aura/log"
	"github.com/livingaura/aura/math/rand"
	"github.com/livingaura/aura/net"
	"github.com/livingaura/aura/prometheus"

	"github.com/google/gops/agent"
	"go.uber.org/automaxprocs/maxprocs"
)

// The API interface is the implementation of the living aura server.
type API interface {
	// Start starts the API. This is blocking until the app has
	// been ended with Stop() or Destroy() or the context is canceled. In
	// this case a nil error is returned. An ErrConfigReload error is
	// returned if a configuration reload has been requested.
	Start(ctx context.Context) error

	// Stop stops the API. The set of active callers is kept such that
	// it can be reused after starting the API again.
	Stop()

	// Destroy is the same as Stop() but no state will be kept intact.
	Destroy()

	// Reload the configuration for the API. If there's an error the
	// previously loaded configuration is not altered.
	Reload() error
}

type api struct {
	generator  aura.Generator
	tracker    aura.Tracker
	prom       prometheus.Metrics
	mainserver *gohttp.Server

	errorChan chan error
	errorLock sync.Mutex

	log struct {
		writer io.Writer
		buffer log.BufferWriter
		logger struct {
			core log.Logger
			main log.Logger
		}
	}

	config struct {
		path   string
		store  configstore.Store
		config *config.Config
	}

	lock   sync.Mutex
	wgStop sync.WaitGroup
	state  string

	undoMaxprocs func()
	agent        bool
}

// ErrConfigReload is an error returned to indicate that a reload of
// the configuration has been requested.
var ErrConfigReload = fmt.Errorf("configuration reload")

// New returns a new instance of the API interface. The config is read
// from configpath. If configpath is empty, the defaults are used. All
// log output is written to logwriter.
func New(configpath string, logwriter io.Writer) (API, error) {
	a := &api{
		state:   "idle",
		tracker: aura.NewTracker(),
	}

	a.config.path = configpath
	a.log.writer = logwriter

	if a.log.writer == nil {
		a.log.writer = io.Discard
	}

	if err := a.Reload(); err != nil {
		return nil, err
	}

	return a, nil
}

// sendError passes the error to Start without blocking. Only the first
// error is kept.
func (a *api) sendError(err error) {
	a.errorLock.Lock()
	defer a.errorLock.Unlock()

	if a.errorChan == nil {
		return
	}

	select {
	case a.errorChan <- err:
	default:
	}
}

func (a *api) Reload() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.state == "running" {
		return fmt.Errorf("can't reload config while running")
	}

	logger := log.New("Core").WithOutput(log.NewConsoleWriter(a.log.writer, log.Lwarn, true))

	store, err := configstore.NewJSON(a.config.path, func() {
		a.sendError(ErrConfigReload)
	})
	if err != nil {
		logger.Error().WithError(err).Log("Failed to read config file")
		return err
	}

	cfg := store.Get()

	cfg.Merge()
	cfg.Validate(false)

	loglevel, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		loglevel = log.Linfo
	}

	buffer := log.NewBufferWriter(loglevel, cfg.Log.MaxLines)

	logger = logger.WithOutput(log.NewMultiWriter(
		log.NewTopicWriter(
			log.NewConsoleWriter(a.log.writer, loglevel, true),
			cfg.Log.Topics,
		),
		buffer,
	))

	logfields := log.Fields{
		"application": app.Name,
		"version":     app.Version.String(),
		"arch":        app.Arch,
		"compiler":    app.Compiler,
	}

	if len(app.Commit) != 0 && len(app.Branch) != 0 {
		logfields["commit"] = app.Commit
		logfields["branch"] = app.Branch
	}

	if len(app.Build) != 0 {
		logfields["build"] = app.Build
	}

	logger.Info().WithFields(logfields).Log("")

	if len(store.Path()) != 0 {
		logger.Info().WithField("path", store.Path()).Log("Read config file")
	} else {
		logger.Info().Log("No config file, using defaults")
	}

	configlogger := logger.WithComponent("Config")
	cfg.Messages(func(level string, v configvars.Variable, message string) {
		configlogger = configlogger.WithFields(log.Fields{
			"variable":    v.Name,
			"value":       v.Value,
			"env":         v.EnvName,
			"description": v.Description,
			"override":    v.Merged,
		})
		configlogger.Debug().Log(message)

		switch level {
		case "warn":
			configlogger.Warn().Log(message)
		case "error":
			configlogger.Error().WithField("error", message).Log("")
		default:
			break
		}
	})

	if cfg.HasErrors() {
		logger.Error().WithField("error", "Not all variables are set or are valid. Check the error messages above. Bailing out.").Log("")
		return fmt.Errorf("not all variables are set or valid")
	}

	cfg.LoadedAt = time.Now()

	if err := store.SetActive(cfg); err != nil {
		return err
	}

	a.config.store = store
	a.config.config = cfg
	a.log.logger.core = logger
	a.log.buffer = buffer

	return nil
}

func (a *api) start(ctx context.Context) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.state == "running" {
		return fmt.Errorf("already running")
	}

	a.errorLock.Lock()
	if a.errorChan == nil {
		a.errorChan = make(chan error, 1)
	}
	a.errorLock.Unlock()

	a.state = "starting"

	cfg := a.config.store.GetActive()

	if cfg.Debug.AutoMaxProcs {
		undoMaxprocs, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			format = strings.TrimPrefix(format, "maxprocs: ")
			a.log.logger.core.Debug().Log(format, args...)
		}))
		if err != nil {
			a.log.logger.core.Warn().Log("%s", err.Error())
		}

		a.undoMaxprocs = undoMaxprocs
	}

	if len(cfg.Debug.AgentAddress) != 0 {
		if err := agent.Listen(agent.Options{
			Addr:                   cfg.Debug.AgentAddress,
			ReuseSocketAddrAndPort: true,
		}); err != nil {
			a.log.logger.core.Error().WithError(err).Log("Failed to start gops agent")
		} else {
			a.agent = true
		}
	}

	var source rand.Source

	if cfg.Aura.Seed != 0 {
		source = rand.New(cfg.Aura.Seed)
	} else {
		source = rand.New(time.Now().UnixNano())
	}

	generator, err := aura.NewGenerator(aura.GeneratorConfig{
		BaseLoad:    cfg.Aura.BaseLoad,
		Fluctuation: cfg.Aura.Fluctuation,
		Source:      source,
		Window:      time.Duration(cfg.Metrics.Window) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("unable to create load generator: %w", err)
	}

	a.generator = generator

	if a.tracker == nil {
		a.tracker = aura.NewTracker()
	}

	a.log.logger.core.Info().WithFields(log.Fields{
		"base_load":   cfg.Aura.BaseLoad,
		"fluctuation": cfg.Aura.Fluctuation,
		"seed":        cfg.Aura.Seed,
		"window_sec":  cfg.Metrics.Window,
		"callers":     a.tracker.Count(),
	}).Log("Aura ready")

	if cfg.Metrics.EnablePrometheus {
		prom := prometheus.New(true)

		if err := prom.Register(prometheus.NewAuraCollector(cfg.ID, a.generator, a.tracker)); err != nil {
			return fmt.Errorf("unable to register aura collector: %w", err)
		}

		if err := prom.Register(prometheus.NewUptimeCollector(cfg.ID, time.Now())); err != nil {
			return fmt.Errorf("unable to register uptime collector: %w", err)
		}

		a.prom = prom
	}

	iplimiter, err := net.NewIPLimiter(cfg.API.Access.Block, cfg.API.Access.Allow)
	if err != nil {
		return fmt.Errorf("incorrect IP ranges for the API provided: %w", err)
	}

	trustedProxies, err := net.ParseIPNets(cfg.API.TrustedProxies)
	if err != nil {
		return fmt.Errorf("incorrect IP ranges for the trusted proxies provided: %w", err)
	}

	a.log.logger.main = a.log.logger.core.WithComponent("HTTP").WithField("address", cfg.Address)

	serverConfig := http.Config{
		Logger:         a.log.logger.main,
		LogBuffer:      a.log.buffer,
		Generator:      a.generator,
		Tracker:        a.tracker,
		Source:         source,
		IPLimiter:      iplimiter,
		TrustedProxies: trustedProxies,
		Connect: http.ConnectConfig{
			Rate:  cfg.API.ConnectRate,
			Burst: cfg.API.ConnectBurst,
		},
		Page:        cfg.Storage.Page,
		Cors:        http.CorsConfig{Origins: cfg.Storage.CORS.Origins},
		Compression: cfg.Storage.Compression,
		Profiling:   cfg.Debug.Profiling,
		Config:      a.config.store,
		About: http.AboutConfig{
			ID:        cfg.ID,
			Name:      cfg.Name,
			CreatedAt: cfg.CreatedAt,
		},
	}

	if a.prom != nil {
		serverConfig.Prometheus = a.prom
	}

	mainserverhandler, err := http.NewServer(serverConfig)
	if err != nil {
		return fmt.Errorf("unable to create server: %w", err)
	}

	a.mainserver = &gohttp.Server{
		Addr:              cfg.Address,
		Handler:           mainserverhandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ErrorLog:          golog.New(a.log.logger.main.Debug(), "", 0),
	}

	var wgStart sync.WaitGroup

	wgStart.Add(1)
	a.wgStop.Add(1)

	go func(server *gohttp.Server) {
		logger := a.log.logger.main

		defer func() {
			logger.Info().Log("Server exited")
			a.wgStop.Done()
		}()

		wgStart.Done()

		logger.Info().Log("Server started")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, gohttp.ErrServerClosed) {
			err = fmt.Errorf("HTTP server: %w", err)
		} else {
			err = nil
		}

		a.sendError(err)
	}(a.mainserver)

	// Wait for the server to be started
	wgStart.Wait()

	a.state = "running"

	return nil
}

func (a *api) Start(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		a.stop()
		return err
	}

	a.errorLock.Lock()
	errorChan := a.errorChan
	a.errorLock.Unlock()

	// Block until there's an error from the server or the context is done
	select {
	case err := <-errorChan:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (a *api) stop() {
	a.lock.Lock()
	defer a.lock.Unlock()

	logger := a.log.logger.core.WithField("action", "shutdown")

	if a.state == "idle" {
		logger.Info().Log("Complete")
		return
	}

	// Shutdown the HTTP server
	if a.mainserver != nil {
		logger := a.log.logger.main
		logger.Info().Log("Stopping ...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mainserver.Shutdown(ctx); err != nil {
			logger.Error().WithError(err).Log("")
		}

		a.mainserver = nil
	}

	// Unregister all collectors
	if a.prom != nil {
		a.prom.UnregisterAll()
		a.prom = nil
	}

	// Stop the sliding window of the load average
	if a.generator != nil {
		a.generator.Close()
		a.generator = nil
	}

	// Stop gops agent
	if a.agent {
		agent.Close()
		a.agent = false
	}

	// Wait for all server goroutines to exit
	logger.Info().Log("Waiting for all servers to stop ...")
	a.wgStop.Wait()

	a.errorLock.Lock()
	if a.errorChan != nil {
		close(a.errorChan)
		a.errorChan = nil
	}
	a.errorLock.Unlock()

	a.state = "idle"

	if a.undoMaxprocs != nil {
		a.undoMaxprocs()
		a.undoMaxprocs = nil
	}

	logger.Info().Log("Complete")
}

func (a *api) Stop() {
	a.log.logger.core.Info().Log("Shutdown requested ...")
	a.stop()
}

func (a *api) Destroy() {
	a.log.logger.core.Info().Log("Shutdown requested ...")
	a.stop()

	// Forget all active callers
	a.lock.Lock()
	a.tracker = nil
	a.lock.Unlock()
}
