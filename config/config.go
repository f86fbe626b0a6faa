// Package config implements types for handling the configuation for the app.
package config

import (
	"slices"
	"time"

	"github.com/livingaura/aura/config/value"
	"github.com/livingaura/aura/config/vars"

	haikunator "github.com/atrox/haikunatorgo/v2"
	"github.com/google/uuid"
)

const version int64 = 1

// Compression schemes that can be enabled for the HTTP responses.
var CompressionSchemes = []string{"gzip", "br", "zstd"}

// Config is a wrapper for Data
type Config struct {
	vars vars.Variables

	Data
}

// New returns a Config which is initialized with its default values
func New() *Config {
	cfg := &Config{}

	cfg.init()

	return cfg
}

func (d *Config) Get(name string) (string, error) {
	return d.vars.Get(name)
}

func (d *Config) Set(name, val string) error {
	return d.vars.Set(name, val)
}

// Clone returns a deep copy of the Config. The validation messages are not copied.
func (d *Config) Clone() *Config {
	data := New()

	data.Data = d.Data

	data.Log.Topics = slices.Clone(d.Log.Topics)
	data.API.Access.Allow = slices.Clone(d.API.Access.Allow)
	data.API.Access.Block = slices.Clone(d.API.Access.Block)
	data.API.TrustedProxies = slices.Clone(d.API.TrustedProxies)
	data.Storage.CORS.Origins = slices.Clone(d.Storage.CORS.Origins)
	data.Storage.Compression = slices.Clone(d.Storage.Compression)

	return data
}

func (d *Config) init() {
	d.vars.Register(value.NewInt64(&d.Version, version), "version", "", nil, "Configuration file layout version", true, false)
	d.vars.Register(value.NewString(&d.ID, uuid.New().String()), "id", "AURA_ID", nil, "ID for this instance", true, false)
	d.vars.Register(value.NewString(&d.Name, haikunator.New().Haikunate()), "name", "AURA_NAME", nil, "A human readable name for this instance", false, false)
	d.vars.Register(value.NewAddress(&d.Address, ":8080"), "address", "AURA_ADDRESS", []string{"PORT"}, "HTTP listening address", true, false)

	// Log
	d.vars.Register(value.NewEnum(&d.Log.Level, "info", []string{"silent", "error", "warn", "info", "debug"}), "log.level", "AURA_LOG_LEVEL", nil, "Loglevel: silent, error, warn, info, debug", false, false)
	d.vars.Register(value.NewStringList(&d.Log.Topics, []string{}, ","), "log.topics", "AURA_LOG_TOPICS", nil, "Show only selected log topics", false, false)
	d.vars.Register(value.NewInt(&d.Log.MaxLines, 1000), "log.max_lines", "AURA_LOG_MAX_LINES", nil, "Number of latest log lines to keep in memory", false, false)

	// API
	d.vars.Register(value.NewCIDRList(&d.API.Access.Allow, []string{}, ","), "api.access.allow", "AURA_API_ACCESS_ALLOW", nil, "List of IPs in CIDR notation that are allowed to access the API", false, false)
	d.vars.Register(value.NewCIDRList(&d.API.Access.Block, []string{}, ","), "api.access.block", "AURA_API_ACCESS_BLOCK", nil, "List of IPs in CIDR notation that are blocked from accessing the API", false, false)
	d.vars.Register(value.NewCIDRList(&d.API.TrustedProxies, []string{}, ","), "api.trusted_proxies", "AURA_API_TRUSTED_PROXIES", nil, "List of proxies in CIDR notation whose X-Forwarded-For header is trusted", false, false)
	d.vars.Register(value.NewFloat(&d.API.ConnectRate, 0), "api.connect_rate", "AURA_API_CONNECT_RATE", nil, "Allowed connect requests per second and client, 0 for unlimited", false, false)
	d.vars.Register(value.NewInt(&d.API.ConnectBurst, 5), "api.connect_burst", "AURA_API_CONNECT_BURST", nil, "Burst of connect requests per client", false, false)

	// Storage
	d.vars.Register(value.NewFile(&d.Storage.Page, "./index.html"), "storage.page", "AURA_STORAGE_PAGE", nil, "Path to the HTML page served at /", false, false)
	d.vars.Register(value.NewCORSOrigins(&d.Storage.CORS.Origins, []string{"*"}, ","), "storage.cors.origins", "AURA_STORAGE_CORS_ORIGINS", nil, "Allowed CORS origins", false, false)
	d.vars.Register(value.NewEnumList(&d.Storage.Compression, []string{"gzip"}, CompressionSchemes, ","), "storage.compression", "AURA_STORAGE_COMPRESSION", nil, "Enabled response compression schemes: gzip, br, zstd", false, false)

	// Aura
	d.vars.Register(value.NewFloat(&d.Aura.BaseLoad, 50), "aura.base_load", "AURA_BASE_LOAD", nil, "Base load in percent", false, false)
	d.vars.Register(value.NewFloat(&d.Aura.Fluctuation, 10), "aura.fluctuation", "AURA_FLUCTUATION", nil, "Maximum deviation from the base load in percent", false, false)
	d.vars.Register(value.NewInt64(&d.Aura.Seed, 0), "aura.seed", "AURA_SEED", nil, "Seed for the load generator, 0 for a time based seed", false, false)

	// Metrics
	d.vars.Register(value.NewBool(&d.Metrics.EnablePrometheus, true), "metrics.enable_prometheus", "AURA_METRICS_ENABLE_PROMETHEUS", nil, "Enable prometheus endpoint /prometheus", false, false)
	d.vars.Register(value.NewInt64(&d.Metrics.Window, 60), "metrics.window_sec", "AURA_METRICS_WINDOW_SEC", nil, "Sliding window for the load average, seconds", false, false)

	// Debug
	d.vars.Register(value.NewBool(&d.Debug.Profiling, false), "debug.profiling", "AURA_DEBUG_PROFILING", nil, "Enable profiling endpoint on /profiling", false, false)
	d.vars.Register(value.NewBool(&d.Debug.AutoMaxProcs, false), "debug.auto_max_procs", "AURA_DEBUG_AUTO_MAX_PROCS", nil, "Set GOMAXPROCS automatically according to the CPU quota", false, false)
	d.vars.Register(value.NewString(&d.Debug.AgentAddress, ""), "debug.agent_address", "AURA_DEBUG_AGENT_ADDRESS", nil, "Enable gops agent on this address", false, false)

	d.CreatedAt = time.Now()
}

// Validate validates the current state of the Config for completeness and sanity. Errors are
// written to the log. Use resetLogs to indicate to reset the logs prior validation.
func (d *Config) Validate(resetLogs bool) {
	if resetLogs {
		d.vars.ResetLogs()
	}

	if d.Version != version {
		d.vars.Log("error", "version", "unknown configuration layout version (found version %d, expecting version %d)", d.Version, version)

		return
	}

	d.vars.Validate()

	// Individual sanity checks

	if d.Log.MaxLines < 0 {
		d.vars.Log("error", "log.max_lines", "must be equal or greater than 0")
	}

	if d.Aura.Fluctuation < 0 {
		d.vars.Log("error", "aura.fluctuation", "must be equal or greater than 0")
	}

	// The window must span more than one slot of the sliding average
	if d.Metrics.Window < 2 {
		d.vars.Log("error", "metrics.window_sec", "must be equal or greater than 2")
	}

	if d.API.ConnectRate < 0 {
		d.vars.Log("error", "api.connect_rate", "must be equal or greater than 0")
	}

	if d.API.ConnectRate > 0 && d.API.ConnectBurst < 1 {
		d.vars.Log("error", "api.connect_burst", "must be equal or greater than 1 if api.connect_rate is set")
	}
}

// Merge overrides the values with their environment variables.
func (d *Config) Merge() {
	d.vars.Merge()
}

func (d *Config) Messages(logger func(level string, v vars.Variable, message string)) {
	d.vars.Messages(logger)
}

func (d *Config) HasErrors() bool {
	return d.vars.HasErrors()
}

func (d *Config) Overrides() []string {
	return d.vars.Overrides()
}

// Variables returns all configuration variables with their current values.
func (d *Config) Variables() []vars.Variable {
	return d.vars.List()
}
