// Package prometheus exposes the simulated aura metrics in the Prometheus
// exposition format.
package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics interface {
	Register(cs prometheus.Collector) error
	UnregisterAll()
	Reader
}

type Reader interface {
	HTTPHandler() http.Handler
}

type metrics struct {
	registry   *prometheus.Registry
	collectors []prometheus.Collector
	lock       sync.Mutex
}

// New returns a Metrics with its own registry. If runtime is true, the Go
// runtime and process collectors are registered as well.
func New(runtime bool) Metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
	}

	if runtime {
		m.Register(collectors.NewGoCollector())
		m.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return m
}

func (m *metrics) Register(cs prometheus.Collector) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if err := m.registry.Register(cs); err != nil {
		return err
	}

	m.collectors = append(m.collectors, cs)

	return nil
}

func (m *metrics) UnregisterAll() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, cs := range m.collectors {
		m.registry.Unregister(cs)
	}

	m.collectors = nil
}

func (m *metrics) HTTPHandler() http.Handler {
	return promhttp.InstrumentMetricHandler(m.registry, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
