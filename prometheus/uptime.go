package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type uptimeCollector struct {
	instance string
	started  time.Time
	now      func() time.Time

	uptimeDesc *prometheus.Desc
}

// NewUptimeCollector returns a collector for the number of seconds since
// started.
func NewUptimeCollector(instance string, started time.Time) prometheus.Collector {
	return &uptimeCollector{
		instance: instance,
		started:  started,
		now:      time.Now,
		uptimeDesc: prometheus.NewDesc(
			"aura_uptime_seconds",
			"Number of seconds the server is up",
			[]string{"instance"}, nil),
	}
}

func (c *uptimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uptimeDesc
}

func (c *uptimeCollector) Collect(ch chan<- prometheus.Metric) {
	uptime := c.now().Sub(c.started).Seconds()

	ch <- prometheus.MustNewConstMetric(c.uptimeDesc, prometheus.CounterValue, uptime, c.instance)
}
