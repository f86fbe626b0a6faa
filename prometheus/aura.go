package prometheus

import (
	"strconv"

	"github.com/livingaura/aura/aura"

	"github.com/prometheus/client_golang/prometheus"
)

type auraCollector struct {
	instance  string
	generator aura.Generator
	tracker   aura.Tracker

	loadDesc     *prometheus.Desc
	scoreDesc    *prometheus.Desc
	averageDesc  *prometheus.Desc
	callersDesc  *prometheus.Desc
	connectsDesc *prometheus.Desc
}

// NewAuraCollector returns a collector for the simulated load and the
// active callers. Every scrape draws a fresh sample from the generator.
func NewAuraCollector(instance string, generator aura.Generator, tracker aura.Tracker) prometheus.Collector {
	return &auraCollector{
		instance:  instance,
		generator: generator,
		tracker:   tracker,
		loadDesc: prometheus.NewDesc(
			"aura_load_percent",
			"Simulated load in percent",
			[]string{"instance"}, nil),
		scoreDesc: prometheus.NewDesc(
			"aura_nunchi_score",
			"Stability score derived from the simulated load",
			[]string{"instance", "status"}, nil),
		averageDesc: prometheus.NewDesc(
			"aura_load_percent_average",
			"Mean simulated load in the sliding window",
			[]string{"instance", "window_sec"}, nil),
		callersDesc: prometheus.NewDesc(
			"aura_active_callers",
			"Number of distinct callers that connected",
			[]string{"instance"}, nil),
		connectsDesc: prometheus.NewDesc(
			"aura_connects_total",
			"Number of connects, including repeated ones",
			[]string{"instance"}, nil),
	}
}

func (c *auraCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.loadDesc
	ch <- c.scoreDesc
	ch <- c.averageDesc
	ch <- c.callersDesc
	ch <- c.connectsDesc
}

func (c *auraCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.generator.Sample()

	ch <- prometheus.MustNewConstMetric(c.loadDesc, prometheus.GaugeValue, s.Load, c.instance)
	ch <- prometheus.MustNewConstMetric(c.scoreDesc, prometheus.GaugeValue, s.Score, c.instance, string(s.Status()))

	if average, ok := c.generator.Average(); ok {
		window := strconv.FormatInt(int64(c.generator.Window().Seconds()), 10)
		ch <- prometheus.MustNewConstMetric(c.averageDesc, prometheus.GaugeValue, average, c.instance, window)
	}

	ch <- prometheus.MustNewConstMetric(c.callersDesc, prometheus.GaugeValue, float64(c.tracker.Count()), c.instance)
	ch <- prometheus.MustNewConstMetric(c.connectsDesc, prometheus.CounterValue, float64(c.tracker.Connects()), c.instance)
}
