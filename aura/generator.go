// Package aura implements the simulated server metrics: a load generator
// with a derived stability score (the Nunchi stream) and a tracker of
// active callers (the Jeong matrix).
package aura

import (
	"fmt"
	"math"
	"time"

	"github.com/livingaura/aura/math/rand"

	"github.com/prep/average"
)

// Status is the two-valued label derived from the score.
type Status string

const (
	StatusResonant       Status = "Resonant"
	StatusSeekingHarmony Status = "Seeking Harmony"
)

const (
	DefaultBaseLoad    = 50.0
	DefaultFluctuation = 10.0

	scorePenaltyPerPercent = 5.0
	resonanceThreshold     = 50.0
)

// StatusFor returns StatusResonant if the score is above the resonance
// threshold, StatusSeekingHarmony otherwise.
func StatusFor(score float64) Status {
	if score > resonanceThreshold {
		return StatusResonant
	}

	return StatusSeekingHarmony
}

// Score derives the stability score from a load offset. The score is
// 100 minus 5 points per percent of deviation, rounded to two decimals
// and clamped to [0,100].
func Score(offset float64) float64 {
	score := round2(100 - math.Abs(offset)*scorePenaltyPerPercent)

	if score < 0 {
		return 0
	}

	if score > 100 {
		return 100
	}

	return score
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Sample is a single draw of the simulated load.
type Sample struct {
	Time   time.Time
	Offset float64 // Deviation from the base load
	Load   float64 // Load in percent, rounded to two decimals
	Score  float64 // Stability score in [0,100]
}

// Status returns the status label for the score of this sample.
func (s Sample) Status() Status {
	return StatusFor(s.Score)
}

type GeneratorConfig struct {
	BaseLoad    float64
	Fluctuation float64
	Source      rand.Source

	// Window is the length of the sliding window for the load average. If it
	// is 0, no average is kept.
	Window time.Duration

	// Granularity of the sliding window. Defaults to one second.
	Granularity time.Duration

	// Now is used for the sample time. Defaults to time.Now.
	Now func() time.Time
}

// Generator draws simulated load samples.
type Generator interface {
	// Sample draws a new load sample.
	Sample() Sample

	// Average returns the mean load of the samples in the sliding window. The
	// second return value is false if there are no samples in the window yet.
	Average() (float64, bool)

	// Window returns the length of the sliding window.
	Window() time.Duration

	// Close stops the sliding window.
	Close()
}

type generator struct {
	base        float64
	fluctuation float64
	source      rand.Source
	now         func() time.Time

	window  time.Duration
	loads   *average.SlidingWindow
	samples *average.SlidingWindow
}

// NewGenerator returns a Generator for the given config.
func NewGenerator(config GeneratorConfig) (Generator, error) {
	if config.Fluctuation < 0 {
		return nil, fmt.Errorf("fluctuation must not be negative")
	}

	g := &generator{
		base:        config.BaseLoad,
		fluctuation: config.Fluctuation,
		source:      config.Source,
		now:         config.Now,
		window:      config.Window,
	}

	if g.source == nil {
		g.source = rand.Default()
	}

	if g.now == nil {
		g.now = time.Now
	}

	if g.window > 0 {
		granularity := config.Granularity
		if granularity <= 0 {
			granularity = time.Second
		}

		loads, err := average.New(g.window, granularity)
		if err != nil {
			return nil, fmt.Errorf("invalid load average window: %w", err)
		}

		samples, err := average.New(g.window, granularity)
		if err != nil {
			loads.Stop()
			return nil, fmt.Errorf("invalid load average window: %w", err)
		}

		g.loads = loads
		g.samples = samples
	}

	return g, nil
}

func (g *generator) Sample() Sample {
	offset := rand.Uniform(g.source, -g.fluctuation, g.fluctuation)

	s := Sample{
		Time:   g.now(),
		Offset: offset,
		Load:   round2(g.base + offset),
		Score:  Score(offset),
	}

	if g.loads != nil {
		g.loads.Add(int64(math.Round(s.Load * 100)))
		g.samples.Add(1)
	}

	return s
}

func (g *generator) Average() (float64, bool) {
	if g.loads == nil {
		return 0, false
	}

	total, _ := g.loads.Total(g.window)
	count, _ := g.samples.Total(g.window)

	if count == 0 {
		return 0, false
	}

	return round2(float64(total) / float64(count) / 100), true
}

func (g *generator) Window() time.Duration {
	return g.window
}

func (g *generator) Close() {
	if g.loads == nil {
		return
	}

	g.loads.Stop()
	g.samples.Stop()
}
