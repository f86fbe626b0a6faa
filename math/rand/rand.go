// Package rand provides a seedable source of randomness that is safe for concurrent use.
package rand

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness used by the simulation. Implementations must be
// safe for concurrent use.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0,1.0).
	Float64() float64

	// Intn returns a pseudo-random number in [0,n). It panics if n <= 0.
	Intn(n int) int
}

type lockedSource struct {
	lock sync.Mutex
	rand *rand.Rand
}

// New returns a Source seeded with the given seed. A seed of 0 seeds the
// source with the current time.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &lockedSource{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (s *lockedSource) Float64() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rand.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.rand.Intn(n)
}

// Uniform returns a number in [min,max) drawn from the source. The range is
// half-open, so a load offset never reaches +fluctuation. The score and the
// status don't depend on which bound is open.
func Uniform(s Source, min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// IntBetween returns a number in [min,max] drawn from the source.
func IntBetween(s Source, min, max int) int {
	if max <= min {
		return min
	}

	return min + s.Intn(max-min+1)
}

var defaultSource = New(0)

// Default returns the process wide source seeded with the start time.
func Default() Source {
	return defaultSource
}

// Fixed is a Source that always returns the same values. It is meant to
// be used in tests.
type Fixed struct {
	Float float64
	Int   int
}

func (f Fixed) Float64() float64 {
	return f.Float
}

func (f Fixed) Intn(n int) int {
	if f.Int >= n {
		return n - 1
	}

	return f.Int
}
