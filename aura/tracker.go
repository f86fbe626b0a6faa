package aura

import (
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/livingaura/aura/math/rand"

	"github.com/puzpuzpuz/xsync/v3"
)

// Caller is an entry in the set of active callers.
type Caller struct {
	ID        string
	FirstSeen time.Time
}

// Tracker is the set of active callers. Callers are never removed; the set
// lives as long as the Tracker.
type Tracker interface {
	// Connect adds the caller to the set. It returns true if the caller has
	// not been seen before.
	Connect(id string) bool

	// Count returns the number of distinct callers.
	Count() int

	// Has returns whether the caller is in the set.
	Has(id string) bool

	// List returns all callers sorted by their ID.
	List() []Caller

	// Connects returns the number of calls to Connect, including repeated
	// connects of the same caller.
	Connects() uint64
}

type tracker struct {
	callers  *xsync.MapOf[string, time.Time]
	connects atomic.Uint64
	now      func() time.Time
}

// NewTracker returns a new, empty Tracker.
func NewTracker() Tracker {
	return &tracker{
		callers: xsync.NewMapOf[string, time.Time](),
		now:     time.Now,
	}
}

func (t *tracker) Connect(id string) bool {
	t.connects.Add(1)

	_, loaded := t.callers.LoadOrStore(id, t.now())

	return !loaded
}

func (t *tracker) Connects() uint64 {
	return t.connects.Load()
}

func (t *tracker) Count() int {
	return t.callers.Size()
}

func (t *tracker) Has(id string) bool {
	_, ok := t.callers.Load(id)

	return ok
}

func (t *tracker) List() []Caller {
	callers := []Caller{}

	t.callers.Range(func(id string, firstSeen time.Time) bool {
		callers = append(callers, Caller{
			ID:        id,
			FirstSeen: firstSeen,
		})

		return true
	})

	sort.Slice(callers, func(i, j int) bool {
		return callers[i].ID < callers[j].ID
	})

	return callers
}

// CallerID returns the identifier for a caller with the given address. If
// the address is empty, a random number in [1000,9999] is used instead.
func CallerID(address string, source rand.Source) string {
	if len(address) != 0 {
		return address
	}

	if source == nil {
		source = rand.Default()
	}

	return strconv.Itoa(rand.IntBetween(source, 1000, 9999))
}
