// Package orbit samples heliocentric orbital paths for plotting.
package orbit

import (
	"container/list"
	"errors"
	"fmt"
	"sync"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/logging"
)

// ErrInvalidSampleCount is returned when fewer than two samples are
// requested. A path needs at least both endpoints.
var ErrInvalidSampleCount = errors.New("sample count must be at least 2")

// DefaultCacheCapacity bounds the sampler cache when the config does not.
const DefaultCacheCapacity = 32

// Path is a sampled orbital track. Times and Points are parallel slices
// of identical length. Callers must treat a returned Path as read-only;
// the sampler may hand the same backing slices to later callers.
type Path struct {
	Body   string
	Times  []astro.Instant
	Points []astro.Vec3
}

// Empty reports whether the path holds no samples.
func (p Path) Empty() bool {
	return len(p.Points) == 0
}

// CacheStats is a snapshot of sampler cache counters.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

type pathKey struct {
	body    string
	startJD float64
	endJD   float64
	n       int
}

type pathEntry struct {
	key  pathKey
	path Path
}

// Sampler computes orbital paths and caches them under an LRU policy.
// Safe for concurrent use.
type Sampler struct {
	store *ephem.Store
	log   *logging.Logger

	mu       sync.Mutex
	capacity int
	entries  map[pathKey]*list.Element
	order    *list.List // front = most recent
	stats    CacheStats
}

// NewSampler creates a sampler over the store with a bounded cache.
// Non-positive capacities fall back to DefaultCacheCapacity.
func NewSampler(store *ephem.Store, capacity int, log *logging.Logger) *Sampler {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Sampler{
		store:    store,
		log:      log.WithComponent("orbit"),
		capacity: capacity,
		entries:  make(map[pathKey]*list.Element, capacity),
		order:    list.New(),
	}
}

// Sample returns n heliocentric samples of the body's path over the
// interval, endpoints included. The interval is first clamped to the
// store's supported range; if nothing remains, the result is an empty
// path and no error. Repeated identical requests are served from cache.
func (s *Sampler) Sample(name string, iv astro.Interval, n int) (Path, error) {
	if n <= 1 {
		return Path{}, fmt.Errorf("%w: got %d", ErrInvalidSampleCount, n)
	}
	body, err := s.store.Lookup(name)
	if err != nil {
		return Path{}, err
	}

	window := s.store.SupportedInterval()
	iv = astro.Interval{Start: window.Clamp(iv.Start), End: window.Clamp(iv.End)}
	if iv.Days() <= 0 {
		s.log.Debug("degenerate interval for %s, returning empty path", body.Name)
		return Path{Body: body.Name}, nil
	}

	key := pathKey{body: body.Name, startJD: iv.Start.JD(), endJD: iv.End.JD(), n: n}
	if p, ok := s.lookup(key); ok {
		return p, nil
	}

	p, err := s.compute(body, iv, n)
	if err != nil {
		return Path{}, err
	}
	s.insert(key, p)
	return p, nil
}

func (s *Sampler) compute(body ephem.Body, iv astro.Interval, n int) (Path, error) {
	step := iv.Days() / float64(n-1)
	p := Path{
		Body:   body.Name,
		Times:  make([]astro.Instant, 0, n),
		Points: make([]astro.Vec3, 0, n),
	}
	for i := 0; i < n; i++ {
		at := iv.Start.AddDays(float64(i) * step)
		if i == n-1 {
			at = iv.End // avoid drifting past the clamped end
		}
		pos, err := s.store.HeliocentricPosition(body, at)
		if err != nil {
			return Path{}, fmt.Errorf("sample %d/%d: %w", i+1, n, err)
		}
		p.Times = append(p.Times, at)
		p.Points = append(p.Points, pos)
	}
	return p, nil
}

func (s *Sampler) lookup(key pathKey) (Path, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.entries[key]
	if !ok {
		s.stats.Misses++
		return Path{}, false
	}
	s.stats.Hits++
	s.order.MoveToFront(el)
	return el.Value.(*pathEntry).path, true
}

func (s *Sampler) insert(key pathKey, p Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.entries[key]; ok {
		s.order.MoveToFront(el)
		el.Value.(*pathEntry).path = p
		return
	}
	s.entries[key] = s.order.PushFront(&pathEntry{key: key, path: p})
	for len(s.entries) > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*pathEntry).key)
		s.stats.Evictions++
	}
}

// Stats returns a snapshot of the cache counters.
func (s *Sampler) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.Entries = len(s.entries)
	return st
}
