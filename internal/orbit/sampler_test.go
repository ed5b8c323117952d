package orbit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/logging"
)

func newTestSampler(t *testing.T, capacity int) *Sampler {
	t.Helper()
	store, err := ephem.NewStore(ephem.AnalyticSource{}, logging.Discard())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewSampler(store, capacity, logging.Discard())
}

func interval(t *testing.T, from, to string) astro.Interval {
	t.Helper()
	start, err := astro.Parse(from, "00:00")
	if err != nil {
		t.Fatal(err)
	}
	end, err := astro.Parse(to, "00:00")
	if err != nil {
		t.Fatal(err)
	}
	return astro.Interval{Start: start, End: end}
}

func TestSampleCount(t *testing.T) {
	s := newTestSampler(t, 8)
	iv := interval(t, "2025-01-01", "2025-12-31")

	for _, n := range []int{2, 3, 100} {
		p, err := s.Sample("Mars", iv, n)
		if err != nil {
			t.Fatalf("Sample(n=%d): %v", n, err)
		}
		if len(p.Points) != n || len(p.Times) != n {
			t.Errorf("n=%d: got %d points, %d times", n, len(p.Points), len(p.Times))
		}
		if p.Times[0] != iv.Start || p.Times[n-1] != iv.End {
			t.Errorf("n=%d: endpoints %s / %s, want %s / %s",
				n, p.Times[0], p.Times[n-1], iv.Start, iv.End)
		}
	}
}

func TestSampleInvalidCount(t *testing.T) {
	s := newTestSampler(t, 8)
	iv := interval(t, "2025-01-01", "2025-12-31")

	for _, n := range []int{1, 0, -5} {
		if _, err := s.Sample("Mars", iv, n); !errors.Is(err, ErrInvalidSampleCount) {
			t.Errorf("Sample(n=%d) err = %v, want ErrInvalidSampleCount", n, err)
		}
	}
}

func TestSampleUnknownBody(t *testing.T) {
	s := newTestSampler(t, 8)
	iv := interval(t, "2025-01-01", "2025-12-31")

	if _, err := s.Sample("Vulcan", iv, 10); !errors.Is(err, ephem.ErrUnknownBody) {
		t.Errorf("err = %v, want ErrUnknownBody", err)
	}
}

func TestSampleDegenerateInterval(t *testing.T) {
	s := newTestSampler(t, 8)

	// Inverted interval clamps to nothing.
	p, err := s.Sample("Mars", interval(t, "2025-06-01", "2025-01-01"), 10)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !p.Empty() {
		t.Errorf("inverted interval: got %d points, want empty path", len(p.Points))
	}

	// Interval entirely before coverage clamps to a single instant.
	p, err = s.Sample("Mars", interval(t, "1850-01-01", "1860-01-01"), 10)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !p.Empty() {
		t.Errorf("pre-coverage interval: got %d points, want empty path", len(p.Points))
	}
}

func TestSampleIdempotent(t *testing.T) {
	s := newTestSampler(t, 8)
	iv := interval(t, "2025-01-01", "2025-12-31")

	first, err := s.Sample("Jupiter", iv, 40)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Sample("Jupiter", iv, 40)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical requests returned different paths")
	}
}

func TestSampleCacheHit(t *testing.T) {
	s := newTestSampler(t, 8)
	iv := interval(t, "2025-01-01", "2025-12-31")

	if _, err := s.Sample("Mars", iv, 50); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Sample("Mars", iv, 50); err != nil {
		t.Fatal(err)
	}

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit / 1 miss", st)
	}

	// Same body, different count: a distinct cache entry.
	if _, err := s.Sample("Mars", iv, 51); err != nil {
		t.Fatal(err)
	}
	if st := s.Stats(); st.Entries != 2 {
		t.Errorf("entries = %d, want 2", st.Entries)
	}
}

func TestSampleCacheEviction(t *testing.T) {
	s := newTestSampler(t, 1)
	iv := interval(t, "2025-01-01", "2025-12-31")

	if _, err := s.Sample("Mars", iv, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Sample("Venus", iv, 10); err != nil {
		t.Fatal(err)
	}

	st := s.Stats()
	if st.Evictions != 1 || st.Entries != 1 {
		t.Errorf("stats = %+v, want 1 eviction and 1 entry", st)
	}

	// Mars was evicted, so requesting it again is a miss.
	if _, err := s.Sample("Mars", iv, 10); err != nil {
		t.Fatal(err)
	}
	if st := s.Stats(); st.Hits != 0 {
		t.Errorf("hits = %d, want 0 after eviction", st.Hits)
	}
}
