package events

import (
	"math"
	"testing"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/logging"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	store, err := ephem.NewStore(ephem.AnalyticSource{}, logging.Discard())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return NewDetector(store, 0, 0, logging.Discard())
}

func mustInstant(t *testing.T, date, clock string) astro.Instant {
	t.Helper()
	at, err := astro.Parse(date, clock)
	if err != nil {
		t.Fatal(err)
	}
	return at
}

// The circular-orbit model puts the 2001 Mars opposition near July 6:
// Earth gains on Mars at 0.4616°/day and starts 254.99° behind at J2000.
func TestSearchMarsOpposition(t *testing.T) {
	d := newTestDetector(t)
	iv := astro.Interval{
		Start: mustInstant(t, "2001-01-01", "00:00"),
		End:   mustInstant(t, "2002-01-01", "00:00"),
	}

	evs, err := d.Search([]string{"Mars"}, iv)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(evs), evs)
	}
	ev := evs[0]
	if ev.Body != "Mars" || ev.Kind != KindOpposition {
		t.Errorf("got %s %s, want Mars Opposition", ev.Body, ev.Kind)
	}
	if ev.ElongationDeg < 179.9 {
		t.Errorf("elongation %.3f°, want ~180 (coplanar model)", ev.ElongationDeg)
	}
	lo := mustInstant(t, "2001-07-04", "00:00")
	hi := mustInstant(t, "2001-07-08", "00:00")
	if ev.At.Before(lo) || ev.At.After(hi) {
		t.Errorf("opposition at %s, want early July 2001", ev.At)
	}
}

// Venus laps Earth by 0.6165°/day from an 81.52° lead at J2000, putting
// the inferior conjunction near 2001-03-28.
func TestSearchVenusInferiorConjunction(t *testing.T) {
	d := newTestDetector(t)
	iv := astro.Interval{
		Start: mustInstant(t, "2001-01-01", "00:00"),
		End:   mustInstant(t, "2001-12-31", "00:00"),
	}

	evs, err := d.Search([]string{"Venus"}, iv)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(evs), evs)
	}
	ev := evs[0]
	if ev.Kind != KindInferiorConjunction {
		t.Errorf("kind = %s, want Inferior Conjunction", ev.Kind)
	}
	if ev.ElongationDeg > 0.1 {
		t.Errorf("elongation %.3f°, want ~0 (coplanar model)", ev.ElongationDeg)
	}
	lo := mustInstant(t, "2001-03-26", "00:00")
	hi := mustInstant(t, "2001-03-30", "00:00")
	if ev.At.Before(lo) || ev.At.After(hi) {
		t.Errorf("conjunction at %s, want late March 2001", ev.At)
	}
}

func TestSearchSortedAcrossBodies(t *testing.T) {
	d := newTestDetector(t)
	iv := astro.Interval{
		Start: mustInstant(t, "2001-01-01", "00:00"),
		End:   mustInstant(t, "2002-01-01", "00:00"),
	}

	evs, err := d.Search([]string{"Mars", "Venus"}, iv)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(evs) < 2 {
		t.Fatalf("got %d events, want at least 2", len(evs))
	}
	for i := 1; i < len(evs); i++ {
		if evs[i].At.Before(evs[i-1].At) {
			t.Errorf("events out of order: %s before %s", evs[i].At, evs[i-1].At)
		}
	}
}

func TestSearchSkipsEarthMoonAndUnknown(t *testing.T) {
	d := newTestDetector(t)
	iv := astro.Interval{
		Start: mustInstant(t, "2001-01-01", "00:00"),
		End:   mustInstant(t, "2001-06-01", "00:00"),
	}

	evs, err := d.Search([]string{"Earth", "Moon", "Vulcan"}, iv)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("got %d events for excluded bodies, want 0", len(evs))
	}
}

func TestSearchDegenerateInterval(t *testing.T) {
	d := newTestDetector(t)
	iv := astro.Interval{
		Start: mustInstant(t, "2001-06-01", "00:00"),
		End:   mustInstant(t, "2001-01-01", "00:00"),
	}

	evs, err := d.Search([]string{"Mars"}, iv)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if evs != nil {
		t.Errorf("got %+v for inverted interval, want none", evs)
	}
}

// Near the modeled opposition instant the single-instant check should
// already report Mars within the default threshold.
func TestDetectAtNearOpposition(t *testing.T) {
	d := newTestDetector(t)
	at := mustInstant(t, "2001-07-06", "00:00")

	evs := d.DetectAt([]string{"Mars", "Venus", "Earth"}, at)
	var mars *Event
	for i := range evs {
		if evs[i].Body == "Mars" {
			mars = &evs[i]
		}
		if evs[i].Body == "Earth" {
			t.Error("Earth must never appear in events")
		}
	}
	if mars == nil {
		t.Fatalf("Mars missing from %+v", evs)
	}
	if mars.Kind != KindOpposition {
		t.Errorf("kind = %s, want Opposition", mars.Kind)
	}
	if math.Abs(mars.ElongationDeg-180) > DefaultThresholdDeg {
		t.Errorf("elongation %.2f° outside threshold", mars.ElongationDeg)
	}
}

// An inner body showing a large elongation extremum is classified as a
// superior conjunction, never an opposition.
func TestClassifyInnerBodyHighElongation(t *testing.T) {
	d := newTestDetector(t)
	venus := ephem.Planets[1]
	if venus.Name != "Venus" {
		t.Fatal("body table order changed")
	}
	at := mustInstant(t, "2001-03-28", "00:00")

	kind, ok := d.classify(venus, at, 179.0)
	if !ok {
		t.Fatal("classify rejected a near-180 extremum")
	}
	if kind != KindSuperiorConjunction {
		t.Errorf("kind = %s, want Superior Conjunction", kind)
	}

	kind, ok = d.classify(venus, at, 0.5)
	if !ok || kind != KindInferiorConjunction {
		t.Errorf("low extremum: kind = %s ok=%v, want Inferior Conjunction", kind, ok)
	}
}
