// Package events finds conjunctions and oppositions of the tracked planets.
//
// Both detection modes work off solar elongation, the angle at Earth
// between the Sun and the body. Oppositions and conjunctions are the
// extrema of that angle: near 180° for an opposition, near 0° for a
// conjunction. Which conjunction it is depends on whether the body is
// inside or outside Earth's orbit at that moment.
package events

import (
	"fmt"
	"sort"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/logging"
)

// Kind classifies a detected event.
type Kind int

const (
	KindInferiorConjunction Kind = iota
	KindSuperiorConjunction
	KindOpposition
)

func (k Kind) String() string {
	switch k {
	case KindInferiorConjunction:
		return "Inferior Conjunction"
	case KindSuperiorConjunction:
		return "Superior Conjunction"
	case KindOpposition:
		return "Opposition"
	default:
		return "Unknown"
	}
}

// Event is a detected alignment of a body at an instant.
type Event struct {
	Body          string
	Kind          Kind
	At            astro.Instant
	ElongationDeg float64
}

const (
	// DefaultThresholdDeg is how close to 0° or 180° an elongation
	// extremum must be to count as an event.
	DefaultThresholdDeg = 5.0

	// DefaultStepDays is the coarse scan step. Half a day resolves
	// every planetary extremum; the fastest synodic motion (Mercury)
	// spends weeks near each extremum.
	DefaultStepDays = 0.5

	// refineToleranceDays stops extremum refinement once the bracket
	// is narrower than about nine seconds.
	refineToleranceDays = 1e-4
)

// Detector scans elongation extrema for the tracked planets. Earth has
// no elongation from itself and the Moon's events are a different
// phenomenon (phases), so both are always excluded.
type Detector struct {
	store        *ephem.Store
	log          *logging.Logger
	thresholdDeg float64
	stepDays     float64
}

// NewDetector creates a detector with the given threshold and scan step.
// Non-positive values fall back to the defaults.
func NewDetector(store *ephem.Store, thresholdDeg, stepDays float64, log *logging.Logger) *Detector {
	if thresholdDeg <= 0 {
		thresholdDeg = DefaultThresholdDeg
	}
	if stepDays <= 0 {
		stepDays = DefaultStepDays
	}
	return &Detector{
		store:        store,
		log:          log.WithComponent("events"),
		thresholdDeg: thresholdDeg,
		stepDays:     stepDays,
	}
}

// Elongation returns the body's solar elongation in degrees at the
// instant: the angle at Earth between the Sun direction and the body
// direction.
func (d *Detector) Elongation(b ephem.Body, at astro.Instant) (float64, error) {
	earth, err := d.store.Lookup("Earth")
	if err != nil {
		return 0, err
	}
	epos, err := d.store.HeliocentricPosition(earth, at)
	if err != nil {
		return 0, err
	}
	bpos, err := d.store.HeliocentricPosition(b, at)
	if err != nil {
		return 0, err
	}
	toSun := astro.Vec3{}.Sub(epos)
	toBody := bpos.Sub(epos)
	return astro.AngleBetween(toSun, toBody), nil
}

// eligible filters the requested names down to detectable bodies,
// logging and skipping unknown names, Earth and the Moon.
func (d *Detector) eligible(names []string) []ephem.Body {
	var out []ephem.Body
	for _, name := range names {
		b, err := d.store.Lookup(name)
		if err != nil {
			d.log.Warn("skipping %q: %v", name, err)
			continue
		}
		if b.Target == ephem.TargetEarth || b.Geocentric() {
			d.log.Debug("skipping %s: no solar elongation events", b.Name)
			continue
		}
		out = append(out, b)
	}
	return out
}

// classify maps an elongation extremum to an event kind, or reports
// that the extremum is not close enough to 0° or 180° to count.
func (d *Detector) classify(b ephem.Body, at astro.Instant, elong float64) (Kind, bool) {
	nearer, err := d.nearerThanEarth(b, at)
	if err != nil {
		d.log.Warn("classify %s: %v", b.Name, err)
		return 0, false
	}
	switch {
	case elong >= 180-d.thresholdDeg:
		if nearer {
			// An inner body can graze large elongations only in
			// pathological geometries; call it a conjunction pass.
			return KindSuperiorConjunction, true
		}
		return KindOpposition, true
	case elong <= d.thresholdDeg:
		if nearer {
			return KindInferiorConjunction, true
		}
		return KindSuperiorConjunction, true
	default:
		return 0, false
	}
}

// nearerThanEarth reports whether the body is currently closer to the
// Sun than Earth is.
func (d *Detector) nearerThanEarth(b ephem.Body, at astro.Instant) (bool, error) {
	earth, err := d.store.Lookup("Earth")
	if err != nil {
		return false, err
	}
	epos, err := d.store.HeliocentricPosition(earth, at)
	if err != nil {
		return false, err
	}
	bpos, err := d.store.HeliocentricPosition(b, at)
	if err != nil {
		return false, err
	}
	return bpos.Norm() < epos.Norm(), nil
}

// DetectAt reports which of the named bodies are at an event right now,
// by the single-instant approximation: the current elongation itself is
// tested against the threshold, with no extremum search. Results are
// sorted by body name for stable display.
func (d *Detector) DetectAt(names []string, at astro.Instant) []Event {
	var out []Event
	for _, b := range d.eligible(names) {
		elong, err := d.Elongation(b, at)
		if err != nil {
			d.log.Warn("skipping %s: %v", b.Name, err)
			continue
		}
		kind, ok := d.classify(b, at, elong)
		if !ok {
			continue
		}
		out = append(out, Event{Body: b.Name, Kind: kind, At: at, ElongationDeg: elong})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Body < out[j].Body })
	return out
}

// Search finds every elongation extremum event for the named bodies in
// the interval, refined to sub-minute precision and sorted ascending by
// time. The interval is clamped to the store's supported range; a
// degenerate result yields no events and no error.
func (d *Detector) Search(names []string, iv astro.Interval) ([]Event, error) {
	window := d.store.SupportedInterval()
	iv = astro.Interval{Start: window.Clamp(iv.Start), End: window.Clamp(iv.End)}
	if iv.Days() <= 0 {
		return nil, nil
	}

	var out []Event
	for _, b := range d.eligible(names) {
		evs, err := d.searchBody(b, iv)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", b.Name, err)
		}
		out = append(out, evs...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

func (d *Detector) searchBody(b ephem.Body, iv astro.Interval) ([]Event, error) {
	n := int(iv.Days()/d.stepDays) + 1
	if n < 3 {
		return nil, nil
	}

	elong := make([]float64, n)
	times := make([]astro.Instant, n)
	for i := 0; i < n; i++ {
		at := iv.Start.AddDays(float64(i) * d.stepDays)
		if at.After(iv.End) {
			at = iv.End
		}
		e, err := d.Elongation(b, at)
		if err != nil {
			return nil, err
		}
		times[i], elong[i] = at, e
	}

	var out []Event
	for i := 1; i < n-1; i++ {
		isMax := elong[i] >= elong[i-1] && elong[i] > elong[i+1]
		isMin := elong[i] <= elong[i-1] && elong[i] < elong[i+1]
		if !isMax && !isMin {
			continue
		}
		at, e, err := d.refine(b, times[i-1], times[i+1], isMax)
		if err != nil {
			return nil, err
		}
		kind, ok := d.classify(b, at, e)
		if !ok {
			continue
		}
		out = append(out, Event{Body: b.Name, Kind: kind, At: at, ElongationDeg: e})
	}
	return out, nil
}

// refine narrows an extremum bracket by ternary search until the
// bracket is below refineToleranceDays.
func (d *Detector) refine(b ephem.Body, lo, hi astro.Instant, findMax bool) (astro.Instant, float64, error) {
	loJD, hiJD := lo.JD(), hi.JD()
	for hiJD-loJD > refineToleranceDays {
		m1 := loJD + (hiJD-loJD)/3
		m2 := hiJD - (hiJD-loJD)/3
		e1, err := d.Elongation(b, astro.FromJD(m1))
		if err != nil {
			return astro.Instant{}, 0, err
		}
		e2, err := d.Elongation(b, astro.FromJD(m2))
		if err != nil {
			return astro.Instant{}, 0, err
		}
		if (e1 < e2) == findMax {
			loJD = m1
		} else {
			hiJD = m2
		}
	}
	at := astro.FromJD((loJD + hiJD) / 2)
	e, err := d.Elongation(b, at)
	if err != nil {
		return astro.Instant{}, 0, err
	}
	return at, e, nil
}
