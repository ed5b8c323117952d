// Package elements derives osculating orbital elements from state vectors.
package elements

import (
	"math"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/logging"
)

// Elements holds the instantaneous two-body elements of a tracked body
// about its natural center. The zero value is the "unavailable" sentinel
// reported when extraction fails.
type Elements struct {
	SemiMajorAxisAU float64
	Eccentricity    float64
}

// Available reports whether the elements carry a real solution.
func (e Elements) Available() bool {
	return e.SemiMajorAxisAU != 0 || e.Eccentricity != 0
}

// Extractor computes osculating elements from ephemeris state vectors.
type Extractor struct {
	store *ephem.Store
	log   *logging.Logger
}

// NewExtractor creates an extractor over the store.
func NewExtractor(store *ephem.Store, log *logging.Logger) *Extractor {
	return &Extractor{store: store, log: log.WithComponent("elements")}
}

// At returns the osculating semi-major axis and eccentricity of the
// named body at the instant, about its natural center (the Sun for
// planets, the Earth for the Moon). Any failure, including an unknown
// name or an unbound state, yields the zero Elements; callers render
// that as "n/a" rather than aborting the whole table.
func (x *Extractor) At(name string, at astro.Instant) Elements {
	body, err := x.store.Lookup(name)
	if err != nil {
		x.log.Warn("elements for %q: %v", name, err)
		return Elements{}
	}

	pos, vel, err := x.store.State(body, at)
	if err != nil {
		x.log.Warn("elements for %s: %v", body.Name, err)
		return Elements{}
	}

	el, ok := FromState(pos, vel, body.GM)
	if !ok {
		x.log.Warn("elements for %s at %s: state is not an ellipse", body.Name, at)
		return Elements{}
	}
	return el
}

// All returns elements for every tracked body at the instant, keyed by
// name. Failed bodies carry the zero Elements.
func (x *Extractor) All(at astro.Instant) map[string]Elements {
	out := make(map[string]Elements, len(x.store.Bodies()))
	for _, b := range x.store.Bodies() {
		out[b.Name] = x.At(b.Name, at)
	}
	return out
}

// FromState converts a position (AU) and velocity (AU/day) about a
// center with gravitational parameter mu (AU³/day²) into osculating
// elements. It reports ok=false for degenerate states: zero radius,
// non-finite input, or an unbound (parabolic or hyperbolic) orbit,
// which has no finite semi-major axis.
func FromState(pos, vel astro.Vec3, mu float64) (Elements, bool) {
	if !pos.IsFinite() || !vel.IsFinite() || mu <= 0 {
		return Elements{}, false
	}
	r := pos.Norm()
	if r == 0 {
		return Elements{}, false
	}

	v2 := vel.Dot(vel)
	energy := v2/2 - mu/r
	if energy >= 0 {
		return Elements{}, false // unbound
	}
	a := -mu / (2 * energy)

	// Eccentricity vector: e = ((v² − μ/r) r − (r·v) v) / μ.
	rv := pos.Dot(vel)
	evec := pos.Scale((v2 - mu/r) / mu).Sub(vel.Scale(rv / mu))
	e := evec.Norm()
	if math.IsNaN(a) || math.IsNaN(e) {
		return Elements{}, false
	}
	return Elements{SemiMajorAxisAU: a, Eccentricity: e}, true
}
