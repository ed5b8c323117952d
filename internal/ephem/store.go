package ephem

import (
	"fmt"
	"strings"

	"github.com/litescript/nexus-tracker/internal/astro"
	"github.com/litescript/nexus-tracker/internal/logging"
)

// safetyMarginDays is shaved off each end of the source's nominal
// coverage. Queries right at a kernel boundary can fail inside the
// interpolation even though the header claims coverage.
const safetyMarginDays = 0.25

// Store answers position and state queries for the fixed body set over
// the supported interval. It is read-only after NewStore and safe for
// concurrent use as long as the Source is.
type Store struct {
	src    Source
	bodies map[string]Body
	order  []Body
	window astro.Interval
	log    *logging.Logger
}

// NewStore wraps a source and derives the supported query interval from
// its coverage minus the safety margin. It fails, wrapping ErrLoad, if
// the margin consumes the whole coverage.
func NewStore(src Source, log *logging.Logger) (*Store, error) {
	startJD, endJD := src.Bounds()
	startJD += safetyMarginDays
	endJD -= safetyMarginDays
	if endJD <= startJD {
		return nil, fmt.Errorf("%w: coverage %.3f–%.3f too narrow", ErrLoad, startJD, endJD)
	}

	bodies := make(map[string]Body, len(Planets))
	for _, b := range Planets {
		bodies[strings.ToLower(b.Name)] = b
	}

	s := &Store{
		src:    src,
		bodies: bodies,
		order:  Planets,
		window: astro.Interval{Start: astro.FromJD(startJD), End: astro.FromJD(endJD)},
		log:    log.WithComponent("ephem"),
	}
	s.log.Info("ephemeris ready, supported %s – %s", s.window.Start, s.window.End)
	return s, nil
}

// SupportedInterval returns the queryable time interval.
func (s *Store) SupportedInterval() astro.Interval {
	return s.window
}

// Bodies returns the tracked body set in display order.
func (s *Store) Bodies() []Body {
	return s.order
}

// Lookup resolves a body by name, case-insensitively.
func (s *Store) Lookup(name string) (Body, error) {
	b, ok := s.bodies[strings.ToLower(name)]
	if !ok {
		return Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return b, nil
}

// HeliocentricPosition returns the body's Sun-relative position in AU.
// A geocentric body is translated by Earth's heliocentric position, so
// the Moon plots next to Earth instead of next to the Sun.
func (s *Store) HeliocentricPosition(b Body, at astro.Instant) (astro.Vec3, error) {
	if err := s.window.Validate(at); err != nil {
		return astro.Vec3{}, err
	}
	jd := at.JD()

	if !b.Geocentric() {
		pos, _, err := s.src.State(b.Target, TargetSun, jd)
		if err != nil {
			return astro.Vec3{}, fmt.Errorf("%s at %s: %w", b.Name, at, err)
		}
		return pos, nil
	}

	// Geocentric bodies: Earth heliocentric plus the body's
	// Earth-relative offset.
	earth, _, err := s.src.State(TargetEarth, TargetSun, jd)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("Earth at %s: %w", at, err)
	}
	geo, _, err := s.src.State(b.Target, TargetEarth, jd)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("%s at %s: %w", b.Name, at, err)
	}
	return earth.Add(geo), nil
}

// Positions returns heliocentric positions for the named bodies at one
// instant. Bodies that cannot be resolved or computed are logged and
// omitted; the map holds whatever succeeded. Only an instant outside
// the supported interval is a hard error.
func (s *Store) Positions(names []string, at astro.Instant) (map[string]astro.Vec3, error) {
	if err := s.window.Validate(at); err != nil {
		return nil, err
	}

	out := make(map[string]astro.Vec3, len(names))
	for _, name := range names {
		b, err := s.Lookup(name)
		if err != nil {
			s.log.Warn("skipping %q: %v", name, err)
			continue
		}
		pos, err := s.HeliocentricPosition(b, at)
		if err != nil {
			s.log.Warn("skipping %s: %v", b.Name, err)
			continue
		}
		out[b.Name] = pos
	}
	return out, nil
}

// State returns the body's position (AU) and velocity (AU/day) relative
// to its natural center: the Sun for planets, the Earth for the Moon.
func (s *Store) State(b Body, at astro.Instant) (astro.Vec3, astro.Vec3, error) {
	if err := s.window.Validate(at); err != nil {
		return astro.Vec3{}, astro.Vec3{}, err
	}
	pos, vel, err := s.src.State(b.Target, b.Center, at.JD())
	if err != nil {
		return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("%s at %s: %w", b.Name, at, err)
	}
	return pos, vel, nil
}

// Close releases the underlying source.
func (s *Store) Close() error {
	return s.src.Close()
}
