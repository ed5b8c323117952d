package ephem

import (
	"errors"
	"fmt"

	"github.com/mshafiee/jpleph"

	"github.com/litescript/nexus-tracker/internal/astro"
)

// JPLSource reads a binary JPL DE ephemeris kernel (de405, de430, de440s, ...).
// Read-only after Open; safe for use from whichever goroutine holds the
// scheduler's job slot.
type JPLSource struct {
	eph *jpleph.Ephemeris
}

// OpenJPL opens a DE kernel and verifies it can answer for the Sun, Earth
// and Moon at mid-coverage. Any failure wraps ErrLoad; callers treat it
// as fatal.
func OpenJPL(path string) (*JPLSource, error) {
	eph, err := jpleph.NewEphemeris(path, false)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrLoad, path, err)
	}

	src := &JPLSource{eph: eph}
	startJD, endJD := src.Bounds()
	if startJD <= 0 || endJD <= startJD {
		_ = eph.Close()
		return nil, fmt.Errorf("%w: %s reports empty coverage", ErrLoad, path)
	}

	// Probe the bodies nothing can function without.
	mid := (startJD + endJD) / 2
	probes := []struct {
		name           string
		target, center Target
	}{
		{"Earth", TargetEarth, TargetSun},
		{"Moon", TargetMoon, TargetEarth},
		{"Sun", TargetSun, TargetEarth},
	}
	for _, p := range probes {
		if _, _, err := src.State(p.target, p.center, mid); err != nil {
			_ = eph.Close()
			return nil, fmt.Errorf("%w: %s missing from %s: %v", ErrLoad, p.name, path, err)
		}
	}

	return src, nil
}

// State implements Source.
func (s *JPLSource) State(target, center Target, jd float64) (astro.Vec3, astro.Vec3, error) {
	pos, vel, err := s.eph.CalculatePV(jd, jpleph.Planet(target), jpleph.CenterBody(center), true)
	if err != nil {
		if errors.Is(err, jpleph.ErrOutsideRange) {
			return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("%w: jd %.3f", ErrOutsideSource, jd)
		}
		return astro.Vec3{}, astro.Vec3{}, err
	}
	return astro.Vec3{X: pos.X, Y: pos.Y, Z: pos.Z},
		astro.Vec3{X: vel.DX, Y: vel.DY, Z: vel.DZ}, nil
}

// Bounds implements Source, reporting the kernel's nominal coverage.
func (s *JPLSource) Bounds() (float64, float64) {
	return s.eph.GetEphemerisDouble(jpleph.EphemerisStartJD),
		s.eph.GetEphemerisDouble(jpleph.EphemerisEndJD)
}

// Close implements Source.
func (s *JPLSource) Close() error {
	return s.eph.Close()
}

// Name returns the kernel's self-reported name, e.g. "DE440s".
func (s *JPLSource) Name() string {
	return s.eph.GetEphemName()
}
