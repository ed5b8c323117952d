// Package ephem loads the planetary ephemeris and computes body positions.
//
// A Source supplies raw state vectors for (target, center) pairs at a
// Julian Date. The production source reads a binary JPL DE kernel; an
// analytic circular-orbit source backs tests and degraded operation.
// The Store owns the fixed body set and the Moon-aware heliocentric rule.
package ephem

import (
	"errors"

	"github.com/litescript/nexus-tracker/internal/astro"
)

// Target identifies a body in the JPL DE numbering scheme.
type Target int

// DE target indices. Centers reuse the same numbering.
const (
	TargetMercury Target = 1
	TargetVenus   Target = 2
	TargetEarth   Target = 3
	TargetMars    Target = 4
	TargetJupiter Target = 5
	TargetSaturn  Target = 6
	TargetUranus  Target = 7
	TargetNeptune Target = 8
	TargetPluto   Target = 9
	TargetMoon    Target = 10
	TargetSun     Target = 11
)

// ErrLoad is returned when the ephemeris file cannot be opened or is
// missing a required body. Fatal at startup.
var ErrLoad = errors.New("ephemeris load failed")

// ErrUnknownBody is returned for a name not in the loaded body set.
var ErrUnknownBody = errors.New("unknown body")

// ErrOutsideSource is returned when a source cannot answer for a Julian Date.
var ErrOutsideSource = errors.New("time outside source coverage")

// Source supplies raw ephemeris state vectors.
type Source interface {
	// State returns position (AU) and velocity (AU/day) of target
	// relative to center at the given Julian Date.
	State(target, center Target, jd float64) (astro.Vec3, astro.Vec3, error)

	// Bounds returns the nominal Julian Date coverage of the source.
	Bounds() (startJD, endJD float64)

	// Close releases underlying resources.
	Close() error
}
