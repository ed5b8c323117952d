package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/nexus-tracker/internal/astro"
)

// AnalyticSource is a self-contained circular-orbit model. It stands in
// for a DE kernel in tests and lets the tool start without one, at the
// cost of degree-level accuracy. Orbits are coplanar circles with mean
// motion derived from each body's period.
type AnalyticSource struct{}

const j2000 = 2451545.0

// Analytic source coverage, 1900-01-01 through 2050-01-01.
const (
	analyticStartJD = 2415020.5
	analyticEndJD   = 2469807.5
)

type circularOrbit struct {
	radiusAU   float64
	periodDays float64
	lonAtJ2000 float64 // mean longitude at J2000, degrees
}

var circularOrbits = map[Target]circularOrbit{
	TargetMercury: {0.387098, 87.969, 252.251},
	TargetVenus:   {0.723332, 224.701, 181.980},
	TargetEarth:   {1.000000, 365.256, 100.464},
	TargetMars:    {1.523679, 686.980, 355.453},
	TargetJupiter: {5.20260, 4332.589, 34.404},
	TargetSaturn:  {9.55491, 10759.22, 49.944},
	TargetUranus:  {19.2184, 30688.5, 313.232},
	TargetNeptune: {30.1104, 60182.0, 304.880},
}

// Earth-relative circular lunar orbit.
var lunarOrbit = circularOrbit{0.00257, 27.321661, 218.316}

func (o circularOrbit) stateAt(jd float64) (astro.Vec3, astro.Vec3) {
	lon := degToRad(o.lonAtJ2000) + 2*math.Pi*(jd-j2000)/o.periodDays
	pos := astro.Vec3{X: o.radiusAU * math.Cos(lon), Y: o.radiusAU * math.Sin(lon)}
	rate := 2 * math.Pi / o.periodDays // rad/day
	vel := astro.Vec3{X: -o.radiusAU * rate * math.Sin(lon), Y: o.radiusAU * rate * math.Cos(lon)}
	return pos, vel
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// State implements Source.
func (s AnalyticSource) State(target, center Target, jd float64) (astro.Vec3, astro.Vec3, error) {
	if jd < analyticStartJD || jd > analyticEndJD {
		return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("%w: jd %.3f", ErrOutsideSource, jd)
	}

	pos, vel, err := s.sunRelative(target, jd)
	if err != nil {
		return astro.Vec3{}, astro.Vec3{}, err
	}
	cpos, cvel, err := s.sunRelative(center, jd)
	if err != nil {
		return astro.Vec3{}, astro.Vec3{}, err
	}
	return pos.Sub(cpos), vel.Sub(cvel), nil
}

// sunRelative returns the heliocentric state of any supported target.
func (s AnalyticSource) sunRelative(t Target, jd float64) (astro.Vec3, astro.Vec3, error) {
	switch {
	case t == TargetSun:
		return astro.Vec3{}, astro.Vec3{}, nil
	case t == TargetMoon:
		epos, evel, err := s.sunRelative(TargetEarth, jd)
		if err != nil {
			return astro.Vec3{}, astro.Vec3{}, err
		}
		mpos, mvel := lunarOrbit.stateAt(jd)
		return epos.Add(mpos), evel.Add(mvel), nil
	default:
		orbit, ok := circularOrbits[t]
		if !ok {
			return astro.Vec3{}, astro.Vec3{}, fmt.Errorf("analytic source has no target %d", t)
		}
		pos, vel := orbit.stateAt(jd)
		return pos, vel, nil
	}
}

// Bounds implements Source.
func (AnalyticSource) Bounds() (float64, float64) {
	return analyticStartJD, analyticEndJD
}

// Close implements Source.
func (AnalyticSource) Close() error { return nil }
