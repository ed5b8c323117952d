package ephem

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/nexus-tracker/internal/astro"
)

func TestAnalyticCircularOrbits(t *testing.T) {
	src := AnalyticSource{}

	// Position norm stays on the circle and velocity is tangential.
	for target, orbit := range circularOrbits {
		pos, vel, err := src.State(target, TargetSun, j2000+123.0)
		if err != nil {
			t.Fatalf("State(%d): %v", target, err)
		}
		if r := pos.Norm(); math.Abs(r-orbit.radiusAU) > 1e-9 {
			t.Errorf("target %d: radius %.9f, want %.9f", target, r, orbit.radiusAU)
		}
		if dot := pos.Dot(vel); math.Abs(dot) > 1e-12 {
			t.Errorf("target %d: velocity not tangential, r·v = %g", target, dot)
		}
	}
}

func TestAnalyticRelativeState(t *testing.T) {
	src := AnalyticSource{}
	jd := j2000 + 50.0

	// target-relative-center must equal the difference of heliocentric states.
	mpos, _, err := src.State(TargetMars, TargetEarth, jd)
	if err != nil {
		t.Fatal(err)
	}
	mh, _, _ := src.State(TargetMars, TargetSun, jd)
	eh, _, _ := src.State(TargetEarth, TargetSun, jd)
	if diff := mpos.Sub(mh.Sub(eh)).Norm(); diff > 1e-12 {
		t.Errorf("relative state inconsistent by %g AU", diff)
	}
}

func TestAnalyticOutsideCoverage(t *testing.T) {
	src := AnalyticSource{}
	start, end := src.Bounds()

	_, _, err := src.State(TargetMars, TargetSun, start-1)
	if !errors.Is(err, ErrOutsideSource) {
		t.Errorf("before start: err = %v, want ErrOutsideSource", err)
	}
	_, _, err = src.State(TargetMars, TargetSun, end+1)
	if !errors.Is(err, ErrOutsideSource) {
		t.Errorf("after end: err = %v, want ErrOutsideSource", err)
	}

	if _, _, err := src.State(TargetPluto, TargetSun, j2000); err == nil {
		t.Error("Pluto should not be covered by the analytic model")
	}
	var zero astro.Vec3
	pos, _, err := src.State(TargetSun, TargetSun, j2000)
	if err != nil || pos != zero {
		t.Errorf("Sun about Sun = %v, %v; want zero, nil", pos, err)
	}
}
