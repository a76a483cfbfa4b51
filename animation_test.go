package choreo

import (
	"math"
	"testing"

	gease "github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	poly := NewRegularPolygon(4, 10)
	poly.Geom().Position = Vec3{X: 10, Y: 20}

	g := TweenPosition(poly, Vec3{X: 100, Y: 200, Z: 5}, 1.0, gease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	pos := poly.Geom().Position
	if math.Abs(pos.X-100) > 0.5 || math.Abs(pos.Y-200) > 0.5 || math.Abs(pos.Z-5) > 0.5 {
		t.Errorf("position = %+v, want ~(100, 200, 5)", pos)
	}
}

func TestTweenScalingReachesTarget(t *testing.T) {
	poly := NewRegularPolygon(4, 10)

	g := TweenScaling(poly, Vec3{X: 2, Y: 3, Z: 1}, 0.5, gease.Linear)

	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	sc := poly.Geom().Scaling
	if math.Abs(sc.X-2) > 0.01 || math.Abs(sc.Y-3) > 0.01 {
		t.Errorf("scaling = %+v, want ~(2, 3, 1)", sc)
	}
}

func TestTweenRotationInterpolates(t *testing.T) {
	poly := NewRegularPolygon(4, 10)

	g := TweenRotation(poly, math.Pi, 1.0, gease.Linear)

	// Halfway through.
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(poly.Geom().Rotation-math.Pi/2) > 0.05 {
		t.Errorf("rotation = %f, want ~%f at halfway", poly.Geom().Rotation, math.Pi/2)
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
}

func TestTweenGroupUpdateAfterDone(t *testing.T) {
	poly := NewRegularPolygon(4, 10)
	g := TweenRotation(poly, 1, 0.5, gease.Linear)

	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}
	before := poly.Geom().Rotation
	g.Update(1)
	if poly.Geom().Rotation != before {
		t.Error("Update after Done must not write")
	}
}
