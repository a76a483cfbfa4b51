package choreo

import (
	"math"
	"testing"

	"github.com/fogleman/ease"
	gease "github.com/tanema/gween/ease"
)

func TestScaleOneIsNoOp(t *testing.T) {
	s := NewScene()
	s.Scale(1, 200, ease.Linear)

	for _, now := range []float64{0, 50, 100, 200, 500} {
		s.Tick(now)
		if got := s.Projection(); got != Identity() {
			t.Errorf("at %f: projection = %v, want identity", now, got)
		}
	}
}

func TestOpEndSnapshotRoundTrip(t *testing.T) {
	// Fully evaluating an op must reproduce exactly the end value computed
	// at construction time.
	s := NewScene()
	s.Rotate(0.9, 150, ease.InOutQuad)
	atConstruction := s.Projection()

	s.Tick(150)
	if got := s.Projection(); got != atConstruction {
		t.Errorf("evaluated end = %v, want construction snapshot %v", got, atConstruction)
	}
}

func TestOpsComposeAtConstruction(t *testing.T) {
	// Sequential ops compose against each other's end values immediately,
	// before any tick has run.
	s := NewScene()
	s.Scale(2, 100, ease.Linear)
	s.Move(10, 0, 0, 100, ease.Linear)

	// Scale first, then translate: origin lands at (10, 0).
	vecNear(t, s.Projection().Apply(Vec3{}), Vec3{X: 10})
	vecNear(t, s.Projection().Apply(Vec3{X: 1}), Vec3{X: 12})
}

func TestWaitOffsetsWithoutMutating(t *testing.T) {
	s := NewScene()
	s.Scale(2, 100, ease.Linear)
	s.Wait(300)
	move := s.Move(5, 0, 0, 100, ease.Linear)

	if got := move.StartTime(); math.Abs(got-400) > eps {
		t.Errorf("move start = %f, want 400 (scale + wait)", got)
	}

	// During the wait the projection holds the scale's end state.
	s.Tick(250)
	vecNear(t, s.Projection().Apply(Vec3{X: 1}), Vec3{X: 2})
}

func TestTickClockFields(t *testing.T) {
	s := NewScene()
	s.Tick(100)
	s.Tick(116)

	if s.Time() != 116 {
		t.Errorf("Time = %f, want 116", s.Time())
	}
	if s.Delta() != 16 {
		t.Errorf("Delta = %f, want 16", s.Delta())
	}
	if s.lastUpdate != 100 {
		t.Errorf("lastUpdate = %f, want 100", s.lastUpdate)
	}
}

func TestEntitiesKeepInsertionOrder(t *testing.T) {
	s := NewScene()
	a := NewRegularPolygon(3, 10)
	b := NewRegularPolygon(4, 10)
	s.Add(a)
	s.Add(b)

	got := s.Entities()
	if len(got) != 2 || got[0] != Entity(a) || got[1] != Entity(b) {
		t.Errorf("entities out of order: %v", got)
	}
}

func TestProjectEntityDoesNotMutateGeometry(t *testing.T) {
	s := NewScene()
	poly := NewPolygon([]Vec3{{X: 1}, {Y: 1}, {X: -1}})
	s.Add(poly)
	s.Scale(3, 100, ease.Linear)
	s.Tick(100)

	st := s.entities[0]
	s.projectEntity(st)

	if poly.Geom().Points[0].X != 1 {
		t.Error("projection mutated the entity's authoritative geometry")
	}
	vecNear(t, st.projected[0], Vec3{X: 3})

	// The scratch buffer is reused across frames.
	buf := &st.projected[0]
	s.projectEntity(st)
	if buf != &st.projected[0] {
		t.Error("projection reallocated the scratch buffer without growth")
	}
}

func TestConcurrentBatchSharesWindow(t *testing.T) {
	s := NewScene()
	s.Wait(100)

	var a, b float64
	s.Animate(
		NewTween(200, ease.Linear, func(e float64) { a = e }),
		NewTween(200, ease.Linear, func(e float64) { b = e }),
	)

	s.Tick(200)
	if math.Abs(a-0.5) > eps || math.Abs(b-0.5) > eps {
		t.Errorf("batch progress = (%f, %f), want (0.5, 0.5)", a, b)
	}
}

func TestPlayAdvancesAndPrunesGroups(t *testing.T) {
	s := NewScene()
	poly := NewRegularPolygon(3, 10)
	s.Add(poly)

	g := TweenRotation(poly, math.Pi, 1, gease.Linear)
	s.Play(g)

	s.Tick(500) // 0.5 s
	if g.Done {
		t.Fatal("group done at half duration")
	}
	if math.Abs(poly.Geom().Rotation-math.Pi/2) > 0.05 {
		t.Errorf("rotation = %f, want ~%f", poly.Geom().Rotation, math.Pi/2)
	}

	s.Tick(1000)
	if !g.Done {
		t.Fatal("group should be done after full duration")
	}
	if len(s.groups) != 0 {
		t.Error("finished group was not pruned")
	}
}
