package choreo

import (
	"sync/atomic"

	"github.com/fogleman/ease"
)

// entityState pairs an entity with its scene-owned projection scratch
// buffer. The buffer holds the entity's points after projection through the
// scene matrix; it is recomputed every frame so the entity's own Points are
// never written to.
type entityState struct {
	entity    Entity
	projected []Vec3
}

// Scene owns the drawable entities, the animation timeline, the shared
// projection matrix, and the scene clock. All scene times are in
// milliseconds.
//
// A Scene is single-threaded: ticking and drawing happen sequentially on
// the driver goroutine, so no field needs locking. The one exception is
// the refresh flag, which may be set from any goroutine.
type Scene struct {
	// ClearColor is the background the frame is cleared to.
	ClearColor Color

	// UnitSize is the logical size the shorter framebuffer dimension is
	// normalized to. Entity coordinates live in [-UnitSize/2, UnitSize/2]
	// on the short axis, origin at the center.
	UnitSize float64

	// ScreenshotDir receives PNG captures requested via Screenshot.
	ScreenshotDir string

	entities []*entityState
	timeline Timeline

	// projection is the single shared transform composed by Scale, Rotate,
	// and Move. It is written from exactly two places: op construction
	// (jumping to the end snapshot so later ops compose against it) and
	// matrix tween evaluation during Tick.
	projection Mat4

	// Clock state, mutated only by Tick.
	time       float64
	lastUpdate float64
	delta      float64

	groups []*TweenGroup

	canvas Canvas

	screenshotQueue []string
	screenshotSeq   int
	frameScratch    []byte

	refresh atomic.Bool
}

// NewScene creates an empty scene with an identity projection.
func NewScene() *Scene {
	return &Scene{
		ClearColor:    Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
		UnitSize:      1000,
		ScreenshotDir: "screenshots",
		projection:    Identity(),
	}
}

// Add appends an entity to the scene. Entities are drawn in insertion order.
func (s *Scene) Add(e Entity) {
	s.entities = append(s.entities, &entityState{entity: e})
}

// Entities returns the scene's entities in insertion order.
func (s *Scene) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	for i, st := range s.entities {
		out[i] = st.entity
	}
	return out
}

// Timeline returns the scene's timeline.
func (s *Scene) Timeline() *Timeline { return &s.timeline }

// Projection returns the current value of the shared projection matrix.
func (s *Scene) Projection() Mat4 { return s.projection }

// Time returns the scene clock in milliseconds.
func (s *Scene) Time() float64 { return s.time }

// Delta returns the time advanced by the most recent Tick, in milliseconds.
func (s *Scene) Delta() float64 { return s.delta }

// Done reports whether no tween is current or future as of the last Tick.
// Offline export stops when this turns true.
func (s *Scene) Done() bool { return s.timeline.Done() }

// --- Transform composition ops ---
//
// Each op snapshots the live projection as the tween's start value, computes
// the end value by applying its transform, and immediately sets the live
// projection to that end value. Ops issued back to back therefore compose
// against each other's final state even before any tick has run; the
// timeline's evaluation order keeps the rendered value consistent once the
// tweens spread across old/current/future at arbitrary tick times.
//
// A zero durationMs falls back to DefaultDuration, a nil fn to DefaultEasing.

// Scale enqueues a uniform scale of the projection by factor d.
func (s *Scene) Scale(d float64, durationMs float64, fn ease.Function) *Tween {
	return s.compose(Scaling(d), durationMs, fn)
}

// Rotate enqueues a rotation of the projection by rad radians about Z.
func (s *Scene) Rotate(rad float64, durationMs float64, fn ease.Function) *Tween {
	return s.compose(RotationZ(rad), durationMs, fn)
}

// Move enqueues a translation of the projection by (dx, dy, dz).
func (s *Scene) Move(dx, dy, dz float64, durationMs float64, fn ease.Function) *Tween {
	return s.compose(Translation(dx, dy, dz), durationMs, fn)
}

// Wait enqueues a no-op tween that reserves durationMs on the timeline,
// delaying everything enqueued after it.
func (s *Scene) Wait(durationMs float64) *Tween {
	t := NewWait(durationMs)
	s.timeline.Add(t)
	return t
}

// Animate enqueues the given tweens as one batch: they share a start time
// and run concurrently.
func (s *Scene) Animate(tweens ...*Tween) {
	s.timeline.Add(tweens...)
}

func (s *Scene) compose(transform Mat4, durationMs float64, fn ease.Function) *Tween {
	from := s.projection
	to := transform.Mul(from)
	s.projection = to

	t := newMatrixTween(from, to, durationMs, fn)
	s.timeline.Add(t)
	return t
}

// RequestRefresh asks the driver to tick and redraw on its next frame even
// if no scheduled update is due, mirroring a window refresh callback. Safe
// to call from any goroutine.
func (s *Scene) RequestRefresh() {
	s.refresh.Store(true)
}

// takeRefresh consumes a pending refresh request.
func (s *Scene) takeRefresh() bool {
	return s.refresh.Swap(false)
}

// Play registers an entity-property tween group to be advanced each tick.
// Finished groups are dropped automatically.
func (s *Scene) Play(g *TweenGroup) {
	s.groups = append(s.groups, g)
}

// Tick advances the scene clock to now and evaluates the timeline and any
// property tween groups. Ticking twice at the same time is harmless;
// timeline evaluation depends only on the tween list and the time.
func (s *Scene) Tick(now float64) {
	s.lastUpdate = s.time
	s.delta = now - s.time
	s.time = now

	s.timeline.Tick(now, &s.projection)

	if len(s.groups) == 0 {
		return
	}
	dt := float32(s.delta / 1000)
	active := s.groups[:0]
	for _, g := range s.groups {
		g.Update(dt)
		if !g.Done {
			active = append(active, g)
		}
	}
	s.groups = active
}
