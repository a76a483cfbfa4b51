package choreo

import "github.com/fogleman/ease"

// Default tween parameters, used by the Scene transform ops when the caller
// passes a zero duration or a nil easing function.
const DefaultDuration = 1000.0 // milliseconds

// DefaultEasing is the easing applied when none is given.
var DefaultEasing ease.Function = ease.InOutQuad

// ApplyFunc receives the eased progress in [0, 1] and applies it to whatever
// the tween animates. A tween with no apply funcs and no matrix segment is a
// pure wait: it reserves time on the timeline and touches nothing.
type ApplyFunc func(eased float64)

// Tween is a time-windowed animation unit: an easing function, a start time
// and duration in milliseconds, and the work to perform at a given progress.
//
// Matrix tweens do not carry a callback that writes the projection. They
// carry the explicit from/to snapshots recorded at construction time, and
// the timeline writes the interpolated matrix into the scene-owned
// projection when it evaluates them. This keeps all projection writes in
// one place instead of hiding them in captured closures.
//
// A tween is immutable after construction except for its start time, which
// the timeline assigns exactly once when the tween is enqueued.
type Tween struct {
	start    float64
	duration float64
	easing   ease.Function

	// Matrix segment (nil for waits and property tweens).
	from, to Mat4
	isMatrix bool

	applies []ApplyFunc
}

// NewTween creates a tween that invokes the given apply funcs with eased
// progress each evaluation. A zero or negative duration is treated as an
// instantaneous tween; a nil fn falls back to DefaultEasing.
func NewTween(durationMs float64, fn ease.Function, applies ...ApplyFunc) *Tween {
	if fn == nil {
		fn = DefaultEasing
	}
	return &Tween{duration: durationMs, easing: fn, applies: applies}
}

// NewWait creates a tween that does nothing but occupy the given duration on
// the timeline, delaying everything enqueued after it.
func NewWait(durationMs float64) *Tween {
	return &Tween{duration: durationMs, easing: ease.Linear}
}

// newMatrixTween creates a tween carrying a projection snapshot pair.
func newMatrixTween(from, to Mat4, durationMs float64, fn ease.Function) *Tween {
	if durationMs <= 0 {
		durationMs = DefaultDuration
	}
	if fn == nil {
		fn = DefaultEasing
	}
	return &Tween{duration: durationMs, easing: fn, from: from, to: to, isMatrix: true}
}

// StartTime returns the tween's start time in milliseconds.
func (t *Tween) StartTime() float64 { return t.start }

// Duration returns the tween's duration in milliseconds.
func (t *Tween) Duration() float64 { return t.duration }

// EndTime returns start + duration.
func (t *Tween) EndTime() float64 { return t.start + t.duration }

// progress computes the eased progress at the given time. The raw progress
// is clamped to [0, 1] before easing. A zero-duration tween is at its end
// state from its start time onward, with no division performed.
func (t *Tween) progress(now float64) float64 {
	if t.duration <= 0 {
		if now >= t.start {
			return t.easing(1)
		}
		return t.easing(0)
	}
	return t.easing(clamp01((now - t.start) / t.duration))
}

// evaluate applies the tween at the given time. Matrix tweens write the
// interpolated snapshot into projection; other tweens invoke their apply
// funcs. Evaluation is idempotent: the result depends only on the tween
// and now, so re-evaluating at the same time is harmless.
func (t *Tween) evaluate(now float64, projection *Mat4) {
	eased := t.progress(now)
	if t.isMatrix && projection != nil {
		*projection = lerpMat4(t.from, t.to, eased)
	}
	for _, fn := range t.applies {
		fn(eased)
	}
}
