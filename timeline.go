package choreo

// Timeline owns the ordered list of tweens for a scene and evaluates them
// against the scene clock each tick.
//
// Tweens appended through Add are chained: every tween in one Add batch gets
// the same start time, the end time of the last tween already on the
// timeline. Tweens are never removed; a tween that has long finished is
// still evaluated every tick so the shared projection always reflects the
// full history of completed animations.
type Timeline struct {
	tweens []*Tween

	// Reused partition buffers (index slices into tweens).
	old, current, future []int

	done bool
}

// Add assigns every tween in the batch the same start time, the end time of
// the last tween currently on the timeline, and appends them in order. An
// empty timeline yields a start time of 0; this is the expected first-batch
// case, not an error. Passing more than one tween makes the batch run
// concurrently.
func (tl *Timeline) Add(tweens ...*Tween) {
	prevEnd := 0.0
	if n := len(tl.tweens); n > 0 {
		prevEnd = tl.tweens[n-1].EndTime()
	}
	for _, t := range tweens {
		t.start = prevEnd
		tl.tweens = append(tl.tweens, t)
	}
}

// Len returns the number of tweens on the timeline.
func (tl *Timeline) Len() int { return len(tl.tweens) }

// Tweens returns the timeline's tween list. The returned slice MUST NOT be
// mutated.
func (tl *Timeline) Tweens() []*Tween { return tl.tweens }

// EndTime returns the end time of the last tween, or 0 for an empty timeline.
func (tl *Timeline) EndTime() float64 {
	if n := len(tl.tweens); n > 0 {
		return tl.tweens[n-1].EndTime()
	}
	return 0
}

// Done reports whether the last Tick found no current or future tween.
func (tl *Timeline) Done() bool { return tl.done }

// partition classifies every tween relative to now: old (now past its end),
// future (now before its start), or current (inside its window, both ends
// inclusive). The three sets are disjoint and together cover the whole
// list; indices within each set keep original enqueue order.
func (tl *Timeline) partition(now float64) {
	tl.old = tl.old[:0]
	tl.current = tl.current[:0]
	tl.future = tl.future[:0]
	for i, t := range tl.tweens {
		switch {
		case now > t.EndTime():
			tl.old = append(tl.old, i)
		case now < t.start:
			tl.future = append(tl.future, i)
		default:
			tl.current = append(tl.current, i)
		}
	}
}

// Tick evaluates the whole timeline at now, writing matrix tweens through
// projection.
//
// Evaluation order matters because matrix tweens share one projection value
// rather than isolated per-tween state. Old tweens run first in enqueue
// order, pinning the projection to the final state of every completed
// animation. Future tweens run next in reverse enqueue order, rewinding the
// projection to the start snapshot of each animation that has not begun;
// rewinding later batches before earlier ones is what makes the net result
// "nothing from the future has happened yet". Current tweens then apply
// their partial interpolation on that corrected baseline, in enqueue order.
// Reordering any of these passes produces a projection belonging to the
// wrong tween.
func (tl *Timeline) Tick(now float64, projection *Mat4) {
	tl.partition(now)

	for _, i := range tl.old {
		tl.tweens[i].evaluate(now, projection)
	}
	for j := len(tl.future) - 1; j >= 0; j-- {
		tl.tweens[tl.future[j]].evaluate(now, projection)
	}
	for _, i := range tl.current {
		tl.tweens[i].evaluate(now, projection)
	}

	tl.done = len(tl.current) == 0 && len(tl.future) == 0
}
