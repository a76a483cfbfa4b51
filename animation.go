package choreo

import (
	"github.com/tanema/gween"
	gease "github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of an entity's Geom
// simultaneously. Unlike timeline tweens, which are evaluated at absolute
// scene times, groups advance by per-tick delta; they suit local entity
// motion that should run alongside the scheduled projection animation.
// Register a group with Scene.Play; the scene advances it each tick and
// drops it once done.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. Done is set once every tween in the group has finished.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that animates the entity's local
// position to the given point over duration seconds.
func TweenPosition(e Entity, to Vec3, duration float32, fn gease.TweenFunc) *TweenGroup {
	geom := e.Geom()
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(float32(geom.Position.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(geom.Position.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(geom.Position.Z), float32(to.Z), duration, fn)
	g.fields[0] = &geom.Position.X
	g.fields[1] = &geom.Position.Y
	g.fields[2] = &geom.Position.Z
	return g
}

// TweenScaling creates a TweenGroup that animates the entity's local
// scaling to the given factors over duration seconds.
func TweenScaling(e Entity, to Vec3, duration float32, fn gease.TweenFunc) *TweenGroup {
	geom := e.Geom()
	g := &TweenGroup{count: 3}
	g.tweens[0] = gween.New(float32(geom.Scaling.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(geom.Scaling.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(geom.Scaling.Z), float32(to.Z), duration, fn)
	g.fields[0] = &geom.Scaling.X
	g.fields[1] = &geom.Scaling.Y
	g.fields[2] = &geom.Scaling.Z
	return g
}

// TweenRotation creates a TweenGroup that animates the entity's local
// rotation to the given angle (radians) over duration seconds.
func TweenRotation(e Entity, to float64, duration float32, fn gease.TweenFunc) *TweenGroup {
	geom := e.Geom()
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(geom.Rotation), float32(to), duration, fn)
	g.fields[0] = &geom.Rotation
	return g
}
