package choreo

import "github.com/hajimehoshi/ebiten/v2"

// Draw renders the scene's current state into screen. The pipeline is the
// same for live playback and offline export:
//
//  1. Adopt the framebuffer size as the viewport and clear to ClearColor.
//  2. Apply the normalization transform: the shorter screen dimension maps
//     to UnitSize logical units, the longer dimension is centered, and the
//     origin sits at the screen center.
//  3. For every entity, in insertion order: project its local points
//     through the shared projection matrix into the entity's scene-owned
//     scratch buffer, then draw it with its local position/rotation/scale
//     applied under a canvas save/restore.
//
// Entity geometry is never mutated; projection writes only into the
// scratch buffers.
func (s *Scene) Draw(screen *ebiten.Image) {
	bounds := screen.Bounds()
	vp := Rect{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}

	c := &s.canvas
	c.begin(screen)
	c.Clear(s.ClearColor)

	short := vp.Width
	if vp.Height < short {
		short = vp.Height
	}
	unit := short / s.UnitSize

	ctr := vp.Center()
	c.Save()
	c.Translate(ctr.X, ctr.Y)
	c.Scale(unit, unit)

	for _, st := range s.entities {
		s.projectEntity(st)

		g := st.entity.Geom()
		c.Save()
		c.Translate(g.Position.X, g.Position.Y)
		c.Rotate(g.Rotation)
		c.Scale(g.Scaling.X, g.Scaling.Y)
		st.entity.Draw(c, st.projected)
		c.Restore()
	}

	c.Restore()

	s.flushScreenshots(screen)
}

// projectEntity refreshes the entity's projected-point buffer from its
// immutable geometry and the current projection matrix.
func (s *Scene) projectEntity(st *entityState) {
	pts := st.entity.Geom().Points
	if cap(st.projected) < len(pts) {
		st.projected = make([]Vec3, len(pts))
	}
	st.projected = st.projected[:len(pts)]
	for i, p := range pts {
		st.projected[i] = s.projection.Apply(p)
	}
}
