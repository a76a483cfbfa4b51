package choreo

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// identityAffine is the identity 2D affine matrix.
var identityAffine = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// whitePixelImage is shared by all untextured draws; color comes from
// vertex colors.
var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Canvas is the drawing surface handed to entities. It wraps the frame's
// target image with a save/restore transform stack, so entity draw code can
// nest translate/scale/rotate without knowing about the surrounding
// normalization or any other entity's state.
//
// All primitives are submitted as triangles against a shared 1x1 white
// pixel; there is no per-primitive texture.
type Canvas struct {
	dst   *ebiten.Image
	cur   [6]float64
	stack [][6]float64

	// Reused geometry buffers, grown to high-water mark.
	verts []ebiten.Vertex
	inds  []uint16
}

// begin points the canvas at a new frame target and resets the transform
// stack to identity.
func (c *Canvas) begin(dst *ebiten.Image) {
	c.dst = dst
	c.cur = identityAffine
	c.stack = c.stack[:0]
}

// Clear fills the whole target with the given color.
func (c *Canvas) Clear(clr Color) {
	c.dst.Fill(clr.toRGBA())
}

// Save pushes the current transform onto the stack.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
}

// Restore pops the most recently saved transform. Restore without a matching
// Save resets to identity.
func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.cur = c.stack[n-1]
		c.stack = c.stack[:n-1]
		return
	}
	c.cur = identityAffine
}

// Translate offsets subsequent draws by (x, y) in the current space.
func (c *Canvas) Translate(x, y float64) {
	c.cur = multiplyAffine(c.cur, [6]float64{1, 0, 0, 1, x, y})
}

// Scale scales subsequent draws by (sx, sy) in the current space.
func (c *Canvas) Scale(sx, sy float64) {
	c.cur = multiplyAffine(c.cur, [6]float64{sx, 0, 0, sy, 0, 0})
}

// Rotate rotates subsequent draws by rad radians in the current space.
func (c *Canvas) Rotate(rad float64) {
	sin, cos := math.Sincos(rad)
	c.cur = multiplyAffine(c.cur, [6]float64{cos, sin, -sin, cos, 0, 0})
}

// pixelScale returns the average scale factor of the current transform,
// used to convert stroke widths and radii from local units to pixels.
func (c *Canvas) pixelScale() float64 {
	det := c.cur[0]*c.cur[3] - c.cur[2]*c.cur[1]
	return math.Sqrt(math.Abs(det))
}

// FillPolygon fills the outline with the given color using fan
// triangulation. Outlines with fewer than 3 points draw nothing.
func (c *Canvas) FillPolygon(pts []Vec3, clr Color) {
	n := len(pts)
	if n < 3 || c.dst == nil {
		return
	}

	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	for _, p := range pts {
		c.verts = append(c.verts, coloredVertex(transformPoint(c.cur, Vec2{X: p.X, Y: p.Y}), clr))
	}
	for i := 0; i < n-2; i++ {
		c.inds = append(c.inds, 0, uint16(i+1), uint16(i+2))
	}
	c.submit()
}

// StrokePolyline strokes the polyline with the given width in local units.
// Each segment is drawn as an independent quad ribbon; closed outlines get
// an extra segment from the last point back to the first.
func (c *Canvas) StrokePolyline(pts []Vec3, width float64, clr Color, closed bool) {
	n := len(pts)
	if n < 2 || c.dst == nil {
		return
	}

	half := width * c.pixelScale() / 2
	if half <= 0 {
		return
	}

	segs := n - 1
	if closed {
		segs = n
	}

	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	for i := 0; i < segs; i++ {
		a := transformPoint(c.cur, Vec2{X: pts[i].X, Y: pts[i].Y})
		b := transformPoint(c.cur, Vec2{X: pts[(i+1)%n].X, Y: pts[(i+1)%n].Y})
		perp := perpendicular(a, b)

		base := uint16(len(c.verts))
		c.verts = append(c.verts,
			coloredVertex(Vec2{X: a.X + perp.X*half, Y: a.Y + perp.Y*half}, clr),
			coloredVertex(Vec2{X: a.X - perp.X*half, Y: a.Y - perp.Y*half}, clr),
			coloredVertex(Vec2{X: b.X + perp.X*half, Y: b.Y + perp.Y*half}, clr),
			coloredVertex(Vec2{X: b.X - perp.X*half, Y: b.Y - perp.Y*half}, clr),
		)
		c.inds = append(c.inds,
			base, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	c.submit()
}

// FillCircle draws a filled dot at the given point with radius in local units.
func (c *Canvas) FillCircle(at Vec3, radius float64, clr Color) {
	if c.dst == nil {
		return
	}
	center := transformPoint(c.cur, Vec2{X: at.X, Y: at.Y})
	r := radius * c.pixelScale()
	if r <= 0 {
		return
	}

	const segments = 24
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	c.verts = append(c.verts, coloredVertex(center, clr))
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		c.verts = append(c.verts, coloredVertex(Vec2{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}, clr))
	}
	for i := 1; i <= segments; i++ {
		c.inds = append(c.inds, 0, uint16(i), uint16(i+1))
	}
	c.submit()
}

// Text draws debug text with its top-left corner at the given point.
// It uses the built-in debug font; real typography is out of scope.
// Text anchored outside the target is skipped entirely.
func (c *Canvas) Text(str string, at Vec3) {
	if c.dst == nil {
		return
	}
	p := transformPoint(c.cur, Vec2{X: at.X, Y: at.Y})
	if !c.targetRect().Contains(p) {
		return
	}
	ebitenutil.DebugPrintAt(c.dst, str, int(p.X), int(p.Y))
}

// targetRect returns the bound target's bounds as a Rect.
func (c *Canvas) targetRect() Rect {
	b := c.dst.Bounds()
	return Rect{
		X:      float64(b.Min.X),
		Y:      float64(b.Min.Y),
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// submit draws the accumulated vertex/index buffers in one call.
func (c *Canvas) submit() {
	if len(c.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	c.dst.DrawTriangles(c.verts, c.inds, ensureWhitePixel(), &op)
}

// coloredVertex builds an untextured vertex mapped to the center of the
// white pixel.
func coloredVertex(p Vec2, clr Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clr.R),
		ColorG: float32(clr.G),
		ColorB: float32(clr.B),
		ColorA: float32(clr.A),
	}
}

// perpendicular returns the unit left-perpendicular of the segment from
// a to b.
func perpendicular(a, b Vec2) Vec2 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return Vec2{Y: -1}
	}
	return Vec2{X: -dy / ln, Y: dx / ln}
}
