package choreo

import "math"

// Geom holds an entity's local transform and geometry. Position, Scaling,
// and Rotation are applied by the render pipeline around the entity's draw
// call; Points is the entity-local geometry that gets projected through the
// scene's projection matrix each frame.
//
// Points is treated as immutable by the renderer: projection writes into a
// per-entity scratch buffer owned by the scene, never back into Points.
type Geom struct {
	Position Vec3
	Scaling  Vec3
	Rotation float64 // radians, about Z

	Points []Vec3
}

// Entity is a drawable scene member. Draw receives the canvas with the
// entity's local transform already applied, plus the entity's points after
// projection through the scene matrix. Implementations must not retain or
// mutate pts; the buffer is reused next frame.
type Entity interface {
	Geom() *Geom
	Draw(c *Canvas, pts []Vec3)
}

// geomDefaults returns a Geom with unit scaling and the given points.
func geomDefaults(points []Vec3) Geom {
	return Geom{Scaling: Vec3{X: 1, Y: 1, Z: 1}, Points: points}
}

// --- Polygon ---

// Polygon is an entity drawn as a filled and/or stroked closed polygon over
// its projected points. Points are expected in order around the outline;
// filling uses fan triangulation, so outlines should be convex.
type Polygon struct {
	geom Geom

	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Closed      bool
}

// NewPolygon creates a polygon entity from the given outline points.
// It defaults to a white 2-unit stroke with no fill.
func NewPolygon(points []Vec3) *Polygon {
	return &Polygon{
		geom:        geomDefaults(points),
		Stroke:      ColorWhite,
		StrokeWidth: 2,
		Closed:      true,
	}
}

// NewRegularPolygon creates an n-sided regular polygon with the given
// circumradius, centered on the entity origin.
func NewRegularPolygon(n int, radius float64) *Polygon {
	if n < 3 {
		n = 3
	}
	points := make([]Vec3, n)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(n)
		points[i] = Vec3{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	return NewPolygon(points)
}

// Geom returns the polygon's local transform and geometry.
func (p *Polygon) Geom() *Geom { return &p.geom }

// Draw fills and strokes the projected outline.
func (p *Polygon) Draw(c *Canvas, pts []Vec3) {
	if p.Fill.A > 0 {
		c.FillPolygon(pts, p.Fill)
	}
	if p.StrokeWidth > 0 && p.Stroke.A > 0 {
		c.StrokePolyline(pts, p.StrokeWidth, p.Stroke, p.Closed)
	}
}

// --- PointCloud ---

// PointCloud draws each projected point as a small filled dot.
type PointCloud struct {
	geom Geom

	Color  Color
	Radius float64
}

// NewPointCloud creates a point cloud entity from the given points.
func NewPointCloud(points []Vec3) *PointCloud {
	return &PointCloud{geom: geomDefaults(points), Color: ColorWhite, Radius: 3}
}

// Geom returns the cloud's local transform and geometry.
func (p *PointCloud) Geom() *Geom { return &p.geom }

// Draw renders one dot per projected point.
func (p *PointCloud) Draw(c *Canvas, pts []Vec3) {
	for _, pt := range pts {
		c.FillCircle(pt, p.Radius, p.Color)
	}
}

// --- Label ---

// Label draws debug-style text anchored at its first projected point, or at
// the entity origin when it has no points.
type Label struct {
	geom Geom

	Text string
}

// NewLabel creates a text label entity anchored at the given point.
func NewLabel(text string, at Vec3) *Label {
	return &Label{geom: geomDefaults([]Vec3{at}), Text: text}
}

// Geom returns the label's local transform and geometry.
func (l *Label) Geom() *Geom { return &l.geom }

// Draw renders the label text at its anchor.
func (l *Label) Draw(c *Canvas, pts []Vec3) {
	at := Vec3{}
	if len(pts) > 0 {
		at = pts[0]
	}
	c.Text(l.Text, at)
}
