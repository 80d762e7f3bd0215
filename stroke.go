package paper

import (
	"fmt"
	"math"

	"honnef.co/go/paper/geom"
)

// Join defines the connection between two segments of a stroke.
type Join int

const (
	// A straight line connecting the segments.
	BevelJoin Join = iota
	// The segments are extended to their natural intersection point.
	MiterJoin
	// An arc between the segments.
	RoundJoin
)

func (j Join) String() string {
	switch j {
	case BevelJoin:
		return "bevel"
	case MiterJoin:
		return "miter"
	case RoundJoin:
		return "round"
	default:
		return fmt.Sprintf("Join(%d)", j)
	}
}

// Cap defines the shape to be drawn at the ends of a stroke.
type Cap int

const (
	// Flat cap.
	ButtCap Cap = iota
	// Square cap with dimensions equal to half the stroke width.
	SquareCap
	// Rounded cap with radius equal to half the stroke width.
	RoundCap
)

func (c Cap) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return fmt.Sprintf("Cap(%d)", c)
	}
}

// StrokeStyle describes the visual style of a stroke.
type StrokeStyle struct {
	// Width of the stroke.
	Width float64
	// Style for connecting segments of the stroke.
	Join Join
	// Style for the ends of open outlines and dashes.
	Cap Cap
	// Limit for miter joins, as a multiple of half the width.
	MiterLimit float64
	// Lengths of dashes in alternating on/off order.
	DashArray []float64
	// Offset of the first dash.
	DashOffset float64
}

var DefaultStrokeStyle = StrokeStyle{
	Width:      1.0,
	Join:       MiterJoin,
	Cap:        ButtCap,
	MiterLimit: 4.0,
}

func (s StrokeStyle) WithWidth(width float64) StrokeStyle      { s.Width = width; return s }
func (s StrokeStyle) WithJoin(join Join) StrokeStyle           { s.Join = join; return s }
func (s StrokeStyle) WithMiterLimit(limit float64) StrokeStyle { s.MiterLimit = limit; return s }
func (s StrokeStyle) WithCap(cap Cap) StrokeStyle              { s.Cap = cap; return s }
func (s StrokeStyle) WithDashes(offset float64, pattern []float64) StrokeStyle {
	s.DashOffset, s.DashArray = offset, pattern
	return s
}

// Subdivisions of round joins and of round caps.
const (
	roundJoinSteps = 8
	roundCapSteps  = 16
)

// StrokeMesh is the triangulated area covered by a stroke. Every three
// vertices form a triangle. Triangles overlap and have no consistent
// orientation.
type StrokeMesh struct {
	Vertices []geom.Point
}

// Triangles returns the number of triangles.
func (m StrokeMesh) Triangles() int { return len(m.Vertices) / 3 }

// Triangle returns the vertices of the i-th triangle.
func (m StrokeMesh) Triangle(i int) (a, b, c geom.Point) {
	return m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]
}

// Bounds returns the bounding box of all vertices.
func (m StrokeMesh) Bounds() geom.Rect {
	r := geom.EmptyRect
	for _, v := range m.Vertices {
		r = r.UnionPoint(v)
	}
	return r
}

// TriangulateStroke triangulates the stroke of contours with the given
// style.
//
// The stroke is built in stroke space: contour points are mapped by m, the
// stroke is triangulated with uniform width, and the triangles are mapped
// back by the inverse of m. Passing the absolute transform of a path thus
// yields a stroke of uniform width on screen, regardless of scaling. An
// invertible m is required; otherwise the mesh is empty.
func TriangulateStroke(contours []Contour, style StrokeStyle, m geom.Affine) StrokeMesh {
	if !(style.Width > 0) {
		return StrokeMesh{}
	}
	inv, ok := m.Invert()
	if !ok {
		Logger().Debug("singular stroke matrix, skipping stroke", "matrix", m.Coefficients())
		return StrokeMesh{}
	}
	t := triangulator{
		hw:    style.Width / 2,
		style: style,
	}
	dashes, phase, dashed := normalizeDashes(style.DashArray, style.DashOffset)
	for _, ct := range contours {
		pts := make([]geom.Point, len(ct.Points))
		for i, pt := range ct.Points {
			pts[i] = pt.Transform(m)
		}
		if dashed {
			t.dashed(pts, ct.Joins, ct.Closed, dashes, phase)
		} else {
			t.polyline(pts, ct.Joins, ct.Closed)
		}
	}
	if !m.IsIdentity() {
		for i, v := range t.out {
			t.out[i] = v.Transform(inv)
		}
	}
	return StrokeMesh{Vertices: t.out}
}

type triangulator struct {
	hw    float64
	style StrokeStyle
	out   []geom.Point
}

func (t *triangulator) tri(a, b, c geom.Point) {
	t.out = append(t.out, a, b, c)
}

// polyline strokes one open or closed polyline without dashes.
func (t *triangulator) polyline(pts []geom.Point, joins []bool, closed bool) {
	pts, joins = dedupe(pts, joins, closed)
	n := len(pts)
	if n == 0 {
		return
	}
	if n == 1 {
		t.dot(pts[0])
		return
	}
	if n == 2 && closed {
		closed = false
	}

	segs := n - 1
	if closed {
		segs = n
	}
	dir := func(i int) geom.Vec2 {
		return pts[(i+1)%n].Sub(pts[i]).Normalize()
	}

	var prevL, prevR geom.Point
	for i := range segs {
		p0, p1 := pts[i], pts[(i+1)%n]
		d := dir(i)
		nrm := d.Perp().Mul(t.hw)
		startL, startR := p0.Translate(nrm), p0.Translate(nrm.Negate())
		if i > 0 && !joins[i] {
			// Continue the strip through vertices introduced by flattening.
			startL, startR = prevL, prevR
		}
		endL, endR := p1.Translate(nrm), p1.Translate(nrm.Negate())
		t.tri(startL, endL, endR)
		t.tri(startL, endR, startR)
		prevL, prevR = endL, endR

		if i > 0 && joins[i] {
			t.join(p0, dir(i-1), d)
		}
	}

	if closed {
		t.join(pts[0], dir(n-1), dir(0))
		return
	}
	t.cap(pts[0], dir(0).Negate())
	t.cap(pts[n-1], dir(n-2))
}

// dedupe drops consecutive duplicate points, keeping the join flag of
// either. Closed polylines also lose a last point equal to the first.
func dedupe(pts []geom.Point, joins []bool, closed bool) ([]geom.Point, []bool) {
	clean := true
	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			clean = false
			break
		}
	}
	if clean && !(closed && len(pts) > 1 && pts[0] == pts[len(pts)-1]) {
		return pts, joins
	}
	outPts := make([]geom.Point, 0, len(pts))
	outJoins := make([]bool, 0, len(joins))
	for i, pt := range pts {
		if n := len(outPts); n > 0 && outPts[n-1] == pt {
			outJoins[n-1] = outJoins[n-1] || joins[i]
			continue
		}
		outPts = append(outPts, pt)
		outJoins = append(outJoins, joins[i])
	}
	if n := len(outPts); closed && n > 1 && outPts[0] == outPts[n-1] {
		outJoins[0] = outJoins[0] || outJoins[n-1]
		outPts, outJoins = outPts[:n-1], outJoins[:n-1]
	}
	return outPts, outJoins
}

// join emits the join at p between the unit directions dIn and dOut.
func (t *triangulator) join(p geom.Point, dIn, dOut geom.Vec2) {
	cross := dIn.Cross(dOut)
	dot := dIn.Dot(dOut)
	if math.Abs(cross) < 1e-12 && dot > 0 {
		return
	}
	// The outer side of the turn.
	side := 1.0
	if cross > 0 {
		side = -1
	}
	nIn := dIn.Perp().Mul(t.hw * side)
	nOut := dOut.Perp().Mul(t.hw * side)
	a := p.Translate(nIn)
	b := p.Translate(nOut)

	switch t.style.Join {
	case MiterJoin:
		if tip, ok := miterTip(p, dIn, dOut, t.hw, t.style.MiterLimit); ok {
			t.tri(p, a, tip)
			t.tri(p, tip, b)
			return
		}
	case RoundJoin:
		ang := math.Atan2(nIn.Cross(nOut), nIn.Dot(nOut))
		t.fan(p, nIn, ang, roundJoinSteps)
		return
	}
	t.tri(p, a, b)
}

// miterTip returns the tip of the miter join at p, or false if the miter
// exceeds limit or the directions reverse.
func miterTip(p geom.Point, dIn, dOut geom.Vec2, hw, limit float64) (geom.Point, bool) {
	cosHalf := math.Sqrt(max((1+dIn.Dot(dOut))/2, 0))
	if cosHalf < 1e-9 {
		return geom.Point{}, false
	}
	ratio := 1 / cosHalf
	if ratio > limit {
		return geom.Point{}, false
	}
	side := 1.0
	if dIn.Cross(dOut) > 0 {
		side = -1
	}
	bis := dIn.Perp().Add(dOut.Perp()).Normalize()
	return p.Translate(bis.Mul(side * hw * ratio)), true
}

// fan emits a fan of triangles around p, rotating v by ang in the given
// number of steps.
func (t *triangulator) fan(p geom.Point, v geom.Vec2, ang float64, steps int) {
	prev := p.Translate(v)
	for k := 1; k <= steps; k++ {
		next := p.Translate(v.Rotate(ang * float64(k) / float64(steps)))
		t.tri(p, prev, next)
		prev = next
	}
}

// cap emits the cap at the end p of a polyline, with d the unit direction
// pointing away from the polyline.
func (t *triangulator) cap(p geom.Point, d geom.Vec2) {
	nrm := d.Perp().Mul(t.hw)
	switch t.style.Cap {
	case SquareCap:
		ext := d.Mul(t.hw)
		a := p.Translate(nrm)
		b := p.Translate(nrm.Negate())
		t.tri(a, a.Translate(ext), b.Translate(ext))
		t.tri(a, b.Translate(ext), b)
	case RoundCap:
		t.fan(p, nrm, -math.Pi, roundCapSteps)
	}
}

// dot draws a zero-length stroke, which only has caps.
func (t *triangulator) dot(p geom.Point) {
	t.cap(p, geom.Vec(1, 0))
	t.cap(p, geom.Vec(-1, 0))
}

// StrokeStyle returns the path's resolved stroke style.
func (p *Path) StrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      p.StrokeWidth(),
		Join:       p.StrokeJoin(),
		Cap:        p.StrokeCap(),
		MiterLimit: p.MiterLimit(),
		DashArray:  p.DashArray(),
		DashOffset: p.DashOffset(),
	}
}

// StrokeMatrix returns the matrix that maps the path's coordinates into
// stroke space: the identity if the stroke scales with the path, and the
// absolute transform otherwise.
func (p *Path) StrokeMatrix() geom.Affine {
	if p.ScaleStroke() {
		return geom.Identity
	}
	return p.AbsoluteTransform()
}

// StrokeMesh returns the triangulated stroke of the path and its compound
// children, in the path's coordinate space. Paths without a stroke paint
// have an empty mesh. The result is cached.
func (p *Path) StrokeMesh() StrokeMesh {
	m := p.StrokeMatrix()
	if p.meshMatrix != m {
		p.strokeMesh.invalidate()
	}
	return p.strokeMesh.get(func() StrokeMesh {
		p.meshMatrix = m
		if p.destroyed || p.Stroke().IsNone() {
			return StrokeMesh{}
		}
		return TriangulateStroke(p.Contours(), p.StrokeStyle(), m)
	})
}

// hasStroke reports whether the path draws a stroke.
func (p *Path) hasStroke() bool {
	return !p.Stroke().IsNone() && p.StrokeWidth() > 0
}
