package paper

import (
	"math"

	"honnef.co/go/paper/geom"
)

// unitEllipse is the unit circle as four segments, left, top, right and
// bottom, running clockwise on screen.
var unitEllipse = [4]Segment{
	{point: geom.Pt(-1, 0), handleIn: geom.Vec(0, geom.Kappa), handleOut: geom.Vec(0, -geom.Kappa)},
	{point: geom.Pt(0, -1), handleIn: geom.Vec(-geom.Kappa, 0), handleOut: geom.Vec(geom.Kappa, 0)},
	{point: geom.Pt(1, 0), handleIn: geom.Vec(0, -geom.Kappa), handleOut: geom.Vec(0, geom.Kappa)},
	{point: geom.Pt(0, 1), handleIn: geom.Vec(geom.Kappa, 0), handleOut: geom.Vec(-geom.Kappa, 0)},
}

// CreateCircle returns a closed circular path attached to the root.
func (doc *Document) CreateCircle(center geom.Point, radius float64) *Path {
	return doc.CreateEllipse(geom.Rect{
		X0: center.X - radius,
		Y0: center.Y - radius,
		X1: center.X + radius,
		Y1: center.Y + radius,
	})
}

// CreateEllipse returns a closed path attached to the root, tracing the
// ellipse inscribed in rect.
func (doc *Document) CreateEllipse(rect geom.Rect) *Path {
	c := rect.Center()
	r := geom.Vec(rect.Width()/2, rect.Height()/2)
	segs := make([]*Segment, len(unitEllipse))
	for i, u := range unitEllipse {
		segs[i] = &Segment{
			point:     geom.Pt(c.X+u.point.X*r.X, c.Y+u.point.Y*r.Y),
			handleIn:  geom.Vec(u.handleIn.X*r.X, u.handleIn.Y*r.Y),
			handleOut: geom.Vec(u.handleOut.X*r.X, u.handleOut.Y*r.Y),
		}
	}
	return doc.createClosed(segs)
}

// CreateRectangle returns a closed rectangular path attached to the root.
// The segments start at the bottom left corner and run clockwise on screen.
func (doc *Document) CreateRectangle(rect geom.Rect) *Path {
	rect = rect.Abs()
	return doc.createClosed([]*Segment{
		{point: geom.Pt(rect.X0, rect.Y1)},
		{point: geom.Pt(rect.X0, rect.Y0)},
		{point: geom.Pt(rect.X1, rect.Y0)},
		{point: geom.Pt(rect.X1, rect.Y1)},
	})
}

// CreateRoundedRectangle returns a closed rectangular path with elliptical
// corners attached to the root. The radii are limited to half the
// rectangle's size. Sides left without a straight part get no segments of
// their own.
func (doc *Document) CreateRoundedRectangle(rect geom.Rect, radius geom.Vec2) *Path {
	rect = rect.Abs()
	rx := min(math.Abs(radius.X), rect.Width()/2)
	ry := min(math.Abs(radius.Y), rect.Height()/2)
	if rx == 0 || ry == 0 {
		return doc.CreateRectangle(rect)
	}
	hx := rx * geom.Kappa
	hy := ry * geom.Kappa
	x0, y0, x1, y1 := rect.X0, rect.Y0, rect.X1, rect.Y1
	// Inner ends of the straight sides. They coincide when a radius spans
	// half the size.
	xl, xr := x0+rx, x1-rx
	if rx == rect.Width()/2 {
		xl, xr = rect.Center().X, rect.Center().X
	}
	yt, yb := y0+ry, y1-ry
	if ry == rect.Height()/2 {
		yt, yb = rect.Center().Y, rect.Center().Y
	}
	segs := []*Segment{
		{point: geom.Pt(xl, y1), handleOut: geom.Vec(-hx, 0)},
		{point: geom.Pt(x0, yb), handleIn: geom.Vec(0, hy)},
		{point: geom.Pt(x0, yt), handleOut: geom.Vec(0, -hy)},
		{point: geom.Pt(xl, y0), handleIn: geom.Vec(-hx, 0)},
		{point: geom.Pt(xr, y0), handleOut: geom.Vec(hx, 0)},
		{point: geom.Pt(x1, yt), handleIn: geom.Vec(0, -hy)},
		{point: geom.Pt(x1, yb), handleOut: geom.Vec(0, hy)},
		{point: geom.Pt(xr, y1), handleIn: geom.Vec(hx, 0)},
	}
	return doc.createClosed(mergeCoincident(segs))
}

// mergeCoincident joins consecutive segments of a closed outline that share
// their anchor, keeping the first one's incoming and the second one's
// outgoing handle.
func mergeCoincident(segs []*Segment) []*Segment {
	out := segs[:1]
	for _, s := range segs[1:] {
		if prev := out[len(out)-1]; prev.point == s.point {
			prev.handleOut = s.handleOut
			continue
		}
		out = append(out, s)
	}
	if n := len(out); n > 1 && out[n-1].point == out[0].point {
		out[0].handleIn = out[n-1].handleIn
		out = out[:n-1]
	}
	return out
}

// CreatePolygon returns a closed path with straight edges through points,
// attached to the root.
func (doc *Document) CreatePolygon(points ...geom.Point) *Path {
	segs := make([]*Segment, len(points))
	for i, pt := range points {
		segs[i] = &Segment{point: pt}
	}
	return doc.createClosed(segs)
}

// CreateRegularPolygon returns a closed path with sides edges of equal
// length, with its first corner straight above center.
func (doc *Document) CreateRegularPolygon(center geom.Point, sides int, radius float64) *Path {
	sides = max(sides, 3)
	pts := make([]geom.Point, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		v := geom.VecFromAngle(-math.Pi/2 + float64(i)*step).Mul(radius)
		pts[i] = center.Translate(v)
	}
	return doc.CreatePolygon(pts...)
}

func (doc *Document) createClosed(segs []*Segment) *Path {
	p := doc.newPath()
	p.segments = segs
	p.closed = true
	p.renumber(0)
	p.rebuildCurves()
	doc.attach(&p.Item)
	return p
}
