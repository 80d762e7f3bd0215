package paper

import (
	"math"

	"honnef.co/go/paper/geom"
)

// current returns the last anchor, which relative commands are based on.
func (p *Path) current() (geom.Point, bool) {
	if p.destroyed || len(p.segments) == 0 {
		return geom.Point{}, false
	}
	return p.segments[len(p.segments)-1].point, true
}

// startCurve returns the anchor a curve command starts from. For empty
// paths it adds to as the first anchor instead and reports false.
func (p *Path) startCurve(op string, to geom.Point) (*Segment, bool) {
	if p.warnDestroyed(op) {
		return nil, false
	}
	if len(p.segments) == 0 {
		Logger().Debug("curve command on empty path, adding end point", "op", op, "path", p.id)
		p.AddPoint(to)
		return nil, false
	}
	return p.segments[len(p.segments)-1], true
}

// LineTo adds a straight line to pt.
func (p *Path) LineTo(pt geom.Point) {
	p.AddPoint(pt)
}

// CubicCurveTo adds a cubic Bézier with control points h1 and h2, in
// absolute coordinates, ending at to.
func (p *Path) CubicCurveTo(h1, h2, to geom.Point) {
	last, ok := p.startCurve("CubicCurveTo", to)
	if !ok {
		return
	}
	last.handleOut = h1.Sub(last.point)
	p.insertSegments(len(p.segments), &Segment{point: to, handleIn: h2.Sub(to)})
}

// QuadraticCurveTo adds a quadratic Bézier with control point h, ending at
// to. It is stored as the equivalent cubic.
func (p *Path) QuadraticCurveTo(h, to geom.Point) {
	cur, ok := p.current()
	if !ok {
		p.startCurve("QuadraticCurveTo", to)
		return
	}
	c := geom.QuadBez{P0: cur, P1: h, P2: to}.Raise()
	p.CubicCurveTo(c.P1, c.P2, c.P3)
}

// CurveTo adds a curve that passes through through at parameter t and ends
// at to. The curve is the quadratic Bézier meeting both points. t must lie
// strictly between 0 and 1; 0.5 is the usual choice.
func (p *Path) CurveTo(through, to geom.Point, t float64) error {
	if !(t > 0 && t < 1) {
		return ErrInvalidCurveParameter
	}
	cur, ok := p.current()
	if !ok {
		p.startCurve("CurveTo", to)
		return nil
	}
	t1 := 1 - t
	f := 1 / (2 * t * t1)
	h := geom.Pt(
		(through.X-cur.X*t1*t1-to.X*t*t)*f,
		(through.Y-cur.Y*t1*t1-to.Y*t*t)*f,
	)
	p.QuadraticCurveTo(h, to)
	return nil
}

// ArcTo adds a circular arc from the current point through through to to.
//
// If the three points lie on a line and through lies between the other
// two, a straight line is added. If they lie on a line otherwise, no
// circle passes through them and ArcTo returns [ErrInvalidArc] without
// changing the path.
func (p *Path) ArcTo(through, to geom.Point) error {
	from, ok := p.current()
	if !ok {
		p.startCurve("ArcTo", to)
		return nil
	}
	l1 := bisector(from, through)
	l2 := bisector(through, to)
	center, ok := l1.CrossingPoint(l2)
	if !ok || center.IsNaN() || center.IsInf() {
		chord := to.Sub(from)
		if d := chord.Hypot2(); d > 0 {
			if s := through.Sub(from).Dot(chord) / d; s >= 0 && s <= 1 {
				Logger().Debug("arc through colinear points, adding line", "path", p.id)
				p.AddPoint(to)
				return nil
			}
		}
		return ErrInvalidArc
	}

	v0 := from.Sub(center)
	a0 := v0.Angle()
	d1 := normalizeAngle(through.Sub(center).Angle() - a0)
	d2 := normalizeAngle(to.Sub(center).Angle() - a0)
	sweep := d2
	if d1 > d2 {
		// through lies on the other way around.
		sweep = d2 - 2*math.Pi
	}
	p.addArc(center, v0, sweep, to)
	return nil
}

// addArc appends a circular arc around center, starting at center+v and
// sweeping the given angle, as one cubic per started quarter turn. The last
// anchor is placed exactly at end.
func (p *Path) addArc(center geom.Point, v geom.Vec2, sweep float64, end geom.Point) {
	const epsilon = 1e-7
	ext := math.Abs(sweep)
	count := 4
	if ext < 2*math.Pi {
		count = max(int(math.Ceil((ext-epsilon)/(math.Pi/2))), 1)
	}
	inc := sweep / float64(count)
	z := 4.0 / 3.0 * math.Tan(inc/4)

	last := p.segments[len(p.segments)-1]
	last.handleOut = v.Perp().Mul(z)
	segs := make([]*Segment, count)
	for i := range segs {
		v = v.Rotate(inc)
		pt := center.Translate(v)
		if i == count-1 {
			pt = end
		}
		segs[i] = &Segment{point: pt, handleIn: v.Perp().Mul(-z)}
		if i < count-1 {
			segs[i].handleOut = v.Perp().Mul(z)
		}
	}
	p.insertSegments(len(p.segments), segs...)
}

func bisector(a, b geom.Point) geom.Line {
	mid := a.Midpoint(b)
	return geom.Line{P0: mid, P1: mid.Translate(b.Sub(a).Perp())}
}

// normalizeAngle maps th into [0, 2π).
func normalizeAngle(th float64) float64 {
	th = math.Mod(th, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// ArcToPoint adds a half circle from the current point to to, clockwise or
// counter-clockwise on screen.
func (p *Path) ArcToPoint(to geom.Point, clockwise bool) error {
	from, ok := p.current()
	if !ok {
		p.startCurve("ArcToPoint", to)
		return nil
	}
	mid := from.Midpoint(to)
	off := mid.Sub(from).Perp()
	if clockwise {
		off = off.Negate()
	}
	return p.ArcTo(mid.Translate(off), to)
}

// SVGArcTo adds an elliptical arc as described by the SVG path command of
// the same name. Arcs that degenerate, such as those with a zero radius,
// are added as straight lines.
func (p *Path) SVGArcTo(radii geom.Vec2, xRotation float64, largeArc, sweep bool, to geom.Point) {
	from, ok := p.current()
	if !ok {
		p.startCurve("SVGArcTo", to)
		return
	}
	arc, ok := geom.ArcFromSVG(from, to, radii, xRotation, largeArc, sweep)
	if !ok {
		p.AddPoint(to)
		return
	}
	last := p.segments[len(p.segments)-1]
	var segs []*Segment
	for c := range arc.Cubics() {
		last.handleOut = c.P1.Sub(c.P0)
		last = &Segment{point: c.P3, handleIn: c.P2.Sub(c.P3)}
		segs = append(segs, last)
	}
	if n := len(segs); n > 0 {
		s := segs[n-1]
		s.handleIn = s.point.Translate(s.handleIn).Sub(to)
		s.point = to
	}
	p.insertSegments(len(p.segments), segs...)
}

func (p *Path) relative(v geom.Vec2) geom.Point {
	cur, _ := p.current()
	return cur.Translate(v)
}

// LineBy adds a straight line to the current point offset by v.
func (p *Path) LineBy(v geom.Vec2) {
	p.LineTo(p.relative(v))
}

// CubicCurveBy is like [Path.CubicCurveTo], with all points relative to
// the current point.
func (p *Path) CubicCurveBy(h1, h2, to geom.Vec2) {
	p.CubicCurveTo(p.relative(h1), p.relative(h2), p.relative(to))
}

// QuadraticCurveBy is like [Path.QuadraticCurveTo], with all points
// relative to the current point.
func (p *Path) QuadraticCurveBy(h, to geom.Vec2) {
	p.QuadraticCurveTo(p.relative(h), p.relative(to))
}

// CurveBy is like [Path.CurveTo], with all points relative to the current
// point.
func (p *Path) CurveBy(through, to geom.Vec2, t float64) error {
	return p.CurveTo(p.relative(through), p.relative(to), t)
}

// ArcBy is like [Path.ArcTo], with all points relative to the current
// point.
func (p *Path) ArcBy(through, to geom.Vec2) error {
	return p.ArcTo(p.relative(through), p.relative(to))
}
