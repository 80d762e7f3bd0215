package paper

import (
	"fmt"
	"math"

	"honnef.co/go/paper/geom"
)

// geometricEpsilon is the tolerance for straightness and linearity tests.
const geometricEpsilon = 1e-7

// Curve is the cubic Bézier between two adjacent segments of a path. It
// holds no geometry of its own: its control points are derived from the
// two segments whenever they change.
type Curve struct {
	path       *Path
	index      int
	seg1, seg2 *Segment

	bez    cache[geom.CubicBez]
	length cache[float64]
	bounds cache[geom.Rect]
}

func (c *Curve) String() string {
	return fmt.Sprintf("Curve{%d: %v}", c.index, c.Bezier())
}

func (c *Curve) invalidate() {
	c.bez.invalidate()
	c.length.invalidate()
	c.bounds.invalidate()
}

// Path returns the owning path, or nil once the path's curves have been
// rebuilt.
func (c *Curve) Path() *Path { return c.path }

func (c *Curve) Index() int         { return c.index }
func (c *Curve) Segment1() *Segment { return c.seg1 }
func (c *Curve) Segment2() *Segment { return c.seg2 }

// Bezier returns the curve's control points.
func (c *Curve) Bezier() geom.CubicBez {
	return c.bez.get(func() geom.CubicBez {
		return geom.CubicBez{
			P0: c.seg1.point,
			P1: c.seg1.point.Translate(c.seg1.handleOut),
			P2: c.seg2.point.Translate(c.seg2.handleIn),
			P3: c.seg2.point,
		}
	})
}

// Length returns the curve's arc length.
func (c *Curve) Length() float64 {
	return c.length.get(func() float64 {
		bez := c.Bezier()
		if c.IsLinear() {
			return bez.P0.Distance(bez.P3)
		}
		return bez.Arclen(geom.DefaultAccuracy)
	})
}

// Bounds returns the curve's tight bounding box, in path coordinates.
func (c *Curve) Bounds() geom.Rect {
	return c.bounds.get(func() geom.Rect {
		return c.Bezier().BoundingBox()
	})
}

// IsLinear reports whether both handles are zero.
func (c *Curve) IsLinear() bool {
	return c.Bezier().IsLinear(geometricEpsilon)
}

// IsStraight reports whether the curve is a straight line, either because
// it is linear or because its handles lie on the chord.
func (c *Curve) IsStraight() bool {
	return c.Bezier().IsStraight(geometricEpsilon)
}

func (c *Curve) PositionAt(t float64) geom.Point { return c.Bezier().Eval(t) }
func (c *Curve) TangentAt(t float64) geom.Vec2   { return c.Bezier().Tangent(t) }
func (c *Curve) NormalAt(t float64) geom.Vec2    { return c.Bezier().Normal(t) }
func (c *Curve) CurvatureAt(t float64) float64   { return c.Bezier().Curvature(t) }

// ParameterAtOffset returns the parameter at the given arc length from the
// curve's start. Offsets are clamped to the curve's length.
func (c *Curve) ParameterAtOffset(offset float64) float64 {
	if offset <= 0 {
		return 0
	}
	l := c.Length()
	if offset >= l {
		return 1
	}
	return c.Bezier().SolveForArclen(offset, geom.DefaultAccuracy)
}

// ClosestParameter returns the parameter of the point on the curve closest
// to pt.
func (c *Curve) ClosestParameter(pt geom.Point) float64 {
	_, t := c.Bezier().Nearest(pt)
	return t
}

// DivideAt splits the curve at parameter t by inserting a new segment into
// the path. It returns the second of the two resulting curves, or nil if t
// isn't strictly inside the curve or the curve is detached.
func (c *Curve) DivideAt(t float64) *Curve {
	if c.path == nil || math.IsNaN(t) || t <= geom.Epsilon || t >= 1-geom.Epsilon {
		return nil
	}
	p := c.path
	if p.warnDestroyed("DivideAt") {
		return nil
	}
	left, right := c.Bezier().SubdivideAt(t)
	c.seg1.handleOut = left.P1.Sub(left.P0)
	c.seg2.handleIn = right.P2.Sub(right.P3)
	mid := &Segment{
		point:     left.P3,
		handleIn:  left.P2.Sub(left.P3),
		handleOut: right.P1.Sub(right.P0),
	}
	idx := c.index + 1
	p.insertSegments(idx, mid)
	return p.curves[idx]
}
