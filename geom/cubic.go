package geom

import (
	"math"
	"sort"
)

// MaxExtrema is the maximum number of interior extrema a cubic Bézier can
// have, two per axis.
const MaxExtrema = 4

// DefaultAccuracy is a default value for methods that take an accuracy
// argument. It is suitable for general-purpose use, such as 2D graphics.
const DefaultAccuracy = 1e-6

// Epsilon is the tolerance used for parameter ranges and for the
// classification of degenerate handles.
const Epsilon = 1e-9

// CubicBez is a cubic Bézier curve defined by four control points.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// IsDegenerate reports whether all four control points coincide.
func (c CubicBez) IsDegenerate() bool {
	return c.P0 == c.P1 && c.P1 == c.P2 && c.P2 == c.P3
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (c CubicBez) Eval(t float64) Point {
	if c.IsDegenerate() {
		return c.P0
	}
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Differentiate returns the hodograph, the derivative curve.
func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

// Deriv returns the first derivative at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

// Deriv2 returns the second derivative at t.
func (c CubicBez) Deriv2(t float64) Vec2 {
	a := Vec2(c.P2).Sub(Vec2(c.P1).Mul(2)).Add(Vec2(c.P0))
	b := Vec2(c.P3).Sub(Vec2(c.P2).Mul(2)).Add(Vec2(c.P1))
	return a.Lerp(b, t).Mul(6)
}

// Tangent returns the unit tangent at t. Where the derivative vanishes, as
// it does at an end with a zero-length handle, the direction towards the
// next distinct control point is used instead. A fully degenerate curve has
// a zero tangent.
func (c CubicBez) Tangent(t float64) Vec2 {
	d := c.Deriv(t)
	if d.Hypot2() > 1e-24 {
		return d.Normalize()
	}
	d0, d1 := c.Tangents()
	if t < 0.5 {
		return d0.Normalize()
	}
	return d1.Normalize()
}

// Normal returns the unit tangent at t rotated by +90°.
func (c CubicBez) Normal(t float64) Vec2 {
	return c.Tangent(t).Perp()
}

// Curvature returns the signed curvature at t. It is zero where the first
// derivative vanishes.
func (c CubicBez) Curvature(t float64) float64 {
	d1 := c.Deriv(t)
	h := d1.Hypot()
	if h == 0 {
		return 0
	}
	return d1.Cross(c.Deriv2(t)) / (h * h * h)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.SubdivideAt(0.5)
}

// SubdivideAt splits the cubic at t using de Casteljau's algorithm. The two
// pieces join at Eval(t) and together trace the same curve.
func (c CubicBez) SubdivideAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// Arclen returns the arclength of a cubic Bézier segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		est += wi * (ddNorm2 / dNorm2)
	}
	if math.IsNaN(est) {
		// dNorm2 will be 0 as c approaches a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += math.Sqrt(2.25) * wi * (dpx + dmx)
	}
	return sum
}

// SolveForArclen solves for the parameter that has the given arc length from
// the start of the curve.
//
// This uses the ITP method, as provided by [SolveITP], measuring arc lengths
// of increasingly small pieces of the curve rather than repeatedly measuring
// from t=0.
func (c CubicBez) SolveForArclen(arclen float64, accuracy float64) float64 {
	if arclen <= 0.0 {
		return 0.0
	}
	totalArclen := c.Arclen(accuracy)
	if arclen >= totalArclen {
		return 1.0
	}
	tLast := 0.0
	arclenLast := 0.0
	epsilon := accuracy / totalArclen
	n := 1.0 - min(math.Ceil(math.Log2(epsilon)), 0.0)
	innerAccuracy := accuracy / n
	f := func(t float64) float64 {
		var rangeStart, rangeEnd, dir float64
		if t > tLast {
			rangeStart = tLast
			rangeEnd = t
			dir = 1.0
		} else {
			rangeStart = t
			rangeEnd = tLast
			dir = -1.0
		}
		arc := c.Subsegment(rangeStart, rangeEnd).Arclen(innerAccuracy)
		arclenLast += arc * dir
		tLast = t
		return arclenLast - arclen
	}
	return SolveITP(f, 0.0, 1.0, epsilon, 1, 0.2, -arclen, totalArclen-arclen)
}

// Extrema returns the parameters in (0, 1) at which x or y has a local
// extremum, in increasing order.
func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		roots, n := derivRoots(d0, d1, d2)
		for _, t := range roots[:n] {
			out[outN] = t
			outN++
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// YRoots returns the parameters in (0, 1) at which y′(t) = 0, in increasing
// order. Splitting the curve at these parameters yields y-monotonic pieces.
func (c CubicBez) YRoots() ([2]float64, int) {
	return derivRoots(c.P1.Y-c.P0.Y, c.P2.Y-c.P1.Y, c.P3.Y-c.P2.Y)
}

// derivRoots solves the derivative of a one-dimensional cubic, given as the
// differences of its control values, for roots strictly inside (0, 1).
func derivRoots(d0, d1, d2 float64) ([2]float64, int) {
	a := d0 - 2*d1 + d2
	b := 2 * (d1 - d0)
	roots, n := SolveQuadratic(d0, b, a)
	var out [2]float64
	var outN int
	for _, t := range roots[:n] {
		if t > Epsilon && t < 1.0-Epsilon {
			out[outN] = t
			outN++
		}
	}
	if outN == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out, outN
}

// BoundingBox returns the smallest axis-aligned rectangle that encloses the
// curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRectFromPoints(c.P0, c.P3)
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// BoundingBoxPadded returns the bounding box grown by px horizontally and py
// vertically.
func (c CubicBez) BoundingBoxPadded(px, py float64) Rect {
	return c.BoundingBox().Inflate(px, py)
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

const (
	nearestSamples = 100
	nearestRounds  = 64
)

// Nearest returns the squared distance from pt to the closest point on the
// curve, and the parameter of that point.
//
// The search samples the curve uniformly and then refines the best sample by
// probing either side with a step that halves whenever neither side improves.
func (c CubicBez) Nearest(pt Point) (distSq, t float64) {
	best := math.Inf(1)
	bestT := 0.0
	for i := 0; i <= nearestSamples; i++ {
		u := float64(i) / nearestSamples
		if d := pt.DistanceSquared(c.Eval(u)); d < best {
			best = d
			bestT = u
		}
	}
	step := 1.0 / nearestSamples
	for i := 0; i < nearestRounds && step > 1e-8; i++ {
		improved := false
		for _, u := range [2]float64{bestT - step, bestT + step} {
			if u < 0 || u > 1 {
				continue
			}
			if d := pt.DistanceSquared(c.Eval(u)); d < best {
				best = d
				bestT = u
				improved = true
				break
			}
		}
		if !improved {
			step *= 0.5
		}
	}
	return best, bestT
}

// SolveX returns the parameters in [0, 1] at which the curve's x coordinate
// equals x.
func (c CubicBez) SolveX(x float64) ([3]float64, int) {
	return solveCoord(c.P0.X-x, c.P1.X-x, c.P2.X-x, c.P3.X-x)
}

// SolveY returns the parameters in [0, 1] at which the curve's y coordinate
// equals y.
func (c CubicBez) SolveY(y float64) ([3]float64, int) {
	return solveCoord(c.P0.Y-y, c.P1.Y-y, c.P2.Y-y, c.P3.Y-y)
}

func solveCoord(v0, v1, v2, v3 float64) ([3]float64, int) {
	c0, c1, c2, c3 := cubicBezCoefficients(v0, v1, v2, v3)
	roots, n := SolveCubic(c0, c1, c2, c3)
	var out [3]float64
	var outN int
	for _, t := range roots[:n] {
		if t >= -Epsilon && t <= 1+Epsilon && !math.IsNaN(t) {
			out[outN] = min(max(t, 0), 1)
			outN++
		}
	}
	sort.Float64s(out[:outN])
	return out, outN
}

// SolveMonotonicY returns the parameter at which a y-monotonic curve reaches
// y. The closed-form cubic solution is tried first; if rounding leaves it
// without a root in range, the answer is bracketed with [SolveITP]. Targets
// outside the curve's y range clamp to the nearer end.
func (c CubicBez) SolveMonotonicY(y float64) float64 {
	if y == c.P0.Y {
		return 0
	}
	if y == c.P3.Y {
		return 1
	}
	if roots, n := c.SolveY(y); n > 0 {
		return roots[0]
	}
	ya := c.P0.Y - y
	yb := c.P3.Y - y
	sign := 1.0
	if ya > 0 {
		sign = -1
	}
	ya *= sign
	yb *= sign
	if yb < 0 {
		return 1
	}
	f := func(t float64) float64 { return sign * (c.Eval(t).Y - y) }
	return SolveITP(f, 0, 1, 1e-12, 1, 0.2, ya, yb)
}

// IsLinear reports whether both handles are within tol of their anchors.
func (c CubicBez) IsLinear(tol float64) bool {
	return c.P1.Near(c.P0, tol) && c.P2.Near(c.P3, tol)
}

// IsStraight reports whether the curve is a straight line: either both
// handles are zero, or both lie on the chord (within tol) and project into
// it, so that the curve never leaves the segment between its end points.
func (c CubicBez) IsStraight(tol float64) bool {
	h1 := c.P1.Sub(c.P0)
	h2 := c.P2.Sub(c.P3)
	if h1.Hypot2() <= tol*tol && h2.Hypot2() <= tol*tol {
		return true
	}
	v := c.P3.Sub(c.P0)
	div := v.Dot(v)
	if div == 0 {
		return false
	}
	chord := Line{c.P0, c.P3}
	if chord.Distance(c.P1) > tol || chord.Distance(c.P2) > tol {
		return false
	}
	s1 := v.Dot(h1) / div
	s2 := v.Dot(h2) / div
	return s1 >= 0 && s1 <= 1 && s2 <= 0 && s2 >= -1
}

// SignedArea returns the signed area under the curve, as used by Green's
// theorem. Summed over a closed path it yields the enclosed area, positive
// for paths that are clockwise in a y-down space.
func (c CubicBez) SignedArea() float64 {
	v := c.P0.X*(6.0*c.P1.Y+3.0*c.P2.Y+c.P3.Y) +
		3.0*(c.P1.X*(-2.0*c.P0.Y+c.P2.Y+c.P3.Y)-c.P2.X*(c.P0.Y+c.P1.Y-2.0*c.P3.Y)) -
		c.P3.X*(c.P0.Y+3.0*c.P1.Y+6.0*c.P2.Y)
	return v * (1.0 / 20.0)
}

// Tangents returns the (unnormalized) directions at the start and the end,
// skipping over coincident control points.
func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}
