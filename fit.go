package paper

import (
	"math"

	"honnef.co/go/paper/geom"
)

// FitSegment is a segment produced by [FitCurve].
type FitSegment struct {
	Point     geom.Point
	HandleIn  geom.Vec2
	HandleOut geom.Vec2
}

// maxReparameterizations bounds the Newton-Raphson refinement of a single
// fit before the range is split.
const maxReparameterizations = 4

// FitCurve fits a sequence of cubic Béziers through points, such that every
// point lies within tolerance of the result. It uses the least squares
// method described in [An Algorithm for Automatically Fitting Digitized
// Curves].
//
// Consecutive duplicate points are ignored. For closed inputs the fit wraps
// around: the result describes a closed path whose first segment is at
// points[0], with collinear handles.
//
// [An Algorithm for Automatically Fitting Digitized Curves]: https://dl.acm.org/doi/10.5555/90767.90941
func FitCurve(points []geom.Point, closed bool, tolerance float64) []FitSegment {
	pts := make([]geom.Point, 0, len(points)+2)
	for _, pt := range points {
		if n := len(pts); n == 0 || pts[n-1] != pt {
			pts = append(pts, pt)
		}
	}
	if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) == 0 {
		return nil
	}
	closed = closed && len(pts) > 2
	n := len(pts)
	var tan1, tan2 geom.Vec2
	if closed {
		// Fit once around, from the first point back to itself, with both
		// ends sharing the tangent through the first point's neighbours.
		// The loop is split in half up front, so that it always keeps at
		// least two segments.
		tan1 = pts[1].Sub(pts[n-1])
		tan2 = tan1.Negate()
		pts = append(pts, pts[0])
		n++
	} else if n > 1 {
		tan1 = pts[1].Sub(pts[0])
		tan2 = pts[n-2].Sub(pts[n-1])
	}

	f := fitter{
		points: pts,
		tol2:   tolerance * tolerance,
		out:    []FitSegment{{Point: pts[0]}},
	}
	switch {
	case closed:
		mid := (n - 1) / 2
		tanMid := pts[mid-1].Sub(pts[mid+1])
		f.fitCubic(0, mid, tan1, tanMid)
		f.fitCubic(mid, n-1, tanMid.Negate(), tan2)
	case n > 1:
		f.fitCubic(0, n-1, tan1, tan2)
	}
	if closed {
		end := f.out[len(f.out)-1]
		f.out = f.out[:len(f.out)-1]
		f.out[0].HandleIn = end.HandleIn
	}
	return f.out
}

type fitter struct {
	points []geom.Point
	tol2   float64
	out    []FitSegment
}

func (f *fitter) fitCubic(first, last int, tan1, tan2 geom.Vec2) {
	pts := f.points
	if last-first == 1 {
		pt1, pt2 := pts[first], pts[last]
		dist := pt1.Distance(pt2) / 3
		f.addCurve(geom.CubicBez{
			P0: pt1,
			P1: pt1.Translate(tan1.Normalize().Mul(dist)),
			P2: pt2.Translate(tan2.Normalize().Mul(dist)),
			P3: pt2,
		})
		return
	}

	u := f.chordLengthParameterize(first, last)
	maxError := max(f.tol2, f.tol2*f.tol2)
	inOrder := true
	split := first + (last-first)/2
	for range maxReparameterizations + 1 {
		c := f.generateBezier(first, last, u, tan1, tan2)
		errSq, idx := f.findMaxError(first, last, c, u)
		if errSq < f.tol2 && inOrder {
			f.addCurve(c)
			return
		}
		split = idx
		// Reparameterization won't rescue fits that are this bad.
		if errSq >= maxError {
			break
		}
		inOrder = f.reparameterize(first, last, u, c)
		maxError = errSq
	}

	tanCenter := pts[split-1].Sub(pts[split+1])
	f.fitCubic(first, split, tan1, tanCenter)
	f.fitCubic(split, last, tanCenter.Negate(), tan2)
}

func (f *fitter) addCurve(c geom.CubicBez) {
	prev := &f.out[len(f.out)-1]
	prev.HandleOut = c.P1.Sub(c.P0)
	f.out = append(f.out, FitSegment{Point: c.P3, HandleIn: c.P2.Sub(c.P3)})
}

// generateBezier solves for the handle lengths along tan1 and tan2 that
// minimize the squared distances of the points from the curve.
func (f *fitter) generateBezier(first, last int, u []float64, tan1, tan2 geom.Vec2) geom.CubicBez {
	const epsilon = 1e-12
	pts := f.points
	pt1, pt2 := pts[first], pts[last]
	t1n := tan1.Normalize()
	t2n := tan2.Normalize()

	var c00, c01, c11, x0, x1 float64
	for i := range last - first + 1 {
		ui := u[i]
		t := 1 - ui
		b := 3 * ui * t
		b0 := t * t * t
		b1 := b * t
		b2 := b * ui
		b3 := ui * ui * ui
		a1 := t1n.Mul(b1)
		a2 := t2n.Mul(b2)
		tmp := geom.Vec2(pts[first+i]).
			Sub(geom.Vec2(pt1).Mul(b0 + b1)).
			Sub(geom.Vec2(pt2).Mul(b2 + b3))
		c00 += a1.Dot(a1)
		c01 += a1.Dot(a2)
		c11 += a2.Dot(a2)
		x0 += a1.Dot(tmp)
		x1 += a2.Dot(tmp)
	}

	var alpha1, alpha2 float64
	if det := c00*c11 - c01*c01; math.Abs(det) > epsilon {
		alpha1 = (x0*c11 - x1*c01) / det
		alpha2 = (c00*x1 - c01*x0) / det
	} else {
		s0 := c00 + c01
		s1 := c01 + c11
		switch {
		case math.Abs(s0) > epsilon:
			alpha1 = x0 / s0
		case math.Abs(s1) > epsilon:
			alpha1 = x1 / s1
		}
		alpha2 = alpha1
	}

	segLength := pt1.Distance(pt2)
	eps := epsilon * segLength
	h1 := t1n.Mul(alpha1)
	h2 := t2n.Mul(alpha2)
	if alpha1 < eps || alpha2 < eps {
		// Degenerate system: fall back to a third of the chord.
		h1 = t1n.Mul(segLength / 3)
		h2 = t2n.Mul(segLength / 3)
	} else if line := pt2.Sub(pt1); h1.Dot(line)-h2.Dot(line) > segLength*segLength {
		// The handles overshoot each other.
		h1 = t1n.Mul(segLength / 3)
		h2 = t2n.Mul(segLength / 3)
	}
	return geom.CubicBez{P0: pt1, P1: pt1.Translate(h1), P2: pt2.Translate(h2), P3: pt2}
}

// reparameterize improves u with one Newton-Raphson step per point. It
// reports whether the parameters are still strictly increasing.
func (f *fitter) reparameterize(first, last int, u []float64, c geom.CubicBez) bool {
	for i := first; i <= last; i++ {
		u[i-first] = findRoot(c, f.points[i], u[i-first])
	}
	for i := 1; i < len(u); i++ {
		if u[i] <= u[i-1] {
			return false
		}
	}
	return true
}

// findRoot takes a Newton-Raphson step towards the parameter of the point
// on c closest to pt.
func findRoot(c geom.CubicBez, pt geom.Point, u float64) float64 {
	d := c.Eval(u).Sub(pt)
	d1 := c.Deriv(u)
	d2 := c.Deriv2(u)
	df := d1.Dot(d1) + d.Dot(d2)
	if math.Abs(df) < 1e-12 {
		return u
	}
	return u - d.Dot(d1)/df
}

func (f *fitter) chordLengthParameterize(first, last int) []float64 {
	u := make([]float64, last-first+1)
	for i := first + 1; i <= last; i++ {
		u[i-first] = u[i-first-1] + f.points[i].Distance(f.points[i-1])
	}
	total := u[last-first]
	for i := 1; i <= last-first; i++ {
		u[i] /= total
	}
	return u
}

// findMaxError returns the largest squared distance between an interior
// point and its position on c, and the index of that point.
func (f *fitter) findMaxError(first, last int, c geom.CubicBez, u []float64) (float64, int) {
	index := first + (last-first+1)/2
	index = min(max(index, first+1), last-1)
	maxDist := 0.0
	for i := first + 1; i < last; i++ {
		if d := c.Eval(u[i-first]).DistanceSquared(f.points[i]); d >= maxDist {
			maxDist = d
			index = i
		}
	}
	return maxDist, index
}
