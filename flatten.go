package paper

import (
	"honnef.co/go/paper/geom"
)

// FlattenOptions controls how curves are approximated with lines.
type FlattenOptions struct {
	// Tolerance is the maximum distance between a curve and its
	// approximation.
	Tolerance float64
	// MaxDepth limits how often a curve is halved.
	MaxDepth int
}

// DefaultFlattenOptions are suitable for drawing at device resolution.
var DefaultFlattenOptions = FlattenOptions{
	Tolerance: 0.25,
	MaxDepth:  16,
}

// Contour is a flattened outline. Joins[i] reports whether Points[i] is an
// anchor point, and thus gets a stroke join, rather than a vertex
// introduced by flattening. The ends of open contours never get joins.
// Closed contours don't repeat their first point.
type Contour struct {
	Points []geom.Point
	Joins  []bool
	Closed bool
}

// loop is one closed or open chain of cubics, in a path's coordinate space.
type loop struct {
	curves []geom.CubicBez
	closed bool
	// start is the loop's first point, for loops without curves.
	start geom.Point
}

// loops returns the path's own outline and the outlines of its visible
// compound children, in the path's coordinate space.
func (p *Path) loops() []loop {
	var out []loop
	if l, ok := p.ownLoop(geom.Identity); ok {
		out = append(out, l)
	}
	for _, c := range p.children {
		cp := c.path
		if cp == nil || !c.Visible() {
			continue
		}
		if l, ok := cp.ownLoop(c.transform); ok {
			out = append(out, l)
		}
	}
	return out
}

func (p *Path) ownLoop(m geom.Affine) (loop, bool) {
	if len(p.segments) == 0 {
		return loop{}, false
	}
	l := loop{
		curves: make([]geom.CubicBez, len(p.curves)),
		closed: p.closed && len(p.curves) > 0,
		start:  p.segments[0].point.Transform(m),
	}
	for i, c := range p.curves {
		l.curves[i] = c.Bezier().Transform(m)
	}
	return l, true
}

// Contours returns the flattened outlines of the path and its compound
// children, in the path's coordinate space, using the document's flatten
// options. The result is cached and must not be modified.
func (p *Path) Contours() []Contour {
	return p.contours.get(func() []Contour {
		return p.Flatten(p.doc.flatten)
	})
}

// Flatten flattens the path and its compound children with the given
// options.
func (p *Path) Flatten(opts FlattenOptions) []Contour {
	loops := p.loops()
	out := make([]Contour, 0, len(loops))
	for _, l := range loops {
		out = append(out, flattenLoop(l, opts))
	}
	return out
}

func flattenLoop(l loop, opts FlattenOptions) Contour {
	var ct Contour
	add := func(pt geom.Point, join bool) {
		if n := len(ct.Points); n > 0 && ct.Points[n-1] == pt {
			ct.Joins[n-1] = ct.Joins[n-1] || join
			return
		}
		ct.Points = append(ct.Points, pt)
		ct.Joins = append(ct.Joins, join)
	}
	add(l.start, true)
	tol := opts.Tolerance
	if tol <= 0 {
		tol = DefaultFlattenOptions.Tolerance
	}
	flatness := 16 * tol * tol
	for _, c := range l.curves {
		flattenCubic(c, flatness, 0, opts.MaxDepth, add)
		ct.Joins[len(ct.Joins)-1] = true
	}

	n := len(ct.Points)
	if l.closed {
		ct.Closed = true
		if n > 1 && ct.Points[n-1] == ct.Points[0] {
			ct.Points = ct.Points[:n-1]
			ct.Joins = ct.Joins[:n-1]
		}
		ct.Joins[0] = true
	} else {
		ct.Joins[0] = false
		ct.Joins[n-1] = false
	}
	return ct
}

// flattenCubic emits the end points of the flat pieces of c, in order.
// Every emitted point but the last is a synthetic vertex.
func flattenCubic(c geom.CubicBez, flatness float64, depth, maxDepth int, emit func(geom.Point, bool)) {
	if depth >= maxDepth || c.IsStraight(geometricEpsilon) || isFlat(c, flatness) {
		emit(c.P3, false)
		return
	}
	left, right := c.Subdivide()
	flattenCubic(left, flatness, depth+1, maxDepth, emit)
	flattenCubic(right, flatness, depth+1, maxDepth, emit)
}

// isFlat compares the largest squared deviation of the handles from their
// positions on the chord against flatness, which is 16·tolerance².
func isFlat(c geom.CubicBez, flatness float64) bool {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - 2*c.P3.X - c.P0.X
	vy := 3*c.P2.Y - 2*c.P3.Y - c.P0.Y
	return max(ux*ux, vx*vx)+max(uy*uy, vy*vy) <= flatness
}
