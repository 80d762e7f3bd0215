package paper

import (
	"slices"

	"honnef.co/go/paper/geom"
)

// Path is an item drawn as an outline of cubic Bézier curves.
//
// Paths whose children are paths are compound paths: the children's
// outlines are filled and stroked as part of the parent, and aren't drawn
// on their own.
type Path struct {
	Item

	segments []*Segment
	curves   []*Curve
	closed   bool

	length     cache[float64]
	area       cache[float64]
	contours   cache[[]Contour]
	winding    cache[*WindingContext]
	fillFan    cache[[]geom.Point]
	strokeMesh cache[StrokeMesh]
	// meshMatrix is the stroke matrix strokeMesh was built with.
	meshMatrix geom.Affine
}

// Segments returns the path's segments. The returned slice must not be
// modified.
func (p *Path) Segments() []*Segment { return p.segments }

func (p *Path) SegmentCount() int { return len(p.segments) }

// Segment returns the i-th segment, or nil if i is out of range.
func (p *Path) Segment(i int) *Segment {
	if i < 0 || i >= len(p.segments) {
		return nil
	}
	return p.segments[i]
}

// FirstSegment returns the first segment, or nil for an empty path.
func (p *Path) FirstSegment() *Segment { return p.Segment(0) }

// LastSegment returns the last segment, or nil for an empty path.
func (p *Path) LastSegment() *Segment { return p.Segment(len(p.segments) - 1) }

// Curves returns the path's curves. An open path with n segments has n-1
// curves, a closed one has n. The returned slice must not be modified.
func (p *Path) Curves() []*Curve { return p.curves }

func (p *Path) CurveCount() int { return len(p.curves) }

// Curve returns the i-th curve, or nil if i is out of range.
func (p *Path) Curve(i int) *Curve {
	if i < 0 || i >= len(p.curves) {
		return nil
	}
	return p.curves[i]
}

func (p *Path) IsClosed() bool { return p.closed }

// SetClosed opens or closes the path without touching its segments. A
// closed path has an additional curve from its last segment to its first.
func (p *Path) SetClosed(closed bool) {
	if p.warnDestroyed("SetClosed") || p.closed == closed {
		return
	}
	p.closed = closed
	p.rebuildCurves()
	p.geometryChanged()
}

// AddSegment appends a segment and returns it.
func (p *Path) AddSegment(pt geom.Point, handleIn, handleOut geom.Vec2) *Segment {
	s := &Segment{point: pt, handleIn: handleIn, handleOut: handleOut}
	if !p.insertSegments(len(p.segments), s) {
		return nil
	}
	return s
}

// AddSegments appends segments built from fits, as returned by [FitCurve].
func (p *Path) AddSegments(fits ...FitSegment) {
	segs := make([]*Segment, len(fits))
	for i, f := range fits {
		segs[i] = &Segment{point: f.Point, handleIn: f.HandleIn, handleOut: f.HandleOut}
	}
	p.insertSegments(len(p.segments), segs...)
}

// AddPoint appends a segment without handles and returns it.
func (p *Path) AddPoint(pt geom.Point) *Segment {
	return p.AddSegment(pt, geom.Vec2{}, geom.Vec2{})
}

// InsertSegment inserts a segment at index i. It reports false if i is out
// of range.
func (p *Path) InsertSegment(i int, pt geom.Point, handleIn, handleOut geom.Vec2) (*Segment, bool) {
	if i < 0 || i > len(p.segments) {
		return nil, false
	}
	s := &Segment{point: pt, handleIn: handleIn, handleOut: handleOut}
	if !p.insertSegments(i, s) {
		return nil, false
	}
	return s, true
}

// RemoveSegment removes the i-th segment. It reports false if i is out of
// range.
func (p *Path) RemoveSegment(i int) bool {
	if i < 0 || i >= len(p.segments) {
		return false
	}
	return p.RemoveSegments(i, i+1) == 1
}

// RemoveSegments removes the segments in [from, to), clamped to the valid
// range, and returns how many were removed.
func (p *Path) RemoveSegments(from, to int) int {
	if p.warnDestroyed("RemoveSegments") {
		return 0
	}
	from = max(from, 0)
	to = min(to, len(p.segments))
	if from >= to {
		return 0
	}
	for _, s := range p.segments[from:to] {
		s.path = nil
	}
	p.segments = slices.Delete(p.segments, from, to)
	p.renumber(from)
	p.rebuildCurves()
	p.geometryChanged()
	return to - from
}

// Clear removes all segments.
func (p *Path) Clear() {
	p.RemoveSegments(0, len(p.segments))
}

func (p *Path) insertSegments(i int, segs ...*Segment) bool {
	if p.warnDestroyed("InsertSegment") {
		return false
	}
	if len(segs) == 0 {
		return true
	}
	for _, s := range segs {
		s.path = p
	}
	p.segments = slices.Insert(p.segments, i, segs...)
	p.renumber(i)
	p.rebuildCurves()
	p.geometryChanged()
	return true
}

func (p *Path) renumber(from int) {
	for i := from; i < len(p.segments); i++ {
		p.segments[i].index = i
		p.segments[i].path = p
	}
}

// rebuildCurves regenerates the curve list from the segments. Old curves
// are detached.
func (p *Path) rebuildCurves() {
	for _, c := range p.curves {
		c.path = nil
	}
	n := len(p.segments)
	count := max(n-1, 0)
	if p.closed && n > 1 {
		count = n
	}
	curves := make([]*Curve, count)
	for i := range curves {
		curves[i] = &Curve{
			path:  p,
			index: i,
			seg1:  p.segments[i],
			seg2:  p.segments[(i+1)%n],
		}
	}
	p.curves = curves
}

// segmentChanged updates the path after one of its segments moved or had
// its handles changed. Only the curves touching the segment are dirtied.
func (p *Path) segmentChanged(s *Segment) {
	if c := p.Curve(s.index); c != nil {
		c.invalidate()
	}
	prev := s.index - 1
	if prev < 0 && p.closed {
		prev = len(p.segments) - 1
	}
	if c := p.Curve(prev); c != nil {
		c.invalidate()
	}
	p.geometryChanged()
}

// geometryChanged dirties everything derived from the path's own geometry,
// and the bounds of every ancestor.
func (p *Path) geometryChanged() {
	p.length.invalidate()
	p.invalidateCompound()
	p.invalidateBounds()
	p.invalidateAncestors()
}

// invalidateCompound dirties the caches that combine the path's own outline
// with those of its compound children.
func (p *Path) invalidateCompound() {
	p.area.invalidate()
	p.contours.invalidate()
	p.winding.invalidate()
	p.fillFan.invalidate()
	p.strokeMesh.invalidate()
}

// invalidateGeometry dirties all of the path's derived geometry, including
// that of its curves.
func (p *Path) invalidateGeometry() {
	p.length.invalidate()
	p.invalidateCompound()
	for _, c := range p.curves {
		c.invalidate()
	}
}

func (p *Path) transformSegments(m geom.Affine) {
	for _, s := range p.segments {
		s.point = s.point.Transform(m)
		s.handleIn = s.handleIn.Transform(m)
		s.handleOut = s.handleOut.Transform(m)
	}
	p.invalidateGeometry()
	p.geometryChanged()
}

// Reverse reverses the order of the segments, swapping each segment's
// handles so the outline stays the same.
func (p *Path) Reverse() {
	if p.warnDestroyed("Reverse") || len(p.segments) < 2 {
		return
	}
	slices.Reverse(p.segments)
	for _, s := range p.segments {
		s.handleIn, s.handleOut = s.handleOut, s.handleIn
	}
	p.renumber(0)
	p.rebuildCurves()
	p.geometryChanged()
}

// Close closes the path using the document's close tolerance. See
// [Path.ClosePath].
func (p *Path) Close() {
	p.ClosePath(p.doc.closeTol)
}

// ClosePath closes the path. If the last anchor lies within tol of the
// first, the last segment is merged into the first, which takes over its
// incoming handle. Otherwise a closing curve is added. Closing a closed path
// does nothing.
func (p *Path) ClosePath(tol float64) {
	if p.warnDestroyed("ClosePath") || p.closed {
		return
	}
	n := len(p.segments)
	if n > 1 {
		first, last := p.segments[0], p.segments[n-1]
		if first.point.Near(last.point, tol) {
			first.handleIn = last.handleIn
			last.path = nil
			p.segments = p.segments[:n-1]
		}
	}
	p.closed = true
	p.rebuildCurves()
	p.geometryChanged()
}

// Length returns the total arc length of the path's curves.
func (p *Path) Length() float64 {
	return p.length.get(func() float64 {
		var l float64
		for _, c := range p.curves {
			l += c.Length()
		}
		return l
	})
}

// Area returns the signed area enclosed by the path, including the areas of
// its compound children. Open paths are treated as if closed by a straight
// line. The area is positive for clockwise outlines.
func (p *Path) Area() float64 {
	return p.area.get(func() float64 {
		a := p.ownArea()
		for _, c := range p.children {
			if c.path != nil {
				a += c.path.Area() * c.transform.Determinant()
			}
		}
		return a
	})
}

func (p *Path) ownArea() float64 {
	var a float64
	for _, c := range p.curves {
		a += c.Bezier().SignedArea()
	}
	if !p.closed && len(p.curves) > 0 {
		last := p.segments[len(p.segments)-1].point
		a += geom.Line{P0: last, P1: p.segments[0].point}.Cubic().SignedArea()
	}
	return a
}

// IsClockwise reports whether the path's own outline runs clockwise.
func (p *Path) IsClockwise() bool {
	return p.ownArea() > 0
}

// SetClockwise reverses the path if needed so that it runs in the given
// direction.
func (p *Path) SetClockwise(cw bool) {
	if p.IsClockwise() != cw {
		p.Reverse()
	}
}

// IsPolygon reports whether no segment has handles.
func (p *Path) IsPolygon() bool {
	for _, s := range p.segments {
		if s.HasHandles() {
			return false
		}
	}
	return true
}

// CurveLocation is a point on a path.
type CurveLocation struct {
	Curve     *Curve
	Parameter float64
	Point     geom.Point
	// Distance is the distance between the queried point and Point.
	Distance float64
}

// location maps an offset along the path to a curve and a parameter.
func (p *Path) location(offset float64) (*Curve, float64, bool) {
	if len(p.curves) == 0 {
		return nil, 0, false
	}
	for _, c := range p.curves {
		l := c.Length()
		if offset <= l {
			return c, c.ParameterAtOffset(offset), true
		}
		offset -= l
	}
	return p.curves[len(p.curves)-1], 1, true
}

// PositionAt returns the point at the given arc length from the path's
// start. It reports false for paths without curves.
func (p *Path) PositionAt(offset float64) (geom.Point, bool) {
	c, t, ok := p.location(offset)
	if !ok {
		return geom.Point{}, false
	}
	return c.PositionAt(t), true
}

// TangentAt returns the unit tangent at the given arc length from the
// path's start. It reports false for paths without curves.
func (p *Path) TangentAt(offset float64) (geom.Vec2, bool) {
	c, t, ok := p.location(offset)
	if !ok {
		return geom.Vec2{}, false
	}
	return c.TangentAt(t), true
}

// ClosestLocation returns the location on the path's curves closest to pt.
// It reports false for paths without curves.
func (p *Path) ClosestLocation(pt geom.Point) (CurveLocation, bool) {
	best := CurveLocation{Distance: -1}
	for _, c := range p.curves {
		d2, t := c.Bezier().Nearest(pt)
		if best.Distance < 0 || d2 < best.Distance {
			best = CurveLocation{Curve: c, Parameter: t, Distance: d2}
		}
	}
	if best.Curve == nil {
		return CurveLocation{}, false
	}
	best.Point = best.Curve.PositionAt(best.Parameter)
	best.Distance = pt.Distance(best.Point)
	return best, true
}

// DivideAt divides the curve with index curveIndex at parameter t. See
// [Curve.DivideAt].
func (p *Path) DivideAt(curveIndex int, t float64) *Curve {
	c := p.Curve(curveIndex)
	if c == nil {
		return nil
	}
	return c.DivideAt(t)
}

// Smooth sets every segment's handles so the path passes smoothly through
// its anchors. Each segment's handles are parallel to the line between its
// neighbours, one sixth of that line long. The ends of open paths use
// themselves as missing neighbours.
func (p *Path) Smooth() {
	if p.warnDestroyed("Smooth") || len(p.segments) < 2 {
		return
	}
	n := len(p.segments)
	pts := make([]geom.Point, n)
	for i, s := range p.segments {
		pts[i] = s.point
	}
	for i, s := range p.segments {
		prev, next := i-1, i+1
		if p.closed {
			prev = (prev + n) % n
			next %= n
		} else {
			prev = max(prev, 0)
			next = min(next, n-1)
		}
		d := pts[next].Sub(pts[prev]).Mul(1.0 / 6.0)
		s.handleIn = d.Negate()
		s.handleOut = d
	}
	p.invalidateGeometry()
	p.geometryChanged()
}

// Simplify replaces the path's segments with the fewest curves that pass
// within tol of all of its anchors.
func (p *Path) Simplify(tol float64) {
	if p.warnDestroyed("Simplify") || len(p.segments) < 3 {
		return
	}
	pts := make([]geom.Point, len(p.segments))
	for i, s := range p.segments {
		pts[i] = s.point
	}
	fits := FitCurve(pts, p.closed, tol)
	for _, s := range p.segments {
		s.path = nil
	}
	segs := make([]*Segment, len(fits))
	for i, f := range fits {
		segs[i] = &Segment{point: f.Point, handleIn: f.HandleIn, handleOut: f.HandleOut}
	}
	p.segments = segs
	p.renumber(0)
	p.rebuildCurves()
	p.geometryChanged()
}
