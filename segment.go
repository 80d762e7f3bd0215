package paper

import (
	"fmt"

	"honnef.co/go/paper/geom"
)

// Segment is an anchor point of a path together with its two handles. The
// handles are stored relative to the anchor.
type Segment struct {
	path      *Path
	index     int
	point     geom.Point
	handleIn  geom.Vec2
	handleOut geom.Vec2
}

func (s *Segment) String() string {
	return fmt.Sprintf("Segment{%s, in: %s, out: %s}", s.point, s.handleIn, s.handleOut)
}

// Path returns the path owning the segment, or nil once the segment has
// been removed.
func (s *Segment) Path() *Path { return s.path }

// Index returns the segment's position in its path.
func (s *Segment) Index() int { return s.index }

func (s *Segment) Position() geom.Point { return s.point }
func (s *Segment) HandleIn() geom.Vec2  { return s.handleIn }
func (s *Segment) HandleOut() geom.Vec2 { return s.handleOut }

// HasHandles reports whether either handle is non-zero.
func (s *Segment) HasHandles() bool {
	return !s.handleIn.IsZero() || !s.handleOut.IsZero()
}

// SetPosition moves the anchor. The handles move with it.
func (s *Segment) SetPosition(pt geom.Point) {
	if s.point == pt {
		return
	}
	s.point = pt
	s.changed()
}

func (s *Segment) SetHandleIn(v geom.Vec2) {
	if s.handleIn == v {
		return
	}
	s.handleIn = v
	s.changed()
}

func (s *Segment) SetHandleOut(v geom.Vec2) {
	if s.handleOut == v {
		return
	}
	s.handleOut = v
	s.changed()
}

func (s *Segment) changed() {
	if s.path != nil {
		s.path.segmentChanged(s)
	}
}

// Previous returns the previous segment, wrapping around in closed paths.
func (s *Segment) Previous() *Segment {
	if s.path == nil {
		return nil
	}
	segs := s.path.segments
	switch {
	case s.index > 0:
		return segs[s.index-1]
	case s.path.closed && len(segs) > 1:
		return segs[len(segs)-1]
	default:
		return nil
	}
}

// Next returns the next segment, wrapping around in closed paths.
func (s *Segment) Next() *Segment {
	if s.path == nil {
		return nil
	}
	segs := s.path.segments
	switch {
	case s.index < len(segs)-1:
		return segs[s.index+1]
	case s.path.closed && len(segs) > 1:
		return segs[0]
	default:
		return nil
	}
}

// Curve returns the curve starting at the segment, or nil for the last
// segment of an open path.
func (s *Segment) Curve() *Curve {
	if s.path == nil {
		return nil
	}
	return s.path.Curve(s.index)
}
