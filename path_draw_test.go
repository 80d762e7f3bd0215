package paper

import (
	"errors"
	"math"
	"testing"

	"honnef.co/go/paper/geom"
)

// checkArc verifies that the path's curves from index from on stay on the
// circle around center.
func checkArc(t *testing.T, p *Path, from int, center geom.Point, radius float64) {
	t.Helper()
	for _, c := range p.Curves()[from:] {
		for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
			if d := c.PositionAt(tt).Distance(center); math.Abs(d-radius) > 1e-3*radius {
				t.Fatalf("curve %d at %g is %g from the center, want %g", c.Index(), tt, d, radius)
			}
		}
	}
}

func TestArcTo(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath(geom.Pt(-1, 0))
	if err := p.ArcTo(geom.Pt(0, -1), geom.Pt(1, 0)); err != nil {
		t.Fatal(err)
	}
	checkCurves(t, p)
	diff(t, 3, p.SegmentCount())
	diff(t, geom.Pt(1, 0), p.LastSegment().Position())
	assertNear(t, p.Segment(1).Position(), geom.Pt(0, -1), 1e-12)
	checkArc(t, p, 0, geom.Point{}, 1)
	if !p.IsClockwise() {
		t.Error("arc over the top from left to right runs clockwise")
	}

	// The other way around.
	q := doc.CreatePath(geom.Pt(-1, 0))
	if err := q.ArcTo(geom.Pt(0, 1), geom.Pt(1, 0)); err != nil {
		t.Fatal(err)
	}
	assertNear(t, q.Segment(1).Position(), geom.Pt(0, 1), 1e-12)
	checkArc(t, q, 0, geom.Point{}, 1)

	// Three quarters of a circle.
	r := doc.CreatePath(geom.Pt(10, 0))
	if err := r.ArcTo(geom.Pt(0, 10), geom.Pt(0, -10)); err != nil {
		t.Fatal(err)
	}
	diff(t, 4, r.SegmentCount())
	checkArc(t, r, 0, geom.Point{}, 10)
	if l := r.Length(); math.Abs(l-1.5*math.Pi*10) > 0.05 {
		t.Errorf("arc length %g, want %g", l, 1.5*math.Pi*10)
	}
}

func TestArcToColinear(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath(geom.Pt(0, 0))
	if err := p.ArcTo(geom.Pt(5, 0), geom.Pt(10, 0)); err != nil {
		t.Fatal(err)
	}
	diff(t, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}, positions(p))
	if !p.Curve(0).IsLinear() {
		t.Error("colinear arc should be a line")
	}

	err := p.ArcTo(geom.Pt(30, 0), geom.Pt(20, 0))
	if !errors.Is(err, ErrInvalidArc) {
		t.Errorf("got %v, want %v", err, ErrInvalidArc)
	}
	diff(t, 2, p.SegmentCount())
}

func TestArcToPoint(t *testing.T) {
	doc := NewDocument()
	for _, cw := range []bool{true, false} {
		p := doc.CreatePath(geom.Pt(0, 0))
		if err := p.ArcToPoint(geom.Pt(10, 0), cw); err != nil {
			t.Fatal(err)
		}
		checkArc(t, p, 0, geom.Pt(5, 0), 5)
		want := geom.Pt(5, 5)
		if cw {
			want = geom.Pt(5, -5)
		}
		assertNear(t, p.Segment(1).Position(), want, 1e-12)
		diff(t, cw, p.IsClockwise())
	}
}

func TestSVGArcTo(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath(geom.Pt(0, 0))
	p.SVGArcTo(geom.Vec(5, 5), 0, false, true, geom.Pt(10, 0))
	diff(t, geom.Pt(10, 0), p.LastSegment().Position())
	checkArc(t, p, 0, geom.Pt(5, 0), 5)

	// Radii too small for the end points are scaled up.
	q := doc.CreatePath(geom.Pt(0, 0))
	q.SVGArcTo(geom.Vec(1, 1), 0, false, true, geom.Pt(10, 0))
	checkArc(t, q, 0, geom.Pt(5, 0), 5)

	r := doc.CreatePath(geom.Pt(0, 0))
	r.SVGArcTo(geom.Vec(0, 5), 0, false, true, geom.Pt(10, 0))
	diff(t, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}, positions(r))
}

func TestCurveTo(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath(geom.Pt(0, 0))
	if err := p.CurveTo(geom.Pt(5, 5), geom.Pt(10, 0), 0.5); err != nil {
		t.Fatal(err)
	}
	assertNear(t, p.Curve(0).PositionAt(0.5), geom.Pt(5, 5), 1e-9)

	if err := p.CurveTo(geom.Pt(12, 3), geom.Pt(20, 0), 0.25); err != nil {
		t.Fatal(err)
	}
	assertNear(t, p.Curve(1).PositionAt(0.25), geom.Pt(12, 3), 1e-9)

	for _, tt := range []float64{0, 1, -1, math.NaN()} {
		if err := p.CurveTo(geom.Pt(1, 1), geom.Pt(2, 2), tt); !errors.Is(err, ErrInvalidCurveParameter) {
			t.Errorf("t = %g: got %v", tt, err)
		}
	}
	diff(t, 3, p.SegmentCount())
}

func TestQuadraticCurveTo(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath(geom.Pt(0, 0))
	p.QuadraticCurveTo(geom.Pt(6, 12), geom.Pt(12, 0))
	diff(t, geom.Vec(4, 8), p.FirstSegment().HandleOut(), approx)
	diff(t, geom.Vec(-4, 8), p.LastSegment().HandleIn(), approx)
	q := geom.QuadBez{P0: geom.Pt(0, 0), P1: geom.Pt(6, 12), P2: geom.Pt(12, 0)}
	for _, tt := range []float64{0.1, 0.5, 0.9} {
		assertNear(t, p.Curve(0).PositionAt(tt), q.Eval(tt), 1e-9)
	}
}

func TestRelativeCommands(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath(geom.Pt(10, 10))
	p.LineBy(geom.Vec(5, 0))
	p.CubicCurveBy(geom.Vec(1, 1), geom.Vec(2, 1), geom.Vec(3, 0))
	p.QuadraticCurveBy(geom.Vec(1, 3), geom.Vec(3, 0))
	if err := p.CurveBy(geom.Vec(1, 1), geom.Vec(2, 0), 0.5); err != nil {
		t.Fatal(err)
	}
	if err := p.ArcBy(geom.Vec(1, -1), geom.Vec(2, 0)); err != nil {
		t.Fatal(err)
	}
	diff(t, []geom.Point{geom.Pt(10, 10), geom.Pt(15, 10), geom.Pt(18, 10), geom.Pt(21, 10), geom.Pt(23, 10), geom.Pt(24, 9), geom.Pt(25, 10)}, positions(p), approx)
	diff(t, geom.Vec(1, 1), p.Segment(1).HandleOut())
	diff(t, geom.Vec(-1, 1), p.Segment(2).HandleIn())
}

func TestCommandsOnEmptyPath(t *testing.T) {
	doc := NewDocument()
	for name, draw := range map[string]func(p *Path){
		"CubicCurveTo":     func(p *Path) { p.CubicCurveTo(geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3)) },
		"QuadraticCurveTo": func(p *Path) { p.QuadraticCurveTo(geom.Pt(1, 1), geom.Pt(3, 3)) },
		"CurveTo":          func(p *Path) { p.CurveTo(geom.Pt(1, 1), geom.Pt(3, 3), 0.5) },
		"ArcTo":            func(p *Path) { p.ArcTo(geom.Pt(1, 1), geom.Pt(3, 3)) },
		"ArcToPoint":       func(p *Path) { p.ArcToPoint(geom.Pt(3, 3), true) },
		"SVGArcTo":         func(p *Path) { p.SVGArcTo(geom.Vec(1, 1), 0, false, false, geom.Pt(3, 3)) },
		"LineBy":           func(p *Path) { p.LineBy(geom.Vec(3, 3)) },
	} {
		t.Run(name, func(t *testing.T) {
			p := doc.CreatePath()
			draw(p)
			diff(t, []geom.Point{geom.Pt(3, 3)}, positions(p))
		})
	}
}

func TestShapes(t *testing.T) {
	doc := NewDocument()
	rect := geom.NewRect(10, 20, 100, 50)

	rr := doc.CreateRoundedRectangle(rect, geom.Vec(10, 5))
	diff(t, 8, rr.SegmentCount())
	diff(t, rect, rr.Bounds(), approx)
	if !rr.IsClosed() || !rr.IsClockwise() {
		t.Error("rounded rectangle should be closed and clockwise")
	}
	diff(t, 4, doc.CreateRoundedRectangle(rect, geom.Vec(0, 5)).SegmentCount())
	// Radii are limited to half the size.
	huge := doc.CreateRoundedRectangle(rect, geom.Vec(1000, 1000))
	diff(t, rect, huge.Bounds(), approx)
	diff(t, 4, huge.SegmentCount())

	// Radii spanning half a side leave that side without a straight part.
	for _, tt := range []struct {
		radius geom.Vec2
		segs   int
	}{
		{geom.Vec(10, 25), 6},
		{geom.Vec(50, 5), 6},
		{geom.Vec(50, 25), 4},
	} {
		p := doc.CreateRoundedRectangle(rect, tt.radius)
		diff(t, tt.segs, p.SegmentCount())
		checkCurves(t, p)
		diff(t, rect, p.Bounds(), approx)
		for _, c := range p.Curves() {
			if c.Bezier().IsDegenerate() {
				t.Errorf("radius %v: curve %d has zero length", tt.radius, c.Index())
			}
		}
		if !p.IsClockwise() {
			t.Errorf("radius %v: rounded rectangle runs counter-clockwise", tt.radius)
		}
	}

	e := doc.CreateEllipse(rect)
	diff(t, 4, e.SegmentCount())
	diff(t, rect, e.Bounds(), approx)

	hex := doc.CreateRegularPolygon(geom.Pt(0, 0), 6, 10)
	diff(t, 6, hex.SegmentCount())
	assertNear(t, hex.FirstSegment().Position(), geom.Pt(0, -10), 1e-12)
	if !hex.IsPolygon() || !hex.IsClockwise() {
		t.Error("regular polygon should be a clockwise polygon")
	}
	diff(t, 3, doc.CreateRegularPolygon(geom.Pt(0, 0), 1, 10).SegmentCount())
}
