package paper

import (
	"math"
	"testing"

	"honnef.co/go/paper/geom"
)

func TestBounds(t *testing.T) {
	doc := NewDocument()
	c := doc.CreateCircle(geom.Pt(10, 10), 5)
	diff(t, geom.Rect{X0: 5, Y0: 5, X1: 15, Y1: 15}, c.Bounds(), approx)

	single := doc.CreatePath(geom.Pt(3, 4))
	diff(t, geom.Rect{X0: 3, Y0: 4, X1: 3, Y1: 4}, single.Bounds())
	empty := doc.CreatePath()
	if !empty.Bounds().IsEmpty() {
		t.Errorf("empty path has bounds %s", empty.Bounds())
	}
	if !doc.CreateGroup().Bounds().IsEmpty() {
		t.Error("empty group has bounds")
	}

	diff(t, geom.Rect{X0: 3, Y0: 4, X1: 15, Y1: 15}, doc.Bounds(), approx)
}

func TestTransformedBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 1, 1))
	p.Scale(2, 2, geom.Point{})
	p.Rotate(math.Pi/4, geom.Point{})
	p.Translate(geom.Vec(10, 0))

	r := math.Sqrt2
	diff(t, geom.Rect{X0: 10 - r, Y0: 0, X1: 10 + r, Y1: 2 * r}, p.Bounds(), approx)
	diff(t, geom.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}, p.LocalBounds(), approx)
	assertNear(t, geom.Pt(1, 0).Transform(p.AbsoluteTransform()), geom.Pt(10+r, r), 1e-9)

	// Baking the transform keeps the bounds.
	p.ApplyTransform()
	diff(t, geom.Identity, p.Transform())
	diff(t, geom.Rect{X0: 10 - r, Y0: 0, X1: 10 + r, Y1: 2 * r}, p.Bounds(), approx)
	diff(t, p.Bounds(), p.LocalBounds(), approx)
}

func TestNestedBounds(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateGroup()
	inner := doc.CreateGroup()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	if err := inner.AddChild(p); err != nil {
		t.Fatal(err)
	}
	if err := outer.AddChild(inner); err != nil {
		t.Fatal(err)
	}
	inner.Translate(geom.Vec(5, 5))
	outer.Scale(2, 2, geom.Point{})

	diff(t, geom.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30}, outer.Bounds(), approx)
	diff(t, geom.Rect{X0: 5, Y0: 5, X1: 15, Y1: 15}, outer.LocalBounds(), approx)
	diff(t, geom.Rect{X0: 5, Y0: 5, X1: 15, Y1: 15}, inner.Bounds(), approx)
	assertNear(t, geom.Pt(10, 10).Transform(p.AbsoluteTransform()), geom.Pt(30, 30), 1e-9)

	p.SetVisible(false)
	if !outer.Bounds().IsEmpty() {
		t.Error("hidden items shouldn't contribute to bounds")
	}
}

// Growing a child never shrinks its ancestors' bounds.
func TestBoundsGrow(t *testing.T) {
	doc := NewDocument()
	g := doc.CreateGroup()
	a := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	b := doc.CreateRectangle(geom.NewRect(20, 20, 10, 10))
	for _, p := range []*Path{a, b} {
		if err := g.AddChild(p); err != nil {
			t.Fatal(err)
		}
	}
	prev := g.Bounds()
	center := geom.Pt(5, 5)
	for i := range 8 {
		s := a.Segment(i % 4)
		s.SetPosition(s.Position().Translate(s.Position().Sub(center).Mul(0.5)))
		got := g.Bounds()
		if !got.ContainsRect(prev) {
			t.Fatalf("bounds shrank from %s to %s", prev, got)
		}
		if !got.ContainsRect(a.Bounds()) || !got.ContainsRect(b.Bounds()) {
			t.Fatalf("group bounds %s don't contain children", got)
		}
		prev = got
	}
}

func TestStrokeBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 200, 200))
	diff(t, p.Bounds(), p.StrokeBounds(), approx)

	p.SetStroke(ColorPaint(DefaultFill.Color()))
	p.SetStrokeWidth(20)
	p.SetStrokeJoin(RoundJoin)
	diff(t, geom.Rect{X0: -10, Y0: -10, X1: 210, Y1: 210}, p.StrokeBounds(), approx)

	p.SetStrokeJoin(MiterJoin)
	diff(t, geom.Rect{X0: -10, Y0: -10, X1: 210, Y1: 210}, p.StrokeBounds(), approx)

	// A sharp miter reaches beyond the stroke's half width.
	tri := doc.CreatePolygon(geom.Pt(0, 0), geom.Pt(100, 10), geom.Pt(0, 20))
	tri.SetStroke(ColorPaint(DefaultFill.Color()))
	tri.SetStrokeWidth(2)
	tri.SetMiterLimit(100)
	if sb := tri.StrokeBounds(); sb.X1 < 105 {
		t.Errorf("miter tip not included in %s", sb)
	}
	tri.SetStrokeJoin(BevelJoin)
	diff(t, 101.0, tri.StrokeBounds().X1, approx)

	line := doc.CreatePath(geom.Pt(0, 0), geom.Pt(100, 0))
	line.SetStroke(ColorPaint(DefaultFill.Color()))
	line.SetStrokeWidth(10)
	line.SetStrokeCap(SquareCap)
	diff(t, geom.Rect{X0: -5, Y0: -5, X1: 105, Y1: 5}, line.StrokeBounds(), approx)
}

func TestStrokeBoundsUnscaled(t *testing.T) {
	doc := NewDocument()
	g := doc.CreateGroup()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	if err := g.AddChild(p); err != nil {
		t.Fatal(err)
	}
	p.SetStroke(ColorPaint(DefaultFill.Color()))
	p.SetStrokeWidth(2)
	p.SetStrokeJoin(RoundJoin)
	g.Scale(2, 2, geom.Point{})
	diff(t, geom.Rect{X0: -2, Y0: -2, X1: 22, Y1: 22}, g.StrokeBounds(), approx)

	p.SetScaleStroke(false)
	diff(t, geom.Rect{X0: -1, Y0: -1, X1: 21, Y1: 21}, g.StrokeBounds(), approx)
	diff(t, geom.Rect{X0: -0.5, Y0: -0.5, X1: 10.5, Y1: 10.5}, p.StrokeBounds(), approx)

	// The stroke keeps its width in document units when the group scales.
	g.SetTransform(geom.Scale(4, 4))
	diff(t, geom.Rect{X0: -1, Y0: -1, X1: 41, Y1: 41}, g.StrokeBounds(), approx)
}

func TestHandleBounds(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePath()
	p.AddSegment(geom.Pt(0, 0), geom.Vec(-5, 0), geom.Vec(0, -20))
	p.AddSegment(geom.Pt(10, 0), geom.Vec(0, -20), geom.Vec(5, 0))
	diff(t, geom.Rect{X0: -5, Y0: -20, X1: 15, Y1: 0}, p.HandleBounds())
	if b := p.Bounds(); b.Y0 <= -20 || b.Y0 >= 0 {
		t.Errorf("unexpected outline bounds %s", b)
	}
}
