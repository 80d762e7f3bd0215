package paper

import (
	"testing"

	"honnef.co/go/paper/geom"
)

func TestWinding(t *testing.T) {
	doc := NewDocument()
	rect := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	circle := doc.CreateCircle(geom.Pt(50, 50), 10)
	tri := doc.CreatePolygon(geom.Pt(0, 0), geom.Pt(20, 10), geom.Pt(0, 20))

	tests := []struct {
		name string
		p    *Path
		pt   geom.Point
		want int
	}{
		{"rect center", rect, geom.Pt(5, 5), 1},
		{"rect outside", rect, geom.Pt(15, 5), 0},
		{"rect above", rect, geom.Pt(5, -5), 0},
		{"rect left edge", rect, geom.Pt(0, 5), 1},
		{"rect top edge", rect, geom.Pt(5, 0), 1},
		{"rect bottom edge", rect, geom.Pt(5, 10), 1},
		{"rect corner", rect, geom.Pt(10, 10), 1},
		{"circle center", circle, geom.Pt(50, 50), 1},
		{"circle inside", circle, geom.Pt(55, 45), 1},
		{"circle bounds corner", circle, geom.Pt(41, 41), 0},
		{"circle extremum", circle, geom.Pt(50, 40), 1},
		{"circle level with extremum", circle, geom.Pt(45, 40), 0},
		{"triangle apex level", tri, geom.Pt(10, 10), 1},
		{"triangle right of apex", tri, geom.Pt(25, 10), 0},
		{"triangle vertex", tri, geom.Pt(20, 10), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			diff(t, tc.want, tc.p.Winding(tc.pt))
		})
	}
}

func TestWindingCompound(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateRectangle(geom.NewRect(0, 0, 30, 30))
	inner := doc.CreateRectangle(geom.NewRect(10, 10, 10, 10))
	if err := outer.AddChild(inner); err != nil {
		t.Fatal(err)
	}

	diff(t, 2, outer.Winding(geom.Pt(15, 15)))
	diff(t, 1, outer.Winding(geom.Pt(5, 15)))
	if !outer.Contains(geom.Pt(15, 15)) {
		t.Error("non-zero fill should cover overlapping outlines")
	}
	outer.SetWindingRule(EvenOdd)
	if outer.Contains(geom.Pt(15, 15)) {
		t.Error("even-odd fill should leave a hole")
	}
	if !outer.Contains(geom.Pt(5, 15)) {
		t.Error("even-odd fill should cover the ring")
	}

	inner.Reverse()
	diff(t, 0, outer.Winding(geom.Pt(15, 15)))
	outer.SetWindingRule(NonZero)
	if outer.Contains(geom.Pt(15, 15)) {
		t.Error("opposing outlines should leave a hole")
	}

	// Moving the child moves the hole.
	inner.Translate(geom.Vec(5, 0))
	diff(t, 1, outer.Winding(geom.Pt(12, 15)))
	diff(t, 0, outer.Winding(geom.Pt(22, 15)))

	// Hidden children don't contribute.
	inner.SetVisible(false)
	diff(t, 1, outer.Winding(geom.Pt(22, 15)))
}

func TestWindingOpenPath(t *testing.T) {
	doc := NewDocument()
	// Treated as if closed by a straight line.
	p := doc.CreatePath(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
	diff(t, 1, p.Winding(geom.Pt(8, 2)))
	diff(t, 0, p.Winding(geom.Pt(2, 8)))
}

func TestWindingContext(t *testing.T) {
	square := []geom.CubicBez{
		geom.Line{P0: geom.Pt(0, 0), P1: geom.Pt(4, 0)}.Cubic(),
		geom.Line{P0: geom.Pt(4, 0), P1: geom.Pt(4, 4)}.Cubic(),
		geom.Line{P0: geom.Pt(4, 4), P1: geom.Pt(0, 4)}.Cubic(),
	}
	ctx := NewWindingContext(square)
	diff(t, geom.Rect{X0: 0, Y0: 0, X1: 4, Y1: 4}, ctx.Bounds(), approx)
	diff(t, 1, ctx.Winding(geom.Pt(2, 2)))
	diff(t, 0, ctx.Winding(geom.Pt(5, 2)))
	diff(t, 0, NewWindingContext().Winding(geom.Pt(0, 0)))
}

func TestHitTest(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateRectangle(geom.NewRect(0, 0, 20, 20))
	b := doc.CreateRectangle(geom.NewRect(10, 10, 20, 20))
	g := doc.CreateGroup()
	c := doc.CreateCircle(geom.Pt(0, 0), 5)
	if err := g.AddChild(c); err != nil {
		t.Fatal(err)
	}
	g.Translate(geom.Vec(100, 100))

	for _, tc := range []struct {
		pt   geom.Point
		want *Path
	}{
		{geom.Pt(15, 15), b},
		{geom.Pt(5, 5), a},
		{geom.Pt(101, 101), c},
		{geom.Pt(50, 50), nil},
	} {
		if got := doc.HitTest(tc.pt); got != tc.want {
			t.Errorf("HitTest(%s) = %v, want %v", tc.pt, got, tc.want)
		}
	}
	b.SetVisible(false)
	if got := doc.HitTest(geom.Pt(15, 15)); got != a {
		t.Errorf("hidden path was hit")
	}
}

func BenchmarkWinding(b *testing.B) {
	doc := NewDocument()
	c := doc.CreateCircle(geom.Pt(0, 0), 100)
	ctx := c.WindingContext()
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(99, 0), geom.Pt(0, -100), geom.Pt(150, 10)}
	for range b.N {
		for _, pt := range pts {
			ctx.Winding(pt)
		}
	}
}
