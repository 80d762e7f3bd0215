package paper

import (
	"errors"
	"testing"

	"golang.org/x/image/colornames"

	"honnef.co/go/paper/geom"
)

type recorder struct {
	cmds []*DrawCommand
}

func (r *recorder) DrawPath(cmd *DrawCommand) error {
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) paths() []*Item {
	out := make([]*Item, len(r.cmds))
	for i, cmd := range r.cmds {
		out[i] = &cmd.Path.Item
	}
	return out
}

func TestDrawOrder(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	g := doc.CreateGroup()
	b := doc.CreateRectangle(geom.NewRect(20, 0, 10, 10))
	c := doc.CreateRectangle(geom.NewRect(40, 0, 10, 10))
	g.AddChild(b)
	g.AddChild(c)
	d := doc.CreateCircle(geom.Pt(0, 0), 5)

	var r recorder
	if err := doc.Draw(&r); err != nil {
		t.Fatal(err)
	}
	sameItems(t, []*Item{&a.Item, &b.Item, &c.Item, &d.Item}, r.paths())

	g.SetVisible(false)
	d.SetFill(NoPaint())
	r = recorder{}
	doc.Draw(&r)
	sameItems(t, []*Item{&a.Item}, r.paths())

	d.SetStroke(ColorPaint(colornames.Blue))
	r = recorder{}
	doc.Draw(&r)
	sameItems(t, []*Item{&a.Item, &d.Item}, r.paths())
	cmd := r.cmds[1]
	if cmd.FillContours != nil || cmd.FillFan != nil {
		t.Error("unfilled paths should not carry fill geometry")
	}
	if cmd.StrokeMesh.Triangles() == 0 {
		t.Error("stroked path without a stroke mesh")
	}
}

func TestDrawCommand(t *testing.T) {
	doc := NewDocument()
	g := doc.CreateGroup()
	g.Translate(geom.Vec(5, 0))
	p := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	g.AddChild(p)
	p.Scale(2, 2, geom.Pt(0, 0))
	p.SetWindingRule(EvenOdd)

	var r recorder
	doc.Draw(&r)
	if len(r.cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(r.cmds))
	}
	cmd := r.cmds[0]
	diff(t, p.AbsoluteTransform(), cmd.Transform)
	diff(t, geom.Pt(25, 20), geom.Pt(10, 10).Transform(cmd.Transform), approx)
	diff(t, EvenOdd, cmd.WindingRule)
	diff(t, 1, len(cmd.FillContours))
	diff(t, 6, len(cmd.FillFan))
	if !cmd.Stroke.IsNone() || cmd.StrokeMesh.Triangles() != 0 {
		t.Error("path without stroke got stroke geometry")
	}
}

func TestDrawCompound(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	hole := doc.CreateRectangle(geom.NewRect(2, 2, 6, 6))
	hole.Reverse()
	if err := outer.AddChild(hole); err != nil {
		t.Fatal(err)
	}

	var r recorder
	doc.Draw(&r)
	sameItems(t, []*Item{&outer.Item}, r.paths())
	cmd := r.cmds[0]
	diff(t, 2, len(cmd.FillContours))
	diff(t, 12, len(cmd.FillFan))

	hole.SetVisible(false)
	r = recorder{}
	doc.Draw(&r)
	diff(t, 1, len(r.cmds[0].FillContours))
}

func TestFillFan(t *testing.T) {
	doc := NewDocument()
	p := doc.CreatePolygon(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10), geom.Pt(-5, 5))
	want := []geom.Point{
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10),
		geom.Pt(0, 0), geom.Pt(10, 10), geom.Pt(0, 10),
		geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(-5, 5),
	}
	diff(t, want, p.FillFan())

	// Triangle areas sum to the signed area of the outline.
	var area float64
	fan := p.FillFan()
	for i := 0; i < len(fan); i += 3 {
		area += fan[i+1].Sub(fan[i]).Cross(fan[i+2].Sub(fan[i])) / 2
	}
	assertNear(t, geom.Pt(area, 0), geom.Pt(p.Area(), 0), 1e-9)

	diff(t, []geom.Point(nil), doc.CreatePath(geom.Pt(0, 0), geom.Pt(1, 1)).FillFan())
}

type failingRenderer struct{ n int }

var errFull = errors.New("full")

func (r *failingRenderer) DrawPath(*DrawCommand) error {
	r.n++
	return errFull
}

func TestDrawStopsOnError(t *testing.T) {
	doc := NewDocument()
	doc.CreateRectangle(geom.NewRect(0, 0, 1, 1))
	doc.CreateRectangle(geom.NewRect(0, 0, 1, 1))
	var r failingRenderer
	if err := doc.Draw(&r); !errors.Is(err, errFull) {
		t.Fatalf("got %v, want %v", err, errFull)
	}
	diff(t, 1, r.n)
}
