package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/colornames"

	"honnef.co/go/paper"
	"honnef.co/go/paper/geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func rgba(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestRenderFill(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreateRectangle(geom.NewRect(10, 10, 20, 20))
	p.SetFill(paper.ColorPaint(colornames.Red))

	img, err := Render(doc, 40, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, colornames.Red, rgba(img, 20, 20))
	diff(t, colornames.White, rgba(img, 5, 5))
	diff(t, colornames.White, rgba(img, 35, 20))
}

func TestRenderTransform(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	p.SetFill(paper.ColorPaint(colornames.Blue))
	p.Translate(geom.Vec(20, 0))

	img, err := Render(doc, 40, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, colornames.White, rgba(img, 5, 5))
	diff(t, colornames.Blue, rgba(img, 25, 5))
}

func TestRenderCompound(t *testing.T) {
	for _, rule := range []paper.WindingRule{paper.NonZero, paper.EvenOdd} {
		t.Run(rule.String(), func(t *testing.T) {
			doc := paper.NewDocument()
			outer := doc.CreateRectangle(geom.NewRect(0, 0, 40, 40))
			// The hole runs in the opposite direction, so both rules
			// leave it empty.
			hole := doc.CreateRectangle(geom.NewRect(10, 10, 20, 20))
			hole.Reverse()
			if err := outer.AddChild(hole); err != nil {
				t.Fatal(err)
			}
			outer.SetFill(paper.ColorPaint(colornames.Black))
			outer.SetWindingRule(rule)

			img, err := Render(doc, 40, 40, nil)
			if err != nil {
				t.Fatal(err)
			}
			diff(t, colornames.Black, rgba(img, 5, 5))
			diff(t, colornames.White, rgba(img, 20, 20))
		})
	}
}

func TestRenderEvenOddOverlap(t *testing.T) {
	doc := paper.NewDocument()
	outer := doc.CreateRectangle(geom.NewRect(0, 0, 40, 40))
	inner := doc.CreateRectangle(geom.NewRect(10, 10, 20, 20))
	if err := outer.AddChild(inner); err != nil {
		t.Fatal(err)
	}
	outer.SetFill(paper.ColorPaint(colornames.Black))

	img, err := Render(doc, 40, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, colornames.Black, rgba(img, 20, 20))

	outer.SetWindingRule(paper.EvenOdd)
	img, err = Render(doc, 40, 40, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, colornames.White, rgba(img, 20, 20))
	diff(t, colornames.Black, rgba(img, 5, 5))
}

func TestRenderStroke(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreatePath(geom.Pt(0, 20), geom.Pt(40, 20))
	p.SetStroke(paper.ColorPaint(colornames.Green))
	p.SetStrokeWidth(6)

	img, err := Render(doc, 40, 40, colornames.Black)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, colornames.Green, rgba(img, 20, 19))
	diff(t, colornames.Green, rgba(img, 20, 21))
	diff(t, colornames.Black, rgba(img, 20, 10))
}

func TestRenderGradient(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 100, 10))
	g := paper.NewLinearGradient(geom.Pt(0, 0), geom.Pt(100, 0)).
		AddStop(0, colornames.Black).
		AddStop(1, colornames.White)
	p.SetFill(paper.GradientPaint(g))

	img, err := Render(doc, 100, 10, colornames.Red)
	if err != nil {
		t.Fatal(err)
	}
	left, right := rgba(img, 2, 5), rgba(img, 97, 5)
	if left.R >= right.R {
		t.Errorf("gradient doesn't brighten from left to right: %v, %v", left, right)
	}
	if left.G != left.R {
		t.Errorf("expected gray, got %v", left)
	}
}

func TestRenderInvisible(t *testing.T) {
	doc := paper.NewDocument()
	p := doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	p.SetFill(paper.ColorPaint(colornames.Red))
	p.SetVisible(false)

	img, err := Render(doc, 10, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, colornames.White, rgba(img, 5, 5))
}

type failingRenderer struct{ err error }

func (r failingRenderer) DrawPath(*paper.DrawCommand) error { return r.err }

func TestDrawError(t *testing.T) {
	doc := paper.NewDocument()
	doc.CreateRectangle(geom.NewRect(0, 0, 10, 10))
	want := errors.New("out of ink")
	if err := doc.Draw(failingRenderer{want}); !errors.Is(err, want) {
		t.Errorf("got %v, want %v", err, want)
	}
}
