// Package raster draws documents into images. It is a reference
// implementation of [paper.Renderer], built on the scanline rasterizer of
// golang.org/x/image/vector.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"honnef.co/go/paper"
	"honnef.co/go/paper/geom"
)

// Renderer draws paths into an image.
type Renderer struct {
	img draw.Image
	// Transform maps document coordinates to pixel coordinates.
	Transform geom.Affine
}

// New returns a renderer that draws to img, with one document unit per
// pixel.
func New(img draw.Image) *Renderer {
	return &Renderer{
		img:       img,
		Transform: geom.Identity,
	}
}

// Render draws the document on a new image of the given size, on top of
// bg. A nil background is white.
func Render(doc *paper.Document, w, h int, bg color.Color) (*image.RGBA, error) {
	if bg == nil {
		bg = colornames.White
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if err := doc.Draw(New(img)); err != nil {
		return img, err
	}
	return img, nil
}

// DrawPath implements [paper.Renderer].
func (r *Renderer) DrawPath(cmd *paper.DrawCommand) error {
	m := r.Transform.Mul(cmd.Transform)
	if !cmd.Fill.IsNone() && len(cmd.FillContours) > 0 {
		if cmd.WindingRule == paper.EvenOdd {
			r.fillEvenOdd(cmd, m)
		} else {
			r.fillNonZero(cmd, m)
		}
	}
	if !cmd.Stroke.IsNone() && len(cmd.StrokeMesh.Vertices) > 0 {
		r.stroke(cmd, m)
	}
	return nil
}

func (r *Renderer) rasterizer() (*vector.Rasterizer, image.Rectangle) {
	b := r.img.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy()), b
}

// device maps a point to the rasterizer's coordinate space.
func device(pt geom.Point, m geom.Affine, origin image.Point) (float32, float32) {
	pt = pt.Transform(m)
	return float32(pt.X - float64(origin.X)), float32(pt.Y - float64(origin.Y))
}

// fillNonZero relies on the rasterizer accumulating signed coverage, which
// cancels out exactly where the winding number is zero.
func (r *Renderer) fillNonZero(cmd *paper.DrawCommand, m geom.Affine) {
	z, b := r.rasterizer()
	for _, ct := range cmd.FillContours {
		if len(ct.Points) < 3 {
			continue
		}
		z.MoveTo(device(ct.Points[0], m, b.Min))
		for _, pt := range ct.Points[1:] {
			z.LineTo(device(pt, m, b.Min))
		}
		z.ClosePath()
	}
	z.Draw(r.img, b, r.source(cmd.Fill, m), image.Point{})
}

// fillEvenOdd samples the path's winding number at every pixel center
// inside the path's bounds.
func (r *Renderer) fillEvenOdd(cmd *paper.DrawCommand, m geom.Affine) {
	inv, ok := m.Invert()
	if !ok {
		paper.Logger().Debug("singular transform, skipping fill", "path", cmd.Path.ID())
		return
	}
	area := pixelBounds(m.TransformRectBoundingBox(cmd.Path.LocalBounds())).Intersect(r.img.Bounds())
	if area.Empty() {
		return
	}
	mask := image.NewAlpha(area)
	ctx := cmd.Path.WindingContext()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			pt := geom.Pt(float64(x)+0.5, float64(y)+0.5).Transform(inv)
			if cmd.WindingRule.Fills(ctx.Winding(pt)) {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	sp := area.Min.Sub(r.img.Bounds().Min)
	draw.DrawMask(r.img, area, r.source(cmd.Fill, m), sp, mask, area.Min, draw.Over)
}

// stroke draws every triangle of the mesh with the same orientation, so
// that overlapping triangles add up instead of cancelling out.
func (r *Renderer) stroke(cmd *paper.DrawCommand, m geom.Affine) {
	z, b := r.rasterizer()
	mesh := cmd.StrokeMesh
	for i := range mesh.Triangles() {
		a, p, q := mesh.Triangle(i)
		a, p, q = a.Transform(m), p.Transform(m), q.Transform(m)
		if p.Sub(a).Cross(q.Sub(a)) < 0 {
			p, q = q, p
		}
		z.MoveTo(device(a, geom.Identity, b.Min))
		z.LineTo(device(p, geom.Identity, b.Min))
		z.LineTo(device(q, geom.Identity, b.Min))
		z.ClosePath()
	}
	z.Draw(r.img, b, r.source(cmd.Stroke, m), image.Point{})
}

func (r *Renderer) source(p paper.Paint, m geom.Affine) image.Image {
	if p.Kind() == paper.PaintGradient {
		if inv, ok := m.Invert(); ok {
			return &paintImage{paint: p, inv: inv, origin: r.img.Bounds().Min}
		}
	}
	c := p.Color()
	if c == nil {
		c = color.Transparent
	}
	return image.NewUniform(c)
}

// paintImage is an infinite image showing a paint, evaluated at pixel
// centers.
type paintImage struct {
	paint  paper.Paint
	inv    geom.Affine
	origin image.Point
}

func (img *paintImage) ColorModel() color.Model { return color.RGBAModel }

func (img *paintImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (img *paintImage) At(x, y int) color.Color {
	pt := geom.Pt(float64(x+img.origin.X)+0.5, float64(y+img.origin.Y)+0.5).Transform(img.inv)
	return img.paint.ColorAt(pt)
}

func pixelBounds(r geom.Rect) image.Rectangle {
	if r.IsEmpty() || r.IsNaN() {
		return image.Rectangle{}
	}
	clamp := func(v float64) int {
		return int(max(min(v, 1e9), -1e9))
	}
	return image.Rect(
		clamp(math.Floor(r.X0)),
		clamp(math.Floor(r.Y0)),
		clamp(math.Ceil(r.X1)),
		clamp(math.Ceil(r.Y1)),
	)
}
