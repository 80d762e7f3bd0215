package paper

import (
	"fmt"

	"honnef.co/go/paper/geom"
)

// Renderer draws paths. Implementations receive fully resolved draw
// commands and never need to consult the item tree.
type Renderer interface {
	DrawPath(cmd *DrawCommand) error
}

// DrawCommand describes how to draw one path. All geometry is in the
// path's coordinate space and is mapped to the document by Transform.
type DrawCommand struct {
	Path *Path
	// Transform is the path's absolute transform.
	Transform geom.Affine

	Fill        Paint
	WindingRule WindingRule
	// FillContours are the flattened outlines of the path and its compound
	// children.
	FillContours []Contour
	// FillFan is a triangle list fanning out from the first vertex of every
	// contour. Drawn into a stencil, counting orientations, it yields the
	// winding number of every point.
	FillFan []geom.Point

	Stroke     Paint
	StrokeMesh StrokeMesh
}

// Draw walks the document's visible items, bottom-most first, and passes
// every path with a fill or a stroke to r. Members of compound paths are
// drawn as part of their parent. The first error returned by r stops the
// walk.
func (doc *Document) Draw(r Renderer) error {
	return doc.Item.draw(r)
}

func (it *Item) draw(r Renderer) error {
	if it.destroyed || !it.Visible() {
		return nil
	}
	if p := it.path; p != nil {
		cmd, ok := p.drawCommand()
		if !ok {
			return nil
		}
		if err := r.DrawPath(cmd); err != nil {
			return fmt.Errorf("drawing %s: %w", it, err)
		}
		return nil
	}
	for _, c := range it.children {
		if err := c.draw(r); err != nil {
			return err
		}
	}
	return nil
}

// drawCommand returns the path's draw command, or false if it draws
// nothing.
func (p *Path) drawCommand() (*DrawCommand, bool) {
	fill := p.Fill()
	stroke := p.Stroke()
	if fill.IsNone() && stroke.IsNone() {
		return nil, false
	}
	cmd := &DrawCommand{
		Path:      p,
		Transform: p.AbsoluteTransform(),
		Fill:      fill,
		Stroke:    stroke,
	}
	if !fill.IsNone() {
		cmd.WindingRule = p.WindingRule()
		cmd.FillContours = p.Contours()
		cmd.FillFan = p.FillFan()
	}
	if !stroke.IsNone() {
		cmd.StrokeMesh = p.StrokeMesh()
	}
	return cmd, true
}

// FillFan returns the triangle fans of the path's contours. See
// [DrawCommand.FillFan]. The result is cached.
func (p *Path) FillFan() []geom.Point {
	return p.fillFan.get(func() []geom.Point {
		var out []geom.Point
		for _, ct := range p.Contours() {
			pts := ct.Points
			for i := 1; i+1 < len(pts); i++ {
				out = append(out, pts[0], pts[i], pts[i+1])
			}
		}
		return out
	})
}
