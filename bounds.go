package paper

import (
	"honnef.co/go/paper/geom"
)

// Bounds returns the bounding box of the item's geometry and its visible
// children, in its parent's coordinate space. Items without geometry have
// an empty bounding box.
func (it *Item) Bounds() geom.Rect {
	return it.bounds.get(func() geom.Rect {
		return it.BoundsIn(it.transform)
	})
}

// LocalBounds is like [Item.Bounds] but in the item's own coordinate
// space.
func (it *Item) LocalBounds() geom.Rect {
	return it.localBounds.get(func() geom.Rect {
		return it.BoundsIn(geom.Identity)
	})
}

// StrokeBounds returns the bounding box of the area covered by the fills
// and strokes of the item and its visible children, in its parent's
// coordinate space.
func (it *Item) StrokeBounds() geom.Rect {
	return it.strokeBounds.get(func() geom.Rect {
		return it.StrokeBoundsIn(it.transform)
	})
}

// HandleBounds returns the bounding box of all anchors and handles of the
// item and its visible children, in its parent's coordinate space.
func (it *Item) HandleBounds() geom.Rect {
	return it.handleBounds.get(func() geom.Rect {
		return it.HandleBoundsIn(it.transform)
	})
}

// BoundsIn computes the item's bounds with its content mapped by m instead
// of the item's transform. The result isn't cached.
func (it *Item) BoundsIn(m geom.Affine) geom.Rect {
	if it.destroyed {
		return geom.EmptyRect
	}
	r := geom.EmptyRect
	if p := it.path; p != nil {
		r = p.outlineBounds(m)
	}
	for _, c := range it.children {
		if c.Visible() {
			r = r.Union(c.BoundsIn(m.Mul(c.transform)))
		}
	}
	return r
}

// outlineBounds returns the tight bounds of the path's own curves mapped by
// m. The curves are mapped before measuring, so rotations don't inflate the
// box.
func (p *Path) outlineBounds(m geom.Affine) geom.Rect {
	if len(p.curves) == 0 {
		if len(p.segments) == 0 {
			return geom.EmptyRect
		}
		pt := p.segments[0].point.Transform(m)
		return geom.Rect{X0: pt.X, Y0: pt.Y, X1: pt.X, Y1: pt.Y}
	}
	r := geom.EmptyRect
	for _, c := range p.curves {
		if m.IsIdentity() {
			r = r.Union(c.Bounds())
		} else {
			r = r.Union(c.Bezier().Transform(m).BoundingBox())
		}
	}
	return r
}

// StrokeBoundsIn computes the item's stroke bounds with its content mapped
// by m. The result isn't cached.
func (it *Item) StrokeBoundsIn(m geom.Affine) geom.Rect {
	if it.destroyed {
		return geom.EmptyRect
	}
	if p := it.path; p != nil {
		// Compound children are stroked as part of the path.
		return p.strokeBoundsIn(m)
	}
	r := geom.EmptyRect
	for _, c := range it.children {
		if c.Visible() {
			r = r.Union(c.StrokeBoundsIn(m.Mul(c.transform)))
		}
	}
	return r
}

func (p *Path) strokeBoundsIn(m geom.Affine) geom.Rect {
	fill := p.BoundsIn(m)
	if !p.hasStroke() || fill.IsEmpty() {
		return fill
	}
	s := p.StrokeMatrix()
	sInv, ok := s.Invert()
	if !ok {
		return fill
	}
	// back maps stroke space to the target space.
	back := m.Mul(sInv)
	style := p.StrokeStyle()
	hw := style.Width / 2
	ext := back.StrokeExtent(hw)
	r := fill.Inflate(ext.X, ext.Y)

	for _, l := range p.loops() {
		if len(l.curves) == 0 {
			if style.Cap == SquareCap {
				c := l.start.Transform(s)
				for _, v := range [4]geom.Vec2{{X: hw, Y: hw}, {X: -hw, Y: hw}, {X: hw, Y: -hw}, {X: -hw, Y: -hw}} {
					r = r.UnionPoint(c.Translate(v).Transform(back))
				}
			}
			continue
		}
		curves := make([]geom.CubicBez, len(l.curves))
		for i, c := range l.curves {
			curves[i] = c.Transform(s)
		}
		if style.Join == MiterJoin {
			for i := range curves {
				if i == 0 && !l.closed {
					continue
				}
				prev := curves[(i+len(curves)-1)%len(curves)]
				_, dIn := prev.Tangents()
				dOut, _ := curves[i].Tangents()
				tip, ok := miterTip(curves[i].P0, dIn.Normalize(), dOut.Normalize(), hw, style.MiterLimit)
				if ok {
					r = r.UnionPoint(tip.Transform(back))
				}
			}
		}
		if style.Cap == SquareCap && !l.closed {
			first, last := curves[0], curves[len(curves)-1]
			d0, _ := first.Tangents()
			_, d1 := last.Tangents()
			for _, corner := range squareCapCorners(first.P0, d0.Normalize().Negate(), hw) {
				r = r.UnionPoint(corner.Transform(back))
			}
			for _, corner := range squareCapCorners(last.P3, d1.Normalize(), hw) {
				r = r.UnionPoint(corner.Transform(back))
			}
		}
	}
	return r
}

// squareCapCorners returns the outer corners of a square cap at p, with d
// the unit direction pointing away from the outline.
func squareCapCorners(p geom.Point, d geom.Vec2, hw float64) [2]geom.Point {
	ext := p.Translate(d.Mul(hw))
	n := d.Perp().Mul(hw)
	return [2]geom.Point{ext.Translate(n), ext.Translate(n.Negate())}
}

// HandleBoundsIn computes the item's handle bounds with its content mapped
// by m. The result isn't cached.
func (it *Item) HandleBoundsIn(m geom.Affine) geom.Rect {
	if it.destroyed {
		return geom.EmptyRect
	}
	r := geom.EmptyRect
	if p := it.path; p != nil {
		for _, s := range p.segments {
			r = r.UnionPoint(s.point.Transform(m))
			r = r.UnionPoint(s.point.Translate(s.handleIn).Transform(m))
			r = r.UnionPoint(s.point.Translate(s.handleOut).Transform(m))
		}
	}
	for _, c := range it.children {
		if c.Visible() {
			r = r.Union(c.HandleBoundsIn(m.Mul(c.transform)))
		}
	}
	return r
}
