package paper

import "honnef.co/go/paper/geom"

// Transform returns the item's transform relative to its parent.
func (it *Item) Transform() geom.Affine { return it.transform }

// SetTransform replaces the item's local transform.
func (it *Item) SetTransform(m geom.Affine) {
	if it.warnDestroyed("SetTransform") || m == it.transform {
		return
	}
	it.transform = m
	it.transformChanged()
}

// TransformBy applies m after the item's current transform, in its parent's
// coordinate space.
func (it *Item) TransformBy(m geom.Affine) {
	it.SetTransform(m.Mul(it.transform))
}

// Translate moves the item by v in its parent's coordinate space.
func (it *Item) Translate(v geom.Vec2) {
	it.TransformBy(geom.Translate(v))
}

// Rotate rotates the item by th radians about center, given in its parent's
// coordinate space.
func (it *Item) Rotate(th float64, center geom.Point) {
	it.TransformBy(geom.RotateAbout(th, center))
}

// Scale scales the item about center, given in its parent's coordinate
// space.
func (it *Item) Scale(sx, sy float64, center geom.Point) {
	it.TransformBy(geom.ScaleAbout(sx, sy, center))
}

// AbsoluteTransform returns the transform from the item's coordinate space
// to the document's.
func (it *Item) AbsoluteTransform() geom.Affine {
	return it.absTransform.get(func() geom.Affine {
		if p := it.Parent(); p != nil {
			return p.AbsoluteTransform().Mul(it.transform)
		}
		return it.transform
	})
}

func (it *Item) transformChanged() {
	it.bounds.invalidate()
	it.strokeBounds.invalidate()
	it.handleBounds.invalidate()
	it.invalidateAbsolute()
	it.invalidateAncestors()
}

// ApplyTransform bakes the item's transform into its content and resets the
// transform to the identity. Paths transform their segments and groups
// pass the transform on to their children. The item's bounds in its
// parent's space don't change.
func (it *Item) ApplyTransform() {
	if it.warnDestroyed("ApplyTransform") || it.transform.IsIdentity() {
		return
	}
	m := it.transform
	if it.path != nil {
		it.path.transformSegments(m)
	}
	for _, c := range it.children {
		c.transform = m.Mul(c.transform)
		c.transformChanged()
	}
	it.transform = geom.Identity
	it.transformChanged()
	// The item's local space changed under its own geometry.
	it.localBounds.invalidate()
}
