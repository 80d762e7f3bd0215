package paper

import (
	"slices"

	"golang.org/x/image/colornames"

	"honnef.co/go/paper/internal/store"
)

// Style attributes. Tags below AttrUser are reserved.
const (
	AttrFill Attr = iota + 1
	AttrStroke
	AttrStrokeWidth
	AttrStrokeJoin
	AttrStrokeCap
	AttrMiterLimit
	AttrDashArray
	AttrDashOffset
	AttrWindingRule
	AttrVisible
	AttrScaleStroke

	AttrUser Attr = 64
)

// Style defaults, used when neither an item nor any of its ancestors set an
// attribute.
var (
	DefaultFill        = ColorPaint(colornames.Black)
	DefaultStroke      = NoPaint()
	DefaultStrokeWidth = 1.0
	DefaultMiterLimit  = 4.0
)

// resolve looks up tag on the item and then on its ancestors.
func resolve[T any](it *Item, tag Attr, def T) T {
	for n := it; n != nil; n = n.Parent() {
		if n.doc == nil || n.destroyed {
			break
		}
		if n.doc.store.Has(n.handle, tag) {
			return store.GetOr(n.doc.store, n.handle, tag, def)
		}
	}
	return def
}

func (it *Item) Fill() Paint              { return resolve(it, AttrFill, DefaultFill) }
func (it *Item) Stroke() Paint            { return resolve(it, AttrStroke, DefaultStroke) }
func (it *Item) StrokeWidth() float64     { return resolve(it, AttrStrokeWidth, DefaultStrokeWidth) }
func (it *Item) StrokeJoin() Join         { return resolve(it, AttrStrokeJoin, MiterJoin) }
func (it *Item) StrokeCap() Cap           { return resolve(it, AttrStrokeCap, ButtCap) }
func (it *Item) MiterLimit() float64      { return resolve(it, AttrMiterLimit, DefaultMiterLimit) }
func (it *Item) DashOffset() float64      { return resolve(it, AttrDashOffset, 0.0) }
func (it *Item) WindingRule() WindingRule { return resolve(it, AttrWindingRule, NonZero) }

// DashArray returns the dash pattern. The returned slice must not be
// modified.
func (it *Item) DashArray() []float64 { return resolve[[]float64](it, AttrDashArray, nil) }

// ScaleStroke reports whether the stroke scales with the item's absolute
// transform. If it doesn't, stroke widths and dashes are in document units.
func (it *Item) ScaleStroke() bool { return resolve(it, AttrScaleStroke, true) }

// Visible reports whether the item is drawn. Visibility is not inherited,
// but hidden items hide their whole subtree.
func (it *Item) Visible() bool {
	if it.destroyed {
		return false
	}
	return store.GetOr(it.doc.store, it.handle, AttrVisible, true)
}

func (it *Item) SetFill(p Paint) { it.setStyle(AttrFill, p) }

// SetStroke sets the stroke paint. Only switching between no paint and
// some paint changes stroke geometry.
func (it *Item) SetStroke(p Paint) {
	was := it.Stroke().IsNone()
	if it.setStyle(AttrStroke, p) && was != p.IsNone() {
		it.strokeStyleChanged(AttrStroke)
	}
}

func (it *Item) SetStrokeWidth(w float64) {
	if it.setStyle(AttrStrokeWidth, w) {
		it.strokeStyleChanged(AttrStrokeWidth)
	}
}

func (it *Item) SetStrokeJoin(j Join) {
	if it.setStyle(AttrStrokeJoin, j) {
		it.strokeStyleChanged(AttrStrokeJoin)
	}
}

func (it *Item) SetStrokeCap(c Cap) {
	if it.setStyle(AttrStrokeCap, c) {
		it.strokeStyleChanged(AttrStrokeCap)
	}
}

func (it *Item) SetMiterLimit(limit float64) {
	if it.setStyle(AttrMiterLimit, limit) {
		it.strokeStyleChanged(AttrMiterLimit)
	}
}

// SetDashArray sets the dash pattern. The slice is copied.
func (it *Item) SetDashArray(dashes []float64) {
	if it.setStyle(AttrDashArray, slices.Clone(dashes)) {
		it.strokeStyleChanged(AttrDashArray)
	}
}

func (it *Item) SetDashOffset(off float64) {
	if it.setStyle(AttrDashOffset, off) {
		it.strokeStyleChanged(AttrDashOffset)
	}
}

func (it *Item) SetScaleStroke(b bool) {
	if it.setStyle(AttrScaleStroke, b) {
		it.strokeStyleChanged(AttrScaleStroke)
	}
}

// SetWindingRule sets the rule deciding which points a fill covers.
func (it *Item) SetWindingRule(r WindingRule) { it.setStyle(AttrWindingRule, r) }

func (it *Item) SetVisible(v bool) {
	if it.setStyle(AttrVisible, v) {
		it.invalidateAncestors()
	}
}

// HasStyle reports whether the attribute is set on the item itself, as
// opposed to being inherited.
func (it *Item) HasStyle(a Attr) bool {
	if it.destroyed {
		return false
	}
	return it.doc.store.Has(it.handle, a)
}

// ClearStyle removes the attribute from the item, so that it is inherited
// again.
func (it *Item) ClearStyle(a Attr) {
	if it.warnDestroyed("ClearStyle") {
		return
	}
	was := it.Stroke().IsNone()
	if !it.doc.store.Remove(it.handle, a) {
		return
	}
	if a == AttrStroke && it.Stroke().IsNone() == was {
		return
	}
	it.styleChanged(a)
}

// setStyle stores v and reports whether it differs from the value stored
// before.
func (it *Item) setStyle(a Attr, v any) bool {
	if it.warnDestroyed("SetStyle") {
		return false
	}
	if old, ok := it.doc.store.Get(it.handle, a); ok && sameStyle(old, v) {
		return false
	}
	it.doc.store.Set(it.handle, a, v)
	return true
}

func sameStyle(old, v any) bool {
	switch v := v.(type) {
	case Paint:
		o, ok := old.(Paint)
		return ok && o.equal(v)
	case []float64:
		o, ok := old.([]float64)
		return ok && slices.Equal(o, v)
	default:
		return old == v
	}
}

// styleChanged dirties whatever depends on attribute a.
func (it *Item) styleChanged(a Attr) {
	switch a {
	case AttrStroke, AttrStrokeWidth, AttrStrokeJoin, AttrStrokeCap, AttrMiterLimit,
		AttrDashArray, AttrDashOffset, AttrScaleStroke:
		it.strokeStyleChanged(a)
	case AttrVisible:
		it.invalidateAncestors()
	}
}

// strokeStyleChanged dirties the stroke caches of the item, of the
// descendants that inherit a from it, and of its ancestors.
func (it *Item) strokeStyleChanged(a Attr) {
	it.invalidateInheritedStroke(a, true)
	it.invalidateAncestorStrokes()
}

func (it *Item) invalidateInheritedStroke(a Attr, self bool) {
	if !self && it.doc.store.Has(it.handle, a) {
		return
	}
	it.strokeBounds.invalidate()
	if it.path != nil {
		it.path.strokeMesh.invalidate()
	}
	for _, c := range it.children {
		c.invalidateInheritedStroke(a, false)
	}
}
