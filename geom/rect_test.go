package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRectEmpty(t *testing.T) {
	if !EmptyRect.IsEmpty() {
		t.Fatal("EmptyRect is not empty")
	}
	r := Rect{1, 2, 3, 4}
	diff(t, r, EmptyRect.Union(r))
	diff(t, r, r.Union(EmptyRect))
	diff(t, Rect{5, 6, 5, 6}, EmptyRect.UnionPoint(Pt(5, 6)))
	if !EmptyRect.Inflate(10, 10).IsEmpty() {
		t.Error("inflating the empty rectangle produced points")
	}
	if EmptyRect.Width() != 0 || EmptyRect.Height() != 0 {
		t.Error("empty rectangle has a size")
	}
	if EmptyRect.Intersects(r) || r.Intersects(EmptyRect) {
		t.Error("empty rectangle intersects")
	}
	if !r.ContainsRect(EmptyRect) {
		t.Error("empty rectangle is not contained")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 5)
	for _, pt := range []Point{Pt(0, 0), Pt(10, 5), Pt(5, 2), Pt(10, 0)} {
		if !r.Contains(pt) {
			t.Errorf("%v doesn't contain %v", r, pt)
		}
	}
	for _, pt := range []Point{Pt(-1, 0), Pt(10.5, 5), Pt(5, 6)} {
		if r.Contains(pt) {
			t.Errorf("%v contains %v", r, pt)
		}
	}
	if !r.ContainsRect(Rect{1, 1, 2, 2}) || r.ContainsRect(Rect{1, 1, 20, 2}) {
		t.Error("ContainsRect is wrong")
	}
}

func TestNewRectFromPoints(t *testing.T) {
	diff(t, Rect{1, 2, 5, 7}, NewRectFromPoints(Pt(5, 2), Pt(1, 7)))
	diff(t, Rect{-3, -4, 0, 0}, NewRect(0, 0, -3, -4))
}

func TestRectCorners(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	diff(t, [4]Point{Pt(1, 2), Pt(4, 2), Pt(4, 6), Pt(1, 6)}, r.Corners())
	diff(t, Rect{-6, 1, -2, 4}, Rotate(math.Pi/2).TransformRectBoundingBox(r), cmpopts.EquateApprox(0, 1e-12))
	if !Scale(2, 2).TransformRectBoundingBox(EmptyRect).IsEmpty() {
		t.Error("transformed empty rectangle has points")
	}
}
