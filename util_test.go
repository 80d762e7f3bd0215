package paper

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"honnef.co/go/paper/geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func assertNear(t *testing.T, got, want geom.Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon || math.IsNaN(d) {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func positions(p *Path) []geom.Point {
	out := make([]geom.Point, len(p.segments))
	for i, s := range p.segments {
		out[i] = s.point
	}
	return out
}

// checkCurves verifies that the path's curves connect its segments in order.
func checkCurves(t *testing.T, p *Path) {
	t.Helper()
	n := len(p.segments)
	want := max(n-1, 0)
	if p.closed && n > 1 {
		want = n
	}
	if len(p.curves) != want {
		t.Fatalf("got %d curves for %d segments (closed: %t), want %d", len(p.curves), n, p.closed, want)
	}
	for i, s := range p.segments {
		if s.index != i || s.path != p {
			t.Fatalf("segment %d has index %d and path %p", i, s.index, s.path)
		}
	}
	for i, c := range p.curves {
		if c.index != i || c.path != p || c.seg1 != p.segments[i] || c.seg2 != p.segments[(i+1)%n] {
			t.Fatalf("curve %d is not wired to segments %d and %d", i, i, (i+1)%n)
		}
	}
}
