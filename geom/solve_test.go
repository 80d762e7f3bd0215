package geom

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSolveQuadratic(t *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-12)
	tests := []struct {
		c0, c1, c2 float64
		want       []float64
	}{
		{2, -3, 1, []float64{1, 2}},
		{-4, 0, 1, []float64{-2, 2}},
		{1, 0, 1, []float64{}},
		{1, -2, 1, []float64{1}},
		{-5, 2, 0, []float64{2.5}},
		{0, 0, 0, []float64{0}},
		{3, 0, 0, []float64{}},
	}
	for _, tt := range tests {
		roots, n := SolveQuadratic(tt.c0, tt.c1, tt.c2)
		diff(t, tt.want, roots[:n], opt, cmpopts.EquateEmpty())
	}
}

func TestSolveCubic(t *testing.T) {
	opt := cmpopts.EquateApprox(0, 1e-9)
	tests := []struct {
		c0, c1, c2, c3 float64
		want           []float64
	}{
		// (x-1)(x-2)(x-3)
		{-6, 11, -6, 1, []float64{1, 2, 3}},
		// x³ - 8
		{-8, 0, 0, 1, []float64{2}},
		// falls back to the quadratic
		{2, -3, 1, 0, []float64{1, 2}},
		{0, 0, 0, 0, []float64{0}},
	}
	for _, tt := range tests {
		roots, n := SolveCubic(tt.c0, tt.c1, tt.c2, tt.c3)
		got := slices.Clone(roots[:n])
		slices.Sort(got)
		diff(t, tt.want, got, opt)
	}
}

func TestSolveITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 2 }
	got := SolveITP(f, 0, 2, 1e-12, 1, 0.2, f(0), f(2))
	if d := math.Abs(got - math.Cbrt(2)); d > 1e-11 {
		t.Errorf("got %g, want %g", got, math.Cbrt(2))
	}
}
