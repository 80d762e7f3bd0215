package paper

import (
	"fmt"
	"math"

	"honnef.co/go/paper/geom"
)

// WindingRule decides which points a fill covers, based on their winding
// number.
type WindingRule uint8

const (
	// NonZero fills points with a non-zero winding number.
	NonZero WindingRule = iota
	// EvenOdd fills points with an odd winding number.
	EvenOdd
)

func (r WindingRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("WindingRule(%d)", r)
	}
}

// Fills reports whether a point with winding number w is filled.
func (r WindingRule) Fills(w int) bool {
	if r == EvenOdd {
		return w&1 == 1
	}
	return w != 0
}

// windingEpsilon is the half width of the bands within which a crossing
// counts as on the curve, and a piece counts as horizontal.
const windingEpsilon = 1e-9

// monoCurve is a piece of a curve whose y coordinate is monotonic.
type monoCurve struct {
	c geom.CubicBez
	// winding is 1 if y increases along the piece, -1 if it decreases, and 0
	// if the piece is horizontal.
	winding int
}

type windingLoop struct {
	curves []monoCurve
	// last is the index of the loop's last non-horizontal piece, or -1.
	last int
}

// WindingContext computes winding numbers of points with respect to a set
// of closed loops of cubics.
type WindingContext struct {
	loops  []windingLoop
	bounds geom.Rect
}

// NewWindingContext returns a context for the given loops. Loops that don't
// end where they start are closed with a straight line.
func NewWindingContext(loops ...[]geom.CubicBez) *WindingContext {
	ctx := &WindingContext{bounds: geom.EmptyRect}
	for _, l := range loops {
		ctx.addLoop(l)
	}
	return ctx
}

func (ctx *WindingContext) addLoop(curves []geom.CubicBez) {
	if len(curves) == 0 {
		return
	}
	var wl windingLoop
	for _, c := range curves {
		wl.curves = appendMonotonic(wl.curves, c)
		ctx.bounds = ctx.bounds.Union(c.BoundingBox())
	}
	if first, last := curves[0].P0, curves[len(curves)-1].P3; first != last {
		wl.curves = appendMonotonic(wl.curves, geom.Line{P0: last, P1: first}.Cubic())
	}
	wl.last = -1
	for i := len(wl.curves) - 1; i >= 0; i-- {
		if wl.curves[i].winding != 0 {
			wl.last = i
			break
		}
	}
	ctx.loops = append(ctx.loops, wl)
}

// appendMonotonic splits c at the roots of its y derivative and appends the
// pieces.
func appendMonotonic(dst []monoCurve, c geom.CubicBez) []monoCurve {
	roots, n := c.YRoots()
	prev := 0.0
	rest := c
	for _, t := range roots[:n] {
		// Map t into the remaining piece.
		u := (t - prev) / (1 - prev)
		var piece geom.CubicBez
		piece, rest = rest.SubdivideAt(u)
		dst = append(dst, newMonoCurve(piece))
		prev = t
	}
	return append(dst, newMonoCurve(rest))
}

func newMonoCurve(c geom.CubicBez) monoCurve {
	dy := c.P3.Y - c.P0.Y
	w := 0
	switch {
	case math.Abs(dy) <= windingEpsilon:
	case dy > 0:
		w = 1
	default:
		w = -1
	}
	return monoCurve{c: c, winding: w}
}

// Bounds returns the bounding box of all loops.
func (ctx *WindingContext) Bounds() geom.Rect { return ctx.bounds }

// Winding returns the winding number of pt. Points on an outline count as
// inside of it.
//
// Crossings of a horizontal line through pt are counted separately to the
// left and to the right of pt, and the larger magnitude wins. If pt lies
// on a horizontal piece of an outline, that count is indeterminate, and
// the points halfway to the nearest crossings of a vertical line above and
// below pt are queried instead.
func (ctx *WindingContext) Winding(pt geom.Point) int {
	if !ctx.bounds.Contains(pt) {
		return 0
	}
	if ctx.onHorizontal(pt) {
		return ctx.windingVertical(pt)
	}
	return ctx.windingHorizontal(pt)
}

func (ctx *WindingContext) onHorizontal(pt geom.Point) bool {
	for _, l := range ctx.loops {
		for _, mc := range l.curves {
			if mc.winding != 0 {
				continue
			}
			c := mc.c
			if math.Abs(pt.Y-c.P0.Y) > windingEpsilon && math.Abs(pt.Y-c.P3.Y) > windingEpsilon {
				continue
			}
			if (pt.X-c.P0.X)*(pt.X-c.P3.X) <= 0 {
				return true
			}
		}
	}
	return false
}

// windingVertical resolves the winding number of a point on a horizontal
// piece by querying the points between it and its nearest neighbours on
// the outline above and below.
func (ctx *WindingContext) windingVertical(pt geom.Point) int {
	yTop := math.Inf(-1)
	yBottom := math.Inf(1)
	yBefore := pt.Y - windingEpsilon
	yAfter := pt.Y + windingEpsilon
	for _, l := range ctx.loops {
		for _, mc := range l.curves {
			roots, n := mc.c.SolveX(pt.X)
			for _, t := range roots[:n] {
				y := mc.c.Eval(t).Y
				if y < yBefore && y > yTop {
					yTop = y
				} else if y > yAfter && y < yBottom {
					yBottom = y
				}
			}
		}
	}
	var above, below int
	if !math.IsInf(yTop, -1) {
		above = ctx.windingHorizontal(geom.Pt(pt.X, (yTop+pt.Y)/2))
	}
	if !math.IsInf(yBottom, 1) {
		below = ctx.windingHorizontal(geom.Pt(pt.X, (yBottom+pt.Y)/2))
	}
	return max(above, below)
}

func (ctx *WindingContext) windingHorizontal(pt geom.Point) int {
	px, py := pt.X, pt.Y
	xBefore := px - windingEpsilon
	xAfter := px + windingEpsilon
	var left, right int
	var onLeft, onRight int
	for _, l := range ctx.loops {
		prevWinding := 0
		prevXEnd := math.NaN()
		if l.last >= 0 {
			prevWinding = l.curves[l.last].winding
			prevXEnd = l.curves[l.last].c.P3.X
		}
		onCurve := false
		for _, mc := range l.curves {
			c := mc.c
			yStart, yEnd := c.P0.Y, c.P3.Y
			if !(py >= yStart && py <= yEnd || py >= yEnd && py <= yStart) {
				continue
			}
			if mc.winding == 0 {
				if (px-c.P0.X)*(px-c.P3.X) <= 0 {
					onCurve = true
				}
				continue
			}
			x := c.Eval(c.SolveMonotonicY(py)).X
			switch {
			case x >= xBefore && x <= xAfter:
				onCurve = true
			// A crossing at the start of a piece was already counted at the
			// end of the previous one, unless the outline turned around
			// there or pt lies between the two.
			case (py != yStart || mc.winding != prevWinding) &&
				!(py == yStart && (px-x)*(px-prevXEnd) < 0):
				if x < xBefore {
					left += mc.winding
				} else {
					right += mc.winding
				}
			}
			prevWinding = mc.winding
			prevXEnd = c.P3.X
		}
		if onCurve {
			onLeft++
			onRight--
		}
	}
	if left == 0 && right == 0 {
		left, right = onLeft, onRight
	}
	return max(abs(left), abs(right))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// WindingContext returns the winding context of the path and its compound
// children, in the path's coordinate space. The result is cached.
func (p *Path) WindingContext() *WindingContext {
	return p.winding.get(func() *WindingContext {
		loops := p.loops()
		ctx := &WindingContext{bounds: geom.EmptyRect}
		for _, l := range loops {
			if len(l.curves) == 0 {
				continue
			}
			ctx.addLoop(l.curves)
		}
		return ctx
	})
}

// Winding returns the winding number of pt, given in the path's coordinate
// space.
func (p *Path) Winding(pt geom.Point) int {
	return p.WindingContext().Winding(pt)
}

// Contains reports whether the path's fill covers pt, given in the path's
// coordinate space, according to the path's winding rule. Points on the
// outline are contained.
func (p *Path) Contains(pt geom.Point) bool {
	if p.destroyed || !p.LocalBounds().Contains(pt) {
		return false
	}
	return p.WindingRule().Fills(p.Winding(pt))
}

// HitTest returns the top-most visible path whose fill covers pt, given in
// the item's parent's coordinate space, or nil. Members of compound paths
// are tested as part of their parent.
func (it *Item) HitTest(pt geom.Point) *Path {
	if it.destroyed || !it.Visible() {
		return nil
	}
	inv, ok := it.transform.Invert()
	if !ok {
		return nil
	}
	local := pt.Transform(inv)
	if it.path != nil {
		if it.path.Contains(local) {
			return it.path
		}
		return nil
	}
	for i := len(it.children) - 1; i >= 0; i-- {
		if hit := it.children[i].HitTest(local); hit != nil {
			return hit
		}
	}
	return nil
}
