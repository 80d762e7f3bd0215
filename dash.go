package paper

import (
	"math"
	"slices"

	"honnef.co/go/paper/geom"
)

// normalizeDashes prepares a dash array for stroking. Negative lengths
// count as zero and odd-length arrays are repeated once, as in SVG. It
// reports false if the array disables dashing, because it is empty or its
// lengths sum to zero. The returned phase is the offset into the pattern at
// which stroking starts.
func normalizeDashes(array []float64, offset float64) (dashes []float64, phase float64, ok bool) {
	if len(array) == 0 {
		return nil, 0, false
	}
	dashes = make([]float64, len(array), 2*len(array))
	var sum float64
	for i, d := range array {
		if !(d > 0) {
			d = 0
		}
		dashes[i] = d
		sum += d
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return nil, 0, false
	}
	if len(dashes)%2 == 1 {
		dashes = append(dashes, dashes...)
		sum *= 2
	}
	phase = math.Mod(offset, sum)
	if phase < 0 {
		phase += sum
	}
	if math.IsNaN(phase) {
		phase = 0
	}
	return dashes, phase, true
}

// dashState walks a dash pattern.
type dashState struct {
	dashes []float64
	idx    int
	// remaining is what is left of the current dash or gap.
	remaining float64
}

func newDashState(dashes []float64, phase float64) dashState {
	ds := dashState{dashes: dashes, remaining: dashes[0]}
	for phase > 0 {
		if phase >= ds.remaining {
			phase -= ds.remaining
			ds.next()
		} else {
			ds.remaining -= phase
			phase = 0
		}
	}
	return ds
}

// on reports whether the current entry is a dash rather than a gap.
func (ds *dashState) on() bool { return ds.idx%2 == 0 }

func (ds *dashState) next() {
	ds.idx = (ds.idx + 1) % len(ds.dashes)
	ds.remaining = ds.dashes[ds.idx]
}

// dashed strokes a polyline with the dash pattern, stroking every dash as
// an open polyline of its own.
func (t *triangulator) dashed(pts []geom.Point, joins []bool, closed bool, dashes []float64, phase float64) {
	pts, joins = dedupe(pts, joins, closed)
	n := len(pts)
	if n == 0 {
		return
	}
	ds := newDashState(dashes, phase)
	if n == 1 {
		if ds.on() {
			t.dot(pts[0])
		}
		return
	}

	type piece struct {
		pts   []geom.Point
		joins []bool
	}
	var (
		pieces []piece
		cur    *piece
		// startsOn is set if the first dash begins at the first vertex.
		startsOn = ds.on()
		toggled  bool
	)
	begin := func(pt geom.Point) {
		pieces = append(pieces, piece{pts: []geom.Point{pt}, joins: []bool{false}})
		cur = &pieces[len(pieces)-1]
	}
	extend := func(pt geom.Point, join bool) {
		cur.pts = append(cur.pts, pt)
		cur.joins = append(cur.joins, join)
	}
	if startsOn {
		begin(pts[0])
	}

	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		l := a.Distance(b)
		pos := 0.0
		for l-pos > ds.remaining {
			pos += ds.remaining
			q := a.Lerp(b, pos/l)
			if ds.on() {
				extend(q, false)
				cur = nil
			} else {
				begin(q)
			}
			toggled = true
			ds.next()
		}
		ds.remaining -= l - pos
		if ds.on() {
			j := (i + 1) % n
			// The end of an open polyline is never a join.
			join := joins[j] && (closed || j != n-1)
			extend(b, join)
		}
	}

	if closed && !toggled {
		// A single dash or gap covers the whole outline.
		if startsOn {
			t.polyline(pts, joins, true)
		}
		return
	}
	if closed && startsOn && ds.on() && cur != nil && len(pieces) > 1 {
		// The last dash runs into the first one through the first vertex.
		first := pieces[0]
		cur.joins[len(cur.joins)-1] = joins[0]
		cur.pts = append(cur.pts, first.pts[1:]...)
		cur.joins = append(cur.joins, first.joins[1:]...)
		pieces = pieces[1:]
	}
	for _, pc := range pieces {
		pc.joins[len(pc.joins)-1] = false
		t.polyline(pc.pts, slices.Clip(pc.joins), false)
	}
}
