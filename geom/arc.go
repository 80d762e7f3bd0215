package geom

import (
	"iter"
	"math"
)

// Kappa is the handle length, relative to the radius, of the cubic that best
// approximates a quarter circle: 4(√2−1)/3.
const Kappa = 0.5522847498307936

// Arc is an elliptical arc, possibly rotated.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Cubics approximates the arc with cubic Béziers, one for every started
// quarter turn of sweep. Each piece's handles have length
// 4/3·tan(θ/4) times the radius for a piece sweeping θ.
func (a Arc) Cubics() iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		n := max(math.Ceil(math.Abs(a.SweepAngle)/(math.Pi/2)-Epsilon), 1)
		angleStep := a.SweepAngle / n
		armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), a.SweepAngle)
		angle0 := a.StartAngle
		p0 := sampleEllipse(a.Radii, a.XRotation, angle0)

		for range int(n) {
			angle1 := angle0 + angleStep
			p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
			p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
			p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

			c := CubicBez{
				a.Center.Translate(p0),
				a.Center.Translate(p1),
				a.Center.Translate(p2),
				a.Center.Translate(p3),
			}
			angle0 = angle1
			p0 = p3
			if !yield(c) {
				break
			}
		}
	}
}

// Start returns the arc's first point.
func (a Arc) Start() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle))
}

// End returns the arc's last point.
func (a Arc) End() Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, a.StartAngle+a.SweepAngle))
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and an
// angle, and returns the offset of the point on the ellipse from its center.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{radii.X * cos, radii.Y * sin}.Rotate(xRotation)
}

// ArcFromSVG converts an SVG-style endpoint parameterized arc into center
// form. Radii that are too small to span the two points are scaled up, as
// SVG requires. It reports false when the arc degenerates into a straight
// line, because a radius is zero or the end points coincide.
func ArcFromSVG(from, to Point, radii Vec2, xRotation float64, largeArc, sweep bool) (Arc, bool) {
	rx := math.Abs(radii.X)
	ry := math.Abs(radii.Y)
	if rx <= 1e-5 || ry <= 1e-5 || from == to {
		return Arc{}, false
	}
	xr := math.Mod(xRotation, 2*math.Pi)
	sinPhi, cosPhi := math.Sincos(xr)
	hdX := (from.X - to.X) * 0.5
	hdY := (from.Y - to.Y) * 0.5
	hsX := (from.X + to.X) * 0.5
	hsY := (from.Y + to.Y) * 0.5
	p := Vec2{
		X: cosPhi*hdX + sinPhi*hdY,
		Y: -sinPhi*hdX + cosPhi*hdY,
	}

	rf := p.X*p.X/(rx*rx) + p.Y*p.Y/(ry*ry)
	if rf > 1 {
		s := math.Sqrt(rf)
		rx *= s
		ry *= s
	}
	rxry := rx * ry
	rxpy := rx * p.Y
	rypx := ry * p.X
	sumOfSq := rxpy*rxpy + rypx*rypx
	if sumOfSq == 0 {
		return Arc{}, false
	}

	signCoe := 1.0
	if largeArc == sweep {
		signCoe = -1.0
	}
	coe := signCoe * math.Sqrt(math.Abs((rxry*rxry-sumOfSq)/sumOfSq))
	tcx := coe * rxpy / ry
	tcy := -coe * rypx / rx

	center := Point{
		X: cosPhi*tcx - sinPhi*tcy + hsX,
		Y: sinPhi*tcx + cosPhi*tcy + hsY,
	}
	startV := Vec2{(p.X - tcx) / rx, (p.Y - tcy) / ry}
	endV := Vec2{(-p.X - tcx) / rx, (-p.Y - tcy) / ry}
	startAngle := startV.Angle()
	sweepAngle := math.Mod(endV.Angle()-startAngle, 2*math.Pi)
	if sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	} else if !sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	}
	return Arc{
		Center:     center,
		Radii:      Vec2{rx, ry},
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  xRotation,
	}, true
}
