package paper

import (
	"image/color"
	"slices"

	"honnef.co/go/paper/geom"
)

// PaintKind distinguishes the kinds of [Paint].
type PaintKind uint8

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintGradient
)

func (k PaintKind) String() string {
	switch k {
	case PaintNone:
		return "none"
	case PaintColor:
		return "color"
	case PaintGradient:
		return "gradient"
	default:
		return "PaintKind(?)"
	}
}

// Paint describes how a fill or a stroke is colored. The zero value paints
// nothing.
type Paint struct {
	kind     PaintKind
	color    color.Color
	gradient *LinearGradient
}

// NoPaint returns a paint that paints nothing.
func NoPaint() Paint { return Paint{} }

// ColorPaint returns a flat color paint. A nil color paints nothing.
func ColorPaint(c color.Color) Paint {
	if c == nil {
		return Paint{}
	}
	return Paint{kind: PaintColor, color: c}
}

// GradientPaint returns a linear gradient paint. A nil gradient paints
// nothing.
func GradientPaint(g *LinearGradient) Paint {
	if g == nil {
		return Paint{}
	}
	return Paint{kind: PaintGradient, gradient: g}
}

func (p Paint) Kind() PaintKind { return p.kind }

// IsNone reports whether p paints nothing.
func (p Paint) IsNone() bool { return p.kind == PaintNone }

// Color returns the flat color of a color paint, and nil otherwise.
func (p Paint) Color() color.Color { return p.color }

// Gradient returns the gradient of a gradient paint, and nil otherwise.
func (p Paint) Gradient() *LinearGradient { return p.gradient }

// equal reports whether p and o paint the same. Gradients are compared by
// identity.
func (p Paint) equal(o Paint) bool {
	if p.kind != o.kind || p.gradient != o.gradient {
		return false
	}
	if p.kind != PaintColor {
		return true
	}
	r0, g0, b0, a0 := p.color.RGBA()
	r1, g1, b1, a1 := o.color.RGBA()
	return r0 == r1 && g0 == g1 && b0 == b1 && a0 == a1
}

// ColorAt returns the color p paints at pt, in the coordinate space the
// paint is defined in.
func (p Paint) ColorAt(pt geom.Point) color.Color {
	switch p.kind {
	case PaintColor:
		return p.color
	case PaintGradient:
		return p.gradient.ColorAt(pt)
	default:
		return color.Transparent
	}
}

// GradientStop is a color at an offset along a gradient.
type GradientStop struct {
	Offset float64
	Color  color.Color
}

// LinearGradient is a color transition along the line from Origin to
// Destination. Points are projected onto that line; offsets outside of
// [0, 1] take the color of the nearest end.
type LinearGradient struct {
	Origin      geom.Point
	Destination geom.Point
	// Stops are sorted by offset. Stops with equal offsets keep the order
	// they were added in.
	Stops []GradientStop
}

// NewLinearGradient returns a gradient from origin to destination. The
// stops are copied and sorted.
func NewLinearGradient(origin, destination geom.Point, stops ...GradientStop) *LinearGradient {
	stops = slices.Clone(stops)
	slices.SortStableFunc(stops, compareStops)
	return &LinearGradient{
		Origin:      origin,
		Destination: destination,
		Stops:       stops,
	}
}

// AddStop inserts a color stop after all stops at the same or smaller
// offsets and returns the gradient for chaining.
func (g *LinearGradient) AddStop(offset float64, c color.Color) *LinearGradient {
	stop := GradientStop{Offset: offset, Color: c}
	i := slices.IndexFunc(g.Stops, func(s GradientStop) bool { return s.Offset > offset })
	if i < 0 {
		g.Stops = append(g.Stops, stop)
	} else {
		g.Stops = slices.Insert(g.Stops, i, stop)
	}
	return g
}

// ColorAt returns the gradient's color at pt.
func (g *LinearGradient) ColorAt(pt geom.Point) color.Color {
	if len(g.Stops) == 0 {
		return color.Transparent
	}
	stops := g.Stops
	d := g.Destination.Sub(g.Origin)
	lenSq := d.Hypot2()
	if lenSq == 0 {
		return stops[0].Color
	}
	t := pt.Sub(g.Origin).Dot(d) / lenSq
	t = min(max(t, 0), 1)
	return colorAtOffset(stops, t)
}

func compareStops(a, b GradientStop) int {
	switch {
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	default:
		return 0
	}
}

func colorAtOffset(stops []GradientStop, t float64) color.Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		return lerpColor(s0.Color, s1.Color, (t-s0.Offset)/span)
	}
	return last.Color
}

// lerpColor interpolates between two colors in non-premultiplied space.
func lerpColor(a, b color.Color, t float64) color.Color {
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{
		R: mix(ca.R, cb.R),
		G: mix(ca.G, cb.G),
		B: mix(ca.B, cb.B),
		A: mix(ca.A, cb.A),
	}
}
