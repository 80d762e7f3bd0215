// Package geom provides the plane geometry the document kernel is built on:
// points and vectors, affine transforms, rectangles, lines and cubic Bézier
// curves, as well as the numeric root solvers and quadrature used to
// evaluate them.
//
// All types are small values. Methods never modify their receiver and never
// fail; degenerate inputs (zero-length curves, coincident points) produce
// well-defined degenerate results instead of NaNs wherever that is possible.
//
// The coordinate system is y-down, as is usual for graphics. Positive angles
// rotate the positive x axis towards the positive y axis, which is clockwise
// on screen.
package geom
