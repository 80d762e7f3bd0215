// Package paper implements a vector-graphics document kernel: a tree of
// groups and paths built from cubic Bézier segments, along with the
// algorithms needed to query and draw them.
//
// # Documents and items
//
// Every item belongs to a [Document], which is also the root of the item
// tree. Items are created through the document's factories ([Document.CreatePath],
// [Document.CreateGroup], [Document.CreateCircle] and friends) and are
// attached to the root. They can then be moved around with
// [Item.AddChild], [Item.InsertChild], [Item.InsertAbove] and
// [Item.InsertBelow], detached with [Item.Remove] and destroyed with
// [Item.Destroy].
//
// Each item has a local transform, relative to its parent, and a lazily
// computed absolute transform. Bounding boxes ([Item.Bounds],
// [Item.LocalBounds], [Item.StrokeBounds], [Item.HandleBounds]) are
// memoized and recomputed only after a change that can affect them.
//
// # Paths
//
// A [Path] is a list of [Segment]s, each an anchor point with an incoming
// and an outgoing handle stored relative to the anchor. Adjacent segments
// form [Curve]s. Paths can own other paths as children, which turns them
// into compound paths: the children's outlines become part of the parent's
// fill and stroke and share its winding context. Compound paths nest one
// level deep.
//
// # Style
//
// Style attributes such as the fill paint, the stroke width or the winding
// rule are stored per item in an [AttributeStore]. Attributes that aren't
// set on an item are inherited from its parent, falling back to fixed
// defaults at the root.
//
// # Algorithms
//
// The package provides:
//
//   - Flattening curves to polylines (see [Path.Contours] and [Path.Flatten])
//   - Point containment under non-zero and even-odd rules (see [Path.Contains])
//   - Stroke triangulation with joins, caps and dashes (see [TriangulateStroke])
//   - Fitting cubic curves to point sequences (see [FitCurve] and [Path.Simplify])
//   - Fill, stroke and handle bounds
//
// Drawing is left to a [Renderer], which receives fully resolved
// [DrawCommand]s from [Document.Draw]. The raster subpackage contains a
// reference implementation.
//
// # Coordinate system
//
// Like most 2D graphics systems, paper uses a y-down coordinate system.
// Positive angles rotate clockwise on screen, and a path is clockwise if its
// signed area is positive.
//
// # Concurrency
//
// Documents are not safe for concurrent use. Reads may update caches and
// must not overlap with other reads or writes.
package paper
