// Package freehand draws straight lines and rectangles as sketchy,
// hand-drawn strokes.
//
// # Overview
//
// A [Pen] turns each straight segment into six jittered control points and
// fits a Catmull-Rom spline through them, emitting cubic Bezier segments to
// a [Path]. With double-line enabled (the default) every segment is drawn a
// second time with half the jitter, which reads as a retraced pencil line.
//
//	rec := path.NewRecorder()
//	pen := freehand.New(jitter.NewSource(42))
//
//	rec.MoveTo(geom.Pt(0, 0))
//	pen.Line(rec, geom.Pt(100, 0))
//	pen.Rect(rec, geom.R(10, 10, 80, 40), freehand.WithMaxOffset(2))
//
// # Control points
//
// For a segment (x1, y1)→(x2, y2) with per-point jitter r() in
// [-offset, offset), divergence t and midpoint displacement m:
//
//	P1 = (x1 + r, y1 + r)
//	P2 = (x1 + r, y1 + r)
//	P3 = (m.X + x1 + (x2-x1)t + r, m.Y + y1 + (y2-y1)t + r)
//	P4 = (m.Y + x1 + 2(x2-x1)t + r, m.Y + y1 + 2(y2-y1)t + r)
//	P5 = (x2 + r, y2 + r)
//	P6 = (x2 + r, y2 + r)
//
// P4's x coordinate takes the displacement's Y component, and P1/P2 share
// one formula. Both are part of the look and are kept as is.
//
// Six points fit into three cubic segments, so one stroke of a segment
// emits three CubicTo calls ending near the segment's end point.
//
// # Determinism
//
// A Pen draws every sample from its [jitter.Source]. Seeded sources make
// output reproducible, which the render cache relies on. A Pen is not safe
// for concurrent use.
package freehand
