// Package path records drawing commands into an in-memory Bezier path.
//
// [Recorder] is the path consumer used by the scene renderer, the HTTP
// server and the tests. It stores elements in a [curve.BezPath] so that
// sinks can replay them onto any backend.
package path

import (
	"math"

	"honnef.co/go/curve"

	"github.com/matzehuels/freehand/pkg/geom"
)

// Recorder accumulates MoveTo, CubicTo and Close commands.
// The zero value is ready to use with the current point at the origin.
type Recorder struct {
	bez     curve.BezPath
	current geom.Point
	start   geom.Point
	cubics  int
	closes  int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// CurrentPoint returns the end of the last command.
func (r *Recorder) CurrentPoint() geom.Point { return r.current }

// MoveTo starts a new subpath at p.
func (r *Recorder) MoveTo(p geom.Point) {
	r.bez.MoveTo(toCurve(p))
	r.current = p
	r.start = p
}

// CubicTo appends a cubic segment from the current point to to.
// A cubic without a preceding MoveTo starts at the current point.
func (r *Recorder) CubicTo(c1, c2, to geom.Point) {
	if len(r.bez) == 0 {
		r.bez.MoveTo(toCurve(r.current))
		r.start = r.current
	}
	r.bez.CubicTo(toCurve(c1), toCurve(c2), toCurve(to))
	r.current = to
	r.cubics++
}

// Close closes the current subpath; the current point returns to its start.
func (r *Recorder) Close() {
	if len(r.bez) == 0 {
		return
	}
	r.bez.ClosePath()
	r.current = r.start
	r.closes++
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	*r = Recorder{}
}

// BezPath returns the recorded path. The slice is shared with the recorder.
func (r *Recorder) BezPath() curve.BezPath { return r.bez }

// Len returns the number of recorded elements.
func (r *Recorder) Len() int { return len(r.bez) }

// Cubics returns the number of cubic segments recorded.
func (r *Recorder) Cubics() int { return r.cubics }

// Closes returns the number of Close commands recorded.
func (r *Recorder) Closes() int { return r.closes }

// Elements returns the recorded commands in order.
func (r *Recorder) Elements() []Element {
	out := make([]Element, 0, len(r.bez))
	for _, el := range r.bez {
		out = append(out, fromCurve(el))
	}
	return out
}

// Bounds returns the control box of every recorded point. It is empty for
// an empty recorder.
func (r *Recorder) Bounds() (geom.Rect, bool) {
	if len(r.bez) == 0 {
		return geom.Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, el := range r.Elements() {
		for _, p := range el.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return geom.Rect{}, false
	}
	return geom.R(minX, minY, maxX-minX, maxY-minY), true
}
