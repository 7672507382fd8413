// Package spline fits Catmull-Rom splines through ordered point sequences
// and expresses them as cubic Bezier segments.
//
// The fitter uses the centripetal formulation with a fixed exponent
// [Alpha] of 0, which reduces to uniform Catmull-Rom tangents. The distance
// terms are still computed so the blend stays correct if the exponent ever
// changes.
package spline

import (
	"math"

	"github.com/matzehuels/freehand/pkg/geom"
)

const (
	// Alpha is the parameterization exponent (0 = uniform).
	Alpha = 0.0

	// Epsilon is the distance below which a neighbor is treated as
	// coincident and the corresponding control point collapses onto its
	// anchor.
	Epsilon = 1.0e-5

	// MinPoints is the fewest points that produce any output.
	MinPoints = 4
)

// CurveSink receives cubic segments. The segment starts at the sink's
// current point.
type CurveSink interface {
	CubicTo(c1, c2, to geom.Point)
}

// Cubic is one emitted segment: control points C1, C2 and end point To.
type Cubic struct {
	C1, C2, To geom.Point
}

// CatmullRom fits pts and emits len(pts)-3 cubic segments to sink, one per
// interior span pts[i]→pts[i+1] for i in [1, len(pts)-3]. Fewer than
// [MinPoints] points emit nothing.
func CatmullRom(sink CurveSink, pts []geom.Point) {
	for _, c := range Segments(pts) {
		sink.CubicTo(c.C1, c.C2, c.To)
	}
}

// Segments is the pure form of [CatmullRom].
func Segments(pts []geom.Point) []Cubic {
	n := len(pts)
	if n < MinPoints {
		return nil
	}

	out := make([]Cubic, 0, n-3)
	for i := 1; i < n-2; i++ {
		prev := i - 1
		if prev < 0 {
			prev = n - 1
		}
		next := (i + 1) % n
		nextNext := (next + 1) % n

		p0, p1, p2, p3 := pts[prev], pts[i], pts[next], pts[nextNext]
		b1, b2 := controls(p0, p1, p2, p3, Alpha)
		out = append(out, Cubic{C1: b1, C2: b2, To: p2})
	}
	return out
}

// controls returns the Bezier control points for the span p1→p2.
func controls(p0, p1, p2, p3 geom.Point, alpha float64) (b1, b2 geom.Point) {
	d1 := p1.Distance(p0)
	d2 := p2.Distance(p1)
	d3 := p3.Distance(p2)

	d1a, d2a, d3a := math.Pow(d1, alpha), math.Pow(d2, alpha), math.Pow(d3, alpha)
	d1a2, d2a2, d3a2 := math.Pow(d1, 2*alpha), math.Pow(d2, 2*alpha), math.Pow(d3, 2*alpha)

	if math.Abs(d1) < Epsilon {
		b1 = p1
	} else {
		b1 = p2.Mul(d1a2).
			Sub(p0.Mul(d2a2)).
			Add(p1.Mul(2*d1a2 + d2a2 + 3*d1a*d2a)).
			Mul(1 / (3 * d1a * (d1a + d2a)))
	}

	if math.Abs(d3) < Epsilon {
		b2 = p2
	} else {
		b2 = p1.Mul(d3a2).
			Sub(p3.Mul(d2a2)).
			Add(p2.Mul(2*d3a2 + d2a2 + 3*d3a*d2a)).
			Mul(1 / (3 * d3a * (d3a + d2a)))
	}
	return b1, b2
}
