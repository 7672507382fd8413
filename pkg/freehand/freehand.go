package freehand

import (
	"github.com/matzehuels/freehand/pkg/geom"
	"github.com/matzehuels/freehand/pkg/jitter"
	"github.com/matzehuels/freehand/pkg/spline"
)

const (
	// DefaultMaxOffset is the jitter bound used when no option overrides it.
	DefaultMaxOffset = 1.0

	// DefaultDoubleLine enables the retrace pass by default.
	DefaultDoubleLine = true

	primaryMultiplier = 1.0
	retraceMultiplier = 0.5
)

// Path consumes the pen's output.
type Path interface {
	CurrentPoint() geom.Point
	MoveTo(p geom.Point)
	CubicTo(c1, c2, to geom.Point)
	Close()
}

// Option configures a single drawing call.
type Option func(*options)

type options struct {
	maxOffset  float64
	doubleLine bool
}

// WithMaxOffset sets the maximum jitter in path units.
func WithMaxOffset(v float64) Option { return func(o *options) { o.maxOffset = v } }

// WithDoubleLine toggles the lighter retrace pass.
func WithDoubleLine(v bool) Option { return func(o *options) { o.doubleLine = v } }

func resolve(opts []Option) options {
	o := options{maxOffset: DefaultMaxOffset, doubleLine: DefaultDoubleLine}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Pen synthesizes freehand strokes from a random source.
type Pen struct {
	src jitter.Source
}

// New returns a pen drawing samples from src.
func New(src jitter.Source) *Pen {
	return &Pen{src: src}
}

// stroke is one segment with its derived parameters.
type stroke struct {
	seg    geom.Segment
	params jitter.Params
}

func (pen *Pen) derive(seg geom.Segment, maxOffset float64) stroke {
	return stroke{seg: seg, params: jitter.Derive(pen.src, seg, maxOffset)}
}

// Line draws a freehand line from p's current point to to.
func (pen *Pen) Line(p Path, to geom.Point, opts ...Option) {
	o := resolve(opts)
	from := p.CurrentPoint()
	s := pen.derive(geom.Seg(from, to), o.maxOffset)

	pen.draw(p, s, primaryMultiplier)
	if o.doubleLine {
		p.MoveTo(from)
		pen.draw(p, s, retraceMultiplier)
	}
}

// Rect draws the four edges of r clockwise from its minimum corner and
// closes the path. With double-line the four edges are traced twice before
// closing.
func (pen *Pen) Rect(p Path, r geom.Rect, opts ...Option) {
	o := resolve(opts)
	p.MoveTo(r.Origin())

	edges := r.Edges()
	strokes := make([]stroke, len(edges))
	for i, e := range edges {
		strokes[i] = pen.derive(e, o.maxOffset)
	}

	for _, s := range strokes {
		pen.draw(p, s, primaryMultiplier)
	}
	if o.doubleLine {
		for _, s := range strokes {
			pen.draw(p, s, retraceMultiplier)
		}
	}
	p.Close()
}

// Polyline moves to pts[0] and draws a freehand line through every
// following point. Fewer than two points draw nothing.
func (pen *Pen) Polyline(p Path, pts []geom.Point, opts ...Option) {
	if len(pts) < 2 {
		return
	}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		pen.Line(p, pt, opts...)
	}
}

// Polygon draws a closed polyline: every edge including the one back to
// pts[0], then closes the path.
func (pen *Pen) Polygon(p Path, pts []geom.Point, opts ...Option) {
	if len(pts) < 2 {
		return
	}
	closed := make([]geom.Point, 0, len(pts)+1)
	closed = append(closed, pts...)
	closed = append(closed, pts[0])
	pen.Polyline(p, closed, opts...)
	p.Close()
}

// CatmullRom fits a spline through pts without any jitter.
func (pen *Pen) CatmullRom(p Path, pts []geom.Point) {
	spline.CatmullRom(p, pts)
}

func (pen *Pen) draw(p Path, s stroke, multiplier float64) {
	cp := ControlPoints(pen.src, s.seg, s.params, multiplier)
	spline.CatmullRom(p, cp[:])
}

// ControlPoints builds the six jittered control points for seg. It draws
// twelve samples from src, x before y, in point order.
func ControlPoints(src jitter.Source, seg geom.Segment, params jitter.Params, multiplier float64) [6]geom.Point {
	x1, y1 := seg.From.X, seg.From.Y
	x2, y2 := seg.To.X, seg.To.Y
	t := params.DivergePoint
	m := params.MidpointDisplacement
	offset := params.Offset * multiplier

	r := func() float64 { return jitter.Offset(src, -offset, offset) }

	var cp [6]geom.Point
	cp[0] = geom.Pt(x1+r(), y1+r())
	cp[1] = geom.Pt(x1+r(), y1+r())
	cp[2] = geom.Pt(m.X+x1+(x2-x1)*t+r(), m.Y+y1+(y2-y1)*t+r())
	cp[3] = geom.Pt(m.Y+x1+2*(x2-x1)*t+r(), m.Y+y1+2*(y2-y1)*t+r())
	cp[4] = geom.Pt(x2+r(), y2+r())
	cp[5] = geom.Pt(x2+r(), y2+r())
	return cp
}

// AddFreehandLine draws a line on p with explicit arguments.
func AddFreehandLine(src jitter.Source, p Path, to geom.Point, maxOffset float64, doubleLine bool) {
	New(src).Line(p, to, WithMaxOffset(maxOffset), WithDoubleLine(doubleLine))
}

// AddFreehandRect draws a rectangle on p with explicit arguments.
func AddFreehandRect(src jitter.Source, p Path, r geom.Rect, maxOffset float64, doubleLine bool) {
	New(src).Rect(p, r, WithMaxOffset(maxOffset), WithDoubleLine(doubleLine))
}

// AddCatmullRomCurve fits a spline through pts onto p.
func AddCatmullRomCurve(p Path, pts []geom.Point) {
	spline.CatmullRom(p, pts)
}
