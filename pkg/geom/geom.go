// Package geom provides the small set of 2D value types shared by the
// freehand packages: points, segments and axis-aligned rectangles.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a 2D coordinate. It doubles as a displacement vector.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point        { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point        { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point      { return Point{p.X * s, p.Y * s} }
func (p Point) Len() float64             { return math.Hypot(p.X, p.Y) }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Len() }

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

// Seg returns the segment from a to b.
func Seg(a, b Point) Segment { return Segment{From: a, To: b} }

// LenSq returns the squared length of the segment.
func (s Segment) LenSq() float64 {
	dx, dy := s.To.X-s.From.X, s.To.Y-s.From.Y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned rectangle given by its origin corner and size.
// Width and height may be negative; the Min/Max accessors normalize them.
type Rect struct {
	X, Y, W, H float64
}

// R returns the rectangle with origin (x, y) and size (w, h).
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Origin() Point { return Point{r.X, r.Y} }
func (r Rect) MinX() float64 { return math.Min(r.X, r.X+r.W) }
func (r Rect) MaxX() float64 { return math.Max(r.X, r.X+r.W) }
func (r Rect) MinY() float64 { return math.Min(r.Y, r.Y+r.H) }
func (r Rect) MaxY() float64 { return math.Max(r.Y, r.Y+r.H) }

// Edges returns the four edges clockwise from the minimum corner:
// top, right, bottom, left (y grows downward).
func (r Rect) Edges() [4]Segment {
	tl := Point{r.MinX(), r.MinY()}
	tr := Point{r.MaxX(), r.MinY()}
	br := Point{r.MaxX(), r.MaxY()}
	bl := Point{r.MinX(), r.MaxY()}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.MinX(), o.MinX()), math.Min(r.MinY(), o.MinY())
	x1, y1 := math.Max(r.MaxX(), o.MaxX()), math.Max(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset grows (d < 0) or shrinks (d > 0) the normalized rectangle on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.MinX() + d, Y: r.MinY() + d, W: r.MaxX() - r.MinX() - 2*d, H: r.MaxY() - r.MinY() - 2*d}
}

// ParsePoint parses "x,y".
func ParsePoint(s string) (Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return Point{}, err
	}
	return Pt(v[0], v[1]), nil
}

// ParseRect parses "x,y,w,h".
func ParseRect(s string) (Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return Rect{}, err
	}
	return R(v[0], v[1], v[2], v[3]), nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%q is not finite", p)
		}
		out[i] = v
	}
	return out, nil
}
