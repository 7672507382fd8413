package path

import (
	"honnef.co/go/curve"

	"github.com/matzehuels/freehand/pkg/geom"
)

// Op identifies a path command using SVG letters.
type Op string

const (
	OpMove  Op = "M"
	OpLine  Op = "L"
	OpQuad  Op = "Q"
	OpCubic Op = "C"
	OpClose Op = "Z"
)

// Element is a single recorded command. Points holds the command's
// arguments in SVG order: control points first, end point last.
type Element struct {
	Op     Op           `json:"op"`
	Points []geom.Point `json:"points,omitempty"`
}

// End returns the element's end point, or false for Close.
func (e Element) End() (geom.Point, bool) {
	if len(e.Points) == 0 {
		return geom.Point{}, false
	}
	return e.Points[len(e.Points)-1], true
}

func toCurve(p geom.Point) curve.Point { return curve.Pt(p.X, p.Y) }

func fromPt(p curve.Point) geom.Point { return geom.Pt(p.X, p.Y) }

func fromCurve(el curve.PathElement) Element {
	switch el.Kind {
	case curve.MoveToKind:
		return Element{Op: OpMove, Points: []geom.Point{fromPt(el.P0)}}
	case curve.LineToKind:
		return Element{Op: OpLine, Points: []geom.Point{fromPt(el.P0)}}
	case curve.QuadToKind:
		return Element{Op: OpQuad, Points: []geom.Point{fromPt(el.P0), fromPt(el.P1)}}
	case curve.CubicToKind:
		return Element{Op: OpCubic, Points: []geom.Point{fromPt(el.P0), fromPt(el.P1), fromPt(el.P2)}}
	default:
		return Element{Op: OpClose}
	}
}
