package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/freehand/pkg/freehand"
	"github.com/matzehuels/freehand/pkg/geom"
	"github.com/matzehuels/freehand/pkg/jitter"
	"github.com/matzehuels/freehand/pkg/path"
)

// Kind names a shape type.
type Kind string

const (
	KindLine     Kind = "line"
	KindPolyline Kind = "polyline"
	KindPolygon  Kind = "polygon"
	KindRect     Kind = "rect"
	KindCurve    Kind = "curve"
)

// Kinds lists every supported shape kind.
var Kinds = []Kind{KindLine, KindPolyline, KindPolygon, KindRect, KindCurve}

// Default styling applied when neither the shape nor the scene sets a value.
const (
	DefaultStroke      = "#000000"
	DefaultStrokeWidth = 1.0
)

// Scene is a complete drawing.
type Scene struct {
	Width      float64   `toml:"width" yaml:"width" json:"width,omitempty"`
	Height     float64   `toml:"height" yaml:"height" json:"height,omitempty"`
	Seed       uint64    `toml:"seed" yaml:"seed" json:"seed,omitempty"`
	Background string    `toml:"background" yaml:"background" json:"background,omitempty"`
	Defaults   Overrides `toml:"defaults" yaml:"defaults" json:"defaults"`
	Shapes     []Shape   `toml:"shapes" yaml:"shapes" json:"shapes"`
}

// Shape is one drawable element. Points is used by every kind except rect,
// which reads Rect as [x, y, width, height].
type Shape struct {
	Kind   Kind         `toml:"kind" yaml:"kind" json:"kind"`
	Points [][2]float64 `toml:"points" yaml:"points" json:"points,omitempty"`
	Rect   []float64    `toml:"rect" yaml:"rect" json:"rect,omitempty"`
	Style  Overrides    `toml:"style" yaml:"style" json:"style"`
}

// Overrides holds optional style values. Nil and empty fields inherit.
type Overrides struct {
	MaxOffset   *float64 `toml:"max_offset" yaml:"max_offset" json:"max_offset,omitempty"`
	DoubleLine  *bool    `toml:"double_line" yaml:"double_line" json:"double_line,omitempty"`
	Stroke      string   `toml:"stroke" yaml:"stroke" json:"stroke,omitempty"`
	StrokeWidth *float64 `toml:"stroke_width" yaml:"stroke_width" json:"stroke_width,omitempty"`
}

// Style is a fully resolved stroke style.
type Style struct {
	MaxOffset   float64 `json:"max_offset"`
	DoubleLine  bool    `json:"double_line"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
}

// DefaultStyle returns the style used when nothing is overridden.
func DefaultStyle() Style {
	return Style{
		MaxOffset:   freehand.DefaultMaxOffset,
		DoubleLine:  freehand.DefaultDoubleLine,
		Stroke:      DefaultStroke,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// Apply returns s with every set field of o replacing its counterpart.
func (s Style) Apply(o Overrides) Style {
	if o.MaxOffset != nil {
		s.MaxOffset = *o.MaxOffset
	}
	if o.DoubleLine != nil {
		s.DoubleLine = *o.DoubleLine
	}
	if o.Stroke != "" {
		s.Stroke = o.Stroke
	}
	if o.StrokeWidth != nil {
		s.StrokeWidth = *o.StrokeWidth
	}
	return s
}

// Stroke is a rendered shape: its recorded path and resolved style.
type Stroke struct {
	Kind  Kind
	Style Style
	Path  *path.Recorder
}

// Draw renders every shape with base as the starting style. The scene's
// defaults apply on top of base and each shape's overrides on top of that.
// Draw assumes the scene is valid; call [Scene.Validate] first.
func (sc *Scene) Draw(src jitter.Source, base Style) []Stroke {
	pen := freehand.New(src)
	sceneStyle := base.Apply(sc.Defaults)

	out := make([]Stroke, 0, len(sc.Shapes))
	for _, sh := range sc.Shapes {
		style := sceneStyle.Apply(sh.Style)
		rec := path.NewRecorder()
		sh.draw(pen, rec, style)
		out = append(out, Stroke{Kind: sh.Kind, Style: style, Path: rec})
	}
	return out
}

func (sh Shape) draw(pen *freehand.Pen, rec *path.Recorder, style Style) {
	opts := []freehand.Option{
		freehand.WithMaxOffset(style.MaxOffset),
		freehand.WithDoubleLine(style.DoubleLine),
	}
	pts := sh.points()

	switch sh.Kind {
	case KindLine:
		rec.MoveTo(pts[0])
		pen.Line(rec, pts[1], opts...)
	case KindPolyline:
		pen.Polyline(rec, pts, opts...)
	case KindPolygon:
		pen.Polygon(rec, pts, opts...)
	case KindRect:
		pen.Rect(rec, geom.R(sh.Rect[0], sh.Rect[1], sh.Rect[2], sh.Rect[3]), opts...)
	case KindCurve:
		// The spline starts at the second point; the first and last only
		// shape the end tangents.
		rec.MoveTo(pts[1])
		pen.CatmullRom(rec, pts)
	}
}

func (sh Shape) points() []geom.Point {
	pts := make([]geom.Point, len(sh.Points))
	for i, p := range sh.Points {
		pts[i] = geom.Pt(p[0], p[1])
	}
	return pts
}

// Bounds returns the canvas rectangle, or false when the scene has no size.
func (sc *Scene) Bounds() (geom.Rect, bool) {
	if sc.Width <= 0 || sc.Height <= 0 {
		return geom.Rect{}, false
	}
	return geom.R(0, 0, sc.Width, sc.Height), true
}

// Hash returns a hex SHA-256 of the scene's canonical JSON encoding. Two
// scenes with the same content hash equal regardless of source format.
func (sc *Scene) Hash() string {
	data, err := json.Marshal(sc)
	if err != nil {
		// Validate rejects the only unmarshalable values (NaN and Inf), so
		// this means a field type was added that JSON cannot encode.
		panic("scene: hash: " + err.Error())
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
