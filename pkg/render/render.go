package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/geom"
	"github.com/matzehuels/freehand/pkg/scene"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

const (
	defaultPadding = 4.0
	defaultScale   = 1.0
	maxPNGSide     = 8192
)

// ValidateFormats checks that every format is supported and not repeated.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if _, ok := ContentTypes[f]; !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want %s)", f, strings.Join(Formats, ", "))
		}
		if seen[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q given twice", f)
		}
		seen[f] = true
	}
	return nil
}

// Render produces the artifact for one format.
func Render(format string, strokes []scene.Stroke, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(strokes, opts...), nil
	case FormatPNG:
		return RenderPNG(strokes, opts...)
	case FormatJSON:
		return RenderJSON(strokes, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

// Option configures every sink.
type Option func(*options)

type options struct {
	canvas     *geom.Rect
	background string
	padding    float64
	scale      float64
}

// WithCanvas fixes the viewport to r.
func WithCanvas(r geom.Rect) Option { return func(o *options) { o.canvas = &r } }

// WithBackground fills the viewport with a hex color before drawing.
func WithBackground(color string) Option { return func(o *options) { o.background = color } }

// WithPadding sets the margin around the stroke bounds when no canvas is set.
func WithPadding(p float64) Option { return func(o *options) { o.padding = p } }

// WithScale sets the PNG pixel density (default 1).
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

func resolve(opts []Option) options {
	o := options{padding: defaultPadding, scale: defaultScale}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = defaultScale
	}
	return o
}

func (o options) hasBackground() bool {
	return o.background != "" && o.background != "none"
}

// viewport returns the canvas, or the padded stroke bounds. With nothing
// drawn and no canvas it is a 1x1 box at the origin.
func (o options) viewport(strokes []scene.Stroke) geom.Rect {
	if o.canvas != nil {
		return *o.canvas
	}
	var (
		box   geom.Rect
		found bool
	)
	for _, s := range strokes {
		b, ok := s.Path.Bounds()
		if !ok {
			continue
		}
		if !found {
			box, found = b, true
			continue
		}
		box = box.Union(b)
	}
	if !found {
		return geom.R(0, 0, 1, 1)
	}
	return box.Inset(-o.padding)
}

// num formats v with two decimals and no negative zero.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

func pixels(v, scale float64) int {
	return max(1, min(maxPNGSide, int(math.Ceil(v*scale))))
}

func pointString(p geom.Point) string {
	return fmt.Sprintf("%s %s", num(p.X), num(p.Y))
}
