package render

import (
	"bytes"

	"github.com/gogpu/gg"

	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/path"
	"github.com/matzehuels/freehand/pkg/scene"
)

// RenderPNG rasterizes strokes with the software renderer.
func RenderPNG(strokes []scene.Stroke, opts ...Option) ([]byte, error) {
	o := resolve(opts)
	vb := o.viewport(strokes)

	dc := gg.NewContext(pixels(vb.W, o.scale), pixels(vb.H, o.scale))
	defer dc.Close()

	if o.hasBackground() {
		dc.ClearWithColor(gg.Hex(o.background))
	}
	dc.Scale(o.scale, o.scale)
	dc.Translate(-vb.X, -vb.Y)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for i, s := range strokes {
		if s.Style.Stroke == "none" || s.Style.StrokeWidth == 0 || s.Path.Len() == 0 {
			continue
		}
		replay(dc, s.Path)
		dc.SetHexColor(s.Style.Stroke)
		dc.SetLineWidth(s.Style.StrokeWidth)
		if err := dc.Stroke(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "stroke %d", i)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func replay(dc *gg.Context, rec *path.Recorder) {
	for _, el := range rec.Elements() {
		p := el.Points
		switch el.Op {
		case path.OpMove:
			dc.MoveTo(p[0].X, p[0].Y)
		case path.OpLine:
			dc.LineTo(p[0].X, p[0].Y)
		case path.OpQuad:
			dc.QuadraticTo(p[0].X, p[0].Y, p[1].X, p[1].Y)
		case path.OpCubic:
			dc.CubicTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		case path.OpClose:
			dc.ClosePath()
		}
	}
}
