package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/freehand/pkg/path"
	"github.com/matzehuels/freehand/pkg/scene"
)

// RenderSVG renders strokes as an SVG document.
func RenderSVG(strokes []scene.Stroke, opts ...Option) []byte {
	o := resolve(opts)
	vb := o.viewport(strokes)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(vb.X), num(vb.Y), num(vb.W), num(vb.H), num(vb.W), num(vb.H))

	if o.hasBackground() {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(vb.X), num(vb.Y), num(vb.W), num(vb.H), o.background)
	}

	for _, s := range strokes {
		d := PathData(s.Path)
		if d == "" {
			continue
		}
		fmt.Fprintf(&buf, `  <path class="%s" d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			s.Kind, d, s.Style.Stroke, num(s.Style.StrokeWidth))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// PathData returns the SVG path data for a recorded path.
func PathData(rec *path.Recorder) string {
	var sb strings.Builder
	for i, el := range rec.Elements() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(string(el.Op))
		for _, p := range el.Points {
			sb.WriteByte(' ')
			sb.WriteString(pointString(p))
		}
	}
	return sb.String()
}
