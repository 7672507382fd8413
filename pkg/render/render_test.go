package render

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/geom"
	"github.com/matzehuels/freehand/pkg/jitter"
	"github.com/matzehuels/freehand/pkg/scene"
)

func testStrokes(t *testing.T) []scene.Stroke {
	t.Helper()
	sc := &scene.Scene{
		Width:  100,
		Height: 50,
		Shapes: []scene.Shape{
			{Kind: scene.KindLine, Points: [][2]float64{{10, 10}, {90, 10}}},
			{Kind: scene.KindRect, Rect: []float64{10, 20, 80, 20}},
		},
	}
	if err := sc.Validate(); err != nil {
		t.Fatal(err)
	}
	return sc.Draw(jitter.NewSource(7), scene.DefaultStyle())
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"single", []string{"svg"}, false},
		{"all", []string{"svg", "png", "json"}, false},
		{"empty", nil, true},
		{"unknown", []string{"pdf"}, true},
		{"duplicate", []string{"svg", "svg"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) = %v", tt.formats, err)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("expected INVALID_FORMAT, got %v", err)
			}
		})
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:        "0.00",
		1.005:    "1.00",
		12.3456:  "12.35",
		-0.001:   "0.00",
		-3.14159: "-3.14",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	strokes := testStrokes(t)
	svg := string(RenderSVG(strokes, WithCanvas(geom.R(0, 0, 100, 50)), WithBackground("#ffffff")))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0.00 0.00 100.00 50.00"`) {
		t.Errorf("unexpected header: %.100s", svg)
	}
	if !strings.Contains(svg, `<rect x="0.00" y="0.00" width="100.00" height="50.00" fill="#ffffff"/>`) {
		t.Error("missing background rect")
	}
	if got := strings.Count(svg, "<path "); got != 2 {
		t.Errorf("paths = %d, want 2", got)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
}

func TestPathData(t *testing.T) {
	strokes := testStrokes(t)

	line := PathData(strokes[0].Path)
	if !strings.HasPrefix(line, "M 10.00 10.00 C ") {
		t.Errorf("line data starts %.30q", line)
	}
	// Double line: move, three cubics, move, three cubics.
	if got := strings.Count(line, "M "); got != 2 {
		t.Errorf("line moves = %d, want 2", got)
	}
	if got := strings.Count(line, "C "); got != 6 {
		t.Errorf("line cubics = %d, want 6", got)
	}

	rect := PathData(strokes[1].Path)
	if got := strings.Count(rect, "C "); got != 24 {
		t.Errorf("rect cubics = %d, want 24", got)
	}
	if !strings.HasSuffix(rect, " Z") {
		t.Errorf("rect data should end with Z: ...%s", rect[len(rect)-20:])
	}
}

func TestRenderSVGViewportFromBounds(t *testing.T) {
	strokes := testStrokes(t)
	svg := string(RenderSVG(strokes, WithPadding(0)))
	// Jitter stays within max offset of the geometry, so the box starts
	// close to (10, 10).
	start := strings.Index(svg, `viewBox="`) + len(`viewBox="`)
	fields := strings.Fields(svg[start : start+strings.Index(svg[start:], `"`)])
	if len(fields) != 4 {
		t.Fatalf("viewBox fields = %v", fields)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || x < 7 || x > 11 {
		t.Errorf("viewBox x = %s, want near 10", fields[0])
	}
}

func TestRenderEmpty(t *testing.T) {
	svg := string(RenderSVG(nil))
	if !strings.Contains(svg, `viewBox="0.00 0.00 1.00 1.00"`) {
		t.Errorf("empty render viewBox: %s", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	strokes := testStrokes(t)
	data, err := RenderPNG(strokes, WithCanvas(geom.R(0, 0, 100, 50)), WithScale(2), WithBackground("#ffffff"))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("size = %dx%d, want 200x100", b.Dx(), b.Dy())
	}

	// Something dark must have been drawn along the line at y=10.
	dark := false
	for x := 40; x < 160 && !dark; x++ {
		for y := 14; y < 26; y++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && b < 0x8000 {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Error("no stroke pixels found along the line")
	}
}

func TestRenderJSON(t *testing.T) {
	strokes := testStrokes(t)
	data, err := RenderJSON(strokes, WithCanvas(geom.R(0, 0, 100, 50)))
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ViewBox [4]float64 `json:"view_box"`
		Strokes []struct {
			Kind     string `json:"kind"`
			Commands []struct {
				Op     string       `json:"op"`
				Points [][2]float64 `json:"points"`
			} `json:"commands"`
		} `json:"strokes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.ViewBox != [4]float64{0, 0, 100, 50} {
		t.Errorf("view_box = %v", out.ViewBox)
	}
	if len(out.Strokes) != 2 {
		t.Fatalf("strokes = %d, want 2", len(out.Strokes))
	}

	counts := map[string]int{}
	for _, c := range out.Strokes[1].Commands {
		counts[c.Op]++
		if c.Op == "C" && len(c.Points) != 3 {
			t.Errorf("cubic with %d points", len(c.Points))
		}
	}
	if counts["M"] != 1 || counts["C"] != 24 || counts["Z"] != 1 {
		t.Errorf("rect command counts = %v", counts)
	}
}

func TestRenderDispatch(t *testing.T) {
	strokes := testStrokes(t)
	for _, f := range Formats {
		data, err := Render(f, strokes)
		if err != nil || len(data) == 0 {
			t.Errorf("Render(%s) = %d bytes, %v", f, len(data), err)
		}
	}
	if _, err := Render("gif", strokes); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v", err)
	}
}
