package path

import (
	"testing"

	"github.com/matzehuels/freehand/pkg/freehand"
	"github.com/matzehuels/freehand/pkg/geom"
)

var _ freehand.Path = (*Recorder)(nil)

func TestRecorderCommands(t *testing.T) {
	r := NewRecorder()
	r.MoveTo(geom.Pt(1, 2))
	r.CubicTo(geom.Pt(2, 2), geom.Pt(3, 3), geom.Pt(4, 4))
	r.CubicTo(geom.Pt(5, 5), geom.Pt(6, 6), geom.Pt(7, 7))
	r.Close()

	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}
	if r.Cubics() != 2 {
		t.Errorf("Cubics() = %d, want 2", r.Cubics())
	}
	if r.Closes() != 1 {
		t.Errorf("Closes() = %d, want 1", r.Closes())
	}
	if got := r.CurrentPoint(); got != geom.Pt(1, 2) {
		t.Errorf("CurrentPoint() after Close = %v, want subpath start (1, 2)", got)
	}

	els := r.Elements()
	wantOps := []Op{OpMove, OpCubic, OpCubic, OpClose}
	for i, el := range els {
		if el.Op != wantOps[i] {
			t.Errorf("element %d op = %s, want %s", i, el.Op, wantOps[i])
		}
	}
	if end, ok := els[2].End(); !ok || end != geom.Pt(7, 7) {
		t.Errorf("element 2 end = %v, %v", end, ok)
	}
	if _, ok := els[3].End(); ok {
		t.Error("Close should have no end point")
	}
}

func TestRecorderImplicitMove(t *testing.T) {
	r := NewRecorder()
	r.CubicTo(geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3))

	els := r.Elements()
	if len(els) != 2 || els[0].Op != OpMove || els[0].Points[0] != (geom.Point{}) {
		t.Fatalf("expected implicit move to origin, got %+v", els)
	}
}

func TestRecorderCloseOnEmpty(t *testing.T) {
	r := NewRecorder()
	r.Close()
	if r.Len() != 0 || r.Closes() != 0 {
		t.Errorf("Close on empty path should be ignored, got len %d closes %d", r.Len(), r.Closes())
	}
}

func TestRecorderBounds(t *testing.T) {
	r := NewRecorder()
	if _, ok := r.Bounds(); ok {
		t.Error("empty recorder should have no bounds")
	}

	r.MoveTo(geom.Pt(5, 5))
	r.CubicTo(geom.Pt(-1, 10), geom.Pt(20, -3), geom.Pt(8, 8))
	b, ok := r.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if b != geom.R(-1, -3, 21, 13) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder()
	r.MoveTo(geom.Pt(1, 1))
	r.CubicTo(geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(2, 2))
	r.Reset()
	if r.Len() != 0 || r.Cubics() != 0 || r.CurrentPoint() != (geom.Point{}) {
		t.Error("Reset should clear the recorder")
	}
}
