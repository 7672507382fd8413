package jitter

import (
	"math"
	"testing"

	"github.com/matzehuels/freehand/pkg/geom"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		sample   float64
		min, max float64
		want     float64
	}{
		{"lower bound", 0, -2, 2, -2},
		{"midpoint", 0.5, -2, 2, 0},
		{"upper region", 0.75, -2, 2, 1},
		{"zero range", 0.9, 0, 0, 0},
		{"reversed range", 0.25, 4, -4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offset(Constant(tt.sample), tt.min, tt.max)
			if got != tt.want {
				t.Errorf("Offset(%v, %v, %v) = %v, want %v", tt.sample, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestOffsetResamples(t *testing.T) {
	src := NewScript(0.1, 0.9)
	a := Offset(src, 0, 1)
	b := Offset(src, 0, 1)
	if a == b {
		t.Errorf("Offset should draw a fresh sample per call, got %v twice", a)
	}
	if src.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", src.Calls())
	}
}

func TestDeriveOffsetClamp(t *testing.T) {
	tests := []struct {
		name      string
		seg       geom.Segment
		maxOffset float64
		want      float64
	}{
		{"long segment keeps max offset", geom.Seg(geom.Pt(0, 0), geom.Pt(100, 0)), 1, 1},
		{"boundary keeps max offset", geom.Seg(geom.Pt(0, 0), geom.Pt(10, 0)), 1, 1},
		{"short segment clamps", geom.Seg(geom.Pt(0, 0), geom.Pt(5, 0)), 1, 0.5},
		{"diagonal clamps", geom.Seg(geom.Pt(0, 0), geom.Pt(3, 4)), 2, 0.5},
		{"zero length", geom.Seg(geom.Pt(7, 7), geom.Pt(7, 7)), 1, 0},
		{"zero max offset", geom.Seg(geom.Pt(0, 0), geom.Pt(100, 0)), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Derive(Constant(0.5), tt.seg, tt.maxOffset)
			if math.Abs(p.Offset-tt.want) > 1e-12 {
				t.Errorf("Offset = %v, want %v", p.Offset, tt.want)
			}
			if p.Offset < 0 {
				t.Errorf("Offset must be non-negative, got %v", p.Offset)
			}
		})
	}
}

func TestDeriveShortSegmentNeverExceedsTenth(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 200; i++ {
		length := float64(i) * 0.37
		seg := geom.Seg(geom.Pt(0, 0), geom.Pt(length, 0))
		p := Derive(src, seg, 5)
		if length < 50 && p.Offset > length/10+1e-12 {
			t.Fatalf("length %v: offset %v exceeds length/10", length, p.Offset)
		}
	}
}

func TestDeriveDivergePointRange(t *testing.T) {
	seg := geom.Seg(geom.Pt(0, 0), geom.Pt(100, 50))
	for _, v := range []float64{0, 0.25, 0.5, 0.999999} {
		p := Derive(Constant(v), seg, 1)
		if p.DivergePoint < 0.2 || p.DivergePoint >= 0.4 {
			t.Errorf("sample %v: DivergePoint = %v, want [0.2, 0.4)", v, p.DivergePoint)
		}
	}

	src := NewSource(1)
	for i := 0; i < 1000; i++ {
		p := Derive(src, seg, 1)
		if p.DivergePoint < 0.2 || p.DivergePoint >= 0.4 {
			t.Fatalf("DivergePoint = %v out of range", p.DivergePoint)
		}
	}
}

func TestDeriveMidpointDisplacement(t *testing.T) {
	seg := geom.Seg(geom.Pt(0, 0), geom.Pt(100, 40))
	// bow = (1*40/200, 1*(0-100)/200) = (0.2, -0.5)

	// Draw order: diverge, dispX, dispY.
	p := Derive(NewScript(0.5, 0, 0.999999), seg, 1)
	if math.Abs(p.MidpointDisplacement.X-(-0.2)) > 1e-9 {
		t.Errorf("X = %v, want -0.2", p.MidpointDisplacement.X)
	}
	if math.Abs(p.MidpointDisplacement.Y-(-0.5)) > 1e-5 {
		t.Errorf("Y = %v, want ~-0.5", p.MidpointDisplacement.Y)
	}

	src := NewSource(99)
	for i := 0; i < 500; i++ {
		d := Derive(src, seg, 1).MidpointDisplacement
		if math.Abs(d.X) > 0.2 || math.Abs(d.Y) > 0.5 {
			t.Fatalf("displacement %v exceeds bow bounds", d)
		}
	}
}

func TestDeriveDrawsThreeSamples(t *testing.T) {
	src := NewScript(0.3)
	Derive(src, geom.Seg(geom.Pt(0, 0), geom.Pt(10, 10)), 1)
	if src.Calls() != 3 {
		t.Errorf("Derive drew %d samples, want 3", src.Calls())
	}
}

func TestNewSourceDeterministic(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for i := 0; i < 10; i++ {
		if va, vb := a.Float64(), b.Float64(); va != vb {
			t.Fatalf("same seed diverged at %d: %v != %v", i, va, vb)
		}
	}

	c, d := NewSource(42), NewSource(43)
	different := false
	for i := 0; i < 10; i++ {
		if c.Float64() != d.Float64() {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different sequences")
	}
}

func TestScriptEmpty(t *testing.T) {
	s := NewScript()
	if v := s.Float64(); v != 0 {
		t.Errorf("empty script returned %v, want 0", v)
	}
}
