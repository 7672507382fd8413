package spline

import (
	"math"
	"testing"

	"github.com/matzehuels/freehand/pkg/geom"
)

type recorder struct {
	cubics []Cubic
}

func (r *recorder) CubicTo(c1, c2, to geom.Point) {
	r.cubics = append(r.cubics, Cubic{C1: c1, C2: c2, To: to})
}

func pts(n int) []geom.Point {
	out := make([]geom.Point, n)
	for i := range out {
		out[i] = geom.Pt(float64(i)*10, float64(i%2)*5)
	}
	return out
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestCatmullRomCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 0},
		{"one point", 1, 0},
		{"three points", 3, 0},
		{"four points", 4, 1},
		{"five points", 5, 2},
		{"six points", 6, 3},
		{"ten points", 10, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r recorder
			CatmullRom(&r, pts(tt.n))
			if len(r.cubics) != tt.want {
				t.Errorf("CatmullRom(%d points) emitted %d cubics, want %d", tt.n, len(r.cubics), tt.want)
			}
		})
	}
}

func TestCatmullRomInterpolatesInterior(t *testing.T) {
	in := pts(6)
	var r recorder
	CatmullRom(&r, in)
	for i, c := range r.cubics {
		if c.To != in[i+2] {
			t.Errorf("cubic %d ends at %v, want %v", i, c.To, in[i+2])
		}
	}
}

func TestCatmullRomUniformTangents(t *testing.T) {
	p0, p1, p2, p3 := geom.Pt(0, 0), geom.Pt(1, 3), geom.Pt(5, 2), geom.Pt(9, 9)
	segs := Segments([]geom.Point{p0, p1, p2, p3})
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}

	// Uniform Catmull-Rom: b1 = p1 + (p2-p0)/6, b2 = p2 - (p3-p1)/6.
	wantB1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6))
	wantB2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6))
	if !near(segs[0].C1, wantB1) {
		t.Errorf("C1 = %v, want %v", segs[0].C1, wantB1)
	}
	if !near(segs[0].C2, wantB2) {
		t.Errorf("C2 = %v, want %v", segs[0].C2, wantB2)
	}
}

func TestCatmullRomSpacingIndependent(t *testing.T) {
	// With alpha = 0 scaling the outer neighbors' distance does not change
	// the blend weights, only the positions that enter it.
	a := Segments([]geom.Point{geom.Pt(-1, 0), geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)})
	b := Segments([]geom.Point{geom.Pt(-100, 0), geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)})
	if near(a[0].C1, b[0].C1) {
		t.Fatal("different p0 positions should move C1")
	}
	if !near(a[0].C2, b[0].C2) {
		t.Errorf("C2 depends only on p1..p3: %v != %v", a[0].C2, b[0].C2)
	}
}

func TestCatmullRomDegenerateGuard(t *testing.T) {
	t.Run("coincident leading points", func(t *testing.T) {
		p := []geom.Point{geom.Pt(2, 2), geom.Pt(2, 2), geom.Pt(8, 3), geom.Pt(12, 9)}
		segs := Segments(p)
		if segs[0].C1 != p[1] {
			t.Errorf("C1 = %v, want exactly p1 %v", segs[0].C1, p[1])
		}
	})

	t.Run("coincident trailing points", func(t *testing.T) {
		p := []geom.Point{geom.Pt(0, 0), geom.Pt(4, 1), geom.Pt(9, 9), geom.Pt(9, 9)}
		segs := Segments(p)
		if segs[0].C2 != p[2] {
			t.Errorf("C2 = %v, want exactly p2 %v", segs[0].C2, p[2])
		}
	})

	t.Run("below epsilon", func(t *testing.T) {
		p := []geom.Point{geom.Pt(1, 1), geom.Pt(1+Epsilon/2, 1), geom.Pt(5, 5), geom.Pt(6, 7)}
		segs := Segments(p)
		if segs[0].C1 != p[1] {
			t.Errorf("C1 = %v, want p1 %v", segs[0].C1, p[1])
		}
	})

	t.Run("all coincident", func(t *testing.T) {
		p := make([]geom.Point, 6)
		for i := range p {
			p[i] = geom.Pt(3, 3)
		}
		for i, c := range Segments(p) {
			for _, q := range []geom.Point{c.C1, c.C2, c.To} {
				if q != geom.Pt(3, 3) || !q.IsFinite() {
					t.Errorf("segment %d has point %v, want (3, 3)", i, q)
				}
			}
		}
	})
}

func TestCatmullRomCollinear(t *testing.T) {
	p := []geom.Point{geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(20, 0), geom.Pt(40, 0), geom.Pt(100, 0), geom.Pt(100, 0)}
	for i, c := range Segments(p) {
		for _, q := range []geom.Point{c.C1, c.C2, c.To} {
			if q.Y != 0 {
				t.Errorf("segment %d leaves the line: %v", i, q)
			}
			if q.X < 0 || q.X > 100 {
				t.Errorf("segment %d overshoots: %v", i, q)
			}
		}
	}
}
