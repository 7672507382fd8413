package geom

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want [4]Segment
	}{
		{
			name: "positive size",
			rect: R(0, 0, 10, 5),
			want: [4]Segment{
				Seg(Pt(0, 0), Pt(10, 0)),
				Seg(Pt(10, 0), Pt(10, 5)),
				Seg(Pt(10, 5), Pt(0, 5)),
				Seg(Pt(0, 5), Pt(0, 0)),
			},
		},
		{
			name: "negative width normalizes",
			rect: R(10, 0, -10, 5),
			want: [4]Segment{
				Seg(Pt(0, 0), Pt(10, 0)),
				Seg(Pt(10, 0), Pt(10, 5)),
				Seg(Pt(10, 5), Pt(0, 5)),
				Seg(Pt(0, 5), Pt(0, 0)),
			},
		},
		{
			name: "zero size",
			rect: R(3, 4, 0, 0),
			want: [4]Segment{
				Seg(Pt(3, 4), Pt(3, 4)),
				Seg(Pt(3, 4), Pt(3, 4)),
				Seg(Pt(3, 4), Pt(3, 4)),
				Seg(Pt(3, 4), Pt(3, 4)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Edges(); got != tt.want {
				t.Errorf("Edges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectOriginKeepsSign(t *testing.T) {
	r := R(10, 20, -5, -5)
	if got := r.Origin(); got != Pt(10, 20) {
		t.Errorf("Origin() = %v, want (10, 20)", got)
	}
	if r.MinX() != 5 || r.MaxX() != 10 || r.MinY() != 15 || r.MaxY() != 20 {
		t.Errorf("unexpected bounds: %v %v %v %v", r.MinX(), r.MaxX(), r.MinY(), r.MaxY())
	}
}

func TestSegmentLenSq(t *testing.T) {
	if got := Seg(Pt(0, 0), Pt(3, 4)).LenSq(); got != 25 {
		t.Errorf("LenSq() = %v, want 25", got)
	}
	if got := Seg(Pt(1, 1), Pt(1, 1)).LenSq(); got != 0 {
		t.Errorf("LenSq() of zero-length segment = %v, want 0", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("(1, 2) should be finite")
	}
	if Pt(math.NaN(), 0).IsFinite() {
		t.Error("NaN point should not be finite")
	}
	if Pt(0, math.Inf(-1)).IsFinite() {
		t.Error("infinite point should not be finite")
	}
}

func TestRectUnion(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(5, -5, 10, 10))
	if u != R(0, -5, 15, 15) {
		t.Errorf("Union() = %+v", u)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Point
		wantErr bool
	}{
		{"1,2", Pt(1, 2), false},
		{" -3.5 , 4e1 ", Pt(-3.5, 40), false},
		{"1", Point{}, true},
		{"1,2,3", Point{}, true},
		{"a,2", Point{}, true},
		{"NaN,2", Point{}, true},
		{"1,Inf", Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePoint(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParsePoint(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestParseRect(t *testing.T) {
	r, err := ParseRect("10,20,30,-40")
	if err != nil || r != R(10, 20, 30, -40) {
		t.Errorf("ParseRect = %v, %v", r, err)
	}
	if _, err := ParseRect("1,2,3"); err == nil {
		t.Error("three values should fail")
	}
}
