// Package jitter derives the random perturbation applied to a straight
// segment before it is fitted with a spline.
//
// # Parameters
//
// [Derive] computes, for one segment, an offset bound, a divergence
// fraction that places the two interior control points, and a small
// perpendicular bow at the segment's middle. The offset bound is clamped
// to a tenth of the segment length so short strokes are not distorted.
//
// # Randomness
//
// All samples come from an injected [Source]. *rand.Rand from math/rand/v2
// satisfies it, and [NewSource] returns a seeded PCG generator so the same
// seed always yields the same strokes. A Source is not safe for concurrent
// use; give each goroutine its own.
package jitter

import (
	"math"

	"github.com/matzehuels/freehand/pkg/geom"
)

// Source produces uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

const (
	// divergeMin and divergeSpan bound the divergence fraction to [0.2, 0.4).
	divergeMin  = 0.2
	divergeSpan = 0.2

	// shortSegmentRatio caps the offset at length/shortSegmentRatio.
	shortSegmentRatio = 10.0

	// bowDivisor scales the perpendicular midpoint bow by maxOffset/bowDivisor.
	bowDivisor = 200.0
)

// Params holds the per-segment jitter parameters.
type Params struct {
	// Offset bounds every per-point displacement. Always >= 0.
	Offset float64
	// DivergePoint is the fraction along the segment where the first
	// interior control point sits; the second sits at twice that.
	DivergePoint float64
	// MidpointDisplacement is the randomized perpendicular bow.
	MidpointDisplacement geom.Point
}

// Offset returns a uniform sample in [min, max). It draws exactly one value
// from src. min may exceed max, in which case the range is (max, min].
func Offset(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// Derive computes the jitter parameters for seg. It draws three values from
// src, in order: the divergence fraction, then the X and Y components of the
// midpoint displacement.
func Derive(src Source, seg geom.Segment, maxOffset float64) Params {
	lenSq := seg.LenSq()

	offset := maxOffset
	if offset*offset*shortSegmentRatio*shortSegmentRatio > lenSq {
		offset = math.Sqrt(lenSq) / shortSegmentRatio
	}

	diverge := divergeMin + src.Float64()*divergeSpan

	bow := geom.Point{
		X: maxOffset * (seg.To.Y - seg.From.Y) / bowDivisor,
		Y: maxOffset * (seg.From.X - seg.To.X) / bowDivisor,
	}
	dispX := Offset(src, -bow.X, bow.X)
	dispY := Offset(src, -bow.Y, bow.Y)

	return Params{
		Offset:               offset,
		DivergePoint:         diverge,
		MidpointDisplacement: geom.Point{X: dispX, Y: dispY},
	}
}
