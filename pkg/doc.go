// Package pkg holds the freehand libraries: jittered strokes that look drawn
// by hand, Catmull-Rom curve fitting, and the scene, render and serving
// layers built on them.
//
// # Overview
//
//  1. [geom], [jitter], [spline] - points, the seeded random source, and the
//     Catmull-Rom to Bezier conversion
//  2. [freehand] - the stroke synthesizer that writes jittered cubics onto
//     any [freehand.Path]
//  3. [path], [scene] - a recording path and the shape descriptions that
//     are drawn onto it
//  4. [render] - SVG, PNG and JSON sinks
//  5. [pipeline], [cache], [server] - cached rendering, exposed over HTTP
//
// # Data Flow
//
//	scene file (TOML, YAML, JSON)
//	         ↓
//	    [scene] package (validate, resolve styles)
//	         ↓
//	    [freehand] package (jittered double strokes → cubics)
//	         ↓
//	    [path] package (recorded Bezier paths)
//	         ↓
//	    [render] package → SVG/PNG/JSON
//
// # Quick Start
//
// Draw a rectangle onto a recording path:
//
//	import (
//	    "github.com/matzehuels/freehand/pkg/freehand"
//	    "github.com/matzehuels/freehand/pkg/geom"
//	    "github.com/matzehuels/freehand/pkg/jitter"
//	    "github.com/matzehuels/freehand/pkg/path"
//	)
//
//	rec := path.NewRecorder()
//	pen := freehand.New(jitter.NewSource(42))
//	pen.Rect(rec, geom.Rect{X: 10, Y: 10, W: 120, H: 80}, freehand.WithMaxOffset(2))
//	// rec now holds 24 cubics and a close
//
// Or render a scene file through the CLI:
//
//	freehand render sketch.toml -f svg,png
package pkg
