// Package scene describes a drawing as data and renders it into strokes.
//
// A scene is a canvas size, a seed, default stroke styling and an ordered
// list of shapes. Scenes are loaded from TOML, YAML or JSON:
//
//	width = 200
//	height = 120
//	seed = 42
//
//	[defaults]
//	max_offset = 1.5
//	stroke = "#222222"
//
//	[[shapes]]
//	kind = "rect"
//	rect = [10, 10, 180, 100]
//
//	[[shapes]]
//	kind = "line"
//	points = [[20, 60], [180, 60]]
//	style = { double_line = false, stroke = "#c0392b" }
//
// # Shape kinds
//
//   - line: exactly two points, drawn as one freehand line
//   - polyline: two or more points, one freehand line per span
//   - polygon: three or more points, closed back to the first point
//   - rect: x, y, width, height, drawn as a freehand rectangle
//   - curve: four or more points, a plain Catmull-Rom spline with no jitter
//
// [Scene.Draw] renders every shape onto its own path recorder, drawing
// jitter from one random source in shape order so the same seed always
// yields the same strokes.
package scene
