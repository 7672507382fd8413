// Package render turns drawn scene strokes into output artifacts.
//
// # Formats
//
// Three sinks are provided, all taking the strokes produced by
// [scene.Scene.Draw]:
//
//   - [RenderSVG]: one <path> per stroke using M, C and Z commands
//   - [RenderPNG]: rasterized with the gogpu/gg software renderer
//   - [RenderJSON]: the recorded command list, for clients that draw
//     the curves themselves
//
// A typical call sequence:
//
//	strokes := sc.Draw(jitter.NewSource(sc.Seed), scene.DefaultStyle())
//	svg := render.RenderSVG(strokes, render.WithCanvas(bounds))
//	png, err := render.RenderPNG(strokes, render.WithCanvas(bounds), render.WithScale(2))
//
// # Viewport
//
// The output viewport is the scene canvas when one is given with
// [WithCanvas]. Otherwise it is the control box of every stroke grown by
// the padding (see [WithPadding]).
//
// [scene.Scene.Draw]: github.com/matzehuels/freehand/pkg/scene
package render
