package render

import (
	"encoding/json"

	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/scene"
)

type jsonOutput struct {
	ViewBox    [4]float64   `json:"view_box"`
	Background string       `json:"background,omitempty"`
	Strokes    []jsonStroke `json:"strokes"`
}

type jsonStroke struct {
	Kind     scene.Kind    `json:"kind"`
	Style    scene.Style   `json:"style"`
	Commands []jsonCommand `json:"commands"`
}

type jsonCommand struct {
	Op     string       `json:"op"`
	Points [][2]float64 `json:"points,omitempty"`
}

// RenderJSON renders the recorded commands of every stroke as JSON.
func RenderJSON(strokes []scene.Stroke, opts ...Option) ([]byte, error) {
	o := resolve(opts)
	vb := o.viewport(strokes)

	out := jsonOutput{
		ViewBox: [4]float64{vb.X, vb.Y, vb.W, vb.H},
		Strokes: make([]jsonStroke, 0, len(strokes)),
	}
	if o.hasBackground() {
		out.Background = o.background
	}

	for _, s := range strokes {
		els := s.Path.Elements()
		js := jsonStroke{Kind: s.Kind, Style: s.Style, Commands: make([]jsonCommand, 0, len(els))}
		for _, el := range els {
			cmd := jsonCommand{Op: string(el.Op)}
			for _, p := range el.Points {
				cmd.Points = append(cmd.Points, [2]float64{p.X, p.Y})
			}
			js.Commands = append(js.Commands, cmd)
		}
		out.Strokes = append(out.Strokes, js)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal json")
	}
	return data, nil
}
