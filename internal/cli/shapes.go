package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/freehand/pkg/geom"
	"github.com/matzehuels/freehand/pkg/scene"
)

// shapeFlags adds per-shape style flags to the render flags.
type shapeFlags struct {
	renderFlags
	maxOffset   float64
	single      bool
	stroke      string
	strokeWidth float64
}

func (f *shapeFlags) register(cmd *cobra.Command) {
	f.renderFlags.register(cmd)
	cmd.Flags().Float64Var(&f.maxOffset, "max-offset", 0, "maximum jitter in drawing units (default from config)")
	cmd.Flags().BoolVar(&f.single, "single", false, "draw one pass instead of a double line")
	cmd.Flags().StringVar(&f.stroke, "stroke", "", "stroke color (#rgb, #rrggbb or #rrggbbaa)")
	cmd.Flags().Float64Var(&f.strokeWidth, "stroke-width", 0, "stroke width (default from config)")
}

// overrides returns the style overrides for the flags the user set.
func (f *shapeFlags) overrides(cmd *cobra.Command) scene.Overrides {
	var o scene.Overrides
	if cmd.Flags().Changed("max-offset") {
		o.MaxOffset = &f.maxOffset
	}
	if cmd.Flags().Changed("single") {
		double := !f.single
		o.DoubleLine = &double
	}
	if cmd.Flags().Changed("stroke-width") {
		o.StrokeWidth = &f.strokeWidth
	}
	o.Stroke = f.stroke
	return o
}

// lineCommand draws a single line.
func (c *CLI) lineCommand() *cobra.Command {
	var flags shapeFlags

	cmd := &cobra.Command{
		Use:     "line x1,y1 x2,y2",
		Short:   "Draw a single freehand line",
		Example: "  freehand line 0,0 200,40 --max-offset 3 -f svg,png",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := geom.ParsePoint(args[0])
			if err != nil {
				return err
			}
			to, err := geom.ParsePoint(args[1])
			if err != nil {
				return err
			}
			return c.runShape(cmd, scene.Shape{
				Kind:   scene.KindLine,
				Points: [][2]float64{{from.X, from.Y}, {to.X, to.Y}},
			}, &flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// rectCommand draws a single rectangle.
func (c *CLI) rectCommand() *cobra.Command {
	var flags shapeFlags

	cmd := &cobra.Command{
		Use:     "rect x,y,w,h",
		Short:   "Draw a single freehand rectangle",
		Example: "  freehand rect 10,10,120,80 --single -o box.svg",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := geom.ParseRect(args[0])
			if err != nil {
				return err
			}
			return c.runShape(cmd, scene.Shape{
				Kind: scene.KindRect,
				Rect: []float64{r.X, r.Y, r.W, r.H},
			}, &flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// runShape wraps sh in a one-shape scene and renders it. Output defaults to
// <kind>.<format> in the working directory.
func (c *CLI) runShape(cmd *cobra.Command, sh scene.Shape, flags *shapeFlags) error {
	sh.Style = flags.overrides(cmd)
	sc := &scene.Scene{Shapes: []scene.Shape{sh}}
	if err := sc.Validate(); err != nil {
		return err
	}
	return c.runScene(cmd.Context(), sc, string(sh.Kind), &flags.renderFlags)
}
