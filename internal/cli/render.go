package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/freehand/pkg/pipeline"
	"github.com/matzehuels/freehand/pkg/render"
	"github.com/matzehuels/freehand/pkg/scene"
)

// stdoutPath writes a single artifact to standard output.
const stdoutPath = "-"

// renderFlags are the output flags shared by render, line and rect.
type renderFlags struct {
	output  string  // output file (single format) or base path
	formats string  // comma-separated output formats
	seed    uint64  // seed override; 0 keeps the scene's seed
	scale   float64 // PNG pixel density
	refresh bool    // skip cache reads
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default: the scene's seed)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "redraw even when cached artifacts exist")
}

// renderCommand creates the render command for scene files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene file to SVG, PNG or JSON",
		Long: `Render a scene file to SVG, PNG or JSON.

The scene is a TOML, YAML or JSON file listing shapes (line, polyline,
polygon, rect, curve) with optional style overrides. Every shape is drawn
as jittered strokes from a seeded random source, so the same scene and seed
always produce the same output.

Results are cached per scene, seed, style and format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			return c.runScene(cmd.Context(), sc, args[0], &flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// runScene draws sc through the pipeline and writes the artifacts next to
// input (or to the --output path).
func (c *CLI) runScene(ctx context.Context, sc *scene.Scene, input string, flags *renderFlags) error {
	logger := loggerFromContext(ctx)
	formats := parseFormats(flags.formats)
	if err := render.ValidateFormats(formats); err != nil {
		return err
	}
	if flags.output == stdoutPath && len(formats) != 1 {
		return fmt.Errorf("writing to stdout needs exactly one format, got %d", len(formats))
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Scene:   sc,
		Formats: formats,
		Seed:    c.seed(flags.seed, sc),
		Scale:   flags.scale,
		Style:   c.baseStyle(),
		Refresh: flags.refresh,
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Drawing %d shapes...", len(sc.Shapes)))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()
	prog.done("Rendered", "id", res.ID, "seed", res.Seed, "strokes", res.Stats.Strokes, "cached", res.CacheInfo.Hits)

	if flags.output == stdoutPath {
		_, err := os.Stdout.Write(res.Artifacts[formats[0]])
		return err
	}

	paths, err := writeArtifacts(res.Artifacts, formats, flags.output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.Strokes, res.Stats.Cubics, res.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output uses that path verbatim; otherwise files are named
// <base>.<format>, or <base>.out.<format> when that would be the input.
func outputPaths(formats []string, output, input string) []string {
	if len(formats) == 1 && output != "" {
		return []string{output}
	}
	base := basePath(output, input)
	paths := make([]string, len(formats))
	for i, f := range formats {
		p := base + "." + f
		if filepath.Clean(p) == filepath.Clean(input) {
			p = base + ".out." + f
		}
		paths[i] = p
	}
	return paths
}

// basePath strips a known format extension from output, or derives the base
// from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, ok := render.ContentTypes[strings.TrimPrefix(ext, ".")]; ok {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per format and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths := outputPaths(formats, output, input)
	for i, f := range formats {
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(paths[i], artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", paths[i], err)
		}
	}
	return paths, nil
}
