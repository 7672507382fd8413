// Package pipeline provides the draw → render → cache pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// A run has two stages:
//
//  1. Draw: every scene shape becomes a recorded freehand stroke, with
//     jitter drawn from a PCG source seeded from the options or the scene
//  2. Render: the strokes are written out once per requested format
//
// Each format's artifact is cached under a key built from the scene's
// content hash and the render inputs, so a scene is only drawn when at
// least one requested format is missing from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   sc,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/freehand/pkg/cache"
	"github.com/matzehuels/freehand/pkg/errors"
	"github.com/matzehuels/freehand/pkg/render"
	"github.com/matzehuels/freehand/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultSeed is used when neither the options nor the scene set a seed.
	DefaultSeed = uint64(42)

	// DefaultScale is the PNG pixel density.
	DefaultScale = 1.0

	// MaxScale bounds the PNG pixel density.
	MaxScale = 8.0

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour

	// keyTypeArtifact labels artifact events for the cache hooks.
	keyTypeArtifact = "artifact"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Scene is the validated scene to draw. Required.
	Scene *scene.Scene `json:"-"`

	// Formats lists the artifacts to produce (default: svg).
	Formats []string `json:"formats,omitempty"`

	// Seed overrides the scene's seed when non-zero.
	Seed uint64 `json:"seed,omitempty"`

	// Scale is the PNG pixel density (default 1).
	Scale float64 `json:"scale,omitempty"`

	// Style is the base style under the scene's defaults. The zero value
	// means scene.DefaultStyle().
	Style scene.Style `json:"style,omitempty"`

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// RequestID becomes Result.ID. A random UUID is used when empty.
	RequestID string `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	// SceneHash is the content hash of the scene.
	SceneHash string

	// Seed is the seed the scene was (or would have been) drawn with.
	Seed uint64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Draw counters stay zero
// when every artifact came from the cache.
type Stats struct {
	Shapes     int
	Strokes    int
	Cubics     int
	DrawTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for a run.
type CacheInfo struct {
	Hits      int  // Artifacts served from cache
	Misses    int  // Artifacts rendered
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Scene == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scene is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidateFinite("scale", o.Scale); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if o.Style == (scene.Style{}) {
		o.Style = scene.DefaultStyle()
	}
	o.validated = true
	return nil
}

// EffectiveSeed returns the seed used to draw: the override, the scene's
// seed, or DefaultSeed, in that order.
func (o *Options) EffectiveSeed() uint64 {
	if o.Seed != 0 {
		return o.Seed
	}
	if o.Scene != nil && o.Scene.Seed != 0 {
		return o.Scene.Seed
	}
	return DefaultSeed
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Seed:   o.EffectiveSeed(),
		Style:  styleKey(o.Style),
	}
	if format == render.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func styleKey(s scene.Style) string {
	return fmt.Sprintf("%g/%t/%s/%g", s.MaxOffset, s.DoubleLine, s.Stroke, s.StrokeWidth)
}

// renderOptions maps the scene canvas and the options to sink options.
func (o *Options) renderOptions() []render.Option {
	opts := []render.Option{render.WithScale(o.Scale)}
	if bounds, ok := o.Scene.Bounds(); ok {
		opts = append(opts, render.WithCanvas(bounds))
	}
	if o.Scene.Background != "" {
		opts = append(opts, render.WithBackground(o.Scene.Background))
	}
	return opts
}
