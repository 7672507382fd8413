package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/freehand/pkg/cache"
	"github.com/matzehuels/freehand/pkg/jitter"
	"github.com/matzehuels/freehand/pkg/observability"
	"github.com/matzehuels/freehand/pkg/render"
	"github.com/matzehuels/freehand/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; every run draws from its own source.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry of cached artifacts (default TTLArtifact).
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    TTLArtifact,
	}
}

// Execute draws and renders the scene, serving cached artifacts when every
// requested format is available.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	id := opts.RequestID
	if id == "" {
		id = uuid.NewString()
	}
	result := &Result{
		ID:        id,
		SceneHash: opts.Scene.Hash(),
		Seed:      opts.EffectiveSeed(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	logger := r.Logger.With("id", id)

	// Stage 0: Cache lookup
	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, result.SceneHash, format, &opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits++
			continue
		}
		missing = append(missing, format)
	}
	result.CacheInfo.Misses = len(missing)
	result.CacheInfo.RenderHit = len(missing) == 0

	if len(missing) == 0 {
		logger.Info("served from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Draw
	strokes := r.Draw(ctx, &opts, result)
	logger.Info("drew scene",
		"shapes", result.Stats.Shapes,
		"cubics", result.Stats.Cubics,
		"seed", result.Seed,
		"duration", result.Stats.DrawTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, missing)
	renderOpts := opts.renderOptions()
	for _, format := range missing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		data, err := render.Render(format, strokes, renderOpts...)
		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		r.store(ctx, result.SceneHash, format, &opts, data, logger)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered outputs",
		"formats", missing,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Draw renders every shape of the scene into strokes and records the draw
// stats on result.
func (r *Runner) Draw(ctx context.Context, opts *Options, result *Result) []scene.Stroke {
	observability.Render().OnDrawStart(ctx, len(opts.Scene.Shapes))
	start := time.Now()

	strokes := opts.Scene.Draw(jitter.NewSource(opts.EffectiveSeed()), opts.Style)

	result.Stats.DrawTime = time.Since(start)
	result.Stats.Shapes = len(opts.Scene.Shapes)
	result.Stats.Strokes = len(strokes)
	for _, s := range strokes {
		result.Stats.Cubics += s.Path.Cubics()
	}
	observability.Render().OnDrawComplete(ctx, result.Stats.Strokes, result.Stats.Cubics, result.Stats.DrawTime)
	return strokes
}

func (r *Runner) lookup(ctx context.Context, sceneHash, format string, opts *Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
	return data, true
}

func (r *Runner) store(ctx context.Context, sceneHash, format string, opts *Options, data []byte, logger *log.Logger) {
	key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
