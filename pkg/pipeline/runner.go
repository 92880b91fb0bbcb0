package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/fromsvg/svgraster/pkg/cache"
	"github.com/fromsvg/svgraster/pkg/errors"
	"github.com/fromsvg/svgraster/pkg/observability"
	"github.com/fromsvg/svgraster/pkg/raster"
	"github.com/fromsvg/svgraster/pkg/tensor"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, renderer, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Renderer raster.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and renderer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If renderer is nil, the built-in SVG renderer is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, renderer raster.Renderer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if renderer == nil {
		renderer = raster.NewSVGRenderer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Renderer: renderer,
		Logger:   logger,
	}
}

// Execute runs the complete resolve → render → compose → encode pipeline
// with artifact caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	logger := opts.logger()

	result := &Result{
		RequestID: uuid.NewString(),
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	dir, border, err := opts.Resolve()
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Pipeline().OnResolveComplete(ctx, dir.Sizing.Mode.String(), err)
	if err != nil {
		return nil, err
	}

	result.SourceHash = cache.Hash([]byte(opts.SVG))
	cacheKey := r.Keyer.ArtifactKey(result.SourceHash, opts.ArtifactKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			img, err := raster.DecodePNG(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Image = img
				result.PNG = data
				result.CacheInfo.ArtifactHit = true
				r.finishStats(result)
				if err := r.attachTensor(result, opts); err != nil {
					return nil, err
				}
				logger.Info("served from cache",
					"request_id", result.RequestID,
					"width", result.Stats.Width,
					"height", result.Stats.Height)
				return result, nil
			}
			// A corrupt cache entry falls through to a fresh render.
			_ = r.Cache.Delete(ctx, cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, dir.Sizing.WidthPx, 0)
	img, err := r.Renderer.Render(ctx, []byte(opts.SVG), dir)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, 0, 0, result.Stats.RenderTime, err)
		return nil, err
	}
	b := img.Bounds()
	observability.Pipeline().OnRenderComplete(ctx, b.Dx(), b.Dy(), result.Stats.RenderTime, nil)

	logger.Info("rendered svg",
		"request_id", result.RequestID,
		"sizing", dir.Sizing.Mode.String(),
		"width", b.Dx(),
		"height", b.Dy(),
		"duration", result.Stats.RenderTime)

	// Stage 3: Compose
	composeStart := time.Now()
	img = raster.Compose(img, border)
	result.Stats.ComposeTime = time.Since(composeStart)
	observability.Pipeline().OnComposeComplete(ctx, border.Width, result.Stats.ComposeTime)

	// Stage 4: Encode
	encodeStart := time.Now()
	png, err := raster.EncodePNG(img)
	result.Stats.EncodeTime = time.Since(encodeStart)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode artifact")
	}

	result.Image = img
	result.PNG = png
	r.finishStats(result)

	// Cache the artifact
	if err := r.Cache.Set(ctx, cacheKey, png, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(png))
	}

	if err := r.attachTensor(result, opts); err != nil {
		return nil, err
	}

	logger.Info("pipeline complete",
		"request_id", result.RequestID,
		"width", result.Stats.Width,
		"height", result.Stats.Height,
		"bytes", len(png))

	return result, nil
}

// attachTensor converts the final image when a tensor output was requested.
func (r *Runner) attachTensor(result *Result, opts Options) error {
	if !opts.Tensor || result.Image == nil {
		return nil
	}
	batch := tensor.FromImage(result.Image)
	result.Tensor = &batch
	return nil
}

// finishStats records the final output dimensions.
func (r *Runner) finishStats(result *Result) {
	if result.Image != nil {
		b := result.Image.Bounds()
		result.Stats.Width = b.Dx()
		result.Stats.Height = b.Dy()
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
