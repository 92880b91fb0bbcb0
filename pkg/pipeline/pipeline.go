// Package pipeline provides the core rendering pipeline for svgraster.
//
// This package implements the complete resolve → render → compose → encode
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Resolve: Validate the request and build a render directive
//  2. Render: Rasterize the SVG onto an output canvas
//  3. Compose: Expand the canvas with an optional border frame
//  4. Encode: Serialize the final image as PNG
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    SVG:   svgMarkup,
//	    Width: 512,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
package pipeline

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fromsvg/svgraster/pkg/cache"
	"github.com/fromsvg/svgraster/pkg/directive"
	"github.com/fromsvg/svgraster/pkg/tensor"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPreviewWidth is the output width used when a caller asks for a
	// preview without an explicit size.
	DefaultPreviewWidth = 512
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input
	SVG string `json:"svg"`

	// Sizing (width takes precedence over scale when both are set)
	Width int     `json:"width,omitempty"`
	Scale float64 `json:"scale,omitempty"`

	// Colors
	Background string `json:"background_color,omitempty"`

	// Border compositing
	BorderWidth int    `json:"border_width,omitempty"`
	BorderColor string `json:"border_color,omitempty"`

	// Outputs
	Tensor bool `json:"tensor,omitempty"` // Also produce a float32 batch tensor

	// Cache control
	Refresh bool `json:"refresh,omitempty"` // Bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// resolved memoizes the outcome of Resolve.
	resolved   bool                      `json:"-"`
	resolveErr error                     `json:"-"`
	dir        directive.RenderDirective `json:"-"`
	border     directive.BorderSpec      `json:"-"`
}

// Resolve validates the options and returns the render directive and border
// spec derived from them. The outcome is memoized, so repeated calls are
// cheap and consistent.
func (o *Options) Resolve() (directive.RenderDirective, directive.BorderSpec, error) {
	if !o.resolved {
		o.dir, o.border, o.resolveErr = directive.Resolve(directive.Request{
			SVG:             o.SVG,
			Width:           o.Width,
			Scale:           o.Scale,
			BackgroundColor: o.Background,
			BorderWidth:     o.BorderWidth,
			BorderColor:     o.BorderColor,
		})
		o.resolved = true
	}
	return o.dir, o.border, o.resolveErr
}

// ArtifactKeyOpts returns the cache key options for the rendered artifact.
// Resolve must have succeeded before calling this.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		SizingMode:  o.dir.Sizing.Mode.String(),
		Width:       o.dir.Sizing.WidthPx,
		Scale:       o.dir.Sizing.Factor,
		Background:  o.dir.Background.String(),
		BorderWidth: o.border.Width,
		BorderColor: o.border.Color.String(),
	}
}

// logger returns the configured logger, or a discarding one.
func (o *Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RequestID uniquely identifies this pipeline run.
	RequestID string

	// Image is the final composited image in straight-alpha form.
	Image *image.NRGBA

	// PNG is the encoded artifact.
	PNG []byte

	// Tensor is the float32 batch representation, populated when
	// Options.Tensor is set.
	Tensor *tensor.Batch

	// SourceHash is the content hash of the input SVG.
	SourceHash string

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width       int
	Height      int
	ResolveTime time.Duration
	RenderTime  time.Duration
	ComposeTime time.Duration
	EncodeTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ArtifactHit bool // Whether the PNG artifact came from cache
}
