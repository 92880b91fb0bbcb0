// Package raster turns SVG sources into raster images and applies
// post-processing on the result.
//
// The package has three parts:
//
//   - [Renderer], the contract with the vector rasterizer, and [SVGRenderer],
//     the default implementation built on oksvg/rasterx
//   - [Compose], the border compositor that frames a rendered image while
//     preserving straight-alpha semantics
//   - [EncodePNG]/[DecodePNG], the byte codec used for artifacts and caching
//
// Images are straight-alpha NRGBA throughout. The renderer bakes the
// background fill into the raster; the border is a separate compositing stage
// applied afterwards.
package raster

import (
	"context"
	"image"

	"github.com/fromsvg/svgraster/pkg/directive"
)

// Renderer rasterizes SVG source bytes according to a resolved directive.
//
// Implementations must honor the directive's sizing mode: exactly one of the
// absolute width or the scale factor drives the output dimensions, mirroring
// the resolver's precedence rule. Implementations must be safe for concurrent
// use; rendering holds no state across calls.
type Renderer interface {
	Render(ctx context.Context, svg []byte, d directive.RenderDirective) (*image.NRGBA, error)
}
