package raster

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/fromsvg/svgraster/pkg/directive"
	"github.com/fromsvg/svgraster/pkg/errors"
)

// SVGRenderer rasterizes SVG sources with oksvg and rasterx.
//
// Each call parses a fresh icon, so a single SVGRenderer is safe for
// concurrent use from multiple goroutines. Rendering is CPU-bound and not
// cancellable mid-draw; callers needing timeouts should bound the whole
// pipeline with a context deadline.
type SVGRenderer struct{}

// NewSVGRenderer creates the default oksvg-backed renderer.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Render rasterizes svg at the dimensions selected by the directive's sizing
// mode and returns a straight-alpha NRGBA image. The directive's background
// is painted onto the canvas before the SVG is drawn, so the fill is baked
// into the raster rather than composited afterwards.
//
// Parse and draw failures surface as RENDER_FAILURE; the renderer's internal
// errors are not inspected or translated.
func (r *SVGRenderer) Render(ctx context.Context, svg []byte, d directive.RenderDirective) (out *image.NRGBA, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, parseErr := oksvg.ReadIconStream(bytes.NewReader(svg))
	if parseErr != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailure, parseErr, "parse svg")
	}

	w, h, sizeErr := outputSize(icon, d.Sizing)
	if sizeErr != nil {
		return nil, sizeErr
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	if !d.Background.IsTransparent() {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(d.Background.NRGBA()), image.Point{}, draw.Src)
	}

	// oksvg panics on some malformed path data instead of returning an
	// error; surface that as an opaque render failure.
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = errors.New(errors.ErrCodeRenderFailure, "rasterize svg: %v", rec)
		}
	}()

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return imaging.Clone(canvas), nil
}

// outputSize computes the raster dimensions from the icon's intrinsic size
// and the resolved sizing mode. The aspect ratio is always preserved.
func outputSize(icon *oksvg.SvgIcon, s directive.Sizing) (int, int, error) {
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return 0, 0, errors.New(errors.ErrCodeRenderFailure,
			"svg has no usable intrinsic size (viewBox %gx%g)", vw, vh)
	}

	var w, h int
	switch s.Mode {
	case directive.SizeByWidth:
		w = s.WidthPx
		h = int(math.Round(float64(w) * vh / vw))
	case directive.SizeByScale:
		w = int(math.Round(vw * s.Factor))
		h = int(math.Round(vh * s.Factor))
	default:
		return 0, 0, errors.New(errors.ErrCodeInvalidSizing, "directive has no sizing mode")
	}

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, nil
}

// Ensure SVGRenderer implements Renderer.
var _ Renderer = (*SVGRenderer)(nil)
