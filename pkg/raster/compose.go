package raster

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/fromsvg/svgraster/pkg/directive"
)

// Compose frames img with a uniform border on all four sides.
//
// A border width of zero returns img unchanged. Otherwise a new
// (W+2B)x(H+2B) canvas is filled with the border color (opaque hex colors
// expand to full alpha, the transparent color to (0,0,0,0)) and img is
// composited onto it at offset (B,B) using the image's own alpha channel as
// the paste mask. Straight-alpha blending: a source pixel's alpha determines
// how much of the border fill remains visible underneath it.
func Compose(img *image.NRGBA, border directive.BorderSpec) *image.NRGBA {
	if border.Width <= 0 {
		return img
	}

	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*border.Width, b.Dy()+2*border.Width, border.Color.NRGBA())
	return imaging.Overlay(canvas, img, image.Pt(border.Width, border.Width), 1.0)
}
