// Package tensor converts raster images into normalized, batched numeric
// arrays for downstream image pipelines.
//
// The output layout is (B, H, W, C) with float32 values in [0,1] and a batch
// dimension of 1. RGBA input keeps its four channels; grayscale input is
// replicated across three channels. All other pixel layouts are converted to
// straight-alpha RGBA first.
package tensor

import (
	"image"

	"github.com/disintegration/imaging"
)

// Batch is a single-image numeric batch in (B, H, W, C) layout.
type Batch struct {
	Shape [4]int    `json:"shape"`
	Data  []float32 `json:"data"`
}

// At returns the value at (y, x, c) within the first batch element.
func (b Batch) At(y, x, c int) float32 {
	w, ch := b.Shape[2], b.Shape[3]
	return b.Data[(y*w+x)*ch+c]
}

// FromImage converts an image into a normalized batch.
func FromImage(img image.Image) Batch {
	if gray, ok := img.(*image.Gray); ok {
		return fromGray(gray)
	}
	return fromNRGBA(imaging.Clone(img))
}

// fromNRGBA flattens a straight-alpha RGBA image into four channels.
func fromNRGBA(img *image.NRGBA) Batch {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, 0, h*w*4)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for _, v := range row {
			data = append(data, float32(v)/255)
		}
	}
	return Batch{Shape: [4]int{1, h, w, 4}, Data: data}
}

// fromGray replicates a single luminance channel across three channels.
func fromGray(img *image.Gray) Batch {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float32, 0, h*w*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
			data = append(data, v, v, v)
		}
	}
	return Batch{Shape: [4]int{1, h, w, 3}, Data: data}
}
