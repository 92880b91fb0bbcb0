package raster

import (
	"bytes"
	"image/color"
	"testing"
)

// pngSignature is the first eight bytes of every PNG stream.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestEncodePNG(t *testing.T) {
	img := solidNRGBA(3, 3, color.NRGBA{R: 255, A: 255})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		t.Error("encoded data should start with the PNG signature")
	}
}

func TestPNGRoundTrip(t *testing.T) {
	img := solidNRGBA(4, 2, color.NRGBA{R: 12, G: 34, B: 56, A: 200})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}

	decoded, err := DecodePNG(data)
	if err != nil {
		t.Fatalf("DecodePNG error: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	if !bytes.Equal(decoded.Pix, img.Pix) {
		t.Error("decoded pixels should match the original")
	}
}

func TestDecodePNGInvalid(t *testing.T) {
	if _, err := DecodePNG([]byte("not a png")); err == nil {
		t.Error("decoding garbage should fail")
	}
}
