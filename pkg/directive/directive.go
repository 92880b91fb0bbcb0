// Package directive resolves raw, possibly competing render request fields
// into a single internally consistent rendering directive.
//
// A request carries both a width and a scale even though only one of them can
// drive rasterization. Rather than checking two optional fields ad hoc at
// every call site, [Resolve] applies the precedence rule once and returns a
// tagged [Sizing] value: a positive width always wins and the scale is ignored
// entirely; otherwise a positive scale is used; otherwise the request is
// rejected. The same pass validates both color fields with the shared hexcolor
// grammar and normalizes the border specification.
//
// Resolution is a pure function: no side effects, and identical inputs always
// produce identical directives or identical failures.
package directive

import (
	"strings"

	"github.com/fromsvg/svgraster/pkg/errors"
	"github.com/fromsvg/svgraster/pkg/hexcolor"
)

// Display names used in color validation errors so the two call sites stay
// distinguishable to the caller.
const (
	FieldBackground = "background color"
	FieldBorder     = "border color"
)

// SizingMode selects which sizing field drives rasterization.
type SizingMode uint8

const (
	// SizeByWidth renders to an absolute output width in pixels.
	SizeByWidth SizingMode = iota + 1
	// SizeByScale renders at a multiple of the SVG's intrinsic size.
	SizeByScale
)

// String returns the mode name for logging and cache keys.
func (m SizingMode) String() string {
	switch m {
	case SizeByWidth:
		return "width"
	case SizeByScale:
		return "scale"
	default:
		return "unknown"
	}
}

// Sizing is a resolved sizing choice. Exactly one of WidthPx or Factor is
// meaningful, selected by Mode; the other field is zero.
type Sizing struct {
	Mode    SizingMode
	WidthPx int     // positive when Mode == SizeByWidth
	Factor  float64 // positive when Mode == SizeByScale
}

// ByWidth constructs an absolute-width sizing. px must be positive.
func ByWidth(px int) Sizing {
	return Sizing{Mode: SizeByWidth, WidthPx: px}
}

// ByScale constructs a scale-factor sizing. factor must be positive.
func ByScale(factor float64) Sizing {
	return Sizing{Mode: SizeByScale, Factor: factor}
}

// RenderDirective is the validated instruction handed to the vector renderer.
// Background is baked into the rendered raster by the renderer itself; it is
// not composited afterwards.
type RenderDirective struct {
	Sizing     Sizing
	Background hexcolor.Color
}

// BorderSpec describes the frame composited around the rendered raster.
// A Width of zero means no border and compositing is an identity pass.
type BorderSpec struct {
	Width int
	Color hexcolor.Color
}

// Request holds the raw user-supplied fields of one render invocation.
type Request struct {
	SVG             string
	Width           int
	Scale           float64
	BackgroundColor string
	BorderWidth     int
	BorderColor     string
}

// Resolve validates a request and returns the rendering directive and border
// specification, or fails fast with a structured error:
//
//   - EMPTY_INPUT if the SVG source is empty or whitespace-only
//   - INVALID_SIZING if neither width nor scale is positive
//   - INVALID_COLOR_FORMAT if a color field violates the hex grammar
//
// All validation happens here, before the renderer is ever invoked, so
// malformed input never reaches the expensive rasterization stage.
func Resolve(req Request) (RenderDirective, BorderSpec, error) {
	if strings.TrimSpace(req.SVG) == "" {
		return RenderDirective{}, BorderSpec{}, errors.New(errors.ErrCodeEmptyInput,
			"svg source is empty")
	}

	var sizing Sizing
	switch {
	case req.Width > 0:
		// Width overrides scale unconditionally; scale is not consulted.
		sizing = ByWidth(req.Width)
	case req.Scale > 0:
		sizing = ByScale(req.Scale)
	default:
		return RenderDirective{}, BorderSpec{}, errors.New(errors.ErrCodeInvalidSizing,
			"either width or scale must be positive (width=%d, scale=%g)", req.Width, req.Scale)
	}

	background, err := hexcolor.Parse(FieldBackground, req.BackgroundColor)
	if err != nil {
		return RenderDirective{}, BorderSpec{}, err
	}
	borderColor, err := hexcolor.Parse(FieldBorder, req.BorderColor)
	if err != nil {
		return RenderDirective{}, BorderSpec{}, err
	}

	borderWidth := req.BorderWidth
	if borderWidth < 0 {
		// Negative widths have no geometric meaning; treat them as "no border".
		borderWidth = 0
	}

	d := RenderDirective{Sizing: sizing, Background: background}
	b := BorderSpec{Width: borderWidth, Color: borderColor}
	return d, b, nil
}
