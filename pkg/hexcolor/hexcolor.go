// Package hexcolor implements the color grammar shared by the background and
// border fields of a render request.
//
// A color is either opaque (exactly six hexadecimal digits, written "#RRGGBB")
// or fully transparent. The literal tokens "transparent" and "none", the empty
// string, and whitespace-only strings all resolve to the transparent color.
// Matching is case-insensitive and input is whitespace-trimmed.
//
// [Parse] validates raw input into a canonical Color, and [Color.NRGBA]
// expands a Color into straight-alpha byte channels.
package hexcolor

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/fromsvg/svgraster/pkg/errors"
)

// opaqueRe matches "#" followed by exactly six hexadecimal digits.
var opaqueRe = regexp.MustCompile(`^#([A-Fa-f0-9]{6})$`)

// Color is a validated color token: either six lowercase hex digits or the
// transparent color (the zero value).
type Color struct {
	hex string
}

// Transparent is the fully transparent color.
var Transparent = Color{}

// Opaque constructs a Color from six hex digits without revalidation.
// The digits are canonicalized to lowercase. Callers outside tests should
// prefer [Parse], which enforces the grammar.
func Opaque(hex string) Color {
	return Color{hex: strings.ToLower(hex)}
}

// Parse validates a raw color string into a canonical Color.
//
// The field argument names the originating request field (e.g. "background
// color") so that validation errors from different call sites remain
// distinguishable to the caller.
func Parse(field, raw string) (Color, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "transparent") || strings.EqualFold(s, "none") {
		return Transparent, nil
	}
	m := opaqueRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, errors.New(errors.ErrCodeInvalidColorFormat,
			"%s must be #RRGGBB, \"transparent\", or \"none\": got %q", field, raw)
	}
	return Color{hex: strings.ToLower(m[1])}, nil
}

// IsTransparent reports whether the color is the transparent color.
func (c Color) IsTransparent() bool {
	return c.hex == ""
}

// Hex returns the six lowercase hex digits, or the empty string for the
// transparent color.
func (c Color) Hex() string {
	return c.hex
}

// String formats the color for display: "#RRGGBB" or "transparent".
func (c Color) String() string {
	if c.IsTransparent() {
		return "transparent"
	}
	return "#" + c.hex
}

// NRGBA expands the color to straight-alpha byte channels. Opaque colors
// always carry full opacity (a six-digit hex token has no alpha channel);
// the transparent color expands to (0,0,0,0).
//
// A three-digit shorthand ("abc") is tolerated by duplicating each digit
// ("aabbcc"). Parse never emits shorthand tokens; the path only applies to
// colors constructed directly via [Opaque].
func (c Color) NRGBA() color.NRGBA {
	if c.IsTransparent() {
		return color.NRGBA{}
	}
	hex := c.hex
	if len(hex) == 3 {
		hex = expandShorthand(hex)
	}
	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b, _ := strconv.ParseUint(hex[4:6], 16, 8)
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// expandShorthand doubles each digit of a three-digit hex token.
func expandShorthand(hex string) string {
	var b strings.Builder
	b.Grow(6)
	for _, d := range hex {
		b.WriteRune(d)
		b.WriteRune(d)
	}
	return b.String()
}
