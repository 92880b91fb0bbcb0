package hexcolor

import (
	"image/color"
	"testing"

	"github.com/fromsvg/svgraster/pkg/errors"
)

func TestParseTransparentAliases(t *testing.T) {
	tests := []string{"", "   ", "transparent", "TRANSPARENT", "  none ", "None"}

	for _, raw := range tests {
		c, err := Parse("background color", raw)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", raw, err)
			continue
		}
		if !c.IsTransparent() {
			t.Errorf("Parse(%q) should be transparent", raw)
		}
	}
}

func TestParseOpaque(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"#22c55e", "22c55e"},
		{"#22C55E", "22c55e"}, // canonicalized to lowercase
		{"  #000000  ", "000000"},
		{"#FFFFFF", "ffffff"},
	}

	for _, tt := range tests {
		c, err := Parse("border color", tt.raw)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.raw, err)
			continue
		}
		if c.Hex() != tt.want {
			t.Errorf("Parse(%q) hex = %q, want %q", tt.raw, c.Hex(), tt.want)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"22c55e",   // missing #
		"#22C55",   // 5 digits
		"#22c55ef", // 7 digits
		"#22c55g",  // non-hex digit
		"#abc",     // shorthand is not part of the input grammar
		"red",      // named colors are not supported
	}

	for _, raw := range tests {
		_, err := Parse("background color", raw)
		if err == nil {
			t.Errorf("Parse(%q) should fail", raw)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidColorFormat) {
			t.Errorf("Parse(%q) code = %s, want INVALID_COLOR_FORMAT", raw, errors.GetCode(err))
		}
	}
}

func TestParseErrorNamesField(t *testing.T) {
	_, bgErr := Parse("background color", "#nope")
	_, borderErr := Parse("border color", "#nope")

	if bgErr == nil || borderErr == nil {
		t.Fatal("both parses should fail")
	}
	if errors.UserMessage(bgErr) == errors.UserMessage(borderErr) {
		t.Error("errors from different fields should be distinguishable")
	}
}

func TestParseIdempotent(t *testing.T) {
	// Resolving the same raw input twice yields identical tokens.
	a, _ := Parse("background color", "#22C55E")
	b, _ := Parse("background color", "#22C55E")
	if a != b {
		t.Errorf("Parse is not deterministic: %v != %v", a, b)
	}
}

func TestNRGBA(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.NRGBA
	}{
		{"transparent", Transparent, color.NRGBA{}},
		{"black", Opaque("000000"), color.NRGBA{A: 0xff}},
		{"white", Opaque("ffffff"), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"green", Opaque("22c55e"), color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}},
		{"shorthand", Opaque("abc"), color.NRGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.NRGBA(); got != tt.want {
				t.Errorf("NRGBA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := Transparent.String(); got != "transparent" {
		t.Errorf("Transparent.String() = %q", got)
	}
	if got := Opaque("22C55E").String(); got != "#22c55e" {
		t.Errorf("Opaque.String() = %q", got)
	}
}
