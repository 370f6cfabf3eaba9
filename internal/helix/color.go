package helix

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with channels in [0,1].
type Color = colorful.Color

// ParseColor accepts "#rrggbb", "#rgb" and the "0xrrggbb" form used by scene literals.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	if strings.HasPrefix(hex, "0x") || strings.HasPrefix(hex, "0X") {
		hex = "#" + hex[2:]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, &ConfigError{Field: "color", Value: s, Wrapped: ErrInvalidColor}
	}
	return c, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Ramp is a two-stop colour gradient. Interpolation happens in linear RGB,
// the working space of the scene renderer, so each channel is monotonic in t.
type Ramp struct {
	Start, End Color
}

// At samples the ramp; t is clamped to [0,1] and the stops are returned exactly.
func (r Ramp) At(t float64) Color {
	if t <= 0 {
		return r.Start
	}
	if t >= 1 {
		return r.End
	}
	r1, g1, b1 := r.Start.LinearRgb()
	r2, g2, b2 := r.End.LinearRgb()
	return colorful.LinearRgb(r1+(r2-r1)*t, g1+(g2-g1)*t, b1+(b2-b1)*t)
}
