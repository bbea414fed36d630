package geom

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// NewColor checks that every component is inside [0, 1].
func NewColor(r, g, b float64) (Color, error) {
	if err := checkRange(1, r, g, b); err != nil {
		return Color{}, errors.Wrap(err, "color component")
	}
	return Color{R: r, G: g, B: b}, nil
}

// RGBA8 returns the color as 8-bit channels.
func (c Color) RGBA8() (r, g, b uint8) {
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	r, g, b := c.RGBA8()
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{r, g, b} {
		buf[1+2*i] = digits[v>>4]
		buf[2+2*i] = digits[v&0x0f]
	}
	return string(buf)
}

// ParseHexColor parses a #rrggbb string.
func ParseHexColor(hex string) (Color, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return Color{}, errors.Wrapf(ErrMalformedInput, "color %q is not formatted as #rrggbb", hex)
	}
	var comp [3]float64
	for i := range comp {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return Color{}, errors.Wrapf(ErrMalformedInput, "color %q: invalid hex digits", hex)
		}
		comp[i] = float64(v) / 255
	}
	return NewColor(comp[0], comp[1], comp[2])
}

// ParseColor parses a style color value: "none" gives nil, otherwise the
// value is a #rrggbb hex string or an SVG color keyword.
func ParseColor(s string) (*Color, error) {
	s = strings.TrimSpace(s)
	if s == "none" {
		return nil, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := ParseHexColor(s)
		if err != nil {
			return nil, err
		}
		return &c, nil
	}
	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return nil, errors.Wrapf(ErrMalformedInput, "unknown color %q", s)
	}
	c := Color{
		R: float64(named.R) / 255,
		G: float64(named.G) / 255,
		B: float64(named.B) / 255,
	}
	return &c, nil
}
