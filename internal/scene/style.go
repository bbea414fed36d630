package scene

import (
	"strings"

	"github.com/pkg/errors"

	"vecview/internal/geom"
)

// Style holds the colors of a shape. A nil color means "none".
type Style struct {
	Stroke *geom.Color
	Fill   *geom.Color
}

// ParseStyle parses a style attribute of the form
// "stroke:<color>;fill:<color>". Both keys are required, other keys are
// ignored.
func ParseStyle(s string) (Style, error) {
	var st Style
	var haveStroke, haveFill bool
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			return Style{}, errors.Wrapf(geom.ErrMalformedInput, "style: declaration %q has no ':'", decl)
		}
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "stroke":
			c, err := geom.ParseColor(v)
			if err != nil {
				return Style{}, errors.Wrap(err, "style: stroke")
			}
			st.Stroke, haveStroke = c, true
		case "fill":
			c, err := geom.ParseColor(v)
			if err != nil {
				return Style{}, errors.Wrap(err, "style: fill")
			}
			st.Fill, haveFill = c, true
		}
	}
	if !haveStroke {
		return Style{}, errors.Wrapf(geom.ErrMalformedInput, "style %q: missing stroke", s)
	}
	if !haveFill {
		return Style{}, errors.Wrapf(geom.ErrMalformedInput, "style %q: missing fill", s)
	}
	return st, nil
}

func (s Style) String() string {
	hex := func(c *geom.Color) string {
		if c == nil {
			return "none"
		}
		return c.Hex()
	}
	return "stroke:" + hex(s.Stroke) + ";fill:" + hex(s.Fill)
}
