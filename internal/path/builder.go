package path

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/vec"

	"vecview/internal/geom"
)

// Builder turns commands into borders. It tracks the current anchor and the
// list of borders built so far; each move command opens a new border.
type Builder struct {
	curves geom.Curves
	log    hclog.Logger

	borders   [][]vec.Vec2
	anchor    vec.Vec2
	hasAnchor bool
}

// NewBuilder returns an empty builder flattening curves with c. A nil
// logger discards the per-command trace output.
func NewBuilder(c geom.Curves, log hclog.Logger) *Builder {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Builder{curves: c, log: log}
}

// Borders returns the borders built so far.
func (b *Builder) Borders() [][]vec.Vec2 { return b.borders }

// Apply interprets one command. Only the relative forms of m, l, h, v, c
// and z are supported; anything else fails with ErrUnsupportedCommand.
func (b *Builder) Apply(c Command) error {
	b.log.Trace("path command", "cmd", c.String())

	if !c.Relative() {
		return errors.Wrapf(geom.ErrUnsupportedCommand, "absolute command %q", c.Letter)
	}
	switch c.Letter {
	case 'm':
		return b.move(c.Params)
	case 'l':
		return b.line(c.Params)
	case 'h':
		return b.horizontal(c.Params)
	case 'v':
		return b.vertical(c.Params)
	case 'c':
		return b.cubic(c.Params)
	case 'z':
		return b.close()
	}
	return errors.Wrapf(geom.ErrUnsupportedCommand, "command %q", c.Letter)
}

func (b *Builder) move(params []float64) error {
	if len(params) == 0 || len(params)%2 != 0 {
		return errors.Wrapf(geom.ErrMalformedInput, "m expects coordinate pairs, got %d values", len(params))
	}
	p := vec.Vec2{X: params[0], Y: params[1]}
	// the very first move of a path is absolute
	if b.hasAnchor {
		p = b.anchor.Add(p)
	}
	b.borders = append(b.borders, []vec.Vec2{p})
	b.anchor = p
	b.hasAnchor = true

	if len(params) > 2 {
		return b.line(params[2:])
	}
	return nil
}

func (b *Builder) line(params []float64) error {
	if len(params) == 0 || len(params)%2 != 0 {
		return errors.Wrapf(geom.ErrMalformedInput, "l expects coordinate pairs, got %d values", len(params))
	}
	if !b.hasAnchor {
		return errors.Wrap(geom.ErrNoOpenBorder, "l")
	}
	for i := 0; i < len(params); i += 2 {
		b.lineTo(b.anchor.Add(vec.Vec2{X: params[i], Y: params[i+1]}))
	}
	return nil
}

func (b *Builder) horizontal(params []float64) error {
	if len(params) == 0 {
		return errors.Wrap(geom.ErrMalformedInput, "h expects at least one value")
	}
	if !b.hasAnchor {
		return errors.Wrap(geom.ErrNoOpenBorder, "h")
	}
	for _, dx := range params {
		b.lineTo(b.anchor.Add(vec.Vec2{X: dx}))
	}
	return nil
}

func (b *Builder) vertical(params []float64) error {
	if len(params) == 0 {
		return errors.Wrap(geom.ErrMalformedInput, "v expects at least one value")
	}
	if !b.hasAnchor {
		return errors.Wrap(geom.ErrNoOpenBorder, "v")
	}
	for _, dy := range params {
		b.lineTo(b.anchor.Add(vec.Vec2{Y: dy}))
	}
	return nil
}

// cubic handles relative cubic Béziers, six values per segment: two control
// points and the end point, all relative to the anchor at segment start.
func (b *Builder) cubic(params []float64) error {
	if len(params) == 0 || len(params)%6 != 0 {
		return errors.Wrapf(geom.ErrMalformedInput, "c expects groups of 6 values, got %d", len(params))
	}
	if !b.hasAnchor {
		return errors.Wrap(geom.ErrNoOpenBorder, "c")
	}
	for i := 0; i < len(params); i += 6 {
		p0 := b.anchor
		p1 := p0.Add(vec.Vec2{X: params[i], Y: params[i+1]})
		p2 := p0.Add(vec.Vec2{X: params[i+2], Y: params[i+3]})
		end := vec.Vec2{X: params[i+4], Y: params[i+5]}
		p3 := p0.Add(end)

		pts := b.curves.Cubic(p0, p1, p2, p3)
		last := len(b.borders) - 1
		// the first sample is the anchor, which is already on the border
		b.borders[last] = append(b.borders[last], pts[1:]...)
		b.anchor = p0.Add(end)
	}
	return nil
}

func (b *Builder) close() error {
	if !b.hasAnchor {
		return errors.Wrap(geom.ErrNoOpenBorder, "z")
	}
	last := len(b.borders) - 1
	first := b.borders[last][0]
	b.borders[last] = append(b.borders[last], first)
	b.anchor = first
	return nil
}

func (b *Builder) lineTo(p vec.Vec2) {
	last := len(b.borders) - 1
	b.borders[last] = append(b.borders[last], p)
	b.anchor = p
}

// Build parses path data and interprets every command, returning the
// resulting borders in document coordinates.
func Build(d string, c geom.Curves, log hclog.Logger) ([][]vec.Vec2, error) {
	cmds, err := Parse(d)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(c, log)
	for _, cmd := range cmds {
		if err := b.Apply(cmd); err != nil {
			return nil, err
		}
	}
	return b.Borders(), nil
}
