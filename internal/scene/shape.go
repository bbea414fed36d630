package scene

import (
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/vec"

	"vecview/internal/geom"
	"vecview/internal/path"
)

// Meta is what every shape descriptor carries besides its geometry.
type Meta struct {
	ID    string
	Layer int
	Style Style
}

func (m Meta) meta() Meta { return m }

// Shape is a shape descriptor in document coordinates. Its approximation is
// a list of borders, each an ordered list of points.
type Shape interface {
	meta() Meta
	approximate(c geom.Curves, log hclog.Logger) ([][]vec.Vec2, error)
}

// PathShape is described by relative path data.
type PathShape struct {
	Meta
	Data string
}

func (s PathShape) approximate(c geom.Curves, log hclog.Logger) ([][]vec.Vec2, error) {
	return path.Build(s.Data, c, log)
}

type CircleShape struct {
	Meta
	CX, CY, R float64
}

func (s CircleShape) approximate(c geom.Curves, _ hclog.Logger) ([][]vec.Vec2, error) {
	if !(s.R >= 0) || math.IsInf(s.R, 0) {
		return nil, errors.Wrapf(geom.ErrMalformedInput, "circle radius %g", s.R)
	}
	return [][]vec.Vec2{c.Circle(vec.Vec2{X: s.CX, Y: s.CY}, s.R)}, nil
}

type EllipseShape struct {
	Meta
	CX, CY, RX, RY float64
}

func (s EllipseShape) approximate(c geom.Curves, _ hclog.Logger) ([][]vec.Vec2, error) {
	if !(s.RX >= 0 && s.RY >= 0) || math.IsInf(s.RX, 0) || math.IsInf(s.RY, 0) {
		return nil, errors.Wrapf(geom.ErrMalformedInput, "ellipse radii %g, %g", s.RX, s.RY)
	}
	return [][]vec.Vec2{c.Ellipse(vec.Vec2{X: s.CX, Y: s.CY}, s.RX, s.RY)}, nil
}

// PolylineShape is already made of absolute points, as read from WKT or
// GeoJSON. A border with one point is drawn as a dot.
type PolylineShape struct {
	Meta
	Borders [][]vec.Vec2
}

func (s PolylineShape) approximate(geom.Curves, hclog.Logger) ([][]vec.Vec2, error) {
	out := make([][]vec.Vec2, len(s.Borders))
	for i, b := range s.Borders {
		out[i] = append([]vec.Vec2(nil), b...)
	}
	return out, nil
}
