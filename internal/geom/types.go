package geom

import (
	"fmt"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/vec"
)

// Space is the square universal coordinate space of a scene, spanning
// [0, Size] on both axes.
type Space struct {
	Size float64
}

// Point is a point in universal, continuous coordinates.
type Point struct {
	x, y float64
}

// Point returns the universal point (x, y), failing with ErrRangeViolation
// when it lies outside the scene square.
func (s Space) Point(x, y float64) (Point, error) {
	if err := checkRange(s.Size, x, y); err != nil {
		return Point{}, err
	}
	return Point{x: x, y: y}, nil
}

// FromVec is Point for a raw vector.
func (s Space) FromVec(v vec.Vec2) (Point, error) {
	return s.Point(v.X, v.Y)
}

// Line converts raw vectors into a checked universal line.
func (s Space) Line(vs []vec.Vec2) (Line[Point], error) {
	out := make(Line[Point], 0, len(vs))
	for _, v := range vs {
		p, err := s.FromVec(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Pt builds a universal point without range checks. It is meant for values
// that are already known to lie inside the scene, such as clip
// intersections.
func Pt(x, y float64) Point { return Point{x: x, y: y} }

func (p Point) X() float64 { return p.x }
func (p Point) Y() float64 { return p.y }

// Vec returns p as a raw vector.
func (p Point) Vec() vec.Vec2 { return vec.Vec2{X: p.x, Y: p.y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.x, p.y) }

// Framebuffer describes the discrete pixel grid of the output raster.
type Framebuffer struct {
	Width  int
	Height int
}

// FBPoint is a pixel position inside a framebuffer.
type FBPoint struct {
	x, y int
}

// Point returns the framebuffer point (x, y), failing with
// ErrRangeViolation outside [0, Width-1]×[0, Height-1].
func (f Framebuffer) Point(x, y int) (FBPoint, error) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return FBPoint{}, errors.Wrapf(ErrRangeViolation,
			"framebuffer point (%d, %d) outside [0, %d]x[0, %d]", x, y, f.Width-1, f.Height-1)
	}
	return FBPoint{x: x, y: y}, nil
}

func (p FBPoint) X() int { return p.x }
func (p FBPoint) Y() int { return p.y }

func (p FBPoint) String() string { return fmt.Sprintf("(%d, %d)", p.x, p.y) }

// Coord is the set of point types a Line can be made of.
type Coord interface {
	Point | FBPoint
}

// Line is an ordered sequence of points. It is not a 2-point segment: it
// can be a whole border, an open polyline or a single dot. A line that
// circles back repeats its first point at the end.
type Line[P Coord] []P

// Closed reports whether the line has at least two points and its last point
// equals its first.
func (l Line[P]) Closed() bool {
	return len(l) > 1 && l[0] == l[len(l)-1]
}

// Polygon is a set of borders sharing style and layer. Multiple borders are
// used for shapes with holes, like a hollow ring.
type Polygon[P Coord] struct {
	Borders []Line[P]

	// Stroke being nil means no outline is drawn in color mode.
	Stroke *Color

	// Fill being nil means the polygon is not filled.
	Fill *Color

	Layer int
	ID    string
}

// WithBorders returns a copy of p carrying borders instead of its own.
func (p Polygon[P]) WithBorders(borders []Line[P]) Polygon[P] {
	return Polygon[P]{
		Borders: borders,
		Stroke:  p.Stroke,
		Fill:    p.Fill,
		Layer:   p.Layer,
		ID:      p.ID,
	}
}

// Visible reports whether p has at least one non-empty border.
func (p Polygon[P]) Visible() bool {
	for _, b := range p.Borders {
		if len(b) > 0 {
			return true
		}
	}
	return false
}

// NumPoints is the total number of points over all borders.
func (p Polygon[P]) NumPoints() int {
	n := 0
	for _, b := range p.Borders {
		n += len(b)
	}
	return n
}

// remap copies the attributes of p onto a polygon of another point type.
func remap[P, Q Coord](p Polygon[P], borders []Line[Q]) Polygon[Q] {
	return Polygon[Q]{
		Borders: borders,
		Stroke:  p.Stroke,
		Fill:    p.Fill,
		Layer:   p.Layer,
		ID:      p.ID,
	}
}

func checkRange(size float64, vals ...float64) error {
	var bad []float64
	for _, v := range vals {
		// written so that NaN is rejected too
		if !(v >= 0 && v <= size) {
			bad = append(bad, v)
		}
	}
	if len(bad) > 0 {
		return errors.Wrapf(ErrRangeViolation, "values %v outside the [0, %g] range", bad, size)
	}
	return nil
}
