// Package scene holds the polygons of a loaded document in universal
// coordinates, and the readers producing them from SVG, WKT and GeoJSON.
package scene

import (
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"vecview/internal/geom"
)

// Document is a set of shape descriptors in source coordinates. Bounds is
// the square part of the source plane that is mapped onto the whole scene.
// FlipY is set for sources whose y axis points up, such as geographic data.
type Document struct {
	Bounds rect.Rect
	FlipY  bool
	Shapes []Shape
}

// frame is the transform from document to universal coordinates.
type frame struct {
	bounds rect.Rect
	flipY  bool
}

func (f frame) side() float64 {
	return f.bounds.URx - f.bounds.LLx
}

// scale is the number of universal units per document unit.
func (f frame) scale(space geom.Space) float64 {
	return space.Size / f.side()
}

func (f frame) apply(space geom.Space, v vec.Vec2) (geom.Point, error) {
	s := f.scale(space)
	u := vec.Vec2{X: (v.X - f.bounds.LLx) * s, Y: (v.Y - f.bounds.LLy) * s}
	if f.flipY {
		u.Y = space.Size - u.Y
	}
	u.X, u.Y = snap(u.X, space.Size), snap(u.Y, space.Size)
	return space.FromVec(u)
}

// snap pulls values that are off the scene edges by rounding error back
// onto them.
func snap(v, size float64) float64 {
	eps := 1e-9 * size
	switch {
	case v < 0 && v > -eps:
		return 0
	case v > size && v < size+eps:
		return size
	}
	return v
}

// SquareBounds returns the smallest square containing r, centered on it.
// An empty r gives a unit square.
func SquareBounds(r rect.Rect) rect.Rect {
	w, h := r.URx-r.LLx, r.URy-r.LLy
	side := math.Max(w, h)
	if side <= 0 {
		side = 1
	}
	cx, cy := (r.LLx+r.URx)/2, (r.LLy+r.URy)/2
	return rect.Rect{LLx: cx - side/2, LLy: cy - side/2, URx: cx + side/2, URy: cy + side/2}
}

// Loader approximates shape descriptors into universal polygons.
type Loader struct {
	Space  geom.Space
	Curves geom.Curves // spacing in universal units
	Logger hclog.Logger
}

func (l *Loader) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}

func (l *Loader) polygon(f frame, s Shape) (geom.Polygon[geom.Point], error) {
	m := s.meta()
	log := l.logger().With("shape", m.ID)

	// curves are flattened in document units, so the spacing is converted
	// back from universal units
	c := l.Curves.WithSpacing(l.Curves.Spacing / f.scale(l.Space))
	raw, err := s.approximate(c, log)
	if err != nil {
		return geom.Polygon[geom.Point]{}, errors.Wrapf(err, "shape %q", m.ID)
	}

	borders := make([]geom.Line[geom.Point], 0, len(raw))
	for i, b := range raw {
		if len(b) == 0 {
			return geom.Polygon[geom.Point]{}, errors.Wrapf(geom.ErrMalformedInput, "shape %q: border %d has no points", m.ID, i)
		}
		line := make(geom.Line[geom.Point], 0, len(b))
		for _, v := range b {
			p, err := f.apply(l.Space, v)
			if err != nil {
				return geom.Polygon[geom.Point]{}, errors.Wrapf(err, "shape %q", m.ID)
			}
			line = append(line, p)
		}
		borders = append(borders, line)
	}
	poly := geom.Polygon[geom.Point]{
		Borders: borders,
		Stroke:  m.Style.Stroke,
		Fill:    m.Style.Fill,
		Layer:   m.Layer,
		ID:      m.ID,
	}
	log.Debug("approximated", "layer", m.Layer, "borders", len(borders), "points", poly.NumPoints())
	return poly, nil
}

// Load approximates every shape of doc. The first failing shape aborts the
// load and no scene is returned.
func (l *Loader) Load(doc Document) (*Scene, error) {
	if doc.Bounds.URx-doc.Bounds.LLx <= 0 {
		return nil, errors.Wrapf(geom.ErrMalformedInput, "document bounds %v are empty", doc.Bounds)
	}
	sc := &Scene{
		Space: l.Space,
		frame: frame{bounds: doc.Bounds, flipY: doc.FlipY},
	}
	for _, s := range doc.Shapes {
		p, err := l.polygon(sc.frame, s)
		if err != nil {
			return nil, err
		}
		sc.polygons = append(sc.polygons, p)
	}
	l.logger().Info("scene loaded", "shapes", len(doc.Shapes), "size", l.Space.Size)
	return sc, nil
}

// Scene is the list of polygons of a document, in universal coordinates.
type Scene struct {
	Space geom.Space

	frame    frame
	polygons []geom.Polygon[geom.Point]
}

// New returns an empty scene whose document coordinates are the universal
// ones.
func New(space geom.Space) *Scene {
	return &Scene{
		Space: space,
		frame: frame{bounds: rect.Rect{URx: space.Size, URy: space.Size}},
	}
}

// Polygons returns the polygons of the scene in load order.
func (s *Scene) Polygons() []geom.Polygon[geom.Point] { return s.polygons }

// Add approximates one more shape in the coordinates of the scene's
// document and appends it. On error the polygon list is left unchanged.
func (s *Scene) Add(l *Loader, sh Shape) error {
	p, err := l.polygon(s.frame, sh)
	if err != nil {
		return err
	}
	s.polygons = append(s.polygons, p)
	return nil
}

// Frame clips the scene against the viewport and maps what is left onto
// the framebuffer.
func (s *Scene) Frame(vp geom.Viewport, fb geom.Framebuffer) ([]geom.Polygon[geom.FBPoint], error) {
	r := vp.Rect()
	return geom.MapPolygons(geom.ClipPolygons(s.polygons, r), r, fb)
}
