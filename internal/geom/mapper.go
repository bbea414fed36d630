package geom

import (
	"math"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"
)

// ToFramebuffer maps a universal point inside the viewport r onto the pixel
// grid of fb. The viewport's min edges land on pixel 0 and its max edges on
// pixel Width-1 (Height-1). Points outside r fail with ErrRangeViolation;
// after clipping this should not happen.
func ToFramebuffer(p Point, r rect.Rect, fb Framebuffer) (FBPoint, error) {
	w, h := r.URx-r.LLx, r.URy-r.LLy
	if !(w > 0 && h > 0) {
		return FBPoint{}, errors.Wrapf(ErrRangeViolation, "degenerate viewport %gx%g", w, h)
	}
	rx := math.Round(float64(fb.Width-1) * (p.x - r.LLx) / w)
	ry := math.Round(float64(fb.Height-1) * (p.y - r.LLy) / h)
	if math.IsNaN(rx) || math.IsNaN(ry) {
		return FBPoint{}, errors.Wrapf(ErrRangeViolation, "point %v maps to NaN", p)
	}
	// keep the float->int conversion defined for far-away points
	rx = math.Max(-1, math.Min(rx, float64(fb.Width)))
	ry = math.Max(-1, math.Min(ry, float64(fb.Height)))
	fp, err := fb.Point(int(rx), int(ry))
	if err != nil {
		return FBPoint{}, errors.Wrapf(err, "mapping universal point %v to framebuffer", p)
	}
	return fp, nil
}

// MapPolygon maps every border of p into framebuffer coordinates.
func MapPolygon(p Polygon[Point], r rect.Rect, fb Framebuffer) (Polygon[FBPoint], error) {
	borders := make([]Line[FBPoint], 0, len(p.Borders))
	for _, b := range p.Borders {
		line := make(Line[FBPoint], 0, len(b))
		for _, pt := range b {
			fp, err := ToFramebuffer(pt, r, fb)
			if err != nil {
				return Polygon[FBPoint]{}, errors.Wrapf(err, "polygon %q", p.ID)
			}
			line = append(line, fp)
		}
		borders = append(borders, line)
	}
	return remap(p, borders), nil
}

// MapPolygons maps a clipped scene into framebuffer coordinates.
func MapPolygons(polys []Polygon[Point], r rect.Rect, fb Framebuffer) ([]Polygon[FBPoint], error) {
	out := make([]Polygon[FBPoint], 0, len(polys))
	for _, p := range polys {
		fp, err := MapPolygon(p, r, fb)
		if err != nil {
			return nil, errors.Wrap(err, "wrong mapping from universal coordinates to framebuffer")
		}
		out = append(out, fp)
	}
	return out, nil
}
