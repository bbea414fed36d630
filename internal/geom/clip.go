package geom

import "seehuhn.de/go/geom/rect"

// edgePass describes one half-plane of the clip rectangle.
type edgePass struct {
	edge      float64
	inside    func(p Point, edge float64) bool
	intersect func(p, q Point, edge float64) Point
}

func insideMaxX(p Point, edge float64) bool { return p.x <= edge }
func insideMaxY(p Point, edge float64) bool { return p.y <= edge }
func insideMinX(p Point, edge float64) bool { return p.x >= edge }
func insideMinY(p Point, edge float64) bool { return p.y >= edge }

// intersectVertical returns the point of pq on the vertical line x = edge.
// The caller only asks for it when p and q are on different sides, so
// p.x != q.x.
func intersectVertical(p, q Point, edge float64) Point {
	m := (q.y - p.y) / (q.x - p.x)
	b := p.y - m*p.x
	return Pt(edge, m*edge+b)
}

// intersectHorizontal returns the point of pq on the horizontal line
// y = edge.
func intersectHorizontal(p, q Point, edge float64) Point {
	if p.x == q.x {
		return Pt(p.x, edge)
	}
	m := (q.y - p.y) / (q.x - p.x)
	b := p.y - m*p.x
	return Pt((edge-b)/m, edge)
}

// clipPass clips line against a single half-plane. closed refers to the
// border before the first pass; a closed border is re-closed by repeating
// the pass's own last output point at the front.
func clipPass(line Line[Point], closed bool, e edgePass) Line[Point] {
	out := make(Line[Point], 0, len(line)+1)
	if !closed && len(line) > 0 && e.inside(line[0], e.edge) {
		out = append(out, line[0])
	}
	for i := 1; i < len(line); i++ {
		p, q := line[i-1], line[i]
		switch pin, qin := e.inside(p, e.edge), e.inside(q, e.edge); {
		case pin && qin:
			out = append(out, q)
		case pin && !qin:
			out = append(out, e.intersect(p, q, e.edge))
		case !pin && qin:
			out = append(out, e.intersect(p, q, e.edge), q)
		}
	}
	if closed && len(out) > 0 {
		out = append(Line[Point]{out[len(out)-1]}, out...)
	}
	return out
}

// ClipLine clips a border against r with one pass per edge: max-x, max-y,
// min-x, min-y. The result is empty when nothing of the border is inside.
func ClipLine(line Line[Point], r rect.Rect) Line[Point] {
	closed := line.Closed()
	passes := [4]edgePass{
		{edge: r.URx, inside: insideMaxX, intersect: intersectVertical},
		{edge: r.URy, inside: insideMaxY, intersect: intersectHorizontal},
		{edge: r.LLx, inside: insideMinX, intersect: intersectVertical},
		{edge: r.LLy, inside: insideMinY, intersect: intersectHorizontal},
	}
	for _, e := range passes {
		line = clipPass(line, closed, e)
		if len(line) == 0 {
			return nil
		}
	}
	return line
}

// ClipPolygon clips every border of p against r. Borders that end up empty
// are dropped; ok is false when no border is left.
func ClipPolygon(p Polygon[Point], r rect.Rect) (clipped Polygon[Point], ok bool) {
	borders := make([]Line[Point], 0, len(p.Borders))
	for _, b := range p.Borders {
		if c := ClipLine(b, r); len(c) > 0 {
			borders = append(borders, c)
		}
	}
	clipped = p.WithBorders(borders)
	if !clipped.Visible() {
		return Polygon[Point]{}, false
	}
	return clipped, true
}

// ClipPolygons clips a whole scene, removing polygons that are fully out of
// frame.
func ClipPolygons(polys []Polygon[Point], r rect.Rect) []Polygon[Point] {
	out := make([]Polygon[Point], 0, len(polys))
	for _, p := range polys {
		if c, ok := ClipPolygon(p, r); ok {
			out = append(out, c)
		}
	}
	return out
}
