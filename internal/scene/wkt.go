package scene

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"vecview/internal/geom"
)

// extent grows a bounding box point by point.
type extent struct {
	r rect.Rect
	n int
}

func (e *extent) add(v vec.Vec2) {
	if e.n == 0 {
		e.r = rect.Rect{LLx: v.X, LLy: v.Y, URx: v.X, URy: v.Y}
	} else {
		if v.X < e.r.LLx {
			e.r.LLx = v.X
		}
		if v.Y < e.r.LLy {
			e.r.LLy = v.Y
		}
		if v.X > e.r.URx {
			e.r.URx = v.X
		}
		if v.Y > e.r.URy {
			e.r.URy = v.Y
		}
	}
	e.n++
}

func (e *extent) addAll(borders [][]vec.Vec2) {
	for _, b := range borders {
		for _, v := range b {
			e.add(v)
		}
	}
}

// LoadWKT reads a file holding one WKT geometry, see ParseWKT.
func LoadWKT(path string, st Style) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	doc, err := ParseWKT(string(data), st)
	if err != nil {
		return Document{}, errors.Wrap(err, path)
	}
	return doc, nil
}

// ParseWKT parses a subset of WKT into a single-shape document.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...),
// POLYGON((x y, ...), ...). Points become one-point borders, polygon rings
// become borders of the same shape.
func ParseWKT(wkt string, st Style) (Document, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Document{}, errors.Wrap(geom.ErrMalformedInput, "empty wkt")
	}
	up := strings.ToUpper(s)

	var kind string
	var borders [][]vec.Vec2
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		kind = "multipoint"
		body, err := wktBody(s, "(", ")")
		if err != nil {
			return Document{}, err
		}
		// both MULTIPOINT(1 2, 3 4) and MULTIPOINT((1 2), (3 4)) are valid
		body = strings.NewReplacer("(", " ", ")", " ").Replace(body)
		pts, err := parseTuples(body)
		if err != nil {
			return Document{}, err
		}
		for _, p := range pts {
			borders = append(borders, []vec.Vec2{p})
		}
	case strings.HasPrefix(up, "POINT"):
		kind = "point"
		body, err := wktBody(s, "(", ")")
		if err != nil {
			return Document{}, err
		}
		pts, err := parseTuples(body)
		if err != nil {
			return Document{}, err
		}
		borders = append(borders, pts)
	case strings.HasPrefix(up, "LINESTRING"):
		kind = "linestring"
		body, err := wktBody(s, "(", ")")
		if err != nil {
			return Document{}, err
		}
		pts, err := parseTuples(body)
		if err != nil {
			return Document{}, err
		}
		borders = append(borders, pts)
	case strings.HasPrefix(up, "POLYGON"):
		kind = "polygon"
		body, err := wktBody(s, "((", "))")
		if err != nil {
			return Document{}, err
		}
		// normalize spaces around ring separators
		norm := strings.ReplaceAll(body, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		for _, ring := range strings.Split(norm, "),(") {
			pts, err := parseTuples(ring)
			if err != nil {
				return Document{}, err
			}
			borders = append(borders, pts)
		}
	default:
		return Document{}, errors.Wrapf(geom.ErrMalformedInput, "unsupported wkt type in %q", abbrev(s))
	}

	var e extent
	e.addAll(borders)
	if e.n == 0 {
		return Document{}, errors.Wrap(geom.ErrMalformedInput, "wkt: no coordinates parsed")
	}
	return Document{
		Bounds: SquareBounds(e.r),
		FlipY:  true,
		Shapes: []Shape{PolylineShape{Meta: Meta{ID: kind, Style: st}, Borders: borders}},
	}, nil
}

func wktBody(s, open, closing string) (string, error) {
	i := strings.Index(s, open)
	j := strings.LastIndex(s, closing)
	if i < 0 || j <= i {
		return "", errors.Wrapf(geom.ErrMalformedInput, "wkt %q: unbalanced parentheses", abbrev(s))
	}
	return s[i+len(open) : j], nil
}

// parseTuples splits "x y, x y" into points; z and m values are ignored.
func parseTuples(block string) ([]vec.Vec2, error) {
	var out []vec.Vec2
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) == 0 {
			continue
		}
		if len(parts) < 2 {
			return nil, errors.Wrapf(geom.ErrMalformedInput, "wkt: tuple %q needs x and y", strings.TrimSpace(tup))
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return nil, errors.Wrapf(geom.ErrMalformedInput, "wkt: tuple %q is not numeric", strings.TrimSpace(tup))
		}
		out = append(out, vec.Vec2{X: x, Y: y})
	}
	return out, nil
}

func abbrev(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
