package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/jsonq"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/vec"

	"vecview/internal/geom"
)

// LoadGeoJSON reads a GeoJSON file, see DecodeGeoJSON.
func LoadGeoJSON(path string, st Style) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	doc, err := DecodeGeoJSON(f, st)
	if err != nil {
		return Document{}, errors.Wrap(err, path)
	}
	return doc, nil
}

// DecodeGeoJSON reads a Feature, a FeatureCollection or a bare geometry.
// Every geometry becomes one shape named after the feature's id or its
// "name" property; a numeric "layer" property sets the layer.
// Point, MultiPoint, LineString, MultiLineString, Polygon, MultiPolygon and
// GeometryCollection are supported.
func DecodeGeoJSON(r io.Reader, st Style) (Document, error) {
	data := map[string]interface{}{}
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Document{}, errors.Wrapf(geom.ErrMalformedInput, "geojson: %v", err)
	}
	jq := jsonq.NewQuery(data)

	var shapes []Shape
	addFeature := func(i int, f *jsonq.JsonQuery) error {
		m := Meta{ID: fmt.Sprintf("feature-%d", i), Style: st}
		if id, err := f.String("id"); err == nil {
			m.ID = id
		} else if id, err := f.Float("id"); err == nil {
			m.ID = fmt.Sprint(id)
		} else if name, err := f.String("properties", "name"); err == nil {
			m.ID = name
		}
		if layer, err := f.Float("properties", "layer"); err == nil {
			m.Layer = int(layer)
		}
		g, err := f.Object("geometry")
		if err != nil {
			// features without geometry are allowed
			return nil
		}
		borders, err := geometryBorders(jsonq.NewQuery(g))
		if err != nil {
			return errors.Wrapf(err, "feature %q", m.ID)
		}
		shapes = append(shapes, PolylineShape{Meta: m, Borders: borders})
		return nil
	}

	t, err := jq.String("type")
	if err != nil {
		return Document{}, errors.Wrap(geom.ErrMalformedInput, "geojson: missing type")
	}
	switch t {
	case "FeatureCollection":
		fs, err := jq.Array("features")
		if err != nil {
			return Document{}, errors.Wrap(geom.ErrMalformedInput, "geojson: FeatureCollection without features")
		}
		for i, f := range fs {
			fm, ok := f.(map[string]interface{})
			if !ok {
				return Document{}, errors.Wrapf(geom.ErrMalformedInput, "geojson: feature %d is not an object", i)
			}
			if err := addFeature(i, jsonq.NewQuery(fm)); err != nil {
				return Document{}, err
			}
		}
	case "Feature":
		if err := addFeature(0, jq); err != nil {
			return Document{}, err
		}
	default:
		borders, err := geometryBorders(jq)
		if err != nil {
			return Document{}, err
		}
		shapes = append(shapes, PolylineShape{Meta: Meta{ID: t, Style: st}, Borders: borders})
	}

	var e extent
	for _, s := range shapes {
		e.addAll(s.(PolylineShape).Borders)
	}
	if e.n == 0 {
		return Document{}, errors.Wrap(geom.ErrMalformedInput, "geojson: no geometries found")
	}
	return Document{Bounds: SquareBounds(e.r), FlipY: true, Shapes: shapes}, nil
}

func geometryBorders(g *jsonq.JsonQuery) ([][]vec.Vec2, error) {
	t, err := g.String("type")
	if err != nil {
		return nil, errors.Wrap(geom.ErrMalformedInput, "geojson: geometry without type")
	}
	if t == "GeometryCollection" {
		gs, err := g.Array("geometries")
		if err != nil {
			return nil, errors.Wrap(geom.ErrMalformedInput, "geojson: GeometryCollection without geometries")
		}
		var out [][]vec.Vec2
		for _, sub := range gs {
			sm, ok := sub.(map[string]interface{})
			if !ok {
				return nil, errors.Wrap(geom.ErrMalformedInput, "geojson: geometry is not an object")
			}
			b, err := geometryBorders(jsonq.NewQuery(sm))
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return out, nil
	}

	coords, err := g.Array("coordinates")
	if err != nil {
		return nil, errors.Wrapf(geom.ErrMalformedInput, "geojson: %s without coordinates", t)
	}
	switch t {
	case "Point":
		p, err := position(coords)
		if err != nil {
			return nil, err
		}
		return [][]vec.Vec2{{p}}, nil
	case "MultiPoint":
		pts, err := positions(coords)
		if err != nil {
			return nil, err
		}
		out := make([][]vec.Vec2, len(pts))
		for i, p := range pts {
			out[i] = []vec.Vec2{p}
		}
		return out, nil
	case "LineString":
		pts, err := positions(coords)
		if err != nil {
			return nil, err
		}
		return [][]vec.Vec2{pts}, nil
	case "MultiLineString", "Polygon":
		return rings(coords)
	case "MultiPolygon":
		var out [][]vec.Vec2
		for _, poly := range coords {
			a, ok := poly.([]interface{})
			if !ok {
				return nil, errors.Wrap(geom.ErrMalformedInput, "geojson: polygon is not an array")
			}
			rs, err := rings(a)
			if err != nil {
				return nil, err
			}
			out = append(out, rs...)
		}
		return out, nil
	}
	return nil, errors.Wrapf(geom.ErrMalformedInput, "geojson: unsupported geometry %q", t)
}

func position(v interface{}) (vec.Vec2, error) {
	a, ok := v.([]interface{})
	if !ok || len(a) < 2 {
		return vec.Vec2{}, errors.Wrapf(geom.ErrMalformedInput, "geojson: position %v", v)
	}
	x, xok := a[0].(float64)
	y, yok := a[1].(float64)
	if !xok || !yok {
		return vec.Vec2{}, errors.Wrapf(geom.ErrMalformedInput, "geojson: position %v is not numeric", v)
	}
	return vec.Vec2{X: x, Y: y}, nil
}

func positions(coords []interface{}) ([]vec.Vec2, error) {
	out := make([]vec.Vec2, 0, len(coords))
	for _, c := range coords {
		p, err := position(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func rings(coords []interface{}) ([][]vec.Vec2, error) {
	out := make([][]vec.Vec2, 0, len(coords))
	for _, r := range coords {
		a, ok := r.([]interface{})
		if !ok {
			return nil, errors.Wrap(geom.ErrMalformedInput, "geojson: ring is not an array")
		}
		pts, err := positions(a)
		if err != nil {
			return nil, err
		}
		out = append(out, pts)
	}
	return out, nil
}
