package scene

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"

	"vecview/internal/geom"
)

// LoadSVG reads an SVG file, see DecodeSVG.
func LoadSVG(path string, log hclog.Logger) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()
	doc, err := DecodeSVG(f, log)
	if err != nil {
		return Document{}, errors.Wrap(err, path)
	}
	return doc, nil
}

// DecodeSVG reads the shape descriptors of an SVG document. The first
// element must be <svg> with a square viewBox. A <g> element with an
// integer id sets the layer of the shapes inside it. path, circle and
// ellipse elements need an id and a style; other elements are skipped.
func DecodeSVG(r io.Reader, log hclog.Logger) (Document, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	var doc Document
	var root bool
	layers := []int{0}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Document{}, errors.Wrapf(geom.ErrMalformedInput, "svg: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if !root {
				if name != "svg" {
					return Document{}, errors.Wrapf(geom.ErrMalformedInput, "svg: document starts with <%s>, not <svg>", name)
				}
				b, err := parseViewBox(t)
				if err != nil {
					return Document{}, err
				}
				doc.Bounds = b
				root = true
				log.Debug("viewBox", "bounds", b)
				continue
			}
			switch name {
			case "g":
				id, ok := attr(t, "id")
				if !ok {
					return Document{}, errors.Wrap(geom.ErrMalformedInput, "svg: <g> has no id to use as layer")
				}
				layer, err := strconv.Atoi(strings.TrimSpace(id))
				if err != nil {
					return Document{}, errors.Wrapf(geom.ErrMalformedInput, "svg: <g> id %q is not a layer number", id)
				}
				layers = append(layers, layer)
				log.Debug("layer", "layer", layer)
			case "path", "circle", "ellipse":
				s, err := shapeElement(t, layers[len(layers)-1])
				if err != nil {
					return Document{}, err
				}
				doc.Shapes = append(doc.Shapes, s)
				log.Debug("shape", "element", name, "id", s.meta().ID)
			default:
				log.Trace("skipping element", "element", name)
			}
		case xml.EndElement:
			if t.Name.Local == "g" && len(layers) > 1 {
				layers = layers[:len(layers)-1]
			}
		}
	}
	if !root {
		return Document{}, errors.Wrap(geom.ErrMalformedInput, "svg: no <svg> element")
	}
	return doc, nil
}

func attr(t xml.StartElement, name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func numAttr(t xml.StartElement, name string) (float64, error) {
	s, ok := attr(t, name)
	if !ok {
		return 0, errors.Wrapf(geom.ErrMalformedInput, "svg: <%s> has no %s", t.Name.Local, name)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Wrapf(geom.ErrMalformedInput, "svg: <%s> %s=%q is not a number", t.Name.Local, name, s)
	}
	return v, nil
}

func parseViewBox(t xml.StartElement) (rect.Rect, error) {
	s, ok := attr(t, "viewBox")
	if !ok {
		return rect.Rect{}, errors.Wrap(geom.ErrMalformedInput, "svg: no viewBox")
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return rect.Rect{}, errors.Wrapf(geom.ErrMalformedInput, "svg: viewBox %q needs 4 values", s)
	}
	var v [4]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return rect.Rect{}, errors.Wrapf(geom.ErrMalformedInput, "svg: viewBox value %q", f)
		}
		v[i] = x
	}
	if !(v[2] > 0) || v[2] != v[3] {
		return rect.Rect{}, errors.Wrapf(geom.ErrMalformedInput, "svg: viewBox %q is not a non-empty square", s)
	}
	return rect.Rect{LLx: v[0], LLy: v[1], URx: v[0] + v[2], URy: v[1] + v[3]}, nil
}

func shapeElement(t xml.StartElement, layer int) (Shape, error) {
	name := t.Name.Local
	id, ok := attr(t, "id")
	if !ok {
		return nil, errors.Wrapf(geom.ErrMalformedInput, "svg: <%s> has no id", name)
	}
	styleAttr, ok := attr(t, "style")
	if !ok {
		return nil, errors.Wrapf(geom.ErrMalformedInput, "svg: <%s id=%q> has no style", name, id)
	}
	st, err := ParseStyle(styleAttr)
	if err != nil {
		return nil, errors.Wrapf(err, "svg: <%s id=%q>", name, id)
	}
	m := Meta{ID: id, Layer: layer, Style: st}

	var nums []float64
	var keys []string
	switch name {
	case "path":
		d, ok := attr(t, "d")
		if !ok {
			return nil, errors.Wrapf(geom.ErrMalformedInput, "svg: <path id=%q> has no d", id)
		}
		return PathShape{Meta: m, Data: d}, nil
	case "circle":
		keys = []string{"cx", "cy", "r"}
	case "ellipse":
		keys = []string{"cx", "cy", "rx", "ry"}
	}
	for _, k := range keys {
		v, err := numAttr(t, k)
		if err != nil {
			return nil, errors.Wrapf(err, "id %q", id)
		}
		nums = append(nums, v)
	}
	if name == "circle" {
		return CircleShape{Meta: m, CX: nums[0], CY: nums[1], R: nums[2]}, nil
	}
	return EllipseShape{Meta: m, CX: nums[0], CY: nums[1], RX: nums[2], RY: nums[3]}, nil
}
