package raster

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"vecview/internal/geom"
)

// Mode selects how polygons are drawn.
type Mode int

const (
	// ModeOutline draws every border in the renderer's outline color.
	ModeOutline Mode = iota
	// ModeColor fills polygons with their fill color and strokes them
	// with their stroke color.
	ModeColor
)

func (m Mode) String() string {
	if m == ModeColor {
		return "color"
	}
	return "outline"
}

// ParseMode maps "outline" or "color" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "outline":
		return ModeOutline, nil
	case "color":
		return ModeColor, nil
	}
	return 0, errors.Wrapf(geom.ErrMalformedInput, "render mode %q", s)
}

// Renderer draws framebuffer polygons into a sink.
type Renderer struct {
	Mode    Mode
	Outline geom.Color

	// Background, when set, clears sinks implementing Clearer first.
	Background *geom.Color

	Logger hclog.Logger
}

// ByLayer returns polys sorted by ascending layer, keeping load order
// within a layer.
func ByLayer[P geom.Coord](polys []geom.Polygon[P]) []geom.Polygon[P] {
	out := append([]geom.Polygon[P](nil), polys...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer < out[j].Layer })
	return out
}

// Render draws polys, lower layers first.
func (r Renderer) Render(s Sink, polys []geom.Polygon[geom.FBPoint]) {
	log := r.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	if r.Background != nil {
		if c, ok := s.(Clearer); ok {
			c.Clear(r.Background.R, r.Background.G, r.Background.B)
		}
	}

	if r.Mode == ModeOutline {
		s.SetColor(r.Outline.R, r.Outline.G, r.Outline.B)
	}
	for _, p := range ByLayer(polys) {
		switch r.Mode {
		case ModeOutline:
			for _, b := range p.Borders {
				DrawLine(s, b)
			}
		case ModeColor:
			if p.Fill == nil && p.Stroke == nil {
				log.Trace("polygon has neither fill nor stroke", "id", p.ID)
				continue
			}
			if p.Fill != nil {
				s.SetColor(p.Fill.R, p.Fill.G, p.Fill.B)
				FillBorders(s, p.Borders)
			}
			if p.Stroke != nil {
				s.SetColor(p.Stroke.R, p.Stroke.G, p.Stroke.B)
				for _, b := range p.Borders {
					DrawLine(s, b)
				}
			}
		}
	}
	log.Debug("frame rendered", "mode", r.Mode, "polygons", len(polys))
}
