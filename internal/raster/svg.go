package raster

import (
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"vecview/internal/geom"
)

// errWriter keeps the first write error, svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func colorValue(c *geom.Color) string {
	if c == nil {
		return "none"
	}
	return c.Hex()
}

// pathData writes the borders of a polygon as absolute path data; closed
// borders end with Z instead of repeating the first point.
func pathData(borders []geom.Line[geom.FBPoint]) string {
	var sb strings.Builder
	for _, b := range borders {
		if len(b) == 0 {
			continue
		}
		n := len(b)
		if b.Closed() {
			n--
		}
		for i := 0; i < n; i++ {
			if i == 0 {
				sb.WriteString("M")
			} else {
				sb.WriteString(" L")
			}
			sb.WriteString(strconv.Itoa(b[i].X()))
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(b[i].Y()))
		}
		if b.Closed() || n == 1 {
			sb.WriteString(" Z")
		}
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

// WriteSVG draws polys as an SVG document of the framebuffer's size, with
// one group per layer. It follows the same mode rules as Render.
func (r Renderer) WriteSVG(w io.Writer, fb geom.Framebuffer, polys []geom.Polygon[geom.FBPoint]) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(fb.Width, fb.Height)
	if r.Background != nil {
		canvas.Rect(0, 0, fb.Width, fb.Height, "fill:"+r.Background.Hex())
	}

	open := false
	layer := 0
	for _, p := range ByLayer(polys) {
		var style string
		switch r.Mode {
		case ModeOutline:
			style = "fill:none;stroke:" + r.Outline.Hex()
		case ModeColor:
			if p.Fill == nil && p.Stroke == nil {
				continue
			}
			style = "fill-rule:evenodd;fill:" + colorValue(p.Fill) + ";stroke:" + colorValue(p.Stroke)
		}
		d := pathData(p.Borders)
		if d == "" {
			continue
		}
		if !open || p.Layer != layer {
			if open {
				canvas.Gend()
			}
			canvas.Gid(strconv.Itoa(p.Layer))
			open, layer = true, p.Layer
		}
		canvas.Path(d, style)
	}
	if open {
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}
