// Package raster draws framebuffer polygons into pixel sinks.
package raster

import "vecview/internal/geom"

// Sink receives pixel writes. Color components are in [0, 1].
type Sink interface {
	SetPixel(x, y int)
	SetColor(r, g, b float64)
}

// Clearer is implemented by sinks that can be reset to a single color.
type Clearer interface {
	Clear(r, g, b float64)
}

// Segment is a straight edge between two pixels.
type Segment struct {
	X0, Y0, X1, Y1 int
}

// Segments returns the consecutive point pairs of l as segments.
func Segments(l geom.Line[geom.FBPoint]) []Segment {
	if len(l) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(l)-1)
	for i := 1; i < len(l); i++ {
		p, q := l[i-1], l[i]
		out = append(out, Segment{X0: p.X(), Y0: p.Y(), X1: q.X(), Y1: q.Y()})
	}
	return out
}

// DrawLine draws every segment of l. A one-point line is drawn as a dot.
func DrawLine(s Sink, l geom.Line[geom.FBPoint]) {
	if len(l) == 1 {
		s.SetPixel(l[0].X(), l[0].Y())
		return
	}
	for _, seg := range Segments(l) {
		DrawSegment(s, seg)
	}
}

// DrawSegment rasterizes seg with integer Bresenham stepping, both end
// pixels included. The major axis is x when |dx| >= |dy|.
func DrawSegment(s Sink, seg Segment) {
	x0, y0, x1, y1 := seg.X0, seg.Y0, seg.X1, seg.Y1
	if abs(x1-x0) >= abs(y1-y0) {
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		drawHorizontal(s, x0, y0, x1, y1)
		return
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	drawVertical(s, x0, y0, x1, y1)
}

// x0 <= x1 and |dy| <= dx
func drawHorizontal(s Sink, x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	step := 1
	if dy < 0 {
		step, dy = -1, -dy
	}
	d := 2*dy - dx
	y := y0
	for x := x0; x <= x1; x++ {
		s.SetPixel(x, y)
		if d > 0 {
			y += step
			d -= 2 * dx
		}
		d += 2 * dy
	}
}

// y0 <= y1 and |dx| < dy
func drawVertical(s Sink, x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	step := 1
	if dx < 0 {
		step, dx = -1, -dx
	}
	d := 2*dx - dy
	x := x0
	for y := y0; y <= y1; y++ {
		s.SetPixel(x, y)
		if d > 0 {
			x += step
			d -= 2 * dy
		}
		d += 2 * dx
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
