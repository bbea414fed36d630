package raster

import (
	"math"
	"sort"

	"vecview/internal/geom"
)

// edge is a non-horizontal border edge in the active edge table. x is the
// intersection with the center of the current scanline.
type edge struct {
	yMin, yMax int
	x, dxdy    float64
}

// FillBorders fills the area enclosed by borders with the even-odd rule,
// sampling at pixel centers. Overlapping borders cancel out, which is how
// holes are drawn. Open borders are treated as closed.
func FillBorders(s Sink, borders []geom.Line[geom.FBPoint]) {
	var edges []edge
	for _, b := range borders {
		if len(b) < 2 {
			continue
		}
		n := len(b)
		if b.Closed() {
			n--
		}
		for i := 0; i < n; i++ {
			p, q := b[i], b[(i+1)%len(b)]
			if p.Y() == q.Y() {
				continue
			}
			if p.Y() > q.Y() {
				p, q = q, p
			}
			dxdy := float64(q.X()-p.X()) / float64(q.Y()-p.Y())
			edges = append(edges, edge{
				yMin: p.Y(),
				yMax: q.Y(),
				x:    float64(p.X()) + 0.5*dxdy,
				dxdy: dxdy,
			})
		}
	}
	if len(edges) == 0 {
		return
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].yMin < edges[j].yMin })

	var active []edge
	var xs []float64
	next := 0
	for y := edges[0].yMin; next < len(edges) || len(active) > 0; y++ {
		if len(active) == 0 && edges[next].yMin > y {
			y = edges[next].yMin
		}
		for next < len(edges) && edges[next].yMin == y {
			active = append(active, edges[next])
			next++
		}
		kept := active[:0]
		for _, e := range active {
			if e.yMax > y {
				kept = append(kept, e)
			}
		}
		active = kept

		xs = xs[:0]
		for _, e := range active {
			xs = append(xs, e.x)
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			// pixels whose center lies in [xs[i], xs[i+1])
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Ceil(xs[i+1]-0.5)) - 1
			for x := from; x <= to; x++ {
				s.SetPixel(x, y)
			}
		}

		for i := range active {
			active[i].x += active[i].dxdy
		}
	}
}
