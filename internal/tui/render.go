package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vecview/internal/geom"
)

const sidebarWidth = 28

// layout is the position and size of the map canvas, in cells.
type layout struct {
	originX, originY int
	w, h             int
	contentW         int
	contentH         int
}

func (m Model) layout() layout {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	ch := max(4, m.height-headerHeight-footerHeight)
	cw := max(10, m.width)
	lo := layout{
		originY:  headerHeight,
		w:        max(10, cw-sw-1),
		h:        ch,
		contentW: cw,
		contentH: ch,
	}
	if m.showSidebar {
		lo.originX = sw + 1
	}
	return lo
}

// resetViewport fits a fresh viewport to the current canvas.
func (m *Model) resetViewport() {
	lo := m.layout()
	vp, err := newCanvasViewport(m.cfg.Space(), lo.w, lo.h)
	if err != nil {
		m.log.Warn("viewport reset failed", "error", err)
		return
	}
	m.viewport = vp
}

func newCanvasViewport(space geom.Space, w, h int) (geom.Viewport, error) {
	return geom.NewViewport(space, newBrailleBuf(w, h).Framebuffer())
}

// renderMap draws the visible part of the scene into a w×h cell canvas.
func (m Model) renderMap(w, h int) (string, error) {
	br := newBrailleBuf(w, h)
	polys, err := m.sc.Frame(m.viewport, br.Framebuffer())
	if err != nil {
		return "", err
	}
	m.renderer.Render(br, polys)
	lines := br.toLines()

	// Hover highlight: an orange circle at the hovered vertex cell
	if m.hovering && m.hoverHasXY {
		if cx, cy, ok := m.nearestCell(w, h); ok {
			circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
			lines[cy] = br.row(cy, 0, cx) + circle + br.row(cy, cx+1, w)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// cellToUniversal converts a canvas cell back to scene coordinates.
func (m Model) cellToUniversal(cx, cy, w, h int) (float64, float64, bool) {
	W, H := w*2, h*4
	if W <= 1 || H <= 1 {
		return 0, 0, false
	}
	mn, mx := m.viewport.Min(), m.viewport.Max()
	x := mn.X() + float64(cx*2)/float64(W-1)*(mx.X()-mn.X())
	y := mn.Y() + float64(cy*4)/float64(H-1)*(mx.Y()-mn.Y())
	return x, y, true
}

// universalToCell is the inverse of cellToUniversal; ok is false outside
// the viewport.
func (m Model) universalToCell(x, y float64, w, h int) (int, int, bool) {
	W, H := w*2, h*4
	mn, mx := m.viewport.Min(), m.viewport.Max()
	if x < mn.X() || x > mx.X() || y < mn.Y() || y > mx.Y() {
		return 0, 0, false
	}
	px := math.Round((x - mn.X()) / (mx.X() - mn.X()) * float64(W-1))
	py := math.Round((y - mn.Y()) / (mx.Y() - mn.Y()) * float64(H-1))
	return int(px) / 2, int(py) / 4, true
}

// nearestVertex finds the scene vertex closest to (x, y).
func (m Model) nearestVertex(x, y float64) (vx, vy float64, id string, ok bool) {
	best := math.Inf(1)
	for _, p := range m.sc.Polygons() {
		for _, b := range p.Borders {
			for _, pt := range b {
				d := math.Hypot(pt.X()-x, pt.Y()-y)
				if d < best {
					best, vx, vy, id, ok = d, pt.X(), pt.Y(), p.ID, true
				}
			}
		}
	}
	return vx, vy, id, ok
}

func (m Model) nearestCell(w, h int) (int, int, bool) {
	vx, vy, _, ok := m.nearestVertex(m.hoverX, m.hoverY)
	if !ok {
		return 0, 0, false
	}
	return m.universalToCell(vx, vy, w, h)
}
