package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	key "github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"vecview/internal/geom"
	"vecview/internal/raster"
	"vecview/internal/scene"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fitList()
		m.resetViewport()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs && (msg.String() == "up" || msg.String() == "down") {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.pan(geom.PanUp)
		case key.Matches(msg, m.keys.Down):
			m.pan(geom.PanDown)
		case key.Matches(msg, m.keys.Left):
			m.pan(geom.PanLeft)
		case key.Matches(msg, m.keys.Right):
			m.pan(geom.PanRight)
		case key.Matches(msg, m.keys.ZoomIn):
			m.zoom(1 / m.cfg.Navigation.ZoomStep)
		case key.Matches(msg, m.keys.ZoomOut):
			m.zoom(m.cfg.Navigation.ZoomStep)
		case key.Matches(msg, m.keys.Reset):
			m.resetViewport()
			m.setStatus("view reset")
		case key.Matches(msg, m.keys.Mode):
			if m.renderer.Mode == raster.ModeColor {
				m.renderer.Mode = raster.ModeOutline
			} else {
				m.renderer.Mode = raster.ModeColor
			}
			m.setStatus("mode: " + m.renderer.Mode.String())
		case key.Matches(msg, m.keys.Sidebar):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.fitList()
			}
			// the canvas width changed
			m.resetViewport()
		case key.Matches(msg, m.keys.Paste):
			m.pasteMode = true
			m.ta.SetValue("")
			m.setStatus("paste mode")
			m.ta.Focus()
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		case key.Matches(msg, m.keys.Attrs):
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case key.Matches(msg, m.keys.Inspect):
			m.inspect()
		case key.Matches(msg, m.keys.Open):
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		lo := m.layout()
		cx, cy := msg.X, msg.Y
		if cx >= lo.originX && cx < lo.originX+lo.w && cy >= lo.originY && cy < lo.originY+lo.h {
			m.hovering = true
			m.hoverCellX = cx - lo.originX
			m.hoverCellY = cy - lo.originY
			m.hoverX, m.hoverY, m.hoverHasXY = m.cellToUniversal(m.hoverCellX, m.hoverCellY, lo.w, lo.h)
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) fitList() {
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
	}
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.setStatus("view mode")
		return m, nil
	case "enter":
		d := strings.TrimSpace(m.ta.Value())
		if d == "" {
			m.setStatus("paste: empty")
			return m, nil
		}
		m.addPath(d)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// addPath appends path data as a new shape. A rejected path leaves the
// scene as it was.
func (m *Model) addPath(d string) {
	id := fmt.Sprintf("pasted-%d", m.pasted+1)
	sh := scene.PathShape{Meta: scene.Meta{ID: id, Style: m.style}, Data: d}
	if err := m.sc.Add(m.loader, sh); err != nil {
		m.log.Warn("pasted path rejected", "id", id, "error", err)
		m.setError(errors.Wrap(err, "paste"))
		return
	}
	m.pasted++
	polys := m.sc.Polygons()
	m.setStatus(fmt.Sprintf("added %s  points=%d", id, polys[len(polys)-1].NumPoints()))
}

func (m *Model) pan(dir geom.Pan) {
	if err := m.viewport.Pan(dir, m.cfg.Navigation.PanPercent); err != nil {
		m.log.Warn("pan rejected", "dir", dir, "error", err)
		m.setError(err)
		return
	}
	m.setStatus("pan " + dir.String())
}

func (m *Model) zoom(factor float64) {
	if err := m.viewport.Zoom(factor); err != nil {
		m.log.Warn("zoom rejected", "factor", factor, "error", err)
		m.setError(err)
		return
	}
	r := m.viewport.Rect()
	m.setStatus(fmt.Sprintf("zoom: %.1f%% of the scene", 100*(r.URx-r.LLx)/m.cfg.SceneSize))
}

// inspect shows the scene vertex nearest to the viewport center.
func (m *Model) inspect() {
	r := m.viewport.Rect()
	x, y, id, ok := m.nearestVertex((r.LLx+r.URx)/2, (r.LLy+r.URy)/2)
	if !ok {
		m.inspectPopup = "no polygon nearby"
		m.setStatus(m.inspectPopup)
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	lines := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("polygon: %s", id),
	}
	for _, p := range m.sc.Polygons() {
		if p.ID == id {
			lines = append(lines,
				fmt.Sprintf("layer: %d", p.Layer),
				fmt.Sprintf("borders: %d  points: %d", len(p.Borders), p.NumPoints()),
				fmt.Sprintf("stroke: %s  fill: %s", colorCell(p.Stroke), colorCell(p.Fill)))
			break
		}
	}
	lines = append(lines,
		fmt.Sprintf("nearest: x=%.2f y=%.2f", x, y),
		fmt.Sprintf("view: [%.1f, %.1f, %.1f, %.1f]", r.LLx, r.LLy, r.URx, r.URy))
	m.inspectPopup = strings.Join(lines, "\n")
	m.setStatus("inspect popup")
}
