package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"vecview/internal/geom"
)

var attrColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "id", Width: 16},
	{Title: "layer", Width: 6},
	{Title: "borders", Width: 8},
	{Title: "points", Width: 8},
	{Title: "stroke", Width: 8},
	{Title: "fill", Width: 8},
}

// refreshAttrsFromCurrent rebuilds the polygon table from the scene.
func (m *Model) refreshAttrsFromCurrent() {
	rows := buildAttributes(m.sc.Polygons())
	// An empty table is not shown
	if len(rows) == 0 {
		m.showAttrs = false
		m.setStatus("no polygons in scene")
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(attrColumns)
	m.tbl.SetRows(rows)
}

// buildAttributes returns one row per polygon, in scene order.
func buildAttributes(polys []geom.Polygon[geom.Point]) []table.Row {
	rows := make([]table.Row, 0, len(polys))
	for i, p := range polys {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			p.ID,
			strconv.Itoa(p.Layer),
			strconv.Itoa(len(p.Borders)),
			strconv.Itoa(p.NumPoints()),
			colorCell(p.Stroke),
			colorCell(p.Fill),
		})
	}
	return rows
}

func colorCell(c *geom.Color) string {
	if c == nil {
		return "none"
	}
	return c.Hex()
}
