package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecview/internal/config"
	"vecview/internal/geom"
	"vecview/internal/raster"
)

func newModel(t *testing.T) Model {
	t.Helper()
	m, err := New(config.Default(), nil)
	require.NoError(t, err)
	return send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func send(m Model, msg tea.Msg) Model {
	nm, _ := m.Update(msg)
	return nm.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrailleSink(t *testing.T) {
	b := newBrailleBuf(2, 1)
	assert.Equal(t, geom.Framebuffer{Width: 4, Height: 4}, b.Framebuffer())

	b.SetColor(1, 0, 0)
	b.SetPixel(0, 0)
	b.SetColor(0, 0, 1)
	b.SetPixel(3, 3)
	b.SetPixel(4, 0)
	b.SetPixel(-1, 2)
	assert.Equal(t, uint8(0x01), b.m[0][0])
	assert.Equal(t, uint8(0x80), b.m[0][1])
	assert.Equal(t, "#ff0000", b.c[0][0])
	assert.Equal(t, "#0000ff", b.c[0][1])
	assert.Len(t, b.toLines(), 1)

	b.Clear(1, 1, 1)
	assert.Equal(t, []uint8{0, 0}, b.m[0])
}

func TestBrailleRenderTarget(t *testing.T) {
	b := newBrailleBuf(5, 5)
	fb := b.Framebuffer()
	a, err := fb.Point(0, 0)
	require.NoError(t, err)
	c, err := fb.Point(9, 0)
	require.NoError(t, err)
	raster.Renderer{Mode: raster.ModeOutline}.Render(b, []geom.Polygon[geom.FBPoint]{
		{ID: "top", Borders: []geom.Line[geom.FBPoint]{{a, c}}},
	})
	for x := 0; x < 5; x++ {
		assert.Equal(t, uint8(0x09), b.m[0][x], "cell %d", x)
	}
	assert.Zero(t, b.m[1][0])
}

func TestNavigation(t *testing.T) {
	m := newModel(t)
	before := m.viewport.Rect()
	// a wide canvas spans the full scene width
	assert.InDelta(t, 1000, before.URx-before.LLx, 1e-9)

	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.True(t, m.statusErr)
	assert.Equal(t, before, m.viewport.Rect(), "rejected pan leaves the view")

	m = send(m, runes("+"))
	assert.False(t, m.statusErr)
	zoomed := m.viewport.Rect()
	assert.InDelta(t, 1000/1.25, zoomed.URx-zoomed.LLx, 1e-9)

	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, m.statusErr)
	assert.Less(t, m.viewport.Rect().LLx, zoomed.LLx)

	m = send(m, runes("r"))
	assert.Equal(t, before, m.viewport.Rect())

	m = send(m, runes("m"))
	assert.Equal(t, raster.ModeOutline, m.renderer.Mode)
}

func TestSidebarRefitsViewport(t *testing.T) {
	m := newModel(t)
	full := m.viewport.Rect()

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, m.showSidebar)
	lo := m.layout()
	want, err := newCanvasViewport(m.cfg.Space(), lo.w, lo.h)
	require.NoError(t, err)
	assert.Equal(t, want.Rect(), m.viewport.Rect())
	assert.NotEqual(t, full, m.viewport.Rect(), "narrower canvas shows a taller slice")

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, full, m.viewport.Rect())
}

func TestPaste(t *testing.T) {
	m := newModel(t)
	m = send(m, runes("p"))
	require.True(t, m.pasteMode)

	m.ta.SetValue("M 0,0 L 10,10")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.statusErr)
	assert.Empty(t, m.sc.Polygons(), "rejected path leaves the scene unchanged")
	assert.False(t, m.pasteMode)

	m = send(m, runes("p"))
	m.ta.SetValue("m 100,100 l 200,0 0,200 z")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.statusErr, m.status)
	require.Len(t, m.sc.Polygons(), 1)
	assert.Equal(t, "pasted-1", m.sc.Polygons()[0].ID)

	m = send(m, runes("a"))
	assert.True(t, m.showAttrs)
	require.Len(t, m.tbl.Rows(), 1)
	assert.Equal(t, "pasted-1", m.tbl.Rows()[0][1])
	assert.Equal(t, "4", m.tbl.Rows()[0][4])
	m = send(m, runes("a"))

	m = send(m, runes("i"))
	assert.Contains(t, m.inspectPopup, "polygon: pasted-1")
	assert.Contains(t, m.View(), "vecview")
}

func TestLoadPath(t *testing.T) {
	m := newModel(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "line.wkt")
	require.NoError(t, os.WriteFile(good, []byte("LINESTRING (0 0, 10 10, 20 0)"), 0o644))
	bad := filepath.Join(dir, "bad.wkt")
	require.NoError(t, os.WriteFile(bad, []byte("CIRCLE (1 2)"), 0o644))

	m.loadPath(good)
	assert.False(t, m.statusErr, m.status)
	assert.Contains(t, m.status, "polygons=1")
	require.Len(t, m.sc.Polygons(), 1)

	m.loadPath(bad)
	assert.True(t, m.statusErr)
	assert.Len(t, m.sc.Polygons(), 1, "failed load keeps the previous scene")
	assert.Equal(t, good, m.selPath)

	m.cwd = dir
	m.refreshDir()
	assert.Len(t, m.items, 2)
}

func TestHover(t *testing.T) {
	m := newModel(t)
	m = send(m, tea.MouseMsg{X: 0, Y: 1})
	require.True(t, m.hovering)
	require.True(t, m.hoverHasXY)
	mn := m.viewport.Min()
	assert.InDelta(t, mn.X(), m.hoverX, 1e-9)
	assert.InDelta(t, mn.Y(), m.hoverY, 1e-9)

	m = send(m, tea.MouseMsg{X: 0, Y: 0})
	assert.False(t, m.hovering, "header row is outside the map")
}
