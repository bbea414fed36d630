package geom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scene1000 = Space{Size: 1000}

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name                   string
		fb                     Framebuffer
		minX, minY, maxX, maxY float64
	}{
		{"square", Framebuffer{Width: 500, Height: 500}, 0, 0, 1000, 1000},
		{"wide", Framebuffer{Width: 200, Height: 100}, 0, 250, 1000, 750},
		{"tall", Framebuffer{Width: 100, Height: 400}, 375, 0, 625, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewViewport(scene1000, tt.fb)
			require.NoError(t, err)
			assert.Equal(t, Pt(tt.minX, tt.minY), v.Min())
			assert.Equal(t, Pt(tt.maxX, tt.maxY), v.Max())
		})
	}
	_, err := NewViewport(scene1000, Framebuffer{})
	assert.Error(t, err)
}

func TestZoom(t *testing.T) {
	v, err := NewViewport(scene1000, Framebuffer{Width: 10, Height: 10})
	require.NoError(t, err)

	require.NoError(t, v.Zoom(0.5))
	assert.Equal(t, Pt(250, 250), v.Min())
	assert.Equal(t, Pt(750, 750), v.Max())

	require.NoError(t, v.Pan(PanLeft, 0.5))
	assert.Equal(t, Pt(0, 250), v.Min())

	// zooming out near the left edge slides back into the scene
	require.NoError(t, v.Zoom(1.5))
	assert.InDelta(t, 0, v.Min().X(), 1e-9)
	assert.InDelta(t, 750, v.Max().X(), 1e-9)
	assert.InDelta(t, 125, v.Min().Y(), 1e-9)
	assert.InDelta(t, 875, v.Max().Y(), 1e-9)

	// zooming out past the scene size shows the whole scene
	require.NoError(t, v.Zoom(10))
	assert.Equal(t, Pt(0, 0), v.Min())
	assert.Equal(t, Pt(1000, 1000), v.Max())
}

func TestZoomRejected(t *testing.T) {
	v, err := NewViewport(scene1000, Framebuffer{Width: 10, Height: 10})
	require.NoError(t, err)
	before := v
	for _, f := range []float64{0, -2} {
		err := v.Zoom(f)
		assert.True(t, errors.Is(err, ErrNavigation), "factor %g", f)
		assert.Equal(t, before, v)
	}
}

func TestPanRejectedAtSceneEdge(t *testing.T) {
	v, err := NewViewport(scene1000, Framebuffer{Width: 10, Height: 10})
	require.NoError(t, err)
	before := v
	for _, dir := range []Pan{PanUp, PanDown, PanLeft, PanRight} {
		err := v.Pan(dir, 0.1)
		require.Error(t, err, dir.String())
		assert.True(t, errors.Is(err, ErrNavigation))
		assert.Equal(t, before, v, "viewport changed after rejected pan %s", dir)
	}
}

func TestPan(t *testing.T) {
	v, err := ViewportFromCorners(scene1000, 400, 400, 600, 600)
	require.NoError(t, err)
	require.NoError(t, v.Pan(PanDown, 0.1))
	assert.Equal(t, Pt(400, 420), v.Min())
	require.NoError(t, v.Pan(PanRight, 0.5))
	assert.Equal(t, Pt(500, 420), v.Min())
	assert.Equal(t, Pt(700, 620), v.Max())
	r := v.Rect()
	assert.Equal(t, 500.0, r.LLx)
	assert.Equal(t, 620.0, r.URy)
}

func TestViewportFromCornersEmpty(t *testing.T) {
	_, err := ViewportFromCorners(scene1000, 10, 10, 10, 20)
	assert.True(t, errors.Is(err, ErrRangeViolation))
	_, err = ViewportFromCorners(scene1000, -1, 0, 10, 20)
	assert.True(t, errors.Is(err, ErrRangeViolation))
}
