package raster

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecview/internal/geom"
)

type pixel struct{ x, y int }

// recorder remembers the color each pixel was last painted with, and the
// order of SetColor calls.
type recorder struct {
	color  geom.Color
	pixels map[pixel]geom.Color
	writes int
	colors []geom.Color
	clear  *geom.Color
}

func newRecorder() *recorder { return &recorder{pixels: map[pixel]geom.Color{}} }

func (r *recorder) SetPixel(x, y int) {
	r.pixels[pixel{x, y}] = r.color
	r.writes++
}

func (r *recorder) SetColor(red, green, blue float64) {
	r.color = geom.Color{R: red, G: green, B: blue}
	r.colors = append(r.colors, r.color)
}

func (r *recorder) Clear(red, green, blue float64) {
	r.clear = &geom.Color{R: red, G: green, B: blue}
}

func (r *recorder) has(x, y int) bool {
	_, ok := r.pixels[pixel{x, y}]
	return ok
}

func fbLine(t *testing.T, fb geom.Framebuffer, xy ...int) geom.Line[geom.FBPoint] {
	t.Helper()
	var l geom.Line[geom.FBPoint]
	for i := 0; i+1 < len(xy); i += 2 {
		p, err := fb.Point(xy[i], xy[i+1])
		require.NoError(t, err)
		l = append(l, p)
	}
	return l
}

func TestDrawSegment(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want []pixel
	}{
		{"horizontal", Segment{0, 0, 3, 0}, []pixel{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"reversed horizontal", Segment{3, 0, 0, 0}, []pixel{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical", Segment{1, 3, 1, 0}, []pixel{{1, 0}, {1, 1}, {1, 2}, {1, 3}}},
		{"diagonal", Segment{0, 0, 2, 2}, []pixel{{0, 0}, {1, 1}, {2, 2}}},
		{"anti diagonal", Segment{0, 2, 2, 0}, []pixel{{0, 2}, {1, 1}, {2, 0}}},
		{"shallow", Segment{0, 0, 4, 2}, []pixel{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}}},
		{"steep", Segment{0, 0, 1, 3}, []pixel{{0, 0}, {0, 1}, {1, 2}, {1, 3}}},
		{"single pixel", Segment{5, 5, 5, 5}, []pixel{{5, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			DrawSegment(r, tt.seg)
			assert.Equal(t, len(tt.want), r.writes)
			for _, p := range tt.want {
				assert.True(t, r.has(p.x, p.y), "pixel %v", p)
			}
		})
	}
}

func TestDrawSegmentOnePixelPerMajorStep(t *testing.T) {
	r := newRecorder()
	DrawSegment(r, Segment{0, 0, 17, 5})
	assert.Equal(t, 18, r.writes)
	seen := map[int]bool{}
	for p := range r.pixels {
		assert.False(t, seen[p.x], "two pixels in column %d", p.x)
		seen[p.x] = true
	}
}

func TestSquareBorder(t *testing.T) {
	fb := geom.Framebuffer{Width: 10, Height: 10}
	square := fbLine(t, fb, 0, 0, 9, 0, 9, 9, 0, 9, 0, 0)
	assert.Len(t, Segments(square), 4)

	r := newRecorder()
	DrawLine(r, square)
	for i := 0; i < 10; i++ {
		for _, p := range []pixel{{i, 0}, {i, 9}, {0, i}, {9, i}} {
			assert.True(t, r.has(p.x, p.y), "border pixel %v", p)
		}
	}
	assert.Len(t, r.pixels, 36)
	assert.False(t, r.has(5, 5))
}

func TestDrawLineDot(t *testing.T) {
	fb := geom.Framebuffer{Width: 4, Height: 4}
	r := newRecorder()
	DrawLine(r, fbLine(t, fb, 2, 3))
	assert.Equal(t, 1, r.writes)
	assert.True(t, r.has(2, 3))
	assert.Empty(t, Segments(fbLine(t, fb, 2, 3)))
}

func TestFillHollowSquare(t *testing.T) {
	fb := geom.Framebuffer{Width: 10, Height: 10}
	borders := []geom.Line[geom.FBPoint]{
		fbLine(t, fb, 0, 0, 9, 0, 9, 9, 0, 9, 0, 0),
		fbLine(t, fb, 3, 3, 6, 3, 6, 6, 3, 6, 3, 3),
	}
	r := newRecorder()
	FillBorders(r, borders)
	assert.True(t, r.has(1, 4), "ring")
	assert.True(t, r.has(7, 4), "ring")
	assert.True(t, r.has(4, 7), "ring below the hole")
	assert.True(t, r.has(4, 1), "ring above the hole")
	assert.False(t, r.has(4, 4), "hole")
	assert.False(t, r.has(5, 5), "hole")
}

func TestRenderLayersAndModes(t *testing.T) {
	fb := geom.Framebuffer{Width: 10, Height: 10}
	red, blue := geom.Color{R: 1}, geom.Color{B: 1}
	polys := []geom.Polygon[geom.FBPoint]{
		{ID: "top", Layer: 5, Stroke: &red, Borders: []geom.Line[geom.FBPoint]{fbLine(t, fb, 0, 0, 9, 0)}},
		{ID: "bottom", Layer: 1, Stroke: &blue, Borders: []geom.Line[geom.FBPoint]{fbLine(t, fb, 0, 0, 0, 9)}},
		{ID: "invisible", Layer: 9, Borders: []geom.Line[geom.FBPoint]{fbLine(t, fb, 5, 5, 6, 6)}},
	}

	t.Run("color", func(t *testing.T) {
		bg := geom.Color{R: 1, G: 1, B: 1}
		r := newRecorder()
		Renderer{Mode: ModeColor, Background: &bg}.Render(r, polys)
		require.NotNil(t, r.clear)
		assert.Equal(t, bg, *r.clear)
		assert.Equal(t, []geom.Color{blue, red}, r.colors)
		// the shared pixel gets the color of the higher layer
		assert.Equal(t, red, r.pixels[pixel{0, 0}])
		assert.False(t, r.has(5, 5))
	})

	t.Run("outline", func(t *testing.T) {
		r := newRecorder()
		Renderer{Mode: ModeOutline, Outline: geom.Color{G: 1}}.Render(r, polys)
		assert.Len(t, r.colors, 1)
		assert.True(t, r.has(5, 5))
		assert.Nil(t, r.clear)
	})
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Color")
	require.NoError(t, err)
	assert.Equal(t, ModeColor, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeOutline, m)
	_, err = ParseMode("texture")
	assert.Error(t, err)
}

func TestImageSink(t *testing.T) {
	img := NewImage(geom.Framebuffer{Width: 4, Height: 3})
	img.Clear(1, 1, 1)
	img.SetColor(1, 0, 0)
	img.SetPixel(1, 2)
	img.SetPixel(10, 10)
	img.SetPixel(-1, 0)

	assert.Equal(t, uint8(0xff), img.RGBA().RGBAAt(0, 0).G)
	c := img.RGBA().RGBAAt(1, 2)
	assert.Equal(t, [4]uint8{0xff, 0, 0, 0xff}, [4]uint8{c.R, c.G, c.B, c.A})

	var buf bytes.Buffer
	require.NoError(t, img.Encode(&buf, "png"))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())

	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.bmp", "a.tiff"} {
		p := filepath.Join(dir, name)
		require.NoError(t, img.Save(p), name)
		st, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, st.Size())
	}
	assert.Error(t, img.Save(filepath.Join(dir, "a.gif")))
}

func TestWriteSVG(t *testing.T) {
	fb := geom.Framebuffer{Width: 10, Height: 10}
	fill := geom.Color{G: 1}
	polys := []geom.Polygon[geom.FBPoint]{
		{ID: "sq", Layer: 3, Fill: &fill, Borders: []geom.Line[geom.FBPoint]{fbLine(t, fb, 0, 0, 9, 0, 9, 9, 0, 0)}},
		{ID: "ln", Layer: -1, Stroke: &fill, Borders: []geom.Line[geom.FBPoint]{fbLine(t, fb, 1, 1, 2, 2)}},
	}
	var buf bytes.Buffer
	require.NoError(t, Renderer{Mode: ModeColor}.WriteSVG(&buf, fb, polys))
	out := buf.String()
	assert.Contains(t, out, `d="M0 0 L9 0 L9 9 Z"`)
	assert.Contains(t, out, `d="M1 1 L2 2"`)
	assert.Contains(t, out, `fill-rule:evenodd;fill:#00ff00;stroke:none`)
	assert.Less(t, strings.Index(out, `id="-1"`), strings.Index(out, `id="3"`))
}
