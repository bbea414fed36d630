package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"vecview/internal/geom"
)

// Image is a sink backed by an RGBA image. Writes outside the image are
// ignored.
type Image struct {
	img *image.RGBA
	c   color.RGBA
}

func NewImage(fb geom.Framebuffer) *Image {
	return &Image{
		img: image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height)),
		c:   color.RGBA{A: 0xff},
	}
}

func toRGBA(r, g, b float64) color.RGBA {
	c := geom.Color{R: r, G: g, B: b}
	cr, cg, cb := c.RGBA8()
	return color.RGBA{R: cr, G: cg, B: cb, A: 0xff}
}

func (m *Image) SetColor(r, g, b float64) { m.c = toRGBA(r, g, b) }

func (m *Image) SetPixel(x, y int) {
	if !(image.Point{X: x, Y: y}).In(m.img.Rect) {
		return
	}
	m.img.SetRGBA(x, y, m.c)
}

func (m *Image) Clear(r, g, b float64) {
	draw.Draw(m.img, m.img.Rect, image.NewUniform(toRGBA(r, g, b)), image.Point{}, draw.Src)
}

// RGBA returns the underlying image.
func (m *Image) RGBA() *image.RGBA { return m.img }

// Encode writes the image as png, bmp or tiff.
func (m *Image) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, m.img)
	case "bmp":
		return bmp.Encode(w, m.img)
	case "tif", "tiff":
		return tiff.Encode(w, m.img, &tiff.Options{Compression: tiff.Deflate})
	}
	return errors.Errorf("unsupported image format %q", format)
}

// Save writes the image to path, choosing the format from its extension.
func (m *Image) Save(path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch format {
	case "png", "bmp", "tif", "tiff":
	default:
		return errors.Errorf("%s: unsupported image format %q", path, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Encode(f, format); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return f.Close()
}
