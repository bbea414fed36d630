package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vecview/internal/geom"
)

// dot bits of a braille cell, indexed by column then row
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// brailleBuf is a raster sink with 2x4 micro-pixels per terminal cell.
// A cell takes the color of the last dot written into it.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	c    [][]string

	cur    string
	styles map[string]lipgloss.Style
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c, styles: map[string]lipgloss.Style{}}
}

// Framebuffer is the micro-pixel grid covered by the buffer.
func (b *brailleBuf) Framebuffer() geom.Framebuffer {
	return geom.Framebuffer{Width: b.w * 2, Height: b.h * 4}
}

func (b *brailleBuf) SetColor(r, g, bl float64) {
	b.cur = geom.Color{R: r, G: g, B: bl}.Hex()
}

// SetPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) SetPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	b.c[cy][cx] = b.cur
}

// Clear drops every dot. The terminal keeps its own background.
func (b *brailleBuf) Clear(_, _, _ float64) {
	for y := range b.m {
		clear(b.m[y])
		clear(b.c[y])
	}
}

func (b *brailleBuf) style(hex string) lipgloss.Style {
	st, ok := b.styles[hex]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		b.styles[hex] = st
	}
	return st
}

// row renders cells [from, to) of row y, grouping runs of cells with the
// same color into one styled segment.
func (b *brailleBuf) row(y, from, to int) string {
	var sb strings.Builder
	var run []rune
	runColor := ""
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runColor == "" {
			sb.WriteString(string(run))
		} else {
			sb.WriteString(b.style(runColor).Render(string(run)))
		}
		run = run[:0]
	}
	for x := max(0, from); x < min(to, b.w); x++ {
		mask := b.m[y][x]
		r, col := ' ', ""
		if mask != 0 {
			r, col = rune(0x2800+int(mask)), b.c[y][x]
		}
		if col != runColor {
			flush()
			runColor = col
		}
		run = append(run, r)
	}
	flush()
	return sb.String()
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		out[y] = b.row(y, 0, b.w)
	}
	return out
}
