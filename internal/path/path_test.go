package path

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"vecview/internal/geom"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Command
	}{
		{"commas and spaces", "m 1,2 l 3 4", []Command{
			{Letter: 'm', Params: []float64{1, 2}},
			{Letter: 'l', Params: []float64{3, 4}},
		}},
		{"sign splits numbers", "l1-2-3", []Command{{Letter: 'l', Params: []float64{1, -2, -3}}}},
		{"second dot splits numbers", "l0.5.5", []Command{{Letter: 'l', Params: []float64{0.5, 0.5}}}},
		{"exponent", "l1e2,-1.5E-1", []Command{{Letter: 'l', Params: []float64{100, -0.15}}}},
		{"letters without spaces", "m0,0h5v5z", []Command{
			{Letter: 'm', Params: []float64{0, 0}},
			{Letter: 'h', Params: []float64{5}},
			{Letter: 'v', Params: []float64{5}},
			{Letter: 'z'},
		}},
		{"absolute letters are lexed", "M 1 1", []Command{{Letter: 'M', Params: []float64{1, 1}}}},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"1 2 m 0 0", "m 0 0 x 1", "m 1e", "m 0,0 z 1", "m 0 0 # 1"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.True(t, errors.Is(err, geom.ErrMalformedInput), "%v", err)
		})
	}
}

func build(t *testing.T, d string) [][]vec.Vec2 {
	t.Helper()
	b, err := Build(d, geom.NewCurves(1), nil)
	require.NoError(t, err)
	return b
}

func TestBuildSquare(t *testing.T) {
	b := build(t, "m 0,0 l 10,0 l 0,10 l -10,0 z")
	require.Len(t, b, 1)
	assert.Equal(t, []vec.Vec2{{}, {X: 10}, {X: 10, Y: 10}, {Y: 10}, {}}, b[0])
}

func TestBuildMoveImplicitLine(t *testing.T) {
	b := build(t, "m 5,5 1,0 0,1")
	require.Len(t, b, 1)
	assert.Equal(t, []vec.Vec2{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}}, b[0])
}

func TestBuildSecondMoveIsRelative(t *testing.T) {
	b := build(t, "m 10,10 h 5 z m 2,3 v 1")
	require.Len(t, b, 2)
	assert.Equal(t, []vec.Vec2{{X: 10, Y: 10}, {X: 15, Y: 10}, {X: 10, Y: 10}}, b[0])
	// after z the anchor is back on the first point of the border
	assert.Equal(t, []vec.Vec2{{X: 12, Y: 13}, {X: 12, Y: 14}}, b[1])
}

func TestBuildHorizontalVertical(t *testing.T) {
	b := build(t, "m 0,0 h 1 2 v -1")
	assert.Equal(t, []vec.Vec2{{}, {X: 1}, {X: 3}, {X: 3, Y: -1}}, b[0])
}

func TestBuildCubic(t *testing.T) {
	b := build(t, "m 0,0 c 0,0 10,0 10,0 c 0,0 0,5 0,5")
	require.Len(t, b, 1)
	// 10 units long straight curve at spacing 1 gives 10 new points, then 5
	require.Len(t, b[0], 16)
	assert.Equal(t, vec.Vec2{}, b[0][0])
	assert.InDelta(t, 10, b[0][10].X, 1e-9)
	assert.InDelta(t, 5, b[0][15].Y, 1e-9)
	assert.InDelta(t, 10, b[0][15].X, 1e-9)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
		kind error
	}{
		{"absolute move", "M 0,0 l 1,1", geom.ErrUnsupportedCommand},
		{"absolute close", "m 0,0 l 1,1 Z", geom.ErrUnsupportedCommand},
		{"arc", "m 0,0 a 1 1 0 0 0 1 1", geom.ErrUnsupportedCommand},
		{"quadratic", "m 0,0 q 1 1 2 2", geom.ErrUnsupportedCommand},
		{"smooth cubic", "m 0,0 s 1 1 2 2", geom.ErrUnsupportedCommand},
		{"line before move", "l 1,1", geom.ErrNoOpenBorder},
		{"close before move", "z", geom.ErrNoOpenBorder},
		{"odd move", "m 1", geom.ErrMalformedInput},
		{"odd line", "m 0,0 l 1,2,3", geom.ErrMalformedInput},
		{"short cubic", "m 0,0 c 1 2 3 4 5", geom.ErrMalformedInput},
		{"empty horizontal", "m 0,0 h", geom.ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.d, geom.NewCurves(1), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "%v", err)
		})
	}
}

func TestNoOpenBorderIsMalformed(t *testing.T) {
	_, err := Build("h 3", geom.NewCurves(1), nil)
	assert.True(t, errors.Is(err, geom.ErrMalformedInput))
}
