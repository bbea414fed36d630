package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func TestFlattenCubicBezierCount(t *testing.T) {
	p0, p1, p2, p3 := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 2}, vec.Vec2{X: 3, Y: 2}, vec.Vec2{X: 4, Y: 0}
	for _, n := range []int{1, 2, 7, 100} {
		pts := FlattenCubicBezier(p0, p1, p2, p3, n)
		require.Len(t, pts, n+1)
		assert.Equal(t, p0, pts[0])
		assert.InDelta(t, p3.X, pts[n].X, 1e-12)
		assert.InDelta(t, p3.Y, pts[n].Y, 1e-12)
	}
	assert.Len(t, FlattenCubicBezier(p0, p1, p2, p3, 0), 2, "n below 1 is treated as 1")
}

func TestFlattenCubicBezierDegenerateLine(t *testing.T) {
	// colinear, evenly spaced control points give a linear parametrization
	p0, p1, p2, p3 := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 2, Y: 2}, vec.Vec2{X: 3, Y: 3}
	const n = 12
	pts := FlattenCubicBezier(p0, p1, p2, p3, n)
	want := p3.Sub(p0).Length() / n
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		assert.InDelta(t, want, d.Length(), 1e-9, "spacing at %d", i)
		assert.InDelta(t, d.X, d.Y, 1e-9, "point %d left the line", i)
	}
}

func TestCubicAdaptiveSampleCount(t *testing.T) {
	c := NewCurves(1)
	p0, p1, p2, p3 := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 20, Y: 0}, vec.Vec2{X: 30, Y: 0}
	pts := c.Cubic(p0, p1, p2, p3)
	assert.Len(t, pts, 31)

	c = c.WithSpacing(100)
	assert.Len(t, c.Cubic(p0, p1, p2, p3), 2, "short curves still reach their end point")
}

func TestArcLength(t *testing.T) {
	pts := []vec.Vec2{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 10}}
	assert.InDelta(t, 11, ArcLength(pts), 1e-12)
	assert.Zero(t, ArcLength(pts[:1]))
	assert.Zero(t, ArcLength(nil))
}

func TestCircle(t *testing.T) {
	center := vec.Vec2{}
	pts := NewCurves(1).Circle(center, 10)
	require.Len(t, pts, int(math.Round(2*math.Pi*10))+1)
	assert.Equal(t, pts[0], pts[len(pts)-1])
	for i, p := range pts {
		assert.InDelta(t, 10, p.Sub(center).Length(), 1e-4, "point %d", i)
	}
}

func TestCircleTiny(t *testing.T) {
	pts := NewCurves(1).Circle(vec.Vec2{X: 5, Y: 5}, 0.01)
	require.Len(t, pts, 2)
	assert.Equal(t, pts[0], pts[1])
}

func TestEllipse(t *testing.T) {
	tests := []struct {
		name      string
		spacing   float64
		threshold ThresholdStep
		want      int
	}{
		{"spacing one", 1, StepSpacing, 63 + 1},
		{"unit step spacing one", 1, StepUnit, 63 + 1},
		{"spacing two", 2, StepSpacing, 16 + 1},
		{"unit step spacing two", 2, StepUnit, 31 + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCurves(tt.spacing)
			c.Threshold = tt.threshold
			pts := c.Ellipse(vec.Vec2{X: 50, Y: 50}, 10, 10)
			require.Len(t, pts, tt.want)
			assert.Equal(t, pts[0], pts[len(pts)-1])
		})
	}
}

func TestEllipseOnPerimeter(t *testing.T) {
	const rx, ry = 20.0, 5.0
	center := vec.Vec2{X: 30, Y: 30}
	c := NewCurves(1)
	c.Threshold = StepUnit
	pts := c.Ellipse(center, rx, ry)
	require.Greater(t, len(pts), 10)
	for i, p := range pts {
		dx, dy := (p.X-center.X)/rx, (p.Y-center.Y)/ry
		assert.InDelta(t, 1, dx*dx+dy*dy, 1e-9, "point %d", i)
	}
}

func TestEllipseDegenerate(t *testing.T) {
	pts := NewCurves(1).Ellipse(vec.Vec2{X: 1, Y: 1}, 0, 0)
	assert.Equal(t, []vec.Vec2{{X: 1, Y: 1}, {X: 1, Y: 1}}, pts)
}

func TestParseThresholdStep(t *testing.T) {
	s, ok := ParseThresholdStep("unit")
	assert.True(t, ok)
	assert.Equal(t, StepUnit, s)
	s, ok = ParseThresholdStep("")
	assert.True(t, ok)
	assert.Equal(t, StepSpacing, s)
	_, ok = ParseThresholdStep("bogus")
	assert.False(t, ok)
}
