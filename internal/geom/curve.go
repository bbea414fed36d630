package geom

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

const (
	// DefaultReferenceSamples is the sample count used to estimate the arc
	// length of a cubic Bézier before choosing the final sample count.
	DefaultReferenceSamples = 1000

	// DefaultEllipseStep is the angular step, in radians, used to integrate
	// the ellipse perimeter.
	DefaultEllipseStep = 1e-4
)

// ThresholdStep selects how the ellipse sampler advances its emission
// threshold after each emitted point.
type ThresholdStep int

const (
	// StepSpacing advances the threshold by the target spacing. This is
	// the behaviour of the program the sampler was taken from; it only
	// yields about numPoints samples when the spacing is 1.
	StepSpacing ThresholdStep = iota

	// StepUnit advances the threshold by 1, mirroring the circle sampler.
	StepUnit
)

// ParseThresholdStep maps a configuration value to a ThresholdStep.
func ParseThresholdStep(s string) (ThresholdStep, bool) {
	switch s {
	case "", "spacing":
		return StepSpacing, true
	case "unit":
		return StepUnit, true
	}
	return 0, false
}

// Curves flattens curved shapes into point sequences whose consecutive
// points are about Spacing apart.
type Curves struct {
	Spacing          float64
	ReferenceSamples int
	EllipseStep      float64
	Threshold        ThresholdStep
}

// NewCurves returns Curves with the default sampling parameters.
func NewCurves(spacing float64) Curves {
	return Curves{
		Spacing:          spacing,
		ReferenceSamples: DefaultReferenceSamples,
		EllipseStep:      DefaultEllipseStep,
		Threshold:        StepSpacing,
	}
}

// WithSpacing returns a copy of c using another target spacing.
func (c Curves) WithSpacing(spacing float64) Curves {
	c.Spacing = spacing
	return c
}

// FlattenCubicBezier samples the cubic Bézier p0..p3 at t = i/n for
// i = 0..n, returning n+1 points. n < 1 is treated as 1.
func FlattenCubicBezier(p0, p1, p2, p3 vec.Vec2, n int) []vec.Vec2 {
	if n < 1 {
		n = 1
	}
	out := make([]vec.Vec2, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		b0 := mt * mt * mt
		b1 := 3 * mt * mt * t
		b2 := 3 * mt * t * t
		b3 := t * t * t
		out[i] = p0.Mul(b0).Add(p1.Mul(b1)).Add(p2.Mul(b2)).Add(p3.Mul(b3))
	}
	return out
}

// ArcLength sums the Euclidean distances between consecutive points.
func ArcLength(pts []vec.Vec2) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i].Sub(pts[i-1]).Length()
	}
	return l
}

// Cubic flattens a cubic Bézier adaptively. There is no closed form for its
// arc length, so the curve is first flattened with ReferenceSamples points
// to estimate it, and then flattened again with round(length/Spacing)
// samples.
func (c Curves) Cubic(p0, p1, p2, p3 vec.Vec2) []vec.Vec2 {
	ref := c.ReferenceSamples
	if ref < 1 {
		ref = DefaultReferenceSamples
	}
	length := ArcLength(FlattenCubicBezier(p0, p1, p2, p3, ref))
	n := int(math.Round(length / c.Spacing))
	return FlattenCubicBezier(p0, p1, p2, p3, n)
}

// Circle samples the perimeter of a circle at a uniform angular step and
// repeats the first point at the end to close the loop.
func (c Curves) Circle(center vec.Vec2, radius float64) []vec.Vec2 {
	numPoints := int(math.Round(2 * math.Pi * radius / c.Spacing))
	if numPoints < 1 {
		numPoints = 1
	}
	theta := 2 * math.Pi / float64(numPoints)
	out := make([]vec.Vec2, 0, numPoints+1)
	for i := 0; i < numPoints; i++ {
		a := theta * float64(i)
		out = append(out, vec.Vec2{
			X: center.X + math.Cos(a)*radius,
			Y: center.Y + math.Sin(a)*radius,
		})
	}
	return append(out, out[0])
}

// Ellipse samples the perimeter of an axis-aligned ellipse at roughly equal
// arc length. The perimeter is integrated numerically over fixed angular
// steps; a second scan over the same steps emits a point each time the
// travelled fraction of the perimeter, scaled by the target point count,
// reaches the running threshold. The loop is closed by repeating the first
// point.
func (c Curves) Ellipse(center vec.Vec2, rx, ry float64) []vec.Vec2 {
	step := c.EllipseStep
	if step <= 0 {
		step = DefaultEllipseStep
	}
	dp := func(t float64) float64 {
		return math.Hypot(rx*math.Sin(t), ry*math.Cos(t))
	}
	steps := int(2 * math.Pi / step)

	var circ float64
	for i := 0; i < steps; i++ {
		circ += dp(float64(i) * step)
	}
	if circ == 0 {
		return []vec.Vec2{center, center}
	}

	perimeter := 2 * math.Pi * math.Sqrt((rx*rx+ry*ry)/2)
	numPoints := math.Round(perimeter / c.Spacing)
	increment := c.Spacing
	if c.Threshold == StepUnit {
		increment = 1
	}

	var out []vec.Vec2
	var run, next float64
	for i := 0; i < steps; i++ {
		theta := float64(i) * step
		if numPoints*run/circ >= next {
			next += increment
			out = append(out, vec.Vec2{
				X: center.X + math.Cos(theta)*rx,
				Y: center.Y + math.Sin(theta)*ry,
			})
		}
		run += dp(theta)
	}
	return append(out, out[0])
}
