package geom

import (
	"github.com/pkg/errors"
	"seehuhn.de/go/geom/rect"
)

// Pan is a direction in which the viewport can be moved.
type Pan int

const (
	PanUp Pan = iota
	PanDown
	PanLeft
	PanRight
)

func (p Pan) String() string {
	switch p {
	case PanUp:
		return "up"
	case PanDown:
		return "down"
	case PanLeft:
		return "left"
	case PanRight:
		return "right"
	}
	return "unknown"
}

// Viewport is the rectangular part of the scene that is currently visible.
type Viewport struct {
	space Space

	// top-left and bottom-right corners
	min, max Point
}

// NewViewport returns the largest viewport with the aspect ratio of fb,
// centered in the scene.
func NewViewport(space Space, fb Framebuffer) (Viewport, error) {
	if fb.Width <= 0 || fb.Height <= 0 {
		return Viewport{}, errors.Wrapf(ErrRangeViolation, "framebuffer %dx%d", fb.Width, fb.Height)
	}
	w, h := space.Size, space.Size
	switch {
	case fb.Height > fb.Width:
		w = space.Size * float64(fb.Width) / float64(fb.Height)
	case fb.Width > fb.Height:
		h = space.Size * float64(fb.Height) / float64(fb.Width)
	}
	x0 := (space.Size - w) / 2
	y0 := (space.Size - h) / 2
	return ViewportFromCorners(space, x0, y0, x0+w, y0+h)
}

// ViewportFromCorners builds a viewport from explicit corners, checking
// that both lie in the scene and that the rectangle is not empty.
func ViewportFromCorners(space Space, minX, minY, maxX, maxY float64) (Viewport, error) {
	lo, err := space.Point(minX, minY)
	if err != nil {
		return Viewport{}, errors.Wrap(err, "viewport min corner")
	}
	hi, err := space.Point(maxX, maxY)
	if err != nil {
		return Viewport{}, errors.Wrap(err, "viewport max corner")
	}
	if !(hi.x > lo.x && hi.y > lo.y) {
		return Viewport{}, errors.Wrapf(ErrRangeViolation, "empty viewport %v-%v", lo, hi)
	}
	return Viewport{space: space, min: lo, max: hi}, nil
}

func (v Viewport) Min() Point { return v.min }
func (v Viewport) Max() Point { return v.max }

// Rect returns the viewport as a rectangle for clipping and mapping.
func (v Viewport) Rect() rect.Rect {
	return rect.Rect{LLx: v.min.x, LLy: v.min.y, URx: v.max.x, URy: v.max.y}
}

// Zoom scales the viewport about its center. A factor above 1 shows more of
// the scene. When zooming out would cross the scene border the viewport is
// slid back inside; an axis that becomes larger than the scene is set to
// the whole scene. On error the viewport is unchanged.
func (v *Viewport) Zoom(factor float64) error {
	if !(factor > 0) {
		return errors.Wrapf(ErrNavigation, "invalid zoom factor %g", factor)
	}
	xc := (v.min.x + v.max.x) / 2
	yc := (v.min.y + v.max.y) / 2
	minX := (v.min.x-xc)*factor + xc
	minY := (v.min.y-yc)*factor + yc
	maxX := (v.max.x-xc)*factor + xc
	maxY := (v.max.y-yc)*factor + yc
	if factor > 1 {
		minX, maxX = fitAxis(minX, maxX, v.space.Size)
		minY, maxY = fitAxis(minY, maxY, v.space.Size)
	}
	nv, err := ViewportFromCorners(v.space, minX, minY, maxX, maxY)
	if err != nil {
		return errors.Wrapf(ErrNavigation, "zooming by %g: %v", factor, err)
	}
	*v = nv
	return nil
}

// fitAxis slides [lo, hi] back into [0, size].
func fitAxis(lo, hi, size float64) (float64, float64) {
	switch {
	case hi-lo >= size:
		return 0, size
	case lo < 0:
		return 0, hi - lo
	case hi > size:
		return size - (hi - lo), size
	}
	return lo, hi
}

// Pan moves the viewport by percent of its extent along dir. A pan that
// would leave the scene is rejected and the viewport is unchanged.
func (v *Viewport) Pan(dir Pan, percent float64) error {
	dx := (v.max.x - v.min.x) * percent
	dy := (v.max.y - v.min.y) * percent
	var ox, oy float64
	var edge string
	switch dir {
	case PanUp:
		oy, edge = -dy, "top"
	case PanDown:
		oy, edge = dy, "bottom"
	case PanLeft:
		ox, edge = -dx, "left"
	case PanRight:
		ox, edge = dx, "right"
	default:
		return errors.Wrapf(ErrNavigation, "unknown pan direction %d", dir)
	}
	nv, err := ViewportFromCorners(v.space, v.min.x+ox, v.min.y+oy, v.max.x+ox, v.max.y+oy)
	if err != nil {
		return errors.Wrapf(ErrNavigation, "%s edge of the scene reached", edge)
	}
	*v = nv
	return nil
}
