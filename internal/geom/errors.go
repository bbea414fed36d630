package geom

import "github.com/pkg/errors"

// Error kinds shared by the whole pipeline. Callers classify with errors.Is.
var (
	// ErrMalformedInput covers missing fields, unparsable numbers, invalid
	// colors and commands used in the wrong state. It aborts a load.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedCommand is returned for path commands outside the
	// relative subset. It aborts a load.
	ErrUnsupportedCommand = errors.New("unsupported command")

	// ErrRangeViolation is returned when a point falls outside the scene or
	// the framebuffer.
	ErrRangeViolation = errors.New("range violation")

	// ErrNavigation is returned when a zoom or pan would take the viewport
	// out of the scene. The viewport is left unchanged.
	ErrNavigation = errors.New("navigation rejected")

	// ErrNoOpenBorder is returned when a command needs the current anchor
	// before any move command started a border.
	ErrNoOpenBorder = errors.Wrap(ErrMalformedInput, "no open border")
)
