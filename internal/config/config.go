// Package config reads the TOML configuration of vecview.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"vecview/internal/geom"
	"vecview/internal/raster"
	"vecview/internal/scene"
)

// Config holds every tunable of the pipeline and the viewer.
type Config struct {
	// SceneSize is the side of the square universal space.
	SceneSize float64 `toml:"scene_size"`
	// PointSpacing is the target distance between consecutive points of
	// flattened curves, in universal units.
	PointSpacing float64 `toml:"point_spacing"`

	Framebuffer FramebufferConf `toml:"framebuffer"`
	Navigation  NavigationConf  `toml:"navigation"`
	Curves      CurvesConf      `toml:"curves"`
	Render      RenderConf      `toml:"render"`
	Log         LogConf         `toml:"log"`

	md toml.MetaData
}

type FramebufferConf struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type NavigationConf struct {
	// PanPercent is the share of the visible extent moved per pan step.
	PanPercent float64 `toml:"pan_percent"`
	// ZoomStep is the factor applied when zooming out; zooming in uses its
	// inverse.
	ZoomStep float64 `toml:"zoom_step"`
}

type CurvesConf struct {
	ReferenceSamples int     `toml:"reference_samples"`
	EllipseStep      float64 `toml:"ellipse_step"`
	EllipseThreshold string  `toml:"ellipse_threshold"`
}

type RenderConf struct {
	Mode       string `toml:"mode"`
	Background string `toml:"background"`
	Outline    string `toml:"outline"`
	// Style is applied to shapes read from formats without styles.
	Style string `toml:"style"`
}

type LogConf struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SceneSize:    1000,
		PointSpacing: 1,
		Framebuffer:  FramebufferConf{Width: 1000, Height: 1000},
		Navigation:   NavigationConf{PanPercent: 0.1, ZoomStep: 1.25},
		Curves: CurvesConf{
			ReferenceSamples: geom.DefaultReferenceSamples,
			EllipseStep:      geom.DefaultEllipseStep,
			EllipseThreshold: "spacing",
		},
		Render: RenderConf{
			Mode:       "color",
			Background: "white",
			Outline:    "steelblue",
			Style:      "stroke:steelblue;fill:none",
		},
		Log: LogConf{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. Keys that do not match any
// setting are an error.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration %s", path)
	}
	return c.finish(md)
}

// Decode is Load for an in-memory document.
func Decode(s string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(s, c)
	if err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	return c.finish(md)
}

func (c *Config) finish(md toml.MetaData) (*Config, error) {
	if len(md.Undecoded()) > 0 {
		return nil, errors.Errorf("undecoded fields in configuration: %v", md.Undecoded())
	}
	c.md = md
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// IsDefined reports whether key was set explicitly in the decoded file.
func (c *Config) IsDefined(key ...string) bool {
	return c.md.IsDefined(key...)
}

// Validate checks ranges and parses every textual setting once.
func (c *Config) Validate() error {
	switch {
	case !(c.SceneSize > 0):
		return errors.Errorf("scene_size must be positive, got %g", c.SceneSize)
	case !(c.PointSpacing > 0):
		return errors.Errorf("point_spacing must be positive, got %g", c.PointSpacing)
	case c.Framebuffer.Width <= 0 || c.Framebuffer.Height <= 0:
		return errors.Errorf("framebuffer must be at least 1x1, got %dx%d", c.Framebuffer.Width, c.Framebuffer.Height)
	case !(c.Navigation.PanPercent > 0 && c.Navigation.PanPercent <= 1):
		return errors.Errorf("navigation.pan_percent must be in (0, 1], got %g", c.Navigation.PanPercent)
	case !(c.Navigation.ZoomStep > 1):
		return errors.Errorf("navigation.zoom_step must be greater than 1, got %g", c.Navigation.ZoomStep)
	case c.Curves.ReferenceSamples < 1:
		return errors.Errorf("curves.reference_samples must be at least 1, got %d", c.Curves.ReferenceSamples)
	case !(c.Curves.EllipseStep > 0):
		return errors.Errorf("curves.ellipse_step must be positive, got %g", c.Curves.EllipseStep)
	}
	if _, err := c.CurveSampler(); err != nil {
		return err
	}
	if _, err := c.Renderer(nil); err != nil {
		return err
	}
	if _, err := c.DefaultStyle(); err != nil {
		return err
	}
	if c.Log.Level != "" && hclog.LevelFromString(c.Log.Level) == hclog.NoLevel {
		return errors.Errorf("log.level %q is not a log level", c.Log.Level)
	}
	return nil
}

func (c *Config) Space() geom.Space { return geom.Space{Size: c.SceneSize} }

func (c *Config) FB() geom.Framebuffer {
	return geom.Framebuffer{Width: c.Framebuffer.Width, Height: c.Framebuffer.Height}
}

// CurveSampler returns the curve flattening settings.
func (c *Config) CurveSampler() (geom.Curves, error) {
	step, ok := geom.ParseThresholdStep(c.Curves.EllipseThreshold)
	if !ok {
		return geom.Curves{}, errors.Errorf("curves.ellipse_threshold %q must be \"spacing\" or \"unit\"", c.Curves.EllipseThreshold)
	}
	cv := geom.NewCurves(c.PointSpacing)
	cv.ReferenceSamples = c.Curves.ReferenceSamples
	cv.EllipseStep = c.Curves.EllipseStep
	cv.Threshold = step
	return cv, nil
}

// Renderer returns the renderer described by the [render] section.
func (c *Config) Renderer(log hclog.Logger) (raster.Renderer, error) {
	mode, err := raster.ParseMode(c.Render.Mode)
	if err != nil {
		return raster.Renderer{}, errors.Wrap(err, "render.mode")
	}
	bg, err := geom.ParseColor(c.Render.Background)
	if err != nil {
		return raster.Renderer{}, errors.Wrap(err, "render.background")
	}
	outline, err := geom.ParseColor(c.Render.Outline)
	if err != nil {
		return raster.Renderer{}, errors.Wrap(err, "render.outline")
	}
	r := raster.Renderer{Mode: mode, Background: bg, Logger: log}
	if outline != nil {
		r.Outline = *outline
	}
	return r, nil
}

// DefaultStyle parses render.style.
func (c *Config) DefaultStyle() (scene.Style, error) {
	st, err := scene.ParseStyle(c.Render.Style)
	if err != nil {
		return scene.Style{}, errors.Wrap(err, "render.style")
	}
	return st, nil
}

// Loader returns a scene loader using c's space and curve settings.
func (c *Config) Loader(log hclog.Logger) (*scene.Loader, error) {
	cv, err := c.CurveSampler()
	if err != nil {
		return nil, err
	}
	return &scene.Loader{Space: c.Space(), Curves: cv, Logger: log}, nil
}

// NewLogger builds the application logger. Output goes to the configured
// file, or to fallback when no file is set; with neither, logs are
// discarded. The returned function closes the log file.
func (c LogConf) NewLogger(fallback io.Writer) (hclog.Logger, func() error, error) {
	noop := func() error { return nil }
	out := fallback
	closer := noop
	if c.File != "" {
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening log file")
		}
		out, closer = f, f.Close
	}
	if out == nil {
		return hclog.NewNullLogger(), noop, nil
	}
	level := c.Level
	if level == "" {
		level = "info"
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "vecview",
		Level:  hclog.LevelFromString(strings.ToLower(level)),
		Output: out,
	}), closer, nil
}
