package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"vecview/internal/config"
	"vecview/internal/geom"
	"vecview/internal/raster"
	"vecview/internal/scene"
)

// export renders the file in to out, fitting the whole scene into the
// configured framebuffer.
func export(cfg *config.Config, log hclog.Logger, in, out string) error {
	style, err := cfg.DefaultStyle()
	if err != nil {
		return err
	}
	loader, err := cfg.Loader(log.Named("scene"))
	if err != nil {
		return err
	}
	r, err := cfg.Renderer(log.Named("raster"))
	if err != nil {
		return err
	}
	doc, err := scene.LoadFile(in, style, log.Named("reader"))
	if err != nil {
		return err
	}
	sc, err := loader.Load(doc)
	if err != nil {
		return err
	}
	fb := cfg.FB()
	vp, err := geom.NewViewport(cfg.Space(), fb)
	if err != nil {
		return err
	}
	polys, err := sc.Frame(vp, fb)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(out), ".svg") {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		if err := r.WriteSVG(f, fb, polys); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return errors.Wrap(err, "closing output")
		}
	} else {
		img := raster.NewImage(fb)
		r.Render(img, polys)
		if err := img.Save(out); err != nil {
			return err
		}
	}
	log.Info("rendered", "in", in, "out", out, "polygons", len(polys),
		"width", fb.Width, "height", fb.Height, "mode", r.Mode)
	return nil
}
