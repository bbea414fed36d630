package scene

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"vecview/internal/geom"
)

// Extensions lists the file extensions LoadFile understands.
var Extensions = []string{".svg", ".wkt", ".geojson", ".json"}

// Supported reports whether LoadFile can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFile reads a document choosing the reader by extension. st styles
// the shapes of formats that carry no style of their own.
func LoadFile(path string, st Style, log hclog.Logger) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return LoadSVG(path, log)
	case ".wkt":
		return LoadWKT(path, st)
	case ".geojson", ".json":
		return LoadGeoJSON(path, st)
	}
	return Document{}, errors.Wrapf(geom.ErrMalformedInput, "%s: unsupported file type", path)
}
