package shapefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/cropet-service/internal/domain"
	"github.com/jonas-p/go-shp"
)

// Layer describes the footprint of a shapefile.
type Layer struct {
	Path   string
	Extent domain.Extent
	Shapes int
	// PRJPath is the sidecar projection file, empty when the shapefile has none.
	PRJPath string
}

// ReadLayer computes the union of every shape's bounding box.
func ReadLayer(path string) (Layer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Layer{}, fmt.Errorf("opening shapefile: %w", err)
	}
	defer r.Close()

	layer := Layer{Path: path}
	for r.Next() {
		_, s := r.Shape()
		if s == nil {
			continue
		}
		b := s.BBox()
		e := domain.Extent{XMin: b.MinX, YMin: b.MinY, XMax: b.MaxX, YMax: b.MaxY}
		if layer.Shapes == 0 {
			layer.Extent = e
		} else {
			layer.Extent = union(layer.Extent, e)
		}
		layer.Shapes++
	}
	if err := r.Err(); err != nil {
		return Layer{}, fmt.Errorf("reading shapefile %s: %w", path, err)
	}
	if layer.Shapes == 0 {
		return Layer{}, fmt.Errorf("shapefile %s has no shapes", path)
	}

	prj := strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
	if _, err := os.Stat(prj); err == nil {
		layer.PRJPath = prj
	} else if !errors.Is(err, os.ErrNotExist) {
		return Layer{}, fmt.Errorf("checking projection file: %w", err)
	}
	return layer, nil
}

func union(a, b domain.Extent) domain.Extent {
	e, _ := domain.ExtentOfPoints([][2]float64{
		{a.XMin, a.YMin}, {a.XMax, a.YMax},
		{b.XMin, b.YMin}, {b.XMax, b.YMax},
	})
	return e
}
