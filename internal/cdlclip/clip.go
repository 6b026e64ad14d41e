// Package cdlclip clips a Cropland Data Layer raster to a study area. The
// heavy lifting is done by the GDAL command-line utilities; this package
// computes the grid-aligned window and sequences the calls.
package cdlclip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/cropet-service/internal/adapter/gdal"
	"github.com/couchcryptid/cropet-service/internal/adapter/shapefile"
	"github.com/couchcryptid/cropet-service/internal/domain"
)

// PyramidLevels are the overview factors built when pyramids are requested.
var PyramidLevels = []int{2, 4, 8, 16, 32, 64, 128}

// GIS is the set of raster operations the clip needs.
type GIS interface {
	Info(ctx context.Context, path string) (gdal.RasterInfo, error)
	ProjectExtent(ctx context.Context, e domain.Extent, srcSRS, dstSRS string) (domain.Extent, error)
	Delete(ctx context.Context, path string) error
	Translate(ctx context.Context, src, dst string, ullr [4]float64) error
	ComputeStatistics(ctx context.Context, path string) error
	BuildOverviews(ctx context.Context, path string, levels []int) error
}

// Params describes one clip run.
type Params struct {
	GISDir      string
	InputRaster string
	Year        int
	ExtentPath  string
	// Buffer grows the study area extent, in the shapefile's units.
	Buffer    float64
	Overwrite bool
	Pyramids  bool
	Stats     bool
}

// OutputPath is where the clipped raster is written.
func (p Params) OutputPath() string {
	return filepath.Join(p.GISDir, "cdl", fmt.Sprintf("%d_30m_cdls.img", p.Year))
}

// Result reports what a clip produced.
type Result struct {
	OutputPath string
	// Window is the snapped extent in the raster's spatial reference.
	Window domain.Extent
}

// Clipper runs CDL clips.
type Clipper struct {
	gis    GIS
	logger *slog.Logger
}

// New creates a Clipper.
func New(gis GIS, logger *slog.Logger) *Clipper {
	return &Clipper{gis: gis, logger: logger}
}

// Clip cuts the input raster down to the buffered study area, snapped outward
// to the raster grid, and optionally computes statistics and overviews.
func (c *Clipper) Clip(ctx context.Context, p Params) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}

	cdlDir := filepath.Dir(p.OutputPath())
	if err := os.MkdirAll(cdlDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating cdl folder: %w", err)
	}
	c.logger.Info("clip cdl", "gis", p.GISDir, "cdl_dir", cdlDir, "input", p.InputRaster)

	out := p.OutputPath()
	if exists(out) || p.Overwrite {
		c.logger.Debug("removing existing output", "path", out)
		// gdalmanage fails on a missing dataset; only a surviving file is an error.
		if err := c.gis.Delete(ctx, out); err != nil && exists(out) {
			return Result{}, err
		}
	}

	window, err := c.window(ctx, p)
	if err != nil {
		return Result{}, err
	}
	c.logger.Debug("clip window", "extent", window.String(), "ullr", window.ULLR())

	if err := c.gis.Translate(ctx, p.InputRaster, out, window.ULLR()); err != nil {
		return Result{}, err
	}

	if p.Stats {
		c.logger.Info("computing statistics", "path", out)
		if err := c.gis.ComputeStatistics(ctx, out); err != nil {
			return Result{}, err
		}
	}
	if p.Pyramids {
		c.logger.Info("building pyramids", "path", out)
		if err := c.gis.BuildOverviews(ctx, out, PyramidLevels); err != nil {
			return Result{}, err
		}
	}
	return Result{OutputPath: out, Window: window}, nil
}

// window computes the study area extent in the raster's spatial reference,
// expanded onto the raster grid.
func (c *Clipper) window(ctx context.Context, p Params) (domain.Extent, error) {
	info, err := c.gis.Info(ctx, p.InputRaster)
	if err != nil {
		return domain.Extent{}, err
	}
	cellSize, err := info.CellSize()
	if err != nil {
		return domain.Extent{}, err
	}
	originX, originY := info.Origin()

	layer, err := shapefile.ReadLayer(p.ExtentPath)
	if err != nil {
		return domain.Extent{}, err
	}
	if layer.PRJPath == "" {
		return domain.Extent{}, fmt.Errorf("extent shapefile %s has no .prj file", p.ExtentPath)
	}

	extent := layer.Extent
	c.logger.Debug("study area extent", "extent", extent.String())
	if p.Buffer != 0 {
		extent = extent.Buffer(p.Buffer)
		c.logger.Debug("buffered extent", "buffer", p.Buffer, "extent", extent.String())
	}

	projected, err := c.gis.ProjectExtent(ctx, extent, layer.PRJPath, info.WKT)
	if err != nil {
		return domain.Extent{}, err
	}
	return projected.AdjustToSnap(domain.SnapExpand, originX, originY, cellSize)
}

func (p Params) validate() error {
	var errs []error
	if !isDir(p.GISDir) {
		errs = append(errs, fmt.Errorf("GIS workspace %s does not exist", p.GISDir))
	}
	if !exists(p.InputRaster) {
		errs = append(errs, fmt.Errorf("input CDL raster %s does not exist", p.InputRaster))
	}
	if !exists(p.ExtentPath) {
		errs = append(errs, fmt.Errorf("extent shapefile %s does not exist", p.ExtentPath))
	}
	if p.Year <= 0 {
		errs = append(errs, fmt.Errorf("invalid CDL year %d", p.Year))
	}
	return errors.Join(errs...)
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
