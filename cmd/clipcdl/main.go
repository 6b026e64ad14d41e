// Command clipcdl clips a national Cropland Data Layer raster to a study area
// shapefile. The output window is buffered, projected into the raster's
// spatial reference and snapped outward to the raster grid. Requires the GDAL
// command-line utilities on PATH.
//
// Usage:
//
//	go run ./cmd/clipcdl \
//	  -gis ./gis -cdl 2015_30m_cdls.img -year 2015 \
//	  -extent ./gis/study_area.shp -buffer 300 -stats -pyramids
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/cropet-service/internal/adapter/gdal"
	"github.com/couchcryptid/cropet-service/internal/cdlclip"
	"github.com/couchcryptid/cropet-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	gisDir := flag.String("gis", cwd, "GIS workspace folder; output goes to <gis>/cdl")
	cdl := flag.String("cdl", "", "national CDL raster")
	year := flag.Int("year", 0, "CDL year")
	extent := flag.String("extent", "", "study area shapefile")
	buffer := flag.Float64("buffer", 0, "study area buffer in shapefile units")
	overwrite := flag.Bool("overwrite", false, "replace an existing output raster")
	pyramids := flag.Bool("pyramids", false, "build overviews on the output raster")
	stats := flag.Bool("stats", false, "compute statistics on the output raster")
	timeout := flag.Duration("timeout", 30*time.Minute, "limit for each GDAL command")
	debug := flag.Bool("debug", false, "debug level logging")
	flag.Parse()

	if *cdl == "" || *extent == "" || *year == 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -cdl, -extent, -year")
	}

	logger := observability.NewCLILogger(*debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gdal.NewClient(gdal.ExecRunner{}, *timeout, logger)
	res, err := cdlclip.New(client, logger).Clip(ctx, cdlclip.Params{
		GISDir:      *gisDir,
		InputRaster: *cdl,
		Year:        *year,
		ExtentPath:  *extent,
		Buffer:      *buffer,
		Overwrite:   *overwrite,
		Pyramids:    *pyramids,
		Stats:       *stats,
	})
	if err != nil {
		return err
	}

	log.Printf("clipped %s to %s (window %s)", *cdl, res.OutputPath, res.Window)
	return nil
}
