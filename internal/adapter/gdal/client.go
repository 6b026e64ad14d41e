package gdal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/cropet-service/internal/domain"
)

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Client drives the GDAL command-line utilities.
type Client struct {
	runner  Runner
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a GDAL client. Each command is bounded by timeout.
func NewClient(runner Runner, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{runner: runner, timeout: timeout, logger: logger}
}

// RasterInfo is the subset of gdalinfo -json output the clip needs.
type RasterInfo struct {
	Width, Height int
	GeoTransform  [6]float64
	WKT           string
}

// Origin returns the upper-left corner of the raster grid.
func (r RasterInfo) Origin() (x, y float64) {
	return r.GeoTransform[0], r.GeoTransform[3]
}

// CellSize returns the pixel width, or an error for non-square cells.
func (r RasterInfo) CellSize() (float64, error) {
	w, h := r.GeoTransform[1], -r.GeoTransform[5]
	if w <= 0 || w != h {
		return 0, fmt.Errorf("raster cells are not square: %g x %g", w, h)
	}
	return w, nil
}

// Info reads the raster metadata with gdalinfo -json.
func (c *Client) Info(ctx context.Context, path string) (RasterInfo, error) {
	out, err := c.run(ctx, nil, "gdalinfo", "-json", path)
	if err != nil {
		return RasterInfo{}, err
	}

	var resp infoResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return RasterInfo{}, fmt.Errorf("decode gdalinfo output: %w", err)
	}
	if len(resp.GeoTransform) != 6 {
		return RasterInfo{}, fmt.Errorf("raster %s has no geotransform", path)
	}

	info := RasterInfo{WKT: resp.CoordinateSystem.WKT}
	copy(info.GeoTransform[:], resp.GeoTransform)
	if len(resp.Size) == 2 {
		info.Width, info.Height = resp.Size[0], resp.Size[1]
	}
	return info, nil
}

// TransformPoints reprojects points from srcSRS to dstSRS with gdaltransform.
// Either SRS may be any definition GDAL accepts, including a .prj path or WKT.
func (c *Client) TransformPoints(ctx context.Context, srcSRS, dstSRS string, points [][2]float64) ([][2]float64, error) {
	var in bytes.Buffer
	for _, p := range points {
		fmt.Fprintf(&in, "%s %s\n",
			strconv.FormatFloat(p[0], 'f', -1, 64),
			strconv.FormatFloat(p[1], 'f', -1, 64))
	}

	out, err := c.run(ctx, &in, "gdaltransform", "-s_srs", srcSRS, "-t_srs", dstSRS)
	if err != nil {
		return nil, err
	}

	result := make([][2]float64, 0, len(points))
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("gdaltransform output %q is not a coordinate", sc.Text())
		}
		result = append(result, [2]float64{x, y})
	}
	if len(result) != len(points) {
		return nil, fmt.Errorf("gdaltransform returned %d points, want %d", len(result), len(points))
	}
	return result, nil
}

// ProjectExtent reprojects the four corners of e and returns their bounding box.
func (c *Client) ProjectExtent(ctx context.Context, e domain.Extent, srcSRS, dstSRS string) (domain.Extent, error) {
	corners := e.Corners()
	projected, err := c.TransformPoints(ctx, srcSRS, dstSRS, corners[:])
	if err != nil {
		return domain.Extent{}, err
	}
	return domain.ExtentOfPoints(projected)
}

// Delete removes a dataset and its sidecar files with gdalmanage.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.run(ctx, nil, "gdalmanage", "delete", path)
	return err
}

// Translate copies the ulx uly lrx lry window of src into an Erdas Imagine
// file, assigning the same corners to the output.
func (c *Client) Translate(ctx context.Context, src, dst string, ullr [4]float64) error {
	corners := make([]string, len(ullr))
	for i, v := range ullr {
		corners[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	args := []string{"-of", "HFA", "-projwin"}
	args = append(args, corners...)
	args = append(args, "-a_ullr")
	args = append(args, corners...)
	args = append(args, src, dst)

	_, err := c.run(ctx, nil, "gdal_translate", args...)
	return err
}

// ComputeStatistics computes and stores band statistics.
func (c *Client) ComputeStatistics(ctx context.Context, path string) error {
	_, err := c.run(ctx, nil, "gdalinfo", "-stats", "-nomd", path)
	return err
}

// BuildOverviews builds external (read-only) overviews at the given levels.
func (c *Client) BuildOverviews(ctx context.Context, path string, levels []int) error {
	args := []string{"-ro", path}
	for _, l := range levels {
		args = append(args, strconv.Itoa(l))
	}
	_, err := c.run(ctx, nil, "gdaladdo", args...)
	return err
}

func (c *Client) run(ctx context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.runner.Run(ctx, stdin, name, args...)
	c.logger.Debug("gdal command", "cmd", name, "args", args, "duration", time.Since(start), "error", err)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	return out, nil
}

// gdalinfo -json response types.

type infoResponse struct {
	Size             []int     `json:"size"`
	GeoTransform     []float64 `json:"geoTransform"`
	CoordinateSystem struct {
		WKT string `json:"wkt"`
	} `json:"coordinateSystem"`
}
