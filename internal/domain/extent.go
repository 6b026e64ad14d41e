package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SnapMethod selects how AdjustToSnap moves extent edges onto a grid.
type SnapMethod string

const (
	SnapExpand SnapMethod = "EXPAND"
	SnapShrink SnapMethod = "SHRINK"
	SnapRound  SnapMethod = "ROUND"
)

// Extent is an axis-aligned bounding box in map units.
type Extent struct {
	XMin, YMin, XMax, YMax float64
}

// Buffer grows the extent by d on every side.
func (e Extent) Buffer(d float64) Extent {
	return Extent{XMin: e.XMin - d, YMin: e.YMin - d, XMax: e.XMax + d, YMax: e.YMax + d}
}

// AdjustToSnap moves every edge onto the grid defined by a snap point and a
// cell size.
func (e Extent) AdjustToSnap(method SnapMethod, snapX, snapY, cellSize float64) (Extent, error) {
	if cellSize <= 0 {
		return e, fmt.Errorf("snap extent: cell size must be positive, got %g", cellSize)
	}

	var lo, hi func(float64) float64
	switch SnapMethod(strings.ToUpper(string(method))) {
	case SnapExpand:
		lo, hi = math.Floor, math.Ceil
	case SnapShrink:
		lo, hi = math.Ceil, math.Floor
	case SnapRound:
		round := func(v float64) float64 { return math.Floor(v + 0.5) }
		lo, hi = round, round
	default:
		return e, fmt.Errorf("snap extent: unknown method %q", method)
	}

	snap := func(v, origin float64, f func(float64) float64) float64 {
		return f((v-origin)/cellSize)*cellSize + origin
	}
	return Extent{
		XMin: snap(e.XMin, snapX, lo),
		YMin: snap(e.YMin, snapY, lo),
		XMax: snap(e.XMax, snapX, hi),
		YMax: snap(e.YMax, snapY, hi),
	}, nil
}

// ULLR returns the upper-left and lower-right corners as
// (ulx, uly, lrx, lry), the order gdal_translate -projwin expects.
func (e Extent) ULLR() [4]float64 {
	return [4]float64{e.XMin, e.YMax, e.XMax, e.YMin}
}

// Corners returns the four corners, counter-clockwise from lower-left.
func (e Extent) Corners() [4][2]float64 {
	return [4][2]float64{
		{e.XMin, e.YMin},
		{e.XMax, e.YMin},
		{e.XMax, e.YMax},
		{e.XMin, e.YMax},
	}
}

// ExtentOfPoints returns the bounding box of a set of points.
func ExtentOfPoints(points [][2]float64) (Extent, error) {
	if len(points) == 0 {
		return Extent{}, fmt.Errorf("extent of points: no points")
	}
	e := Extent{XMin: points[0][0], YMin: points[0][1], XMax: points[0][0], YMax: points[0][1]}
	for _, p := range points[1:] {
		e.XMin = math.Min(e.XMin, p[0])
		e.YMin = math.Min(e.YMin, p[1])
		e.XMax = math.Max(e.XMax, p[0])
		e.YMax = math.Max(e.YMax, p[1])
	}
	return e, nil
}

func (e Extent) String() string {
	return fmt.Sprintf("%s %s %s %s", fmtCoord(e.XMin), fmtCoord(e.YMin), fmtCoord(e.XMax), fmtCoord(e.YMax))
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
