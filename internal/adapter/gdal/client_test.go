package gdal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/cropet-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name  string
	args  []string
	stdin string
}

type fakeRunner struct {
	calls  []call
	output map[string]string
	err    error
	// transform applies to each gdaltransform input line.
	transform func(x, y float64) (float64, float64)
}

func (f *fakeRunner) Run(_ context.Context, stdin io.Reader, name string, args ...string) ([]byte, error) {
	c := call{name: name, args: args}
	if stdin != nil {
		b, _ := io.ReadAll(stdin)
		c.stdin = string(b)
	}
	f.calls = append(f.calls, c)
	if f.err != nil {
		return nil, f.err
	}
	if name == "gdaltransform" && f.transform != nil {
		return []byte(applyTransform(c.stdin, f.transform)), nil
	}
	return []byte(f.output[name]), nil
}

func applyTransform(in string, fn func(x, y float64) (float64, float64)) string {
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(in), "\n") {
		var x, y float64
		_, _ = fmt.Sscan(line, &x, &y)
		nx, ny := fn(x, y)
		fmt.Fprintf(&out, "%g %g 0\n", nx, ny)
	}
	return out.String()
}

func testClient(r Runner) *Client {
	return NewClient(r, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const sampleInfo = `{
  "description": "2010_30m_cdls.img",
  "driverShortName": "HFA",
  "size": [153811, 96523],
  "coordinateSystem": {"wkt": "PROJCS[\"Albers_Conical_Equal_Area\"]"},
  "geoTransform": [-2356095.0, 30.0, 0.0, 3172605.0, 0.0, -30.0]
}`

func TestClient_Info(t *testing.T) {
	r := &fakeRunner{output: map[string]string{"gdalinfo": sampleInfo}}
	info, err := testClient(r).Info(context.Background(), "/gis/2010_30m_cdls.img")
	require.NoError(t, err)

	assert.Equal(t, 153811, info.Width)
	assert.Equal(t, 96523, info.Height)
	assert.Equal(t, `PROJCS["Albers_Conical_Equal_Area"]`, info.WKT)

	x, y := info.Origin()
	assert.InDelta(t, -2356095.0, x, 0)
	assert.InDelta(t, 3172605.0, y, 0)

	cs, err := info.CellSize()
	require.NoError(t, err)
	assert.InDelta(t, 30.0, cs, 0)

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"-json", "/gis/2010_30m_cdls.img"}, r.calls[0].args)
}

func TestClient_Info_Errors(t *testing.T) {
	tests := []struct {
		name   string
		output string
		err    error
	}{
		{"command fails", "", errors.New("exit status 1")},
		{"bad json", "not json", nil},
		{"no geotransform", `{"size":[1,1]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{output: map[string]string{"gdalinfo": tt.output}, err: tt.err}
			_, err := testClient(r).Info(context.Background(), "x.img")
			require.Error(t, err)
		})
	}
}

func TestRasterInfo_CellSizeNotSquare(t *testing.T) {
	info := RasterInfo{GeoTransform: [6]float64{0, 30, 0, 0, 0, -25}}
	_, err := info.CellSize()
	require.Error(t, err)
}

func TestClient_ProjectExtent(t *testing.T) {
	r := &fakeRunner{transform: func(x, y float64) (float64, float64) { return x * 2, y + 100 }}
	e := domain.Extent{XMin: 1, YMin: 2, XMax: 3, YMax: 4}

	got, err := testClient(r).ProjectExtent(context.Background(), e, "/gis/area.prj", "EPSG:5070")
	require.NoError(t, err)
	assert.Equal(t, domain.Extent{XMin: 2, YMin: 102, XMax: 6, YMax: 104}, got)

	require.Len(t, r.calls, 1)
	assert.Equal(t, "gdaltransform", r.calls[0].name)
	assert.Equal(t, []string{"-s_srs", "/gis/area.prj", "-t_srs", "EPSG:5070"}, r.calls[0].args)
	assert.Equal(t, "1 2\n3 2\n3 4\n1 4\n", r.calls[0].stdin)
}

func TestClient_TransformPoints_ShortOutput(t *testing.T) {
	r := &fakeRunner{output: map[string]string{"gdaltransform": "1 2 0\n"}}
	_, err := testClient(r).TransformPoints(context.Background(), "a", "b", [][2]float64{{1, 2}, {3, 4}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 1 points")
}

func TestClient_CommandArgs(t *testing.T) {
	r := &fakeRunner{}
	c := testClient(r)
	ctx := context.Background()

	require.NoError(t, c.Delete(ctx, "/gis/cdl/2010_30m_cdls.img"))
	require.NoError(t, c.Translate(ctx, "in.img", "out.img", [4]float64{-105.5, 2000, -90, 1000}))
	require.NoError(t, c.ComputeStatistics(ctx, "out.img"))
	require.NoError(t, c.BuildOverviews(ctx, "out.img", []int{2, 4, 8}))

	require.Len(t, r.calls, 4)
	assert.Equal(t, call{name: "gdalmanage", args: []string{"delete", "/gis/cdl/2010_30m_cdls.img"}}, r.calls[0])
	assert.Equal(t, call{name: "gdal_translate", args: []string{
		"-of", "HFA",
		"-projwin", "-105.5", "2000", "-90", "1000",
		"-a_ullr", "-105.5", "2000", "-90", "1000",
		"in.img", "out.img",
	}}, r.calls[1])
	assert.Equal(t, call{name: "gdalinfo", args: []string{"-stats", "-nomd", "out.img"}}, r.calls[2])
	assert.Equal(t, call{name: "gdaladdo", args: []string{"-ro", "out.img", "2", "4", "8"}}, r.calls[3])
}

func TestClient_WrapsRunnerError(t *testing.T) {
	r := &fakeRunner{err: errors.New("executable file not found")}
	err := testClient(r).Delete(context.Background(), "x.img")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gdalmanage")
	assert.Contains(t, err.Error(), "executable file not found")
}
