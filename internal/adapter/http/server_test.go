package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/cropet-service/internal/adapter/http"
	"github.com/couchcryptid/cropet-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockCatalog struct {
	snap   domain.Snapshot
	loaded bool
}

func (m *mockCatalog) Snapshot() (domain.Snapshot, bool) { return m.snap, m.loaded }

func (m *mockCatalog) Crop(id int) (domain.CropParameters, bool) {
	if !m.loaded {
		return domain.CropParameters{}, false
	}
	return m.snap.Table.Get(id)
}

var loadedAt = time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)

func loadedCatalog() *mockCatalog {
	table := domain.NewTable()
	table.Put(13, domain.CropParameters{Name: "Winter Wheat", CurveName: "Winter Wheat", Season: domain.SeasonWinter, CropGDDTriggerDOY: 274})
	table.Put(3, domain.CropParameters{Name: "Alfalfa Hay", ClassNumber: 3, Season: domain.SeasonNonWinter, CropGDDTriggerDOY: 1})
	return &mockCatalog{
		snap:   domain.Snapshot{Table: table, Source: "CropParams.txt", LoadedAt: loadedAt},
		loaded: true,
	}
}

func newTestServer(readyErr error, catalog httpadapter.CropCatalog) *httpadapter.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, catalog, logger)
}

func get(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(newTestServer(nil, &mockCatalog{}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(newTestServer(nil, loadedCatalog()), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(newTestServer(fmt.Errorf("not loaded yet"), &mockCatalog{}), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(newTestServer(nil, &mockCatalog{}), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListCrops(t *testing.T) {
	rec := get(newTestServer(nil, loadedCatalog()), "/crops")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Source   string    `json:"source"`
		LoadedAt time.Time `json:"loaded_at"`
		Count    int       `json:"count"`
		Crops    []struct {
			CropID int    `json:"crop_id"`
			Name   string `json:"name"`
			Season string `json:"season"`
		} `json:"crops"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "CropParams.txt", body.Source)
	assert.True(t, loadedAt.Equal(body.LoadedAt))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Crops, 2)
	assert.Equal(t, 13, body.Crops[0].CropID)
	assert.Equal(t, "winter", body.Crops[0].Season)
	assert.Equal(t, 3, body.Crops[1].CropID)
	assert.Equal(t, "Alfalfa Hay", body.Crops[1].Name)
}

func TestGetCrop(t *testing.T) {
	srv := newTestServer(nil, loadedCatalog())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"found", "/crops/3", http.StatusOK, `"name":"Alfalfa Hay"`},
		{"not found", "/crops/7", http.StatusNotFound, `{"error":"crop 7 not found"}`},
		{"non-integer id", "/crops/corn", http.StatusBadRequest, `invalid crop id`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(srv, tt.path)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestCropsBeforeFirstLoad(t *testing.T) {
	srv := newTestServer(nil, &mockCatalog{})

	for _, path := range []string{"/crops", "/crops/3"} {
		rec := get(srv, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "not loaded", path)
	}
}
