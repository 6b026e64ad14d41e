package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/cropet-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CropCatalog is the read side of the in-memory crop table.
type CropCatalog interface {
	Snapshot() (domain.Snapshot, bool)
	Crop(id int) (domain.CropParameters, bool)
}

// Server exposes health, readiness, metrics, and crop lookup endpoints.
type Server struct {
	httpServer *http.Server
	catalog    CropCatalog
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, /crops
// and /crops/{id} routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, catalog CropCatalog, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		catalog: catalog,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /crops", s.handleListCrops)
	mux.HandleFunc("GET /crops/{id}", s.handleGetCrop)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type cropResponse struct {
	CropID int `json:"crop_id"`
	domain.CropParameters
}

type listResponse struct {
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loaded_at"`
	Count    int            `json:"count"`
	Crops    []cropResponse `json:"crops"`
}

func (s *Server) handleListCrops(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.catalog.Snapshot()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "crop table not loaded")
		return
	}

	resp := listResponse{
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt,
		Count:    snap.Table.Len(),
		Crops:    make([]cropResponse, 0, snap.Table.Len()),
	}
	for _, id := range snap.Table.IDs() {
		rec, _ := snap.Table.Get(id)
		resp.Crops = append(resp.Crops, cropResponse{CropID: id, CropParameters: rec})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCrop(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid crop id %q", raw))
		return
	}
	if _, loaded := s.catalog.Snapshot(); !loaded {
		writeError(w, http.StatusServiceUnavailable, "crop table not loaded")
		return
	}

	rec, ok := s.catalog.Crop(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("crop %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, cropResponse{CropID: id, CropParameters: rec})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
