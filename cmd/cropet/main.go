package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/cropet-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/cropet-service/internal/adapter/kafka"
	"github.com/couchcryptid/cropet-service/internal/adapter/sqlite"
	"github.com/couchcryptid/cropet-service/internal/config"
	"github.com/couchcryptid/cropet-service/internal/observability"
	"github.com/couchcryptid/cropet-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Optional sinks (feature-flagged via SQLITE_PATH / KAFKA_BROKERS).
	var (
		sinks   []pipeline.Sink
		closers []namedCloser
	)
	if cfg.SQLiteEnabled() {
		store, err := sqlite.Open(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("failed to open sqlite store", "path", cfg.SQLitePath, "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, pipeline.Sink{Name: "sqlite", Loader: store})
		closers = append(closers, namedCloser{"sqlite store", store})
		logger.Info("sqlite sink enabled", "path", cfg.SQLitePath)
	} else {
		logger.Info("sqlite sink disabled")
	}
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, pipeline.Sink{Name: "kafka", Loader: writer})
		closers = append(closers, namedCloser{"kafka writer", writer})
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka sink disabled")
	}

	extractor := pipeline.NewFileExtractor(cfg.CropParamsPath)
	transformer := pipeline.NewTransformer(logger)

	p := pipeline.New(extractor, transformer, sinks, logger, metrics, cfg.LoadRetryMaxElapsed)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p.Catalog(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start load pipeline.
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx, cfg.ReloadSchedule); err != nil {
			logger.Error("pipeline error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("pipeline did not stop before shutdown timeout")
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error(c.name+" close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

type namedCloser struct {
	name string
	io.Closer
}
