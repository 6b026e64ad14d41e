package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/couchcryptid/cropet-service/internal/domain"
	"github.com/couchcryptid/cropet-service/internal/observability"
	"github.com/robfig/cron/v3"
)

// Extractor reads the raw crop parameter table from its source.
type Extractor interface {
	Extract(ctx context.Context) (RawTable, error)
}

// Transformer parses a raw table into a stamped snapshot.
type Transformer interface {
	Transform(ctx context.Context, raw RawTable) (domain.Snapshot, error)
}

// Loader receives every fully parsed table.
type Loader interface {
	LoadTable(ctx context.Context, snap domain.Snapshot) error
}

// Sink is a named Loader. The name labels logs and metrics.
type Sink struct {
	Name   string
	Loader Loader
}

// Pipeline orchestrates the extract-transform-load cycle and the reload schedule.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	sinks       []Sink
	catalog     *Catalog
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool

	retryMaxElapsed time.Duration

	// mu serializes cycles so a slow load never overlaps the next tick.
	mu sync.Mutex
}

// New creates a Pipeline. Sinks are loaded in order before the in-memory
// catalog is swapped.
func New(e Extractor, t Transformer, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics, retryMaxElapsed time.Duration) *Pipeline {
	return &Pipeline{
		extractor:       e,
		transformer:     t,
		sinks:           sinks,
		catalog:         NewCatalog(),
		logger:          logger,
		metrics:         metrics,
		retryMaxElapsed: retryMaxElapsed,
	}
}

// Catalog returns the in-memory table the pipeline publishes to.
func (p *Pipeline) Catalog() *Catalog {
	return p.catalog
}

// CheckReadiness returns nil once a table has been loaded, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("crop parameter table has not been loaded yet")
	}
	return nil
}

// Run loads the table once, then again on every tick of schedule until the
// context is cancelled. A failed initial load is not fatal; the next tick
// retries it.
func (p *Pipeline) Run(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(slog.NewLogLogger(p.logger.Handler(), slog.LevelError))),
	))
	if _, err := c.AddFunc(schedule, func() { _ = p.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("reload schedule %q: %w", schedule, err)
	}

	p.logger.Info("pipeline started", "schedule", schedule)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	_ = p.RunOnce(ctx)

	c.Start()
	<-ctx.Done()
	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	<-c.Stop().Done()
	return nil
}

// RunOnce runs one extract-transform-load cycle. When the file cannot be read
// or parsed the previous table stays in service and the error is returned.
// Sink failures are logged and counted but do not block the catalog swap.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()

	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.logger.Error("extract crop table failed", "error", err)
		p.metrics.LoadErrors.Inc()
		return err
	}

	snap, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		p.logger.Error("parse crop table failed, keeping previous table", "error", err, "source", raw.Source)
		p.metrics.LoadErrors.Inc()
		return err
	}

	for _, s := range p.sinks {
		if err := p.loadWithRetry(ctx, s, snap); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("load sink failed", "sink", s.Name, "error", err)
			p.metrics.SinkErrors.WithLabelValues(s.Name).Inc()
		}
	}

	_ = p.catalog.LoadTable(ctx, snap)
	p.ready.Store(true)

	p.metrics.LoadsTotal.Inc()
	p.metrics.CropsLoaded.Set(float64(snap.Table.Len()))
	p.metrics.LastLoadTime.Set(float64(snap.LoadedAt.Unix()))
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("crop table loaded",
		"source", snap.Source,
		"crops", snap.Table.Len(),
		"loaded_at", snap.LoadedAt,
	)
	return nil
}

// loadWithRetry retries a sink with exponential backoff: start at 200ms,
// cap at 5s, give up after retryMaxElapsed.
func (p *Pipeline) loadWithRetry(ctx context.Context, s Sink, snap domain.Snapshot) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = p.retryMaxElapsed

	op := func() error {
		return s.Loader.LoadTable(ctx, snap)
	}
	notify := func(err error, wait time.Duration) {
		p.logger.Warn("load sink failed, retrying", "sink", s.Name, "error", err, "wait", wait)
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}
