package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"equipment-ingest/config"
	"equipment-ingest/internal/model"
	"equipment-ingest/internal/store"
)

// Service runs one import over a configured store.
type Service struct {
	cfg      *config.Config
	store    store.Store
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewService wraps s with the configured rate limit and client cache and builds the pipeline.
func NewService(cfg *config.Config, s store.Store, logger *zap.Logger) *Service {
	s = store.WithRateLimit(s, rate.Limit(cfg.Ingest.RateLimitPerSec), cfg.Ingest.RateLimitBurst)
	s = store.WithClientCache(s, time.Duration(cfg.Ingest.ClientCacheTTLSeconds)*time.Second)

	return &Service{
		cfg:   cfg,
		store: s,
		pipeline: NewPipeline(s, Options{
			Concurrency:          cfg.Ingest.Concurrency,
			CreateMissingClients: cfg.Ingest.CreateMissingClients,
			CallTimeout:          cfg.Ingest.CallTimeout,
		}, logger),
		logger: logger,
	}
}

// Run imports devices and logs the final summary. Counting the table before and
// after is informational; a failed count does not fail the run.
func (s *Service) Run(ctx context.Context, devices []model.Device) *Report {
	s.logger.Info("starting import",
		zap.Int("devices", len(devices)),
		zap.Int("concurrency", s.pipeline.opts.Concurrency),
		zap.Bool("create_missing_clients", s.pipeline.opts.CreateMissingClients))
	start := time.Now()

	before := s.countEquipment(ctx)
	report := s.pipeline.Run(ctx, devices)
	report.EquipmentBefore = before
	report.EquipmentAfter = s.countEquipment(ctx)
	report.Duration = time.Since(start)

	for _, f := range report.Failures {
		s.logger.Warn("record not imported", zap.Uint32("seq", f.Seq), zap.Error(f.Err))
	}
	s.logger.Info("Done!", report.Fields()...)
	return report
}

func (s *Service) countEquipment(ctx context.Context) int64 {
	n, err := withTimeout(ctx, s.cfg.Ingest.CallTimeout, s.store.CountEquipment)
	if err != nil {
		s.logger.Warn("could not count equipment rows", zap.Error(err))
		return -1
	}
	return n
}
