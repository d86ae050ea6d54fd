package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"equipment-ingest/internal/mapping"
	"equipment-ingest/internal/model"
	"equipment-ingest/internal/store"
)

// Options tune the pipeline.
type Options struct {
	// Concurrency bounds how many devices are in flight at once.
	Concurrency int
	// CreateMissingClients inserts a client when a device names one the store does not know.
	CreateMissingClients bool
	// CallTimeout bounds every store round trip. Zero disables the bound.
	CallTimeout time.Duration
}

// Pipeline resolves, maps and persists devices with bounded concurrency.
type Pipeline struct {
	store  store.Store
	opts   Options
	logger *zap.Logger

	now   func() time.Time
	newID func() uuid.UUID

	// clients collapses concurrent creations of the same client name.
	clients singleflight.Group
}

// NewPipeline creates a pipeline over s. s is shared by every worker.
func NewPipeline(s store.Store, opts Options, logger *zap.Logger) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 128
	}
	return &Pipeline{
		store:  s,
		opts:   opts,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.New,
	}
}

// Run imports every device and returns the aggregated report. A failing device never
// stops the others; cancelling ctx stops dispatching and marks the rest as skipped.
func (p *Pipeline) Run(ctx context.Context, devices []model.Device) *Report {
	report := NewReport(len(devices))

	wp := NewWorkerPool(p.opts.Concurrency, func(ctx context.Context, d model.Device) {
		report.Add(p.process(ctx, d, report))
	}, p.logger)
	wp.Start(ctx)

	for i, d := range devices {
		if err := wp.Dispatch(ctx, d); err != nil {
			p.logger.Warn("run cancelled, skipping remaining records",
				zap.Int("remaining", len(devices)-i), zap.Error(err))
			report.AddSkipped(len(devices) - i)
			break
		}
	}
	wp.Close()
	return report
}

// process handles one device end to end.
func (p *Pipeline) process(ctx context.Context, d model.Device, report *Report) Result {
	res := Result{Seq: d.SeqNo()}

	clientID, err := p.resolveClient(ctx, d, report)
	if err != nil {
		return p.fail(res, fmt.Errorf("resolve client: %w", err))
	}

	eq := mapping.ToEquipment(d, clientID, p.now())
	res.EquipmentID = eq.ID

	n, err := withTimeout(ctx, p.opts.CallTimeout, func(ctx context.Context) (int64, error) {
		return p.store.UpsertEquipment(ctx, eq)
	})
	if err != nil {
		return p.fail(res, err)
	}

	res.Affected = n
	res.Outcome = OutcomeExisting
	if n > 0 {
		res.Outcome = OutcomeInserted
	}
	p.logger.Info("record processed",
		zap.Uint32("seq", res.Seq),
		zap.String("equipment_id", eq.ID.String()),
		zap.Int64("effect", n))
	return res
}

func (p *Pipeline) fail(res Result, err error) Result {
	res.Outcome = OutcomeFailed
	res.Err = err
	p.logger.Error("record failed", zap.Uint32("seq", res.Seq), zap.Error(err))
	return res
}

// resolveClient returns the id of the device's client, or nil when the device names
// none or the client is unknown and auto-creation is off.
func (p *Pipeline) resolveClient(ctx context.Context, d model.Device, report *Report) (*uuid.UUID, error) {
	if d.Client == nil || *d.Client == "" {
		return nil, nil
	}
	name := *d.Client

	id, err := p.findClient(ctx, name)
	if err != nil || id != nil || !p.opts.CreateMissingClients {
		return id, err
	}

	v, err, _ := p.clients.Do(name, func() (any, error) {
		return p.createClient(ctx, name, d.Address, report)
	})
	if err != nil {
		return nil, err
	}
	created := v.(uuid.UUID)
	return &created, nil
}

// createClient inserts a client named name unless one appeared since the last lookup.
// A conflicting insert falls back to a single re-lookup.
func (p *Pipeline) createClient(ctx context.Context, name string, address *string, report *Report) (uuid.UUID, error) {
	id, err := p.findClient(ctx, name)
	if err != nil {
		return uuid.Nil, err
	}
	if id != nil {
		return *id, nil
	}

	client := mapping.NewClient(p.newID(), name, address, p.now())
	_, err = withTimeout(ctx, p.opts.CallTimeout, func(ctx context.Context) (int64, error) {
		return p.store.InsertClient(ctx, client)
	})
	switch {
	case err == nil:
		report.AddClientCreated()
		p.logger.Info("client created", zap.String("client", name), zap.String("client_id", client.ID.String()))
		return client.ID, nil
	case errors.Is(err, store.ErrConstraintViolation):
		id, err := p.findClient(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		if id == nil {
			return uuid.Nil, fmt.Errorf("client %q conflicted on insert but was not found", name)
		}
		return *id, nil
	default:
		return uuid.Nil, err
	}
}

func (p *Pipeline) findClient(ctx context.Context, name string) (*uuid.UUID, error) {
	return withTimeout(ctx, p.opts.CallTimeout, func(ctx context.Context) (*uuid.UUID, error) {
		return p.store.FindClientByName(ctx, name)
	})
}

// withTimeout runs fn under a child context bounded by d.
func withTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}
