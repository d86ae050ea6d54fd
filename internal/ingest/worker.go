package ingest

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"equipment-ingest/internal/model"
)

// Handler processes a single device. It must not panic; failures are reported through
// whatever the handler closes over.
type Handler func(ctx context.Context, d model.Device)

// WorkerPool runs a fixed number of workers over a stream of devices. The jobs channel
// is unbuffered, so at most size devices are being handled at any instant and
// Dispatch blocks until a worker is free.
type WorkerPool struct {
	size   int
	jobs   chan model.Device
	handle Handler
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, handle Handler, logger *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:   size,
		jobs:   make(chan model.Device),
		handle: handle,
		logger: logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	wp.wg.Add(wp.size)
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	for {
		select {
		case d, ok := <-wp.jobs:
			if !ok {
				return
			}
			wp.handle(ctx, d)
		case <-ctx.Done():
			wp.logger.Debug("worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch hands d to the next free worker. It returns ctx.Err() if the context is
// cancelled before a worker accepts the job.
func (wp *WorkerPool) Dispatch(ctx context.Context, d model.Device) error {
	select {
	case wp.jobs <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight ones to finish.
func (wp *WorkerPool) Close() {
	close(wp.jobs)
	wp.wg.Wait()
}

// Size returns the number of workers.
func (wp *WorkerPool) Size() int {
	return wp.size
}
