package jobs

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is one unit of detached background work.
type Job func(ctx context.Context)

// ErrQueueFull is returned when the queue cannot accept more work.
var ErrQueueFull = errors.New("job queue is full")

// Dispatcher runs jobs on a bounded worker pool. Submissions are enqueued
// by the HTTP layer and picked up by workers, so job concurrency is capped
// and shutdown drains in-flight work instead of abandoning it.
type Dispatcher struct {
	queue   chan queued
	workers int
	wg      sync.WaitGroup
	logger  *zap.Logger
}

type queued struct {
	id  string
	job Job
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity. Non-positive values fall back to sensible defaults.
func NewDispatcher(workers, queueSize int, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		queue:   make(chan queued, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the worker goroutines. ctx is handed to every job.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}
	d.logger.Info("job dispatcher started",
		zap.Int("workers", d.workers),
		zap.Int("queueSize", cap(d.queue)))
}

func (d *Dispatcher) work(ctx context.Context, worker int) {
	defer d.wg.Done()
	for q := range d.queue {
		logger := d.logger.With(zap.String("jobID", q.id), zap.Int("worker", worker))
		logger.Debug("job started")
		q.job(ctx)
		logger.Debug("job finished")
	}
}

// Enqueue submits a job without blocking and returns its ID. A full queue
// yields ErrQueueFull so the caller can apply backpressure.
func (d *Dispatcher) Enqueue(job Job) (string, error) {
	id := uuid.New().String()
	select {
	case d.queue <- queued{id: id, job: job}:
		return id, nil
	default:
		return "", ErrQueueFull
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
	d.logger.Info("job dispatcher stopped")
}
