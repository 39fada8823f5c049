// Package worker evaluates queued player records and writes the results to
// the rating board.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/stats"
	"github.com/okian/scout/internal/domain/types"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Record abstracts what workers read off the queue.
type Record = model.PlayerRecord

// Evaluator scores one player.
type Evaluator interface {
	Evaluate(st stats.Raw, code profile.Position) scoring.Evaluation
}

// Updater stores a board row.
type Updater interface {
	Upsert(ctx context.Context, e types.Entry) (bool, error)
}

// Queue defines how workers receive records.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Record
}

// Sink receives every successful evaluation. It is called from worker
// goroutines and must be safe for concurrent use.
type Sink func(r Record, ev scoring.Evaluation)

// Worker processes records until the queue is drained or it is stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the worker without draining the queue.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	evaluator Evaluator
	updater   Updater
	sink      Sink
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

var _ Worker = (*InMemoryWorker)(nil)

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, evaluator Evaluator, updater Updater, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		evaluator: evaluator,
		updater:   updater,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	records := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case r, ok := <-records:
			if !ok {
				return
			}
			if err := w.process(ctx, r); err != nil {
				w.logger.Error(ctx, "error processing record", logger.String("player_id", r.PlayerID), logger.Error(err))
			}
		}
	}
}

// Shutdown signals the worker to stop and waits for it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

func (w *InMemoryWorker) process(ctx context.Context, r Record) error { //nolint:gocritic // hugeParam: records travel by value
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	evalStart := time.Now()
	ev := w.evaluator.Evaluate(r.Stats, r.Position)
	metrics.RecordEvaluationLatency(float64(time.Since(evalStart).Microseconds()) / 1000)

	entry := types.Entry{
		PlayerID:         r.PlayerID,
		Name:             r.Name,
		Team:             r.Team,
		Position:         r.Position,
		Rating:           ev.Rating,
		Stars:            ev.Stars,
		PassPrecisionPct: ev.PassPrecisionPct,
		ShotPrecisionPct: ev.ShotPrecisionPct,
		Goalkeeper:       ev.Goalkeeper,
	}
	if _, err := w.updater.Upsert(ctx, entry); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "board_error")
		return fmt.Errorf("board update failed for %s: %w", r.PlayerID, err)
	}

	metrics.RecordPlayerEvaluated(string(r.Position), ev.Rating, ev.Goalkeeper)
	if w.sink != nil {
		w.sink(r, ev)
	}
	w.logger.Debug(ctx, "player evaluated",
		logger.String("player_id", r.PlayerID),
		logger.String("position", string(r.Position)),
		logger.Float64("rating", ev.Rating),
	)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	active  atomic.Int64
	wg      sync.WaitGroup
	logger  logger.Logger
}

// NewPool creates a worker pool. workerCount < 1 means one worker per CPU.
// opts are applied to every worker; names are assigned by the pool.
func NewPool(workerCount int, queue Queue, evaluator Evaluator, updater Updater, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(queue, evaluator, updater, wopts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		metrics.UpdateWorkerActiveCount(int(p.active.Add(1)))
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			defer func() { metrics.UpdateWorkerActiveCount(int(p.active.Add(-1))) }()
			w.Run(ctx)
		}(w)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Wait blocks until every worker has returned, which happens once the
// queue is closed and drained.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Shutdown closes the queue when it can be closed, stops all workers and
// waits for them, bounded by ctx and poolShutdownTimeout. Queued records
// not yet picked up are dropped.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
