// Package service runs a batch of player records through the scoring
// engine and keeps the resulting rating board.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/scout/internal/adapters/mq/queue"
	workerpool "github.com/okian/scout/internal/adapters/mq/worker"
	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/dedupe"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

const submitRetryDelay = time.Millisecond

// Service owns one batch run: dedupe, queue, workers and the rating board.
type Service struct {
	mu sync.RWMutex

	board    *repository.Board
	deduper  dedupe.Deduper
	queue    *eventqueue.InMemoryQueue
	engine   *scoring.Engine
	pool     *workerpool.Pool
	registry *profile.Registry

	workerCount int
	queueSize   int
	dedupeSize  int
	runID       string
	now         func() time.Time

	evalMu      sync.RWMutex
	evaluations map[string]scoring.Evaluation

	submitted  atomic.Int64
	duplicates atomic.Int64
	rejected   atomic.Int64

	started   bool
	drained   bool
	startedAt time.Time
	cancel    context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the record queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the duplicate check. Zero or less means unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRegistry scores against a custom profile registry.
func WithRegistry(r *profile.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   10000,
		dedupeSize:  0,
		registry:    profile.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components. Calling Start on a
// running service is a no-op. A stopped service starts a fresh run.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.runID == "" || s.startedAt != (time.Time{}) {
		s.runID = uuid.NewString()
	}

	s.board = repository.NewBoard(repository.WithCapacityHint(s.queueSize))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize), dedupe.WithSizeHint(s.queueSize))
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.engine = scoring.NewEngine(scoring.WithRegistry(s.registry))
	s.evalMu.Lock()
	s.evaluations = make(map[string]scoring.Evaluation)
	s.evalMu.Unlock()
	s.submitted.Store(0)
	s.duplicates.Store(0)
	s.rejected.Store(0)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.engine, s.board,
		workerpool.WithSink(s.keepEvaluation),
	)
	s.pool.Start(runCtx)

	s.started = true
	s.drained = false
	s.startedAt = s.now()
	s.logger.Info(ctx, "scout service started",
		logger.String("run_id", s.runID),
		logger.Int("workers", s.pool.Size()),
		logger.Int("queue_size", s.queueSize),
		logger.Int("dedupe_size", s.dedupeSize),
		logger.Int("positions", len(s.registry.Positions())),
	)
	return nil
}

func (s *Service) keepEvaluation(r model.PlayerRecord, ev scoring.Evaluation) { //nolint:gocritic // hugeParam: sink signature
	s.evalMu.Lock()
	s.evaluations[r.PlayerID] = ev
	s.evalMu.Unlock()
}

// Submit validates and queues one record. It returns duplicate=true, and
// no error, when the player id was already submitted in this run.
func (s *Service) Submit(ctx context.Context, rec model.PlayerRecord) (bool, error) { //nolint:gocritic // hugeParam: records travel by value
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return false, ErrNotStarted
	}
	if s.drained {
		return false, ErrDrained
	}

	rec = rec.Normalized()
	if err := rec.Validate(); err != nil {
		s.rejected.Add(1)
		metrics.RecordPlayerRejected()
		return false, err
	}

	if s.deduper.SeenAndRecord(ctx, rec.PlayerID) {
		s.duplicates.Add(1)
		metrics.RecordPlayerDuplicate()
		s.logger.Debug(ctx, "duplicate player skipped", logger.String("player_id", rec.PlayerID))
		return true, nil
	}

	if err := s.queue.Enqueue(ctx, rec); err != nil {
		s.deduper.Unrecord(ctx, rec.PlayerID)
		if errors.Is(err, eventqueue.ErrFull) {
			return false, fmt.Errorf("%w: %s", ErrQueueFull, rec.PlayerID)
		}
		return false, fmt.Errorf("enqueue %s: %w", rec.PlayerID, err)
	}
	s.submitted.Add(1)
	return false, nil
}

// Process submits every record, waiting for queue room when needed, then
// drains the run. Invalid records are logged and skipped.
func (s *Service) Process(ctx context.Context, records []model.PlayerRecord) error {
	for i := range records {
		for {
			_, err := s.Submit(ctx, records[i])
			if err == nil {
				break
			}
			if errors.Is(err, ErrInvalidRecord) {
				s.logger.Warn(ctx, "skipping invalid record", logger.Int("index", i), logger.Error(err))
				break
			}
			if !errors.Is(err, ErrQueueFull) {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(submitRetryDelay):
			}
		}
	}
	return s.Drain(ctx)
}

// Drain stops intake and waits until every queued record is on the board.
func (s *Service) Drain(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.drained = true
	pool := s.pool
	_ = s.queue.Close()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info(ctx, "run drained",
			logger.String("run_id", s.runID),
			logger.Int64("submitted", s.submitted.Load()),
			logger.Int64("duplicates", s.duplicates.Load()),
			logger.Int64("rejected", s.rejected.Load()),
			logger.Int("rated", s.board.Count(ctx)),
		)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain: %w", ctx.Err())
	}
}

// Stop gracefully shuts down the service. Records still queued are dropped;
// call Drain first to keep them. The board stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping scout service...", logger.String("run_id", s.runID))

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "scout service stopped")
}

// RunID returns the id of the current or last run.
func (s *Service) RunID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

// Registry returns the profile registry the run scores against.
func (s *Service) Registry() *profile.Registry { return s.registry }

// Evaluation returns the full evaluation kept for a player.
func (s *Service) Evaluation(playerID string) (scoring.Evaluation, bool) {
	s.evalMu.RLock()
	defer s.evalMu.RUnlock()
	ev, ok := s.evaluations[playerID]
	return ev, ok
}

// Player returns a player's board row with its rank.
func (s *Service) Player(ctx context.Context, playerID string) (repository.Entry, error) {
	board := s.currentBoard()
	if board == nil {
		return repository.Entry{}, ErrNotStarted
	}
	return board.Get(ctx, playerID)
}

func (s *Service) currentBoard() *repository.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"drained":     s.drained,
		"runID":       s.runID,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"submitted":   s.submitted.Load(),
		"duplicates":  s.duplicates.Load(),
		"rejected":    s.rejected.Load(),
	}
	if s.board != nil {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["rated"] = s.board.Count(ctx)
	}
	return stats
}
