// Package queue defines the contract for enqueuing and consuming player
// records between intake and the evaluation workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/pkg/metrics"
)

const defaultQueueCapacity = 10000

// Record is the payload type flowing through the queue.
type Record = model.PlayerRecord

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a record without blocking.
	// Returns ErrFull, ErrClosed or the context error when it could not.
	Enqueue(ctx context.Context, r Record) error

	// Dequeue returns the channel workers consume from. Every call returns
	// the same channel; it is closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Record

	// Len returns the current number of queued records.
	Len(ctx context.Context) int

	// Close stops intake. Records already queued stay readable.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	records  chan Record
	out      chan Record
	capacity int

	forward sync.Once
	mu      sync.RWMutex
	closed  bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}

	q.records = make(chan Record, q.capacity)
	q.out = make(chan Record)

	metrics.UpdateQueueCapacity(q.capacity)
	q.report(0)
	return q
}

// Enqueue adds a record to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Record) error { //nolint:gocritic // hugeParam: records travel by value
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}

	select {
	case q.records <- r:
		metrics.RecordQueueEnqueue()
		q.report(len(q.records))
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue returns the shared consumer channel. The first call starts the
// forwarder; it stops when the queue is drained or ctx is done.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Record {
	q.forward.Do(func() {
		go func() {
			defer close(q.out)
			for r := range q.records {
				select {
				case q.out <- r:
					metrics.RecordQueueDequeue()
					q.report(len(q.records))
				case <-ctx.Done():
					return
				}
			}
		}()
	})
	return q.out
}

// Len returns the current number of queued records.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.records)
	q.report(size)
	return size
}

// Capacity returns the configured bound.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.records)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) report(size int) {
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
