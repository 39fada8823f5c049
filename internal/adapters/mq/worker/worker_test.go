package worker_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	worker "github.com/okian/scout/internal/adapters/mq/worker"
	"github.com/okian/scout/internal/domain/profile"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/stats"
	"github.com/okian/scout/internal/domain/types"
	logging "github.com/okian/scout/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	records chan worker.Record
	once    sync.Once
}

func newMockQueue(size int) *mockQueue {
	return &mockQueue{records: make(chan worker.Record, size)}
}

func (mq *mockQueue) Dequeue(context.Context) <-chan worker.Record { return mq.records }

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.records) })
	return nil
}

func (mq *mockQueue) add(r worker.Record) { mq.records <- r } //nolint:gocritic // test helper

type mockUpdater struct {
	mu      sync.Mutex
	entries map[string]types.Entry
	errors  map[string]error
}

func newMockUpdater() *mockUpdater {
	return &mockUpdater{entries: make(map[string]types.Entry), errors: make(map[string]error)}
}

func (m *mockUpdater) Upsert(_ context.Context, e types.Entry) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.errors[e.PlayerID]; ok {
		return false, err
	}
	_, existed := m.entries[e.PlayerID]
	m.entries[e.PlayerID] = e
	return !existed, nil
}

func (m *mockUpdater) setError(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[id] = err
}

func (m *mockUpdater) get(id string) (types.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	return e, ok
}

func (m *mockUpdater) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func striker(id string) worker.Record {
	return worker.Record{
		PlayerID: id,
		Name:     "Striker " + id,
		Team:     "FC",
		Position: profile.Forward,
		Stats: stats.Raw{
			MatchesPlayed: 30, Goals: 20, Assists: 6,
			CorrectPasses: 300, IncorrectPasses: 100,
			SuccessfulShots: 45, UnsuccessfulShots: 15, Dribbles: 40,
		},
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker over a queue of records", t, func() {
		_ = logging.Init(logging.WithWriter(io.Discard))

		q := newMockQueue(10)
		updater := newMockUpdater()
		engine := scoring.NewEngine()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(q, engine, updater)
			convey.So(w, convey.ShouldNotBeNil)
		})

		convey.Convey("When a record is processed and the queue closes", func() {
			var (
				mu    sync.Mutex
				sunk  []string
				evals []scoring.Evaluation
			)
			w := worker.NewInMemoryWorker(q, engine, updater,
				worker.WithName("w-test"),
				worker.WithLogger(logging.Nop()),
				worker.WithSink(func(r worker.Record, ev scoring.Evaluation) {
					mu.Lock()
					defer mu.Unlock()
					sunk = append(sunk, r.PlayerID)
					evals = append(evals, ev)
				}),
			)
			q.add(striker("p1"))
			_ = q.Close()
			w.Run(context.Background())

			convey.Convey("Then the board row carries the evaluation", func() {
				e, ok := updater.get("p1")
				convey.So(ok, convey.ShouldBeTrue)
				want := scoring.Evaluate(striker("p1").Stats, profile.Forward)
				convey.So(e.Rating, convey.ShouldEqual, want.Rating)
				convey.So(e.Stars, convey.ShouldEqual, want.Stars)
				convey.So(e.PassPrecisionPct, convey.ShouldEqual, 75.0)
				convey.So(e.ShotPrecisionPct, convey.ShouldEqual, 75.0)
				convey.So(e.Name, convey.ShouldEqual, "Striker p1")
				convey.So(e.Team, convey.ShouldEqual, "FC")
				convey.So(e.Goalkeeper, convey.ShouldBeFalse)
			})

			convey.Convey("And the sink saw it", func() {
				convey.So(sunk, convey.ShouldResemble, []string{"p1"})
				convey.So(len(evals[0].Radar), convey.ShouldEqual, 5)
			})

			convey.Convey("And Done is closed", func() {
				select {
				case <-w.Done():
				default:
					t.Error("expected done to be closed")
				}
			})
		})

		convey.Convey("When the board rejects a record", func() {
			updater.setError("bad", errors.New("board down"))
			var sunk int
			w := worker.NewInMemoryWorker(q, engine, updater, worker.WithSink(func(worker.Record, scoring.Evaluation) { sunk++ }))
			q.add(striker("bad"))
			q.add(striker("good"))
			_ = q.Close()
			w.Run(context.Background())

			convey.Convey("Then the worker keeps going", func() {
				_, bad := updater.get("bad")
				_, good := updater.get("good")
				convey.So(bad, convey.ShouldBeFalse)
				convey.So(good, convey.ShouldBeTrue)
				convey.So(sunk, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the worker is shut down while idle", func() {
			w := worker.NewInMemoryWorker(q, engine, updater)
			go w.Run(context.Background())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
			convey.So(w.Shutdown(ctx), convey.ShouldBeNil)
		})

		convey.Convey("When the context is cancelled", func() {
			w := worker.NewInMemoryWorker(q, engine, updater)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			w.Run(ctx)

			select {
			case <-w.Done():
			default:
				t.Error("expected run to return on cancelled context")
			}
		})

		convey.Convey("When shutdown never sees the worker finish", func() {
			w := worker.NewInMemoryWorker(q, engine, updater)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()

			err := w.Shutdown(ctx)
			convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of workers", t, func() {
		_ = logging.Init(logging.WithWriter(io.Discard))

		q := newMockQueue(200)
		updater := newMockUpdater()
		pool := worker.NewPool(4, q, scoring.NewEngine(), updater)

		convey.Convey("Then it has the requested size", func() {
			convey.So(pool.Size(), convey.ShouldEqual, 4)
		})

		convey.Convey("When records are queued and the queue is closed", func() {
			for i := 0; i < 150; i++ {
				q.add(striker(fmt.Sprintf("p%d", i)))
			}
			pool.Start(context.Background())
			_ = q.Close()
			pool.Wait()

			convey.Convey("Then every record reaches the board", func() {
				convey.So(updater.count(), convey.ShouldEqual, 150)
			})
		})

		convey.Convey("When the pool is shut down", func() {
			pool.Start(context.Background())
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			convey.So(pool.Shutdown(ctx), convey.ShouldBeNil)
			pool.Wait()
		})
	})

	convey.Convey("Given a pool with no explicit size", t, func() {
		_ = logging.Init(logging.WithWriter(io.Discard))
		pool := worker.NewPool(0, newMockQueue(1), scoring.NewEngine(), newMockUpdater())
		convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
	})
}
