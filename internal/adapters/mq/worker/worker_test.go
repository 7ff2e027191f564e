package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/scoutbase/combine/internal/adapters/mq/queue"
	"github.com/scoutbase/combine/internal/adapters/mq/worker"
	"github.com/scoutbase/combine/internal/domain/model"
	"github.com/scoutbase/combine/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

// recordingStore collects processed submissions for assertions.
type recordingStore struct {
	mu       sync.Mutex
	recorded []string
	failOn   string
}

func (r *recordingStore) RecordCheckin(_ context.Context, c model.Checkin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.SubmissionID == r.failOn {
		return errors.New("injected failure")
	}
	r.recorded = append(r.recorded, c.SubmissionID)
	return nil
}

func (r *recordingStore) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.recorded))
	copy(out, r.recorded)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func submission(id string) model.Checkin {
	return model.Checkin{
		SubmissionID: id,
		TeamID:       "team-1",
		EvaluationID: "eval-1",
		PlayerID:     "player-1",
		Scores:       model.ScoreDoc{"plank_hold_time": 60.0},
	}
}

func TestWorkerProcessesSubmissions(t *testing.T) {
	Convey("Given a worker on a live queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		store := &recordingStore{}
		w := worker.NewInMemoryWorker(q, store)
		go w.Run(ctx)

		Convey("When submissions are enqueued", func() {
			So(q.Enqueue(ctx, submission("sub-1")), ShouldBeTrue)
			So(q.Enqueue(ctx, submission("sub-2")), ShouldBeTrue)

			Convey("Then the worker records them", func() {
				waitFor(t, func() bool { return len(store.ids()) == 2 })
				So(store.ids(), ShouldContain, "sub-1")
				So(store.ids(), ShouldContain, "sub-2")
			})
		})

		Convey("When one submission fails to record", func() {
			store.failOn = "bad"
			So(q.Enqueue(ctx, submission("bad")), ShouldBeTrue)
			So(q.Enqueue(ctx, submission("good")), ShouldBeTrue)

			Convey("Then the worker keeps going past the failure", func() {
				waitFor(t, func() bool { return len(store.ids()) == 1 })
				So(store.ids(), ShouldResemble, []string{"good"})
			})
		})
	})
}

func TestWorkerShutdown(t *testing.T) {
	Convey("Given a running worker", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		store := &recordingStore{}
		w := worker.NewInMemoryWorker(q, store)
		go w.Run(ctx)

		Convey("When the worker is shut down", func() {
			err := w.Shutdown(ctx)

			Convey("Then it stops cleanly", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		store := &recordingStore{}
		p := worker.NewPool(4, q, store)
		p.Start(ctx)

		Convey("When many submissions are enqueued", func() {
			for i := 0; i < 20; i++ {
				So(q.Enqueue(ctx, submission("sub-"+string(rune('a'+i)))), ShouldBeTrue)
			}

			Convey("Then all of them are processed exactly once", func() {
				waitFor(t, func() bool { return len(store.ids()) == 20 })
				seen := make(map[string]int)
				for _, id := range store.ids() {
					seen[id]++
				}
				for id, n := range seen {
					So(n, ShouldEqual, 1)
					So(id, ShouldStartWith, "sub-")
				}
			})
		})

		Convey("When the pool shuts down with work still buffered", func() {
			for i := 0; i < 10; i++ {
				So(q.Enqueue(ctx, submission("drain-"+string(rune('0'+i)))), ShouldBeTrue)
			}
			err := p.Shutdown(ctx)

			Convey("Then the queue is closed and drained first", func() {
				So(err, ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
				So(len(store.ids()), ShouldEqual, 10)
			})
		})
	})
}
