package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/scoutbase/combine/internal/adapters/mq/queue"
	"github.com/scoutbase/combine/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func checkin(id string) model.Checkin {
	return model.Checkin{
		SubmissionID: id,
		TeamID:       "team-1",
		EvaluationID: "eval-1",
		PlayerID:     "player-1",
		Scores:       model.ScoreDoc{"plank_hold_time": 60.0},
	}
}

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))

		Convey("When a submission is enqueued", func() {
			ok := q.Enqueue(ctx, checkin("sub-1"))

			Convey("Then it is accepted and counted", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})

			Convey("And it comes back out on the dequeue channel", func() {
				dequeueCtx, cancel := context.WithCancel(ctx)
				defer cancel()

				select {
				case c := <-q.Dequeue(dequeueCtx):
					So(c.SubmissionID, ShouldEqual, "sub-1")
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for dequeue")
				}
			})
		})
	})
}

func TestEnqueueBackpressure(t *testing.T) {
	Convey("Given a queue with capacity two", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When the queue is full", func() {
			So(q.Enqueue(ctx, checkin("sub-1")), ShouldBeTrue)
			So(q.Enqueue(ctx, checkin("sub-2")), ShouldBeTrue)

			Convey("Then further enqueues are rejected without blocking", func() {
				So(q.Enqueue(ctx, checkin("sub-3")), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestEnqueueCancelledContext(t *testing.T) {
	Convey("Given a full queue and a cancelled context", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(1))
		So(q.Enqueue(context.Background(), checkin("sub-1")), ShouldBeTrue)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When enqueuing", func() {
			ok := q.Enqueue(ctx, checkin("sub-2"))

			Convey("Then the submission is rejected", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a queue with buffered submissions", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		So(q.Enqueue(ctx, checkin("sub-1")), ShouldBeTrue)
		So(q.Enqueue(ctx, checkin("sub-2")), ShouldBeTrue)

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then it reports closed and rejects new submissions", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, checkin("sub-3")), ShouldBeFalse)
			})

			Convey("Then buffered submissions drain before the channel closes", func() {
				out := q.Dequeue(ctx)
				var got []string
				for c := range out {
					got = append(got, c.SubmissionID)
				}
				So(got, ShouldResemble, []string{"sub-1", "sub-2"})
			})

			Convey("Then closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
