package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/scoutbase/combine/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeenAndRecord(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("When an id is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "sub-1")

			Convey("Then it is reported as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a replay of the same id is reported as seen", func() {
				So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When distinct ids are recorded", func() {
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "b"), ShouldBeFalse)

			Convey("Then both are tracked", func() {
				So(d.Size(), ShouldEqual, 2)
			})
		})
	})
}

func TestUnrecord(t *testing.T) {
	Convey("Given a deduper with a recorded id", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()
		So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)

		Convey("When the id is unrecorded", func() {
			d.Unrecord(ctx, "sub-1")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
			})
		})

		Convey("When an unknown id is unrecorded", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}

func TestBoundedEviction(t *testing.T) {
	Convey("Given a deduper bounded to three ids", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When a fourth id arrives", func() {
			for i := 1; i <= 4; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("sub-%d", i)), ShouldBeFalse)
			}

			Convey("Then the oldest id was evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "sub-4"), ShouldBeTrue)
			})
		})

		Convey("When an id is unrecorded before the tracker fills", func() {
			So(d.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "sub-2"), ShouldBeFalse)
			d.Unrecord(ctx, "sub-1")
			So(d.SeenAndRecord(ctx, "sub-3"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "sub-4"), ShouldBeFalse)

			Convey("Then eviction skips the stale slot and drops a live id", func() {
				So(d.SeenAndRecord(ctx, "sub-5"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "sub-2"), ShouldBeFalse)
			})
		})
	})
}

func TestUnboundedMode(t *testing.T) {
	Convey("Given an unbounded deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("When many ids are recorded", func() {
			for i := 0; i < 1000; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("sub-%d", i)), ShouldBeFalse)
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
				So(d.SeenAndRecord(ctx, "sub-0"), ShouldBeTrue)
			})
		})
	})
}
