package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/scoutbase/combine/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInitAndGet(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetched", func() {
			l := logger.Get()

			Convey("Then it logs without panicking", func() {
				So(l, ShouldNotBeNil)
				So(func() {
					l.Info(context.Background(), "hello", logger.String("k", "v"), logger.Int("n", 1))
				}, ShouldNotPanic)
			})

			Convey("And named children are independent loggers", func() {
				named := l.Named("worker")
				So(named, ShouldNotBeNil)
				So(named, ShouldNotEqual, l)
			})
		})

		Convey("When syncing", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the global level control", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known levels parse case-insensitively", func() {
			for _, lv := range []string{"debug", "INFO", "warn", "Warning", "error", ""} {
				So(logger.SetLevelString(lv), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("Then SetLevel accepts slog levels directly", func() {
			So(func() { logger.SetLevel(slog.LevelDebug) }, ShouldNotPanic)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field helpers", t, func() {
		Convey("Then each captures its key and value", func() {
			So(logger.String("s", "v").Key, ShouldEqual, "s")
			So(logger.Int("i", 7).Value, ShouldEqual, 7)
			So(logger.Float64("f", 1.5).Value, ShouldEqual, 1.5)
			So(logger.Any("a", []int{1}).Key, ShouldEqual, "a")
			So(logger.Error(nil).Key, ShouldEqual, "error")
		})
	})
}
