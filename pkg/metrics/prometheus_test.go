package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/scoutbase/combine/pkg/metrics"
)

func gather(t *testing.T) map[string]struct{} {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	So(err, ShouldBeNil)
	names := make(map[string]struct{}, len(families))
	for _, f := range families {
		names[f.GetName()] = struct{}{}
	}
	return names
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the global metrics registry", t, func() {
		// Touch a representative metric of each kind so the vecs materialize.
		metrics.RecordCheckinProcessed()
		metrics.UpdateQueueSize(3)
		metrics.RecordHTTPRequest("checkins", "POST", "202")
		metrics.RecordErrorByComponent("queue", "queue_full")

		Convey("When gathering", func() {
			names := gather(t)

			Convey("Then the business metrics are registered", func() {
				So(names, ShouldContainKey, "combine_checkin_checkins_processed_total")
				So(names, ShouldContainKey, "combine_checkin_report_builds_total")
				So(names, ShouldContainKey, "combine_checkin_queue_size")
				So(names, ShouldContainKey, "combine_checkin_http_requests_total")
				So(names, ShouldContainKey, "combine_checkin_errors_by_component_total")
			})

			Convey("Then default Go runtime collectors are absent", func() {
				So(names, ShouldNotContainKey, "go_goroutines")
			})
		})
	})
}

func TestManagerIsolation(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("sub"),
		)
		So(m, ShouldNotBeNil)

		Convey("When gathering from the private registry", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			Convey("Then metric names carry the custom namespace", func() {
				var found bool
				for _, f := range families {
					if f.GetName() == "testns_sub_queue_capacity" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}
