package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/scoutbase/combine/internal/adapters/repository"
	"github.com/scoutbase/combine/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecordCheckin(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		s := repository.NewMemStore(ctx)

		Convey("When a first submission arrives", func() {
			err := s.RecordCheckin(ctx, model.Checkin{
				SubmissionID:   "sub-1",
				TeamID:         "team-1",
				EvaluationID:   "eval-1",
				EvaluationName: "Spring Check-in",
				PlayerID:       "p1",
				PlayerName:     "One",
				Scores:         model.ScoreDoc{"plank_hold_time": 60.0},
				Clusters:       model.ClusterScores{"ps": 0.8},
				TS:             time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			})

			Convey("Then team, player and evaluation spring into existence", func() {
				So(err, ShouldBeNil)
				teams, players, evals := s.Counts(ctx)
				So(teams, ShouldEqual, 1)
				So(players, ShouldEqual, 1)
				So(evals, ShouldEqual, 1)

				snap, err := s.TeamSnapshot(ctx, "team-1")
				So(err, ShouldBeNil)
				So(snap.Roster, ShouldHaveLength, 1)
				So(snap.Roster[0].Name, ShouldEqual, "One")
				So(snap.History, ShouldHaveLength, 1)
				So(snap.History[0].Meta.Name, ShouldEqual, "Spring Check-in")
				So(snap.History[0].Meta.CreatedAt, ShouldResemble, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
				So(snap.History[0].Scores["p1"]["plank_hold_time"], ShouldEqual, 60.0)
				So(snap.History[0].Clusters["p1"]["ps"], ShouldEqual, 0.8)
			})
		})

		Convey("When submissions are missing required ids", func() {
			missing := []model.Checkin{
				{EvaluationID: "e", PlayerID: "p"},
				{TeamID: "t", PlayerID: "p"},
				{TeamID: "t", EvaluationID: "e"},
			}

			Convey("Then each is rejected with the invalid sentinel", func() {
				for _, c := range missing {
					So(s.RecordCheckin(ctx, c), ShouldWrap, repository.ErrInvalidCheckin)
				}
			})
		})
	})
}

func TestFieldwiseMerge(t *testing.T) {
	Convey("Given two submissions for the same player and cycle", t, func() {
		ctx := context.Background()
		s := repository.NewMemStore(ctx)

		base := model.Checkin{
			TeamID:       "team-1",
			EvaluationID: "eval-1",
			PlayerID:     "p1",
		}

		first := base
		first.Scores = model.ScoreDoc{"plank_hold_time": 60.0, "agility_best_time": 5.5}
		So(s.RecordCheckin(ctx, first), ShouldBeNil)

		Convey("When a later submission overlaps one field and adds another", func() {
			second := base
			second.Scores = model.ScoreDoc{"plank_hold_time": 75.0, "juggling_best": 30.0}
			So(s.RecordCheckin(ctx, second), ShouldBeNil)

			Convey("Then fields merge with the later value winning", func() {
				snap, err := s.TeamSnapshot(ctx, "team-1")
				So(err, ShouldBeNil)
				doc := snap.History[0].Scores["p1"]
				So(doc["plank_hold_time"], ShouldEqual, 75.0)
				So(doc["agility_best_time"], ShouldEqual, 5.5)
				So(doc["juggling_best"], ShouldEqual, 30.0)
			})

			Convey("Then it is still a single evaluation", func() {
				_, _, evals := s.Counts(ctx)
				So(evals, ShouldEqual, 1)
			})
		})

		Convey("When an evaluation name arrives late", func() {
			named := base
			named.EvaluationName = "Named Later"
			named.Scores = model.ScoreDoc{"juggling_best": 10.0}
			So(s.RecordCheckin(ctx, named), ShouldBeNil)

			Convey("Then the blank name is backfilled", func() {
				snap, err := s.TeamSnapshot(ctx, "team-1")
				So(err, ShouldBeNil)
				So(snap.History[0].Meta.Name, ShouldEqual, "Named Later")
			})
		})
	})
}

func TestInsertionOrder(t *testing.T) {
	Convey("Given submissions across players and cycles", t, func() {
		ctx := context.Background()
		s := repository.NewMemStore(ctx)

		for _, c := range []model.Checkin{
			{TeamID: "t", EvaluationID: "e1", PlayerID: "p2", Scores: model.ScoreDoc{"x": 1.0}},
			{TeamID: "t", EvaluationID: "e1", PlayerID: "p1", Scores: model.ScoreDoc{"x": 1.0}},
			{TeamID: "t", EvaluationID: "e2", PlayerID: "p1", Scores: model.ScoreDoc{"x": 2.0}},
		} {
			So(s.RecordCheckin(ctx, c), ShouldBeNil)
		}

		Convey("When the snapshot is taken", func() {
			snap, err := s.TeamSnapshot(ctx, "t")
			So(err, ShouldBeNil)

			Convey("Then roster and history keep first-seen order", func() {
				So(snap.Roster[0].ID, ShouldEqual, "p2")
				So(snap.Roster[1].ID, ShouldEqual, "p1")
				So(snap.History[0].Meta.ID, ShouldEqual, "e1")
				So(snap.History[1].Meta.ID, ShouldEqual, "e2")
			})
		})
	})
}

func TestSnapshotDetached(t *testing.T) {
	Convey("Given a snapshot of a recorded team", t, func() {
		ctx := context.Background()
		s := repository.NewMemStore(ctx)
		So(s.RecordCheckin(ctx, model.Checkin{
			TeamID:       "t",
			EvaluationID: "e1",
			PlayerID:     "p1",
			Scores:       model.ScoreDoc{"plank_hold_time": 60.0},
		}), ShouldBeNil)

		snap, err := s.TeamSnapshot(ctx, "t")
		So(err, ShouldBeNil)

		Convey("When the caller scribbles on the snapshot", func() {
			snap.History[0].Scores["p1"]["plank_hold_time"] = -1.0
			snap.Roster[0].Name = "scribbled"

			Convey("Then the store is unaffected", func() {
				again, err := s.TeamSnapshot(ctx, "t")
				So(err, ShouldBeNil)
				So(again.History[0].Scores["p1"]["plank_hold_time"], ShouldEqual, 60.0)
				So(again.Roster[0].Name, ShouldNotEqual, "scribbled")
			})
		})
	})
}

func TestUnknownTeam(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		s := repository.NewMemStore(ctx)

		Convey("When an unknown team is requested", func() {
			_, err := s.TeamSnapshot(ctx, "ghost")

			Convey("Then the not-found sentinel is returned", func() {
				So(err, ShouldWrap, repository.ErrTeamNotFound)
			})
		})
	})
}

func TestDefaultTimestamp(t *testing.T) {
	Convey("Given a store with a fixed clock", t, func() {
		ctx := context.Background()
		fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		s := repository.NewMemStore(ctx, repository.WithNow(func() time.Time { return fixed }))

		Convey("When a submission arrives without a timestamp", func() {
			So(s.RecordCheckin(ctx, model.Checkin{
				TeamID:       "t",
				EvaluationID: "e1",
				PlayerID:     "p1",
				Scores:       model.ScoreDoc{"x": 1.0},
			}), ShouldBeNil)

			Convey("Then the evaluation is stamped with the store clock", func() {
				snap, err := s.TeamSnapshot(ctx, "t")
				So(err, ShouldBeNil)
				So(snap.History[0].Meta.CreatedAt, ShouldResemble, fixed)
			})
		})
	})
}

func TestTeams(t *testing.T) {
	Convey("Given several teams", t, func() {
		ctx := context.Background()
		s := repository.NewMemStore(ctx)
		for _, id := range []string{"zebra", "alpha", "mid"} {
			So(s.RecordCheckin(ctx, model.Checkin{
				TeamID:       id,
				EvaluationID: "e1",
				PlayerID:     "p1",
				Scores:       model.ScoreDoc{"x": 1.0},
			}), ShouldBeNil)
		}

		Convey("When listing teams", func() {
			Convey("Then ids come back sorted", func() {
				So(s.Teams(ctx), ShouldResemble, []string{"alpha", "mid", "zebra"})
			})
		})
	})
}
