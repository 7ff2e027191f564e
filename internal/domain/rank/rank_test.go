package rank_test

import (
	"testing"

	rank "github.com/scoutbase/combine/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank_CompetitionRanking(t *testing.T) {
	Convey("Given three candidates with a tie at the top", t, func() {
		candidates := []rank.Candidate{
			{ID: "a", Label: "A", Value: 10},
			{ID: "b", Label: "B", Value: 10},
			{ID: "c", Label: "C", Value: 7},
		}

		Convey("When ranking higher-is-better", func() {
			r := rank.Rank(candidates, true)

			Convey("Then tied values share a rank and the next rank skips", func() {
				So(r.Entries, ShouldHaveLength, 3)
				So(r.Entries[0].Rank, ShouldEqual, 1)
				So(r.Entries[1].Rank, ShouldEqual, 1)
				So(r.Entries[2].Rank, ShouldEqual, 3)
			})

			Convey("And the reverse lookup matches the entries", func() {
				So(r.RankByID["a"], ShouldEqual, 1)
				So(r.RankByID["b"], ShouldEqual, 1)
				So(r.RankByID["c"], ShouldEqual, 3)
			})

			Convey("And ties keep their input order", func() {
				So(r.Entries[0].ID, ShouldEqual, "a")
				So(r.Entries[1].ID, ShouldEqual, "b")
			})
		})
	})
}

func TestRank_Direction(t *testing.T) {
	Convey("Given two candidates with different values", t, func() {
		candidates := []rank.Candidate{
			{ID: "a", Label: "A", Value: 5.2},
			{ID: "b", Label: "B", Value: 4.9},
		}

		Convey("When ranking lower-is-better (a sprint time)", func() {
			r := rank.Rank(candidates, false)

			Convey("Then the smaller value ranks first", func() {
				So(r.Entries[0].ID, ShouldEqual, "b")
				So(r.Entries[0].Rank, ShouldEqual, 1)
				So(r.Entries[1].ID, ShouldEqual, "a")
				So(r.Entries[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When ranking higher-is-better with the same numbers", func() {
			r := rank.Rank(candidates, true)

			Convey("Then the larger value ranks first", func() {
				So(r.Entries[0].ID, ShouldEqual, "a")
				So(r.Entries[0].Rank, ShouldEqual, 1)
			})
		})
	})
}

func TestRank_TieBlocks(t *testing.T) {
	Convey("Given a tie block in the middle of the field", t, func() {
		candidates := []rank.Candidate{
			{ID: "a", Value: 9},
			{ID: "b", Value: 7},
			{ID: "c", Value: 7},
			{ID: "d", Value: 7},
			{ID: "e", Value: 3},
		}

		Convey("When ranking higher-is-better", func() {
			r := rank.Rank(candidates, true)

			Convey("Then the rank after the block jumps by the block size", func() {
				ranks := make([]int, len(r.Entries))
				for i, e := range r.Entries {
					ranks[i] = e.Rank
				}
				So(ranks, ShouldResemble, []int{1, 2, 2, 2, 5})
			})
		})
	})
}

func TestRank_Degenerate(t *testing.T) {
	Convey("Given no candidates", t, func() {
		r := rank.Rank(nil, true)

		Convey("Then the ranking is empty but usable", func() {
			So(r.Entries, ShouldBeEmpty)
			So(r.RankByID, ShouldBeEmpty)
		})
	})

	Convey("Given a single candidate", t, func() {
		r := rank.Rank([]rank.Candidate{{ID: "solo", Value: 1}}, false)

		Convey("Then it ranks first", func() {
			So(r.Entries, ShouldHaveLength, 1)
			So(r.Entries[0].Rank, ShouldEqual, 1)
		})
	})
}

func TestRank_InputNotMutated(t *testing.T) {
	Convey("Given an unsorted candidate slice", t, func() {
		candidates := []rank.Candidate{
			{ID: "a", Value: 1},
			{ID: "b", Value: 9},
		}

		Convey("When ranking", func() {
			_ = rank.Rank(candidates, true)

			Convey("Then the input order is untouched", func() {
				So(candidates[0].ID, ShouldEqual, "a")
				So(candidates[1].ID, ShouldEqual, "b")
			})
		})
	})
}
