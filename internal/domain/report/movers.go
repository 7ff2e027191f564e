package report

import (
	"math"
	"sort"

	"github.com/scoutbase/combine/internal/domain/catalog"
	"github.com/scoutbase/combine/internal/domain/model"
	"github.com/scoutbase/combine/internal/domain/rank"
)

// movers compares the latest cycle against the previous one and produces the
// most-improved and biggest-drop leaderboards. Only players with a score
// document in both cycles are compared; everyone else keeps their place in
// the regular rankings but is skipped here.
func (b *Builder) movers(roster []model.Player, latest, previous *model.EvaluationSnapshot) Movers {
	metrics := b.registry.Metrics()

	// Two independently built full-team rankings per metric, one per cycle.
	latestRankings := make(map[string]rank.Ranking, len(metrics))
	previousRankings := make(map[string]rank.Ranking, len(metrics))
	for _, m := range metrics {
		latestRankings[m.ID] = metricRanking(m, roster, latest)
		previousRankings[m.ID] = metricRanking(m, roster, previous)
	}

	movers := make([]Mover, 0, len(roster))
	for _, p := range roster {
		oldDoc, okOld := previous.Scores[p.ID]
		newDoc, okNew := latest.Scores[p.ID]
		if !okOld || !okNew {
			continue
		}

		changes := make([]MetricChange, 0, len(metrics))
		for _, m := range metrics {
			oldV, ok := catalog.Extract(m, oldDoc)
			if !ok {
				continue
			}
			newV, ok := catalog.Extract(m, newDoc)
			if !ok {
				continue
			}
			if oldV == 0 {
				// Undefined percent change; skip the metric for this player.
				continue
			}

			pct := (newV - oldV) / math.Abs(oldV)
			if !m.HigherIsBetter {
				pct = (oldV - newV) / math.Abs(oldV)
			}
			pct = clamp(pct)

			oldRank := previousRankings[m.ID].RankByID[p.ID]
			newRank := latestRankings[m.ID].RankByID[p.ID]
			rankDelta := oldRank - newRank

			// Rank movement is more robust than raw value deltas, so it is
			// the preferred contribution signal; percent change is the
			// fallback for singleton rankings.
			contribution := pct
			if n := rankedCount(latestRankings[m.ID], previousRankings[m.ID]); n > 1 {
				contribution = clamp(float64(rankDelta) / float64(n-1))
			}

			deltaV := newV - oldV
			if !m.HigherIsBetter {
				deltaV = oldV - newV
			}

			changes = append(changes, MetricChange{
				MetricID:      m.ID,
				MetricName:    m.DisplayName,
				PercentChange: pct,
				OldRank:       oldRank,
				NewRank:       newRank,
				RankDelta:     rankDelta,
				OldValue:      oldV,
				NewValue:      newV,
				DeltaValue:    deltaV,
				OldLabel:      m.Format.Render(oldV),
				NewLabel:      m.Format.Render(newV),
				DeltaLabel:    m.Format.RenderDelta(deltaV),
				Contribution:  contribution,
			})
		}

		if len(changes) == 0 {
			continue
		}

		meaningful := b.meaningfulChanges(changes)
		movers = append(movers, Mover{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Score:      meanContribution(meaningful),
			Improved:   b.topChanges(changes, true),
			Declined:   b.topChanges(changes, false),
		})
	}

	return b.partition(movers)
}

// meaningfulChanges keeps changes where the rank moved or the contribution
// clears the threshold, falling back to all changes when none qualify so a
// player with real change data never ends up with an empty composite.
func (b *Builder) meaningfulChanges(changes []MetricChange) []MetricChange {
	out := make([]MetricChange, 0, len(changes))
	for _, c := range changes {
		if c.RankDelta != 0 || math.Abs(c.Contribution) >= b.meaningfulThreshold {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return changes
	}
	return out
}

// topChanges returns up to detailLimit changes on one side of zero, ordered
// by contribution magnitude descending.
func (b *Builder) topChanges(changes []MetricChange, improved bool) []MetricChange {
	side := make([]MetricChange, 0, len(changes))
	for _, c := range changes {
		if improved && c.Contribution > 0 {
			side = append(side, c)
		}
		if !improved && c.Contribution < 0 {
			side = append(side, c)
		}
	}
	sort.SliceStable(side, func(i, j int) bool {
		return math.Abs(side[i].Contribution) > math.Abs(side[j].Contribution)
	})
	if len(side) > b.detailLimit {
		side = side[:b.detailLimit]
	}
	return side
}

// partition splits movers into the most-improved (non-negative score,
// descending) and biggest-drop (strictly negative score, ascending) lists.
// The sign of the composite decides the list, so no player ever appears in
// both: non-negative composites never reach the drop list even if individual
// metrics declined, and negative composites never reach the improved list.
func (b *Builder) partition(movers []Mover) Movers {
	improved := make([]Mover, 0, len(movers))
	for _, m := range movers {
		if m.Score >= 0 {
			improved = append(improved, m)
		}
	}
	sort.SliceStable(improved, func(i, j int) bool {
		return improved[i].Score > improved[j].Score
	})
	if len(improved) > b.moversLimit {
		improved = improved[:b.moversLimit]
	}

	dropped := make([]Mover, 0, len(movers))
	for _, m := range movers {
		if m.Score < 0 {
			dropped = append(dropped, m)
		}
	}
	sort.SliceStable(dropped, func(i, j int) bool {
		return dropped[i].Score < dropped[j].Score
	})
	if len(dropped) > b.moversLimit {
		dropped = dropped[:b.moversLimit]
	}

	return Movers{MostImproved: improved, BiggestDrop: dropped}
}

// rankedCount returns the cohort size used to normalize rank movement.
// Rankings for the two cycles may differ in size when players sat out a
// metric; the larger one bounds how far a rank can move.
func rankedCount(latest, previous rank.Ranking) int {
	n := len(latest.Entries)
	if len(previous.Entries) > n {
		n = len(previous.Entries)
	}
	return n
}

func meanContribution(changes []MetricChange) float64 {
	if len(changes) == 0 {
		return 0
	}
	var sum float64
	for _, c := range changes {
		sum += c.Contribution
	}
	return sum / float64(len(changes))
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
