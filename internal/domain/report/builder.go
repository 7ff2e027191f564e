package report

import (
	"math"
	"sort"

	"github.com/scoutbase/combine/internal/domain/catalog"
	"github.com/scoutbase/combine/internal/domain/model"
	"github.com/scoutbase/combine/internal/domain/rank"
)

// Default builder configuration constants.
const (
	defaultMoversLimit = 5
	defaultDetailLimit = 3
	// defaultMeaningfulThreshold filters out noise-level contributions when
	// selecting "meaningful" metric changes. Tunable, not load-bearing.
	defaultMeaningfulThreshold = 0.05
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithMoversLimit caps the most-improved and biggest-drop lists.
func WithMoversLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.moversLimit = n
		}
	}
}

// WithDetailLimit caps the per-player improved/declined metric detail.
func WithDetailLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.detailLimit = n
		}
	}
}

// WithMeaningfulThreshold sets the minimum |contribution| for a metric
// change to count as meaningful when its rank did not move.
func WithMeaningfulThreshold(t float64) Option {
	return func(b *Builder) {
		if t >= 0 {
			b.meaningfulThreshold = t
		}
	}
}

// Builder computes leaderboard reports for a team against a metric registry.
type Builder struct {
	registry            *catalog.Registry
	moversLimit         int
	detailLimit         int
	meaningfulThreshold float64
}

// New creates a Builder with the given registry and options.
func New(registry *catalog.Registry, opts ...Option) *Builder {
	b := &Builder{
		registry:            registry,
		moversLimit:         defaultMoversLimit,
		detailLimit:         defaultDetailLimit,
		meaningfulThreshold: defaultMeaningfulThreshold,
	}

	// Apply all options
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build computes the full report for a roster and its evaluation history.
// History order is the store's insertion order; the latest cycle is the one
// with the greatest CreatedAt, zero timestamps sorting last and equal
// timestamps resolved by insertion order ("latest wins").
func (b *Builder) Build(roster []model.Player, history []model.EvaluationSnapshot) Report {
	out := Report{
		ClusterRankings: []ClusterRanking{},
		TestRankings:    []TestRanking{},
		Movers:          Movers{MostImproved: []Mover{}, BiggestDrop: []Mover{}},
	}

	latest, previous := selectCycles(history)
	if latest == nil {
		return out
	}

	out.LatestEvaluation = evaluationOf(latest)
	out.ClusterRankings = b.clusterRankings(roster, latest)
	out.TestRankings = b.testRankings(roster, latest)

	if previous != nil {
		out.PreviousEvaluation = evaluationOf(previous)
		out.Movers = b.movers(roster, latest, previous)
	}

	return out
}

// selectCycles returns the latest and previous evaluation snapshots, or nils
// when the history is too short.
func selectCycles(history []model.EvaluationSnapshot) (latest, previous *model.EvaluationSnapshot) {
	if len(history) == 0 {
		return nil, nil
	}

	ordered := make([]*model.EvaluationSnapshot, len(history))
	for i := range history {
		ordered[i] = &history[i]
	}
	// Newest first, zero timestamps last. The sort is stable, so snapshots
	// with equal timestamps keep insertion order.
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, tj := ordered[i].Meta.CreatedAt, ordered[j].Meta.CreatedAt
		switch {
		case ti.IsZero():
			return false
		case tj.IsZero():
			return true
		default:
			return ti.After(tj)
		}
	})

	latest = ordered[0]
	if len(ordered) > 1 {
		previous = ordered[1]
	}
	return latest, previous
}

func evaluationOf(s *model.EvaluationSnapshot) *Evaluation {
	return &Evaluation{
		ID:        s.Meta.ID,
		Name:      s.Meta.Name,
		CreatedAt: s.Meta.CreatedAt,
	}
}

// clusterRankings ranks every trait cluster for the latest cycle. Cluster
// scores are normalized 0..1 and always higher-is-better.
func (b *Builder) clusterRankings(roster []model.Player, latest *model.EvaluationSnapshot) []ClusterRanking {
	clusters := b.registry.Clusters()
	out := make([]ClusterRanking, 0, len(clusters))

	for _, c := range clusters {
		candidates := make([]rank.Candidate, 0, len(roster))
		for _, p := range roster {
			scores, ok := latest.Clusters[p.ID]
			if !ok {
				continue
			}
			v, ok := scores[c.Key]
			if !ok {
				continue
			}
			candidates = append(candidates, rank.Candidate{ID: p.ID, Label: p.Name, Value: v})
		}

		ranking := rank.Rank(candidates, true)
		entries := make([]ClusterEntry, len(ranking.Entries))
		for i, e := range ranking.Entries {
			entries[i] = ClusterEntry{
				Rank:       e.Rank,
				PlayerID:   e.ID,
				PlayerName: e.Label,
				Percent:    percentOf(e.Value),
				Value:      e.Value,
			}
		}

		cr := ClusterRanking{ID: c.Key, Name: c.Name, Rankings: entries}
		if len(entries) > 0 {
			cr.Top = &ClusterTop{
				PlayerID:   entries[0].PlayerID,
				PlayerName: entries[0].PlayerName,
				Percent:    entries[0].Percent,
			}
		}
		out = append(out, cr)
	}

	return out
}

// testRankings ranks every catalog metric for the latest cycle, honoring the
// metric's declared direction. Players without an extractable value are
// excluded from that metric only.
func (b *Builder) testRankings(roster []model.Player, latest *model.EvaluationSnapshot) []TestRanking {
	metrics := b.registry.Metrics()
	out := make([]TestRanking, 0, len(metrics))

	for _, m := range metrics {
		ranking := metricRanking(m, roster, latest)
		entries := make([]TestEntry, len(ranking.Entries))
		for i, e := range ranking.Entries {
			entries[i] = TestEntry{
				Rank:       e.Rank,
				PlayerID:   e.ID,
				PlayerName: e.Label,
				Value:      e.Value,
				ValueLabel: m.Format.Render(e.Value),
			}
		}

		tr := TestRanking{
			ID:             m.ID,
			Name:           m.DisplayName,
			HigherIsBetter: m.HigherIsBetter,
			Rankings:       entries,
		}
		if len(entries) > 0 {
			tr.Top = &TestTop{
				PlayerID:   entries[0].PlayerID,
				PlayerName: entries[0].PlayerName,
				Value:      entries[0].Value,
				ValueLabel: entries[0].ValueLabel,
			}
		}
		out = append(out, tr)
	}

	return out
}

// metricRanking builds the full-team ranking for one metric in one cycle.
func metricRanking(m catalog.Metric, roster []model.Player, cycle *model.EvaluationSnapshot) rank.Ranking {
	candidates := make([]rank.Candidate, 0, len(roster))
	for _, p := range roster {
		doc, ok := cycle.Scores[p.ID]
		if !ok {
			continue
		}
		v, ok := catalog.Extract(m, doc)
		if !ok {
			continue
		}
		candidates = append(candidates, rank.Candidate{ID: p.ID, Label: p.Name, Value: v})
	}
	return rank.Rank(candidates, m.HigherIsBetter)
}

func percentOf(v float64) int {
	return int(math.Round(v * 100))
}
