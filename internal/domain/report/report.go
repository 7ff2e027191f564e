// Package report computes team leaderboard reports from evaluation history.
//
// The computation is pure and synchronous: given a roster and the team's
// evaluation snapshots it produces a Report without touching shared state,
// so concurrent builds for different teams need no coordination.
package report

import "time"

// Evaluation identifies one evaluation cycle in the report output.
type Evaluation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClusterTop is the best performer for one trait cluster.
type ClusterTop struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Percent    int    `json:"percent"`
}

// ClusterEntry is one row of a cluster ranking.
type ClusterEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Percent    int     `json:"percent"`
	Value      float64 `json:"value"`
}

// ClusterRanking is the full ranking for one trait cluster.
type ClusterRanking struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Top      *ClusterTop    `json:"top"`
	Rankings []ClusterEntry `json:"rankings"`
}

// TestTop is the best performer for one catalog metric.
type TestTop struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Value      float64 `json:"value"`
	ValueLabel string  `json:"valueLabel"`
}

// TestEntry is one row of a catalog metric ranking.
type TestEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Value      float64 `json:"value"`
	ValueLabel string  `json:"valueLabel"`
}

// TestRanking is the full ranking for one catalog metric.
type TestRanking struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	HigherIsBetter bool        `json:"higherIsBetter"`
	Top            *TestTop    `json:"top"`
	Rankings       []TestEntry `json:"rankings"`
}

// MetricChange records one player's movement on one metric between the
// previous and latest cycles. Contribution is always in [-1, 1] and positive
// always means improvement, regardless of the metric's direction; DeltaValue
// follows the same positive-is-better convention.
type MetricChange struct {
	MetricID      string  `json:"metricId"`
	MetricName    string  `json:"metricName"`
	PercentChange float64 `json:"percentChange"` // clamped to [-1, 1]
	OldRank       int     `json:"oldRank"`
	NewRank       int     `json:"newRank"`
	RankDelta     int     `json:"rankDelta"` // positive = moved up
	OldValue      float64 `json:"oldValue"`
	NewValue      float64 `json:"newValue"`
	DeltaValue    float64 `json:"deltaValue"`
	OldLabel      string  `json:"oldLabel"`
	NewLabel      string  `json:"newLabel"`
	DeltaLabel    string  `json:"deltaLabel"`
	Contribution  float64 `json:"contribution"`
}

// Mover is one player's composite movement summary across metrics.
type Mover struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName"`
	Score      float64        `json:"score"`
	Improved   []MetricChange `json:"improved"`
	Declined   []MetricChange `json:"declined"`
}

// Movers holds the most-improved and biggest-drop leaderboards.
type Movers struct {
	MostImproved []Mover `json:"mostImproved"`
	BiggestDrop  []Mover `json:"biggestDrop"`
}

// Report is the full leaderboard report for a team. All collections are
// present (possibly empty) even when no evaluation exists yet; an empty team
// is a valid state, not a failure.
type Report struct {
	LatestEvaluation   *Evaluation      `json:"latestEvaluation"`
	PreviousEvaluation *Evaluation      `json:"previousEvaluation"`
	ClusterRankings    []ClusterRanking `json:"clusterRankings"`
	TestRankings       []TestRanking    `json:"testRankings"`
	Movers             Movers           `json:"movers"`
}
