// Package model contains domain models passed between layers.
package model

import "time"

// Player identifies one athlete on a team roster.
type Player struct {
	ID   string
	Name string
}

// ScoreDoc is the raw score document recorded for one player in one
// evaluation cycle. It is an open-ended mapping: values may be numbers or
// numeric-looking strings, and fields not declared in the metric catalog are
// carried but ignored by ranking.
type ScoreDoc map[string]any

// ClusterScores maps a trait cluster key (ps, tc, ms, dc) to a normalized
// 0..1 score. Cluster scores are produced upstream and consumed as-is.
type ClusterScores map[string]float64

// EvaluationMeta identifies one evaluation cycle for a team.
type EvaluationMeta struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// EvaluationSnapshot holds everything recorded for a team in one evaluation
// cycle: the cycle identity plus per-player score and cluster documents.
type EvaluationSnapshot struct {
	Meta     EvaluationMeta
	Scores   map[string]ScoreDoc      // playerID -> raw score document
	Clusters map[string]ClusterScores // playerID -> cluster scores
}

// Checkin represents one check-in submission flowing through the ingestion
// pipeline. A submission carries a partial score document for a single
// player in a single evaluation cycle; workers fold it into the store.
type Checkin struct {
	SubmissionID   string // unique id for idempotency
	TeamID         string
	EvaluationID   string
	EvaluationName string
	PlayerID       string
	PlayerName     string
	Scores         map[string]any     // raw score fields, merged field-wise
	Clusters       map[string]float64 // optional cluster scores, merged key-wise
	TS             time.Time          // submission timestamp
}
