// Package repository defines the evaluation store interface and errors.
package repository

import (
	"context"

	"github.com/scoutbase/combine/internal/domain/model"
)

// TeamSnapshot is a copy-out view of one team's state: the roster in
// first-seen order plus the evaluation history in insertion order. The copy
// is detached from the store, so report computation can read it without
// holding any lock.
type TeamSnapshot struct {
	TeamID  string
	Roster  []model.Player
	History []model.EvaluationSnapshot
}

// Store provides read/write access to team rosters and evaluation snapshots.
type Store interface {
	// RecordCheckin folds one submission into its team/evaluation snapshot.
	// Players and evaluations are created on first sight; score fields merge
	// field-wise with later submissions winning.
	RecordCheckin(ctx context.Context, c model.Checkin) error

	// TeamSnapshot returns a detached copy of the team's roster and history.
	// Returns ErrTeamNotFound if the team is unknown.
	TeamSnapshot(ctx context.Context, teamID string) (TeamSnapshot, error)

	// Teams returns the ids of all tracked teams.
	Teams(ctx context.Context) []string

	// Counts returns totals for monitoring: teams, players, evaluations.
	Counts(ctx context.Context) (teams, players, evaluations int)
}
