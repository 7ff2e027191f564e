package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/scoutbase/combine/internal/domain/catalog"
)

// fieldRange describes the plausible value band for one score field.
type fieldRange struct {
	field string
	min   float64
	max   float64
}

// Score field bands roughly matching what coaches record on the pitch.
var fieldRanges = []fieldRange{
	{"one_v_one_avg", 1, 10},
	{"agility_best_time", 4.2, 6.5},
	{"dorsiflexion_avg", 6, 18},
	{"double_leg_jump_reps", 10, 60},
	{"plank_hold_time", 20, 180},
	{"single_leg_hop_left", 60, 180},
	{"single_leg_hop_right", 60, 180},
	{"juggling_best", 2, 120},
	{"skill_move_avg", 1, 10},
	{"figure_eight_loops", 3, 15},
	{"passing_gate_hits", 2, 20},
	{"reaction_sprint_best", 1.1, 2.4},
	{"shot_power_avg", 40, 110},
	{"serve_distance_avg", 8, 35},
}

var clusterKeys = []string{
	catalog.ClusterPowerStrength,
	catalog.ClusterTechniqueControl,
	catalog.ClusterMobilityStability,
	catalog.ClusterDecisionCognition,
}

// submission mirrors the POST /checkins request body.
type submission struct {
	SubmissionID   string             `json:"submission_id"`
	TeamID         string             `json:"team_id"`
	EvaluationID   string             `json:"evaluation_id"`
	EvaluationName string             `json:"evaluation_name"`
	PlayerID       string             `json:"player_id"`
	PlayerName     string             `json:"player_name"`
	Scores         map[string]any     `json:"scores"`
	Clusters       map[string]float64 `json:"clusters"`
	TS             string             `json:"ts"`
}

// generateTeam builds all submissions for one synthetic team across the
// configured number of cycles. Each player keeps a stable baseline so
// cycle-over-cycle changes look like real progress, not noise.
func generateTeam(cfg *Config, rng *rand.Rand, teamIdx int) (string, []submission) {
	teamID := uuid.New().String()

	type player struct {
		id       string
		name     string
		baseline map[string]float64
	}

	players := make([]player, cfg.PlayerCount)
	for i := range players {
		baseline := make(map[string]float64, len(fieldRanges))
		for _, fr := range fieldRanges {
			baseline[fr.field] = fr.min + rng.Float64()*(fr.max-fr.min)
		}
		players[i] = player{
			id:       uuid.New().String(),
			name:     fmt.Sprintf("Player %d-%d", teamIdx+1, i+1),
			baseline: baseline,
		}
	}

	subs := make([]submission, 0, cfg.PlayerCount*cfg.Cycles)
	now := time.Now()
	for cycle := 0; cycle < cfg.Cycles; cycle++ {
		evalID := uuid.New().String()
		evalName := fmt.Sprintf("Check-in %d", cycle+1)
		// Older cycles get older timestamps so "latest" selection is exercised.
		ts := now.Add(-time.Duration(cfg.Cycles-cycle-1) * 30 * 24 * time.Hour)

		for _, p := range players {
			scores := make(map[string]any, len(fieldRanges))
			for _, fr := range fieldRanges {
				// Drift the baseline by up to 10% per cycle in either direction.
				drift := 1 + (rng.Float64()*0.2-0.1)*float64(cycle)
				v := p.baseline[fr.field] * drift
				scores[fr.field] = roundTo(v, 3)
			}
			clusters := make(map[string]float64, len(clusterKeys))
			for _, key := range clusterKeys {
				clusters[key] = roundTo(rng.Float64(), 3)
			}
			subs = append(subs, submission{
				SubmissionID:   uuid.New().String(),
				TeamID:         teamID,
				EvaluationID:   evalID,
				EvaluationName: evalName,
				PlayerID:       p.id,
				PlayerName:     p.name,
				Scores:         scores,
				Clusters:       clusters,
				TS:             ts.Format(time.RFC3339),
			})
		}
	}

	return teamID, subs
}

func roundTo(v float64, decimals int) float64 {
	pow := 1.0
	for i := 0; i < decimals; i++ {
		pow *= 10
	}
	return float64(int64(v*pow+0.5)) / pow
}
