package seed

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/scoutbase/combine/pkg/logger"
)

// processingGrace is how long the runner waits for workers to drain the
// queue before verifying results.
const processingGrace = 2 * time.Second

// Run seeds the service and optionally verifies the resulting leaderboards.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seed")

	log.Info(ctx, "starting check-in seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("teams", cfg.TeamCount),
		logger.Int("players", cfg.PlayerCount),
		logger.Int("cycles", cfg.Cycles),
	)

	c := &client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}

	if err := c.health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // synthetic data only

	teamIDs := make([]string, 0, cfg.TeamCount)
	for t := 0; t < cfg.TeamCount; t++ {
		teamID, subs := generateTeam(cfg, rng, t)
		teamIDs = append(teamIDs, teamID)

		for _, s := range subs {
			duplicate, err := c.submit(ctx, s)
			switch {
			case err != nil:
				stats.Failed++
				log.Warn(ctx, "submission failed", logger.Error(err))
			case duplicate:
				stats.Duplicates++
			default:
				stats.Submitted++
			}
		}
	}

	if cfg.Verify {
		log.Info(ctx, "waiting for submissions to be processed")
		time.Sleep(processingGrace)

		for _, teamID := range teamIDs {
			if err := verifyTeam(ctx, c, teamID); err != nil {
				return fmt.Errorf("verification failed for team %s: %w", teamID, err)
			}
			stats.Verified++
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "seed run complete",
		logger.Int("submitted", stats.Submitted),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.String("duration", stats.Duration.String()),
	)

	if stats.Failed > 0 {
		return fmt.Errorf("%d submissions failed", stats.Failed)
	}
	return nil
}

// verifyTeam checks structural invariants of a team's leaderboard: ranks are
// valid competition ranks and values are ordered per each metric's direction.
func verifyTeam(ctx context.Context, c *client, teamID string) error {
	lb, err := c.leaderboard(ctx, teamID)
	if err != nil {
		return err
	}
	if lb.LatestEvaluation == nil {
		return fmt.Errorf("no latest evaluation after seeding")
	}

	for _, tr := range lb.TestRankings {
		for i, e := range tr.Rankings {
			if i == 0 {
				if e.Rank != 1 {
					return fmt.Errorf("metric %s: first rank is %d, want 1", tr.ID, e.Rank)
				}
				continue
			}
			prev := tr.Rankings[i-1]
			ordered := e.Value > prev.Value
			if tr.HigherIsBetter {
				ordered = e.Value < prev.Value
			}
			switch {
			case e.Value == prev.Value && e.Rank != prev.Rank:
				return fmt.Errorf("metric %s: equal values with ranks %d and %d", tr.ID, prev.Rank, e.Rank)
			case e.Value != prev.Value && e.Rank != i+1:
				return fmt.Errorf("metric %s: rank %d at position %d, want %d", tr.ID, e.Rank, i, i+1)
			case e.Value != prev.Value && !ordered:
				return fmt.Errorf("metric %s: ordering violated at position %d", tr.ID, i)
			}
		}
	}

	for _, m := range lb.Movers.BiggestDrop {
		if m.Score >= 0 {
			return fmt.Errorf("biggest drop contains non-negative score %f", m.Score)
		}
	}

	logger.Get().Named("seed").Debug(ctx, "team verified", logger.String("teamID", teamID))
	return nil
}
