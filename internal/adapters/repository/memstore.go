package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/scoutbase/combine/internal/domain/model"
	"github.com/scoutbase/combine/pkg/metrics"
)

// team is the mutable per-team state guarded by the store mutex.
type team struct {
	rosterOrder []string
	roster      map[string]model.Player
	evalOrder   []string
	evals       map[string]*evaluation
}

type evaluation struct {
	meta     model.EvaluationMeta
	scores   map[string]model.ScoreDoc
	clusters map[string]model.ClusterScores
}

// MemStore implements Store with an in-memory map of teams. A team's roster
// and metric count are small (tens, not thousands), so a single RWMutex
// around plain maps is enough; reads copy out so computations never hold the
// lock.
type MemStore struct {
	mu    sync.RWMutex
	teams map[string]*team

	playerCount int
	evalCount   int

	now func() time.Time
}

// NewMemStore creates a new in-memory store with configuration options.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		teams: make(map[string]*team),
		now:   time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RecordCheckin folds one submission into its team/evaluation snapshot.
func (s *MemStore) RecordCheckin(_ context.Context, c model.Checkin) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := validateCheckin(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[c.TeamID]
	if !ok {
		t = &team{
			roster: make(map[string]model.Player),
			evals:  make(map[string]*evaluation),
		}
		s.teams[c.TeamID] = t
	}

	if _, ok := t.roster[c.PlayerID]; !ok {
		t.rosterOrder = append(t.rosterOrder, c.PlayerID)
		s.playerCount++
	}
	p := t.roster[c.PlayerID]
	p.ID = c.PlayerID
	if c.PlayerName != "" {
		p.Name = c.PlayerName
	}
	t.roster[c.PlayerID] = p

	ev, ok := t.evals[c.EvaluationID]
	if !ok {
		createdAt := c.TS
		if createdAt.IsZero() {
			createdAt = s.now()
		}
		ev = &evaluation{
			meta: model.EvaluationMeta{
				ID:        c.EvaluationID,
				Name:      c.EvaluationName,
				CreatedAt: createdAt,
			},
			scores:   make(map[string]model.ScoreDoc),
			clusters: make(map[string]model.ClusterScores),
		}
		t.evals[c.EvaluationID] = ev
		t.evalOrder = append(t.evalOrder, c.EvaluationID)
		s.evalCount++
	}
	if ev.meta.Name == "" && c.EvaluationName != "" {
		ev.meta.Name = c.EvaluationName
	}

	if len(c.Scores) > 0 {
		doc, ok := ev.scores[c.PlayerID]
		if !ok {
			doc = make(model.ScoreDoc, len(c.Scores))
			ev.scores[c.PlayerID] = doc
		}
		for k, v := range c.Scores {
			doc[k] = v
		}
	}

	if len(c.Clusters) > 0 {
		cs, ok := ev.clusters[c.PlayerID]
		if !ok {
			cs = make(model.ClusterScores, len(c.Clusters))
			ev.clusters[c.PlayerID] = cs
		}
		for k, v := range c.Clusters {
			cs[k] = v
		}
	}

	metrics.UpdateTotalTeams(len(s.teams))
	metrics.UpdateTotalPlayers(s.playerCount)
	metrics.UpdateTotalEvaluations(s.evalCount)

	return nil
}

// TeamSnapshot returns a detached copy of the team's roster and history.
func (s *MemStore) TeamSnapshot(_ context.Context, teamID string) (TeamSnapshot, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[teamID]
	if !ok {
		return TeamSnapshot{}, fmt.Errorf("team %q: %w", teamID, ErrTeamNotFound)
	}

	out := TeamSnapshot{
		TeamID:  teamID,
		Roster:  make([]model.Player, 0, len(t.rosterOrder)),
		History: make([]model.EvaluationSnapshot, 0, len(t.evalOrder)),
	}
	for _, id := range t.rosterOrder {
		out.Roster = append(out.Roster, t.roster[id])
	}
	for _, id := range t.evalOrder {
		ev := t.evals[id]
		snap := model.EvaluationSnapshot{
			Meta:     ev.meta,
			Scores:   make(map[string]model.ScoreDoc, len(ev.scores)),
			Clusters: make(map[string]model.ClusterScores, len(ev.clusters)),
		}
		for pid, doc := range ev.scores {
			cp := make(model.ScoreDoc, len(doc))
			for k, v := range doc {
				cp[k] = v
			}
			snap.Scores[pid] = cp
		}
		for pid, cs := range ev.clusters {
			cp := make(model.ClusterScores, len(cs))
			for k, v := range cs {
				cp[k] = v
			}
			snap.Clusters[pid] = cp
		}
		out.History = append(out.History, snap)
	}

	return out, nil
}

// Teams returns the ids of all tracked teams, sorted for determinism.
func (s *MemStore) Teams(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.teams))
	for id := range s.teams {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Counts returns totals for monitoring.
func (s *MemStore) Counts(_ context.Context) (teams, players, evaluations int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams), s.playerCount, s.evalCount
}

func validateCheckin(c model.Checkin) error {
	switch {
	case strings.TrimSpace(c.TeamID) == "":
		return fmt.Errorf("missing team id: %w", ErrInvalidCheckin)
	case strings.TrimSpace(c.EvaluationID) == "":
		return fmt.Errorf("missing evaluation id: %w", ErrInvalidCheckin)
	case strings.TrimSpace(c.PlayerID) == "":
		return fmt.Errorf("missing player id: %w", ErrInvalidCheckin)
	}
	return nil
}
