package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// client is a thin HTTP client around the service API.
type client struct {
	baseURL string
	http    *http.Client
}

// leaderboardResponse mirrors the subset of the report the verifier needs.
type leaderboardResponse struct {
	LatestEvaluation *struct {
		ID string `json:"id"`
	} `json:"latestEvaluation"`
	TestRankings []struct {
		ID             string `json:"id"`
		HigherIsBetter bool   `json:"higherIsBetter"`
		Rankings       []struct {
			Rank  int     `json:"rank"`
			Value float64 `json:"value"`
		} `json:"rankings"`
	} `json:"testRankings"`
	Movers struct {
		MostImproved []struct {
			Score float64 `json:"score"`
		} `json:"mostImproved"`
		BiggestDrop []struct {
			Score float64 `json:"score"`
		} `json:"biggestDrop"`
	} `json:"movers"`
}

func (c *client) health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// submit posts one check-in. Returns duplicate=true for idempotent replays.
func (c *client) submit(ctx context.Context, s submission) (duplicate bool, err error) {
	body, err := json.Marshal(s)
	if err != nil {
		return false, fmt.Errorf("marshal submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkins", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("submit check-in: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return false, nil
	case http.StatusOK:
		return true, nil
	default:
		msg, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("submit returned %d: %s", resp.StatusCode, msg)
	}
}

func (c *client) leaderboard(ctx context.Context, teamID string) (*leaderboardResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/leaderboard/"+teamID, nil)
	if err != nil {
		return nil, fmt.Errorf("build leaderboard request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard returned %d", resp.StatusCode)
	}

	var out leaderboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return &out, nil
}
