// Package seed generates synthetic check-in data against a running service
// and sanity-checks the leaderboard it produces.
package seed

import "time"

// Config controls a seed run.
type Config struct {
	// BaseURL of the service, e.g. http://localhost:9080.
	BaseURL string

	// TeamCount is the number of synthetic teams to create.
	TeamCount int

	// PlayerCount is the roster size per team.
	PlayerCount int

	// Cycles is the number of evaluation cycles per team (2 exercises the
	// movers computation).
	Cycles int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Verify fetches each team's leaderboard after seeding and checks it.
	Verify bool
}

// Stats aggregates the outcome of a seed run.
type Stats struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Submitted  int
	Duplicates int
	Failed     int
	Verified   int
}
