package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/scoutbase/combine/internal/seed"
	"github.com/scoutbase/combine/pkg/logger"
)

// Default configuration constants.
const (
	defaultTeams       = 2
	defaultPlayers     = 12
	defaultCycles      = 2
	defaultTimeout     = 30 * time.Second
	defaultRunDeadline = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		teams   = flag.Int("teams", defaultTeams, "Number of synthetic teams to create")
		players = flag.Int("players", defaultPlayers, "Roster size per team")
		cycles  = flag.Int("cycles", defaultCycles, "Evaluation cycles per team")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verify  = flag.Bool("verify", true, "Verify leaderboards after seeding")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunDeadline)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:     *baseURL,
		TeamCount:   *teams,
		PlayerCount: *players,
		Cycles:      *cycles,
		Timeout:     *timeout,
		Verify:      *verify,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seed run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
