// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"runtime"
	"sync"
	"time"

	checkinqueue "github.com/scoutbase/combine/internal/adapters/mq/queue"
	workerpool "github.com/scoutbase/combine/internal/adapters/mq/worker"
	repository "github.com/scoutbase/combine/internal/adapters/repository"
	"github.com/scoutbase/combine/internal/domain/catalog"
	"github.com/scoutbase/combine/internal/domain/dedupe"
	"github.com/scoutbase/combine/internal/domain/model"
	"github.com/scoutbase/combine/internal/domain/report"
	"github.com/scoutbase/combine/pkg/logger"
	"github.com/scoutbase/combine/pkg/metrics"
)

// Service wires the ingestion pipeline and the report core behind the API
// dependency interfaces.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	deduper  dedupe.Deduper
	queue    checkinqueue.Queue
	workers  *workerpool.Pool
	registry *catalog.Registry
	builder  *report.Builder

	// Configuration
	workerCount         int
	queueSize           int
	dedupeSize          int
	moversLimit         int
	detailLimit         int
	meaningfulThreshold float64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithRegistry sets the metric registry used for report computation.
func WithRegistry(r *catalog.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithMoversLimit caps the most-improved and biggest-drop lists.
func WithMoversLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.moversLimit = n
		}
	}
}

// WithDetailLimit caps the per-player improved/declined metric detail.
func WithDetailLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.detailLimit = n
		}
	}
}

// WithMeaningfulThreshold sets the minimum |contribution| for a metric
// change to count as meaningful.
func WithMeaningfulThreshold(t float64) Option {
	return func(s *Service) {
		if t >= 0 {
			s.meaningfulThreshold = t
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:         runtime.NumCPU() * 2,
		queueSize:           100000,
		dedupeSize:          50000,
		moversLimit:         5,
		detailLimit:         3,
		meaningfulThreshold: 0.05,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting check-in service...")

	s.store = repository.NewMemStore(ctx)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = checkinqueue.NewInMemoryQueue(
		checkinqueue.WithCapacity(s.queueSize),
	)
	if s.registry == nil {
		s.registry = catalog.Default()
	}
	s.builder = report.New(s.registry,
		report.WithMoversLimit(s.moversLimit),
		report.WithDetailLimit(s.detailLimit),
		report.WithMeaningfulThreshold(s.meaningfulThreshold),
	)

	s.workers = workerpool.NewPool(s.workerCount, s.queue, s.store)
	s.workers.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "check-in service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping check-in service...")

	if s.workers != nil {
		// Shutdown closes the queue first so workers drain what is left.
		_ = s.workers.Shutdown(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "check-in service stopped")
}

// SeenAndRecord atomically checks if a submission id was seen and records it
// if not. Returns true if the submission was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordCheckinDuplicate()
	}
	return seen
}

// Unrecord removes a submission ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a check-in for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, c model.Checkin) bool {
	s.logger.Debug(ctx, "enqueueing check-in",
		logger.String("submissionID", c.SubmissionID),
		logger.String("teamID", c.TeamID),
		logger.String("playerID", c.PlayerID),
	)
	return s.queue.Enqueue(ctx, c)
}

// Leaderboard computes the full report for a team.
func (s *Service) Leaderboard(ctx context.Context, teamID string) (report.Report, error) {
	snap, err := s.store.TeamSnapshot(ctx, teamID)
	if err != nil {
		metrics.RecordReportError()
		return report.Report{}, err
	}

	start := time.Now()
	rep := s.builder.Build(snap.Roster, snap.History)
	metrics.RecordReportBuild()
	metrics.RecordReportBuildLatency(float64(time.Since(start).Milliseconds()))

	return rep, nil
}

// Movers computes only the most-improved / biggest-drop lists for a team.
func (s *Service) Movers(ctx context.Context, teamID string) (report.Movers, error) {
	rep, err := s.Leaderboard(ctx, teamID)
	if err != nil {
		return report.Movers{}, err
	}
	return rep.Movers, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		teams, players, evaluations := s.store.Counts(ctx)
		stats["queueLength"] = s.queue.Len(ctx)
		stats["totalTeams"] = teams
		stats["totalPlayers"] = players
		stats["totalEvaluations"] = evaluations

		metrics.UpdateTotalTeams(teams)
		metrics.UpdateTotalPlayers(players)
		metrics.UpdateTotalEvaluations(evaluations)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
