package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"tent-ledger-backend/internal/jobs"
	"tent-ledger-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with every job registered. An invalid
// cron spec is an error.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Nightly projection rebuild
	if _, err := s.cron.AddFunc(cfg.RebuildProjections, func() { s.jobs.RebuildProjections() }); err != nil {
		return fmt.Errorf("failed to register RebuildProjections job: %w", err)
	}

	// Just after midnight, so open rentals pick up the new day
	if _, err := s.cron.AddFunc(cfg.RefreshRunningTotals, func() { s.jobs.RefreshRunningTotals() }); err != nil {
		return fmt.Errorf("failed to register RefreshRunningTotals job: %w", err)
	}

	logger.Info("All cron jobs registered successfully", "entries", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs and stops the scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries reports the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
