package jobs

import (
	"context"
	"fmt"
	"time"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/service"
)

const jobTimeout = 5 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	ledger service.LedgerService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(ledger service.LedgerService, cfg *config.Config) *JobRunner {
	return &JobRunner{ledger: ledger, config: cfg}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and a deadline
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) (int, error)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	logger.Info("Starting job", "job", jobName)
	n, err := jobFunc(ctx)
	if err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return err
	}
	logger.Info("Job completed", "job", jobName, "records", n, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// RebuildProjections recomputes both summary views from the stored records
func (jr *JobRunner) RebuildProjections() error {
	return jr.runWithRecovery("RebuildProjections", jr.ledger.RebuildProjections)
}

// RefreshRunningTotals re-derives open accounts as of today
func (jr *JobRunner) RefreshRunningTotals() error {
	return jr.runWithRecovery("RefreshRunningTotals", jr.ledger.RefreshRunningTotals)
}

// RunAll runs every job in order (for manual execution). The refresh goes
// first so the rebuild projects current totals.
func (jr *JobRunner) RunAll() error {
	if err := jr.RefreshRunningTotals(); err != nil {
		return err
	}
	return jr.RebuildProjections()
}
