package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationJob *LedgerReconciliationJob
	lowStockJob       *LowStockJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(reconciliationJob *LedgerReconciliationJob, lowStockJob *LowStockJob) *JobManager {
	return &JobManager{
		reconciliationJob: reconciliationJob,
		lowStockJob:       lowStockJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start ledger reconciliation job: %w", err)
	}

	if err := jm.lowStockJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start low stock job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lowStockJob.Stop()
	jm.reconciliationJob.Stop()
}
