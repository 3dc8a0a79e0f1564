// Package jobs provides scheduled background tasks for the print shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules take a leading seconds field.
//
// # Available Jobs
//
// 1. LedgerReconciliationJob - Replays the ledger of every paper and reports counter drift
// 2. LowStockJob - Warns about papers whose available sheets fell under the reorder threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	reconcile := jobs.NewLedgerReconciliationJob(verifyHandler, rediscache.NewJobLock(client), m, "0 */15 * * * *", logger)
//	lowStock := jobs.NewLowStockJob(listPapersHandler, "0 0 7 * * *", logger)
//	jobManager := jobs.NewJobManager(reconcile, lowStock)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Drift is logged at error level and counted in printshop_ledger_drift_total; counters are never rewritten
//   - Reconciliation runs on one replica at a time through a RunLock; a replica that finds the lock held skips the run
//   - Failed job starts will stop any already running jobs
package jobs
