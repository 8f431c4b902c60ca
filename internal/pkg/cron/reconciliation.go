package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/leave"
)

// ReconciliationJobs looks for approved leave requests whose credits were
// never debited.
type ReconciliationJobs struct {
	leaveService leave.LeaveService
	interval     time.Duration
	opts         leave.ReconcileOptions
}

func NewReconciliationJobs(leaveService leave.LeaveService, interval time.Duration, opts leave.ReconcileOptions) *ReconciliationJobs {
	return &ReconciliationJobs{
		leaveService: leaveService,
		interval:     interval,
		opts:         opts,
	}
}

func (j *ReconciliationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_leave_credits", j.interval, j.ReconcileLeaveCredits)
}

func (j *ReconciliationJobs) ReconcileLeaveCredits(ctx context.Context) error {
	report, err := j.leaveService.Reconcile(ctx, j.opts)
	if err != nil {
		return err
	}

	if len(report.Unsettled) == 0 {
		return nil
	}
	slog.Info("Cron: leave credit reconciliation finished",
		"unsettled", len(report.Unsettled),
		"settled", len(report.Settled),
		"failed", len(report.Failed),
		"auto_settle", j.opts.AutoSettle,
	)
	return nil
}
