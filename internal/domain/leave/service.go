package leave

import (
	"context"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

type LeaveService interface {
	approval.Reviewer

	Submit(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Mine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	List(ctx context.Context, status *approval.Status) ([]LeaveRequestResponse, error)
	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	PendingCount(ctx context.Context) (int64, error)

	// Settle debits an approved request that was left undebited.
	Settle(ctx context.Context, id string) (LeaveRequestResponse, error)
	Reconcile(ctx context.Context, opts ReconcileOptions) (ReconcileReport, error)
}
