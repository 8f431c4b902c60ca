package lateconsideration

import (
	"context"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

type LateConsiderationService interface {
	approval.Reviewer

	Submit(ctx context.Context, req CreateLateConsiderationRequest) (LateConsiderationResponse, error)
	Mine(ctx context.Context, employeeID string) ([]LateConsiderationResponse, error)
	List(ctx context.Context, status *approval.Status) ([]LateConsiderationResponse, error)
	Get(ctx context.Context, id string) (LateConsiderationResponse, error)
	PendingCount(ctx context.Context) (int64, error)
}
