package overtime

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

type OvertimeService interface {
	approval.Reviewer

	Submit(ctx context.Context, req CreateOvertimeRequest) (OvertimeRequestResponse, error)
	Mine(ctx context.Context, employeeID string) ([]OvertimeRequestResponse, error)
	List(ctx context.Context, status *approval.Status) ([]OvertimeRequestResponse, error)
	Get(ctx context.Context, id string) (OvertimeRequestResponse, error)
	PendingCount(ctx context.Context) (int64, error)
	MonthlyOvertime(ctx context.Context, employeeID string, year int, month time.Month) (MonthlyOvertimeResponse, error)
}
