package overtime

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

// OvertimeRepository treats (employee, request date) as the duplicate key
// for pending requests.
type OvertimeRepository interface {
	approval.Repository[OvertimeRequest]

	// FindApprovedForDate returns nil when nothing was approved for the date.
	FindApprovedForDate(ctx context.Context, employeeID string, date time.Time) (*OvertimeRequest, error)
	UpdateActualOvertime(ctx context.Context, id string, hours float64) (int64, error)

	// MonthlyOvertime sums actual overtime over approved requests dated in
	// the given month.
	MonthlyOvertime(ctx context.Context, employeeID string, year int, month time.Month) (float64, error)
}
