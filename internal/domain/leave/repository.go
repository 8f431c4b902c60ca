package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

// LeaveRepository treats (employee, start date, end date) as the duplicate
// key for pending requests.
type LeaveRepository interface {
	approval.Repository[LeaveRequest]

	// SettleCredits debits days_count from the employee and marks the request
	// settled in one statement. It changes nothing unless the request is
	// approved and not yet settled, so repeated calls are harmless.
	SettleCredits(ctx context.Context, id string) (int64, error)

	// ListUnsettled returns approved, undebited requests reviewed before
	// cutoff.
	ListUnsettled(ctx context.Context, reviewedBefore time.Time) ([]LeaveRequest, error)
}
