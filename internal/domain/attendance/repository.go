package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
)

// AttendanceRepository persists one record per (employee, date). The
// transition writes are conditioned on the record's current state and report
// how many rows they changed.
type AttendanceRepository interface {
	// Create inserts a checked-in record. A second record for the same
	// (employee, date) fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByEmployeeAndDate returns nil when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	StartLunch(ctx context.Context, id string, at timeofday.TimeOfDay) (int64, error)
	EndLunch(ctx context.Context, id string, at timeofday.TimeOfDay) (int64, error)
	Complete(ctx context.Context, id string, c Completion) (int64, error)

	ListByEmployee(ctx context.Context, employeeID string, filter HistoryFilter) ([]Record, error)
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)
}
