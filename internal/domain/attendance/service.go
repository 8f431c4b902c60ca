package attendance

import (
	"context"
	"time"
)

// AttendanceService drives the per-day attendance state machine. Every
// Can* check and every transition returns an Outcome; the error is reserved
// for storage failures.
type AttendanceService interface {
	CanCheckIn(ctx context.Context, employeeID string) (Outcome, error)
	CheckIn(ctx context.Context, employeeID string) (Outcome, error)
	CanStartLunch(ctx context.Context, employeeID string) (Outcome, error)
	StartLunch(ctx context.Context, employeeID string) (Outcome, error)
	CanEndLunch(ctx context.Context, employeeID string) (Outcome, error)
	EndLunch(ctx context.Context, employeeID string) (Outcome, error)
	CanCheckOut(ctx context.Context, employeeID string) (Outcome, error)
	CheckOut(ctx context.Context, employeeID string) (Outcome, error)

	Checks(ctx context.Context, employeeID string) (ChecksResponse, error)
	Today(ctx context.Context, employeeID string) (*RecordResponse, error)
	History(ctx context.Context, employeeID string, query HistoryQuery) ([]RecordResponse, error)
	Summary(ctx context.Context, employeeID string, query HistoryQuery) (SummaryResponse, error)
	Daily(ctx context.Context, date time.Time) (DailyResponse, error)
}
