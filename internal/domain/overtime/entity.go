package overtime

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

const (
	MinHoursRequested = 0.5
	MaxHoursRequested = 8.0
)

// OvertimeRequest asks in advance for extra hours on RequestDate.
// ActualOvertime is filled in from the attendance record at check-out.
type OvertimeRequest struct {
	ID             string
	EmployeeID     string
	RequestDate    time.Time
	HoursRequested float64
	Reason         string
	EvidencePath   *string
	ActualOvertime *float64
	approval.Review
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r OvertimeRequest) RequestID() string            { return r.ID }
func (r OvertimeRequest) RequesterID() string          { return r.EmployeeID }
func (r OvertimeRequest) RequestKind() approval.Kind   { return approval.KindOvertime }
func (r OvertimeRequest) ReviewState() approval.Review { return r.Review }

func (r OvertimeRequest) Subject() string {
	return fmt.Sprintf("%.1f hours on %s", r.HoursRequested, r.RequestDate.Format("2006-01-02"))
}
