package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

type LeaveType string

const (
	TypeSick      LeaveType = "Sick Leave"
	TypeVacation  LeaveType = "Vacation Leave"
	TypeEmergency LeaveType = "Emergency Leave"
	TypePersonal  LeaveType = "Personal Leave"
)

func AllLeaveTypes() []LeaveType {
	return []LeaveType{TypeSick, TypeVacation, TypeEmergency, TypePersonal}
}

func (t LeaveType) IsValid() bool {
	for _, known := range AllLeaveTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// LeaveRequest asks for DaysCount days off between StartDate and EndDate,
// both inclusive. CreditsDebited flips once the days have been taken off the
// employee's balance.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	LeaveType    LeaveType
	StartDate    time.Time
	EndDate      time.Time
	DaysCount    int
	Reason       string
	EvidencePath *string
	approval.Review
	CreditsDebited bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r LeaveRequest) RequestID() string            { return r.ID }
func (r LeaveRequest) RequesterID() string          { return r.EmployeeID }
func (r LeaveRequest) RequestKind() approval.Kind   { return approval.KindLeave }
func (r LeaveRequest) ReviewState() approval.Review { return r.Review }

func (r LeaveRequest) Subject() string {
	return fmt.Sprintf("%s, %s to %s", r.LeaveType, r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
}

// NeedsSettlement reports an approved request whose credits were never
// debited.
func (r LeaveRequest) NeedsSettlement() bool {
	return r.Status == approval.StatusApproved && !r.CreditsDebited
}

// DaysCount counts calendar days from start to end, both inclusive.
func DaysCount(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
