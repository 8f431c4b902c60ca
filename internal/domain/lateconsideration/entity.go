package lateconsideration

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
)

// LateConsideration asks a reviewer to excuse a late arrival on
// AttendanceDate.
type LateConsideration struct {
	ID             string
	EmployeeID     string
	AttendanceDate time.Time
	Reason         string
	EvidencePath   *string
	approval.Review
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r LateConsideration) RequestID() string            { return r.ID }
func (r LateConsideration) RequesterID() string          { return r.EmployeeID }
func (r LateConsideration) RequestKind() approval.Kind   { return approval.KindLateConsideration }
func (r LateConsideration) ReviewState() approval.Review { return r.Review }

func (r LateConsideration) Subject() string {
	return "Late arrival on " + r.AttendanceDate.Format("2006-01-02")
}
