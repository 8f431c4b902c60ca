package lateconsideration

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type CreateLateConsiderationRequest struct {
	EmployeeID     string  `json:"-"`
	AttendanceDate string  `json:"attendance_date"`
	Reason         string  `json:"reason"`
	EvidencePath   *string `json:"evidence_path"`
}

func (r *CreateLateConsiderationRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.AttendanceDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "attendance_date", Message: "attendance_date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateLateConsiderationRequest) ToLateConsideration(loc *time.Location) (LateConsideration, error) {
	date, err := validator.ParseDate(r.AttendanceDate, loc)
	if err != nil {
		return LateConsideration{}, err
	}
	return LateConsideration{
		EmployeeID:     r.EmployeeID,
		AttendanceDate: date,
		Reason:         r.Reason,
		EvidencePath:   r.EvidencePath,
		Review:         approval.Review{Status: approval.StatusPending},
	}, nil
}

type LateConsiderationResponse struct {
	ID             string  `json:"late_consideration_id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	Reason         string  `json:"reason"`
	EvidencePath   *string `json:"evidence_path"`
	approval.ReviewFields
	RequestedAt time.Time `json:"requested_at"`
}

func NewLateConsiderationResponse(r LateConsideration) LateConsiderationResponse {
	return LateConsiderationResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		AttendanceDate: r.AttendanceDate.Format("2006-01-02"),
		Reason:         r.Reason,
		EvidencePath:   r.EvidencePath,
		ReviewFields:   approval.NewReviewFields(r.Review),
		RequestedAt:    r.CreatedAt,
	}
}
