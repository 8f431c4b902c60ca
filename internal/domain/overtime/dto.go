package overtime

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type CreateOvertimeRequest struct {
	EmployeeID     string  `json:"-"`
	RequestDate    string  `json:"request_date"`
	HoursRequested float64 `json:"hours_requested"`
	Reason         string  `json:"reason"`
	EvidencePath   *string `json:"evidence_path"`
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.RequestDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "request_date", Message: "request_date must be in YYYY-MM-DD format"})
	}
	if r.HoursRequested < MinHoursRequested || r.HoursRequested > MaxHoursRequested {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_requested",
			Message: fmt.Sprintf("hours_requested must be between %.1f and %.1f", MinHoursRequested, MaxHoursRequested),
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateOvertimeRequest) ToOvertimeRequest(loc *time.Location) (OvertimeRequest, error) {
	date, err := validator.ParseDate(r.RequestDate, loc)
	if err != nil {
		return OvertimeRequest{}, err
	}
	return OvertimeRequest{
		EmployeeID:     r.EmployeeID,
		RequestDate:    date,
		HoursRequested: r.HoursRequested,
		Reason:         r.Reason,
		EvidencePath:   r.EvidencePath,
		Review:         approval.Review{Status: approval.StatusPending},
	}, nil
}

type OvertimeRequestResponse struct {
	ID             string   `json:"overtime_request_id"`
	EmployeeID     string   `json:"employee_id"`
	RequestDate    string   `json:"request_date"`
	HoursRequested float64  `json:"hours_requested"`
	Reason         string   `json:"reason"`
	EvidencePath   *string  `json:"evidence_path"`
	ActualOvertime *float64 `json:"actual_overtime"`
	approval.ReviewFields
	RequestedAt time.Time `json:"requested_at"`
}

func NewOvertimeRequestResponse(r OvertimeRequest) OvertimeRequestResponse {
	return OvertimeRequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		RequestDate:    r.RequestDate.Format("2006-01-02"),
		HoursRequested: r.HoursRequested,
		Reason:         r.Reason,
		EvidencePath:   r.EvidencePath,
		ActualOvertime: r.ActualOvertime,
		ReviewFields:   approval.NewReviewFields(r.Review),
		RequestedAt:    r.CreatedAt,
	}
}

type MonthlyOvertimeResponse struct {
	EmployeeID    string  `json:"employee_id"`
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	TotalOvertime float64 `json:"total_overtime"`
}
