package leave

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID   string  `json:"-"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	EvidencePath *string `json:"evidence_path"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is required"})
	} else if !LeaveType(r.LeaveType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be one of Sick Leave, Vacation Leave, Emergency Leave, Personal Leave"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToLeaveRequest builds the pending request. Dates are interpreted in loc.
func (r *CreateLeaveRequest) ToLeaveRequest(loc *time.Location) (LeaveRequest, error) {
	start, err := validator.ParseDate(r.StartDate, loc)
	if err != nil {
		return LeaveRequest{}, err
	}
	end, err := validator.ParseDate(r.EndDate, loc)
	if err != nil {
		return LeaveRequest{}, err
	}
	return LeaveRequest{
		EmployeeID:   r.EmployeeID,
		LeaveType:    LeaveType(r.LeaveType),
		StartDate:    start,
		EndDate:      end,
		DaysCount:    DaysCount(start, end),
		Reason:       r.Reason,
		EvidencePath: r.EvidencePath,
		Review:       approval.Review{Status: approval.StatusPending},
	}, nil
}

type LeaveRequestResponse struct {
	ID           string    `json:"leave_request_id"`
	EmployeeID   string    `json:"employee_id"`
	LeaveType    LeaveType `json:"leave_type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DaysCount    int       `json:"days_count"`
	Reason       string    `json:"reason"`
	EvidencePath *string   `json:"evidence_path"`
	approval.ReviewFields
	CreditsDebited bool      `json:"credits_debited"`
	RequestedAt    time.Time `json:"requested_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		LeaveType:      r.LeaveType,
		StartDate:      r.StartDate.Format("2006-01-02"),
		EndDate:        r.EndDate.Format("2006-01-02"),
		DaysCount:      r.DaysCount,
		Reason:         r.Reason,
		EvidencePath:   r.EvidencePath,
		ReviewFields:   approval.NewReviewFields(r.Review),
		CreditsDebited: r.CreditsDebited,
		RequestedAt:    r.CreatedAt,
	}
}

type ReconcileOptions struct {
	MinAge     time.Duration
	AutoSettle bool
}

// ReconcileReport lists approved requests that were found without a debit.
type ReconcileReport struct {
	Unsettled []string `json:"unsettled"`
	Settled   []string `json:"settled"`
	Failed    []string `json:"failed"`
}
