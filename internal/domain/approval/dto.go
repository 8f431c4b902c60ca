package approval

import (
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

const maxRemarksLength = 500

type ReviewInput struct {
	RequestID  string  `json:"-"`
	ReviewerID string  `json:"-"`
	Remarks    *string `json:"remarks"`
}

func (r *ReviewInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "request id is required"})
	}
	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{Field: "reviewer_id", Message: "reviewer is required"})
	}
	if r.Remarks != nil && len(*r.Remarks) > maxRemarksLength {
		errs = append(errs, validator.ValidationError{Field: "remarks", Message: "remarks must be at most 500 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Result is what approve and reject hand back. OK is false for every
// refusal; Reason then holds the matching error. Storage failures are
// returned separately as an error.
type Result struct {
	OK        bool   `json:"ok"`
	RequestID string `json:"request_id"`
	Kind      Kind   `json:"kind"`
	Status    Status `json:"status,omitempty"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Reason    error  `json:"-"`
}

// ReviewFields is the JSON block shared by the request responses.
type ReviewFields struct {
	Status           Status  `json:"status"`
	ReviewedBy       *string `json:"reviewed_by"`
	ReviewedAt       *string `json:"reviewed_at"`
	Remarks          *string `json:"remarks"`
	EmployeeNotified bool    `json:"employee_notified"`
}

func NewReviewFields(r Review) ReviewFields {
	f := ReviewFields{
		Status:           r.Status,
		ReviewedBy:       r.ReviewedBy,
		Remarks:          r.Remarks,
		EmployeeNotified: r.EmployeeNotified,
	}
	if r.ReviewedAt != nil {
		s := r.ReviewedAt.Format("2006-01-02T15:04:05Z07:00")
		f.ReviewedAt = &s
	}
	return f
}
