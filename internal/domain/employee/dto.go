package employee

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name"`
	Position     string  `json:"position"`
	Department   string  `json:"department"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LeaveCredits *int    `json:"leave_credits,omitempty"`
	ShiftID      *string `json:"shift_id,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	required := map[string]string{
		"full_name":  r.FullName,
		"position":   r.Position,
		"department": r.Department,
	}
	for _, field := range []string{"full_name", "position", "department"} {
		if validator.IsEmpty(required[field]) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		}
	}

	if r.Email != nil && !validator.IsEmpty(*r.Email) && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be 09XXXXXXXXX, 639XXXXXXXXX or +639XXXXXXXXX",
		})
	}
	if r.LeaveCredits != nil && *r.LeaveCredits < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_credits",
			Message: "leave_credits cannot be negative",
		})
	}
	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetLeaveCreditsRequest struct {
	EmployeeID   string `json:"-"`
	LeaveCredits int    `json:"leave_credits"`
}

func (r *SetLeaveCreditsRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.LeaveCredits < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_credits",
			Message: "leave_credits cannot be negative",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignShiftRequest struct {
	EmployeeID string  `json:"-"`
	ShiftID    *string `json:"shift_id"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID or null",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	FullName     string    `json:"full_name"`
	Position     string    `json:"position"`
	Department   string    `json:"department"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	LeaveCredits int       `json:"leave_credits"`
	ShiftID      *string   `json:"shift_id,omitempty"`
	ShiftDisplay *string   `json:"shift_display,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Position:     e.Position,
		Department:   e.Department,
		Email:        e.Email,
		Phone:        e.Phone,
		LeaveCredits: e.LeaveCredits,
		ShiftID:      e.ShiftID,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
