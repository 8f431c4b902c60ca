package shift

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name                string   `json:"shift_name"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	WorkHours           float64  `json:"work_hours"`
	GracePeriodMinutes  *int     `json:"grace_period_mins,omitempty"`
	MinHoursBeforeLunch *float64 `json:"min_hours_before_lunch,omitempty"`
	IsDefault           bool     `json:"is_default"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_name",
			Message: "shift_name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_name",
			Message: "shift_name must not exceed 100 characters",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM:SS format",
		})
	}
	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM:SS format",
		})
	}
	if r.StartTime != "" && r.StartTime == r.EndTime {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must differ from start_time",
		})
	}

	errs = append(errs, validateLimits(r.WorkHours, r.GracePeriodMinutes, r.MinHoursBeforeLunch)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToShift assumes Validate passed.
func (r *CreateShiftRequest) ToShift() Shift {
	s := Shift{
		Name:                r.Name,
		StartTime:           timeofday.MustParse(r.StartTime),
		EndTime:             timeofday.MustParse(r.EndTime),
		WorkHours:           r.WorkHours,
		GracePeriodMinutes:  DefaultGracePeriodMinutes,
		MinHoursBeforeLunch: DefaultMinHoursBeforeLunch,
		IsDefault:           r.IsDefault,
		IsActive:            true,
	}
	if r.GracePeriodMinutes != nil {
		s.GracePeriodMinutes = *r.GracePeriodMinutes
	}
	if r.MinHoursBeforeLunch != nil {
		s.MinHoursBeforeLunch = *r.MinHoursBeforeLunch
	}
	return s
}

type UpdateShiftRequest struct {
	ID                  string   `json:"-"`
	Name                *string  `json:"shift_name,omitempty"`
	StartTime           *string  `json:"start_time,omitempty"`
	EndTime             *string  `json:"end_time,omitempty"`
	WorkHours           *float64 `json:"work_hours,omitempty"`
	GracePeriodMinutes  *int     `json:"grace_period_mins,omitempty"`
	MinHoursBeforeLunch *float64 `json:"min_hours_before_lunch,omitempty"`
	IsDefault           *bool    `json:"is_default,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}
	if r.Name != nil && (validator.IsEmpty(*r.Name) || len(*r.Name) > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_name",
			Message: "shift_name must be 1-100 characters",
		})
	}
	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM:SS format",
		})
	}
	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM:SS format",
		})
	}

	workHours := 8.0
	if r.WorkHours != nil {
		workHours = *r.WorkHours
	}
	errs = append(errs, validateLimits(workHours, r.GracePeriodMinutes, r.MinHoursBeforeLunch)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the non-nil fields onto s. Validate must have passed.
func (r *UpdateShiftRequest) Apply(s Shift) Shift {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.StartTime != nil {
		s.StartTime = timeofday.MustParse(*r.StartTime)
	}
	if r.EndTime != nil {
		s.EndTime = timeofday.MustParse(*r.EndTime)
	}
	if r.WorkHours != nil {
		s.WorkHours = *r.WorkHours
	}
	if r.GracePeriodMinutes != nil {
		s.GracePeriodMinutes = *r.GracePeriodMinutes
	}
	if r.MinHoursBeforeLunch != nil {
		s.MinHoursBeforeLunch = *r.MinHoursBeforeLunch
	}
	if r.IsDefault != nil {
		s.IsDefault = *r.IsDefault
	}
	return s
}

func validateLimits(workHours float64, grace *int, minLunch *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if workHours <= 0 || workHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours",
			Message: "work_hours must be greater than 0 and at most 24",
		})
	}
	if grace != nil && (*grace < 0 || *grace > 240) {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_mins",
			Message: "grace_period_mins must be between 0 and 240",
		})
	}
	if minLunch != nil && (*minLunch < 0 || *minLunch > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "min_hours_before_lunch",
			Message: "min_hours_before_lunch must be between 0 and 12",
		})
	}
	return errs
}

type ReassignEmployeesRequest struct {
	FromShiftID string `json:"-"`
	ToShiftID   string `json:"target_shift_id"`
}

func (r *ReassignEmployeesRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.FromShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}
	if !validator.IsValidUUID(r.ToShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_shift_id",
			Message: "target_shift_id must be a valid UUID",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReassignEmployeesResponse struct {
	FromShiftID string `json:"from_shift_id"`
	ToShiftID   string `json:"to_shift_id"`
	Moved       int64  `json:"employees_moved"`
}

type ShiftResponse struct {
	ID                  string              `json:"shift_id"`
	Name                string              `json:"shift_name"`
	StartTime           timeofday.TimeOfDay `json:"start_time"`
	EndTime             timeofday.TimeOfDay `json:"end_time"`
	WorkHours           float64             `json:"work_hours"`
	GracePeriodMinutes  int                 `json:"grace_period_mins"`
	MinHoursBeforeLunch float64             `json:"min_hours_before_lunch"`
	IsDefault           bool                `json:"is_default"`
	IsActive            bool                `json:"is_active"`
	IsNightShift        bool                `json:"is_night_shift"`
	Display             string              `json:"display"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                  s.ID,
		Name:                s.Name,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		WorkHours:           s.WorkHours,
		GracePeriodMinutes:  s.GracePeriodMinutes,
		MinHoursBeforeLunch: s.MinHoursBeforeLunch,
		IsDefault:           s.IsDefault,
		IsActive:            s.IsActive,
		IsNightShift:        s.IsNightShift(),
		Display:             s.Display(),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
