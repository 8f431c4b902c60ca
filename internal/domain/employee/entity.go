package employee

import "time"

// DefaultLeaveCredits is granted to new hires unless HR overrides it.
const DefaultLeaveCredits = 15

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Position     string
	Department   string
	Email        *string
	Phone        *string
	LeaveCredits int
	ShiftID      *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
