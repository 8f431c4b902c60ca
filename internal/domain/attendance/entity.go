package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
)

// StandardWorkingHours is the paid-hours threshold for a complete day.
const StandardWorkingHours = 8.0

// Status words. A record's label joins punctuality and completeness,
// e.g. "Late, Undertime".
const (
	StatusOnTime    = "On Time"
	StatusLate      = "Late"
	StatusComplete  = "Complete"
	StatusUndertime = "Undertime"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateCheckedIn  State = "checked_in"
	StateOnLunch    State = "on_lunch"
	StateLunchDone  State = "lunch_done"
	StateCheckedOut State = "checked_out"
)

// Record is one employee's attendance for one calendar date.
type Record struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	TimeIn        *timeofday.TimeOfDay
	LunchStart    *timeofday.TimeOfDay
	LunchEnd      *timeofday.TimeOfDay
	TimeOut       *timeofday.TimeOfDay
	TotalTime     float64
	LunchDuration float64
	PaidHours     float64
	OvertimeHours float64
	Status        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// State derives the workflow position from which timestamps are set. A nil
// record has not started.
func (r *Record) State() State {
	switch {
	case r == nil || r.TimeIn == nil:
		return StateNotStarted
	case r.TimeOut != nil:
		return StateCheckedOut
	case r.LunchStart != nil && r.LunchEnd == nil:
		return StateOnLunch
	case r.LunchEnd != nil:
		return StateLunchDone
	default:
		return StateCheckedIn
	}
}

// Punctuality and completeness are read back from the stored label.
func (r Record) IsLate() bool      { return r.hasStatus(StatusLate) }
func (r Record) IsOnTime() bool    { return r.hasStatus(StatusOnTime) }
func (r Record) IsComplete() bool  { return r.hasStatus(StatusComplete) }
func (r Record) IsUndertime() bool { return r.hasStatus(StatusUndertime) }

func (r Record) hasStatus(word string) bool {
	return r.Status != nil && strings.Contains(*r.Status, word)
}

// Completion holds the fields written together at check-out.
type Completion struct {
	TimeOut       timeofday.TimeOfDay
	TotalTime     float64
	LunchDuration float64
	PaidHours     float64
	OvertimeHours float64
	Status        string
}
