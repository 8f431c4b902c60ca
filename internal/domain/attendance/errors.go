package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Guard violations. They travel inside an Outcome, never as a returned error.
var (
	ErrSundayCheckIn       = errors.New("check-in is disabled on Sundays")
	ErrAlreadyCheckedIn    = errors.New("you have already checked in today")
	ErrOutsideShiftWindow  = errors.New("check-in is outside the shift schedule")
	ErrNotCheckedIn        = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut   = errors.New("you have already checked out today")
	ErrLunchAlreadyStarted = errors.New("lunch already started")
	ErrLunchTooEarly       = errors.New("too early to start lunch")
	ErrLunchNotStarted     = errors.New("lunch has not been started")
	ErrLunchAlreadyEnded   = errors.New("lunch already ended")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDateRange   = errors.New("from date must not be after to date")
)

// LunchTooEarlyError carries the earliest permitted lunch start.
type LunchTooEarlyError struct {
	Earliest         time.Time
	MinutesRemaining int
}

func (e *LunchTooEarlyError) Error() string {
	return fmt.Sprintf("too early to start lunch: earliest %s (%d minutes remaining)",
		e.Earliest.Format("3:04 PM"), e.MinutesRemaining)
}

func (e *LunchTooEarlyError) Unwrap() error { return ErrLunchTooEarly }

var codes = []struct {
	err  error
	code string
}{
	{ErrSundayCheckIn, "NON_WORK_DAY"},
	{ErrAlreadyCheckedIn, "ALREADY_CHECKED_IN"},
	{ErrOutsideShiftWindow, "OUTSIDE_SHIFT_WINDOW"},
	{ErrNotCheckedIn, "NOT_CHECKED_IN"},
	{ErrAlreadyCheckedOut, "ALREADY_CHECKED_OUT"},
	{ErrLunchAlreadyStarted, "LUNCH_ALREADY_STARTED"},
	{ErrLunchTooEarly, "LUNCH_TOO_EARLY"},
	{ErrLunchNotStarted, "LUNCH_NOT_STARTED"},
	{ErrLunchAlreadyEnded, "LUNCH_ALREADY_ENDED"},
}

// CodeOf maps a guard violation to its stable machine-readable code.
func CodeOf(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
