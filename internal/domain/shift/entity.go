package shift

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
)

// Fallbacks used when no shift can be resolved for an employee.
var (
	DefaultStart               = timeofday.New(8, 0, 0)
	DefaultGracePeriodMinutes  = 15
	DefaultMinHoursBeforeLunch = 3.0
)

type Shift struct {
	ID                  string
	Name                string
	StartTime           timeofday.TimeOfDay
	EndTime             timeofday.TimeOfDay
	WorkHours           float64
	GracePeriodMinutes  int
	MinHoursBeforeLunch float64
	IsDefault           bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsNightShift reports whether the shift wraps past midnight.
func (s Shift) IsNightShift() bool {
	return s.StartTime.After(s.EndTime)
}

// AllowsCheckIn applies the check-in window. A day shift closes at its end
// time; a night shift is closed only inside the gap between end and start.
func (s Shift) AllowsCheckIn(now timeofday.TimeOfDay) bool {
	if s.StartTime.Before(s.EndTime) {
		return !now.After(s.EndTime)
	}
	if s.IsNightShift() {
		return !(now.After(s.EndTime) && now.Before(s.StartTime))
	}
	return true
}

// ArrivedAfterMidnight reports whether timeIn falls in the part of a night
// shift that runs past midnight.
func (s Shift) ArrivedAfterMidnight(timeIn timeofday.TimeOfDay) bool {
	return s.IsNightShift() && !timeIn.After(s.EndTime)
}

func (s Shift) GracePeriod() time.Duration {
	return time.Duration(s.GracePeriodMinutes) * time.Minute
}

func (s Shift) MinTimeBeforeLunch() time.Duration {
	if s.MinHoursBeforeLunch <= 0 {
		return time.Duration(DefaultMinHoursBeforeLunch * float64(time.Hour))
	}
	return time.Duration(s.MinHoursBeforeLunch * float64(time.Hour))
}

// Display renders "Day Shift (8:00 AM - 5:00 PM)".
func (s Shift) Display() string {
	return fmt.Sprintf("%s (%s - %s)", s.Name, s.StartTime.Kitchen(), s.EndTime.Kitchen())
}
