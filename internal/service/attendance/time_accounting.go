package attendance

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/shopspring/decimal"
)

// Hours is a day's elapsed time split into its paid and unpaid parts, in
// hours with two decimals.
type Hours struct {
	Total float64
	Lunch float64
	Paid  float64
}

var secondsPerHour = decimal.NewFromInt(3600)

func roundedHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour).Round(2)
}

// ComputePaidHours subtracts the lunch interval, and only the lunch
// interval, from the time between check-in and check-out. Each interval may
// cross midnight once. Without both check-in and check-out every figure is
// zero.
func ComputePaidHours(timeIn, timeOut, lunchStart, lunchEnd *timeofday.TimeOfDay) Hours {
	if timeIn == nil || timeOut == nil {
		return Hours{}
	}

	total := roundedHours(timeOut.Since(*timeIn))
	lunch := decimal.Zero
	if lunchStart != nil && lunchEnd != nil {
		lunch = roundedHours(lunchEnd.Since(*lunchStart))
	}
	paid := total.Sub(lunch)
	if paid.IsNegative() {
		paid = decimal.Zero
	}

	return Hours{
		Total: total.InexactFloat64(),
		Lunch: lunch.InexactFloat64(),
		Paid:  paid.InexactFloat64(),
	}
}

// DetermineStatus combines punctuality and completeness, e.g. "Late, Undertime".
func DetermineStatus(timeIn timeofday.TimeOfDay, paidHours float64, shiftStart timeofday.TimeOfDay, gracePeriod time.Duration) string {
	punctuality := attendance.StatusOnTime
	if timeIn.Duration() > shiftStart.Duration()+gracePeriod {
		punctuality = attendance.StatusLate
	}
	return punctuality + ", " + completeness(paidHours)
}

// DetermineShiftStatus is DetermineStatus against the resolved shift. A
// check-in past midnight on a night shift is measured from the previous
// evening's start, so arriving at 03:00 for a 22:00 shift is late.
func DetermineShiftStatus(timeIn timeofday.TimeOfDay, paidHours float64, sh *shift.Shift) string {
	if sh == nil {
		grace := time.Duration(shift.DefaultGracePeriodMinutes) * time.Minute
		return DetermineStatus(timeIn, paidHours, shift.DefaultStart, grace)
	}
	if !sh.ArrivedAfterMidnight(timeIn) {
		return DetermineStatus(timeIn, paidHours, sh.StartTime, sh.GracePeriod())
	}

	punctuality := attendance.StatusOnTime
	if timeIn.Since(sh.StartTime) > sh.GracePeriod() {
		punctuality = attendance.StatusLate
	}
	return punctuality + ", " + completeness(paidHours)
}

func completeness(paidHours float64) string {
	if paidHours >= attendance.StandardWorkingHours {
		return attendance.StatusComplete
	}
	return attendance.StatusUndertime
}

// OvertimeHours is whatever exceeds the standard working day.
func OvertimeHours(paidHours float64) float64 {
	over := decimal.NewFromFloat(paidHours).
		Sub(decimal.NewFromFloat(attendance.StandardWorkingHours)).
		Round(2)
	if over.IsNegative() {
		return 0
	}
	return over.InexactFloat64()
}
