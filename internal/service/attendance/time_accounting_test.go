package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tod(s string) *timeofday.TimeOfDay {
	t := timeofday.MustParse(s)
	return &t
}

func TestComputePaidHours(t *testing.T) {
	tests := []struct {
		name       string
		timeIn     *timeofday.TimeOfDay
		lunchStart *timeofday.TimeOfDay
		lunchEnd   *timeofday.TimeOfDay
		timeOut    *timeofday.TimeOfDay
		want       Hours
	}{
		{
			name:       "full day with lunch",
			timeIn:     tod("08:00:00"),
			lunchStart: tod("12:00:00"),
			lunchEnd:   tod("13:00:00"),
			timeOut:    tod("17:30:00"),
			want:       Hours{Total: 9.5, Lunch: 1, Paid: 8.5},
		},
		{
			name:    "no lunch taken",
			timeIn:  tod("08:00:00"),
			timeOut: tod("12:00:00"),
			want:    Hours{Total: 4, Lunch: 0, Paid: 4},
		},
		{
			name:       "lunch started but not ended is not deducted",
			timeIn:     tod("08:00:00"),
			lunchStart: tod("12:00:00"),
			timeOut:    tod("16:00:00"),
			want:       Hours{Total: 8, Lunch: 0, Paid: 8},
		},
		{
			name:       "night shift across midnight",
			timeIn:     tod("22:00:00"),
			lunchStart: tod("02:00:00"),
			lunchEnd:   tod("02:30:00"),
			timeOut:    tod("07:00:00"),
			want:       Hours{Total: 9, Lunch: 0.5, Paid: 8.5},
		},
		{
			name:   "missing check-out",
			timeIn: tod("08:00:00"),
			want:   Hours{},
		},
		{
			name:    "missing check-in",
			timeOut: tod("17:00:00"),
			want:    Hours{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePaidHours(tt.timeIn, tt.timeOut, tt.lunchStart, tt.lunchEnd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePaidHours_PaidIsTotalMinusLunch(t *testing.T) {
	// Awkward minute counts make each figure round on its own.
	got := ComputePaidHours(tod("08:07:00"), tod("17:26:00"), tod("12:03:00"), tod("13:13:00"))

	total := decimal.NewFromFloat(got.Total)
	lunch := decimal.NewFromFloat(got.Lunch)
	paid := decimal.NewFromFloat(got.Paid)

	assert.True(t, total.Sub(lunch).Equal(paid), "total %v - lunch %v != paid %v", got.Total, got.Lunch, got.Paid)
	assert.GreaterOrEqual(t, got.Paid, 0.0)
}

func TestDetermineStatus(t *testing.T) {
	start := timeofday.MustParse("08:00:00")
	grace := 15 * time.Minute

	assert.Equal(t, "On Time, Complete", DetermineStatus(timeofday.MustParse("08:00:00"), 8.5, start, grace))
	assert.Equal(t, "Late, Complete", DetermineStatus(timeofday.MustParse("08:20:00"), 8.5, start, grace))
	assert.Equal(t, "On Time, Complete", DetermineStatus(timeofday.MustParse("08:15:00"), 8.0, start, grace))
	assert.Equal(t, "Late, Undertime", DetermineStatus(timeofday.MustParse("08:15:01"), 7.99, start, grace))
}

func TestDetermineStatus_AxesAreIndependent(t *testing.T) {
	start := timeofday.MustParse("09:00:00")
	grace := 10 * time.Minute

	for _, paid := range []float64{0, 4, 7.99, 8, 12} {
		assert.Contains(t, DetermineStatus(timeofday.MustParse("09:30:00"), paid, start, grace), "Late")
		assert.Contains(t, DetermineStatus(timeofday.MustParse("08:55:00"), paid, start, grace), "On Time")
	}
	for _, in := range []string{"07:00:00", "09:10:00", "11:00:00"} {
		assert.Contains(t, DetermineStatus(timeofday.MustParse(in), 9, start, grace), "Complete")
		assert.Contains(t, DetermineStatus(timeofday.MustParse(in), 6, start, grace), "Undertime")
	}
}

func TestDetermineShiftStatus(t *testing.T) {
	night := &shift.Shift{
		Name:               "Night Shift",
		StartTime:          timeofday.MustParse("22:00:00"),
		EndTime:            timeofday.MustParse("06:00:00"),
		GracePeriodMinutes: 15,
	}
	day := &shift.Shift{
		Name:               "Day Shift",
		StartTime:          timeofday.MustParse("08:00:00"),
		EndTime:            timeofday.MustParse("17:00:00"),
		GracePeriodMinutes: 15,
	}

	assert.Equal(t, "On Time, Complete", DetermineShiftStatus(timeofday.MustParse("21:50:00"), 8, night))
	assert.Equal(t, "Late, Complete", DetermineShiftStatus(timeofday.MustParse("22:30:00"), 8, night))
	assert.Equal(t, "Late, Undertime", DetermineShiftStatus(timeofday.MustParse("03:00:00"), 3, night))
	assert.Equal(t, "Late, Complete", DetermineShiftStatus(timeofday.MustParse("08:20:00"), 8.5, day))
	assert.Equal(t, "On Time, Complete", DetermineShiftStatus(timeofday.MustParse("08:10:00"), 8.5, nil))

	late := &shift.Shift{
		StartTime:          timeofday.MustParse("23:50:00"),
		EndTime:            timeofday.MustParse("07:50:00"),
		GracePeriodMinutes: 15,
	}
	assert.Equal(t, "On Time, Complete", DetermineShiftStatus(timeofday.MustParse("00:04:00"), 8, late))
}

func TestOvertimeHours(t *testing.T) {
	assert.Equal(t, 0.0, OvertimeHours(7.5))
	assert.Equal(t, 0.0, OvertimeHours(8))
	assert.Equal(t, 0.5, OvertimeHours(8.5))
	assert.Equal(t, 1.33, OvertimeHours(9.33))
}
