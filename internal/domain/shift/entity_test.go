package shift

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/stretchr/testify/assert"
)

func TestAllowsCheckIn(t *testing.T) {
	day := Shift{StartTime: timeofday.MustParse("08:00:00"), EndTime: timeofday.MustParse("17:00:00")}
	night := Shift{StartTime: timeofday.MustParse("22:00:00"), EndTime: timeofday.MustParse("07:00:00")}

	cases := []struct {
		name  string
		shift Shift
		now   string
		want  bool
	}{
		{"day shift before start", day, "06:30:00", true},
		{"day shift during", day, "09:00:00", true},
		{"day shift at end", day, "17:00:00", true},
		{"day shift after end", day, "17:00:01", false},
		{"night shift evening", night, "22:30:00", true},
		{"night shift after midnight", night, "02:00:00", true},
		{"night shift at end", night, "07:00:00", true},
		{"night shift inside gap", night, "12:00:00", false},
		{"night shift at start", night, "22:00:00", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.shift.AllowsCheckIn(timeofday.MustParse(c.now)))
		})
	}
}

func TestIsNightShift(t *testing.T) {
	assert.True(t, Shift{StartTime: timeofday.MustParse("22:00:00"), EndTime: timeofday.MustParse("07:00:00")}.IsNightShift())
	assert.False(t, Shift{StartTime: timeofday.MustParse("08:00:00"), EndTime: timeofday.MustParse("17:00:00")}.IsNightShift())
}

func TestDisplay(t *testing.T) {
	s := Shift{Name: "Day Shift", StartTime: timeofday.MustParse("08:00:00"), EndTime: timeofday.MustParse("17:00:00")}
	assert.Equal(t, "Day Shift (8:00 AM - 5:00 PM)", s.Display())
}

func TestMinTimeBeforeLunch(t *testing.T) {
	assert.Equal(t, 3*time.Hour, Shift{}.MinTimeBeforeLunch())
	assert.Equal(t, 4*time.Hour+30*time.Minute, Shift{MinHoursBeforeLunch: 4.5}.MinTimeBeforeLunch())
}

func TestCreateShiftRequest_Validate(t *testing.T) {
	req := CreateShiftRequest{Name: "", StartTime: "8am", EndTime: "17:00:00", WorkHours: 0}
	err := req.Validate()
	if assert.Error(t, err) {
		fields := err.(interface{ ToMap() map[string]string }).ToMap()
		assert.Contains(t, fields, "shift_name")
		assert.Contains(t, fields, "start_time")
		assert.Contains(t, fields, "work_hours")
	}

	ok := CreateShiftRequest{Name: "Night Shift", StartTime: "22:00", EndTime: "07:00", WorkHours: 8}
	assert.NoError(t, ok.Validate())
	s := ok.ToShift()
	assert.True(t, s.IsNightShift())
	assert.Equal(t, DefaultGracePeriodMinutes, s.GracePeriodMinutes)
	assert.True(t, s.IsActive)
}
