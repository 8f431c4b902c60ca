package attendance

import (
	"testing"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/timeofday"
	"github.com/stretchr/testify/assert"
)

func at(s string) *timeofday.TimeOfDay {
	t := timeofday.MustParse(s)
	return &t
}

func TestRecordState(t *testing.T) {
	var missing *Record
	assert.Equal(t, StateNotStarted, missing.State())
	assert.Equal(t, StateCheckedIn, (&Record{TimeIn: at("08:00:00")}).State())
	assert.Equal(t, StateOnLunch, (&Record{TimeIn: at("08:00:00"), LunchStart: at("12:00:00")}).State())
	assert.Equal(t, StateLunchDone, (&Record{TimeIn: at("08:00:00"), LunchStart: at("12:00:00"), LunchEnd: at("13:00:00")}).State())
	assert.Equal(t, StateCheckedOut, (&Record{TimeIn: at("08:00:00"), TimeOut: at("17:00:00")}).State())
}

func TestRecordStatusWords(t *testing.T) {
	label := "Late, Undertime"
	r := Record{Status: &label}
	assert.True(t, r.IsLate())
	assert.True(t, r.IsUndertime())
	assert.False(t, r.IsOnTime())
	assert.False(t, r.IsComplete())
	assert.False(t, Record{}.IsLate())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "LUNCH_TOO_EARLY", CodeOf(&LunchTooEarlyError{MinutesRemaining: 5}))
	assert.Equal(t, "ALREADY_CHECKED_IN", CodeOf(ErrAlreadyCheckedIn))
	assert.Equal(t, "", CodeOf(nil))
}

func TestHistoryQuery(t *testing.T) {
	assert.Error(t, (&HistoryQuery{From: "03/01/2026"}).Validate())
	assert.Error(t, (&HistoryQuery{Limit: "0"}).Validate())
	assert.NoError(t, (&HistoryQuery{From: "2026-03-01", To: "2026-03-31", Limit: "10"}).Validate())

	_, err := (&HistoryQuery{From: "2026-03-31", To: "2026-03-01"}).Filter(nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	f, err := (&HistoryQuery{}).Filter(nil)
	assert.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, f.Limit)
}
