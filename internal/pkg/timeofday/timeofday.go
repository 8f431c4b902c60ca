// Package timeofday normalizes wall-clock values read from or written to the
// store. Every time-of-day crossing the persistence boundary goes through
// Normalize, so callers only ever deal with TimeOfDay.
package timeofday

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const day = 24 * time.Hour

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is the offset since midnight, truncated to whole seconds and kept
// within [00:00:00, 24:00:00).
type TimeOfDay time.Duration

// New builds a TimeOfDay from clock components.
func New(hour, minute, second int) TimeOfDay {
	return wrap(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// Of returns the wall-clock part of t in t's own location.
func Of(t time.Time) TimeOfDay {
	return New(t.Hour(), t.Minute(), t.Second())
}

// Parse accepts "15:04:05" and "15:04".
func Parse(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Of(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

// MustParse is Parse for constants and fixtures.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize converts any representation the store hands back into a
// TimeOfDay: strings, elapsed durations, native times and pgtype.Time.
func Normalize(v any) (TimeOfDay, error) {
	switch val := v.(type) {
	case TimeOfDay:
		return val, nil
	case *TimeOfDay:
		if val == nil {
			return 0, fmt.Errorf("%w: nil", ErrInvalidTimeOfDay)
		}
		return *val, nil
	case string:
		return Parse(val)
	case []byte:
		return Parse(string(val))
	case time.Duration:
		if val < 0 {
			return 0, fmt.Errorf("%w: negative duration %s", ErrInvalidTimeOfDay, val)
		}
		return wrap(val.Truncate(time.Second)), nil
	case time.Time:
		return Of(val), nil
	case pgtype.Time:
		if !val.Valid {
			return 0, fmt.Errorf("%w: null", ErrInvalidTimeOfDay)
		}
		return wrap((time.Duration(val.Microseconds) * time.Microsecond).Truncate(time.Second)), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, v)
	}
}

// FromPgTime maps a nullable SQL time column onto an optional TimeOfDay.
func FromPgTime(p pgtype.Time) *TimeOfDay {
	if !p.Valid {
		return nil
	}
	t, _ := Normalize(p)
	return &t
}

// PgTime maps an optional TimeOfDay onto a nullable SQL time parameter.
func PgTime(t *TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return t.PgTime()
}

func (t TimeOfDay) PgTime() pgtype.Time {
	return pgtype.Time{Microseconds: time.Duration(t).Microseconds(), Valid: true}
}

func (t TimeOfDay) Duration() time.Duration { return time.Duration(t) }

func (t TimeOfDay) Hour() int   { return int(time.Duration(t) / time.Hour) }
func (t TimeOfDay) Minute() int { return int(time.Duration(t) % time.Hour / time.Minute) }
func (t TimeOfDay) Second() int { return int(time.Duration(t) % time.Minute / time.Second) }

func (t TimeOfDay) Before(u TimeOfDay) bool { return t < u }
func (t TimeOfDay) After(u TimeOfDay) bool  { return t > u }

// Add shifts t by d, wrapping around midnight.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return wrap(time.Duration(t) + d)
}

// Since returns the elapsed time from start to t. A t earlier than start is
// treated as the next day, which covers a single midnight wraparound.
func (t TimeOfDay) Since(start TimeOfDay) time.Duration {
	d := time.Duration(t) - time.Duration(start)
	if d < 0 {
		d += day
	}
	return d
}

// On places t on the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, t.Hour(), t.Minute(), t.Second(), 0, d.Location())
}

// String renders HH:MM:SS, the storage format.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Kitchen renders "8:00 AM".
func (t TimeOfDay) Kitchen() string {
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC).Format("3:04 PM")
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeOfDay, string(data))
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func wrap(d time.Duration) TimeOfDay {
	d %= day
	if d < 0 {
		d += day
	}
	return TimeOfDay(d)
}
