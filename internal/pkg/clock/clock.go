package clock

import "time"

// Clock provides the current time. Workflows take one so that Sunday and
// shift-window rules can be exercised deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct {
	loc *time.Location
}

// New returns the system clock reporting times in loc. A nil loc means
// time.Local.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return realClock{loc: loc}
}

func (c realClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// Fixed always reports t.
func Fixed(t time.Time) Clock {
	return Func(func() time.Time { return t })
}

// Date truncates t to midnight in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
