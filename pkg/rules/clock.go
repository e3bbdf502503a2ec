package rules

import "time"

// Clock supplies the current time for date/time defaults. Tests inject a
// fixed clock so date-typed renders stay reproducible.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function into a Clock.
type ClockFunc func() time.Time

// Now delegates to the underlying function.
func (fn ClockFunc) Now() time.Time {
	return fn()
}

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
