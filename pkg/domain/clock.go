package domain

import "time"

// Clock returns the current instant. Services take one so tests can pin time.
type Clock func() time.Time

// SystemClock reports the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
