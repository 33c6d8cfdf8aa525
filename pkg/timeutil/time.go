package timeutil

import "time"

// Now returns the current time in UTC
// Always use this instead of time.Now() to ensure timezone consistency
func Now() time.Time {
	return time.Now().UTC()
}

// InOffset returns t as wall-clock time in a fixed zone offsetMinutes east of UTC.
func InOffset(t time.Time, offsetMinutes int) time.Time {
	return t.In(time.FixedZone("", offsetMinutes*60))
}

// Milliseconds returns the millisecond part of t (0-999).
func Milliseconds(t time.Time) int {
	return t.Nanosecond() / int(time.Millisecond)
}
