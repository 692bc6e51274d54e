package testutil

import "time"

// FixedTime is the reference instant used by deterministic tests.
var FixedTime = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

// FixedClock returns a clock function that always reports FixedTime.
func FixedClock() func() time.Time {
	return func() time.Time { return FixedTime }
}

// SteppingClock returns a clock that advances by step on every call,
// starting at FixedTime.
func SteppingClock(step time.Duration) func() time.Time {
	next := FixedTime
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
