package clock

import "time"

// Clock is the only source of "now" for services that stamp attendance.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in UTC; display code converts to the
// configured zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
