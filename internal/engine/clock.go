package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Parser reads it to default the year, the Importer to place dates
// without a year, and the Exporter to stamp calendars.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
