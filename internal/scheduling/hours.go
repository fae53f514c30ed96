package scheduling

import "time"

// Business hours are defined against a fixed reference zone (US Eastern)
// regardless of where the caller is.
var referenceZone = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("scheduling: load reference zone: " + err.Error())
	}
	return loc
}()

const (
	businessOpenHour  = 8  // 8:00 a.m. ET
	businessCloseHour = 22 // 10:00 p.m. ET
)

// IsWithinBusinessHours reports whether an appointment interval, given as
// wall-clock start and end in zone, falls inside business hours.
//
// Both endpoints must read between 08:00 and 22:00 inclusive on the
// reference zone's clock, and the end instant must not precede the start.
// Only the clock time of each endpoint is checked, never the date: an
// interval that crosses midnight in the reference zone still passes as long
// as each endpoint's clock time is inside the window. That matches the
// long-standing behavior of the scheduler this service replaces and is kept
// on purpose.
func IsWithinBusinessHours(start, end time.Time, zone *time.Location) bool {
	refStart := ToCanonical(start, zone).In(referenceZone)
	refEnd := ToCanonical(end, zone).In(referenceZone)
	return insideOpenWindow(refStart) && insideOpenWindow(refEnd) && !refEnd.Before(refStart)
}

// insideOpenWindow checks t's reference-zone time-of-day against the open
// and close marks on t's own date, both ends inclusive.
func insideOpenWindow(t time.Time) bool {
	opens := time.Date(t.Year(), t.Month(), t.Day(), businessOpenHour, 0, 0, 0, referenceZone)
	closes := time.Date(t.Year(), t.Month(), t.Day(), businessCloseHour, 0, 0, 0, referenceZone)
	return !t.Before(opens) && !t.After(closes)
}
