package scheduling

import "time"

// ToCanonical interprets the wall-clock fields of local as a time in zone and
// returns the equivalent UTC instant. Appointment times are always persisted
// in this canonical form so they stay comparable across caller time zones.
//
// A wall-clock time that is ambiguous or skipped around a DST transition is
// resolved by time.Date's rule: the earlier of the two possible instants for
// a repeated hour, and a shifted instant for a gap.
func ToCanonical(local time.Time, zone *time.Location) time.Time {
	return time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		zone,
	).UTC()
}

// FromCanonical is the inverse of ToCanonical: it renders a stored UTC
// instant as wall-clock time in zone. Round-trips are exact for any time
// that does not fall in a DST gap.
func FromCanonical(canonical time.Time, zone *time.Location) time.Time {
	return canonical.In(zone)
}
