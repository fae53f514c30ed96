package scheduling

import (
	"time"

	"scheduling-app-server/internal/models"
)

// Interval is a candidate appointment's start and end. Both ends must be in
// the same frame of reference as the appointments it is compared against;
// the validator compares everything in canonical (UTC) time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// HasOverlap reports whether candidate conflicts with any of the customer's
// existing appointments. Intervals are half-open: an appointment that starts
// exactly when another ends, or ends exactly when another starts, does not
// conflict.
//
// When candidateID is a persisted (non-empty) id, the matching record is
// skipped so that editing an appointment never collides with itself.
func HasOverlap(candidate Interval, candidateID string, others []models.Appointment) bool {
	for i := range others {
		other := &others[i]
		if candidateID != "" && other.ID == candidateID {
			continue
		}
		if candidate.Start.Before(other.End) && candidate.End.After(other.Start) {
			return true
		}
	}
	return false
}
