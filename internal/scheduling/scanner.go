package scheduling

import (
	"time"

	"scheduling-app-server/internal/models"
)

// UpcomingWindow is the lookahead used to decide whether an appointment is
// "upcoming" when a user logs in.
const UpcomingWindow = 15 * time.Minute

// FindSoonest returns the appointment with the earliest start inside
// [now, now+UpcomingWindow], both ends inclusive, or nil when none
// qualifies. Ties go to the first qualifying appointment encountered.
func FindSoonest(now time.Time, appointments []models.Appointment) *models.Appointment {
	var next *models.Appointment
	for i := range appointments {
		appt := &appointments[i]
		until := appt.Start.Sub(now)
		if until < 0 || until > UpcomingWindow {
			continue
		}
		if next == nil || appt.Start.Before(next.Start) {
			next = appt
		}
	}
	return next
}
