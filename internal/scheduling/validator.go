package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"scheduling-app-server/internal/models"
)

// RejectReason identifies why a submission was refused. The set is closed:
// every validation failure is one of these, surfaced as data rather than an
// error, so callers can render it as a user-facing message.
type RejectReason string

const (
	RejectMissingFields          RejectReason = "missing_fields"
	RejectEndNotAfterStart       RejectReason = "end_not_after_start"
	RejectOutsideBusinessHours   RejectReason = "outside_business_hours"
	RejectInvalidContact         RejectReason = "invalid_contact"
	RejectOverlappingAppointment RejectReason = "overlapping_appointment"
)

// Rejection is a refused submission's outcome.
type Rejection struct {
	Reason  RejectReason `json:"reason"`
	Message string       `json:"message"`
}

var rejectionMessages = map[RejectReason]string{
	RejectMissingFields:          "Please fill out all fields.",
	RejectEndNotAfterStart:       "End time must be after start time.",
	RejectOutsideBusinessHours:   "Appointment must be within business hours (8:00 a.m. to 10:00 p.m. ET).",
	RejectInvalidContact:         "Invalid contact selection.",
	RejectOverlappingAppointment: "This customer has an overlapping appointment at this time.",
}

func reject(reason RejectReason) *Rejection {
	return &Rejection{Reason: reason, Message: rejectionMessages[reason]}
}

// ErrContactNotFound is returned by a ContactDirectory when no contact
// carries the requested name.
var ErrContactNotFound = errors.New("contact not found")

// AppointmentSource supplies a customer's existing appointments, fetched
// fresh on every validation; the validator never caches them. Start and End
// of the returned records must be canonical (UTC) instants.
type AppointmentSource interface {
	AppointmentsByCustomer(customerID string) ([]models.Appointment, error)
}

// ContactDirectory resolves a contact display name to its identifier.
type ContactDirectory interface {
	ContactIDByName(name string) (string, error)
}

// Submission carries the raw field values of an add or update request,
// dates and times still as strings the way a form posts them.
type Submission struct {
	ID          string
	Title       string
	Description string
	Location    string
	Type        string
	ContactName string
	StartDate   string // 2006-01-02
	StartTime   string // 15:04
	EndDate     string
	EndTime     string
	CustomerID  string
	UserID      string
	Timezone    *time.Location // caller's zone; nil means the host's zone
}

// Validator applies the full appointment acceptance sequence: field
// presence, interval sanity, business hours, contact resolution, overlap.
type Validator struct {
	appointments AppointmentSource
	contacts     ContactDirectory
}

func NewValidator(appointments AppointmentSource, contacts ContactDirectory) *Validator {
	return &Validator{appointments: appointments, contacts: contacts}
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Validate checks a submission and returns exactly one of three outcomes:
// an accepted candidate ready for the store (times already canonical), a
// Rejection naming the first failing rule, or an error when a collaborator
// read fails. A collaborator outage is never reported as a rejection.
//
// The checks run in a fixed order and the first failure wins, since the
// order decides which message the caller shows.
func (v *Validator) Validate(sub Submission) (*models.Appointment, *Rejection, error) {
	title := strings.TrimSpace(sub.Title)
	description := strings.TrimSpace(sub.Description)
	location := strings.TrimSpace(sub.Location)
	apptType := strings.TrimSpace(sub.Type)
	contactName := strings.TrimSpace(sub.ContactName)

	if title == "" || contactName == "" || sub.StartDate == "" || sub.StartTime == "" ||
		sub.EndDate == "" || sub.EndTime == "" || sub.CustomerID == "" || sub.UserID == "" ||
		apptType == "" {
		return nil, reject(RejectMissingFields), nil
	}

	zone := sub.Timezone
	if zone == nil {
		zone = time.Local
	}

	// An unparseable date or time is treated the same as an absent one; the
	// original form's pickers could not produce malformed input at all.
	start, ok := parseLocal(sub.StartDate, sub.StartTime, zone)
	if !ok {
		return nil, reject(RejectMissingFields), nil
	}
	end, ok := parseLocal(sub.EndDate, sub.EndTime, zone)
	if !ok {
		return nil, reject(RejectMissingFields), nil
	}

	if !end.After(start) {
		return nil, reject(RejectEndNotAfterStart), nil
	}

	if !IsWithinBusinessHours(start, end, zone) {
		return nil, reject(RejectOutsideBusinessHours), nil
	}

	contactID, err := v.contacts.ContactIDByName(contactName)
	if errors.Is(err, ErrContactNotFound) {
		return nil, reject(RejectInvalidContact), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve contact %q: %w", contactName, err)
	}

	existing, err := v.appointments.AppointmentsByCustomer(sub.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch appointments for customer %s: %w", sub.CustomerID, err)
	}

	candidate := Interval{
		Start: ToCanonical(start, zone),
		End:   ToCanonical(end, zone),
	}
	if HasOverlap(candidate, sub.ID, existing) {
		return nil, reject(RejectOverlappingAppointment), nil
	}

	appt := &models.Appointment{
		Title:       title,
		Description: description,
		Location:    location,
		Type:        apptType,
		Start:       candidate.Start,
		End:         candidate.End,
		CustomerID:  sub.CustomerID,
		UserID:      sub.UserID,
		ContactID:   contactID,
	}
	appt.ID = sub.ID
	return appt, nil, nil
}

// parseLocal builds a wall-clock time in zone from separate date and time
// strings.
func parseLocal(dateStr, timeStr string, zone *time.Location) (time.Time, bool) {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, zone), true
}
