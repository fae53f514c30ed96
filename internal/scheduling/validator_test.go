package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-app-server/internal/models"
)

type fakeSource struct {
	appts []models.Appointment
	err   error
}

func (f *fakeSource) AppointmentsByCustomer(customerID string) ([]models.Appointment, error) {
	return f.appts, f.err
}

type fakeDirectory struct {
	ids map[string]string
	err error
}

func (f *fakeDirectory) ContactIDByName(name string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	id, ok := f.ids[name]
	if !ok {
		return "", ErrContactNotFound
	}
	return id, nil
}

func newTestValidator(src *fakeSource, dir *fakeDirectory) *Validator {
	if src == nil {
		src = &fakeSource{}
	}
	if dir == nil {
		dir = &fakeDirectory{ids: map[string]string{"Anika Costa": "contact-1"}}
	}
	return NewValidator(src, dir)
}

// A complete, in-hours submission in Eastern time.
func validSubmission(t *testing.T) Submission {
	t.Helper()
	return Submission{
		Title:       "Planning Session",
		Description: "Quarterly planning",
		Location:    "Phoenix",
		Type:        "Planning",
		ContactName: "Anika Costa",
		StartDate:   "2024-06-10",
		StartTime:   "09:30",
		EndDate:     "2024-06-10",
		EndTime:     "10:30",
		CustomerID:  "cust-1",
		UserID:      "user-1",
		Timezone:    mustZone(t, "America/New_York"),
	}
}

func TestValidateAcceptsAndCanonicalizes(t *testing.T) {
	v := newTestValidator(nil, nil)

	appt, rej, err := v.Validate(validSubmission(t))
	require.NoError(t, err)
	require.Nil(t, rej)
	require.NotNil(t, appt)

	// 09:30 Eastern in June is 13:30 UTC.
	assert.Equal(t, time.Date(2024, 6, 10, 13, 30, 0, 0, time.UTC), appt.Start)
	assert.Equal(t, time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC), appt.End)
	assert.Equal(t, "Planning Session", appt.Title)
	assert.Equal(t, "contact-1", appt.ContactID)
	assert.Equal(t, "cust-1", appt.CustomerID)
	assert.Equal(t, "user-1", appt.UserID)
	assert.Empty(t, appt.ID)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	v := newTestValidator(nil, nil)

	blank := func(mutate func(*Submission)) Submission {
		sub := validSubmission(t)
		mutate(&sub)
		return sub
	}

	cases := map[string]Submission{
		"title":      blank(func(s *Submission) { s.Title = "  " }),
		"contact":    blank(func(s *Submission) { s.ContactName = "" }),
		"start date": blank(func(s *Submission) { s.StartDate = "" }),
		"start time": blank(func(s *Submission) { s.StartTime = "" }),
		"end date":   blank(func(s *Submission) { s.EndDate = "" }),
		"end time":   blank(func(s *Submission) { s.EndTime = "" }),
		"customer":   blank(func(s *Submission) { s.CustomerID = "" }),
		"user":       blank(func(s *Submission) { s.UserID = "" }),
		"type":       blank(func(s *Submission) { s.Type = "" }),
	}
	for name, sub := range cases {
		appt, rej, err := v.Validate(sub)
		require.NoError(t, err, name)
		require.NotNil(t, rej, name)
		assert.Equal(t, RejectMissingFields, rej.Reason, name)
		assert.Nil(t, appt, name)
	}
}

func TestValidateTreatsMalformedDateAsMissing(t *testing.T) {
	v := newTestValidator(nil, nil)
	sub := validSubmission(t)
	sub.StartDate = "10/06/2024"

	_, rej, err := v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectMissingFields, rej.Reason)
}

func TestValidateRejectsEndNotAfterStart(t *testing.T) {
	v := newTestValidator(nil, nil)

	sub := validSubmission(t)
	sub.EndTime = sub.StartTime // end == start
	_, rej, err := v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectEndNotAfterStart, rej.Reason)

	sub = validSubmission(t)
	sub.EndTime = "09:00" // end < start
	_, rej, err = v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectEndNotAfterStart, rej.Reason)
}

func TestValidateRejectsOutsideBusinessHours(t *testing.T) {
	v := newTestValidator(nil, nil)

	// 09:00-10:00 UTC in June is 05:00-06:00 Eastern, before open.
	sub := validSubmission(t)
	sub.Timezone = time.UTC
	sub.StartTime = "09:00"
	sub.EndTime = "10:00"

	_, rej, err := v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectOutsideBusinessHours, rej.Reason)
}

func TestValidateRejectsUnknownContact(t *testing.T) {
	v := newTestValidator(nil, &fakeDirectory{ids: map[string]string{}})

	_, rej, err := v.Validate(validSubmission(t))
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectInvalidContact, rej.Reason)
}

func TestValidateRejectsOverlappingAppointment(t *testing.T) {
	// Existing appointment 09:00-10:00 Eastern, stored canonical.
	existing := appt("a1",
		time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC))
	v := newTestValidator(&fakeSource{appts: []models.Appointment{existing}}, nil)

	// Candidate 09:30-10:30 Eastern for the same customer.
	_, rej, err := v.Validate(validSubmission(t))
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectOverlappingAppointment, rej.Reason)
}

func TestValidateAllowsEditingOwnSlot(t *testing.T) {
	existing := appt("a5",
		time.Date(2024, 6, 10, 13, 30, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC))
	v := newTestValidator(&fakeSource{appts: []models.Appointment{existing}}, nil)

	sub := validSubmission(t)
	sub.ID = "a5" // resubmit the same interval for the same record

	apptOut, rej, err := v.Validate(sub)
	require.NoError(t, err)
	assert.Nil(t, rej)
	require.NotNil(t, apptOut)
	assert.Equal(t, "a5", apptOut.ID)
}

func TestValidateBackToBackIsAccepted(t *testing.T) {
	// Existing 09:00-09:30 Eastern; candidate starts exactly at 09:30.
	existing := appt("a1",
		time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 13, 30, 0, 0, time.UTC))
	v := newTestValidator(&fakeSource{appts: []models.Appointment{existing}}, nil)

	apptOut, rej, err := v.Validate(validSubmission(t))
	require.NoError(t, err)
	assert.Nil(t, rej)
	assert.NotNil(t, apptOut)
}

func TestValidateSurfacesCollaboratorFailures(t *testing.T) {
	boom := errors.New("connection refused")

	// Directory outage is an error, not a rejection.
	v := newTestValidator(nil, &fakeDirectory{err: boom})
	apptOut, rej, err := v.Validate(validSubmission(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rej)
	assert.Nil(t, apptOut)

	// Same for the appointment source.
	v = newTestValidator(&fakeSource{err: boom}, nil)
	apptOut, rej, err = v.Validate(validSubmission(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rej)
	assert.Nil(t, apptOut)
}

// The first failing check wins: a submission that is both missing a field
// and out of hours reports the missing field.
func TestValidateCheckOrder(t *testing.T) {
	v := newTestValidator(nil, &fakeDirectory{ids: map[string]string{}})

	sub := validSubmission(t)
	sub.Title = ""
	sub.Timezone = time.UTC
	sub.StartTime = "02:00"
	sub.EndTime = "01:00"
	sub.ContactName = "Nobody"

	_, rej, err := v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectMissingFields, rej.Reason)

	// With the field restored, the interval check fires before hours.
	sub.Title = "x"
	_, rej, err = v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectEndNotAfterStart, rej.Reason)

	// With a sane interval, hours fire before contact resolution.
	// 05:00-06:00 UTC in June is 01:00-02:00 Eastern, well before open.
	sub.StartTime = "05:00"
	sub.EndTime = "06:00"
	_, rej, err = v.Validate(sub)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectOutsideBusinessHours, rej.Reason)
}
