package store

import (
	"time"

	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
)

// Store wraps the database with the read paths the scheduling core needs
// (it satisfies scheduling.AppointmentSource and scheduling.ContactDirectory)
// plus the reporting queries.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AppointmentsByCustomer returns every appointment for a customer with
// canonical (UTC) start and end, ordered by start. Fetched fresh per call so
// the overlap check always sees the latest written state.
func (s *Store) AppointmentsByCustomer(customerID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Raw(
		`SELECT * FROM appointments WHERE customer_id = ? ORDER BY start`,
		customerID,
	).Scan(&appts).Error
	return appts, err
}

// AppointmentsByUser returns every appointment booked by a user, ordered by
// start; the login notification scan runs over this set.
func (s *Store) AppointmentsByUser(userID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.Raw(
		`SELECT * FROM appointments WHERE user_id = ? ORDER BY start`,
		userID,
	).Scan(&appts).Error
	return appts, err
}

// ContactIDByName resolves a contact display name to its identifier,
// returning scheduling.ErrContactNotFound when no contact carries the name.
func (s *Store) ContactIDByName(name string) (string, error) {
	var id string
	result := s.db.Raw(`SELECT id FROM contacts WHERE name = ?`, name).Scan(&id)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", scheduling.ErrContactNotFound
	}
	return id, nil
}

// TypeMonthCount is one row of the appointments-by-type-and-month report.
type TypeMonthCount struct {
	Type  string `json:"type"`
	Month string `json:"month"`
	Count int    `json:"count"`
}

// AppointmentCountsByTypeAndMonth counts appointments grouped by type and
// the month name of their start.
func (s *Store) AppointmentCountsByTypeAndMonth() ([]TypeMonthCount, error) {
	var rows []TypeMonthCount
	err := s.db.Raw(
		`SELECT type, MONTHNAME(start) AS month, COUNT(*) AS count
		   FROM appointments
		  GROUP BY type, month`,
	).Scan(&rows).Error
	return rows, err
}

// ContactScheduleEntry is one appointment on a contact's schedule.
type ContactScheduleEntry struct {
	ContactName   string    `json:"contactName"`
	AppointmentID string    `json:"appointmentId"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	CustomerID    string    `json:"customerId"`
}

// ContactSchedules returns every appointment joined with its contact,
// ordered per contact by start.
func (s *Store) ContactSchedules() ([]ContactScheduleEntry, error) {
	var rows []ContactScheduleEntry
	err := s.db.Raw(
		`SELECT c.name AS contact_name, a.id AS appointment_id, a.title, a.type,
		        a.description, a.start, a.end, a.customer_id
		   FROM appointments a
		   JOIN contacts c ON a.contact_id = c.id
		  ORDER BY c.name, a.start`,
	).Scan(&rows).Error
	return rows, err
}

// CustomerAppointmentCount is one row of the appointments-per-customer
// report. Customers without appointments appear with a zero count.
type CustomerAppointmentCount struct {
	CustomerName string `json:"customerName"`
	Count        int    `json:"count"`
}

// AppointmentCountsByCustomer counts appointments per customer.
func (s *Store) AppointmentCountsByCustomer() ([]CustomerAppointmentCount, error) {
	var rows []CustomerAppointmentCount
	err := s.db.Raw(
		`SELECT cu.name AS customer_name, COUNT(a.id) AS count
		   FROM customers cu
		   LEFT JOIN appointments a ON cu.id = a.customer_id
		  GROUP BY cu.name`,
	).Scan(&rows).Error
	return rows, err
}
