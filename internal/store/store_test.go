package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"scheduling-app-server/internal/scheduling"
)

func newMockDB(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return New(db), mock
}

func TestAppointmentsByCustomer(t *testing.T) {
	st, mock := newMockDB(t)

	start := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM appointments WHERE customer_id = \? ORDER BY start`).
		WithArgs("cust-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "start", "end", "customer_id"}).
			AddRow("a1", "Planning Session", start, start.Add(time.Hour), "cust-1"))

	appts, err := st.AppointmentsByCustomer("cust-1")
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "a1", appts[0].ID)
	assert.True(t, appts[0].Start.Equal(start))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactIDByName(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM contacts WHERE name = \?`).
		WithArgs("Anika Costa").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("contact-1"))

	id, err := st.ContactIDByName("Anika Costa")
	require.NoError(t, err)
	assert.Equal(t, "contact-1", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactIDByNameNotFound(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM contacts WHERE name = \?`).
		WithArgs("Nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := st.ContactIDByName("Nobody")
	assert.ErrorIs(t, err, scheduling.ErrContactNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCountsByTypeAndMonth(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT type, MONTHNAME\(start\) AS month, COUNT\(\*\) AS count`).
		WillReturnRows(sqlmock.NewRows([]string{"type", "month", "count"}).
			AddRow("Planning", "June", 3).
			AddRow("Briefing", "July", 1))

	rows, err := st.AppointmentCountsByTypeAndMonth()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TypeMonthCount{Type: "Planning", Month: "June", Count: 3}, rows[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSchedules(t *testing.T) {
	st, mock := newMockDB(t)

	start := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`JOIN contacts c ON a\.contact_id = c\.id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"contact_name", "appointment_id", "title", "type", "description", "start", "end", "customer_id",
		}).AddRow("Anika Costa", "a1", "Planning Session", "Planning", "", start, start.Add(time.Hour), "cust-1"))

	rows, err := st.ContactSchedules()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Anika Costa", rows[0].ContactName)
	assert.Equal(t, "a1", rows[0].AppointmentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCountsByCustomer(t *testing.T) {
	st, mock := newMockDB(t)

	mock.ExpectQuery(`LEFT JOIN appointments a ON cu\.id = a\.customer_id`).
		WillReturnRows(sqlmock.NewRows([]string{"customer_name", "count"}).
			AddRow("Daddy Warbucks", 2).
			AddRow("Dudley Do-Right", 0))

	rows, err := st.AppointmentCountsByCustomer()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CustomerAppointmentCount{CustomerName: "Dudley Do-Right", Count: 0}, rows[1])
	require.NoError(t, mock.ExpectationsWereMet())
}
