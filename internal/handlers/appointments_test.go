package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	st := store.New(db)
	cfg := &config.Config{DisplayTimezone: time.UTC}
	h := NewAppointmentHandler(db, cfg, scheduling.NewValidator(st, st), st)

	r := gin.New()
	r.POST("/appointments", h.CreateAppointment)
	return r, mock
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func validRequest() AppointmentRequest {
	return AppointmentRequest{
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
		Timezone:    "America/New_York",
	}
}

func TestCreateAppointmentRejectionIsConflict(t *testing.T) {
	r, mock := newTestRouter(t)

	// Missing fields fail before any database read.
	w := postJSON(t, r, "/appointments", AppointmentRequest{})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), string(scheduling.RejectMissingFields))
	assert.Contains(t, w.Body.String(), "Please fill out all fields.")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentUnknownTimezoneIsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	req := validRequest()
	req.Timezone = "Mars/Olympus_Mons"
	w := postJSON(t, r, "/appointments", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentStoreOutageIsServiceUnavailable(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT id FROM contacts WHERE name = \?`).
		WithArgs("Anika Costa").
		WillReturnError(errors.New("connection refused"))

	w := postJSON(t, r, "/appointments", validRequest())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Scheduling data unavailable")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentAcceptedIsCreated(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(`SELECT id FROM contacts WHERE name = \?`).
		WithArgs("Anika Costa").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("contact-1"))
	mock.ExpectQuery(`SELECT \* FROM appointments WHERE customer_id = \? ORDER BY start`).
		WithArgs("cust-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `appointments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := postJSON(t, r, "/appointments", validRequest())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Appointment added!")
	require.NoError(t, mock.ExpectationsWereMet())
}
