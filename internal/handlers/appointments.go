package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/middleware"
	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/store"
	"scheduling-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Validator *scheduling.Validator
	Store     *store.Store
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config, validator *scheduling.Validator, st *store.Store) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg, Validator: validator, Store: st}
}

// AppointmentRequest carries the raw field values of an add or update
// submission, the way the booking form posts them. Times are wall-clock
// strings in the named timezone (or the server's display zone when omitted).
type AppointmentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	ContactName string `json:"contactName"`
	StartDate   string `json:"startDate"` // 2006-01-02
	StartTime   string `json:"startTime"` // 15:04
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime"`
	CustomerID  string `json:"customerId"`
	UserID      string `json:"userId"`
	Timezone    string `json:"timezone"`
}

// AppointmentView is the appointment shape returned to clients, times
// rendered in the requested display zone with the contact name joined in.
type AppointmentView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CustomerID  string    `json:"customerId"`
	UserID      string    `json:"userId"`
	ContactID   string    `json:"contactId"`
	ContactName string    `json:"contactName"`
}

func newAppointmentView(a *models.Appointment, zone *time.Location) AppointmentView {
	return AppointmentView{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Type:        a.Type,
		Start:       scheduling.FromCanonical(a.Start, zone),
		End:         scheduling.FromCanonical(a.End, zone),
		CustomerID:  a.CustomerID,
		UserID:      a.UserID,
		ContactID:   a.ContactID,
		ContactName: a.Contact.Name,
	}
}

// displayZone resolves the zone appointment times are rendered in: the tz
// query parameter when present, the configured display zone otherwise.
func (h *AppointmentHandler) displayZone(c *gin.Context) (*time.Location, bool) {
	name := c.Query("tz")
	if name == "" {
		return h.Cfg.DisplayTimezone, true
	}
	zone, err := time.LoadLocation(name)
	if err != nil {
		utils.BadRequest(c, "Unknown timezone: "+name)
		return nil, false
	}
	return zone, true
}

// submission builds the validator input from a request body.
func (h *AppointmentHandler) submission(c *gin.Context, req *AppointmentRequest, id string) (scheduling.Submission, bool) {
	zone := h.Cfg.DisplayTimezone
	if req.Timezone != "" {
		var err error
		zone, err = time.LoadLocation(req.Timezone)
		if err != nil {
			utils.BadRequest(c, "Unknown timezone: "+req.Timezone)
			return scheduling.Submission{}, false
		}
	}
	return scheduling.Submission{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		ContactName: req.ContactName,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		EndDate:     req.EndDate,
		EndTime:     req.EndTime,
		CustomerID:  req.CustomerID,
		UserID:      req.UserID,
		Timezone:    zone,
	}, true
}

// validate runs the scheduling validator and writes the rejection or outage
// response itself; callers proceed only when a candidate comes back.
func (h *AppointmentHandler) validate(c *gin.Context, sub scheduling.Submission) *models.Appointment {
	candidate, rejection, err := h.Validator.Validate(sub)
	if err != nil {
		utils.ServiceUnavailable(c, "Scheduling data unavailable: "+err.Error())
		return nil
	}
	if rejection != nil {
		utils.Conflict(c, rejection.Message, rejection)
		return nil
	}
	return candidate
}

// CreateAppointment validates and stores a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	sub, ok := h.submission(c, &req, "")
	if !ok {
		return
	}
	candidate := h.validate(c, sub)
	if candidate == nil {
		return
	}

	if err := h.DB.Create(candidate).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	zone := sub.Timezone
	candidate.Contact.Name = sub.ContactName
	utils.Created(c, "Appointment added!", newAppointmentView(candidate, zone))
}

// UpdateAppointment validates and applies changes to an existing appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id := c.Param("id")

	var existing models.Appointment
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	sub, ok := h.submission(c, &req, id)
	if !ok {
		return
	}
	candidate := h.validate(c, sub)
	if candidate == nil {
		return
	}

	existing.Title = candidate.Title
	existing.Description = candidate.Description
	existing.Location = candidate.Location
	existing.Type = candidate.Type
	existing.Start = candidate.Start
	existing.End = candidate.End
	existing.CustomerID = candidate.CustomerID
	existing.UserID = candidate.UserID
	existing.ContactID = candidate.ContactID

	if err := h.DB.Save(&existing).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	existing.Contact.Name = sub.ContactName
	utils.Success(c, "Appointment updated!", newAppointmentView(&existing, sub.Timezone))
}

// GetAppointments lists all appointments with contact names, times rendered
// in the display zone.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	zone, ok := h.displayZone(c)
	if !ok {
		return
	}

	var appts []models.Appointment
	if err := h.DB.Preload("Contact").Order("start asc").Find(&appts).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	views := make([]AppointmentView, 0, len(appts))
	for i := range appts {
		views = append(views, newAppointmentView(&appts[i], zone))
	}
	utils.Success(c, "Appointments fetched successfully", views)
}

// GetAppointmentByID fetches a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	zone, ok := h.displayZone(c)
	if !ok {
		return
	}

	var appt models.Appointment
	if err := h.DB.Preload("Contact").First(&appt, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment fetched successfully", newAppointmentView(&appt, zone))
}

// DeleteAppointment removes an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	result := h.DB.Delete(&models.Appointment{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.Success(c, "Appointment deleted!", nil)
}

// GetUpcomingAppointment reruns the login-time proximity check on demand for
// the authenticated user.
func (h *AppointmentHandler) GetUpcomingAppointment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	zone, ok := h.displayZone(c)
	if !ok {
		return
	}

	appts, err := h.Store.AppointmentsByUser(userID)
	if err != nil {
		utils.ServiceUnavailable(c, "Scheduling data unavailable: "+err.Error())
		return
	}

	next := scheduling.FindSoonest(time.Now(), appts)
	if next == nil {
		utils.Success(c, "No Upcoming Appointments", UpcomingNotice{
			Found:   false,
			Message: "You have no appointments within the next 15 minutes.",
		})
		return
	}

	view := newAppointmentView(next, zone)
	utils.Success(c, "You have an appointment soon!", UpcomingNotice{
		Found:       true,
		Message:     "You have an appointment soon!",
		Appointment: &view,
	})
}
