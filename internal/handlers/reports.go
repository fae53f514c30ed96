package handlers

import (
	"github.com/gin-gonic/gin"

	"scheduling-app-server/internal/store"
	"scheduling-app-server/internal/utils"
)

// ReportHandler serves the three aggregate views: appointment counts by type
// and month, per-contact schedules, and appointment counts per customer.
type ReportHandler struct {
	Store *store.Store
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(st *store.Store) *ReportHandler {
	return &ReportHandler{Store: st}
}

// GetAppointmentsByTypeAndMonth reports appointment counts grouped by type
// and start month.
func (h *ReportHandler) GetAppointmentsByTypeAndMonth(c *gin.Context) {
	rows, err := h.Store.AppointmentCountsByTypeAndMonth()
	if err != nil {
		utils.InternalServerError(c, "Failed to build report: "+err.Error())
		return
	}
	utils.Success(c, "Report fetched successfully", rows)
}

// GetContactSchedules reports every contact's appointment schedule in order.
func (h *ReportHandler) GetContactSchedules(c *gin.Context) {
	rows, err := h.Store.ContactSchedules()
	if err != nil {
		utils.InternalServerError(c, "Failed to build report: "+err.Error())
		return
	}
	utils.Success(c, "Report fetched successfully", rows)
}

// GetAppointmentsByCustomer reports appointment counts per customer.
func (h *ReportHandler) GetAppointmentsByCustomer(c *gin.Context) {
	rows, err := h.Store.AppointmentCountsByCustomer()
	if err != nil {
		utils.InternalServerError(c, "Failed to build report: "+err.Error())
		return
	}
	utils.Success(c, "Report fetched successfully", rows)
}
