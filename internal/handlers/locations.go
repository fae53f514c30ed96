package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/utils"
)

// LocationHandler serves the seeded country and division reference data.
type LocationHandler struct {
	DB *gorm.DB
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{DB: db}
}

// GetCountries lists all countries.
func (h *LocationHandler) GetCountries(c *gin.Context) {
	var countries []models.Country
	if err := h.DB.Order("name asc").Find(&countries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch countries: "+err.Error())
		return
	}
	utils.Success(c, "Countries fetched successfully", countries)
}

// GetDivisionsByCountry lists the first-level divisions of one country.
func (h *LocationHandler) GetDivisionsByCountry(c *gin.Context) {
	countryID := c.Param("id")

	var country models.Country
	if err := h.DB.First(&country, "id = ?", countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Country not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var divisions []models.Division
	if err := h.DB.Where("country_id = ?", countryID).Order("name asc").Find(&divisions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch divisions: "+err.Error())
		return
	}
	utils.Success(c, "Divisions fetched successfully", divisions)
}
