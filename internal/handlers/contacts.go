package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/utils"
)

// ContactHandler handles contact directory requests.
type ContactHandler struct {
	DB *gorm.DB
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{DB: db}
}

// GetContacts lists all contacts, the set appointment forms pick from.
func (h *ContactHandler) GetContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := h.DB.Order("name asc").Find(&contacts).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch contacts: "+err.Error())
		return
	}
	utils.Success(c, "Contacts fetched successfully", contacts)
}

// ContactRequest represents the request body for creating a contact.
type ContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

// CreateContact adds a contact to the directory (admin only).
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	contact := models.Contact{Name: req.Name, Email: req.Email}
	if err := h.DB.Create(&contact).Error; err != nil {
		utils.InternalServerError(c, "Failed to create contact: "+err.Error())
		return
	}
	utils.Created(c, "Contact added!", contact)
}
