package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/utils"
)

// CustomerHandler handles customer related requests.
type CustomerHandler struct {
	DB *gorm.DB
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{DB: db}
}

// CustomerRequest represents the request body for creating or updating a customer.
type CustomerRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	DivisionID string `json:"divisionId" binding:"required"`
}

// GetCustomers lists all customers with their division and country names.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	var views []models.CustomerView
	err := h.DB.Table("customers cu").
		Select("cu.*, d.name AS division_name, co.name AS country_name").
		Joins("JOIN divisions d ON cu.division_id = d.id").
		Joins("JOIN countries co ON d.country_id = co.id").
		Scan(&views).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch customers: "+err.Error())
		return
	}
	utils.Success(c, "Customers fetched successfully", views)
}

// GetCustomerByID fetches a single customer.
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Customer not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Customer fetched successfully", customer)
}

// CreateCustomer adds a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !h.divisionExists(c, req.DivisionID) {
		return
	}

	customer := models.Customer{
		Name:       req.Name,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		DivisionID: req.DivisionID,
	}
	if err := h.DB.Create(&customer).Error; err != nil {
		utils.InternalServerError(c, "Failed to create customer: "+err.Error())
		return
	}

	utils.Created(c, "Customer added!", customer)
}

// UpdateCustomer applies changes to an existing customer.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Customer not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req CustomerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !h.divisionExists(c, req.DivisionID) {
		return
	}

	customer.Name = req.Name
	customer.Address = req.Address
	customer.PostalCode = req.PostalCode
	customer.Phone = req.Phone
	customer.DivisionID = req.DivisionID

	if err := h.DB.Save(&customer).Error; err != nil {
		utils.InternalServerError(c, "Failed to update customer: "+err.Error())
		return
	}

	utils.Success(c, "Customer updated!", customer)
}

// DeleteCustomer removes a customer and all of the customer's appointments
// first, mirroring the foreign key relationship between the tables.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")

	var customer models.Customer
	if err := h.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Customer not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Appointment{}, "customer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete customer: "+err.Error())
		return
	}

	utils.Success(c, "Customer and associated appointments deleted!", nil)
}

func (h *CustomerHandler) divisionExists(c *gin.Context, divisionID string) bool {
	var division models.Division
	if err := h.DB.First(&division, "id = ?", divisionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.BadRequest(c, "Unknown division")
		} else {
			utils.InternalServerError(c, "Database error verifying division: "+err.Error())
		}
		return false
	}
	return true
}
