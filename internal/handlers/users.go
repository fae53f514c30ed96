package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/utils"
)

// UserHandler handles user management requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetUsers lists all users (sanitized), the set appointment forms pick from.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("user_name asc").Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitize())
	}
	utils.Success(c, "Users fetched successfully", sanitized)
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// CreateUser adds a new user (admin only).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.User
	if err := h.DB.Where("user_name = ?", req.UserName).First(&existing).Error; err == nil {
		utils.BadRequest(c, "User with this username already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	user := models.User{UserName: req.UserName, Role: role}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}
	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}
