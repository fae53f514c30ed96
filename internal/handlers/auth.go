package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/audit"
	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/middleware"
	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/store"
	"scheduling-app-server/internal/utils"
)

// ErrBadCredentials is returned by a CredentialVerifier when the username or
// password is wrong.
var ErrBadCredentials = errors.New("invalid username or password")

// CredentialVerifier checks a username/password pair and returns the matching
// user. Keeping it behind an interface means none of the login flow depends
// on how credentials are actually stored.
type CredentialVerifier interface {
	Verify(username, password string) (*models.User, error)
}

type dbCredentialVerifier struct {
	db *gorm.DB
}

// NewDBCredentialVerifier verifies credentials against the users table.
func NewDBCredentialVerifier(db *gorm.DB) CredentialVerifier {
	return &dbCredentialVerifier{db: db}
}

func (v *dbCredentialVerifier) Verify(username, password string) (*models.User, error) {
	var user models.User
	if err := v.db.Where("user_name = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Verifier CredentialVerifier
	Activity *audit.LoginLog
	Store    *store.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, verifier CredentialVerifier, activity *audit.LoginLog, st *store.Store) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Verifier: verifier, Activity: activity, Store: st}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpcomingNotice tells a freshly logged-in user whether an appointment of
// theirs starts within the next 15 minutes.
type UpcomingNotice struct {
	Found       bool             `json:"found"`
	Message     string           `json:"message"`
	Appointment *AppointmentView `json:"appointment,omitempty"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
	Upcoming     UpcomingNotice       `json:"upcoming"`
}

// Login authenticates a user, records the attempt in the activity log, and
// on success returns tokens plus the upcoming-appointment notice.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Verifier.Verify(req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			h.recordAttempt(req.UserName, false)
			utils.Unauthorized(c, "Invalid username or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	h.recordAttempt(req.UserName, true)

	accessToken, refreshTokenString, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&refreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, refreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user.Sanitize(),
		Upcoming:     h.upcomingNotice(user.ID),
	})
}

// upcomingNotice scans the user's appointments for one starting within the
// lookahead window. A failed read degrades to the "none" notice rather than
// failing the login.
func (h *AuthHandler) upcomingNotice(userID string) UpcomingNotice {
	appts, err := h.Store.AppointmentsByUser(userID)
	if err != nil {
		log.Printf("upcoming appointment scan: %v", err)
		return UpcomingNotice{Found: false, Message: "Unable to check for upcoming appointments."}
	}

	next := scheduling.FindSoonest(time.Now(), appts)
	if next == nil {
		return UpcomingNotice{
			Found:   false,
			Message: "You have no appointments within the next 15 minutes.",
		}
	}

	view := newAppointmentView(next, h.Cfg.DisplayTimezone)
	return UpcomingNotice{
		Found:       true,
		Message:     "You have an appointment soon!",
		Appointment: &view,
	}
}

func (h *AuthHandler) recordAttempt(username string, success bool) {
	if err := h.Activity.Record(username, success); err != nil {
		log.Printf("write login activity: %v", err)
	}
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(
		"refresh_token",
		value,
		maxAge,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken handles refreshing an access token using a refresh token,
// rotating the refresh token in the process.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshTokenString, err := c.Cookie("refresh_token")
	if err != nil || refreshTokenString == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		refreshTokenString = req.RefreshToken
	}

	claims, err := utils.ValidateToken(refreshTokenString, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?",
		refreshTokenString, claims.UserID, false, time.Now()).First(&storedToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to find user associated with token: "+err.Error())
		return
	}

	// Rotate: revoke the old token before issuing new ones.
	storedToken.IsRevoked = true
	h.DB.Save(&storedToken)

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens: "+err.Error())
		return
	}

	newRefreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&newRefreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store new refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, newRefreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout revokes the presented refresh token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshTokenString, _ := c.Cookie("refresh_token")
	if refreshTokenString == "" {
		var req LogoutRequest
		_ = c.ShouldBindJSON(&req)
		refreshTokenString = req.RefreshToken
	}
	if refreshTokenString == "" {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND is_revoked = ?", refreshTokenString, false).First(&storedToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already invalid is fine for logout.
			h.setRefreshCookie(c, "", -1)
			utils.Success(c, "Logout successful (token not found or already invalid).", nil)
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	storedToken.IsRevoked = true
	storedToken.ExpiresAt = time.Now()
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, "", -1)
	utils.Success(c, "Logout successful. Refresh token has been invalidated.", nil)
}

// GetProfile handles fetching the currently authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}
