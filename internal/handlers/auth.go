package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tattoo-studio-server/internal/config"
	"tattoo-studio-server/internal/logging"
	"tattoo-studio-server/internal/middleware"
	"tattoo-studio-server/internal/models"
	"tattoo-studio-server/internal/store"
	"tattoo-studio-server/internal/utils"
)

// AuthHandler handles the admin login session.
type AuthHandler struct {
	Admin  *models.Admin
	Store  *store.Store
	Cfg    *config.Config
	Logger *logging.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(admin *models.Admin, s *store.Store, cfg *config.Config, logger *logging.Logger) *AuthHandler {
	return &AuthHandler{Admin: admin, Store: s, Cfg: cfg, Logger: logger}
}

// LoginRequest represents the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
}

// Login handles admin login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !h.Admin.Authenticate(req.Username, req.Password) {
		h.Logger.Warn("admin login failed", "username", req.Username, "request_id", middleware.GetRequestID(c))
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	token, expiresAt, err := utils.GenerateAccessToken(h.Admin, h.Cfg, time.Now())
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	h.Logger.Info("admin logged in", "username", h.Admin.Username)
	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Username:    h.Admin.Username,
		Role:        string(models.RoleAdmin),
	})
}

// Logout ends the admin session. The admin filter does not outlive it.
// Tokens are stateless, so the client discards its own.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Store.ResetFilter()
	utils.Success(c, "Logout successful", nil)
}
