package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tattoo-studio-server/internal/storage"
	"tattoo-studio-server/internal/utils"
)

const defaultTheme = "light"

// PreferencesHandler stores UI preferences next to the appointment snapshot.
type PreferencesHandler struct {
	KV storage.KeyValue
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(kv storage.KeyValue) *PreferencesHandler {
	return &PreferencesHandler{KV: kv}
}

// ThemeRequest sets the display theme.
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// GetTheme returns the stored theme, light when none was saved.
func (h *PreferencesHandler) GetTheme(c *gin.Context) {
	theme, err := h.KV.Get(c.Request.Context(), storage.ThemeKey)
	if errors.Is(err, storage.ErrNotFound) {
		theme = defaultTheme
	} else if err != nil {
		utils.InternalServerError(c, "Failed to load theme: "+err.Error())
		return
	}
	utils.Success(c, "Theme retrieved successfully", gin.H{"theme": theme})
}

// UpdateTheme saves the display theme.
func (h *PreferencesHandler) UpdateTheme(c *gin.Context) {
	var req ThemeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := h.KV.Set(c.Request.Context(), storage.ThemeKey, req.Theme); err != nil {
		utils.InternalServerError(c, "Failed to save theme: "+err.Error())
		return
	}
	utils.Success(c, "Theme updated successfully", gin.H{"theme": req.Theme})
}
