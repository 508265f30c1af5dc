package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/preferences-api/internal/application/service"
	"github.com/sangkips/preferences-api/internal/presentation/http/dto/request"
	"github.com/sangkips/preferences-api/internal/presentation/http/dto/response"
)

// PreferencesHandler handles the user preference endpoints
type PreferencesHandler struct {
	generalService      *service.GeneralSettingsService
	notificationService *service.NotificationService
	themeService        *service.ThemeService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(
	generalService *service.GeneralSettingsService,
	notificationService *service.NotificationService,
	themeService *service.ThemeService,
) *PreferencesHandler {
	return &PreferencesHandler{
		generalService:      generalService,
		notificationService: notificationService,
		themeService:        themeService,
	}
}

// GetSettings returns language, timezone and locale
func (h *PreferencesHandler) GetSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	settings, err := h.generalService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, settings)
}

// UpdateSettings applies a partial general settings update
func (h *PreferencesHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	var req request.UpdateGeneralSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	settings, err := h.generalService.UpdateSettings(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, settings)
}

// GetNotifications returns the notification catalog and the user's toggles
func (h *PreferencesHandler) GetNotifications(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	settings, err := h.notificationService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, settings)
}

// UpdateNotifications applies the known toggles of the request
func (h *PreferencesHandler) UpdateNotifications(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	var req request.UpdateNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	prefs, err := h.notificationService.UpdatePreferences(c.Request.Context(), userID, req.Preferences)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, prefs)
}

// GetTheme returns mode and accent colour
func (h *PreferencesHandler) GetTheme(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	theme, err := h.themeService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, theme)
}

// UpdateTheme applies a partial theme update
func (h *PreferencesHandler) UpdateTheme(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		response.Unauthorized(c)
		return
	}

	var req request.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	theme, err := h.themeService.UpdateSettings(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, theme)
}
