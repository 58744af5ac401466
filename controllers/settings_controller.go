package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuno-backend/models"
	"shuno-backend/services"
	"shuno-backend/utils"
)

type SettingsController struct {
	Settings    *services.SettingsService
	AutoConfirm services.PendingConfirmer
}

func NewSettingsController(settings *services.SettingsService, autoConfirm services.PendingConfirmer) *SettingsController {
	return &SettingsController{Settings: settings, AutoConfirm: autoConfirm}
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.Settings.Get()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var update models.SiteSettings
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := sc.Settings.Update(&update)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

// GetAutoConfirm reports whether the auto-confirm policy is enabled.
func (sc *SettingsController) GetAutoConfirm(c *gin.Context) {
	settings, err := sc.Settings.Get()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"enabled": settings.AutoConfirmEnabled})
}

type autoConfirmPayload struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (sc *SettingsController) UpdateAutoConfirm(c *gin.Context) {
	var payload autoConfirmPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := sc.Settings.SetAutoConfirm(*payload.Enabled)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"enabled": settings.AutoConfirmEnabled})
}

// TriggerAutoConfirm runs the confirm batch immediately, regardless of
// whether the periodic worker is enabled.
func (sc *SettingsController) TriggerAutoConfirm(c *gin.Context) {
	confirmed, err := sc.AutoConfirm.ConfirmPending(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to confirm pending orders")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"confirmed": confirmed})
}
