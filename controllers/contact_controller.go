package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuno-backend/config"
	"shuno-backend/models"
	"shuno-backend/utils"
)

// SubmitContact stores a contact form message. Public, no account needed.
func SubmitContact(c *gin.Context) {
	var message models.ContactMessage
	if err := c.ShouldBindJSON(&message); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Create(&message).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save message")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, message)
}

// GetContacts lists stored contact messages, newest first (admin).
func GetContacts(c *gin.Context) {
	var messages []models.ContactMessage
	if err := config.DB.Order("id DESC").Find(&messages).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load messages")
		return
	}
	utils.JSONList(c, http.StatusOK, messages, len(messages))
}

// DeleteContact removes a contact message (admin).
func DeleteContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete message")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "message not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "message deleted")
}
