package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shuno-backend/middleware"
	"shuno-backend/services"
	"shuno-backend/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GetUsers lists every account (admin).
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.Users.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	utils.JSONList(c, http.StatusOK, users, len(users))
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := uc.Users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

type adminUserPayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required"`
	IsActive  *bool  `json:"isActive" binding:"required"`
}

// UpdateUser lets an admin change name, role and active flag. Setting
// isActive to false is the deactivation path.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload adminUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := uc.Users.AdminUpdate(id, payload.FirstName, payload.LastName, payload.Role, *payload.IsActive)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// GetProfile returns the authenticated user's own account.
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Users.GetByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

type profilePayload struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var payload profilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := uc.Users.UpdateProfile(middleware.UserID(c), payload.FirstName, payload.LastName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}
