package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shuno-backend/middleware"
	"shuno-backend/models"
	"shuno-backend/services"
	"shuno-backend/store"
	"shuno-backend/utils"
)

type AuthController struct {
	Users      *services.UserService
	Tokens     store.TokenStore
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     zerolog.Logger
}

func NewAuthController(users *services.UserService, tokens store.TokenStore, secret string, logger zerolog.Logger) *AuthController {
	return &AuthController{
		Users:      users,
		Tokens:     tokens,
		Secret:     secret,
		AccessTTL:  24 * time.Hour,
		RefreshTTL: 30 * 24 * time.Hour,
		Logger:     logger,
	}
}

type registerPayload struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type revokePayload struct {
	TokenID      string `json:"tokenId"`
	RefreshToken string `json:"refreshToken"`
}

func (ac *AuthController) issueTokens(c *gin.Context, user *models.User) (gin.H, error) {
	access, err := utils.SignAccessToken(ac.Secret, user, ac.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateTokenHex(32)
	if err != nil {
		return nil, err
	}
	if err := ac.Tokens.SaveRefreshToken(c.Request.Context(), refresh, user.ID, ac.RefreshTTL); err != nil {
		return nil, err
	}
	return gin.H{
		"token":        access,
		"refreshToken": refresh,
		"user":         user,
	}, nil
}

// Register creates an account with the default user role.
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.Users.Register(payload.Email, payload.Password, payload.FirstName, payload.LastName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, "email already registered")
			return
		}
		ac.Logger.Error().Err(err).Msg("register failed")
		utils.JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	data, err := ac.issueTokens(c, user)
	if err != nil {
		ac.Logger.Error().Err(err).Msg("token issue failed")
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, data)
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := ac.Users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	data, err := ac.issueTokens(c, user)
	if err != nil {
		ac.Logger.Error().Err(err).Msg("token issue failed")
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, data)
}

// RefreshToken trades a valid refresh token for a new access token. The
// refresh token itself stays valid; rotate-token replaces it.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	user, ok := ac.userForRefresh(c)
	if !ok {
		return
	}

	access, err := utils.SignAccessToken(ac.Secret, user, ac.AccessTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": access, "user": user})
}

// RotateToken replaces the refresh token and issues a fresh access token.
func (ac *AuthController) RotateToken(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	userID, found, err := ac.Tokens.UserIDForRefreshToken(ctx, payload.RefreshToken)
	if err != nil || !found {
		utils.JSONError(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := ac.Users.GetByID(userID)
	if err != nil || !user.IsActive {
		utils.JSONError(c, http.StatusUnauthorized, "account unavailable")
		return
	}

	if err := ac.Tokens.DeleteRefreshToken(ctx, payload.RefreshToken); err != nil {
		ac.Logger.Warn().Err(err).Msg("failed to delete rotated refresh token")
	}

	data, err := ac.issueTokens(c, user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue tokens")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, data)
}

// RevokeToken lets an admin invalidate an access token id and/or a
// refresh token.
func (ac *AuthController) RevokeToken(c *gin.Context) {
	var payload revokePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.TokenID == "" && payload.RefreshToken == "" {
		utils.JSONError(c, http.StatusBadRequest, "tokenId or refreshToken required")
		return
	}

	ctx := c.Request.Context()
	if payload.TokenID != "" {
		if err := ac.Tokens.Revoke(ctx, payload.TokenID, ac.AccessTTL); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to revoke token")
			return
		}
	}
	if payload.RefreshToken != "" {
		if err := ac.Tokens.DeleteRefreshToken(ctx, payload.RefreshToken); err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to revoke refresh token")
			return
		}
	}
	utils.JSONMessage(c, http.StatusOK, "token revoked")
}

// Logout revokes the current access token and deletes the refresh token
// when one is provided.
func (ac *AuthController) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if tokenID := middleware.TokenID(c); tokenID != "" {
		if err := ac.Tokens.Revoke(ctx, tokenID, ac.AccessTTL); err != nil {
			ac.Logger.Warn().Err(err).Msg("failed to revoke access token on logout")
		}
	}

	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err == nil && payload.RefreshToken != "" {
		if err := ac.Tokens.DeleteRefreshToken(ctx, payload.RefreshToken); err != nil {
			ac.Logger.Warn().Err(err).Msg("failed to delete refresh token on logout")
		}
	}

	utils.JSONMessage(c, http.StatusOK, "logged out")
}

// CSRFToken issues a token the client echoes in X-Csrf-Token on mutations.
func (ac *AuthController) CSRFToken(c *gin.Context) {
	token, err := utils.GenerateTokenHex(16)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	if err := ac.Tokens.SaveCSRFToken(c.Request.Context(), token, time.Hour); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store token")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"csrfToken": token})
}

func (ac *AuthController) userForRefresh(c *gin.Context) (*models.User, bool) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	userID, found, err := ac.Tokens.UserIDForRefreshToken(c.Request.Context(), payload.RefreshToken)
	if err != nil || !found {
		utils.JSONError(c, http.StatusUnauthorized, "invalid refresh token")
		return nil, false
	}

	user, err := ac.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "account unavailable")
			return nil, false
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load account")
		return nil, false
	}
	if !user.IsActive {
		utils.JSONError(c, http.StatusUnauthorized, "account unavailable")
		return nil, false
	}
	return user, true
}
