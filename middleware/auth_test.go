package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuno-backend/models"
	"shuno-backend/store"
	"shuno-backend/utils"
)

const testSecret = "test-secret"

func adminRouter(tokens store.TokenStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin", RequireAuth(testSecret, tokens), RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "userId": UserID(c)})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := adminRouter(store.NewMemoryTokenStore())
	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	r := adminRouter(store.NewMemoryTokenStore())
	w := doGet(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminRejectsUserRole(t *testing.T) {
	r := adminRouter(store.NewMemoryTokenStore())
	token, err := utils.SignAccessToken(testSecret, &models.User{ID: 5, Email: "u@x.y", Role: models.RoleUser}, time.Hour)
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := adminRouter(store.NewMemoryTokenStore())
	token, err := utils.SignAccessToken(testSecret, &models.User{ID: 9, Email: "a@x.y", Role: models.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":9`)
}

func TestRequireAuthRevokedToken(t *testing.T) {
	tokens := store.NewMemoryTokenStore()
	r := adminRouter(tokens)

	token, err := utils.SignAccessToken(testSecret, &models.User{ID: 9, Email: "a@x.y", Role: models.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	claims, err := utils.ParseAccessToken(testSecret, token)
	require.NoError(t, err)
	require.NoError(t, tokens.Revoke(context.Background(), claims.ID, time.Hour))

	w := doGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCSRFBlocksMutationWithoutToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := store.NewMemoryTokenStore()
	r := gin.New()
	r.POST("/things", CSRF(tokens), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/things", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, tokens.SaveCSRFToken(context.Background(), "tok123", time.Minute))
	req = httptest.NewRequest(http.MethodPost, "/things", nil)
	req.Header.Set("X-Csrf-Token", "tok123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
}
