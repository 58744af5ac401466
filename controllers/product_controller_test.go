package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shuno-backend/models"
	"shuno-backend/services"
)

func productTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Property{}))

	pc := NewProductController(services.NewProductService(db))
	r := gin.New()
	r.GET("/api/products/:id", pc.GetProduct)
	return r, db
}

func TestGetProductUnknownIDReturns404Envelope(t *testing.T) {
	r, _ := productTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestGetProductFound(t *testing.T) {
	r, db := productTestRouter(t)
	product := models.Property{Name: "Cabin", Location: "Lofoten", Price: 100, MaxGuests: 4, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    models.Property `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Cabin", body.Data.Name)
}
