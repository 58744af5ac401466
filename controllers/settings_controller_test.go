package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeConfirmer struct {
	confirmed int64
	err       error
	calls     int
}

func (f *fakeConfirmer) ConfirmPending(ctx context.Context) (int64, error) {
	f.calls++
	return f.confirmed, f.err
}

func TestTriggerAutoConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)

	confirmer := &fakeConfirmer{confirmed: 3}
	sc := NewSettingsController(nil, confirmer)

	r := gin.New()
	r.POST("/api/settings/auto-confirm/trigger", sc.TriggerAutoConfirm)

	req := httptest.NewRequest(http.MethodPost, "/api/settings/auto-confirm/trigger", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, confirmer.calls)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Confirmed int64 `json:"confirmed"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(3), body.Data.Confirmed)
}

func TestTriggerAutoConfirmFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	confirmer := &fakeConfirmer{err: errors.New("db down")}
	sc := NewSettingsController(nil, confirmer)

	r := gin.New()
	r.POST("/api/settings/auto-confirm/trigger", sc.TriggerAutoConfirm)

	req := httptest.NewRequest(http.MethodPost, "/api/settings/auto-confirm/trigger", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}
