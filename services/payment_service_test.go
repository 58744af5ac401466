package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuno-backend/metrics"
	"shuno-backend/utils"
)

func paymentClient() *utils.RetryClient {
	metrics.Register()
	return utils.NewRetryClient(1, time.Millisecond, metrics.NewErrorReporter(), zerolog.Nop())
}

func TestCreateIntentNoGateway(t *testing.T) {
	s := NewPaymentService(paymentClient(), "", zerolog.Nop())

	intent, err := s.CreateIntent(context.Background(), 480, "EUR", "SHU-TEST")
	require.NoError(t, err)
	assert.Equal(t, "local", intent.Provider)
	assert.Equal(t, 480.0, intent.Amount)
	assert.NotEmpty(t, intent.ID)
	assert.NotEmpty(t, intent.ClientSecret)
}

func TestCreateIntentGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment-intents", r.URL.Path)
		w.Write([]byte(`{"id":"pi_123","clientSecret":"cs_456"}`))
	}))
	defer srv.Close()

	s := NewPaymentService(paymentClient(), srv.URL, zerolog.Nop())
	intent, err := s.CreateIntent(context.Background(), 100, "EUR", "SHU-TEST")
	require.NoError(t, err)
	assert.Equal(t, "gateway", intent.Provider)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "cs_456", intent.ClientSecret)
}

func TestCreateIntentGatewayDownFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewPaymentService(paymentClient(), srv.URL, zerolog.Nop())
	intent, err := s.CreateIntent(context.Background(), 100, "", "SHU-TEST")
	require.NoError(t, err)
	assert.Equal(t, "local", intent.Provider)
	assert.Equal(t, "EUR", intent.Currency)
}
