package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shuno-backend/metrics"
)

func newTestClient(maxRetries int, reporter *metrics.ErrorReporter) *RetryClient {
	return NewRetryClient(maxRetries, time.Millisecond, reporter, zerolog.Nop())
}

func TestRetryClientPersistent5xx(t *testing.T) {
	metrics.Register()
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	reporter := metrics.NewErrorReporter()
	c := newTestClient(3, reporter)

	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)

	// maxRetries = 3 means exactly 4 attempts
	assert.Equal(t, int32(4), attempts.Load())

	snap := reporter.Metrics()
	assert.Equal(t, int64(1), snap.Total)
	assert.Equal(t, int64(1), snap.ByContext["http_client"])
}

func TestRetryClientReportsTransportFailure(t *testing.T) {
	metrics.Register()
	// grab an address nobody listens on
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reporter := metrics.NewErrorReporter()
	c := newTestClient(1, reporter)

	err := c.DoJSON(context.Background(), http.MethodGet, url, nil, nil)
	require.Error(t, err)
	_, isAPIErr := err.(*APIError)
	assert.False(t, isAPIErr)

	snap := reporter.Metrics()
	assert.Equal(t, int64(1), snap.Total)
	assert.Equal(t, int64(1), snap.ByContext["http_client"])
	assert.Equal(t, int64(1), snap.ByStatus["502"])
	assert.Equal(t, int64(1), snap.ByType[metrics.TypeError])
}

func TestRetryClientNoRetryOn4xx(t *testing.T) {
	metrics.Register()
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"missing"}`))
	}))
	defer srv.Close()

	c := newTestClient(3, metrics.NewErrorReporter())
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "missing", apiErr.Message)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestRetryClientRecoversAfterFailures(t *testing.T) {
	metrics.Register()
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"value":"ok"}`))
	}))
	defer srv.Close()

	c := newTestClient(3, metrics.NewErrorReporter())
	var out struct {
		Value string `json:"value"`
	}
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestRetryClientPostBody(t *testing.T) {
	metrics.Register()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"echo":true}`))
	}))
	defer srv.Close()

	c := newTestClient(0, metrics.NewErrorReporter())
	var out map[string]bool
	err := c.DoJSON(context.Background(), http.MethodPost, srv.URL, map[string]int{"amount": 100}, &out)
	require.NoError(t, err)
	assert.True(t, out["echo"])
}
