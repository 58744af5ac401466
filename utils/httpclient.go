package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"shuno-backend/metrics"
)

// APIError carries the final status code and parsed server payload of a
// failed request.
type APIError struct {
	StatusCode int
	Body       json.RawMessage
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// RetryClient is a JSON HTTP client that retries 5xx responses and network
// errors with linear backoff (RetryDelay × attempt). A request with
// MaxRetries = N makes at most N+1 attempts.
type RetryClient struct {
	HTTP       *http.Client
	MaxRetries int
	RetryDelay time.Duration
	Reporter   *metrics.ErrorReporter
	Logger     zerolog.Logger
}

func NewRetryClient(maxRetries int, retryDelay time.Duration, reporter *metrics.ErrorReporter, logger zerolog.Logger) *RetryClient {
	return &RetryClient{
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
		Reporter:   reporter,
		Logger:     logger,
	}
}

// DoJSON sends body as JSON and decodes the response into out (when out is
// non-nil). 4xx responses fail immediately; 5xx and transport errors are
// retried until the attempt budget runs out.
func (c *RetryClient) DoJSON(ctx context.Context, method, url string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.RetryDelay * time.Duration(attempt)
			c.Logger.Warn().Str("url", url).Int("attempt", attempt).Dur("delay", delay).Msg("retrying request")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		apiErr, retryable, err := c.doOnce(ctx, method, url, payload, out)
		if err == nil && apiErr == nil {
			return nil
		}
		if apiErr != nil {
			lastErr = apiErr
			if !retryable {
				break
			}
			continue
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	if c.Reporter != nil && lastErr != nil {
		if apiErr, ok := lastErr.(*APIError); ok {
			c.Reporter.Report("http_client", apiErr.StatusCode, apiErr.Message)
		} else {
			// transport failure with no response; count it as a gateway error
			c.Reporter.Report("http_client", http.StatusBadGateway, lastErr.Error())
		}
	}
	return lastErr
}

func (c *RetryClient) doOnce(ctx context.Context, method, url string, payload []byte, out interface{}) (*APIError, bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// network-classified error: retryable
		return nil, true, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Message:    http.StatusText(resp.StatusCode),
		}
		var parsed struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if jsonErr := json.Unmarshal(respBody, &parsed); jsonErr == nil {
			if parsed.Message != "" {
				apiErr.Message = parsed.Message
			} else if parsed.Error != "" {
				apiErr.Message = parsed.Error
			}
		}
		return apiErr, resp.StatusCode >= 500, nil
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, false, fmt.Errorf("decode response: %w", err)
		}
	}
	return nil, false, nil
}
