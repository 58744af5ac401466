package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shuno-backend/utils"
)

// PaymentIntent is what checkout needs to proceed with a payment.
type PaymentIntent struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Provider     string  `json:"provider"`
}

// PaymentService creates payment intents against an external gateway. With
// no gateway configured, or when the gateway stays unreachable after
// retries, it falls back to a locally issued intent so checkout is not
// blocked.
type PaymentService struct {
	Client  *utils.RetryClient
	BaseURL string
	Logger  zerolog.Logger
}

func NewPaymentService(client *utils.RetryClient, baseURL string, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		Client:  client,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Logger:  logger,
	}
}

type gatewayIntentRequest struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reference string  `json:"reference"`
}

type gatewayIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

func (s *PaymentService) CreateIntent(ctx context.Context, amount float64, currency, reference string) (*PaymentIntent, error) {
	if currency == "" {
		currency = "EUR"
	}

	if s.BaseURL == "" {
		return s.localIntent(amount, currency), nil
	}

	var resp gatewayIntentResponse
	err := s.Client.DoJSON(ctx, "POST", s.BaseURL+"/v1/payment-intents", gatewayIntentRequest{
		Amount:    amount,
		Currency:  currency,
		Reference: reference,
	}, &resp)
	if err != nil {
		s.Logger.Warn().Err(err).Str("reference", reference).
			Msg("payment gateway unavailable, issuing local intent")
		return s.localIntent(amount, currency), nil
	}

	return &PaymentIntent{
		ID:           resp.ID,
		ClientSecret: resp.ClientSecret,
		Amount:       amount,
		Currency:     currency,
		Provider:     "gateway",
	}, nil
}

func (s *PaymentService) localIntent(amount float64, currency string) *PaymentIntent {
	id := "pi_local_" + uuid.NewString()
	return &PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString()[:8],
		Amount:       amount,
		Currency:     currency,
		Provider:     "local",
	}
}
