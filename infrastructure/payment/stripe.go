// Package payment integrates the external card processor. Checkout only
// needs intent creation; capture and webhooks are handled by the frontend
// and the processor directly.
package payment

import (
	"context"
	"errors"
	"strconv"

	"storefront-backend/application/ports"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	apperrors "storefront-backend/pkg/errors"
)

// StripeGateway implements the PaymentGateway interface against the Stripe
// REST API.
type StripeGateway struct {
	client *resty.Client
	logger *zap.Logger
}

// NewStripeGateway creates a gateway client. endpoint is overridable so
// tests can point it at a local stub.
func NewStripeGateway(endpoint, apiKey string, logger *zap.Logger) ports.PaymentGateway {
	client := resty.New().
		SetBaseURL(endpoint).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")

	return &StripeGateway{client: client, logger: logger}
}

// intentResponse is the subset of the processor's payload we read.
type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent opens a payment intent for amount in the smallest currency
// unit.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*ports.PaymentIntent, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}

	var result intentResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"amount":   strconv.FormatInt(amount, 10),
			"currency": currency,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, apperrors.NewExternalError("stripe", err)
	}

	if resp.IsError() {
		message := "payment intent creation failed"
		if result.Error != nil && result.Error.Message != "" {
			message = result.Error.Message
		}
		g.logger.Warn("Payment intent rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", message),
		)
		return nil, apperrors.NewExternalError("stripe", errors.New(message))
	}

	g.logger.Debug("Payment intent created",
		zap.String("intentID", result.ID),
		zap.Int64("amount", result.Amount),
	)

	return &ports.PaymentIntent{
		ID:           result.ID,
		ClientSecret: result.ClientSecret,
		Amount:       result.Amount,
		Currency:     result.Currency,
	}, nil
}
