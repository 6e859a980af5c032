package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/model"
)

// ErrPaymentDisabled is returned when no payment endpoint is configured.
var ErrPaymentDisabled = errors.New("payment gateway disabled")

// PaymentGatewayClient creates payment orders with the external payment
// provider. It implements service.PaymentClient.
type PaymentGatewayClient struct {
	cfg    config.PaymentConfig
	client *http.Client
}

// NewPaymentGatewayClient creates a payment client from the payment
// configuration.
func NewPaymentGatewayClient(cfg config.PaymentConfig) *PaymentGatewayClient {
	return &PaymentGatewayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type paymentOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type paymentOrderResponse struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Error    string  `json:"error,omitempty"`
}

// CreateOrder creates a payment order for the given amount. A failure
// here aborts checkout; nothing has been captured yet.
func (c *PaymentGatewayClient) CreateOrder(ctx context.Context, amount float64) (model.PaymentOrder, error) {
	if c.cfg.URL == "" {
		return model.PaymentOrder{}, ErrPaymentDisabled
	}

	body, err := json.Marshal(paymentOrderRequest{
		Amount:   model.Round2(amount),
		Currency: c.cfg.Currency,
	})
	if err != nil {
		return model.PaymentOrder{}, fmt.Errorf("encode payment order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return model.PaymentOrder{}, fmt.Errorf("build payment order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.PaymentOrder{}, fmt.Errorf("create payment order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.PaymentOrder{}, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, snippet)
	}

	var parsed paymentOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.PaymentOrder{}, fmt.Errorf("decode payment order response: %w", err)
	}
	if parsed.Error != "" {
		return model.PaymentOrder{}, fmt.Errorf("payment order rejected: %s", parsed.Error)
	}
	if parsed.ID == "" {
		return model.PaymentOrder{}, errors.New("payment gateway returned no order id")
	}

	return model.PaymentOrder{
		ID:       parsed.ID,
		Amount:   parsed.Amount,
		Currency: parsed.Currency,
	}, nil
}
