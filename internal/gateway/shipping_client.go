// Package gateway contains HTTP clients for external collaborators: the
// shipping rate service and the payment gateway.
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
)

// ErrRateLookupDisabled is returned when no rate endpoint is configured.
// The shipping resolver treats this like any other lookup failure and
// charges the fallback cost.
var ErrRateLookupDisabled = errors.New("shipping rate lookup disabled")

// ShippingRateClient calls the external shipping rate service. It
// implements service.RateClient.
type ShippingRateClient struct {
	cfg    config.ShippingConfig
	client *http.Client
}

// NewShippingRateClient creates a rate client from the shipping
// configuration.
func NewShippingRateClient(cfg config.ShippingConfig) *ShippingRateClient {
	return &ShippingRateClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type rateRequest struct {
	Destination           string   `json:"destination"`
	ChargeableWeightGrams float64  `json:"chargeable_weight_grams"`
	Dimensions            []string `json:"dimensions,omitempty"`
}

type rateResponse struct {
	Cost  float64 `json:"cost"`
	Error string  `json:"error,omitempty"`
}

// GetRate fetches the shipping cost for the destination and chargeable
// weight. Any transport failure, non-2xx status, or error field in the
// response body surfaces as an error.
func (c *ShippingRateClient) GetRate(ctx context.Context, destination string, chargeableWeightGrams float64, dimensions []string) (float64, error) {
	if c.cfg.RateURL == "" {
		return 0, ErrRateLookupDisabled
	}

	body, err := json.Marshal(rateRequest{
		Destination:           destination,
		ChargeableWeightGrams: chargeableWeightGrams,
		Dimensions:            dimensions,
	})
	if err != nil {
		return 0, fmt.Errorf("encode rate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RateURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("rate lookup returned status %d: %s", resp.StatusCode, snippet)
	}

	var parsed rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode rate response: %w", err)
	}
	if parsed.Error != "" {
		return 0, fmt.Errorf("rate lookup failed: %s", parsed.Error)
	}
	if parsed.Cost < 0 {
		return 0, fmt.Errorf("rate lookup returned negative cost %v", parsed.Cost)
	}
	return parsed.Cost, nil
}
