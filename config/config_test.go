package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)

	// Business constants are deployment inputs with documented defaults.
	assert.Equal(t, 10.0, cfg.Pricing.GiftWrapCharge)
	assert.Equal(t, 15.0, cfg.Pricing.GreetingCardCharge)
	assert.Equal(t, 25.0, cfg.Pricing.FragilePackCharge)
	assert.Equal(t, 20, cfg.Pricing.MessageTruncateLen)
	assert.Equal(t, 1000.0, cfg.Pricing.FreeShippingThreshold)

	assert.Equal(t, 80.0, cfg.Shipping.FallbackCost)
	assert.Equal(t, 6, cfg.Shipping.PincodeLength)
	assert.Equal(t, 5.0, cfg.Shipping.VolumetricDivisor)

	assert.Equal(t, 3, cfg.Checkout.ItemRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.Checkout.RetryBackoff)

	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "storefront", cfg.Database.DatabaseName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "1500")
	t.Setenv("SHIPPING_FALLBACK_COST", "120")
	t.Setenv("ADDON_GIFT_WRAP_CHARGE", "12.5")
	t.Setenv("MESSAGE_TRUNCATE_LEN", "32")
	t.Setenv("CHECKOUT_ITEM_RETRIES", "5")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("MONGODB_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 1500.0, cfg.Pricing.FreeShippingThreshold)
	assert.Equal(t, 120.0, cfg.Shipping.FallbackCost)
	assert.Equal(t, 12.5, cfg.Pricing.GiftWrapCharge)
	assert.Equal(t, 32, cfg.Pricing.MessageTruncateLen)
	assert.Equal(t, 5, cfg.Checkout.ItemRetries)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "not-a-number")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "abc")
	t.Setenv("MONGODB_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, 1000.0, cfg.Pricing.FreeShippingThreshold)
	assert.False(t, cfg.Database.Enabled)
}

func TestParseCORSOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty returns defaults",
			input: "",
			want:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		{
			name:  "custom origins appended to defaults",
			input: "https://shop.example.com, https://admin.example.com",
			want: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
				"https://shop.example.com",
				"https://admin.example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCORSOrigins(tt.input))
		})
	}
}
