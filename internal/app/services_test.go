//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices_WithoutDatabase(t *testing.T) {
	cfg := testConfig(t)

	components := InitializeServices(context.Background(), &cfg, nil)
	require.NotNil(t, components)
	t.Cleanup(components.Catalog.Stop)

	assert.NotNil(t, components.Catalog)
	assert.NotNil(t, components.Cart)
	assert.NotNil(t, components.Offers)
	assert.NotNil(t, components.Pricing)
	assert.NotNil(t, components.Shipping)
	assert.NotNil(t, components.Checkout)
}

func TestInitializeServices_CartRoundTrip(t *testing.T) {
	cfg := testConfig(t)

	components := InitializeServices(context.Background(), &cfg, nil)
	t.Cleanup(components.Catalog.Stop)

	ctx := context.Background()
	status, err := components.Cart.AddLine(ctx, "session-1", 5, model.AddOnSelection{GiftWrap: true}, 2)
	require.NoError(t, err)
	assert.Equal(t, model.MutationApplied, status)

	cart, err := components.Cart.Cart(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)

	offer, err := components.Cart.Offer(ctx, "session-1")
	require.NoError(t, err)

	quote := components.Pricing.Quote(cart, offer, model.ShippingInfo{})
	assert.InDelta(t, 420.0, quote.Subtotal, 0.001)
}
