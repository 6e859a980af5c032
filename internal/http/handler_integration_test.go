//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/dto"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/kvstore"
	"github.com/kalakaari/storefront-service/internal/repository"
	"github.com/kalakaari/storefront-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIntegrationRouter wires the full storefront stack over a real
// MongoDB-backed session store and orders repository.
func newIntegrationRouter(t *testing.T) (*gin.Engine, *repository.OrdersRepository) {
	t.Helper()

	db, err := repository.NewMongoDB(getSharedContainerURI(), sanitizeDBNameForHTTP(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})

	catalog := seedCatalog(t)
	store := kvstore.NewMongoStore(db.KV)
	t.Cleanup(func() { _ = store.Close() })

	pricingCfg := config.PricingConfig{
		GiftWrapCharge:        10,
		GreetingCardCharge:    15,
		FragilePackCharge:     25,
		MessageTruncateLen:    20,
		FreeShippingThreshold: 1000,
	}
	shippingCfg := config.ShippingConfig{
		FallbackCost:          80,
		PincodeLength:         6,
		VolumetricDivisor:     5,
		FreeShippingThreshold: 1000,
	}

	cart := service.NewCartService(store, catalog, pricingCfg.MessageTruncateLen)
	offers := service.NewOfferService(cart)
	pricing := service.NewPricingCalculator(catalog, pricingCfg)
	shipping := service.NewShippingResolver(cart, pricing, catalog, &stubRateClient{cost: 60}, nil, shippingCfg)
	orders := repository.NewOrdersRepository(db)
	checkout := service.NewCheckoutService(cart, pricing, &stubPaymentClient{}, orders, config.CheckoutConfig{
		ItemRetries:  3,
		RetryBackoff: 10 * time.Millisecond,
	})

	handler := NewHandler(cart, offers, pricing, shipping, checkout, catalog)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	return NewRouter(handler, nil, NewHealthHandler(), cfg), orders
}

func doJSON(t *testing.T, router *gin.Engine, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStorefrontFlow_Integration(t *testing.T) {
	router, orders := newIntegrationRouter(t)
	session := "integ-sess-1"

	w := doJSON(t, router, http.MethodPost, "/api/cart/lines", session, dto.AddLineRequest{
		ProductID: 5,
		Quantity:  2,
		AddOns:    model.AddOnSelection{GiftWrap: true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/shipping", session, dto.ShippingRequest{Pincode: "560038"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/checkout", session, dto.CheckoutRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Address: "12 Gandhi Bazaar, Bengaluru",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data model.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Reference)

	// The order round-trips through the repository with items attached.
	stored, err := orders.GetByReference(context.Background(), envelope.Data.Reference)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, model.CheckoutCompleted, stored.Checkout)
	assert.InDelta(t, 480.0, stored.GrandTotal, 0.001)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 5, stored.Items[0].ProductID)
	assert.Equal(t, 2, stored.Items[0].Quantity)

	// Session state survived in Mongo until checkout cleared it.
	w = doJSON(t, router, http.MethodGet, "/api/cart", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var viewEnv struct {
		Data dto.CartViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &viewEnv))
	assert.Empty(t, viewEnv.Data.Cart.Lines)
}

func TestCartStatePersistsAcrossRouters_Integration(t *testing.T) {
	router, _ := newIntegrationRouter(t)
	session := "integ-sess-2"

	w := doJSON(t, router, http.MethodPost, "/api/cart/lines", session, dto.AddLineRequest{ProductID: 7, Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	// A fresh request sees the durable state.
	w = doJSON(t, router, http.MethodGet, "/api/cart", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var viewEnv struct {
		Data dto.CartViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &viewEnv))
	assert.Len(t, viewEnv.Data.Cart.Lines, 1)
}
