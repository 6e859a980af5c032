package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/metrics"
	"github.com/kalakaari/storefront-service/internal/service/cache"
)

// RateClient obtains a shipping cost from the external rate-lookup
// collaborator. Implemented by the gateway package; any error or an
// error field in the response surfaces here as a non-nil error.
type RateClient interface {
	GetRate(ctx context.Context, destination string, chargeableWeightGrams float64, dimensions []string) (float64, error)
}

// ShippingResolver derives the shipping cost for a session's cart.
type ShippingResolver interface {
	// Resolve validates the pincode, computes the chargeable weight,
	// and looks up the rate, falling back to a fixed cost on any
	// lookup failure. The resulting shipping info is persisted and
	// returned; checkout can always proceed.
	Resolve(ctx context.Context, sessionID, pincode string) (model.ShippingInfo, error)
}

// ShippingResolverService implements ShippingResolver. Lookups are not
// serialized against cart mutations; a cart edit during an in-flight
// lookup leaves a stale rate until Resolve is invoked again.
type ShippingResolverService struct {
	cart    *CartServiceImpl
	pricing PricingCalculator
	catalog Catalog
	client  RateClient
	rates   cache.Cache
	cfg     config.ShippingConfig
}

// NewShippingResolver creates a shipping resolver. rates may be nil to
// disable caching.
func NewShippingResolver(cart *CartServiceImpl, pricing PricingCalculator, catalog Catalog, client RateClient, rates cache.Cache, cfg config.ShippingConfig) *ShippingResolverService {
	return &ShippingResolverService{
		cart:    cart,
		pricing: pricing,
		catalog: catalog,
		client:  client,
		rates:   rates,
		cfg:     cfg,
	}
}

// Resolve computes and persists the shipping cost for the session.
func (s *ShippingResolverService) Resolve(ctx context.Context, sessionID, pincode string) (model.ShippingInfo, error) {
	if !validPincode(pincode, s.cfg.PincodeLength) {
		info := model.ShippingInfo{Pincode: pincode, Cost: 0}
		metrics.ShippingLookupsTotal.WithLabelValues("invalid_pincode").Inc()
		return info, s.cart.state.saveShipping(ctx, sessionID, info)
	}

	cartState, err := s.cart.Cart(ctx, sessionID)
	if err != nil {
		return model.ShippingInfo{}, err
	}
	offer, err := s.cart.Offer(ctx, sessionID)
	if err != nil {
		return model.ShippingInfo{}, err
	}

	// The subtotal alone decides free shipping here; no external call
	// is spent on an order that already qualifies.
	quote := s.pricing.Quote(cartState, offer, model.ShippingInfo{})
	if quote.Subtotal >= s.cfg.FreeShippingThreshold {
		info := model.ShippingInfo{Pincode: pincode, Cost: 0}
		metrics.ShippingLookupsTotal.WithLabelValues("free").Inc()
		return info, s.cart.state.saveShipping(ctx, sessionID, info)
	}

	weight, dimensions := s.chargeableWeight(cartState)

	cacheKey := pincode + "|" + strconv.FormatFloat(weight, 'f', 0, 64)
	if s.rates != nil {
		if cost, ok := s.rates.Get(cacheKey); ok {
			info := model.ShippingInfo{Pincode: pincode, Cost: cost}
			metrics.ShippingLookupsTotal.WithLabelValues("cached").Inc()
			return info, s.cart.state.saveShipping(ctx, sessionID, info)
		}
	}

	// Mark the lookup in flight so readers can render a pending state.
	busy := model.ShippingInfo{Pincode: pincode, Busy: true}
	if err := s.cart.state.saveShipping(ctx, sessionID, busy); err != nil {
		return model.ShippingInfo{}, err
	}

	start := time.Now()
	cost, lookupErr := s.client.GetRate(ctx, pincode, weight, dimensions)
	if lookupErr != nil {
		// Degrade to the fixed fallback so checkout stays possible.
		log.Warn().
			Err(lookupErr).
			Str("pincode", pincode).
			Float64("weight_grams", weight).
			Float64("fallback_cost", s.cfg.FallbackCost).
			Msg("shipping rate lookup failed, using fallback cost")
		cost = s.cfg.FallbackCost
		metrics.RecordShippingLookup(time.Since(start), "fallback")
	} else {
		if s.rates != nil {
			s.rates.Set(cacheKey, cost)
		}
		metrics.RecordShippingLookup(time.Since(start), "ok")
	}

	info := model.ShippingInfo{Pincode: pincode, Cost: cost, Busy: false}
	return info, s.cart.state.saveShipping(ctx, sessionID, info)
}

// chargeableWeight sums volumetric and physical weight across lines and
// returns the greater, plus per-line dimension strings for the carrier.
func (s *ShippingResolverService) chargeableWeight(cartState model.CartState) (float64, []string) {
	var volumetric, physical float64
	dimensions := make([]string, 0, len(cartState.Lines))

	for key, quantity := range cartState.Lines {
		product, ok := s.catalog.Resolve(key.ProductID())
		if !ok {
			continue
		}
		q := float64(quantity)
		volumetric += product.LengthCm * product.WidthCm * product.HeightCm / s.cfg.VolumetricDivisor * q
		physical += product.WeightGrams * q
		dimensions = append(dimensions, product.DimensionString())
	}

	sort.Strings(dimensions)
	if volumetric > physical {
		return volumetric, dimensions
	}
	return physical, dimensions
}

// validPincode requires exactly n digits.
func validPincode(pincode string, n int) bool {
	if len(pincode) != n {
		return false
	}
	for i := 0; i < len(pincode); i++ {
		if pincode[i] < '0' || pincode[i] > '9' {
			return false
		}
	}
	return true
}
