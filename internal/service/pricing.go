package service

import (
	"sort"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/metrics"
)

// PricingCalculator produces the order's monetary breakdown. Quote is a
// pure function of cart state, the catalog snapshot, the active offer,
// and shipping info; it has no side effects and is invoked on demand.
type PricingCalculator interface {
	Quote(cart model.CartState, offer model.Offer, shipping model.ShippingInfo) model.Quote

	// AddOnCharge returns the per-unit surcharge for the enabled flags.
	AddOnCharge(addons model.AddOnSelection) float64
}

// PricingCalculatorService implements PricingCalculator with the
// deployment's surcharge and threshold configuration.
type PricingCalculatorService struct {
	catalog Catalog
	cfg     config.PricingConfig
}

// NewPricingCalculator creates a pricing calculator over the catalog.
func NewPricingCalculator(catalog Catalog, cfg config.PricingConfig) *PricingCalculatorService {
	return &PricingCalculatorService{catalog: catalog, cfg: cfg}
}

// AddOnCharge returns the per-unit surcharge for the enabled flags.
func (s *PricingCalculatorService) AddOnCharge(addons model.AddOnSelection) float64 {
	var charge float64
	if addons.GiftWrap {
		charge += s.cfg.GiftWrapCharge
	}
	if addons.GreetingCard {
		charge += s.cfg.GreetingCardCharge
	}
	if addons.FragilePack {
		charge += s.cfg.FragilePackCharge
	}
	return charge
}

// Quote computes the monetary breakdown for the given state.
//
// Lines whose product cannot be resolved are dropped. When a discount
// offer is active, bonus-product lines are excluded outright; they
// should already have been purged, this re-enforces the exclusion.
// Monetary values stay on raw floats; rounding happens at presentation.
func (s *PricingCalculatorService) Quote(cart model.CartState, offer model.Offer, shipping model.ShippingInfo) model.Quote {
	offer = offer.Normalize()
	quote := model.Quote{Lines: make([]model.QuoteLine, 0, len(cart.Lines))}

	for key, quantity := range cart.Lines {
		product, ok := s.catalog.Resolve(key.ProductID())
		if !ok {
			continue
		}
		bonus := model.IsBonusProduct(product.ID)
		if bonus && offer.Kind == model.OfferDiscount {
			continue
		}

		addons := cart.AddOns[key]
		charge := s.AddOnCharge(addons)
		line := model.QuoteLine{
			Key:         key,
			ProductID:   product.ID,
			Name:        product.Name,
			UnitPrice:   product.UnitPrice,
			AddOns:      addons,
			AddOnCharge: charge,
			Quantity:    quantity,
			LineTotal:   (product.UnitPrice + charge) * float64(quantity),
			Free:        bonus && offer.Kind == model.OfferBonusProduct,
		}
		quote.Lines = append(quote.Lines, line)
		quote.Subtotal += line.LineTotal
	}

	// Map iteration order is random; keep the quote deterministic.
	sort.Slice(quote.Lines, func(i, j int) bool { return quote.Lines[i].Key < quote.Lines[j].Key })

	quote.Discount = offer.DiscountAmount(quote.Subtotal)
	quote.Total = quote.Subtotal - quote.Discount
	if quote.Total < 0 {
		quote.Total = 0
	}
	if offer.Kind == model.OfferDiscount {
		quote.OfferCode = offer.Code
	}

	// The pre-shipping total decides free shipping, overriding any
	// previously fetched rate.
	if quote.Total >= s.cfg.FreeShippingThreshold {
		quote.FreeShipping = true
		quote.ShippingCost = 0
	} else {
		quote.ShippingCost = shipping.Cost
	}
	quote.GrandTotal = quote.Total + quote.ShippingCost

	metrics.QuoteComputationsTotal.Inc()
	return quote
}
