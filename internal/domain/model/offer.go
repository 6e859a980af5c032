package model

// OfferKind discriminates the promotional offer union. At most one offer is
// active at a time; discount and bonus-product offers are mutually exclusive.
type OfferKind string

const (
	// OfferNone means no promotional offer is active.
	OfferNone OfferKind = "none"
	// OfferDiscount is a flat or percentage discount on the subtotal.
	OfferDiscount OfferKind = "discount"
	// OfferBonusProduct grants a zero-price bonus product as a cart line.
	OfferBonusProduct OfferKind = "bonus_product"
)

// DiscountType distinguishes flat-amount from percentage discounts.
type DiscountType string

const (
	// DiscountFlat subtracts a fixed amount from the subtotal.
	DiscountFlat DiscountType = "flat"
	// DiscountPercent subtracts a percentage of the subtotal.
	DiscountPercent DiscountType = "percent"
)

// Offer is the tagged union of promotional offer states. Exactly one of the
// variant fields is meaningful, selected by Kind; the zero value is OfferNone
// after normalization via Normalize.
//
// @Description Active promotional offer (discount or bonus product)
type Offer struct {
	Kind OfferKind `json:"kind" example:"discount"`

	// Discount variant fields.
	DiscountType  DiscountType `json:"discount_type,omitempty" example:"percent"`
	DiscountValue float64      `json:"discount_value,omitempty" example:"15"`
	Code          string       `json:"code,omitempty" example:"FESTIVE15"`

	// BonusProduct variant field.
	BonusProductID int `json:"bonus_product_id,omitempty" example:"999001"`
}

// NoOffer is the inactive offer state.
func NoOffer() Offer {
	return Offer{Kind: OfferNone}
}

// DiscountOffer constructs an active discount offer.
func DiscountOffer(dt DiscountType, value float64, code string) Offer {
	return Offer{
		Kind:          OfferDiscount,
		DiscountType:  dt,
		DiscountValue: value,
		Code:          code,
	}
}

// BonusProductOffer constructs an active bonus-product offer.
func BonusProductOffer(productID int) Offer {
	return Offer{
		Kind:           OfferBonusProduct,
		BonusProductID: productID,
	}
}

// Active reports whether any offer is in effect.
func (o Offer) Active() bool {
	return o.Kind == OfferDiscount || o.Kind == OfferBonusProduct
}

// Normalize maps a zero-value or unknown Kind to OfferNone. Offers loaded
// from durable storage pass through here so stale shapes degrade safely.
func (o Offer) Normalize() Offer {
	switch o.Kind {
	case OfferDiscount, OfferBonusProduct:
		return o
	default:
		return NoOffer()
	}
}

// DiscountAmount computes the discount for the given subtotal. Percentage
// discounts are taken from the subtotal; the caller clamps the final total
// at zero, so a discount exceeding the subtotal is effectively capped.
func (o Offer) DiscountAmount(subtotal float64) float64 {
	if o.Kind != OfferDiscount {
		return 0
	}
	switch o.DiscountType {
	case DiscountPercent:
		return subtotal * o.DiscountValue / 100
	case DiscountFlat:
		return o.DiscountValue
	default:
		return 0
	}
}
