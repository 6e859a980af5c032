package model

import "math"

// QuoteLine is one priced cart line in a quote. Monetary values are raw
// float64 sums; two-decimal rounding happens only at presentation.
//
// @Description Priced cart line within a quote
type QuoteLine struct {
	Key       LineKey        `json:"key" example:"5|g1c0f0|"`
	ProductID int            `json:"product_id" example:"5"`
	Name      string         `json:"name" example:"Terracotta Planter"`
	UnitPrice float64        `json:"unit_price" example:"200"`
	AddOns    AddOnSelection `json:"addons"`
	// AddOnCharge is the per-unit surcharge for the enabled add-on flags.
	AddOnCharge float64 `json:"addon_charge" example:"10"`
	Quantity    int     `json:"quantity" example:"2"`
	// LineTotal = (UnitPrice + AddOnCharge) * Quantity.
	LineTotal float64 `json:"line_total" example:"420"`
	// Free marks bonus-product lines granted by an active offer. The line
	// total is already zero; the flag exists for display.
	Free bool `json:"free,omitempty"`
}

// Quote is the order's monetary breakdown produced by the pricing
// calculator. It is a pure function of cart state, catalog snapshot, active
// offer, and shipping info.
//
// @Description Order totals: subtotal, discount, shipping, grand total
type Quote struct {
	Lines    []QuoteLine `json:"lines"`
	Subtotal float64     `json:"subtotal" example:"420"`
	// Discount is the amount subtracted by an active discount offer.
	Discount float64 `json:"discount" example:"63"`
	// Total = max(0, Subtotal - Discount), before shipping.
	Total float64 `json:"total" example:"357"`
	// ShippingCost is zero when Total meets the free-shipping threshold.
	ShippingCost float64 `json:"shipping_cost" example:"60"`
	FreeShipping bool    `json:"free_shipping" example:"false"`
	// GrandTotal = Total + ShippingCost.
	GrandTotal float64 `json:"grand_total" example:"417"`
	// OfferCode echoes the applied discount code, if any.
	OfferCode string `json:"offer_code,omitempty" example:"FESTIVE15"`
}

// Round2 rounds a monetary value to two decimals for presentation.
// Intermediate computation stays on raw floats.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
