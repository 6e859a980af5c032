package dto

import "github.com/kalakaari/storefront-service/internal/domain/model"

// CartViewResponse is the combined session view returned by the cart
// endpoints: the raw cart state plus the derived quote and the
// session's offer and shipping info.
//
// @Description Session cart with the derived price quote
type CartViewResponse struct {
	Cart     model.CartState    `json:"cart"`
	Offer    model.Offer        `json:"offer"`
	Shipping model.ShippingInfo `json:"shipping"`
	Quote    model.Quote        `json:"quote"`
} // @name CartViewResponse

// MutationResponse reports the outcome of a cart mutation together
// with the refreshed cart view.
//
// @Description Cart mutation outcome and refreshed cart view
type MutationResponse struct {
	// Status is the mutation outcome, e.g. "applied" or
	// "rejected_out_of_stock".
	Status model.MutationStatus `json:"status" example:"applied"`
	// Changed reports whether the cart actually changed.
	Changed bool `json:"changed" example:"true"`
	View    CartViewResponse `json:"view"`
} // @name MutationResponse
