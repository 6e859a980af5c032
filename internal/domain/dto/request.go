// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "github.com/kalakaari/storefront-service/internal/domain/model"

// AddLineRequest represents the JSON request body for adding a cart line.
//
// @Description Request to add a product line to the cart
// @Example {"product_id": 5, "quantity": 2, "addons": {"gift_wrap": true}}
type AddLineRequest struct {
	// ProductID is the catalog product to add.
	ProductID int `json:"product_id" binding:"required,gt=0" example:"5" minimum:"1"`
	// Quantity is the number of units; values below 1 are treated as 1.
	Quantity int `json:"quantity" example:"2"`
	// AddOns holds the optional customization flags and message.
	AddOns model.AddOnSelection `json:"addons"`
} // @name AddLineRequest

// UpdateQuantityRequest represents the JSON request body for setting a
// line quantity. A quantity of zero or below removes the line.
//
// @Description Request to set the quantity of an existing cart line
type UpdateQuantityRequest struct {
	// Key identifies the cart line.
	Key string `json:"key" binding:"required" example:"5|g1c0f0|"`
	// Quantity is the new absolute quantity.
	Quantity int `json:"quantity" example:"3"`
} // @name UpdateQuantityRequest

// RemoveLineRequest represents the JSON request body for removing a line.
type RemoveLineRequest struct {
	// Key identifies the cart line.
	Key string `json:"key" binding:"required" example:"5|g1c0f0|"`
} // @name RemoveLineRequest

// ShippingRequest represents the JSON request body for resolving shipping.
//
// @Description Request to resolve shipping cost for a destination pincode
type ShippingRequest struct {
	// Pincode is the destination postal code.
	Pincode string `json:"pincode" binding:"required" example:"560038"`
} // @name ShippingRequest

// ApplyDiscountRequest represents the JSON request body for claiming a
// discount offer.
type ApplyDiscountRequest struct {
	// Type is "flat" or "percent".
	Type string `json:"type" binding:"required,oneof=flat percent" example:"percent"`
	// Value is the discount amount or percentage.
	Value float64 `json:"value" binding:"required,gt=0" example:"15"`
	// Code is the optional promotional code echoed on quotes.
	Code string `json:"code,omitempty" example:"FESTIVE15"`
} // @name ApplyDiscountRequest

// ApplyBonusRequest represents the JSON request body for claiming a
// free-bonus-product offer.
type ApplyBonusRequest struct {
	// ProductID must belong to the fixed bonus-product table.
	ProductID int `json:"product_id" binding:"required,gt=0" example:"999001"`
} // @name ApplyBonusRequest

// CheckoutRequest represents the JSON request body for checkout.
//
// @Description Request to convert the session cart into an order
type CheckoutRequest struct {
	// Name is the customer's full name.
	Name string `json:"name" binding:"required" example:"Asha Rao"`
	// Email is the customer's email address.
	Email string `json:"email" binding:"required,email" example:"asha@example.com"`
	// Phone is the optional contact number.
	Phone string `json:"phone,omitempty" example:"9876543210"`
	// Address is the delivery address.
	Address string `json:"address,omitempty" example:"12 Gandhi Bazaar, Bengaluru"`
} // @name CheckoutRequest

// CustomOrderRequest represents the JSON request body for a custom
// commission request.
type CustomOrderRequest struct {
	Name        string   `json:"name" binding:"required" example:"Asha Rao"`
	Email       string   `json:"email" binding:"required,email" example:"asha@example.com"`
	Phone       string   `json:"phone,omitempty" example:"9876543210"`
	Description string   `json:"description" binding:"required" example:"A nameplate with peacock motifs"`
	ImageRefs   []string `json:"image_refs,omitempty"`
} // @name CustomOrderRequest

// UpdateOrderStatusRequest represents the JSON request body for the
// owner's order-status update.
type UpdateOrderStatusRequest struct {
	// Status is the new fulfillment status.
	Status string `json:"status" binding:"required" example:"confirmed"`
} // @name UpdateOrderStatusRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the add-line request.
func (r *AddLineRequest) Validate() error {
	if r.ProductID <= 0 {
		return &ValidationError{Field: "product_id", Message: "must be a positive integer"}
	}
	return nil
}

// Validate performs custom validation on the discount request.
func (r *ApplyDiscountRequest) Validate() error {
	if r.Type != string(model.DiscountFlat) && r.Type != string(model.DiscountPercent) {
		return &ValidationError{Field: "type", Message: "must be \"flat\" or \"percent\""}
	}
	if r.Value <= 0 {
		return &ValidationError{Field: "value", Message: "must be greater than zero"}
	}
	if r.Type == string(model.DiscountPercent) && r.Value > 100 {
		return &ValidationError{Field: "value", Message: "percentage cannot exceed 100"}
	}
	return nil
}
