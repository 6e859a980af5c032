package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus tracks the fulfillment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known fulfillment status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// CheckoutStatus is the overall outcome of a checkout. After payment capture
// the checkout never aborts; item-level persistence failures degrade the
// status to completed-with-warnings instead.
type CheckoutStatus string

const (
	CheckoutCompleted CheckoutStatus = "completed"
	// CheckoutPartiallyRecorded means payment succeeded but one or more line
	// items could not be persisted after retries.
	CheckoutPartiallyRecorded CheckoutStatus = "completed_with_warnings"
)

// OrderItem is a persisted line item with its priced snapshot, including
// add-on flags and the computed line total.
type OrderItem struct {
	ProductID   int            `bson:"product_id" json:"product_id"`
	Name        string         `bson:"name" json:"name"`
	UnitPrice   float64        `bson:"unit_price" json:"unit_price"`
	AddOns      AddOnSelection `bson:"addons" json:"addons"`
	AddOnCharge float64        `bson:"addon_charge" json:"addon_charge"`
	Quantity    int            `bson:"quantity" json:"quantity"`
	LineTotal   float64        `bson:"line_total" json:"line_total"`
	Free        bool           `bson:"free,omitempty" json:"free,omitempty"`
}

// Order is a persisted order record.
type Order struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Reference is the human-facing order reference (UUID).
	Reference string      `bson:"reference" json:"reference"`
	SessionID string      `bson:"session_id" json:"session_id"`
	Items     []OrderItem `bson:"items" json:"items"`
	// SkippedItems counts line items dropped after persistence retries were
	// exhausted; non-zero implies CheckoutPartiallyRecorded.
	SkippedItems  int            `bson:"skipped_items,omitempty" json:"skipped_items,omitempty"`
	Subtotal      float64        `bson:"subtotal" json:"subtotal"`
	Discount      float64        `bson:"discount" json:"discount"`
	OfferCode     string         `bson:"offer_code,omitempty" json:"offer_code,omitempty"`
	ShippingCost  float64        `bson:"shipping_cost" json:"shipping_cost"`
	GrandTotal    float64        `bson:"grand_total" json:"grand_total"`
	Pincode       string         `bson:"pincode,omitempty" json:"pincode,omitempty"`
	CustomerName  string         `bson:"customer_name" json:"customer_name"`
	CustomerEmail string         `bson:"customer_email" json:"customer_email"`
	CustomerPhone string         `bson:"customer_phone,omitempty" json:"customer_phone,omitempty"`
	Address       string         `bson:"address,omitempty" json:"address,omitempty"`
	PaymentID     string         `bson:"payment_id" json:"payment_id"`
	Status        OrderStatus    `bson:"status" json:"status"`
	PaymentStatus PaymentStatus  `bson:"payment_status" json:"payment_status"`
	Checkout      CheckoutStatus `bson:"checkout_status" json:"checkout_status"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// PaymentOrder is the record returned by the payment collaborator when a
// payment order is created, prior to capture.
type PaymentOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CustomOrderRequest is a free-form commission request from a customer.
type CustomOrderRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Description string             `bson:"description" json:"description"`
	ImageRefs   []string           `bson:"image_refs,omitempty" json:"image_refs,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
