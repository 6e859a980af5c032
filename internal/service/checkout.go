package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/metrics"
	"github.com/kalakaari/storefront-service/internal/repository"
)

// ErrEmptyCart is returned when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrPaymentFailed wraps payment-order-creation failures. This is the
// only unrecoverable checkout condition; it occurs before capture, so
// aborting loses nothing.
var ErrPaymentFailed = errors.New("payment order creation failed")

// PaymentClient creates a payment order with the external gateway for
// the quoted grand total.
type PaymentClient interface {
	CreateOrder(ctx context.Context, amount float64) (model.PaymentOrder, error)
}

// CustomerDetails are the buyer fields captured at checkout.
type CustomerDetails struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutService turns a session's cart into a persisted order.
type CheckoutService interface {
	// Checkout quotes the cart, creates a payment order, persists the
	// order record item by item with retries, and clears the session
	// state. After payment succeeds the checkout never aborts: items
	// that cannot be persisted are skipped and the outcome degrades to
	// completed-with-warnings.
	Checkout(ctx context.Context, sessionID string, customer CustomerDetails) (*model.Order, error)
}

// CheckoutServiceImpl implements CheckoutService.
type CheckoutServiceImpl struct {
	cart    *CartServiceImpl
	pricing PricingCalculator
	payment PaymentClient
	orders  repository.OrdersRepositoryInterface
	cfg     config.CheckoutConfig

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(cart *CartServiceImpl, pricing PricingCalculator, payment PaymentClient, orders repository.OrdersRepositoryInterface, cfg config.CheckoutConfig) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		cart:    cart,
		pricing: pricing,
		payment: payment,
		orders:  orders,
		cfg:     cfg,
		sleep:   time.Sleep,
	}
}

// Checkout executes the full checkout flow for the session.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, sessionID string, customer CustomerDetails) (*model.Order, error) {
	cartState, err := s.cart.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cartState.Empty() {
		return nil, ErrEmptyCart
	}
	offer, err := s.cart.Offer(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	shipping, err := s.cart.Shipping(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Quote(cartState, offer, shipping)

	payment, err := s.payment.CreateOrder(ctx, quote.GrandTotal)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("payment_failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	order := s.buildOrder(sessionID, quote, payment, customer)
	persisted := s.persistOrder(ctx, order)

	if order.SkippedItems > 0 {
		order.Checkout = model.CheckoutPartiallyRecorded
	}
	if persisted {
		if err := s.orders.Finalize(ctx, order.Reference, order.SkippedItems, order.Checkout); err != nil {
			log.Warn().Err(err).Str("order_reference", order.Reference).
				Msg("failed to record checkout outcome on order")
		}
	}
	metrics.CheckoutsTotal.WithLabelValues(string(order.Checkout)).Inc()

	// Checkout completion empties the cart and retires the offer.
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("order_reference", order.Reference).
			Msg("failed to clear session state after checkout")
	}
	return order, nil
}

func (s *CheckoutServiceImpl) buildOrder(sessionID string, quote model.Quote, payment model.PaymentOrder, customer CustomerDetails) *model.Order {
	items := make([]model.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		items = append(items, model.OrderItem{
			ProductID:   line.ProductID,
			Name:        line.Name,
			UnitPrice:   line.UnitPrice,
			AddOns:      line.AddOns,
			AddOnCharge: line.AddOnCharge,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
			Free:        line.Free,
		})
	}

	now := time.Now()
	return &model.Order{
		Reference:     uuid.NewString(),
		SessionID:     sessionID,
		Items:         items,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		OfferCode:     quote.OfferCode,
		ShippingCost:  quote.ShippingCost,
		GrandTotal:    quote.GrandTotal,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		Address:       customer.Address,
		PaymentID:     payment.ID,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPaid,
		Checkout:      model.CheckoutCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// persistOrder writes the order shell and then appends line items one
// by one with linear-backoff retries. Items that still fail are counted
// as skipped; a degraded record beats a stranded payment. Returns
// whether the order shell was persisted.
func (s *CheckoutServiceImpl) persistOrder(ctx context.Context, order *model.Order) bool {
	if s.orders == nil {
		// No database configured; the order exists only in the response.
		return false
	}

	// The shell is written without items; each item is appended
	// individually so one bad write cannot sink the whole record.
	shell := *order
	shell.Items = nil
	if err := s.retry(ctx, func() error { return s.orders.Create(ctx, &shell) }); err != nil {
		log.Error().Err(err).Str("order_reference", order.Reference).
			Msg("failed to persist order record after retries")
		order.SkippedItems = len(order.Items)
		return false
	}
	order.ID = shell.ID

	for _, item := range order.Items {
		item := item
		err := s.retry(ctx, func() error {
			return s.orders.AppendItem(ctx, order.Reference, item)
		})
		if err != nil {
			log.Error().Err(err).
				Str("order_reference", order.Reference).
				Int("product_id", item.ProductID).
				Msg("failed to persist order item, skipping")
			order.SkippedItems++
		}
	}
	return true
}

// retry runs fn up to the configured attempt count with linear backoff.
func (s *CheckoutServiceImpl) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.cfg.ItemRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < s.cfg.ItemRetries {
			metrics.CheckoutItemRetriesTotal.Inc()
			s.sleep(time.Duration(attempt) * s.cfg.RetryBackoff)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
