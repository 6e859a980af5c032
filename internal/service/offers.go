package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/metrics"
)

// ErrUnknownBonusProduct is returned when a bonus-product claim names a
// product outside the fixed bonus table.
var ErrUnknownBonusProduct = errors.New("unknown bonus product")

// ErrInvalidDiscount is returned when a discount claim carries a
// non-positive value or an unknown discount type.
var ErrInvalidDiscount = errors.New("invalid discount offer")

// OfferService records which single promotional offer is active per
// session. All transitions go through one function that updates the
// offer state and performs the required cart purge under the same
// session lock, so mutual exclusion cannot be broken by call ordering.
type OfferService interface {
	// ApplyDiscount activates a discount offer, purging any
	// bonus-product cart lines first.
	ApplyDiscount(ctx context.Context, sessionID string, dt model.DiscountType, value float64, code string) (model.Offer, error)

	// ApplyBonusProduct activates a bonus-product offer: clears any
	// active discount and adds the bonus product as a cart line
	// (quantity 1, no add-ons).
	ApplyBonusProduct(ctx context.Context, sessionID string, productID int) (model.Offer, error)

	// ClearOffer cancels the active offer and purges bonus lines.
	ClearOffer(ctx context.Context, sessionID string) error
}

// OfferServiceImpl implements OfferService. It shares the cart
// service's session locks so offer transitions and cart mutations are
// serialized against each other.
type OfferServiceImpl struct {
	cart *CartServiceImpl
}

// NewOfferService creates an offer service bound to the cart service.
func NewOfferService(cart *CartServiceImpl) *OfferServiceImpl {
	return &OfferServiceImpl{cart: cart}
}

// ApplyDiscount activates a discount offer for the session.
func (s *OfferServiceImpl) ApplyDiscount(ctx context.Context, sessionID string, dt model.DiscountType, value float64, code string) (model.Offer, error) {
	if value <= 0 || (dt != model.DiscountFlat && dt != model.DiscountPercent) {
		return model.NoOffer(), ErrInvalidDiscount
	}
	return s.transition(ctx, sessionID, model.DiscountOffer(dt, value, code))
}

// ApplyBonusProduct activates a bonus-product offer for the session.
func (s *OfferServiceImpl) ApplyBonusProduct(ctx context.Context, sessionID string, productID int) (model.Offer, error) {
	if !model.IsBonusProduct(productID) {
		return model.NoOffer(), fmt.Errorf("%w: %d", ErrUnknownBonusProduct, productID)
	}
	return s.transition(ctx, sessionID, model.BonusProductOffer(productID))
}

// ClearOffer cancels the active offer.
func (s *OfferServiceImpl) ClearOffer(ctx context.Context, sessionID string) error {
	_, err := s.transition(ctx, sessionID, model.NoOffer())
	return err
}

// transition is the single offer state-machine step. It undoes the
// prior state's cart side effects and establishes the target state
// atomically under the session lock.
func (s *OfferServiceImpl) transition(ctx context.Context, sessionID string, target model.Offer) (model.Offer, error) {
	unlock := s.cart.locks.lock(sessionID)
	defer unlock()

	state := s.cart.state

	switch target.Kind {
	case model.OfferDiscount:
		// Discounts and bonus lines never coexist.
		cart, err := state.loadCart(ctx, sessionID)
		if err != nil {
			return model.NoOffer(), err
		}
		purgeBonusLines(&cart)
		if err := state.saveCart(ctx, sessionID, cart); err != nil {
			return model.NoOffer(), err
		}

	case model.OfferBonusProduct:
		// addLineLocked purges prior bonus lines and clears any active
		// discount before the grant lands.
		if _, err := s.cart.addLineLocked(ctx, sessionID, target.BonusProductID, model.AddOnSelection{}, 1); err != nil {
			return model.NoOffer(), err
		}

	default:
		// Cancellation also withdraws granted bonus lines; they exist
		// only by virtue of an offer.
		cart, err := state.loadCart(ctx, sessionID)
		if err != nil {
			return model.NoOffer(), err
		}
		purgeBonusLines(&cart)
		if err := state.saveCart(ctx, sessionID, cart); err != nil {
			return model.NoOffer(), err
		}
		target = model.NoOffer()
	}

	if err := state.saveOffer(ctx, sessionID, target); err != nil {
		return model.NoOffer(), err
	}
	metrics.OfferTransitionsTotal.WithLabelValues(string(target.Kind)).Inc()
	return target, nil
}
