package service

import (
	"context"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/kvstore"
	"github.com/kalakaari/storefront-service/internal/metrics"
)

// CartService owns the per-session cart state: the line-key to quantity
// mapping and the parallel add-on mapping. Every mutation is persisted
// to the injected store, which broadcasts change notifications.
//
// Mutations never fail on invalid input; they report a MutationStatus
// instead. The returned error is reserved for storage failures.
type CartService interface {
	// Cart returns the current cart state for the session.
	Cart(ctx context.Context, sessionID string) (model.CartState, error)

	// AddLine adds quantity units of a product with the given add-ons,
	// merging into an existing line when the computed key matches.
	// Bonus products first purge prior bonus lines and clear any active
	// discount offer.
	AddLine(ctx context.Context, sessionID string, productID int, addons model.AddOnSelection, quantity int) (model.MutationStatus, error)

	// RemoveLine deletes the line unconditionally.
	RemoveLine(ctx context.Context, sessionID string, key model.LineKey) (model.MutationStatus, error)

	// UpdateQuantity sets the line's quantity. Non-positive quantities
	// remove the line; quantities above the cached available stock are
	// rejected.
	UpdateQuantity(ctx context.Context, sessionID string, key model.LineKey, quantity int) (model.MutationStatus, error)

	// Clear empties the cart, resets shipping info, and clears any
	// active offer. Idempotent.
	Clear(ctx context.Context, sessionID string) error

	// Shipping returns the session's shipping info.
	Shipping(ctx context.Context, sessionID string) (model.ShippingInfo, error)

	// Offer returns the session's active offer.
	Offer(ctx context.Context, sessionID string) (model.Offer, error)
}

// CartServiceImpl implements CartService over a key-value store and the
// cached catalog.
type CartServiceImpl struct {
	state       sessionState
	catalog     Catalog
	locks       *sessionLocks
	truncateLen int
}

// NewCartService creates a cart service. truncateLen bounds the custom
// message prefix used in line keys; pass 0 for the default.
func NewCartService(store kvstore.Store, catalog Catalog, truncateLen int) *CartServiceImpl {
	return &CartServiceImpl{
		state:       sessionState{store: store},
		catalog:     catalog,
		locks:       newSessionLocks(),
		truncateLen: truncateLen,
	}
}

// Cart returns the current cart state for the session.
func (s *CartServiceImpl) Cart(ctx context.Context, sessionID string) (model.CartState, error) {
	return s.state.loadCart(ctx, sessionID)
}

// Shipping returns the session's shipping info.
func (s *CartServiceImpl) Shipping(ctx context.Context, sessionID string) (model.ShippingInfo, error) {
	return s.state.loadShipping(ctx, sessionID)
}

// Offer returns the session's active offer.
func (s *CartServiceImpl) Offer(ctx context.Context, sessionID string) (model.Offer, error) {
	return s.state.loadOffer(ctx, sessionID)
}

// AddLine adds quantity units of a product to the session's cart.
func (s *CartServiceImpl) AddLine(ctx context.Context, sessionID string, productID int, addons model.AddOnSelection, quantity int) (model.MutationStatus, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	status, err := s.addLineLocked(ctx, sessionID, productID, addons, quantity)
	metrics.RecordCartMutation("add_line", string(status))
	return status, err
}

func (s *CartServiceImpl) addLineLocked(ctx context.Context, sessionID string, productID int, addons model.AddOnSelection, quantity int) (model.MutationStatus, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.state.loadCart(ctx, sessionID)
	if err != nil {
		return model.MutationNoop, err
	}

	if model.IsBonusProduct(productID) {
		// Mutual exclusion: a bonus grant displaces prior bonus lines
		// and any active discount offer.
		purgeBonusLines(&cart)
		offer, err := s.state.loadOffer(ctx, sessionID)
		if err != nil {
			return model.MutationNoop, err
		}
		if offer.Kind == model.OfferDiscount {
			if err := s.state.saveOffer(ctx, sessionID, model.NoOffer()); err != nil {
				return model.MutationNoop, err
			}
		}
	} else {
		product, ok := s.catalog.Resolve(productID)
		if !ok {
			return model.MutationRejectedUnknownProduct, nil
		}
		if !product.InStock() {
			return model.MutationRejectedOutOfStock, nil
		}
	}

	key := model.NewLineKey(productID, addons, s.truncateLen)
	cart.Lines[key] += quantity
	cart.AddOns[key] = addons

	if err := s.state.saveCart(ctx, sessionID, cart); err != nil {
		return model.MutationNoop, err
	}
	return model.MutationApplied, nil
}

// RemoveLine deletes the line from both mappings.
func (s *CartServiceImpl) RemoveLine(ctx context.Context, sessionID string, key model.LineKey) (model.MutationStatus, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	status, err := s.removeLineLocked(ctx, sessionID, key)
	metrics.RecordCartMutation("remove_line", string(status))
	return status, err
}

func (s *CartServiceImpl) removeLineLocked(ctx context.Context, sessionID string, key model.LineKey) (model.MutationStatus, error) {
	cart, err := s.state.loadCart(ctx, sessionID)
	if err != nil {
		return model.MutationNoop, err
	}
	if _, present := cart.Lines[key]; !present {
		return model.MutationNoop, nil
	}
	delete(cart.Lines, key)
	delete(cart.AddOns, key)

	if err := s.state.saveCart(ctx, sessionID, cart); err != nil {
		return model.MutationNoop, err
	}
	return model.MutationRemoved, nil
}

// UpdateQuantity sets the line's quantity.
func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, sessionID string, key model.LineKey, quantity int) (model.MutationStatus, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	status, err := s.updateQuantityLocked(ctx, sessionID, key, quantity)
	metrics.RecordCartMutation("update_quantity", string(status))
	return status, err
}

func (s *CartServiceImpl) updateQuantityLocked(ctx context.Context, sessionID string, key model.LineKey, quantity int) (model.MutationStatus, error) {
	if quantity <= 0 {
		return s.removeLineLocked(ctx, sessionID, key)
	}

	cart, err := s.state.loadCart(ctx, sessionID)
	if err != nil {
		return model.MutationNoop, err
	}
	if _, present := cart.Lines[key]; !present {
		return model.MutationNoop, nil
	}

	product, ok := s.catalog.Resolve(key.ProductID())
	if !ok {
		return model.MutationRejectedUnknownProduct, nil
	}
	// Soft guard against the cached stock level, not an authoritative
	// inventory check.
	if quantity > product.AvailableQuantity {
		return model.MutationRejectedExceedsStock, nil
	}

	cart.Lines[key] = quantity
	if err := s.state.saveCart(ctx, sessionID, cart); err != nil {
		return model.MutationNoop, err
	}
	return model.MutationApplied, nil
}

// Clear empties the cart and resets shipping and offer state.
func (s *CartServiceImpl) Clear(ctx context.Context, sessionID string) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	err := s.clearLocked(ctx, sessionID)
	status := model.MutationApplied
	if err != nil {
		status = model.MutationNoop
	}
	metrics.RecordCartMutation("clear", string(status))
	return err
}

func (s *CartServiceImpl) clearLocked(ctx context.Context, sessionID string) error {
	for _, key := range []string{
		cartKey(sessionID),
		addonsKey(sessionID),
		shippingKey(sessionID),
		offerKey(sessionID),
	} {
		if err := s.state.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// purgeBonusLines removes every bonus-product line from the cart.
func purgeBonusLines(cart *model.CartState) {
	for key := range cart.Lines {
		if model.IsBonusProduct(key.ProductID()) {
			delete(cart.Lines, key)
			delete(cart.AddOns, key)
		}
	}
}
