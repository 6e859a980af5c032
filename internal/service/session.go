package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/kvstore"
)

// Storage key namespaces. Each session owns one entry per namespace.
const (
	cartKeyPrefix     = "cart:"
	addonsKeyPrefix   = "addons:"
	shippingKeyPrefix = "shipping:"
	offerKeyPrefix    = "offer:"
)

func cartKey(sessionID string) string     { return cartKeyPrefix + sessionID }
func addonsKey(sessionID string) string   { return addonsKeyPrefix + sessionID }
func shippingKey(sessionID string) string { return shippingKeyPrefix + sessionID }
func offerKey(sessionID string) string    { return offerKeyPrefix + sessionID }

// sessionLocks serializes mutations per session. Lock striping keeps
// the lock table bounded regardless of session count; cross-session
// contention on a stripe is harmless.
type sessionLocks struct {
	shards [64]sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{}
}

// lock acquires the stripe for sessionID and returns its unlock func.
func (l *sessionLocks) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	m := &l.shards[h.Sum32()%uint32(len(l.shards))]
	m.Lock()
	return m.Unlock
}

// sessionState wraps the key-value store with typed accessors for the
// four per-session namespaces. Absent keys decode to zero values so a
// fresh session behaves like an explicit empty one.
type sessionState struct {
	store kvstore.Store
}

func (s sessionState) loadCart(ctx context.Context, sessionID string) (model.CartState, error) {
	state := model.NewCartState()
	if err := s.loadJSON(ctx, cartKey(sessionID), &state.Lines); err != nil {
		return state, err
	}
	if err := s.loadJSON(ctx, addonsKey(sessionID), &state.AddOns); err != nil {
		return state, err
	}
	if state.Lines == nil {
		state.Lines = make(map[model.LineKey]int)
	}
	if state.AddOns == nil {
		state.AddOns = make(map[model.LineKey]model.AddOnSelection)
	}
	return state, nil
}

// saveCart persists the line and add-on mappings as separate entries,
// so each broadcasts its own change notification.
func (s sessionState) saveCart(ctx context.Context, sessionID string, state model.CartState) error {
	if err := s.saveJSON(ctx, cartKey(sessionID), state.Lines); err != nil {
		return err
	}
	return s.saveJSON(ctx, addonsKey(sessionID), state.AddOns)
}

func (s sessionState) loadShipping(ctx context.Context, sessionID string) (model.ShippingInfo, error) {
	var info model.ShippingInfo
	err := s.loadJSON(ctx, shippingKey(sessionID), &info)
	return info, err
}

func (s sessionState) saveShipping(ctx context.Context, sessionID string, info model.ShippingInfo) error {
	return s.saveJSON(ctx, shippingKey(sessionID), info)
}

func (s sessionState) loadOffer(ctx context.Context, sessionID string) (model.Offer, error) {
	var offer model.Offer
	if err := s.loadJSON(ctx, offerKey(sessionID), &offer); err != nil {
		return model.NoOffer(), err
	}
	return offer.Normalize(), nil
}

func (s sessionState) saveOffer(ctx context.Context, sessionID string, offer model.Offer) error {
	return s.saveJSON(ctx, offerKey(sessionID), offer)
}

func (s sessionState) loadJSON(ctx context.Context, key string, out any) error {
	data, found, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s sessionState) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
