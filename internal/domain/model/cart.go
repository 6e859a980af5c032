package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMessageTruncateLen is the number of leading runes of the custom
// message that participate in the line key. Two messages that agree on this
// prefix collapse into the same cart line; this keeps the key space bounded
// and mirrors the storefront's historical behavior.
const DefaultMessageTruncateLen = 20

// AddOnSelection holds the per-line customization flags and the optional
// free-text message. The three add-on types are fixed; each carries a fixed
// surcharge configured at deployment.
//
// @Description Add-on customization flags for a cart line
type AddOnSelection struct {
	// GiftWrap wraps the item in gift paper.
	GiftWrap bool `json:"gift_wrap" example:"true"`
	// GreetingCard includes a printed greeting card.
	GreetingCard bool `json:"greeting_card" example:"false"`
	// FragilePack adds reinforced fragile packaging.
	FragilePack bool `json:"fragile_pack" example:"false"`
	// Message is the optional custom message (bounded length).
	Message string `json:"message,omitempty" example:"Happy birthday, Amma!"`
}

// None reports whether no add-on flag is enabled and no message is present.
func (a AddOnSelection) None() bool {
	return !a.GiftWrap && !a.GreetingCard && !a.FragilePack && a.Message == ""
}

// flagBits renders the three flags as a stable "gXcYfZ" token.
func (a AddOnSelection) flagBits() string {
	bit := func(b bool) byte {
		if b {
			return '1'
		}
		return '0'
	}
	return string([]byte{'g', bit(a.GiftWrap), 'c', bit(a.GreetingCard), 'f', bit(a.FragilePack)})
}

// truncateMessage returns the first n runes of the message.
func (a AddOnSelection) truncateMessage(n int) string {
	if n <= 0 {
		n = DefaultMessageTruncateLen
	}
	runes := []rune(a.Message)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// LineKey is the composite identifier of a cart line. It is derived
// deterministically from the product ID, the add-on flags, and the truncated
// custom message, so the same product with different customizations occupies
// separate lines while identical selections merge into one.
type LineKey string

// NewLineKey computes the line key for a product and add-on selection.
// truncateLen bounds the message prefix that participates in the key;
// pass 0 for the default.
func NewLineKey(productID int, addons AddOnSelection, truncateLen int) LineKey {
	return LineKey(fmt.Sprintf("%d|%s|%s", productID, addons.flagBits(), addons.truncateMessage(truncateLen)))
}

// ProductID extracts the product identifier embedded in the key.
// Returns 0 for malformed keys.
func (k LineKey) ProductID() int {
	s := string(k)
	idx := strings.IndexByte(s, '|')
	if idx < 0 {
		return 0
	}
	id, err := strconv.Atoi(s[:idx])
	if err != nil {
		return 0
	}
	return id
}

// CartState is the durable cart snapshot: line quantities plus the parallel
// add-on selections, keyed by line key. Quantities are always >= 1 for
// present keys; removal deletes the key rather than storing zero.
type CartState struct {
	Lines  map[LineKey]int            `json:"lines"`
	AddOns map[LineKey]AddOnSelection `json:"addons"`
}

// NewCartState returns an empty cart state with initialized maps.
func NewCartState() CartState {
	return CartState{
		Lines:  make(map[LineKey]int),
		AddOns: make(map[LineKey]AddOnSelection),
	}
}

// Empty reports whether the cart holds no lines.
func (s CartState) Empty() bool {
	return len(s.Lines) == 0
}

// MutationStatus describes the outcome of a cart mutation. Cart operations
// never return errors for invalid input; they report one of these statuses
// so callers and tests can observe what happened.
type MutationStatus string

const (
	// MutationApplied means the mutation took effect.
	MutationApplied MutationStatus = "applied"
	// MutationRemoved means the line was deleted (explicitly or via a
	// non-positive quantity update).
	MutationRemoved MutationStatus = "removed"
	// MutationRejectedUnknownProduct means the product is not in the cached
	// catalog; the cart is unchanged.
	MutationRejectedUnknownProduct MutationStatus = "rejected_unknown_product"
	// MutationRejectedOutOfStock means the product has no available stock.
	MutationRejectedOutOfStock MutationStatus = "rejected_out_of_stock"
	// MutationRejectedExceedsStock means the requested quantity exceeds the
	// cached available quantity. This is a soft client-side guard, not an
	// authoritative stock check.
	MutationRejectedExceedsStock MutationStatus = "rejected_exceeds_stock"
	// MutationNoop means nothing changed (for example removing an absent key).
	MutationNoop MutationStatus = "noop"
)

// Changed reports whether the status corresponds to a state change.
func (s MutationStatus) Changed() bool {
	return s == MutationApplied || s == MutationRemoved
}

// ShippingInfo carries the destination, the last computed shipping cost, and
// a busy flag for an in-flight rate lookup. Cost is forced to zero whenever
// the order subtotal meets the free-shipping threshold.
//
// @Description Destination and last computed shipping cost
type ShippingInfo struct {
	// Pincode is the destination postal code.
	Pincode string `json:"pincode" example:"560038"`
	// Cost is the last computed shipping cost.
	Cost float64 `json:"cost" example:"60"`
	// Busy indicates an in-flight rate lookup.
	Busy bool `json:"busy" example:"false"`
}

// formatDimensions renders dimensions as "LxWxH" with trailing zeros trimmed.
func formatDimensions(l, w, h float64) string {
	f := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return f(l) + "x" + f(w) + "x" + f(h)
}
