// Package i18n provides internationalization support for the storefront service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid login credentials.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyEmptyCart indicates checkout was attempted on an empty cart.
	ErrKeyEmptyCart = "error.empty_cart"
	// ErrKeyPaymentFailed indicates the payment order could not be created.
	ErrKeyPaymentFailed = "error.payment_failed"
	// ErrKeyUnknownBonusProduct indicates the claimed bonus product does not exist.
	ErrKeyUnknownBonusProduct = "error.unknown_bonus_product"
	// ErrKeyInvalidDiscount indicates an invalid discount type or value.
	ErrKeyInvalidDiscount = "error.invalid_discount"
)

// Success message translation keys.
const (
	// SuccessKeyOrderPlaced indicates a completed checkout.
	SuccessKeyOrderPlaced = "success.order_placed"
	// SuccessKeyOfferApplied indicates a promotional offer was applied.
	SuccessKeyOfferApplied = "success.offer_applied"
)
