package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/internal/domain/dto"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/i18n"
	"github.com/kalakaari/storefront-service/internal/metrics"
	"github.com/kalakaari/storefront-service/internal/middleware"
	"github.com/kalakaari/storefront-service/internal/repository"
	"github.com/kalakaari/storefront-service/internal/service"
)

// Handler provides HTTP handlers for the storefront routes: cart,
// quote, shipping, offers and checkout. Every route is scoped to the
// session ID established by the session middleware.
type Handler struct {
	cart         service.CartService
	offers       service.OfferService
	pricing      service.PricingCalculator
	shipping     service.ShippingResolver
	checkout     service.CheckoutService
	catalog      service.Catalog
	customOrders repository.CustomOrdersRepositoryInterface
	events       service.EventService
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCustomOrders enables the custom commission endpoint.
func WithCustomOrders(repo repository.CustomOrdersRepositoryInterface) HandlerOption {
	return func(h *Handler) {
		h.customOrders = repo
	}
}

// WithEvents enables audit event recording for storefront actions.
func WithEvents(events service.EventService) HandlerOption {
	return func(h *Handler) {
		h.events = events
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(
	cart service.CartService,
	offers service.OfferService,
	pricing service.PricingCalculator,
	shipping service.ShippingResolver,
	checkout service.CheckoutService,
	catalog service.Catalog,
	opts ...HandlerOption,
) *Handler {
	h := &Handler{
		cart:     cart,
		offers:   offers,
		pricing:  pricing,
		shipping: shipping,
		checkout: checkout,
		catalog:  catalog,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// record stores an audit event for the current request. Recording is
// best-effort and never blocks the response.
func (h *Handler) record(c *gin.Context, action, message string, fields map[string]interface{}) {
	if h.events == nil {
		return
	}
	entry := &model.EventEntry{
		RequestID: middleware.GetRequestID(c),
		SessionID: middleware.GetSessionID(c),
		Action:    action,
		Message:   message,
		Fields:    fields,
	}
	go func() {
		ctx, cancel := newDetachedContext(2 * time.Second)
		defer cancel()
		_ = h.events.Record(ctx, entry)
	}()
}

// view assembles the combined cart view for the session.
func (h *Handler) view(c *gin.Context, sessionID string) (dto.CartViewResponse, error) {
	ctx := c.Request.Context()

	cart, err := h.cart.Cart(ctx, sessionID)
	if err != nil {
		return dto.CartViewResponse{}, err
	}
	offer, err := h.cart.Offer(ctx, sessionID)
	if err != nil {
		return dto.CartViewResponse{}, err
	}
	shipping, err := h.cart.Shipping(ctx, sessionID)
	if err != nil {
		return dto.CartViewResponse{}, err
	}

	return dto.CartViewResponse{
		Cart:     cart,
		Offer:    offer,
		Shipping: shipping,
		Quote:    h.pricing.Quote(cart, offer, shipping),
	}, nil
}

// respondWithView sends the refreshed cart view after a mutation.
func (h *Handler) respondWithView(c *gin.Context, status model.MutationStatus) {
	builder := NewResponseBuilder(c)

	view, err := h.view(c, middleware.GetSessionID(c))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.MutationResponse{
		Status:  status,
		Changed: status.Changed(),
		View:    view,
	})
}

// GetCart handles GET /api/cart requests.
//
// @Summary      Get session cart
// @Description  Returns the cart lines, the active offer, the shipping info and the derived price quote for the caller's session.
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier; generated when absent"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartViewResponse} "Current cart view"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.view(c, middleware.GetSessionID(c))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(view)
}

// AddLine handles POST /api/cart/lines requests.
//
// @Summary      Add a cart line
// @Description  Adds a product with optional add-ons to the cart, merging into an existing line when the line key matches. Invalid products or quantities are reported in the mutation status, not as HTTP errors.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Param        request body dto.AddLineRequest true "Line to add"
// @Success      200 {object} dto.SuccessResponse{data=dto.MutationResponse} "Mutation outcome"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart/lines [post]
func (h *Handler) AddLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.AddLineRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	sessionID := middleware.GetSessionID(c)
	status, err := h.cart.AddLine(c.Request.Context(), sessionID, req.ProductID, req.AddOns, req.Quantity)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordCartMutation("add_line", string(status))
	h.respondWithView(c, status)
}

// UpdateQuantity handles PATCH /api/cart/lines requests.
//
// @Summary      Set a line quantity
// @Description  Sets the absolute quantity of an existing cart line. A quantity of zero or below removes the line.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Param        request body dto.UpdateQuantityRequest true "Line key and new quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.MutationResponse} "Mutation outcome"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart/lines [patch]
func (h *Handler) UpdateQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.UpdateQuantityRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	sessionID := middleware.GetSessionID(c)
	status, err := h.cart.UpdateQuantity(c.Request.Context(), sessionID, model.LineKey(req.Key), req.Quantity)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordCartMutation("update_quantity", string(status))
	h.respondWithView(c, status)
}

// RemoveLine handles DELETE /api/cart/lines requests.
//
// @Summary      Remove a cart line
// @Description  Removes the cart line identified by the key query parameter. Removing an absent key is a no-op.
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Param        key query string true "Line key, e.g. 5|g1c0f0|"
// @Success      200 {object} dto.SuccessResponse{data=dto.MutationResponse} "Mutation outcome"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing key"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart/lines [delete]
func (h *Handler) RemoveLine(c *gin.Context) {
	builder := NewResponseBuilder(c)

	key := c.Query("key")
	if key == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "key query parameter is required", nil)
		return
	}

	sessionID := middleware.GetSessionID(c)
	status, err := h.cart.RemoveLine(c.Request.Context(), sessionID, model.LineKey(key))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordCartMutation("remove_line", string(status))
	h.respondWithView(c, status)
}

// ClearCart handles DELETE /api/cart requests.
//
// @Summary      Clear the cart
// @Description  Empties the cart, resets shipping info and cancels any active offer. Idempotent.
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartViewResponse} "Emptied cart view"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	sessionID := middleware.GetSessionID(c)
	if err := h.cart.Clear(c.Request.Context(), sessionID); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordCartMutation("clear", string(model.MutationApplied))

	view, err := h.view(c, sessionID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(view)
}

// GetQuote handles GET /api/cart/quote requests.
//
// @Summary      Get the price quote
// @Description  Returns the monetary breakdown for the session cart: line totals, discount, shipping and grand total.
// @Tags         Cart
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Success      200 {object} dto.SuccessResponse{data=model.Quote} "Price quote"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart/quote [get]
func (h *Handler) GetQuote(c *gin.Context) {
	builder := NewResponseBuilder(c)

	view, err := h.view(c, middleware.GetSessionID(c))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(view.Quote)
}

// ResolveShipping handles POST /api/shipping requests.
//
// @Summary      Resolve shipping cost
// @Description  Validates the destination pincode and resolves the shipping cost for the session cart. Rate lookup failures fall back to a fixed cost so checkout can always proceed.
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Param        request body dto.ShippingRequest true "Destination pincode"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartViewResponse} "Cart view with resolved shipping"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/shipping [post]
func (h *Handler) ResolveShipping(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ShippingRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	sessionID := middleware.GetSessionID(c)

	start := time.Now()
	info, err := h.shipping.Resolve(c.Request.Context(), sessionID, req.Pincode)
	if err != nil {
		metrics.RecordShippingLookup(time.Since(start), "error")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	metrics.RecordShippingLookup(time.Since(start), "success")

	h.record(c, "shipping_resolved", "Shipping cost resolved", map[string]interface{}{
		"pincode": info.Pincode,
		"cost":    info.Cost,
	})

	view, err := h.view(c, sessionID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(view)
}

// GetShipping handles GET /api/shipping requests.
//
// @Summary      Get shipping info
// @Description  Returns the session's current shipping info, including the busy flag for an in-flight rate lookup.
// @Tags         Shipping
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Success      200 {object} dto.SuccessResponse{data=model.ShippingInfo} "Shipping info"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/shipping [get]
func (h *Handler) GetShipping(c *gin.Context) {
	builder := NewResponseBuilder(c)

	info, err := h.cart.Shipping(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(info)
}

// ApplyDiscount handles POST /api/offers/discount requests.
//
// @Summary      Apply a discount offer
// @Description  Activates a flat or percentage discount for the session, replacing any bonus-product offer.
// @Tags         Offers
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Param        request body dto.ApplyDiscountRequest true "Discount to apply"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartViewResponse} "Cart view with the active offer"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid discount"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/offers/discount [post]
func (h *Handler) ApplyDiscount(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ApplyDiscountRequest](c)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidDiscount, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	sessionID := middleware.GetSessionID(c)
	offer, err := h.offers.ApplyDiscount(c.Request.Context(), sessionID, model.DiscountType(req.Type), req.Value, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDiscount) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidDiscount, err)
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	h.record(c, "offer_claimed", "Discount offer applied", map[string]interface{}{
		"type":  string(offer.DiscountType),
		"value": offer.DiscountValue,
		"code":  offer.Code,
	})

	view, err := h.view(c, sessionID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(view)
}

// ApplyBonus handles POST /api/offers/bonus requests.
//
// @Summary      Claim a bonus product
// @Description  Activates a free-bonus-product offer for the session, replacing any discount. The bonus product is added to the cart at price zero.
// @Tags         Offers
// @Accept       json
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Param        request body dto.ApplyBonusRequest true "Bonus product to claim"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartViewResponse} "Cart view with the active offer"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unknown bonus product"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/offers/bonus [post]
func (h *Handler) ApplyBonus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ApplyBonusRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	sessionID := middleware.GetSessionID(c)
	offer, err := h.offers.ApplyBonusProduct(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownBonusProduct) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyUnknownBonusProduct, err)
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	h.record(c, "offer_claimed", "Bonus product claimed", map[string]interface{}{
		"product_id": offer.BonusProductID,
	})

	view, err := h.view(c, sessionID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(view)
}

// ClearOffer handles DELETE /api/offers requests.
//
// @Summary      Cancel the active offer
// @Description  Cancels the session's active offer and removes any bonus-product cart lines. Idempotent.
// @Tags         Offers
// @Produce      json
// @Param        X-Session-ID header string false "Session identifier"
// @Success      200 {object} dto.SuccessResponse{data=dto.CartViewResponse} "Cart view without an offer"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/offers [delete]
func (h *Handler) ClearOffer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	sessionID := middleware.GetSessionID(c)
	if err := h.offers.ClearOffer(c.Request.Context(), sessionID); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	view, err := h.view(c, sessionID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(view)
}

// Checkout handles POST /api/checkout requests.
//
// @Summary      Checkout the cart
// @Description  Creates a payment order, persists the order record and clears the session cart. Items that cannot be persisted after retries are skipped and the order status degrades to completed_with_warnings. Supports idempotency via Idempotency-Key header.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        X-Session-ID header string false "Session identifier"
// @Param        request body dto.CheckoutRequest true "Customer details"
// @Success      201 {object} dto.SuccessResponse{data=model.Order} "Placed order"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or empty cart"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      502 {object} dto.ErrorResponse "Bad gateway - payment order creation failed"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.CheckoutRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	sessionID := middleware.GetSessionID(c)
	order, err := h.checkout.Checkout(c.Request.Context(), sessionID, service.CustomerDetails{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			builder.Error(http.StatusBadRequest, i18n.ErrKeyEmptyCart, err)
		case errors.Is(err, service.ErrPaymentFailed):
			builder.Error(http.StatusBadGateway, i18n.ErrKeyPaymentFailed, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	h.record(c, "checkout", "Order placed", map[string]interface{}{
		"reference":     order.Reference,
		"grand_total":   order.GrandTotal,
		"skipped_items": order.SkippedItems,
		"status":        string(order.Checkout),
	})

	builder.SuccessCreated(order)
}

// ListProducts handles GET /api/products requests.
//
// @Summary      List catalog products
// @Description  Returns the cached catalog snapshot sorted by product ID.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.Product} "Catalog products"
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)
	builder.SuccessOK(h.catalog.Snapshot())
}

// CreateCustomOrder handles POST /api/custom-orders requests.
//
// @Summary      Request a custom commission
// @Description  Records a custom commission request for the shop owner to review. Returns 503 when the database is not configured.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.CustomOrderRequest true "Commission details"
// @Success      201 {object} dto.SuccessResponse{data=model.CustomOrderRequest} "Recorded request"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable - persistence disabled"
// @Router       /api/custom-orders [post]
func (h *Handler) CreateCustomOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.customOrders == nil {
		builder.ErrorWithMessage(http.StatusServiceUnavailable, "custom orders are not available", nil)
		return
	}

	req, err := BuildRequest[dto.CustomOrderRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	request := &model.CustomOrderRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
		ImageRefs:   req.ImageRefs,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.customOrders.Create(c.Request.Context(), request); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.record(c, "custom_order_requested", "Custom commission requested", map[string]interface{}{
		"email": req.Email,
	})

	builder.SuccessCreated(request)
}
