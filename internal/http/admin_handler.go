package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/internal/domain/dto"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/i18n"
	"github.com/kalakaari/storefront-service/internal/repository"
	"github.com/kalakaari/storefront-service/internal/service"
)

// defaultAdminPageSize bounds admin list queries when the caller does
// not pass an explicit limit.
const defaultAdminPageSize = 50

// AdminHandler provides the JWT-protected owner dashboard endpoints:
// order management, the audit trail and catalog maintenance.
type AdminHandler struct {
	orders       repository.OrdersRepositoryInterface
	customOrders repository.CustomOrdersRepositoryInterface
	products     repository.ProductsRepositoryInterface
	events       service.EventService
	catalog      service.Catalog
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(
	orders repository.OrdersRepositoryInterface,
	customOrders repository.CustomOrdersRepositoryInterface,
	products repository.ProductsRepositoryInterface,
	events service.EventService,
	catalog service.Catalog,
) *AdminHandler {
	return &AdminHandler{
		orders:       orders,
		customOrders: customOrders,
		products:     products,
		events:       events,
		catalog:      catalog,
	}
}

// parsePagination reads limit and skip query parameters.
func parsePagination(c *gin.Context) (limit, skip int) {
	limit = defaultAdminPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("skip")); err == nil && v > 0 {
		skip = v
	}
	return limit, skip
}

// parseTimeRange reads optional RFC3339 start and end query parameters.
func parseTimeRange(c *gin.Context) (start, end *time.Time) {
	if v := c.Query("start"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			start = &t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			end = &t
		}
	}
	return start, end
}

// ListOrders handles GET /api/admin/orders requests.
//
// @Summary      List orders
// @Description  Returns orders matching the optional status, session and time-range filters, newest first.
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Filter by order status"
// @Param        session_id query string false "Filter by session"
// @Param        start query string false "RFC3339 lower bound on creation time"
// @Param        end query string false "RFC3339 upper bound on creation time"
// @Param        limit query int false "Page size" default(50)
// @Param        skip query int false "Offset"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Order} "Matching orders"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, skip := parsePagination(c)
	start, end := parseTimeRange(c)
	opts := repository.OrderQueryOptions{
		Status:    model.OrderStatus(c.Query("status")),
		SessionID: c.Query("session_id"),
		StartTime: start,
		EndTime:   end,
		Limit:     limit,
		Skip:      skip,
	}

	orders, err := h.orders.List(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(orders)
}

// GetOrder handles GET /api/admin/orders/:reference requests.
//
// @Summary      Get an order
// @Description  Returns the order with the given reference.
// @Tags         Admin
// @Produce      json
// @Param        reference path string true "Order reference"
// @Success      200 {object} dto.SuccessResponse{data=model.Order} "Order"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/orders/{reference} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	order, err := h.orders.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	if order == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
		return
	}

	builder.SuccessOK(order)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:reference/status requests.
//
// @Summary      Update order status
// @Description  Moves the order to a new fulfillment status.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        reference path string true "Order reference"
// @Param        request body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.SuccessResponse{data=model.Order} "Updated order"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unknown status"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/orders/{reference}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.UpdateOrderStatusRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	status := model.OrderStatus(req.Status)
	if !model.ValidOrderStatus(status) {
		builder.ErrorWithMessage(http.StatusBadRequest, "unknown order status: "+req.Status, nil)
		return
	}

	reference := c.Param("reference")
	order, err := h.orders.UpdateStatus(c.Request.Context(), reference, status)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	if order == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
		return
	}

	if h.events != nil {
		entry := &model.EventEntry{
			Action:  "order_status_changed",
			Message: "Order status updated",
			Fields: map[string]interface{}{
				"reference": reference,
				"status":    req.Status,
			},
		}
		go func() {
			ctx, cancel := newDetachedContext(2 * time.Second)
			defer cancel()
			_ = h.events.Record(ctx, entry)
		}()
	}

	builder.SuccessOK(order)
}

// ListCustomOrders handles GET /api/admin/custom-orders requests.
//
// @Summary      List custom commission requests
// @Description  Returns recorded custom commission requests, newest first.
// @Tags         Admin
// @Produce      json
// @Param        limit query int false "Page size" default(50)
// @Success      200 {object} dto.SuccessResponse{data=[]model.CustomOrderRequest} "Commission requests"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/custom-orders [get]
func (h *AdminHandler) ListCustomOrders(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, _ := parsePagination(c)
	requests, err := h.customOrders.List(c.Request.Context(), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(requests)
}

// ListEvents handles GET /api/admin/events requests.
//
// @Summary      Query the audit trail
// @Description  Returns audit events matching the optional action, session and time-range filters, newest first.
// @Tags         Admin
// @Produce      json
// @Param        action query string false "Filter by action"
// @Param        session_id query string false "Filter by session"
// @Param        start query string false "RFC3339 lower bound"
// @Param        end query string false "RFC3339 upper bound"
// @Param        limit query int false "Page size" default(50)
// @Param        skip query int false "Offset"
// @Success      200 {object} dto.SuccessResponse{data=[]model.EventEntry} "Matching events"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/events [get]
func (h *AdminHandler) ListEvents(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit, skip := parsePagination(c)
	start, end := parseTimeRange(c)
	opts := model.EventQueryOptions{
		Action:    c.Query("action"),
		SessionID: c.Query("session_id"),
		StartTime: start,
		EndTime:   end,
		Limit:     limit,
		Skip:      skip,
	}

	entries, err := h.events.Query(c.Request.Context(), opts)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(entries)
}

// UpsertProduct handles PUT /api/admin/products requests.
//
// @Summary      Create or update a product
// @Description  Upserts a catalog product and refreshes the cached snapshot.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body model.Product true "Product"
// @Success      200 {object} dto.SuccessResponse{data=model.Product} "Stored product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid product"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/products [put]
func (h *AdminHandler) UpsertProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if product.ID <= 0 || model.IsBonusProduct(product.ID) {
		builder.ErrorWithMessage(http.StatusBadRequest, "product id must be positive and outside the bonus range", nil)
		return
	}
	if product.UnitPrice < 0 || product.AvailableQuantity < 0 {
		builder.ErrorWithMessage(http.StatusBadRequest, "price and quantity must not be negative", nil)
		return
	}

	if err := h.products.Upsert(c.Request.Context(), &product); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	// Catalog refresh failure leaves a stale snapshot; surfaced via
	// the degraded flag rather than failing the write.
	_ = h.catalog.Refresh(c.Request.Context())

	builder.SuccessOK(product)
}

// DeleteProduct handles DELETE /api/admin/products/:id requests.
//
// @Summary      Delete a product
// @Description  Removes a catalog product and refreshes the cached snapshot.
// @Tags         Admin
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} dto.SuccessResponse "Deleted"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid id"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		builder.ErrorWithMessage(http.StatusBadRequest, "product id must be a positive integer", err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	_ = h.catalog.Refresh(c.Request.Context())

	builder.SuccessOK(map[string]interface{}{"deleted": id})
}

// RefreshCatalog handles POST /api/admin/catalog/refresh requests.
//
// @Summary      Refresh the catalog snapshot
// @Description  Re-fetches the cached catalog from the backing store. Reports whether the snapshot is degraded.
// @Tags         Admin
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Refresh outcome"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      502 {object} dto.ErrorResponse "Bad gateway - refresh failed"
// @Security     BearerAuth
// @Router       /api/admin/catalog/refresh [post]
func (h *AdminHandler) RefreshCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		builder.Error(http.StatusBadGateway, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(map[string]interface{}{
		"products": len(h.catalog.Snapshot()),
		"degraded": h.catalog.Degraded(),
	})
}
