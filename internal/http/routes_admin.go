package http

import (
	"github.com/gin-gonic/gin"
)

// AdminRoutes handles registration of the JWT-protected owner
// dashboard routes.
type AdminRoutes struct {
	handler *AdminHandler
}

// NewAdminRoutes creates a new AdminRoutes instance.
func NewAdminRoutes(handler *AdminHandler) *AdminRoutes {
	return &AdminRoutes{handler: handler}
}

// RegisterProtectedRoutes registers the dashboard routes on a group
// that already enforces JWT authentication.
func (r *AdminRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	admin := protected.Group("/admin")
	{
		admin.GET("/orders", r.handler.ListOrders)
		admin.GET("/orders/:reference", r.handler.GetOrder)
		admin.PATCH("/orders/:reference/status", r.handler.UpdateOrderStatus)
		admin.GET("/custom-orders", r.handler.ListCustomOrders)
		admin.GET("/events", r.handler.ListEvents)
		admin.PUT("/products", r.handler.UpsertProduct)
		admin.DELETE("/products/:id", r.handler.DeleteProduct)
		admin.POST("/catalog/refresh", r.handler.RefreshCatalog)
	}
}
