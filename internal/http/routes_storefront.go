package http

import (
	"github.com/gin-gonic/gin"
)

// StorefrontRoutes handles registration of the public storefront
// routes. All of them are session-scoped and require no authentication.
type StorefrontRoutes struct {
	handler *Handler
}

// NewStorefrontRoutes creates a new StorefrontRoutes instance.
func NewStorefrontRoutes(handler *Handler) *StorefrontRoutes {
	return &StorefrontRoutes{handler: handler}
}

// RegisterPublicRoutes registers the storefront routes.
func (r *StorefrontRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", r.handler.ListProducts)

	cart := rg.Group("/cart")
	{
		cart.GET("", r.handler.GetCart)
		cart.DELETE("", r.handler.ClearCart)
		cart.GET("/quote", r.handler.GetQuote)
		cart.POST("/lines", r.handler.AddLine)
		cart.PATCH("/lines", r.handler.UpdateQuantity)
		cart.DELETE("/lines", r.handler.RemoveLine)
	}

	rg.GET("/shipping", r.handler.GetShipping)
	rg.POST("/shipping", r.handler.ResolveShipping)

	offers := rg.Group("/offers")
	{
		offers.POST("/discount", r.handler.ApplyDiscount)
		offers.POST("/bonus", r.handler.ApplyBonus)
		offers.DELETE("", r.handler.ClearOffer)
	}

	rg.POST("/checkout", r.handler.Checkout)
	rg.POST("/custom-orders", r.handler.CreateCustomOrder)
}

// GetHandler returns the underlying storefront handler.
func (r *StorefrontRoutes) GetHandler() *Handler {
	return r.handler
}
