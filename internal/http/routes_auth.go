package http

import (
	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/internal/middleware"
	"github.com/kalakaari/storefront-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService, events service.EventService) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService, events),
		authService: authService,
	}
}

// RegisterPublicRoutes registers the unauthenticated auth routes.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
		auth.POST("/refresh", r.handler.RefreshToken)
	}
}

// GetProtectedGroup returns a router group with JWT auth middleware
// applied, for registering the owner dashboard routes.
func (r *AuthRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(limiter.UserRateLimit())
	}

	return protected
}
