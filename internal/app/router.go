package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/http"
	"github.com/kalakaari/storefront-service/internal/service"
	"github.com/rs/zerolog/log"
)

// InitializeRouter builds the HTTP router from the service and database
// components. Owner dashboard routes are registered only when auth is
// enabled and the token repository is available.
func InitializeRouter(cfg *config.Config, services *ServiceComponents, dbComponents *DatabaseComponents) *gin.Engine {
	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
	}

	handlerOpts := []http.HandlerOption{}
	var events service.EventService
	if dbComponents != nil {
		events = dbComponents.EventService
		handlerOpts = append(handlerOpts,
			http.WithCustomOrders(dbComponents.CustomOrdersRepo),
			http.WithEvents(events),
		)
		routerCfg.EventService = events
	}

	handler := http.NewHandler(
		services.Cart,
		services.Offers,
		services.Pricing,
		services.Shipping,
		services.Checkout,
		services.Catalog,
		handlerOpts...,
	)

	var adminHandler *http.AdminHandler
	if cfg.Auth.Enabled {
		if dbComponents == nil {
			log.Warn().Msg("Auth enabled but database disabled - owner dashboard unavailable")
		} else {
			routerCfg.AuthService = service.NewAuthService(dbComponents.TokenRepo, cfg.Auth)
			adminHandler = http.NewAdminHandler(
				dbComponents.OrdersRepo,
				dbComponents.CustomOrdersRepo,
				dbComponents.ProductsRepo,
				events,
				services.Catalog,
			)
		}
	}

	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		db := dbComponents.DB
		healthHandler.RegisterChecker("database", http.HealthCheckerFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.HealthCheck(ctx)
		}))
		healthHandler.RegisterCircuitBreaker("mongodb-products", dbComponents.ProductsCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb-orders", dbComponents.OrdersCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb-events", dbComponents.EventsCircuitBreaker)
	}

	return http.NewRouter(handler, adminHandler, healthHandler, routerCfg)
}
