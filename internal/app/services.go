package app

import (
	"context"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/gateway"
	"github.com/kalakaari/storefront-service/internal/kvstore"
	"github.com/kalakaari/storefront-service/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds the storefront business services.
type ServiceComponents struct {
	Catalog  *service.CatalogService
	Cart     *service.CartServiceImpl
	Offers   *service.OfferServiceImpl
	Pricing  service.PricingCalculator
	Shipping *service.ShippingResolverService
	Checkout *service.CheckoutServiceImpl
}

// InitializeServices wires the catalog, cart, pricing, shipping and
// checkout services on top of the session store and the optional
// database components. dbComponents may be nil; the cart then lives in
// memory and checkout skips the order archive.
func InitializeServices(ctx context.Context, cfg *config.Config, dbComponents *DatabaseComponents) *ServiceComponents {
	var sessionStore kvstore.Store
	if dbComponents != nil {
		sessionStore = dbComponents.SessionStore
	} else {
		log.Warn().Msg("Database disabled - cart sessions held in memory only")
		sessionStore = kvstore.NewMemoryStore()
	}

	catalogOpts := []service.CatalogOption{}
	if cfg.Catalog.SeedFile != "" {
		catalogOpts = append(catalogOpts, service.WithSeedFile(cfg.Catalog.SeedFile))
	}
	if cfg.Catalog.RefreshInterval > 0 {
		catalogOpts = append(catalogOpts, service.WithRefreshInterval(cfg.Catalog.RefreshInterval))
	}

	var catalog *service.CatalogService
	if dbComponents != nil {
		catalog = service.NewCatalogService(dbComponents.ProductsRepo, catalogOpts...)
	} else {
		catalog = service.NewCatalogService(nil, catalogOpts...)
	}
	catalog.Start(ctx)

	cart := service.NewCartService(sessionStore, catalog, cfg.Pricing.MessageTruncateLen)
	offers := service.NewOfferService(cart)
	pricing := service.NewPricingCalculator(catalog, cfg.Pricing)

	rateClient := gateway.NewShippingRateClient(cfg.Shipping)
	rateCache := service.NewRateCache(cfg.Shipping.RateCacheSize, cfg.Shipping.RateCacheTTL)
	shipping := service.NewShippingResolver(cart, pricing, catalog, rateClient, rateCache, cfg.Shipping)

	paymentClient := gateway.NewPaymentGatewayClient(cfg.Payment)
	var checkout *service.CheckoutServiceImpl
	if dbComponents != nil {
		checkout = service.NewCheckoutService(cart, pricing, paymentClient, dbComponents.OrdersRepo, cfg.Checkout)
	} else {
		checkout = service.NewCheckoutService(cart, pricing, paymentClient, nil, cfg.Checkout)
	}

	return &ServiceComponents{
		Catalog:  catalog,
		Cart:     cart,
		Offers:   offers,
		Pricing:  pricing,
		Shipping: shipping,
		Checkout: checkout,
	}
}
