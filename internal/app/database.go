// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/circuitbreaker"
	"github.com/kalakaari/storefront-service/internal/kvstore"
	"github.com/kalakaari/storefront-service/internal/repository"
	"github.com/kalakaari/storefront-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB *repository.MongoDB

	// SessionStore backs the durable per-session cart, offer and
	// shipping state.
	SessionStore kvstore.Store

	ProductsRepo     repository.ProductsRepositoryInterface
	OrdersRepo       repository.OrdersRepositoryInterface
	CustomOrdersRepo repository.CustomOrdersRepositoryInterface
	EventsRepo       repository.EventsRepositoryInterface
	TokenRepo        repository.TokenRepositoryInterface
	EventService     service.EventService

	ProductsCircuitBreaker *circuitbreaker.CircuitBreaker
	OrdersCircuitBreaker   *circuitbreaker.CircuitBreaker
	EventsCircuitBreaker   *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes the MongoDB connection and creates the
// repositories and the durable session store. Returns nil if the database
// is disabled or the connection fails; the storefront then runs on the
// in-memory store without an order archive.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	if cfg.EventsTTL > 0 {
		if err := db.SetEventsTTL(context.Background(), cfg.EventsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set events TTL index (may already exist)")
		}
	}

	newBreaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             name,
		})
	}

	productsCB := newBreaker("mongodb-products")
	ordersCB := newBreaker("mongodb-orders")
	eventsCB := newBreaker("mongodb-events")

	productsRepo := repository.NewProductsRepositoryWithCircuitBreaker(repository.NewProductsRepository(db), productsCB)
	ordersRepo := repository.NewOrdersRepositoryWithCircuitBreaker(repository.NewOrdersRepository(db), ordersCB)
	eventsRepo := repository.NewEventsRepositoryWithCircuitBreaker(repository.NewEventsRepository(db), eventsCB)

	return &DatabaseComponents{
		DB:                     db,
		SessionStore:           kvstore.NewMongoStore(db.KV),
		ProductsRepo:           productsRepo,
		OrdersRepo:             ordersRepo,
		CustomOrdersRepo:       repository.NewCustomOrdersRepository(db),
		EventsRepo:             eventsRepo,
		TokenRepo:              repository.NewTokenRepository(db),
		EventService:           service.NewEventService(eventsRepo),
		ProductsCircuitBreaker: productsCB,
		OrdersCircuitBreaker:   ordersCB,
		EventsCircuitBreaker:   eventsCB,
	}
}
