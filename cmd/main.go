// Package main is the entry point for the storefront-service application.
//
// @title           Storefront Service API
// @version         1.0.0
// @description     Cart, pricing, shipping and checkout API for the Kalakaari
//
//	handmade-goods storefront. Carts are keyed by the X-Session-ID header; owner
//	dashboard endpoints require a bearer token.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/kalakaari/storefront-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Owner access token, formatted as "Bearer {token}".
//
// @tag.name        Cart
// @tag.description Cart line mutations and quotes
//
// @tag.name        Offers
// @tag.description Discount and bonus product offers
//
// @tag.name        Shipping
// @tag.description Shipping cost resolution
//
// @tag.name        Checkout
// @tag.description Order placement
//
// @tag.name        Catalog
// @tag.description Product listing
//
// @tag.name        Admin
// @tag.description Owner dashboard operations
//
// @tag.name        Auth
// @tag.description Owner authentication endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/kalakaari/storefront-service/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.InitializeApp(ctx, &cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Initialization failed")
	}
	defer application.Shutdown(context.Background())

	server := app.NewServer(application.Router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
