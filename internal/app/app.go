// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/config"
	"github.com/rs/zerolog/log"
)

// Application bundles the wired router with the components that need an
// explicit shutdown.
type Application struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(ctx context.Context, cfg *config.Config) (*Application, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return nil, err
	}

	// Initialize database components (MongoDB repositories and session store)
	dbComponents := InitializeDatabase(cfg.Database)

	// Initialize business services
	serviceComponents := InitializeServices(ctx, cfg, dbComponents)

	router := InitializeRouter(cfg, serviceComponents, dbComponents)

	return &Application{
		Router:   router,
		Services: serviceComponents,
		Database: dbComponents,
	}, nil
}

// Shutdown stops the catalog refresh loop and closes the database
// connection.
func (a *Application) Shutdown(ctx context.Context) {
	a.Services.Catalog.Stop()
	if a.Database != nil {
		if err := a.Database.DB.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close MongoDB connection")
		}
	}
}
