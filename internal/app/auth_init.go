package app

import (
	"fmt"
	"strings"

	"github.com/kalakaari/storefront-service/config"
	"golang.org/x/crypto/bcrypt"
)

// ValidateAuthConfig checks that an enabled owner-dashboard auth
// configuration is complete and usable. It is called once at startup so
// a broken OWNER_PASSWORD_HASH or missing JWT secret fails fast instead
// of surfacing as login errors later.
func ValidateAuthConfig(cfg config.AuthConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.OwnerEmail == "" {
		return fmt.Errorf("auth enabled but OWNER_EMAIL is not set")
	}
	if cfg.OwnerPasswordHash == "" {
		return fmt.Errorf("auth enabled but OWNER_PASSWORD_HASH is not set")
	}
	if _, err := bcrypt.Cost([]byte(cfg.OwnerPasswordHash)); err != nil {
		return fmt.Errorf("OWNER_PASSWORD_HASH is not a valid bcrypt hash: %w", err)
	}

	if cfg.JWTSecretKey == "" || strings.Contains(cfg.JWTSecretKey, "change-in-production") {
		return fmt.Errorf("auth enabled but JWT_SECRET_KEY is not set")
	}
	if cfg.JWTRefreshSecret == "" || strings.Contains(cfg.JWTRefreshSecret, "change-in-production") {
		return fmt.Errorf("auth enabled but JWT_REFRESH_SECRET_KEY is not set")
	}
	if cfg.JWTSecretKey == cfg.JWTRefreshSecret {
		return fmt.Errorf("JWT_SECRET_KEY and JWT_REFRESH_SECRET_KEY must differ")
	}

	if cfg.AccessTokenTTL <= 0 {
		return fmt.Errorf("access token TTL must be positive, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return fmt.Errorf("refresh token TTL %s must exceed access token TTL %s",
			cfg.RefreshTokenTTL, cfg.AccessTokenTTL)
	}

	return nil
}
