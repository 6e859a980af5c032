//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/kalakaari/storefront-service/config"
	"github.com/stretchr/testify/assert"
)

// ownerHash is a bcrypt hash used only for config validation tests.
const ownerHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func validAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:           true,
		OwnerEmail:        "owner@kalakaari.in",
		OwnerName:         "Shop Owner",
		OwnerPasswordHash: ownerHash,
		JWTSecretKey:      "test-access-secret",
		JWTRefreshSecret:  "test-refresh-secret",
		AccessTokenTTL:    15 * time.Minute,
		RefreshTokenTTL:   7 * 24 * time.Hour,
	}
}

func TestValidateAuthConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.AuthConfig)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: nil,
		},
		{
			name:   "disabled config skips validation",
			mutate: func(c *config.AuthConfig) { *c = config.AuthConfig{Enabled: false} },
		},
		{
			name:    "missing owner email",
			mutate:  func(c *config.AuthConfig) { c.OwnerEmail = "" },
			wantErr: "OWNER_EMAIL",
		},
		{
			name:    "missing password hash",
			mutate:  func(c *config.AuthConfig) { c.OwnerPasswordHash = "" },
			wantErr: "OWNER_PASSWORD_HASH",
		},
		{
			name:    "plaintext password instead of hash",
			mutate:  func(c *config.AuthConfig) { c.OwnerPasswordHash = "hunter2" },
			wantErr: "bcrypt",
		},
		{
			name:    "missing access secret",
			mutate:  func(c *config.AuthConfig) { c.JWTSecretKey = "" },
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name:    "placeholder access secret",
			mutate:  func(c *config.AuthConfig) { c.JWTSecretKey = "your-secret-key-change-in-production" },
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name:    "missing refresh secret",
			mutate:  func(c *config.AuthConfig) { c.JWTRefreshSecret = "" },
			wantErr: "JWT_REFRESH_SECRET_KEY",
		},
		{
			name:    "identical secrets",
			mutate:  func(c *config.AuthConfig) { c.JWTRefreshSecret = c.JWTSecretKey },
			wantErr: "must differ",
		},
		{
			name:    "zero access TTL",
			mutate:  func(c *config.AuthConfig) { c.AccessTokenTTL = 0 },
			wantErr: "access token TTL",
		},
		{
			name:    "refresh TTL not longer than access TTL",
			mutate:  func(c *config.AuthConfig) { c.RefreshTokenTTL = c.AccessTokenTTL },
			wantErr: "must exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAuthConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := ValidateAuthConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
