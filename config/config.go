// Package config provides configuration management for the storefront service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Pricing  PricingConfig
	Shipping ShippingConfig
	Checkout CheckoutConfig
	Payment  PaymentConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
	SwaggerUser string
	SwaggerPass string
}

// PricingConfig holds the business constants of the cart/pricing engine.
// These are deployment inputs, not guessed values: the free-shipping
// threshold and fallback shipping cost in particular are preserved from
// whatever the deployment supplies.
type PricingConfig struct {
	// GiftWrapCharge, GreetingCardCharge, FragilePackCharge are the fixed
	// per-unit surcharges for the three add-on types.
	GiftWrapCharge     float64
	GreetingCardCharge float64
	FragilePackCharge  float64
	// MessageTruncateLen is the number of leading message runes that
	// participate in the cart line key.
	MessageTruncateLen int
	// FreeShippingThreshold is the pre-shipping total at which shipping
	// becomes free.
	FreeShippingThreshold float64
}

// ShippingConfig holds shipping-rate resolution configuration.
type ShippingConfig struct {
	// RateURL is the external rate-lookup endpoint. Empty disables remote
	// lookups; the fallback cost is used instead.
	RateURL string
	APIKey  string
	Timeout time.Duration
	// FallbackCost is charged when the rate lookup fails for any reason.
	FallbackCost float64
	// PincodeLength is the required digit count of a destination postal code.
	PincodeLength int
	// VolumetricDivisor converts cm^3 to volumetric grams.
	VolumetricDivisor float64
	// FreeShippingThreshold mirrors PricingConfig: a subtotal at or above
	// it skips the external lookup entirely.
	FreeShippingThreshold float64
	// RateCacheSize/RateCacheTTL bound the rate-lookup cache. Zero size
	// disables caching.
	RateCacheSize int
	RateCacheTTL  time.Duration
}

// CheckoutConfig holds the order-persistence retry policy.
type CheckoutConfig struct {
	// ItemRetries is the number of attempts per line item write.
	ItemRetries int
	// RetryBackoff is the linear backoff step between attempts.
	RetryBackoff time.Duration
}

// PaymentConfig holds the payment-order creation endpoint configuration.
type PaymentConfig struct {
	URL      string
	APIKey   string
	Currency string
	Timeout  time.Duration
}

// AuthConfig holds owner-dashboard authentication configuration.
type AuthConfig struct {
	Enabled bool
	// OwnerEmail/OwnerPasswordHash identify the single dashboard account.
	// The hash is bcrypt; generate one with scripts/generate_keys.go.
	OwnerEmail        string
	OwnerName         string
	OwnerPasswordHash string
	JWTSecretKey      string
	JWTRefreshSecret  string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	EventsTTL    time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CatalogConfig holds catalog loading configuration.
type CatalogConfig struct {
	// SeedFile is an optional JSON file of products loaded when the
	// database is disabled or empty.
	SeedFile string
	// RefreshInterval re-fetches the catalog snapshot in the background.
	// Zero disables refresh; the snapshot then only changes on restart.
	RefreshInterval time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			RateLimit:   getEnvInt("RATE_LIMIT", 100),
			RateWindow:  getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins: parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser: getEnv("SWAGGER_USER", ""),
			SwaggerPass: getEnv("SWAGGER_PASS", ""),
		},
		Pricing: PricingConfig{
			GiftWrapCharge:        getEnvFloat("ADDON_GIFT_WRAP_CHARGE", 10),
			GreetingCardCharge:    getEnvFloat("ADDON_GREETING_CARD_CHARGE", 15),
			FragilePackCharge:     getEnvFloat("ADDON_FRAGILE_PACK_CHARGE", 25),
			MessageTruncateLen:    getEnvInt("MESSAGE_TRUNCATE_LEN", 20),
			FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 1000),
		},
		Shipping: ShippingConfig{
			RateURL:               getEnv("SHIPPING_RATE_URL", ""),
			APIKey:                getEnv("SHIPPING_RATE_API_KEY", ""),
			Timeout:               getEnvDuration("SHIPPING_RATE_TIMEOUT", 10*time.Second),
			FallbackCost:          getEnvFloat("SHIPPING_FALLBACK_COST", 80),
			PincodeLength:         getEnvInt("SHIPPING_PINCODE_LENGTH", 6),
			VolumetricDivisor:     getEnvFloat("SHIPPING_VOLUMETRIC_DIVISOR", 5),
			FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 1000),
			RateCacheSize:         getEnvInt("SHIPPING_RATE_CACHE_SIZE", 500),
			RateCacheTTL:          getEnvDuration("SHIPPING_RATE_CACHE_TTL", 10*time.Minute),
		},
		Checkout: CheckoutConfig{
			ItemRetries:  getEnvInt("CHECKOUT_ITEM_RETRIES", 3),
			RetryBackoff: getEnvDuration("CHECKOUT_RETRY_BACKOFF", 200*time.Millisecond),
		},
		Payment: PaymentConfig{
			URL:      getEnv("PAYMENT_ORDER_URL", ""),
			APIKey:   getEnv("PAYMENT_API_KEY", ""),
			Currency: getEnv("PAYMENT_CURRENCY", "INR"),
			Timeout:  getEnvDuration("PAYMENT_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			Enabled:           getEnvBool("AUTH_ENABLED", false),
			OwnerEmail:        getEnv("OWNER_EMAIL", ""),
			OwnerName:         getEnv("OWNER_NAME", "Shop Owner"),
			OwnerPasswordHash: getEnv("OWNER_PASSWORD_HASH", ""),
			JWTSecretKey:      getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			JWTRefreshSecret:  getEnv("JWT_REFRESH_SECRET_KEY", "your-refresh-secret-key-change-in-production"),
			AccessTokenTTL:    getEnvDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL:   getEnvDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "storefront"),
			EventsTTL:                      getEnvDuration("MONGODB_EVENTS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			SeedFile:        getEnv("CATALOG_SEED_FILE", ""),
			RefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
