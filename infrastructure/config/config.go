package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	ProductsTable string
	UsersTable    string
	OrdersTable   string
	CouponsTable  string
	EventBusName  string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Cache configuration
	CacheDefaultTTL      time.Duration // zero means entries live until invalidated
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	// Catalog configuration
	ProductsPerPage int

	// Payment gateway
	PaymentEndpoint string
	PaymentKey      string
	PaymentCurrency string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":4000"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		ProductsTable: getEnv("PRODUCTS_TABLE", "storefront-products"),
		UsersTable:    getEnv("USERS_TABLE", "storefront-users"),
		OrdersTable:   getEnv("ORDERS_TABLE", "storefront-orders"),
		CouponsTable:  getEnv("COUPONS_TABLE", "storefront-coupons"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "storefront-events"),

		// Lambda configuration
		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		// Cache configuration
		CacheDefaultTTL:      getEnvDuration("CACHE_DEFAULT_TTL", 0),
		CacheMaxEntries:      getEnvInt("CACHE_MAX_ENTRIES", 10000),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),

		// Catalog configuration
		ProductsPerPage: getEnvInt("PRODUCT_PER_PAGE", 8),

		// Payment gateway
		PaymentEndpoint: getEnv("PAYMENT_ENDPOINT", "https://api.stripe.com"),
		PaymentKey:      getEnv("PAYMENT_KEY", ""),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "inr"),

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "storefront-backend"),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.PaymentKey == "" {
			return fmt.Errorf("PAYMENT_KEY is required in production")
		}
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required")
		}
	}
	if c.ProductsPerPage <= 0 {
		return fmt.Errorf("PRODUCT_PER_PAGE must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
