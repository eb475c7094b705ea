package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/syedqalbe-create/VisionAR/pkg/config"
)

// Config holds all configuration for the service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Upstream product catalog
	CatalogBaseURL    string        `env:"CATALOG_BASE_URL" envDefault:"https://dummyjson.com"`
	CatalogFetchLimit int           `env:"CATALOG_FETCH_LIMIT" envDefault:"60"`
	CatalogTimeout    time.Duration `env:"CATALOG_TIMEOUT" envDefault:"20s"`

	// Cart
	ShippingFlatFee float64 `env:"CART_SHIPPING_FLAT_FEE" envDefault:"10"`

	// JWT
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTAccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"1h"`
	JWTRefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" envDefault:"720h"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CatalogFetchLimit < 1 {
		return fmt.Errorf("invalid catalog fetch limit: %d", c.CatalogFetchLimit)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("invalid catalog timeout: %s", c.CatalogTimeout)
	}
	if c.ShippingFlatFee < 0 {
		return fmt.Errorf("invalid shipping flat fee: %f", c.ShippingFlatFee)
	}
	return nil
}
