package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Storage modes
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the energy chart service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Rendering configuration
	ChartVariant string `env:"CHART_VARIANT,default=detailed"`
	OutputDir    string `env:"OUTPUT_DIR,default=./reports"`

	// Storage configuration
	StorageMode string `env:"STORAGE_MODE,default=local"`
	GCSBucket   string `env:"GCS_BUCKET"`

	// HTTP tuning
	CacheSize int     `env:"CACHE_SIZE,default=32"`
	RateLimit float64 `env:"RATE_LIMIT,default=20"`
	RateBurst int     `env:"RATE_BURST,default=40"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration from the given lookuper and validates it
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express
func (c *Config) Validate() error {
	switch c.StorageMode {
	case StorageLocal:
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("%w: GCS_BUCKET is required when STORAGE_MODE=gcs", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported STORAGE_MODE %q", ErrInvalidConfig, c.StorageMode)
	}

	switch c.ChartVariant {
	case "detailed", "compact":
	default:
		return fmt.Errorf("%w: unsupported CHART_VARIANT %q", ErrInvalidConfig, c.ChartVariant)
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: CACHE_SIZE must be positive", ErrInvalidConfig)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT and RATE_BURST must be positive", ErrInvalidConfig)
	}
	return nil
}
